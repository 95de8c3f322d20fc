// This file is part of Sig7800.
//
// Sig7800 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Sig7800 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Sig7800.  If not, see <https://www.gnu.org/licenses/>.

// Package vectors looks at the code a 7800 would execute after reset. It is
// used to diagnose a cartridge that loops at boot.
//
// Analyse() reads the reset vector and the first bytes of boot code at the
// reset address. It also tests the hypothesis that a pair of address lines
// has been wired the wrong way round, by showing which address the CPU would
// fetch the reset code from and what it would find there.
//
// Peek() reads bytes at absolute addresses and optionally compares them with
// an expected value. This is useful when comparing a ROM image with a logic
// analyser capture.
package vectors

import (
	"fmt"
	"io"

	"github.com/jetsetilly/sig7800/logger"
	"github.com/jetsetilly/sig7800/memorymap"
	"github.com/jetsetilly/sig7800/terminal"
)

// BootLength is the number of bytes of boot code read at the reset address.
const BootLength = 20

// number of boot code bytes in each row of the report
const bootRow = 8

const logTag = "vectors"

// Swap is a pair of address lines that are exchanged.
type Swap struct {
	A int
	B int
}

func (s Swap) String() string {
	return fmt.Sprintf("A%d<->A%d", s.A, s.B)
}

// Swaps is the list of address line swaps that are tested by Analyse().
var Swaps = []Swap{
	{A: 10, B: 11},
	{A: 12, B: 13},
	{A: 11, B: 12},
	{A: 8, B: 9},
}

// Hypothesis is the result of applying a Swap to the reset address.
type Hypothesis struct {
	Swap    Swap
	Address uint16

	// whether the swapped address is mapped to the image. Data is only valid
	// if Mapped is true
	Mapped bool
	Data   uint8
}

// Analysis of the reset vector and boot code.
type Analysis struct {
	Layout      memorymap.Layout
	ResetVector uint16

	// the boot code at the reset address. will be shorter than BootLength if
	// the reset address is near the end of the image and empty if the reset
	// address is not mapped to the image at all
	Boot []byte

	Hypotheses []Hypothesis
}

// Analyse the ROM image. The image must be one of the supported sizes.
func Analyse(rom []byte) (Analysis, error) {
	l, err := memorymap.Resolve(len(rom))
	if err != nil {
		return Analysis{}, err
	}

	a := Analysis{
		Layout: l,
	}

	a.ResetVector, err = l.DecodeResetVector(rom)
	if err != nil {
		return Analysis{}, err
	}

	if offset, err := l.Offset(a.ResetVector); err == nil {
		end := min(offset+BootLength, len(rom))
		a.Boot = make([]byte, end-offset)
		copy(a.Boot, rom[offset:end])
	} else {
		logger.Log(logger.Allow, logTag, err)
	}

	for _, s := range Swaps {
		h := Hypothesis{
			Swap:    s,
			Address: memorymap.SwapBits(a.ResetVector, s.A, s.B),
		}
		if offset, err := l.Offset(h.Address); err == nil {
			h.Mapped = true
			h.Data = rom[offset]
		}
		a.Hypotheses = append(a.Hypotheses, h)
	}

	return a, nil
}

// Write the analysis to the io.Writer.
func (a Analysis) Write(w io.Writer, pens terminal.Pens) {
	fmt.Fprintf(w, "ROM Size: %d bytes (%dKB)\n", a.Layout.Size, a.Layout.Size/1024)
	fmt.Fprintf(w, "ROM maps to: $%04X-$%04X\n", a.Layout.Origin, memorymap.Memtop)
	fmt.Fprintln(w)

	fmt.Fprintln(w, pens.Colorize(pens.Title, "=== RESET VECTOR ==="))
	fmt.Fprintf(w, "At $%04X-$%04X: $%02X%02X → $%04X\n",
		memorymap.AddrResetVector, memorymap.AddrResetVector+1,
		uint8(a.ResetVector>>8), uint8(a.ResetVector), a.ResetVector)
	fmt.Fprintln(w)

	fmt.Fprintln(w, pens.Colorize(pens.Title, "=== ADDRESS LINE SWAP CHECK ==="))
	for _, h := range a.Hypotheses {
		fmt.Fprintf(w, "%s: Reset would read $%04X instead of $%04X\n", h.Swap, h.Address, a.ResetVector)
		if h.Mapped {
			fmt.Fprintf(w, "  Data at swapped address: 0x%02X (%s)\n", h.Data, Describe(h.Data))
		} else {
			fmt.Fprintln(w, pens.Colorize(pens.Warn, "  Swapped address is outside of ROM"))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, pens.Colorize(pens.Title, "=== BOOT CODE AT RESET VECTOR ==="))
	if len(a.Boot) == 0 {
		fmt.Fprintln(w, pens.Colorize(pens.Fail, fmt.Sprintf("✗ Reset vector $%04X is outside of %s", a.ResetVector, a.Layout)))
		return
	}

	fmt.Fprintf(w, "First %d bytes at $%04X:\n", len(a.Boot), a.ResetVector)
	for i, b := range a.Boot {
		if i%bootRow == 0 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "$%04X: ", a.ResetVector+uint16(i))
		}
		fmt.Fprintf(w, "%02X ", b)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "First instruction: %s\n", Describe(a.Boot[0]))
}
