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

package signature

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jetsetilly/sig7800/logger"
	"github.com/jetsetilly/sig7800/memorymap"
	"github.com/jetsetilly/sig7800/terminal"
)

// Report is the result of inspecting a ROM image.
type Report struct {
	Layout memorymap.Layout

	Control Control

	// the nine bytes found at the signature offset
	Signature []byte

	// whether Signature matches Literal exactly
	Found bool

	// where the signature was found when it was not at the expected offset.
	// only meaningful if Found is false
	Elsewhere Search

	ResetVector uint16
}

// Inspect the ROM image. The image is not modified and the returned report
// does not share memory with it.
func Inspect(rom []byte) (Report, error) {
	l, err := memorymap.Resolve(len(rom))
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Layout:  l,
		Control: Control(rom[l.Control]),
	}

	r.Signature = make([]byte, Length)
	copy(r.Signature, rom[l.Signature:l.Signature+Length])
	r.Found = bytes.Equal(r.Signature, Literal)

	if !r.Found {
		r.Elsewhere = SearchAll(rom, l.Origin)
		logger.Logf(logger.Allow, logTag, "signature not at expected offset %d", l.Signature)
	}

	r.ResetVector, err = l.DecodeResetVector(rom)
	if err != nil {
		return Report{}, err
	}

	return r, nil
}

// ASCII returns the signature bytes as a string. Non-printable bytes are
// replaced with a dot.
func (r Report) ASCII() string {
	return terminal.ASCII(r.Signature)
}

// Hex returns the signature bytes as space separated hex values.
func (r Report) Hex() string {
	return terminal.Hex(r.Signature)
}

// Verdict is a one line summary of the report.
func (r Report) Verdict() string {
	switch {
	case r.Found && r.Control.Is7800():
		return "control byte and signature present"
	case r.Found:
		return "signature present but control byte is zero (2600 mode)"
	case r.Elsewhere.Located:
		return fmt.Sprintf("signature misplaced at $%04X", r.Elsewhere.Address)
	}
	return "signature missing"
}

// Write the report to the io.Writer. Verdict lines are coloured with the
// supplied pens.
func (r Report) Write(w io.Writer, pens terminal.Pens) {
	l := r.Layout

	fmt.Fprintf(w, "Memory map: %s\n\n", l)

	fmt.Fprintln(w, pens.Colorize(pens.Title, fmt.Sprintf("=== CONTROL BYTE at $%04X ===", memorymap.AddrControl)))
	fmt.Fprintf(w, "Offset: %d (0x%04X)\n", l.Control, l.Control)
	fmt.Fprintf(w, "Value: 0x%02X (binary: %08b)\n", uint8(r.Control), uint8(r.Control))
	fmt.Fprintf(w, "  Bit 0 (TV): %s\n", r.Control.TV())
	fmt.Fprintf(w, "  Bit 1 (Pokey): %s\n", yesNo(r.Control.Pokey(), "Yes @$4000"))
	fmt.Fprintf(w, "  Bit 2 (SuperGame): %s\n", yesNo(r.Control.BankSwitched(), "Yes"))
	if r.Control.Reserved() != 0 {
		fmt.Fprintf(w, "  Other bits: 0x%02X\n", r.Control.Reserved())
	}
	if r.Control.Is7800() {
		fmt.Fprintln(w, pens.Colorize(pens.Pass, "✓ Control byte non-zero (7800 mode)"))
	} else {
		fmt.Fprintln(w, pens.Colorize(pens.Fail, "✗ Control byte is zero (2600 mode)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, pens.Colorize(pens.Title, fmt.Sprintf("=== SIGNATURE at $%04X-$%04X ===",
		memorymap.AddrSignature, memorymap.AddrSignature+Length-1)))
	fmt.Fprintf(w, "Offset: %d (0x%04X)\n", l.Signature, l.Signature)
	fmt.Fprintf(w, "ASCII: \"%s\"\n", r.ASCII())
	fmt.Fprintf(w, "Hex:   %s\n", r.Hex())
	fmt.Fprintln(w)

	if r.Found {
		fmt.Fprintln(w, pens.Colorize(pens.Pass, "✓ Signature FOUND"))
	} else {
		fmt.Fprintln(w, pens.Colorize(pens.Fail, "✗ Signature MISSING OR INCORRECT"))
		fmt.Fprintf(w, "  Expected: %s\n", terminal.Hex(Literal))
		fmt.Fprintf(w, "\nSearching entire ROM for '%s'...\n", Literal)
		if r.Elsewhere.Located {
			fmt.Fprintln(w, pens.Colorize(pens.Warn, fmt.Sprintf("  Found at offset %d (would map to address $%04X)",
				r.Elsewhere.Offset, r.Elsewhere.Address)))
			fmt.Fprintf(w, "  Expected at offset %d (address $%04X)\n", l.Signature, memorymap.AddrSignature)
		} else {
			fmt.Fprintln(w, pens.Colorize(pens.Fail, "  NOT FOUND anywhere in ROM!"))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, pens.Colorize(pens.Title, fmt.Sprintf("=== RESET VECTOR at $%04X ===", memorymap.AddrResetVector)))
	fmt.Fprintf(w, "Value: $%04X\n", r.ResetVector)
	fmt.Fprintf(w, "Hex:   %02X %02X\n", uint8(r.ResetVector), uint8(r.ResetVector>>8))
}
