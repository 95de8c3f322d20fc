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

// Package a78 reads the 128 byte container header at the start of an .a78
// cartridge file. The header only describes the cartridge. It is never
// patched and it is not part of the ROM image.
//
// Fields of interest:
//
//	0-15     magic. a version byte followed by "ATARI7800"
//	17-48    title
//	53       cartridge type
//	54, 55   controllers for port 1 and port 2
//	58       TV format (1 = PAL)
//	63       save device
//	100-116  name
package a78

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/sig7800/curated"
	"github.com/jetsetilly/sig7800/terminal"
)

// HeaderSize is the size of the container header in bytes.
const HeaderSize = 128

// Magic is the text that follows the version byte in a container header.
var Magic = []byte("ATARI7800")

// TooShort is the error pattern for data that is smaller than a container
// header.
const TooShort = "a78: header too short (%d bytes)"

// field offsets
const (
	offsetMagic      = 0
	offsetTitle      = 17
	offsetCartType   = 53
	offsetController = 54
	offsetTV         = 58
	offsetSave       = 63
	offsetName       = 100
	lenMagic         = 16
	lenTitle         = 32
	lenName          = 17
)

// CartType is the cartridge type byte at offset 53.
type CartType uint8

// List of known cartridge types.
const (
	CartStandard CartType = iota
	CartSuperGame
	CartSuperGameRAM
	CartAbsolute
	CartActivision
)

func (c CartType) String() string {
	switch c {
	case CartStandard:
		return "Standard 7800"
	case CartSuperGame:
		return "SuperGame (bank-switched)"
	case CartSuperGameRAM:
		return "SuperGame with RAM"
	case CartAbsolute:
		return "Absolute (F18 Hornet)"
	case CartActivision:
		return "Activision"
	}
	return "Unknown"
}

// Header is the decoded container header.
type Header struct {
	Magic       [lenMagic]byte
	Title       string
	CartType    CartType
	Controller1 uint8
	Controller2 uint8
	TVFormat    uint8
	SaveDevice  uint8
	Name        string

	// copy of the raw header
	Raw [HeaderSize]byte
}

// HasMagic returns true if the data begins with a container header. The
// version byte is not checked.
func HasMagic(data []byte) bool {
	if len(data) < 1+len(Magic) {
		return false
	}
	return bytes.Equal(data[1:1+len(Magic)], Magic)
}

// Parse the first 128 bytes of data. Data beyond the header is ignored.
func Parse(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, curated.Errorf(TooShort, len(data))
	}

	var h Header
	copy(h.Raw[:], data[:HeaderSize])
	copy(h.Magic[:], data[offsetMagic:offsetMagic+lenMagic])

	h.Title = cleanString(data[offsetTitle : offsetTitle+lenTitle])
	h.CartType = CartType(data[offsetCartType])
	h.Controller1 = data[offsetController]
	h.Controller2 = data[offsetController+1]
	h.TVFormat = data[offsetTV]
	h.SaveDevice = data[offsetSave]
	h.Name = cleanString(data[offsetName : offsetName+lenName])

	return h, nil
}

// TV returns the TV format as a string.
func (h Header) TV() string {
	if h.TVFormat == 1 {
		return "PAL"
	}
	return "NTSC"
}

// GameName returns the title if there is one and the name field otherwise.
func (h Header) GameName() string {
	if h.Title != "" {
		return h.Title
	}
	return h.Name
}

// null padding is removed along with any surrounding whitespace
func cleanString(b []byte) string {
	return strings.TrimSpace(string(bytes.ReplaceAll(b, []byte{0x00}, nil)))
}

// Write a human readable description of the header, including a dump of all
// 128 bytes.
func (h Header) Write(w io.Writer) {
	fmt.Fprintln(w, "=== HEADER FIELDS ===")
	fmt.Fprintln(w, "Bytes 0-15 (magic signature):")
	fmt.Fprintf(w, "  ASCII: \"%s\"\n", terminal.ASCII(h.Magic[:]))
	fmt.Fprintf(w, "  Hex: %s\n", terminal.Hex(h.Magic[:]))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Bytes 17-48 (title): \"%s\"\n", h.Title)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Byte 53 (cartridge type): 0x%02X\n", uint8(h.CartType))
	fmt.Fprintf(w, "  Type: %s\n", h.CartType)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Byte 54 (controller 1): 0x%02X\n", h.Controller1)
	fmt.Fprintf(w, "Byte 55 (controller 2): 0x%02X\n", h.Controller2)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Byte 58 (TV format): 0x%02X\n", h.TVFormat)
	fmt.Fprintf(w, "  Format: %s\n", h.TV())
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Byte 63 (save device): 0x%02X\n", h.SaveDevice)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Bytes 100-116 (cart name):")
	fmt.Fprintf(w, "  \"%s\"\n", h.Name)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== FULL HEADER DUMP ===")
	for i := 0; i < HeaderSize; i += 16 {
		row := h.Raw[i : i+16]
		fmt.Fprintf(w, "%04X: %s  %s\n", i, terminal.Hex(row), terminal.ASCII(row))
	}
}
