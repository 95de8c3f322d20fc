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

// Package cheader converts between a ROM image and the C source header that
// embeds it. The header is consumed by the firmware build and must keep its
// exact layout:
//
//	#ifndef GAME_ROM_H
//	#define GAME_ROM_H
//
//	// Game: Astro Wing Starfighter
//	const uint32_t ROM_SIZE = 49152;
//
//	const uint8_t ROM_DATA[49152] = {
//	    0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
//	    ...
//	    0xF0, 0xF1, 0xF2, 0xF3, 0xF4, 0xF5, 0xF6, 0xF7, 0xF8, 0xF9, 0xFA, 0xFB, 0xFC, 0xFD, 0xFE, 0xFF
//	};
//
//	#endif
//
// Sixteen values per line, uppercase hex, and a trailing comma on every line
// except the last. Extract() is the inverse of Emit().
package cheader

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/jetsetilly/sig7800/curated"
)

// Malformed is the error pattern for header text that does not contain a
// usable ROM_DATA array.
const Malformed = "cheader: malformed header: %v"

// ValuesPerLine is the number of byte values on each line of the array
// literal.
const ValuesPerLine = 16

// Header is the content recovered from a C header.
type Header struct {
	// the text following "// Game:". empty if there was no such comment
	Name string

	Data []byte
}

// Emit writes the data as a C header. The name appears in the comment at the
// top of the file.
func Emit(w io.Writer, name string, data []byte) error {
	b := bufio.NewWriter(w)

	fmt.Fprint(b, "#ifndef GAME_ROM_H\n")
	fmt.Fprint(b, "#define GAME_ROM_H\n\n")
	fmt.Fprintf(b, "// Game: %s\n", sanitiseName(name))
	fmt.Fprintf(b, "const uint32_t ROM_SIZE = %d;\n\n", len(data))
	fmt.Fprintf(b, "const uint8_t ROM_DATA[%d] = {\n", len(data))

	for i := 0; i < len(data); i += ValuesPerLine {
		b.WriteString("    ")
		end := min(i+ValuesPerLine, len(data))
		for j := i; j < end; j++ {
			if j > i {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "0x%02X", data[j])
		}
		if i+ValuesPerLine < len(data) {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	fmt.Fprint(b, "};\n\n")
	fmt.Fprint(b, "#endif\n")

	return b.Flush()
}

// the name is on a single line comment so it cannot contain a line break
func sanitiseName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")
	return strings.TrimSpace(name)
}

var (
	arrayPattern = regexp.MustCompile(`const uint8_t ROM_DATA\[(\d+)\] = \{([^}]+)\}`)
	valuePattern = regexp.MustCompile(`0x[0-9A-Fa-f]{2}`)
	namePattern  = regexp.MustCompile(`(?m)^// Game: (.*)$`)
)

// Parse header text. The declared size of the ROM_DATA array must match the
// number of values found in it. No partial data is returned on error.
func Parse(text []byte) (Header, error) {
	m := arrayPattern.FindSubmatch(text)
	if m == nil {
		return Header{}, curated.Errorf(Malformed, "no ROM_DATA array found")
	}

	declared, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return Header{}, curated.Errorf(Malformed, err)
	}

	values := valuePattern.FindAll(m[2], -1)
	if len(values) != declared {
		return Header{}, curated.Errorf(Malformed,
			fmt.Sprintf("ROM_DATA declares %d bytes but contains %d", declared, len(values)))
	}

	h := Header{
		Data: make([]byte, len(values)),
	}

	for i, v := range values {
		// the pattern guarantees two hex digits after the 0x prefix
		n, err := strconv.ParseUint(string(v[2:]), 16, 8)
		if err != nil {
			return Header{}, curated.Errorf(Malformed, err)
		}
		h.Data[i] = uint8(n)
	}

	if n := namePattern.FindSubmatch(text); n != nil {
		h.Name = strings.TrimSpace(string(n[1]))
	}

	return h, nil
}

// Extract reads header text and returns the ROM data in it.
func Extract(r io.Reader) ([]byte, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf(Malformed, err)
	}
	h, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return h.Data, nil
}
