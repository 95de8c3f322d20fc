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

package cheader_test

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/jetsetilly/sig7800/cheader"
	"github.com/jetsetilly/sig7800/curated"
	"github.com/jetsetilly/sig7800/memorymap"
	"github.com/jetsetilly/sig7800/test"
)

func TestEmitFormat(t *testing.T) {
	data := make([]byte, 18)
	for i := range data {
		data[i] = uint8(i * 15)
	}

	w := &strings.Builder{}
	test.DemandSuccess(t, cheader.Emit(w, "Astro Wing Starfighter", data))

	expected := "#ifndef GAME_ROM_H\n" +
		"#define GAME_ROM_H\n" +
		"\n" +
		"// Game: Astro Wing Starfighter\n" +
		"const uint32_t ROM_SIZE = 18;\n" +
		"\n" +
		"const uint8_t ROM_DATA[18] = {\n" +
		"    0x00, 0x0F, 0x1E, 0x2D, 0x3C, 0x4B, 0x5A, 0x69, 0x78, 0x87, 0x96, 0xA5, 0xB4, 0xC3, 0xD2, 0xE1,\n" +
		"    0xF0, 0xFF\n" +
		"};\n" +
		"\n" +
		"#endif\n"

	test.ExpectEquality(t, w.String(), expected)
}

func TestEmitExactLines(t *testing.T) {
	// a length that is an exact multiple of the values per line must not
	// leave a trailing comma on the last line
	w := &strings.Builder{}
	test.DemandSuccess(t, cheader.Emit(w, "x", make([]byte, 32)))

	lines := strings.Split(w.String(), "\n")
	test.ExpectEquality(t, lines[7], "    0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,")
	test.ExpectEquality(t, lines[8], "    0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00")
	test.ExpectEquality(t, lines[9], "};")
}

func TestRoundTrip(t *testing.T) {
	for _, size := range []int{memorymap.Size16K, memorymap.Size32K, memorymap.Size48K} {
		data := make([]byte, size)
		for i := range data {
			data[i] = uint8(rand.IntN(256))
		}

		b := &bytes.Buffer{}
		test.DemandSuccess(t, cheader.Emit(b, "round trip", data), size)

		h, err := cheader.Parse(b.Bytes())
		test.DemandSuccess(t, err, size)
		test.ExpectSuccess(t, bytes.Equal(h.Data, data), size)
		test.ExpectEquality(t, h.Name, "round trip", size)

		e, err := cheader.Extract(bytes.NewReader(b.Bytes()))
		test.DemandSuccess(t, err, size)
		test.ExpectSuccess(t, bytes.Equal(e, data), size)
	}
}

func TestNameSanitised(t *testing.T) {
	b := &bytes.Buffer{}
	test.DemandSuccess(t, cheader.Emit(b, "two\nlines ", []byte{0x01}))

	h, err := cheader.Parse(b.Bytes())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, h.Name, "two lines")
}

func TestLowercaseHex(t *testing.T) {
	text := "const uint8_t ROM_DATA[3] = {\n    0xab, 0xCd, 0x0f\n};\n"
	h, err := cheader.Parse([]byte(text))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(h.Data, []byte{0xab, 0xcd, 0x0f}))
	test.ExpectEquality(t, h.Name, "")
}

func TestMalformed(t *testing.T) {
	for _, text := range []string{
		"",
		"#ifndef GAME_ROM_H\n#endif\n",
		"const uint8_t ROM_DATA[4] = {\n    0x01, 0x02, 0x03\n};\n",
		"const uint8_t ROM_DATA[1] = {\n    0x01, 0x02\n};\n",
		"const uint8_t ROM_DATA[2] = {\n",
	} {
		h, err := cheader.Parse([]byte(text))
		test.ExpectSuccess(t, curated.Is(err, cheader.Malformed), text)
		test.ExpectEquality(t, len(h.Data), 0, text)

		d, err := cheader.Extract(strings.NewReader(text))
		test.ExpectFailure(t, err, text)
		test.ExpectEquality(t, len(d), 0, text)
	}
}
