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

package vectors

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/sig7800/curated"
	"github.com/jetsetilly/sig7800/memorymap"
	"github.com/jetsetilly/sig7800/terminal"
)

// BadProbe is the error pattern for a probe that cannot be parsed.
const BadProbe = "vectors: malformed probe (%s)"

// Probe is an absolute address with an optional expected value.
type Probe struct {
	Address     uint16
	Expected    uint8
	HasExpected bool
}

// ParseProbe parses a probe of the form addr[=expected]. Both values are
// hexadecimal and may be prefixed with $ or 0x.
//
//	$83F8
//	0x83f8=0x25
//	83F8=25
func ParseProbe(s string) (Probe, error) {
	var p Probe

	addr, exp, hasExp := strings.Cut(strings.TrimSpace(s), "=")

	v, err := parseHex(addr, 16)
	if err != nil {
		return Probe{}, curated.Errorf(BadProbe, s)
	}
	p.Address = uint16(v)

	if hasExp {
		v, err = parseHex(exp, 8)
		if err != nil {
			return Probe{}, curated.Errorf(BadProbe, s)
		}
		p.Expected = uint8(v)
		p.HasExpected = true
	}

	return p, nil
}

func parseHex(s string, bits int) (uint64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return strconv.ParseUint(s, 16, bits)
}

// Result of a single probe.
type Result struct {
	Probe

	// whether the address is mapped to the image. Offset and Actual are only
	// valid if InRange is true
	InRange bool
	Offset  int
	Actual  uint8
}

// Match returns true if the probe has an expected value and the actual value
// is the same. A result that is out of range never matches.
func (r Result) Match() bool {
	return r.InRange && r.HasExpected && r.Actual == r.Expected
}

// Peek reads the byte at every probe address. An address outside of the
// image is not an error but is reported in the result.
func Peek(rom []byte, probes []Probe) (memorymap.Layout, []Result, error) {
	l, err := memorymap.Resolve(len(rom))
	if err != nil {
		return memorymap.Layout{}, nil, err
	}

	results := make([]Result, 0, len(probes))
	for _, p := range probes {
		r := Result{Probe: p}
		if offset, err := l.Offset(p.Address); err == nil {
			r.InRange = true
			r.Offset = offset
			r.Actual = rom[offset]
		}
		results = append(results, r)
	}

	return l, results, nil
}

// WritePeek writes the results of Peek() to the io.Writer.
func WritePeek(w io.Writer, l memorymap.Layout, results []Result, pens terminal.Pens) {
	fmt.Fprintln(w, pens.Colorize(pens.Title, "Address -> ROM Offset -> Data (Expected)"))
	fmt.Fprintln(w, strings.Repeat("=", 50))

	for _, r := range results {
		if !r.InRange {
			fmt.Fprintln(w, pens.Colorize(pens.Warn, fmt.Sprintf("$%04X -> OUT OF RANGE", r.Address)))
			continue
		}

		s := fmt.Sprintf("$%04X -> ROM[%5d] = 0x%02X", r.Address, r.Offset, r.Actual)
		if !r.HasExpected {
			fmt.Fprintf(w, "%s (%3d) = %s\n", s, r.Actual, Describe(r.Actual))
			continue
		}

		s = fmt.Sprintf("%s (expected 0x%02X)", s, r.Expected)
		if r.Match() {
			fmt.Fprintln(w, pens.Colorize(pens.Pass, s+" ✓"))
		} else {
			fmt.Fprintln(w, pens.Colorize(pens.Fail, s+" MISMATCH!"))
		}
	}

	fmt.Fprintf(w, "\nROM size: %d bytes\n", l.Size)
	fmt.Fprintf(w, "Address range: $%04X-$%04X\n", l.Origin, memorymap.Memtop)
}
