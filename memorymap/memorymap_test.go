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

package memorymap_test

import (
	"testing"

	"github.com/jetsetilly/sig7800/curated"
	"github.com/jetsetilly/sig7800/memorymap"
	"github.com/jetsetilly/sig7800/test"
)

func TestOrigin(t *testing.T) {
	for _, c := range []struct {
		size   int
		origin uint16
	}{
		{size: memorymap.Size48K, origin: 0x4000},
		{size: memorymap.Size32K, origin: 0x8000},
		{size: memorymap.Size16K, origin: 0xc000},
	} {
		o, err := memorymap.Origin(c.size)
		test.ExpectSuccess(t, err, c.size)
		test.ExpectEquality(t, o, c.origin, c.size)
		test.ExpectSuccess(t, memorymap.IsSupported(c.size), c.size)
	}

	for _, size := range []int{0, 1, 128, 8192, 16383, 16385, 32768 + 128, 49153, 65536} {
		_, err := memorymap.Origin(size)
		test.ExpectSuccess(t, curated.Is(err, memorymap.UnsupportedSize), size)
		_, err = memorymap.Resolve(size)
		test.ExpectSuccess(t, curated.Is(err, memorymap.UnsupportedSize), size)
		test.ExpectFailure(t, memorymap.IsSupported(size), size)
	}
}

func TestResolve(t *testing.T) {
	l, err := memorymap.Resolve(memorymap.Size48K)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.Control, 49019)
	test.ExpectEquality(t, l.Signature, 49020)
	test.ExpectEquality(t, l.Control, 0xff7b-0x4000)
	test.ExpectEquality(t, l.ResetVector, 0xfffc-0x4000)
	test.ExpectEquality(t, l.String(), "48K ($4000-$FFFF)")

	l, err = memorymap.Resolve(memorymap.Size32K)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.Control, 0xff7b-0x8000)
	test.ExpectEquality(t, l.Signature, 0xff7c-0x8000)

	l, err = memorymap.Resolve(memorymap.Size16K)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.Signature, 0xff7c-0xc000)
	test.ExpectEquality(t, l.ResetVector, memorymap.Size16K-4)
	test.ExpectEquality(t, l.String(), "16K ($C000-$FFFF)")
}

func TestOffset(t *testing.T) {
	l, err := memorymap.Resolve(memorymap.Size32K)
	test.DemandSuccess(t, err)

	o, err := l.Offset(0x8000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, o, 0)

	o, err = l.Offset(0xffff)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, o, memorymap.Size32K-1)
	test.ExpectEquality(t, l.Address(o), memorymap.Memtop)

	_, err = l.Offset(0x7fff)
	test.ExpectSuccess(t, curated.Is(err, memorymap.OutOfRange))
	test.ExpectFailure(t, l.Contains(0x4000))
}

func TestResetVector(t *testing.T) {
	l, err := memorymap.Resolve(memorymap.Size48K)
	test.DemandSuccess(t, err)

	rom := make([]byte, l.Size)
	rom[l.ResetVector] = 0x00
	rom[l.ResetVector+1] = 0x80

	v, err := l.DecodeResetVector(rom)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x8000)

	rom[l.ResetVector] = 0x34
	rom[l.ResetVector+1] = 0xf2
	v, err = l.DecodeResetVector(rom)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xf234)

	// image shorter than the layout says it should be
	_, err = l.DecodeResetVector(rom[:100])
	test.ExpectFailure(t, err)
}

func TestSwapBits(t *testing.T) {
	test.ExpectEquality(t, memorymap.SwapBits(0x0400, 10, 11), 0x0800)
	test.ExpectEquality(t, memorymap.SwapBits(0x0c00, 10, 11), 0x0c00)
	test.ExpectEquality(t, memorymap.SwapBits(0x0000, 10, 11), 0x0000)
	test.ExpectEquality(t, memorymap.SwapBits(0xd123, 12, 13), 0xe123)
	test.ExpectEquality(t, memorymap.SwapBits(0x8100, 8, 9), 0x8200)
}
