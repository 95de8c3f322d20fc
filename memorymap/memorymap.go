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

// Package memorymap describes how a 7800 cartridge ROM image is placed in the
// 64K address space. The image always ends at $FFFF so the origin depends
// only on the size of the image.
//
//	16K  $C000-$FFFF
//	32K  $8000-$FFFF
//	48K  $4000-$FFFF
//
// Resolve() returns a Layout for a supported size. The Layout converts the
// interesting absolute addresses (control byte, signature, reset vector) to
// offsets into the image and back again.
//
// Any other size is unsupported and is an error. There is no fallback to an
// offset computed relative to the end of the image.
package memorymap

import (
	"fmt"

	"github.com/jetsetilly/sig7800/curated"
)

// Supported ROM image sizes.
const (
	Size16K = 16384
	Size32K = 32768
	Size48K = 49152
)

// Origin addresses for each of the supported sizes.
const (
	Origin16K = uint16(0xc000)
	Origin32K = uint16(0x8000)
	Origin48K = uint16(0x4000)
)

// Memtop is the last address in the address space. Every supported image
// ends here.
const Memtop = uint16(0xffff)

// Absolute addresses of interest.
const (
	// control byte. non-zero selects 7800 mode
	AddrControl = uint16(0xff7b)

	// the ATARI7800 signature immediately follows the control byte
	AddrSignature = uint16(0xff7c)

	// 6502 reset vector, little-endian
	AddrResetVector = uint16(0xfffc)
)

// Error patterns.
const (
	UnsupportedSize = "memorymap: unsupported ROM size (%d bytes)"
	OutOfRange      = "memorymap: address $%04X is outside of %s"
)

// Origin returns the address at which an image of the given size begins.
func Origin(size int) (uint16, error) {
	switch size {
	case Size48K:
		return Origin48K, nil
	case Size32K:
		return Origin32K, nil
	case Size16K:
		return Origin16K, nil
	}
	return 0, curated.Errorf(UnsupportedSize, size)
}

// IsSupported returns true if the size is one of the three supported sizes.
func IsSupported(size int) bool {
	_, err := Origin(size)
	return err == nil
}

// Layout of a ROM image in the address space.
type Layout struct {
	Size   int
	Origin uint16

	// offsets into the image
	Control     int
	Signature   int
	ResetVector int
}

// Resolve the layout for a ROM image of the given size.
func Resolve(size int) (Layout, error) {
	origin, err := Origin(size)
	if err != nil {
		return Layout{}, err
	}

	l := Layout{
		Size:   size,
		Origin: origin,
	}
	l.Control = int(AddrControl) - int(origin)
	l.Signature = int(AddrSignature) - int(origin)
	l.ResetVector = int(AddrResetVector) - int(origin)

	return l, nil
}

func (l Layout) String() string {
	return fmt.Sprintf("%dK ($%04X-$%04X)", l.Size/1024, l.Origin, Memtop)
}

// Contains returns true if the address is mapped to the image.
func (l Layout) Contains(address uint16) bool {
	offset := int(address) - int(l.Origin)
	return offset >= 0 && offset < l.Size
}

// Offset converts an absolute address to an offset into the image.
func (l Layout) Offset(address uint16) (int, error) {
	if !l.Contains(address) {
		return 0, curated.Errorf(OutOfRange, address, l)
	}
	return int(address) - int(l.Origin), nil
}

// Address converts an offset into the image to an absolute address. The
// offset is not checked.
func (l Layout) Address(offset int) uint16 {
	return uint16(int(l.Origin) + offset)
}

// DecodeResetVector decodes the little-endian reset vector from the image.
func (l Layout) DecodeResetVector(rom []byte) (uint16, error) {
	if l.ResetVector < 0 || l.ResetVector+1 >= len(rom) {
		return 0, curated.Errorf(OutOfRange, AddrResetVector+1, l)
	}
	lo := uint16(rom[l.ResetVector])
	hi := uint16(rom[l.ResetVector+1])
	return lo | hi<<8, nil
}

// SwapBits exchanges two bits of an address. Used to test the hypothesis that
// two address lines have been wired the wrong way round.
func SwapBits(address uint16, a int, b int) uint16 {
	ba := (address >> a) & 0x01
	bb := (address >> b) & 0x01
	address &^= (1 << a) | (1 << b)
	address |= ba << b
	address |= bb << a
	return address
}
