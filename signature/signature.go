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

// Package signature inspects and patches the 7800 detection data of a ROM
// image. The data is the control byte at $FF7B followed by the nine byte
// ASCII signature "ATARI7800" at $FF7C.
//
// The real console only looks at the control byte. The signature is a marker
// used by emulators and by this tool to check that an image has been
// prepared correctly.
//
// Inspect() is read-only. Patch() validates every offset before it writes
// anything so an image is either fully patched or left untouched.
package signature

import (
	"bytes"

	"github.com/jetsetilly/sig7800/curated"
	"github.com/jetsetilly/sig7800/logger"
	"github.com/jetsetilly/sig7800/memorymap"
)

// Literal is the signature expected at $FF7C.
var Literal = []byte("ATARI7800")

// Length of the signature in bytes.
const Length = 9

// PatchOutOfBounds is the error pattern for an image that is too short for
// the layout it claims to have.
const PatchOutOfBounds = "signature: patch out of bounds (offset %d, length %d)"

const logTag = "signature"

// Patch writes the control byte and the signature to the ROM image. The
// image must be one of the supported sizes.
//
// All offsets are checked before the first byte is written. The operation is
// idempotent.
func Patch(rom []byte, control Control) error {
	l, err := memorymap.Resolve(len(rom))
	if err != nil {
		return err
	}

	if l.Control < 0 || l.Signature < 0 {
		return curated.Errorf(PatchOutOfBounds, l.Control, len(rom))
	}
	if l.Signature+Length > len(rom) {
		return curated.Errorf(PatchOutOfBounds, l.Signature, len(rom))
	}

	rom[l.Control] = uint8(control)
	copy(rom[l.Signature:l.Signature+Length], Literal)

	logger.Logf(logger.Allow, logTag, "control byte %#02x written at offset %d ($%04X)", uint8(control), l.Control, memorymap.AddrControl)
	logger.Logf(logger.Allow, logTag, "signature written at offset %d ($%04X)", l.Signature, memorymap.AddrSignature)

	return nil
}

// Search is the result of looking for the signature anywhere in an image.
type Search struct {
	Located bool
	Offset  int
	Address uint16
}

// SearchAll looks for the first occurrence of the signature in the image. The
// address of the found signature is calculated from the origin.
func SearchAll(rom []byte, origin uint16) Search {
	idx := bytes.Index(rom, Literal)
	if idx < 0 {
		return Search{}
	}
	return Search{
		Located: true,
		Offset:  idx,
		Address: uint16(int(origin) + idx),
	}
}
