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
	"fmt"
	"strings"
)

// Control is the value of the control byte at $FF7B.
//
//	bit 0   TV format (0 = NTSC, 1 = PAL)
//	bit 1   POKEY at $4000
//	bit 2   bank switched (SuperGame) cartridge
//	bit 3-7 reserved
//
// Any non-zero value selects 7800 mode. Zero means the console starts in
// 2600 mode.
type Control uint8

// ControlDefault is the value written when no other value is specified. It
// is the value found in retail cartridges such as Choplifter and Asteroids.
//
// Note that decoding the value bit by bit reports PAL. Retail NTSC
// cartridges carry the same value so the TV bit is reported but not trusted.
const ControlDefault = Control(0x01)

// Masks for the control byte.
const (
	MaskTV           = 0x01
	MaskPokey        = 0x02
	MaskBankSwitched = 0x04
	MaskReserved     = 0xf8
)

// PAL returns true if bit 0 is set.
func (c Control) PAL() bool {
	return c&MaskTV == MaskTV
}

// Pokey returns true if bit 1 is set.
func (c Control) Pokey() bool {
	return c&MaskPokey == MaskPokey
}

// BankSwitched returns true if bit 2 is set.
func (c Control) BankSwitched() bool {
	return c&MaskBankSwitched == MaskBankSwitched
}

// Reserved returns the value of the reserved bits.
func (c Control) Reserved() uint8 {
	return uint8(c) & MaskReserved
}

// Is7800 returns true if the control byte selects 7800 mode.
func (c Control) Is7800() bool {
	return c != 0
}

// TV returns the TV format as a string.
func (c Control) TV() string {
	if c.PAL() {
		return "PAL"
	}
	return "NTSC"
}

func (c Control) String() string {
	if !c.Is7800() {
		return "2600 mode"
	}

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("7800 mode, %s", c.TV()))
	if c.Pokey() {
		s.WriteString(", POKEY@$4000")
	}
	if c.BankSwitched() {
		s.WriteString(", bank switched")
	}
	if c.Reserved() != 0 {
		s.WriteString(fmt.Sprintf(", reserved bits %#02x", c.Reserved()))
	}
	return s.String()
}

// yesNo is used when describing the bits of the control byte.
func yesNo(b bool, yes string) string {
	if b {
		return yes
	}
	return "No"
}
