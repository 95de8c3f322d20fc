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

import "fmt"

// AddressingMode of the few instructions that are recognised.
type AddressingMode int

// List of addressing modes.
const (
	Implied AddressingMode = iota
	Immediate
	Absolute
)

func (m AddressingMode) String() string {
	switch m {
	case Immediate:
		return "#immediate"
	case Absolute:
		return "absolute"
	}
	return ""
}

// Definition of a 6502 instruction.
type Definition struct {
	OpCode         uint8
	Mnemonic       string
	AddressingMode AddressingMode
}

func (defn Definition) String() string {
	if defn.AddressingMode == Implied {
		return defn.Mnemonic
	}
	return fmt.Sprintf("%s %s", defn.Mnemonic, defn.AddressingMode)
}

// only the instructions commonly found at the start of boot code. this is
// not a disassembler
var definitions = map[uint8]Definition{
	0xa9: {OpCode: 0xa9, Mnemonic: "LDA", AddressingMode: Immediate},
	0xa2: {OpCode: 0xa2, Mnemonic: "LDX", AddressingMode: Immediate},
	0x8d: {OpCode: 0x8d, Mnemonic: "STA", AddressingMode: Absolute},
	0x4c: {OpCode: 0x4c, Mnemonic: "JMP", AddressingMode: Absolute},
	0x20: {OpCode: 0x20, Mnemonic: "JSR", AddressingMode: Absolute},
	0x60: {OpCode: 0x60, Mnemonic: "RTS", AddressingMode: Implied},
	0xea: {OpCode: 0xea, Mnemonic: "NOP", AddressingMode: Implied},
}

// Lookup returns the definition for the opcode and whether it is known.
func Lookup(opcode uint8) (Definition, bool) {
	defn, ok := definitions[opcode]
	return defn, ok
}

// Describe returns a short description of the byte when interpreted as an
// opcode.
func Describe(opcode uint8) string {
	if defn, ok := Lookup(opcode); ok {
		return defn.String()
	}
	return "data/unknown opcode"
}
