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

// Package terminal decides whether output should be coloured and provides the
// ANSI pens used to colour the verdict lines of a report.
//
// Pens are only produced when the output is a terminal. Detection uses
// termios on posix systems: a file is a terminal if its attributes can be
// read.
package terminal

import (
	"fmt"
	"strings"
)

const (
	colRed     = 1
	colGreen   = 2
	colYellow  = 3
	colCyan    = 6
	colDefault = 9
)

const (
	targetPen       = 3
	targetBrightPen = 9
)

const attrBold = 1

// Pens are the ANSI sequences used for the different kinds of report line.
// The zero value is a set of empty pens, suitable for plain output.
type Pens struct {
	Pass   string
	Fail   string
	Warn   string
	Title  string
	Normal string
}

// colorBuild creates the ANSI sequence for a pen with an optional bold
// attribute.
func colorBuild(col int, bright bool, bold bool) string {
	s := strings.Builder{}
	s.WriteString("\033[")

	target := targetPen
	if bright {
		target = targetBrightPen
	}
	s.WriteString(fmt.Sprintf("%d%d", target, col))

	if bold {
		s.WriteString(fmt.Sprintf(";%d", attrBold))
	}

	s.WriteString("m")
	return s.String()
}

// NewPens returns coloured pens if enabled is true and empty pens otherwise.
func NewPens(enabled bool) Pens {
	if !enabled {
		return Pens{}
	}
	return Pens{
		Pass:   colorBuild(colGreen, true, false),
		Fail:   colorBuild(colRed, true, false),
		Warn:   colorBuild(colYellow, true, false),
		Title:  colorBuild(colCyan, false, true),
		Normal: "\033[0m",
	}
}

// Colorize wraps the string with the pen and the normal pen. Empty pens
// return the string unchanged.
func (p Pens) Colorize(pen string, s string) string {
	if pen == "" {
		return s
	}
	return pen + s + p.Normal
}
