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

package terminal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/sig7800/terminal"
	"github.com/jetsetilly/sig7800/test"
)

func TestPens(t *testing.T) {
	plain := terminal.NewPens(false)
	test.ExpectEquality(t, plain, terminal.Pens{})
	test.ExpectEquality(t, plain.Colorize(plain.Pass, "ok"), "ok")

	col := terminal.NewPens(true)
	test.ExpectEquality(t, col.Pass, "\033[92m")
	test.ExpectEquality(t, col.Fail, "\033[91m")
	test.ExpectEquality(t, col.Title, "\033[36;1m")
	test.ExpectEquality(t, col.Colorize(col.Fail, "bad"), "\033[91mbad\033[0m")
}

func TestIsTerminal(t *testing.T) {
	// a regular file is never a terminal
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	test.DemandSuccess(t, err)
	defer f.Close()

	test.ExpectFailure(t, terminal.IsTerminal(f))
	test.ExpectFailure(t, terminal.IsTerminal(nil))
}

func TestBytes(t *testing.T) {
	b := []byte{0x04, 'A', 'T', 'A', 'R', 'I', 0x7f, 0x00}
	test.ExpectEquality(t, terminal.ASCII(b), ".ATARI..")
	test.ExpectEquality(t, terminal.Hex(b), "04 41 54 41 52 49 7F 00")
	test.ExpectEquality(t, terminal.Hex(nil), "")
}
