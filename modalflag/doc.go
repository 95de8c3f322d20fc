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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are supplied once with NewArgs() and then Parse() is called with
// no arguments. This allows the argument list to be consumed one mode at a
// time:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("CHECK", "PATCH")
//
//	p, err := md.Parse()
//	if err != nil || p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "CHECK":
//		md.NewMode()
//		format := md.AddString("format", "AUTO", "input format")
//		p, err := md.Parse()
//		...
//	}
//
// The first sub-mode in the list is the default. If the next argument is not
// the name of a sub-mode then the default is selected and the argument is
// left for the next call to Parse(). Sub-mode names are not case sensitive.
//
// Once the flags for a mode have been parsed, non-flag arguments are
// retrieved with RemainingArgs() or GetArg().
//
// If the -help flag is found then Parse() prints help for the current mode to
// the Output writer and returns ParseHelp.
package modalflag
