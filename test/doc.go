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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectSuccess() and ExpectFailure() functions test for success and
// failure under generic conditions. A bool is a success if it is true and an
// error is a success if it is nil. The untyped nil value is considered a
// success because that is how a nil error arrives in an interface{}.
//
// ExpectEquality() and ExpectInequality() compare like-typed values. The
// Demand variants do the same but stop the test immediately on failure. This
// is useful when later parts of a test depend on the earlier result, for
// example when the length of a slice must be correct before it is indexed.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output. The Compare() function can then be used to test
// for equality.
package test
