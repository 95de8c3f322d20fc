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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package but the pattern is retained so
// that it can be used to classify the error later. Packages that raise
// curated errors export their patterns as constants. For example:
//
//	const UnsupportedSize = "memorymap: unsupported ROM size (%d bytes)"
//
//	err := curated.Errorf(UnsupportedSize, len(data))
//
//	if curated.Is(err, UnsupportedSize) {
//		os.Exit(1)
//	}
//
// The Has() function is similar to Is() but checks if a pattern occurs
// anywhere in the error chain. The chain is formed by passing a curated error
// as one of the values to another call to Errorf().
//
//	f := curated.Errorf("patch: %v", err)
//
//	curated.Is(f, UnsupportedSize)  // false
//	curated.Has(f, UnsupportedSize) // true
//
// The Error() function removes adjacent duplicate parts of the message so it
// is safe to wrap an error with a pattern that has the same prefix.
package curated
