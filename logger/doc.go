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

// Package logger is the central log for the application. Packages add
// entries with Log() or Logf() and the main package decides what to do with
// them: echo them as they happen (the -log flag) or print the tail of the log
// when a mode ends with an error.
//
// Every log request carries a Permission. Use logger.Allow for unconditional
// logging or supply a type that implements the Permission interface to make
// logging conditional on some state of the caller.
//
// The log has a maximum number of entries. Older entries are dropped when
// the maximum is exceeded. Consecutive identical entries are folded into one
// entry with a repeat count.
package logger
