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

// Package prefs holds the user preferences for sig7800. Preferences are read
// from a TOML file in the resource directory (see the paths package). A
// missing file is not an error, the defaults are used instead.
//
// Example preferences file:
//
//	# where the PATCH mode writes the generated header
//	output = "include/game_rom.h"
//
//	# control byte written to $FF7B
//	control = 1
//
//	# game name used in the generated header comment
//	name = ""
//
//	# colour verdict lines when output is a terminal
//	color = true
//
// Command line flags take precedence over values in the file.
package prefs

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/komkom/toml"

	"github.com/jetsetilly/sig7800/curated"
	"github.com/jetsetilly/sig7800/logger"
	"github.com/jetsetilly/sig7800/paths"
)

// Filename is the name of the preferences file in the resource directory.
const Filename = "sig7800.toml"

// Invalid is the pattern used for errors in the preferences file.
const Invalid = "prefs: %v"

const logTag = "prefs"

// Preferences for the application.
type Preferences struct {
	Output  string `json:"output"`
	Control int    `json:"control"`
	Name    string `json:"name"`
	Color   bool   `json:"color"`
}

// Defaults returns the preferences used when no preferences file exists.
func Defaults() Preferences {
	return Preferences{
		Output:  "include/game_rom.h",
		Control: 0x01,
		Color:   true,
	}
}

// DefaultPath is the location of the preferences file.
func DefaultPath() string {
	return paths.ResourcePath(Filename)
}

// Load preferences from the named file.
func Load(pth string) (Preferences, error) {
	f, err := os.Open(pth)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Logf(logger.Allow, logTag, "no preferences file at %s, using defaults", pth)
			return Defaults(), nil
		}
		return Defaults(), curated.Errorf(Invalid, err)
	}
	defer f.Close()

	p, err := Read(f)
	if err != nil {
		return p, err
	}
	logger.Logf(logger.Allow, logTag, "loaded %s", pth)

	return p, nil
}

// Read preferences in TOML format. Values not present in the input retain
// their default value.
func Read(r io.Reader) (Preferences, error) {
	p := Defaults()

	dec := json.NewDecoder(toml.New(r))
	dec.DisallowUnknownFields()

	err := dec.Decode(&p)
	if err != nil && !errors.Is(err, io.EOF) {
		return Defaults(), curated.Errorf(Invalid, err)
	}

	if err := p.Validate(); err != nil {
		return Defaults(), err
	}

	return p, nil
}

// Validate checks that the preference values are usable.
func (p Preferences) Validate() error {
	if p.Control < 0 || p.Control > 0xff {
		return curated.Errorf(Invalid, "control value must be between 0 and 255")
	}
	if p.Output == "" {
		return curated.Errorf(Invalid, "output path cannot be empty")
	}
	return nil
}
