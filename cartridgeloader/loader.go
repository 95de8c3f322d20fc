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

// Package cartridgeloader is used to specify and load the ROM image to be
// inspected or patched.
//
// The loader understands three formats:
//
//	A78     128 byte container header followed by the ROM image
//	BIN     the ROM image with no header
//	HEADER  a C source header with a ROM_DATA array (see cheader package)
//
// The format can be forced or left to the loader to decide:
//
//	cl := cartridgeloader.NewLoader("astrowing.a78", "AUTO")
//	err := cl.Load()
//
// With AUTO the decision is made by file extension and, if the extension is
// not recognised, by looking at the data. An AUTO A78 file only has its
// header removed if the header carries the ATARI7800 magic. A forced A78
// file always has the first 128 bytes removed.
package cartridgeloader

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/sig7800/a78"
	"github.com/jetsetilly/sig7800/cheader"
	"github.com/jetsetilly/sig7800/curated"
	"github.com/jetsetilly/sig7800/logger"
	"github.com/jetsetilly/sig7800/paths"
)

// Error patterns.
const (
	FileError     = "cartridgeloader: %v"
	UnknownFormat = "cartridgeloader: unknown format (%s)"
	HashMismatch  = "cartridgeloader: unexpected hash value (%s)"
)

// List of valid formats.
const (
	FormatAuto   = "AUTO"
	FormatA78    = "A78"
	FormatBin    = "BIN"
	FormatHeader = "HEADER"
)

// FileExtensions is the list of file extensions that are recognised by the
// loader when the format is AUTO.
var FileExtensions = [...]string{".A78", ".BIN", ".ROM", ".H"}

const logTag = "loader"

// Loader specifies the ROM image to load.
type Loader struct {
	// filename of the file to load
	Filename string

	// one of the Format* values. after a load operation this will never be
	// FormatAuto
	Format string

	// expected sha1 hash of the ROM image. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// the ROM image. never includes the container header
	Data []byte

	// the container header of an A78 file. nil for other formats or if the
	// header was not removed
	Container *a78.Header

	// the name found in the comment of a HEADER file
	headerName string
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The format argument should be one of the Format* values. The empty string
// is the same as FormatAuto. The filename can begin with a tilde to indicate
// the user's home directory.
func NewLoader(filename string, format string) Loader {
	cl := Loader{
		Filename: paths.ExpandHome(filename),
		Format:   FormatAuto,
	}

	format = strings.TrimSpace(strings.ToUpper(format))
	if format != "" {
		cl.Format = format
	}

	return cl
}

// ShortName returns a shortened version of the Filename field. The path and
// the extension are removed.
func (cl Loader) ShortName() string {
	s := filepath.Base(cl.Filename)
	return strings.TrimSuffix(s, filepath.Ext(cl.Filename))
}

// GameName is the best name for the loaded ROM. In order of preference: the
// container header title or name, the name in a C header comment, the short
// name of the file.
func (cl Loader) GameName() string {
	if cl.Container != nil {
		if n := cl.Container.GameName(); n != "" {
			return n
		}
	}
	if cl.headerName != "" {
		return cl.headerName
	}
	return cl.ShortName()
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the file. Calling Load() on a loader that has already loaded is a
// no-op.
func (cl *Loader) Load() error {
	if cl.HasLoaded() {
		return nil
	}

	raw, err := os.ReadFile(cl.Filename)
	if err != nil {
		return curated.Errorf(FileError, err)
	}

	format := cl.Format
	if format == FormatAuto {
		format = detectFormat(cl.Filename, raw)
		logger.Logf(logger.Allow, logTag, "%s detected as %s", filepath.Base(cl.Filename), format)
	}

	switch format {
	case FormatBin:
		cl.Data = raw

	case FormatA78:
		if cl.Format == FormatAuto && !a78.HasMagic(raw) {
			logger.Logf(logger.Allow, logTag, "no container magic, treating %s as raw data", filepath.Base(cl.Filename))
			cl.Data = raw
			break // switch
		}

		h, err := a78.Parse(raw)
		if err != nil {
			return curated.Errorf(FileError, err)
		}
		cl.Container = &h
		cl.Data = raw[a78.HeaderSize:]
		logger.Logf(logger.Allow, logTag, "stripped %d byte container header", a78.HeaderSize)

	case FormatHeader:
		h, err := cheader.Parse(raw)
		if err != nil {
			return curated.Errorf(FileError, err)
		}
		cl.Data = h.Data
		cl.headerName = h.Name

	default:
		return curated.Errorf(UnknownFormat, format)
	}

	cl.Format = format

	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))
	if cl.Hash != "" && cl.Hash != hash {
		cl.Data = nil
		cl.Container = nil
		return curated.Errorf(HashMismatch, hash)
	}
	cl.Hash = hash

	logger.Logf(logger.Allow, logTag, "%d bytes (sha1 %s)", len(cl.Data), cl.Hash)

	return nil
}

var headerSniff = []byte("ROM_DATA[")

func detectFormat(filename string, data []byte) string {
	switch strings.ToUpper(filepath.Ext(filename)) {
	case ".A78":
		return FormatA78
	case ".BIN", ".ROM":
		return FormatBin
	case ".H":
		return FormatHeader
	}

	if a78.HasMagic(data) {
		return FormatA78
	}
	if bytes.Contains(data, headerSniff) {
		return FormatHeader
	}
	return FormatBin
}
