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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/sig7800/a78"
	"github.com/jetsetilly/sig7800/cheader"
	"github.com/jetsetilly/sig7800/memorymap"
	"github.com/jetsetilly/sig7800/signature"
)

// runner calls run() with a preferences file in a temporary directory. the
// preferences file does not exist unless it is written by the test
type runner struct {
	dir   string
	prefs string
	out   bytes.Buffer
	err   bytes.Buffer
}

func newRunner(t *testing.T) *runner {
	dir := t.TempDir()
	return &runner{
		dir:   dir,
		prefs: filepath.Join(dir, "sig7800.toml"),
	}
}

func (r *runner) run(args ...string) int {
	r.out.Reset()
	r.err.Reset()
	return run(append([]string{"-prefs", r.prefs}, args...), &r.out, &r.err)
}

func (r *runner) file(t *testing.T, name string, data []byte) string {
	t.Helper()
	pth := filepath.Join(r.dir, name)
	require.NoError(t, os.WriteFile(pth, data, 0600))
	return pth
}

func image(size int) []byte {
	rom := make([]byte, size)
	for i := range rom {
		rom[i] = uint8(i * 3)
	}
	return rom
}

func TestVersionMode(t *testing.T) {
	r := newRunner(t)
	require.Equal(t, 0, r.run("version"))
	require.True(t, strings.HasPrefix(r.out.String(), "Sig7800 "))
}

func TestCheckMode(t *testing.T) {
	r := newRunner(t)

	rom := image(memorymap.Size48K)
	pth := r.file(t, "unpatched.bin", rom)

	// a missing signature is a verdict and not an error
	require.Equal(t, 0, r.run("check", pth))
	require.Contains(t, r.out.String(), "Memory map: 48K ($4000-$FFFF)")
	require.Contains(t, r.out.String(), "✗ Signature MISSING OR INCORRECT")
	require.Empty(t, r.err.String())

	require.NoError(t, signature.Patch(rom, signature.ControlDefault))
	pth = r.file(t, "patched.bin", rom)

	// check is the default mode
	require.Equal(t, 0, r.run(pth))
	require.Contains(t, r.out.String(), "✓ Control byte non-zero (7800 mode)")
	require.Contains(t, r.out.String(), "✓ Signature FOUND")
}

func TestCheckModeErrors(t *testing.T) {
	r := newRunner(t)

	require.Equal(t, 2, r.run("check", filepath.Join(r.dir, "missing.bin")))
	require.Contains(t, r.err.String(), "* error in CHECK mode: ")

	pth := r.file(t, "odd.bin", image(memorymap.Size48K+1))
	require.Equal(t, 1, r.run("check", pth))
	require.Contains(t, r.err.String(), "unsupported ROM size (49153 bytes)")

	pth = r.file(t, "broken.h", []byte("const uint8_t ROM_DATA[2] = { 0x01 };"))
	require.Equal(t, 2, r.run("check", pth))

	require.Equal(t, 2, r.run("check", "-nosuchflag", pth))
	require.Equal(t, 2, r.run("check", "a.bin", "b.bin"))
}

func TestErrorLogTail(t *testing.T) {
	r := newRunner(t)

	pth := r.file(t, "first.rom", image(memorymap.Size16K))
	require.Equal(t, 0, r.run("check", "-format", "AUTO", pth))

	// the log tail after an error only shows entries from the failing run
	require.Equal(t, 2, r.run("check", filepath.Join(r.dir, "second.bin")))
	require.Contains(t, r.err.String(), "* error in CHECK mode: ")
	require.NotContains(t, r.err.String(), "first.rom")
}

func TestConvertMode(t *testing.T) {
	r := newRunner(t)

	hdr := make([]byte, a78.HeaderSize)
	hdr[0] = 0x04
	copy(hdr[1:], a78.Magic)
	copy(hdr[17:], "Astro Wing")
	rom := image(memorymap.Size48K)

	pth := r.file(t, "astrowing.a78", append(hdr, rom...))
	out := filepath.Join(r.dir, "include", "game_rom.h")

	require.Equal(t, 0, r.run("convert", pth, out))
	require.Contains(t, r.out.String(), "Game: Astro Wing")
	require.Contains(t, r.out.String(), "ROM Size: 49152 bytes")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	h, err := cheader.Parse(b)
	require.NoError(t, err)
	require.Equal(t, "Astro Wing", h.Name)

	// the image is written exactly as it was loaded
	require.Equal(t, rom, h.Data)

	// any size can be converted
	pth = r.file(t, "odd.bin", image(1000))
	require.Equal(t, 0, r.run("convert", "-name", "Odd", pth, out))
	b, err = os.ReadFile(out)
	require.NoError(t, err)
	h, err = cheader.Parse(b)
	require.NoError(t, err)
	require.Equal(t, image(1000), h.Data)
	require.Equal(t, "Odd", h.Name)

	// control is only a flag of the patch mode
	require.Equal(t, 2, r.run("convert", "-control", "3", pth, out))
}

func TestPatchMode(t *testing.T) {
	r := newRunner(t)

	rom := image(memorymap.Size32K)
	pth := r.file(t, "game.bin", rom)
	out := filepath.Join(r.dir, "include", "game_rom.h")

	require.Equal(t, 0, r.run("patch", "-name", "Test Game", pth, out))
	require.Contains(t, r.out.String(), "✓ Signature FOUND")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	data, err := cheader.Extract(f)
	require.NoError(t, err)
	require.Len(t, data, memorymap.Size32K)

	require.NoError(t, signature.Patch(rom, signature.ControlDefault))
	require.Equal(t, rom, data)

	// the output is a valid input
	require.Equal(t, 0, r.run("check", out))
	require.Contains(t, r.out.String(), "✓ Signature FOUND")
}

func TestPatchModeControl(t *testing.T) {
	r := newRunner(t)
	pth := r.file(t, "game.bin", image(memorymap.Size16K))
	out := filepath.Join(r.dir, "out.h")

	require.Equal(t, 0, r.run("patch", "-control", "3", pth, out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	h, err := cheader.Parse(b)
	require.NoError(t, err)
	require.Equal(t, "game", h.Name)
	require.Equal(t, uint8(0x03), h.Data[0x3f7b])

	require.Equal(t, 2, r.run("patch", "-control", "256", pth, out))
	require.Equal(t, 2, r.run("patch", "-control", "-1", pth, out))
	require.Equal(t, 2, r.run("patch"))
}

func TestPatchModeUnsupported(t *testing.T) {
	r := newRunner(t)
	pth := r.file(t, "game.bin", image(1000))
	out := filepath.Join(r.dir, "out.h")

	require.Equal(t, 1, r.run("patch", pth, out))
	require.NoFileExists(t, out)
}

func TestPatchModePrefs(t *testing.T) {
	r := newRunner(t)
	out := filepath.Join(r.dir, "fromprefs.h")
	r.file(t, "sig7800.toml", []byte("output = \""+filepath.ToSlash(out)+"\"\nname = \"Prefs Name\"\ncolor = false\n"))

	pth := r.file(t, "game.bin", image(memorymap.Size48K))
	require.Equal(t, 0, r.run("patch", pth))
	require.FileExists(t, out)

	// the header named in the preferences is checked when there is no
	// argument
	require.Equal(t, 0, r.run("check"))
	require.Contains(t, r.out.String(), "✓ Signature FOUND")

	// bad preferences
	r.file(t, "sig7800.toml", []byte("control = 1000\n"))
	require.Equal(t, 2, r.run("check", pth))
}

func TestA78Mode(t *testing.T) {
	r := newRunner(t)

	hdr := make([]byte, a78.HeaderSize)
	hdr[0] = 0x04
	copy(hdr[1:], a78.Magic)
	copy(hdr[17:], "Astro Wing")
	rom := image(memorymap.Size48K)
	require.NoError(t, signature.Patch(rom, signature.ControlDefault))

	pth := r.file(t, "astrowing.a78", append(hdr, rom...))
	require.Equal(t, 0, r.run("a78", pth))
	require.Contains(t, r.out.String(), "Bytes 17-48 (title): \"Astro Wing\"")
	require.Contains(t, r.out.String(), "=== FULL HEADER DUMP ===")
	require.Contains(t, r.out.String(), "✓ Signature FOUND")

	pth = r.file(t, "short.a78", hdr[:50])
	require.Equal(t, 2, r.run("a78", pth))
}

func TestVectorsMode(t *testing.T) {
	r := newRunner(t)

	rom := make([]byte, memorymap.Size16K)
	rom[0x3ffc] = 0x00
	rom[0x3ffd] = 0xd0
	rom[0x1000] = 0xa9

	pth := r.file(t, "game.bin", rom)
	require.Equal(t, 0, r.run("vectors", pth))
	require.Contains(t, r.out.String(), "At $FFFC-$FFFD: $D000 → $D000")
	require.Contains(t, r.out.String(), "First instruction: LDA #immediate")
}

func TestPeekMode(t *testing.T) {
	r := newRunner(t)

	rom := make([]byte, memorymap.Size48K)
	rom[0x83f8-0x4000] = 0x25
	pth := r.file(t, "game.bin", rom)

	require.Equal(t, 0, r.run("peek", pth, "$83F8=25", "$8BF8=42", "$1000"))
	require.Contains(t, r.out.String(), "$83F8 -> ROM[17400] = 0x25 (expected 0x25) ✓")
	require.Contains(t, r.out.String(), "$8BF8 -> ROM[19448] = 0x00 (expected 0x42) MISMATCH!")
	require.Contains(t, r.out.String(), "$1000 -> OUT OF RANGE")

	require.Equal(t, 2, r.run("peek", pth, "nothex"))
	require.Equal(t, 2, r.run("peek", pth))
}

func TestWriteMemviz(t *testing.T) {
	r := newRunner(t)

	rom := image(memorymap.Size16K)
	require.NoError(t, signature.Patch(rom, signature.ControlDefault))
	rep, err := signature.Inspect(rom)
	require.NoError(t, err)

	fn := filepath.Join(r.dir, "report.dot")
	require.NoError(t, writeMemviz(fn, &rep))

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	require.Contains(t, string(b), "digraph")

	err = writeMemviz(filepath.Join(r.dir, "missing", "report.dot"), &rep)
	require.Error(t, err)
	require.Equal(t, exitUnsupported, exitCode(err))
}
