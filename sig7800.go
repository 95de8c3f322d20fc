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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/sig7800/a78"
	"github.com/jetsetilly/sig7800/cartridgeloader"
	"github.com/jetsetilly/sig7800/cheader"
	"github.com/jetsetilly/sig7800/curated"
	"github.com/jetsetilly/sig7800/logger"
	"github.com/jetsetilly/sig7800/memorymap"
	"github.com/jetsetilly/sig7800/modalflag"
	"github.com/jetsetilly/sig7800/paths"
	"github.com/jetsetilly/sig7800/prefs"
	"github.com/jetsetilly/sig7800/signature"
	"github.com/jetsetilly/sig7800/terminal"
	"github.com/jetsetilly/sig7800/vectors"
	"github.com/jetsetilly/sig7800/version"
)

// error patterns raised by the command line handling
const (
	usageError  = "usage: %v"
	outputError = "output: %v"
)

// exit codes
const (
	exitSuccess     = 0
	exitUnsupported = 1
	exitInput       = 2
)

// number of log entries printed after an error
const logTail = 10

// environment for a single run of the program
type environment struct {
	md    *modalflag.Modes
	prefs prefs.Preferences
	pens  terminal.Pens
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, output io.Writer, errOutput io.Writer) int {
	env := &environment{
		md: &modalflag.Modes{Output: output},
	}

	// every run starts with an empty log so that the tail printed on error
	// only describes this run
	logger.Clear()

	env.md.NewArgs(args)
	env.md.NewMode()
	env.md.AddSubModes("CHECK", "PATCH", "CONVERT", "A78", "VECTORS", "PEEK", "VERSION")
	prefsPath := env.md.AddString("prefs", prefs.DefaultPath(), "preferences file")

	p, err := env.md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitSuccess

	case modalflag.ParseError:
		fmt.Fprintf(errOutput, "* error: %v\n", err)
		return exitInput
	}

	env.prefs, err = prefs.Load(*prefsPath)
	if err != nil {
		fmt.Fprintf(errOutput, "* error: %v\n", err)
		return exitInput
	}

	if f, ok := output.(*os.File); ok {
		env.pens = terminal.NewPens(env.prefs.Color && terminal.IsTerminal(f))
	}

	switch env.md.Mode() {
	case "CHECK":
		err = check(env)
	case "PATCH":
		err = emit(env, true)
	case "CONVERT":
		err = emit(env, false)
	case "A78":
		err = container(env)
	case "VECTORS":
		err = vectorsMode(env)
	case "PEEK":
		err = peek(env)
	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(errOutput, "* error in %s mode: %s\n", env.md, err)
		logger.Tail(errOutput, logTail)
		return exitCode(err)
	}

	return exitSuccess
}

// exitCode maps an error to the exit code of the program. unsupported image
// sizes are distinguished from missing or malformed input.
func exitCode(err error) int {
	// errors that have not been curated are unexpected
	if !curated.IsAny(err) {
		return exitUnsupported
	}

	switch {
	case curated.Has(err, memorymap.UnsupportedSize):
		return exitUnsupported
	case curated.Has(err, signature.PatchOutOfBounds):
		return exitUnsupported
	case curated.Has(err, cartridgeloader.FileError):
		return exitInput
	case curated.Has(err, cartridgeloader.UnknownFormat):
		return exitInput
	case curated.Has(err, cartridgeloader.HashMismatch):
		return exitInput
	case curated.Has(err, cheader.Malformed):
		return exitInput
	case curated.Has(err, a78.TooShort):
		return exitInput
	case curated.Has(err, vectors.BadProbe):
		return exitInput
	case curated.Has(err, usageError):
		return exitInput
	}
	return exitUnsupported
}

// flags common to all modes that load a ROM image
type loadFlags struct {
	format *string
	log    *bool
}

func addLoadFlags(md *modalflag.Modes) loadFlags {
	return loadFlags{
		format: md.AddString("format", cartridgeloader.FormatAuto, "force file format: A78, BIN, HEADER"),
		log:    md.AddBool("log", false, "echo log to stderr"),
	}
}

// load the file named by the first argument. with no argument the header
// named in the preferences is loaded.
func (env *environment) load(lf loadFlags) (cartridgeloader.Loader, error) {
	if *lf.log {
		logger.SetEcho(os.Stderr)
	}

	filename := env.md.GetArg(0)
	if filename == "" {
		filename = env.prefs.Output
	}

	cl := cartridgeloader.NewLoader(filename, *lf.format)
	err := cl.Load()
	if err != nil {
		return cl, err
	}

	fmt.Fprintf(env.md.Output, "File: %s (%s, %d bytes)\n", cl.Filename, cl.Format, len(cl.Data))
	return cl, nil
}

func check(env *environment) error {
	md := env.md
	md.NewMode()

	lf := addLoadFlags(md)
	viz := md.AddBool("memviz", false, "write report as a graphviz dot file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return wrapUsage(err)
	}

	if len(md.RemainingArgs()) > 1 {
		return curated.Errorf(usageError, fmt.Sprintf("too many arguments for %s mode", md))
	}

	cl, err := env.load(lf)
	if err != nil {
		return err
	}

	r, err := signature.Inspect(cl.Data)
	if err != nil {
		return err
	}
	fmt.Fprintln(md.Output)
	r.Write(md.Output, env.pens)

	if *viz {
		fn := fmt.Sprintf("%s.dot", paths.UniqueFilename("memviz", cl.ShortName()))
		err = writeMemviz(fn, &r)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "\nReport graph written to %s\n", fn)
	}

	return nil
}

func writeMemviz(filename string, r *signature.Report) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(outputError, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(outputError, err)
		}
	}()

	memviz.Map(f, r)

	return nil
}

// emit writes the ROM image as a C header. the image is patched with the
// control byte and signature first if patching is true, otherwise it is
// written unchanged and may be any size.
func emit(env *environment, patching bool) error {
	md := env.md
	md.NewMode()

	lf := addLoadFlags(md)
	name := md.AddString("name", env.prefs.Name, "game name for the header comment")

	var control *uint
	if patching {
		control = md.AddUint("control", uint(env.prefs.Control), "control byte value")
		md.AdditionalHelp("The patched image is written as a C header. The output file defaults\nto the path in the preferences file.")
	} else {
		md.AdditionalHelp("The image is written as a C header without the control byte or\nsignature. The output file defaults to the path in the preferences file.")
	}

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return wrapUsage(err)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return curated.Errorf(usageError, fmt.Sprintf("ROM file required for %s mode", md))
	case 1, 2:
	default:
		return curated.Errorf(usageError, fmt.Sprintf("too many arguments for %s mode", md))
	}

	if patching && *control > 0xff {
		return curated.Errorf(usageError, fmt.Sprintf("control byte out of range (%d)", *control))
	}

	md.Visit(func(flg string) {
		switch flg {
		case "name", "control":
			logger.Logf(logger.Allow, "prefs", "%s preference overridden by command line", flg)
		}
	})

	cl, err := env.load(lf)
	if err != nil {
		return err
	}

	if patching {
		err = signature.Patch(cl.Data, signature.Control(*control))
		if err != nil {
			return err
		}
	}

	gameName := *name
	if gameName == "" {
		gameName = cl.GameName()
	}

	outName := md.GetArg(1)
	if outName == "" {
		outName = env.prefs.Output
	}
	outName = paths.ExpandHome(outName)

	err = writeHeader(outName, gameName, cl.Data)
	if err != nil {
		return err
	}

	if !patching {
		fmt.Fprintf(md.Output, "Game: %s\n", gameName)
		fmt.Fprintf(md.Output, "ROM Size: %d bytes\n", len(cl.Data))
		fmt.Fprintf(md.Output, "Created %s\n", outName)
		return nil
	}

	fmt.Fprintf(md.Output, "Control byte 0x%02X and signature written\n", *control)
	fmt.Fprintf(md.Output, "Header written to %s (%s)\n\n", outName, gameName)

	r, err := signature.Inspect(cl.Data)
	if err != nil {
		return err
	}
	r.Write(md.Output, env.pens)

	return nil
}

func writeHeader(filename string, name string, data []byte) (rerr error) {
	err := os.MkdirAll(filepath.Dir(filename), 0755)
	if err != nil {
		return curated.Errorf(outputError, err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(outputError, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(outputError, err)
		}
	}()

	err = cheader.Emit(f, name, data)
	if err != nil {
		return curated.Errorf(outputError, err)
	}

	logger.Logf(logger.Allow, "output", "%d bytes written to %s", len(data), filename)

	return nil
}

// container dumps the header of an .a78 file and checks the ROM image that
// follows it
func container(env *environment) error {
	md := env.md
	md.NewMode()

	log := md.AddBool("log", false, "echo log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return wrapUsage(err)
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf(usageError, fmt.Sprintf("one .a78 file required for %s mode", md))
	}

	format := cartridgeloader.FormatA78
	cl, err := env.load(loadFlags{format: &format, log: log})
	if err != nil {
		return err
	}

	fmt.Fprintln(md.Output)
	cl.Container.Write(md.Output)
	fmt.Fprintln(md.Output)

	r, err := signature.Inspect(cl.Data)
	if err != nil {
		return err
	}
	r.Write(md.Output, env.pens)

	return nil
}

func vectorsMode(env *environment) error {
	md := env.md
	md.NewMode()

	lf := addLoadFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return wrapUsage(err)
	}

	if len(md.RemainingArgs()) > 1 {
		return curated.Errorf(usageError, fmt.Sprintf("too many arguments for %s mode", md))
	}

	cl, err := env.load(lf)
	if err != nil {
		return err
	}

	a, err := vectors.Analyse(cl.Data)
	if err != nil {
		return err
	}
	fmt.Fprintln(md.Output)
	a.Write(md.Output, env.pens)

	return nil
}

func peek(env *environment) error {
	md := env.md
	md.NewMode()

	lf := addLoadFlags(md)

	md.AdditionalHelp("Addresses are hexadecimal with an optional expected value. For example:\n\n  sig7800 peek game.bin $83F8=25 $8BF8")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return wrapUsage(err)
	}

	if len(md.RemainingArgs()) < 2 {
		return curated.Errorf(usageError, fmt.Sprintf("ROM file and at least one address required for %s mode", md))
	}

	var probes []vectors.Probe
	for _, a := range md.RemainingArgs()[1:] {
		pr, err := vectors.ParseProbe(a)
		if err != nil {
			return err
		}
		probes = append(probes, pr)
	}

	cl, err := env.load(lf)
	if err != nil {
		return err
	}

	l, results, err := vectors.Peek(cl.Data, probes)
	if err != nil {
		return err
	}
	fmt.Fprintln(md.Output)
	vectors.WritePeek(md.Output, l, results, env.pens)

	return nil
}

// flag parsing errors are usage errors
func wrapUsage(err error) error {
	if err == nil {
		return nil
	}
	return curated.Errorf(usageError, err)
}
