// This file is part of Rollback.
//
// Rollback is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rollback is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rollback.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/dustin/go-humanize"

	"github.com/jetsetilly/rollback/layout"
	"github.com/jetsetilly/rollback/logger"
	"github.com/jetsetilly/rollback/modalflag"
	"github.com/jetsetilly/rollback/paths"
	"github.com/jetsetilly/rollback/performance"
	"github.com/jetsetilly/rollback/prefs"
	"github.com/jetsetilly/rollback/savestate"
	"github.com/jetsetilly/rollback/soak"
	"github.com/jetsetilly/rollback/statsview"
	"github.com/jetsetilly/rollback/version"
)

const defaultLayout = "melee-ntsc-1.02"

func main() {
	// the context is cancelled on the first interrupt signal. long running
	// modes check the context and end cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])

	os.Exit(launch(ctx, md))
}

// launch returns the value to be used with os.Exit().
func launch(ctx context.Context, md *modalflag.Modes) int {
	md.NewMode()
	md.AddSubModes("CATALOG", "SOAK", "MEMVIZ", "LAYOUTS", "VERSION")
	showVersion := md.AddBool("version", false, "show version information and exit")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		if err != nil {
			fmt.Fprintf(md.Output, "* error: %v\n", err)
		}
		return p.ExitValue()
	}

	if *showVersion {
		fmt.Fprintln(md.Output, version.String())
		return modalflag.ExitSuccess
	}

	switch md.Mode() {
	case "CATALOG":
		err = catalog(md)

	case "SOAK":
		err = soakTest(ctx, md)

	case "MEMVIZ":
		err = memoryGraph(md)

	case "LAYOUTS":
		err = layouts(md)

	case "VERSION":
		fmt.Fprintln(md.Output, version.String())
	}

	return md.Exit(err)
}

// the layout argument is optional for every mode that uses it
func layoutArg(md *modalflag.Modes) (*layout.Layout, error) {
	name, err := md.OptionalArg(defaultLayout)
	if err != nil {
		return nil, err
	}
	return layout.Find(name)
}

func catalog(md *modalflag.Modes) error {
	md.NewMode()

	force := md.AddBool("force", false, "recompute the catalog even if it is cached")
	dump := md.AddBool("yaml", false, "output the layout as YAML before the catalog")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(md.Output)
		defer logger.SetEcho(nil)
	}

	lyt, err := layoutArg(md)
	if err != nil {
		return err
	}

	if *dump {
		b, err := lyt.Marshal()
		if err != nil {
			return err
		}
		if _, err := md.Output.Write(b); err != nil {
			return err
		}
		fmt.Fprintln(md.Output)
	}

	cache := savestate.NewCatalogCache()
	cat := cache.FromLayout(lyt, *force)

	fmt.Fprintf(md.Output, "%s: %s\n", lyt.Key(), lyt.Description)
	fmt.Fprint(md.Output, cat)
	fmt.Fprintf(md.Output, "%d regions, %s per snapshot\n", cat.Len(), humanize.IBytes(cat.Size()))

	blocks := savestate.PreserveFromLayout(lyt)
	if len(blocks) > 0 {
		s := make([]string, 0, len(blocks))
		for _, b := range blocks {
			s = append(s, b.String())
		}
		fmt.Fprintf(md.Output, "preserved: %s\n", strings.Join(s, ", "))
	}

	return nil
}

func soakTest(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	cycles := md.AddInt("cycles", 100, "number of rollback cycles. zero to run until interrupted")
	frames := md.AddInt("frames", soak.DefaultConfig.Frames, "frames played between capture and rollback")
	writes := md.AddInt("writes", soak.DefaultConfig.Writes, "bytes changed every frame")
	duration := md.AddDuration("duration", 0, "maximum run time. zero for no limit")
	verify := md.AddBool("verify", false, "verify every restore with a digest")
	zeroSeed := md.AddBool("zeroseed", false, "use the same random numbers every run")
	stats := md.AddBool("statsview", false, "run stats server")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	prefsOverride := md.AddString("prefs", "", "preference overrides. eg. savestate.verify::true")
	profile := md.AddString("profile", "none", "run with profiling: CPU, MEM, TRACE or ALL (comma separated)")

	md.AdditionalHelp(
		`The SOAK mode creates a machine from the layout and captures, plays, rolls back
and replays frames until the number of cycles have been completed. A replay that
does not match the original play is reported as a mismatch.

The -verify flag is the same as -prefs "savestate.verify::true" except that it
only turns verification on.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(md.Output)
		defer logger.SetEcho(nil)
	}

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
		defer func() {
			if s := prefs.PopCommandLineStack(); s != "" {
				logger.Logf(logger.Allow, "rollback", "unused preferences: %s", s)
			}
		}()
	}

	lyt, err := layoutArg(md)
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	// preferences are loaded once for the session. the command line stack
	// has already been pushed
	ssPrefs, err := savestate.NewPreferences()
	if err != nil {
		return err
	}
	if *verify {
		err = ssPrefs.Verify.Set(true)
		if err != nil {
			return err
		}
	}

	cfg := soak.Config{
		Frames:   *frames,
		Writes:   *writes,
		ZeroSeed: *zeroSeed,
		Prefs:    ssPrefs,
	}

	sess, err := soak.NewSession(savestate.NewCatalogCache(), lyt, cfg)
	if err != nil {
		return err
	}
	defer sess.End()

	if *stats {
		sv := statsview.Launch(md.Output)
		defer sv.Stop()
	}

	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	var rep soak.Report
	start := time.Now()
	err = performance.RunProfiler(prf, paths.UniqueFilename("soak", lyt.Name), func() error {
		var err error
		rep, err = sess.Run(ctx, *cycles)
		return err
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintln(md.Output, rep)
	fmt.Fprintf(md.Output, "time:       %s (%.0f fps)\n", elapsed.Round(time.Millisecond),
		performance.CalcRate(rep.Frames, elapsed.Seconds()))

	if rep.Failed() {
		return fmt.Errorf("soak failed after %d cycles", rep.Cycles)
	}

	return nil
}

func memoryGraph(md *modalflag.Modes) error {
	md.NewMode()

	output := md.AddString("o", "", "output file. the default is a unique filename in the current directory")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	lyt, err := layoutArg(md)
	if err != nil {
		return err
	}

	fn := *output
	if fn == "" {
		fn = fmt.Sprintf("%s.dot", paths.UniqueFilename("memviz", lyt.Name))
	}

	f, err := os.Create(fn)
	if err != nil {
		return err
	}

	cat := savestate.NewCatalogCache().FromLayout(lyt, false)
	writeGraph(f, lyt, cat)

	err = f.Close()
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "graph written to %s\n", fn)

	return nil
}

// writeGraph outputs the layout and the catalog computed from it in the DOT
// format
func writeGraph(w io.Writer, lyt *layout.Layout, cat *savestate.Catalog) {
	type graph struct {
		Layout   *layout.Layout
		Regions  []savestate.Region
		Preserve []savestate.PreserveBlock
	}
	memviz.Map(w, &graph{
		Layout:   lyt,
		Regions:  cat.Regions(),
		Preserve: savestate.PreserveFromLayout(lyt),
	})
}

func layouts(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("no additional arguments required for %s mode", md)
	}

	for _, n := range layout.Builtin() {
		lyt, err := layout.Find(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "%-20s %s\n", lyt.Key(), lyt.Description)
	}

	return nil
}
