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

package modalflag

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/jetsetilly/rollback/curated"
)

// Values returned by Exit() and ExitValue() for use with os.Exit().
const (
	ExitSuccess = 0
	ExitArgs    = 10
	ExitMode    = 20
)

// ArgsError is returned by OptionalArg() when there are more arguments than
// the mode accepts.
const ArgsError = "modalflag: too many arguments for %s mode"

const modeSeparator = "/"

// Modes handles the command line arguments for a program with modes. The
// Output field should be set before calling Parse() or help messages will not
// be seen.
type Modes struct {
	// where to print help and error messages
	Output io.Writer

	// a new flagset is created by NewArgs() and NewMode()
	flags *flag.FlagSet

	// the arguments given to NewArgs(). idx is the first argument not yet
	// consumed by a mode selection
	args []string
	idx  int

	// sub-modes for the next call to Parse(). the first is the default
	subModes []string

	// every mode selected so far
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, separated by a forward slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs starts parsing a new list of arguments, usually os.Args[1:].
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.idx = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode indicates that further arguments should be considered part of a new
// mode. Flags and sub-modes from the previous mode are forgotten.
func (md *Modes) NewMode() {
	md.subModes = nil
	md.additionalHelp = ""
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
}

// AdditionalHelp adds text to the help message of the current mode.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// Continue with command line processing. If sub-modes were added before
	// the call to Parse() then Mode() is the selected mode.
	ParseContinue ParseResult = iota

	// Help was requested and has been printed.
	ParseHelp

	// The error is returned as the second return value of Parse().
	ParseError
)

// ExitValue returns the value to use with os.Exit() if the program is to end
// after the result. ParseContinue and ParseHelp are both successes.
func (p ParseResult) ExitValue() int {
	if p == ParseError {
		return ExitArgs
	}
	return ExitSuccess
}

// Parse the flags for the current mode and select a sub-mode if any have
// been added. For example:
//
//	p, err := md.Parse()
//	if err != nil || p != modalflag.ParseContinue {
//		return err
//	}
//
// Help messages are printed to Output automatically.
//
// If the flags are not recognised and sub-modes have been added then the
// default sub-mode is selected and the flags are left for that mode to parse.
func (md *Modes) Parse() (ParseResult, error) {
	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.idx:])
	if err == flag.ErrHelp {
		hw.Help(md.Output, md.Path(), md.subModes, md.additionalHelp)
		return ParseHelp, nil
	}

	if len(md.subModes) == 0 {
		if err != nil {
			return ParseError, err
		}
		return ParseContinue, nil
	}

	mode := md.subModes[0]
	if err == nil {
		arg := strings.ToUpper(md.flags.Arg(0))
		if slices.Contains(md.subModes, arg) {
			mode = arg
			md.idx++
		}
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

// RemainingArgs after a call to Parse(). These are the arguments that are
// not flags and not a sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered argument that isn't a flag or a sub-mode.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// OptionalArg returns the single remaining argument or the default value if
// there are no remaining arguments. More than one remaining argument is an
// error.
func (md *Modes) OptionalArg(def string) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return def, nil
	case 1:
		return md.GetArg(0), nil
	}
	return "", curated.Errorf(ArgsError, md.Path())
}

// Exit prints the error, if there is one, and returns the value to use with
// os.Exit(). The error is assumed to have come from the current mode.
func (md *Modes) Exit(err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(md.Output, "* error in %s mode: %s\n", md.Path(), err)
	return ExitMode
}

// AddSubModes to list of sub-modes for the next parse. The first sub-mode
// is the default. Sub-mode comparisons are case insensitive.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}
