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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes (and sub-modes) and allows different flags
// for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("CATALOG", "SOAK")
//	_, _ = md.Parse()
//
// A mode is a special command line argument that puts the program into a
// different mode of operation, in the way that the go command has the build,
// doc and test modes. The first sub-mode added is the default. Sub-mode
// comparisons are case insensitive.
//
// After Parse() the selected mode is returned by Mode(). Flags for the mode are
// added after a call to NewMode() and the arguments are parsed again:
//
//	switch md.Mode() {
//	case "SOAK":
//		md.NewMode()
//		cycles := md.AddInt("cycles", 100, "number of rollback cycles")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseError:
//			return err
//		case modalflag.ParseHelp:
//			return nil
//		}
//		soak(*cycles, md.RemainingArgs())
//	}
//
// Modes can be chained as deeply as required. The Path() function returns all
// the modes encountered so far, separated by a forward slash.
package modalflag
