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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. Patterns should be stored as const strings near the code
// that raises them, suitably named and commented. For example:
//
//	const NoCaptureError = "savestate: load before capture"
//
//	err := curated.Errorf(NoCaptureError)
//
//	if curated.Is(err, NoCaptureError) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf("store: %v", curated.Errorf(ClosedError))
//
//	if curated.Has(e, ClosedError) {
//		fmt.Println("true")
//	}
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of curated errors as 'expected' errors and
// uncurated errors as 'unexpected' errors.
//
// The Error() implementation normalises the error chain so that duplicate
// adjacent parts are removed. Chains are thought of as parts separated by the
// sub-string ': '. A chain built by wrapping "savestate: %v" around an error
// that already begins with "savestate: " will print the prefix only once.
package curated
