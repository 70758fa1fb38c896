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

package savestate

import "io"

// Device is the state of the simulated machine that isn't held in memory.
// For example, the registers of a peripheral.
//
// Snapshot() is called after memory has been captured and Plumb() is called
// after memory has been restored but before preserve blocks are written back.
// The reader passed to Plumb() contains the data written by the most recent
// call to Snapshot().
//
// A Savestate with a nil Device captures and restores memory only.
type Device interface {
	Snapshot(w io.Writer) error
	Plumb(r io.Reader) error
}
