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

package soak

import (
	"encoding/binary"
	"io"
)

// machine is the device state of the simulated machine. The frame number is
// not in memory so it is snapshotted and plumbed by the Savestate.
type machine struct {
	frame int
}

// Frame implements the random.Clock interface.
func (m *machine) Frame() int {
	return m.frame
}

// Snapshot implements the savestate.Device interface.
func (m *machine) Snapshot(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, int64(m.frame))
}

// Plumb implements the savestate.Device interface.
func (m *machine) Plumb(r io.Reader) error {
	var f int64
	if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
		return err
	}
	m.frame = int(f)
	return nil
}
