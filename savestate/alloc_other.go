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

//go:build !linux && !darwin && !freebsd

package savestate

import (
	"unsafe"
)

// allocateBuffer allocates a buffer of size bytes from the Go heap. the buffer is
// over-allocated so that it can be sliced to start on a bufferAlignment
// boundary. the release function does nothing, the garbage collector will
// reclaim the memory.
func allocateBuffer(size int) ([]byte, func() error, error) {
	raw := make([]byte, size+bufferAlignment)
	off := (bufferAlignment - int(uintptr(unsafe.Pointer(&raw[0]))%bufferAlignment)) % bufferAlignment
	return raw[off : off+size : off+size], func() error { return nil }, nil
}
