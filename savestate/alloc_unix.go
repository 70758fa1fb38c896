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

//go:build linux || darwin || freebsd

package savestate

import (
	"golang.org/x/sys/unix"
)

// allocateBuffer allocates a buffer of size bytes outside of the Go heap. mapped memory is
// page aligned, which satisfies bufferAlignment. the release function must be
// called when the buffer is no longer needed.
func allocateBuffer(size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}

	release := func() error {
		return unix.Munmap(data)
	}

	return data, release, nil
}
