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

import (
	"fmt"
	"unsafe"

	"github.com/jetsetilly/rollback/curated"
	"github.com/jetsetilly/rollback/digest"
	"github.com/jetsetilly/rollback/memory"
)

// snapshot buffers start on a boundary suitable for bulk copying.
const bufferAlignment = 64

// AllocationError is returned by NewStore() when a buffer could not be
// allocated.
const AllocationError = "savestate: allocation failed for region %s: %v"

// ClosedError is returned when a closed Store or Savestate is used.
const ClosedError = "savestate: closed"

// allocate returns a buffer of the requested size and a function that
// releases it.
var allocate = allocateBuffer

// backup is a catalog region and the buffer holding its snapshot.
type backup struct {
	Region
	data    []byte
	release func() error
}

// Store holds a snapshot of every region in a catalog. Each Store has its own
// buffers, which are released by Close().
type Store struct {
	mem     memory.Live
	backups []backup
	closed  bool
}

// NewStore is the preferred method of initialisation for the Store type. A
// buffer is allocated for every region in the catalog. If any allocation
// fails then all buffers allocated so far are released.
func NewStore(cat *Catalog, mem memory.Live) (*Store, error) {
	st := &Store{
		mem:     mem,
		backups: make([]backup, 0, len(cat.regions)),
	}

	for _, r := range cat.regions {
		data, release, err := allocate(int(r.Size()))
		if err != nil {
			_ = st.Close()
			return nil, curated.Errorf(AllocationError, r, err)
		}

		if uintptr(unsafe.Pointer(&data[0]))%bufferAlignment != 0 {
			_ = release()
			_ = st.Close()
			return nil, curated.Errorf(AllocationError, r, fmt.Sprintf("buffer not aligned to %d bytes", bufferAlignment))
		}

		st.backups = append(st.backups, backup{
			Region:  r,
			data:    data,
			release: release,
		})
	}

	return st, nil
}

// Capture copies live memory into the snapshot buffers. Any previous snapshot
// is overwritten.
func (st *Store) Capture() error {
	if st.closed {
		return curated.Errorf(ClosedError)
	}
	for _, b := range st.backups {
		st.mem.ReadLive(b.data, b.Start)
	}
	return nil
}

// RestoreAll copies the snapshot buffers back into live memory.
func (st *Store) RestoreAll() error {
	if st.closed {
		return curated.Errorf(ClosedError)
	}
	for _, b := range st.backups {
		st.mem.WriteLive(b.Start, b.data)
	}
	return nil
}

// Close releases the snapshot buffers. The Store can not be used after it
// has been closed. Closing a closed Store does nothing.
func (st *Store) Close() error {
	if st.closed {
		return nil
	}
	st.closed = true

	var err error
	for i := range st.backups {
		if e := st.backups[i].release(); e != nil && err == nil {
			err = e
		}
		st.backups[i].data = nil
	}
	st.backups = st.backups[:0]

	if err != nil {
		return curated.Errorf("savestate: %v", err)
	}
	return nil
}

// Regions returns the regions held by the store.
func (st *Store) Regions() []Region {
	r := make([]Region, 0, len(st.backups))
	for _, b := range st.backups {
		r = append(r, b.Region)
	}
	return r
}

// Size returns the number of bytes held by the store.
func (st *Store) Size() uint64 {
	var n uint64
	for _, b := range st.backups {
		n += uint64(len(b.data))
	}
	return n
}

// Digest returns the hash of the snapshot buffers.
func (st *Store) Digest() uint64 {
	bufs := make([][]byte, 0, len(st.backups))
	for _, b := range st.backups {
		bufs = append(bufs, b.data)
	}
	return digest.Buffers(bufs...)
}
