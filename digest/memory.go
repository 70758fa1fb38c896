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

package digest

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/jetsetilly/rollback/memory"
)

// Area is a half-open range of memory [Start, End).
type Area struct {
	Start uint32
	End   uint32
}

// Memory is a digest of areas of live memory.
type Memory struct {
	mem   memory.Live
	areas []Area

	// live memory is read into the scratch buffer before hashing. it is as
	// large as the largest area
	scratch []byte

	sum uint64
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(mem memory.Live, areas []Area) *Memory {
	var mx uint32
	for _, a := range areas {
		if a.End > a.Start && a.End-a.Start > mx {
			mx = a.End - a.Start
		}
	}

	return &Memory{
		mem:     mem,
		areas:   areas,
		scratch: make([]byte, mx),
	}
}

// Update the digest from the current state of live memory. Returns the new
// sum.
func (dig *Memory) Update() uint64 {
	h := xxhash.New()
	for _, a := range dig.areas {
		if a.End <= a.Start {
			continue
		}
		b := dig.scratch[:a.End-a.Start]
		dig.mem.ReadLive(b, a.Start)
		_, _ = h.Write(b)
	}
	dig.sum = h.Sum64()
	return dig.sum
}

// Sum returns the most recent sum.
func (dig *Memory) Sum() uint64 {
	return dig.sum
}

// Hash implements the digest.Digest interface.
func (dig *Memory) Hash() string {
	return fmt.Sprintf("%016x", dig.sum)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Memory) ResetDigest() {
	dig.sum = 0
}

// Buffers returns the hash of the buffers, in order.
func Buffers(bufs ...[]byte) uint64 {
	h := xxhash.New()
	for _, b := range bufs {
		_, _ = h.Write(b)
	}
	return h.Sum64()
}
