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
	"github.com/jetsetilly/rollback/memory"
)

// PreservationMap keeps the values of preserve blocks across a restore.
// Entries are created the first time a block is seen and are reused for
// every subsequent use of the same block.
//
// Entries are never removed automatically. Clear() must be called by the
// owner of the session when the session ends.
type PreservationMap struct {
	entries map[PreserveBlock][]byte
}

// NewPreservationMap is the preferred method of initialisation for the
// PreservationMap type.
func NewPreservationMap() *PreservationMap {
	return &PreservationMap{
		entries: make(map[PreserveBlock][]byte),
	}
}

// Backup reads the current value of each block from live memory. Must be
// called before the snapshot is restored.
func (pm *PreservationMap) Backup(mem memory.Live, blocks []PreserveBlock) {
	for _, b := range blocks {
		if b.Length == 0 {
			continue
		}
		e, ok := pm.entries[b]
		if !ok {
			e = make([]byte, b.Length)
			pm.entries[b] = e
		}
		mem.ReadLive(e, b.Address)
	}
}

// WriteBack writes the value of each block back to live memory. Must be
// called after the snapshot is restored. Blocks that have never been backed
// up are ignored.
func (pm *PreservationMap) WriteBack(mem memory.Live, blocks []PreserveBlock) {
	for _, b := range blocks {
		if e, ok := pm.entries[b]; ok {
			mem.WriteLive(b.Address, e)
		}
	}
}

// Entry returns the preserved value for the block.
func (pm *PreservationMap) Entry(b PreserveBlock) ([]byte, bool) {
	e, ok := pm.entries[b]
	return e, ok
}

// Len returns the number of entries in the map.
func (pm *PreservationMap) Len() int {
	return len(pm.entries)
}

// Clear removes all entries.
func (pm *PreservationMap) Clear() {
	clear(pm.entries)
}
