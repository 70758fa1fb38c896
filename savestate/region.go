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

	"github.com/dustin/go-humanize"

	"github.com/jetsetilly/rollback/layout"
)

// Region is a half-open range of live memory [Start, End).
type Region struct {
	Start uint32
	End   uint32
}

// Size of the region in bytes.
func (r Region) Size() uint32 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r Region) String() string {
	return fmt.Sprintf("%#08x-%#08x (%s)", r.Start, r.End, humanize.IBytes(uint64(r.Size())))
}

// ExcludeRange is an area of memory that is removed from the full region list
// when a catalog is built.
type ExcludeRange struct {
	Address uint32
	Length  uint32
}

// PreserveBlock is an area of memory that keeps its value across a call to
// Savestate.Load(). Two blocks with the same address and length are the
// same block.
type PreserveBlock struct {
	Address uint32
	Length  uint32
}

func (b PreserveBlock) String() string {
	return fmt.Sprintf("%#08x+%d", b.Address, b.Length)
}

// FromLayout converts the full and exclude lists of a layout.
func FromLayout(l *layout.Layout) ([]Region, []ExcludeRange) {
	full := make([]Region, 0, len(l.Full))
	for _, s := range l.Full {
		full = append(full, Region{Start: uint32(s.Start), End: uint32(s.End)})
	}

	excludes := make([]ExcludeRange, 0, len(l.Exclude))
	for _, e := range l.Exclude {
		excludes = append(excludes, ExcludeRange{Address: uint32(e.Address), Length: uint32(e.Length)})
	}

	return full, excludes
}

// PreserveFromLayout converts the preserve list of a layout.
func PreserveFromLayout(l *layout.Layout) []PreserveBlock {
	blocks := make([]PreserveBlock, 0, len(l.Preserve))
	for _, p := range l.Preserve {
		blocks = append(blocks, PreserveBlock{Address: uint32(p.Address), Length: uint32(p.Length)})
	}
	return blocks
}
