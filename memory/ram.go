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

package memory

import (
	"encoding/hex"

	"github.com/jetsetilly/rollback/curated"
)

// Live is the memory of the simulated machine as seen by the savestate
// package. The length of the transfer is the length of the slice.
type Live interface {
	// copy len(dst) bytes starting at address into dst
	ReadLive(dst []byte, address uint32)

	// copy src into memory starting at address
	WriteLive(address uint32, src []byte)
}

// BoundsError is returned by Peek() and Poke() when the address is outside of
// the RAM.
const BoundsError = "memory: address out of range (%#08x)"

// RAM is a flat area of byte addressable memory.
type RAM struct {
	Origin uint32
	RAM    []uint8
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM(origin uint32, size uint32) *RAM {
	return &RAM{
		Origin: origin,
		RAM:    make([]uint8, size),
	}
}

// Memtop returns the address one past the last byte of RAM.
func (ram *RAM) Memtop() uint32 {
	return ram.Origin + uint32(len(ram.RAM))
}

// Contains returns true if the half-open range [start, end) is entirely
// within the RAM.
func (ram *RAM) Contains(start uint32, end uint32) bool {
	return start >= ram.Origin && end >= start && end <= ram.Memtop()
}

// Snapshot creates a copy of RAM in its current state.
func (ram *RAM) Snapshot() *RAM {
	n := *ram
	n.RAM = make([]uint8, len(ram.RAM))
	copy(n.RAM, ram.RAM)
	return &n
}

// Reset contents of RAM to zero.
func (ram *RAM) Reset() {
	clear(ram.RAM)
}

// ReadLive implements the Live interface.
func (ram *RAM) ReadLive(dst []byte, address uint32) {
	idx := address - ram.Origin
	copy(dst, ram.RAM[idx:idx+uint32(len(dst))])
}

// WriteLive implements the Live interface.
func (ram *RAM) WriteLive(address uint32, src []byte) {
	idx := address - ram.Origin
	copy(ram.RAM[idx:idx+uint32(len(src))], src)
}

// Peek returns the byte at address.
func (ram *RAM) Peek(address uint32) (uint8, error) {
	if !ram.Contains(address, address+1) {
		return 0, curated.Errorf(BoundsError, address)
	}
	return ram.RAM[address-ram.Origin], nil
}

// Poke sets the byte at address.
func (ram *RAM) Poke(address uint32, value uint8) error {
	if !ram.Contains(address, address+1) {
		return curated.Errorf(BoundsError, address)
	}
	ram.RAM[address-ram.Origin] = value
	return nil
}

// Dump returns a hex dump of the half-open range [start, end). The range is
// clipped to the extent of the RAM.
func (ram *RAM) Dump(start uint32, end uint32) string {
	if start < ram.Origin {
		start = ram.Origin
	}
	if end > ram.Memtop() {
		end = ram.Memtop()
	}
	if end <= start {
		return ""
	}
	return hex.Dump(ram.RAM[start-ram.Origin : end-ram.Origin])
}
