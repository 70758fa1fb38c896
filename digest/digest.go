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

// Package digest creates hashes of memory. It is used to check that a
// restore has recreated the memory as it was when it was captured and to
// compare the results of two runs of a deterministic simulation.
//
// The Memory type implements the Digest interface for areas of live memory.
// The Buffers() function hashes a list of byte slices. Hashing the same bytes
// in the same order gives the same result, whether they come from live memory
// or from a list of buffers.
package digest

// Digest implementations compute a hash of some state.
type Digest interface {
	Hash() string
	ResetDigest()
}
