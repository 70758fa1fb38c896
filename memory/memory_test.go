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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/rollback/curated"
	"github.com/jetsetilly/rollback/memory"
	"github.com/jetsetilly/rollback/test"
)

func TestPeekPoke(t *testing.T) {
	ram := memory.NewRAM(0x80000000, 0x100)
	test.ExpectEquality(t, ram.Memtop(), 0x80000100)

	test.ExpectSuccess(t, ram.Poke(0x80000000, 0x12))
	test.ExpectSuccess(t, ram.Poke(0x800000ff, 0x34))

	v, err := ram.Peek(0x80000000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x12)

	v, err = ram.Peek(0x800000ff)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x34)

	// either side of the RAM
	_, err = ram.Peek(0x80000100)
	test.ExpectSuccess(t, curated.Is(err, memory.BoundsError))
	err = ram.Poke(0x7fffffff, 0x00)
	test.ExpectSuccess(t, curated.Is(err, memory.BoundsError))
}

func TestLive(t *testing.T) {
	ram := memory.NewRAM(0x1000, 0x100)

	var live memory.Live = ram
	live.WriteLive(0x1010, []byte{1, 2, 3, 4})

	b := make([]byte, 6)
	live.ReadLive(b, 0x100f)
	test.ExpectEquality(t, string(b), string([]byte{0, 1, 2, 3, 4, 0}))

	// snapshots are independent of the original
	s := ram.Snapshot()
	ram.Reset()
	v, _ := s.Peek(0x1011)
	test.ExpectEquality(t, v, 2)
	v, _ = ram.Peek(0x1011)
	test.ExpectEquality(t, v, 0)
}

func TestContains(t *testing.T) {
	ram := memory.NewRAM(0x1000, 0x100)
	test.ExpectSuccess(t, ram.Contains(0x1000, 0x1100))
	test.ExpectSuccess(t, ram.Contains(0x1080, 0x1080))
	test.ExpectFailure(t, ram.Contains(0x0fff, 0x1010))
	test.ExpectFailure(t, ram.Contains(0x1000, 0x1101))
	test.ExpectFailure(t, ram.Contains(0x1010, 0x1000))
}
