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

package random_test

import (
	"testing"

	"github.com/jetsetilly/rollback/random"
	"github.com/jetsetilly/rollback/test"
)

type clock struct {
	frame int
}

func (c *clock) Frame() int {
	return c.frame
}

func TestRandom(t *testing.T) {
	c := &clock{frame: 100}
	a := random.NewRandom(c)
	b := random.NewRandom(c)
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Rewindable(i), b.Rewindable(i))
	}
}

func TestRewindable(t *testing.T) {
	c := &clock{}
	rnd := random.NewRandom(c)

	var first []int
	for c.frame = 0; c.frame < 50; c.frame++ {
		first = append(first, rnd.Rewindable(1000))
	}

	// replaying the frames produces the same numbers
	for c.frame = 0; c.frame < 50; c.frame++ {
		test.ExpectEquality(t, rnd.Rewindable(1000), first[c.frame], c.frame)
	}

	// the stream for a frame is also repeatable
	c.frame = 10
	s := rnd.Stream()
	u := rnd.Stream()
	for i := 0; i < 100; i++ {
		test.ExpectEquality(t, s.Uint32(), u.Uint32(), i)
	}
}

func TestNoRewind(t *testing.T) {
	rnd := random.NewRandom(&clock{})
	for i := 0; i < 100; i++ {
		v := rnd.NoRewind(10)
		test.ExpectSuccess(t, v >= 0 && v < 10)
	}
}
