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

package random

import (
	"math/rand/v2"
	"time"
)

// the base seed for all random numbers
var baseSeed uint64

// initialise base seed
func init() {
	baseSeed = uint64(time.Now().UnixNano())
}

// Clock is the source of time for the Random type.
type Clock interface {
	Frame() int
}

// Random is a random number generator that is sensitive to time within the
// machine. Required for rollback and for parallel sessions.
type Random struct {
	clock Clock

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool

	// the generator used by NoRewind()
	free *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
		free:  rand.New(rand.NewPCG(baseSeed, 0)),
	}
}

func (rnd *Random) seed() uint64 {
	if rnd.ZeroSeed {
		return 0
	}
	return baseSeed
}

// Rewindable returns a number in the range [0,n) that depends only on the
// current frame and on n. Panics if n <= 0.
func (rnd *Random) Rewindable(n int) int {
	src := rand.NewPCG(rnd.seed(), uint64(rnd.clock.Frame()))
	return rand.New(src).IntN(n)
}

// Stream returns a generator seeded by the current frame. Subsequent calls
// to Stream() during the same frame return generators producing the same
// sequence.
func (rnd *Random) Stream() *rand.Rand {
	return rand.New(rand.NewPCG(rnd.seed(), uint64(rnd.clock.Frame())))
}

// NoRewind returns a number in the range [0,n) that does not depend on the
// current frame. Panics if n <= 0.
func (rnd *Random) NoRewind(n int) int {
	return rnd.free.IntN(n)
}
