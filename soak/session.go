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

package soak

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jetsetilly/rollback/curated"
	"github.com/jetsetilly/rollback/digest"
	"github.com/jetsetilly/rollback/layout"
	"github.com/jetsetilly/rollback/logger"
	"github.com/jetsetilly/rollback/memory"
	"github.com/jetsetilly/rollback/random"
	"github.com/jetsetilly/rollback/savestate"
)

// LayoutError is returned by NewSession() if the layout can not be used to
// create a machine.
const LayoutError = "soak: layout %s: %v"

// EndedError is returned if the Session is used after a call to End().
const EndedError = "soak: session ended"

// Config for a Session.
type Config struct {
	// number of frames played between capture and rollback
	Frames int

	// number of bytes changed every frame
	Writes int

	// see random.Random
	ZeroSeed bool

	// preferences for the Savestate. nil for the savestate defaults
	Prefs *savestate.Preferences
}

// DefaultConfig is used by the command line.
var DefaultConfig = Config{
	Frames: 60,
	Writes: 256,
}

// Session is a single rollback session.
type Session struct {
	cfg Config
	lyt *layout.Layout
	cat *savestate.Catalog

	ram  *memory.RAM
	mach *machine
	rnd  *random.Random

	ss       *savestate.Savestate
	preserve *savestate.PreservationMap
	blocks   []savestate.PreserveBlock

	// the parts of the catalog that are not preserved. frames only change
	// these areas and the digest only covers these areas
	mutable []savestate.Region
	dig     *digest.Memory

	ended bool
}

// NewSession is the preferred method of initialisation for the Session type.
// The catalog for the layout is taken from the CatalogCache.
func NewSession(cache *savestate.CatalogCache, lyt *layout.Layout, cfg Config) (*Session, error) {
	if len(lyt.Full) == 0 {
		return nil, curated.Errorf(LayoutError, lyt.Key(), "no regions")
	}

	// the machine's memory covers every region in the layout
	origin := uint32(lyt.Full[0].Start)
	var top uint32
	for _, s := range lyt.Full {
		origin = min(origin, uint32(s.Start))
		top = max(top, uint32(s.End))
	}
	if top <= origin {
		return nil, curated.Errorf(LayoutError, lyt.Key(), "empty address space")
	}

	sess := &Session{
		cfg:      cfg,
		lyt:      lyt,
		cat:      cache.FromLayout(lyt, false),
		ram:      memory.NewRAM(origin, top-origin),
		mach:     &machine{},
		preserve: savestate.NewPreservationMap(),
		blocks:   savestate.PreserveFromLayout(lyt),
	}

	// the savestate doesn't validate preserve blocks. the session is the
	// owner of the memory so it does
	for _, b := range sess.blocks {
		if b.Length > 0 && !sess.ram.Contains(b.Address, b.Address+b.Length) {
			return nil, curated.Errorf(LayoutError, lyt.Key(), fmt.Sprintf("preserve block %s outside memory", b))
		}
	}

	sess.rnd = random.NewRandom(sess.mach)
	sess.rnd.ZeroSeed = cfg.ZeroSeed

	preserved := make([]savestate.ExcludeRange, 0, len(sess.blocks))
	for _, b := range sess.blocks {
		preserved = append(preserved, savestate.ExcludeRange{Address: b.Address, Length: b.Length})
	}
	sess.mutable = savestate.ComputeRegions(sess.cat.Regions(), preserved)

	areas := make([]digest.Area, 0, len(sess.mutable))
	for _, r := range sess.mutable {
		areas = append(areas, digest.Area{Start: r.Start, End: r.End})
	}
	sess.dig = digest.NewMemory(sess.ram, areas)

	var err error
	sess.ss, err = savestate.NewSavestate(sess.cat, sess.ram, sess.preserve, sess.mach)
	if err != nil {
		return nil, err
	}
	sess.ss.UsePreferences(cfg.Prefs)

	logger.Logf(logger.Allow, "soak", "session for %s: %s", lyt.Key(), humanize.IBytes(sess.cat.Size()))

	return sess, nil
}

// Savestate returns the Savestate used by the session.
func (sess *Session) Savestate() *savestate.Savestate {
	return sess.ss
}

// RAM returns the memory of the machine.
func (sess *Session) RAM() *memory.RAM {
	return sess.ram
}

// Catalog returns the catalog used by the session.
func (sess *Session) Catalog() *savestate.Catalog {
	return sess.cat
}

// Frame returns the current frame number.
func (sess *Session) Frame() int {
	return sess.mach.frame
}

// Step plays a single frame of the machine.
func (sess *Session) Step() {
	sess.mach.frame++

	if len(sess.mutable) > 0 {
		// the new value of a byte depends on the old value, so replayed
		// frames only match if memory was restored correctly
		stream := sess.rnd.Stream()
		for range sess.cfg.Writes {
			r := sess.mutable[stream.IntN(len(sess.mutable))]
			a := r.Start + uint32(stream.Uint64N(uint64(r.Size())))
			v, _ := sess.ram.Peek(a)
			_ = sess.ram.Poke(a, v^uint8(stream.Uint32()|1))
		}
	}

	// preserved blocks are little-endian counters
	for _, b := range sess.blocks {
		for a := b.Address; a < b.Address+b.Length; a++ {
			v, _ := sess.ram.Peek(a)
			_ = sess.ram.Poke(a, v+1)
			if v != 0xff {
				break
			}
		}
	}
}

func (sess *Session) preserved() []byte {
	var s []byte
	for _, b := range sess.blocks {
		v := make([]byte, b.Length)
		sess.ram.ReadLive(v, b.Address)
		s = append(s, v...)
	}
	return s
}

// Capture the current state of the machine.
func (sess *Session) Capture() error {
	if sess.ended {
		return curated.Errorf(EndedError)
	}
	return sess.ss.Capture()
}

// Rollback the machine to the most recent capture. The preserved blocks keep
// their current values.
func (sess *Session) Rollback() error {
	if sess.ended {
		return curated.Errorf(EndedError)
	}
	return sess.ss.Load(sess.blocks)
}

// CycleResult is the result of a single call to Cycle().
type CycleResult struct {
	// the frame at which the capture was made
	Frame int

	// digest of the mutable memory after the frames were played, and after
	// they were replayed
	Played   uint64
	Replayed uint64

	// preserved blocks had the same value either side of the rollback
	Preserved bool

	// the frame number was rolled back to the capture frame
	Rewound bool
}

// Match returns true if the replayed frames were the same as the played frames.
func (res CycleResult) Match() bool {
	return res.Played == res.Replayed
}

// Cycle captures the machine, plays some frames, rolls back and plays the same
// frames again.
func (sess *Session) Cycle() (CycleResult, error) {
	res := CycleResult{Frame: sess.mach.frame}

	if err := sess.Capture(); err != nil {
		return res, err
	}

	for range sess.cfg.Frames {
		sess.Step()
	}
	res.Played = sess.dig.Update()

	before := sess.preserved()
	if err := sess.Rollback(); err != nil {
		return res, err
	}
	res.Preserved = bytes.Equal(before, sess.preserved())
	res.Rewound = sess.mach.frame == res.Frame

	for range sess.cfg.Frames {
		sess.Step()
	}
	res.Replayed = sess.dig.Update()

	return res, nil
}

// Report is the result of a call to Run().
type Report struct {
	Layout string
	Size   uint64

	Cycles int
	Frames int

	Mismatches       int
	PreserveFailures int
	RewindFailures   int

	// digest of the mutable memory at the end of the run
	Digest string
}

// Failed returns true if any cycle went wrong.
func (rep Report) Failed() bool {
	return rep.Mismatches > 0 || rep.PreserveFailures > 0 || rep.RewindFailures > 0
}

func (rep Report) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "layout:     %s (%s per snapshot)\n", rep.Layout, humanize.IBytes(rep.Size))
	fmt.Fprintf(&s, "cycles:     %s (%s frames)\n", humanize.Comma(int64(rep.Cycles)), humanize.Comma(int64(rep.Frames)))
	fmt.Fprintf(&s, "mismatches: %d\n", rep.Mismatches)
	fmt.Fprintf(&s, "preserve:   %d failures\n", rep.PreserveFailures)
	fmt.Fprintf(&s, "rewind:     %d failures\n", rep.RewindFailures)
	fmt.Fprintf(&s, "digest:     %s", rep.Digest)
	return s.String()
}

// Run the number of cycles. If cycles is zero or less then Run() continues
// until the context is cancelled. Cancellation of the context is not an error.
func (sess *Session) Run(ctx context.Context, cycles int) (Report, error) {
	rep := Report{
		Layout: sess.lyt.Key(),
		Size:   sess.cat.Size(),
	}

	for cycles <= 0 || rep.Cycles < cycles {
		if ctx.Err() != nil {
			break
		}

		res, err := sess.Cycle()
		if err != nil {
			return rep, err
		}

		rep.Cycles++
		rep.Frames += sess.cfg.Frames * 2

		if !res.Match() {
			rep.Mismatches++
			logger.Logf(logger.Allow, "soak", "frame %d: replay mismatch (%016x != %016x)", res.Frame, res.Replayed, res.Played)
		}
		if !res.Preserved {
			rep.PreserveFailures++
			logger.Logf(logger.Allow, "soak", "frame %d: preserved blocks changed by rollback", res.Frame)
		}
		if !res.Rewound {
			rep.RewindFailures++
			logger.Logf(logger.Allow, "soak", "frame %d: device not rewound", res.Frame)
		}
	}

	rep.Digest = sess.dig.Hash()

	return rep, nil
}

// End the session. The Savestate is closed and the PreservationMap is
// cleared. It is safe to call End() more than once.
func (sess *Session) End() error {
	if sess.ended {
		return nil
	}
	sess.ended = true
	sess.preserve.Clear()
	return sess.ss.Close()
}
