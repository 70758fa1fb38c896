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

package soak_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/rollback/curated"
	"github.com/jetsetilly/rollback/layout"
	"github.com/jetsetilly/rollback/savestate"
	"github.com/jetsetilly/rollback/soak"
	"github.com/jetsetilly/rollback/test"
)

var cfg = soak.Config{
	Frames:   10,
	Writes:   64,
	ZeroSeed: true,
}

func newSession(t *testing.T, cache *savestate.CatalogCache) *soak.Session {
	t.Helper()

	lyt, err := layout.Find("soak-machine")
	test.DemandSuccess(t, err)

	sess, err := soak.NewSession(cache, lyt, cfg)
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		_ = sess.End()
	})

	return sess
}

func TestRun(t *testing.T) {
	sess := newSession(t, savestate.NewCatalogCache())

	rep, err := sess.Run(context.Background(), 5)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rep.Cycles, 5)
	test.ExpectEquality(t, rep.Frames, 100)
	test.ExpectEquality(t, rep.Mismatches, 0)
	test.ExpectEquality(t, rep.PreserveFailures, 0)
	test.ExpectEquality(t, rep.RewindFailures, 0)
	test.ExpectFailure(t, rep.Failed())
	test.ExpectEquality(t, rep.Layout, "soak-machine@2")

	// catalog has the excluded areas removed
	test.ExpectEquality(t, rep.Size, uint64(0xa000+0x1800+0x3f00))

	// one entry for each preserve block in the layout
	test.ExpectEquality(t, sess.Savestate().Preserved().Len(), 3)

	// the frame counter was never rolled back. it counts every frame played,
	// including replayed frames
	v := make([]byte, 4)
	sess.RAM().ReadLive(v, 0x00010000)
	test.ExpectEquality(t, binary.LittleEndian.Uint32(v), 100)

	// but the machine's frame number was rolled back
	test.ExpectEquality(t, sess.Frame(), 50)
}

func TestCycle(t *testing.T) {
	sess := newSession(t, savestate.NewCatalogCache())

	for range 3 {
		sess.Step()
	}

	res, err := sess.Cycle()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Frame, 3)
	test.ExpectSuccess(t, res.Match())
	test.ExpectSuccess(t, res.Preserved)
	test.ExpectSuccess(t, res.Rewound)
	test.ExpectInequality(t, res.Played, 0)
}

func TestRollback(t *testing.T) {
	sess := newSession(t, savestate.NewCatalogCache())

	test.DemandSuccess(t, sess.Capture())
	sess.Step()
	sess.Step()
	test.DemandSuccess(t, sess.Rollback())
	test.ExpectEquality(t, sess.Frame(), 0)

	// the counter in the input latch has been incremented twice and survived
	// the rollback
	b, _ := sess.RAM().Peek(0x00010010)
	test.ExpectEquality(t, b, 2)
}

func TestDeterministic(t *testing.T) {
	cache := savestate.NewCatalogCache()
	a := newSession(t, cache)
	b := newSession(t, cache)

	// both sessions share the same catalog
	test.ExpectEquality(t, a.Catalog(), b.Catalog())
	test.ExpectEquality(t, cache.Computed(), 1)

	ra, err := a.Run(context.Background(), 3)
	test.DemandSuccess(t, err)
	rb, err := b.Run(context.Background(), 3)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ra.Digest, rb.Digest)
}

func TestCancelled(t *testing.T) {
	sess := newSession(t, savestate.NewCatalogCache())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := sess.Run(ctx, 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, rep.Cycles, 0)
}

func TestEnd(t *testing.T) {
	sess := newSession(t, savestate.NewCatalogCache())

	_, err := sess.Cycle()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sess.Savestate().Preserved().Len(), 3)

	test.ExpectSuccess(t, sess.End())
	test.ExpectEquality(t, sess.Savestate().Preserved().Len(), 0)
	test.ExpectSuccess(t, curated.Is(sess.Rollback(), soak.EndedError))
	test.ExpectSuccess(t, curated.Is(sess.Capture(), soak.EndedError))
	test.ExpectSuccess(t, sess.End())
}

func TestLayoutError(t *testing.T) {
	lyt := &layout.Layout{
		Name:     "broken",
		Revision: 1,
		Full:     []layout.Span{{Start: 0x1000, End: 0x2000}},
		Preserve: []layout.Range{{Address: 0x1ffe, Length: 4}},
	}

	_, err := soak.NewSession(savestate.NewCatalogCache(), lyt, cfg)
	test.ExpectSuccess(t, curated.Is(err, soak.LayoutError))

	_, err = soak.NewSession(savestate.NewCatalogCache(), &layout.Layout{Name: "empty"}, cfg)
	test.ExpectSuccess(t, curated.Is(err, soak.LayoutError))
}

func TestSessionPreferences(t *testing.T) {
	sess := newSession(t, savestate.NewCatalogCache())
	test.ExpectFailure(t, sess.Savestate().Prefs.Verify.Get().(bool))

	p, err := savestate.NewPreferences()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.Verify.Set(true))

	lyt, err := layout.Find("soak-machine")
	test.DemandSuccess(t, err)

	c := cfg
	c.Prefs = p
	a, err := soak.NewSession(savestate.NewCatalogCache(), lyt, c)
	test.DemandSuccess(t, err)
	defer a.End()
	b, err := soak.NewSession(savestate.NewCatalogCache(), lyt, c)
	test.DemandSuccess(t, err)
	defer b.End()

	// the preferences are shared and not loaded again
	test.ExpectEquality(t, a.Savestate().Prefs, p)
	test.ExpectEquality(t, b.Savestate().Prefs, p)

	// verification doesn't affect the result
	rep, err := a.Run(context.Background(), 2)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, rep.Failed())
}
