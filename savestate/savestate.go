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
	"bytes"

	"github.com/jetsetilly/rollback/curated"
	"github.com/jetsetilly/rollback/digest"
	"github.com/jetsetilly/rollback/logger"
	"github.com/jetsetilly/rollback/memory"
)

// NoCaptureError is returned by Load() if Capture() has never succeeded.
const NoCaptureError = "savestate: load before capture"

// ReentrantError is returned when Capture() or Load() is called while another
// call to Capture() or Load() is in progress. This can happen if a Device
// implementation calls back into the Savestate.
const ReentrantError = "savestate: reentrant %s"

// DeviceError is returned when the Device fails to snapshot or plumb.
const DeviceError = "savestate: device: %v"

// Savestate is a single snapshot of the memory described by a Catalog.
type Savestate struct {
	Prefs *Preferences

	cat      *Catalog
	mem      memory.Live
	store    *Store
	preserve *PreservationMap

	// device state is optional. the snapshot of the device is kept in
	// devState
	dev      Device
	devState bytes.Buffer

	// Capture() has succeeded at least once
	captured bool

	// a call to Capture() or Load() is in progress
	busy bool

	closed bool

	// digest of the store at the most recent capture. only valid if the
	// Verify preference was set at the time of capture
	verified bool
	sum      uint64

	// created by liveDigest()
	live *digest.Memory
}

// NewSavestate is the preferred method of initialisation for the Savestate
// type.
//
// The PreservationMap is shared with the owner of the session and should be
// the same instance for every Savestate in the session. If it is nil a
// private PreservationMap will be created. The Device can be nil.
func NewSavestate(cat *Catalog, mem memory.Live, preserve *PreservationMap, dev Device) (*Savestate, error) {
	store, err := NewStore(cat, mem)
	if err != nil {
		return nil, err
	}

	if preserve == nil {
		preserve = NewPreservationMap()
	}

	ss := &Savestate{
		Prefs:    defaultPreferences(),
		cat:      cat,
		mem:      mem,
		store:    store,
		preserve: preserve,
		dev:      dev,
	}

	return ss, nil
}

// UsePreferences replaces the default preferences. The owner of the session
// creates the Preferences once with NewPreferences() and shares them with
// every Savestate. A nil value restores the default preferences.
func (ss *Savestate) UsePreferences(p *Preferences) {
	if p == nil {
		p = defaultPreferences()
	}
	ss.Prefs = p
}

// the digest of live memory is only needed if the Verify preference is set.
// it needs a scratch buffer as large as the largest region so it is created
// on first use
func (ss *Savestate) liveDigest() *digest.Memory {
	if ss.live == nil {
		areas := make([]digest.Area, 0, ss.cat.Len())
		for _, r := range ss.cat.regions {
			areas = append(areas, digest.Area{Start: r.Start, End: r.End})
		}
		ss.live = digest.NewMemory(ss.mem, areas)
	}
	return ss.live
}

func (ss *Savestate) enter(op string) error {
	if ss.closed {
		return curated.Errorf(ClosedError)
	}
	if ss.busy {
		return curated.Errorf(ReentrantError, op)
	}
	ss.busy = true
	return nil
}

func (ss *Savestate) leave() {
	ss.busy = false
}

// Catalog returns the catalog the Savestate was created with.
func (ss *Savestate) Catalog() *Catalog {
	return ss.cat
}

// Preserved returns the PreservationMap used by Load().
func (ss *Savestate) Preserved() *PreservationMap {
	return ss.preserve
}

// Captured returns true if there is a snapshot that can be loaded.
func (ss *Savestate) Captured() bool {
	return ss.captured
}

// Capture takes a snapshot of memory and of the device, if there is one. The
// previous snapshot is lost.
func (ss *Savestate) Capture() error {
	if err := ss.enter("capture"); err != nil {
		return err
	}
	defer ss.leave()

	if err := ss.store.Capture(); err != nil {
		return err
	}

	if ss.dev != nil {
		ss.devState.Reset()
		if err := ss.dev.Snapshot(&ss.devState); err != nil {
			// memory and device are out of step so the snapshot can't be used
			ss.captured = false
			return curated.Errorf(DeviceError, err)
		}
	}

	ss.verified = ss.Prefs.Verify.Get().(bool)
	if ss.verified {
		ss.sum = ss.store.Digest()
		ss.liveDigest()
	}

	ss.captured = true

	return nil
}

// Load restores the most recent snapshot. The blocks keep the values they had
// before Load() was called.
func (ss *Savestate) Load(blocks []PreserveBlock) error {
	if err := ss.enter("load"); err != nil {
		return err
	}
	defer ss.leave()

	if !ss.captured {
		return curated.Errorf(NoCaptureError)
	}

	// the order of backup, restore and write back is important. any other
	// order loses the preserved values
	ss.preserve.Backup(ss.mem, blocks)

	if err := ss.store.RestoreAll(); err != nil {
		return err
	}

	var devErr error
	if ss.dev != nil {
		if err := ss.dev.Plumb(bytes.NewReader(ss.devState.Bytes())); err != nil {
			devErr = curated.Errorf(DeviceError, err)
		}
	}

	if ss.verified {
		if sum := ss.liveDigest().Update(); sum != ss.sum {
			logger.Logf(logger.Allow, "savestate", "restore digest mismatch (%016x != %016x)", sum, ss.sum)
		}
	}

	ss.preserve.WriteBack(ss.mem, blocks)

	return devErr
}

// Close releases the snapshot buffers. The PreservationMap is not cleared.
func (ss *Savestate) Close() error {
	if ss.closed {
		return nil
	}
	if ss.busy {
		return curated.Errorf(ReentrantError, "close")
	}
	ss.closed = true
	ss.captured = false
	return ss.store.Close()
}
