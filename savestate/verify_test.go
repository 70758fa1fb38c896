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
	"testing"

	"github.com/jetsetilly/rollback/memory"
	"github.com/jetsetilly/rollback/test"
)

func TestLiveDigestCreatedOnDemand(t *testing.T) {
	ram := memory.NewRAM(0x1000, 0x1000)
	cat := NewCatalog("test", []Region{{Start: 0x1000, End: 0x1800}}, nil)

	ss, err := NewSavestate(cat, ram, nil, nil)
	test.DemandSuccess(t, err)
	defer ss.Close()

	// no verification so no digest of live memory is needed
	test.DemandSuccess(t, ss.Capture())
	test.DemandSuccess(t, ss.Load(nil))
	test.ExpectSuccess(t, ss.live == nil)

	test.DemandSuccess(t, ss.Prefs.Verify.Set(true))
	test.DemandSuccess(t, ss.Capture())
	test.ExpectSuccess(t, ss.live != nil)

	// the digest is reused by later captures
	live := ss.live
	test.DemandSuccess(t, ss.Capture())
	test.DemandSuccess(t, ss.Load(nil))
	test.ExpectEquality(t, ss.live, live)
}
