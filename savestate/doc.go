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

// Package savestate takes snapshots of areas of a simulated machine's memory
// and restores them on demand. It is intended for rollback, where a
// deterministic simulation is rewound to an earlier frame and replayed.
//
// The areas that are backed up are described by a Catalog. A catalog is built
// from a list of full regions with exclude ranges removed from them. Building
// a catalog is done once, through a CatalogCache, before any Savestate is
// created:
//
//	cache := savestate.NewCatalogCache()
//	cat := cache.FromLayout(l, false)
//
// A Savestate owns one buffer per catalog region. Capture() copies live
// memory into the buffers and Load() copies the buffers back:
//
//	preserve := savestate.NewPreservationMap()
//	ss, err := savestate.NewSavestate(cat, ram, preserve, nil)
//	...
//	err = ss.Capture()
//	...
//	err = ss.Load(blocks)
//
// The blocks passed to Load() are areas of memory that must survive the load.
// Their values immediately before the load are the values immediately after
// the load. The values are kept by the PreservationMap, which is shared
// between all Savestate instances of a session. The PreservationMap grows
// for every new block and is never trimmed automatically. The owner of the
// session must call Clear() when the session ends.
//
// Nothing in this package is safe for concurrent use, apart from the
// CatalogCache. The simulation must be halted for the duration of Capture()
// and Load().
package savestate
