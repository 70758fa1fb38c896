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
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/jetsetilly/rollback/layout"
	"github.com/jetsetilly/rollback/logger"
)

// ComputeRegions removes the exclude ranges from the full region list. The
// full list must be sorted and non-overlapping. The order of the exclude
// list doesn't matter.
//
// The returned list is sorted, non-overlapping and contains no empty
// regions. Neither of the input lists are changed.
func ComputeRegions(full []Region, excludes []ExcludeRange) []Region {
	regions := make([]Region, 0, len(full))
	for _, r := range full {
		if r.End > r.Start {
			regions = append(regions, r)
		}
	}

	sorted := slices.Clone(excludes)
	slices.SortStableFunc(sorted, func(a, b ExcludeRange) int {
		switch {
		case a.Address < b.Address:
			return -1
		case a.Address > b.Address:
			return 1
		}
		return 0
	})

	// the cursor is shared by all exclude ranges. the excludes are sorted so
	// the cursor never needs to move backwards
	idx := 0

	for _, ex := range sorted {
		// 64 bit arithmetic so that address+length can't wrap
		address := uint64(ex.Address)
		length := uint64(ex.Length)

		for length > 0 {
			// move to the first region that ends after the exclude begins
			for idx < len(regions) && address >= uint64(regions[idx].End) {
				idx++
			}

			// no more regions so the rest of the exclude doesn't affect anything
			if idx >= len(regions) {
				break
			}

			start := uint64(regions[idx].Start)
			end := uint64(regions[idx].End)

			// the exclude begins in the gap before the region. the part of the
			// exclude in the gap is dropped
			if address < start {
				gap := start - address
				if gap >= length {
					length = 0
				} else {
					length -= gap
				}
				address = start
				continue
			}

			overlapEnd := min(address+length, end)

			// the part of the region after the exclude survives as a new region
			if end > overlapEnd {
				regions = slices.Insert(regions, idx+1, Region{Start: uint32(overlapEnd), End: uint32(end)})
			}

			// the part of the region before the exclude survives in place
			regions[idx].End = uint32(address)
			if regions[idx].End <= regions[idx].Start {
				regions = slices.Delete(regions, idx, idx+1)
			}

			length -= overlapEnd - address
			address = overlapEnd
		}
	}

	return regions
}

// Catalog is the list of regions backed up by a Savestate. A catalog is
// immutable once it has been built.
type Catalog struct {
	key     string
	regions []Region
}

// NewCatalog builds a new catalog. The key identifies the configuration the
// catalog was built from.
func NewCatalog(key string, full []Region, excludes []ExcludeRange) *Catalog {
	return &Catalog{
		key:     key,
		regions: ComputeRegions(full, excludes),
	}
}

// Key returns the key of the configuration the catalog was built from.
func (cat *Catalog) Key() string {
	return cat.key
}

// Regions returns a copy of the catalog's regions.
func (cat *Catalog) Regions() []Region {
	return slices.Clone(cat.regions)
}

// Len returns the number of regions in the catalog.
func (cat *Catalog) Len() int {
	return len(cat.regions)
}

// Size returns the total number of bytes covered by the catalog.
func (cat *Catalog) Size() uint64 {
	var sz uint64
	for _, r := range cat.regions {
		sz += uint64(r.Size())
	}
	return sz
}

func (cat *Catalog) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %d regions, %s\n", cat.key, len(cat.regions), humanize.IBytes(cat.Size())))
	for _, r := range cat.regions {
		s.WriteString(fmt.Sprintf("  %s\n", r))
	}
	return s.String()
}

// CatalogCache memoises catalogs by key. The configuration a catalog is built
// from is static so there is no need to compute it every time a Savestate
// is created.
//
// Unlike everything else in the package, CatalogCache is safe for concurrent
// use. The first request for a key is the point at which the catalog is
// built.
type CatalogCache struct {
	crit     sync.Mutex
	catalogs map[string]*Catalog

	// the number of times a catalog has been computed
	computed int
}

// NewCatalogCache is the preferred method of initialisation for the
// CatalogCache type.
func NewCatalogCache() *CatalogCache {
	return &CatalogCache{
		catalogs: make(map[string]*Catalog),
	}
}

// Catalog returns the catalog for key, building it from the full and exclude
// lists if it hasn't been built already. If force is true the catalog is
// always rebuilt.
func (cc *CatalogCache) Catalog(key string, full []Region, excludes []ExcludeRange, force bool) *Catalog {
	cc.crit.Lock()
	defer cc.crit.Unlock()

	if cat, ok := cc.catalogs[key]; ok && !force {
		return cat
	}

	cat := NewCatalog(key, full, excludes)
	cc.catalogs[key] = cat
	cc.computed++

	logger.Logf(logger.Allow, "catalog", "%s: %d regions (%s)", key, cat.Len(), humanize.IBytes(cat.Size()))

	return cat
}

// FromLayout returns the catalog for the layout. The key is the layout key,
// which includes the layout revision.
func (cc *CatalogCache) FromLayout(l *layout.Layout, force bool) *Catalog {
	full, excludes := FromLayout(l)
	return cc.Catalog(l.Key(), full, excludes, force)
}

// Computed returns the number of times a catalog has been built by the cache.
func (cc *CatalogCache) Computed() int {
	cc.crit.Lock()
	defer cc.crit.Unlock()
	return cc.computed
}
