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

// Package layout describes which areas of a simulated machine's memory are
// backed up by the savestate package. A layout is specific to one target
// memory layout and is versioned with a revision number.
//
// Layouts are YAML documents. For example:
//
//	name: example
//	revision: 1
//	full:
//	  - {start: "0x1000", end: "0x2000", label: heap}
//	exclude:
//	  - {address: "0x1500", length: "0x100", label: audio buffer}
//	preserve:
//	  - {address: "0x1800", length: 4, label: frame counter}
//
// The full list must be sorted and non-overlapping. Exclude ranges are
// removed from the full list when a catalog is built. Preserve ranges are the
// default blocks that survive a load. Numbers can be written in decimal or,
// as quoted strings, in hex.
//
// Layouts are not validated. The owner of the configuration is responsible
// for making sure that the ranges make sense for the target memory.
//
// Some layouts are built in. Find() will return a built in layout by name or
// load a layout from a file.
package layout
