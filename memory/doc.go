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

// Package memory defines how the savestate package reaches the memory of the
// simulated machine. The Live interface is the only requirement. The host
// simulation will usually have its own implementation.
//
// The RAM type is a flat, byte addressable implementation of the Live
// interface. It is used by the rollback tool and by tests. The Origin of the
// RAM is the address of the first byte, so a RAM with an origin of 0x80000000
// and a size of 0x01800000 covers the address range [0x80000000, 0x81800000).
//
// Addresses passed to ReadLive() and WriteLive() are not checked. Ranges that
// fall outside the RAM will cause a panic in the same way as an out of range
// slice index. Configuration owners should use Contains() to check the ranges
// they intend to use before handing them to the savestate package. Peek() and
// Poke() are checked and return an error.
package memory
