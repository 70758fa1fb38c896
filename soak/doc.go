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

// Package soak drives a savestate through many rollback cycles on a simulated
// machine and reports whether replays were faithful.
//
// A Session owns the Savestate and the PreservationMap for the lifetime of a
// session. Each cycle captures the machine, plays a number of frames, rolls
// back to the capture and plays the same frames again. Frames mutate memory
// with numbers from the random package, which returns the same numbers for the
// same frame, so the replayed frames must produce the same memory as the
// original frames. Preserved blocks are used as counters that advance every
// frame and which must not go backwards on a rollback.
//
// End() is the session boundary. It closes the Savestate and clears the
// PreservationMap.
package soak
