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

// Package paths contains functions to prepare paths to rollback resources.
//
// The ResourcePath() function modifies the supplied resource string such that
// it is prepended with the appropriate config directory. For example, the
// following will return the path to a user supplied layout file.
//
//	pth, err := paths.ResourcePath("layouts", "melee.yaml")
//
// The policy of ResourcePath() is simple: if the base resource path, ".rollback",
// is present in the program's current directory then that is the base path
// that will be used. If it is not present then the user's config directory is
// used. The package uses os.UserConfigDir() from the go standard library for
// this.
//
// In the example above, on a modern Linux system, the path returned will be:
//
//	/home/user/.config/rollback/layouts/melee.yaml
//
// ResourcePath() does not create any directories. Use MakeResourcePath() when
// the path is going to be written to.
package paths
