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

package paths

import (
	"os"
	"path/filepath"
)

// name of the resource directory in the current working directory.
const localResourcePath = ".rollback"

// name of the resource directory in the user's config directory.
const configResourcePath = "rollback"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with the appropriate base path.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := getBasePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, subPth, file), nil
}

// MakeResourcePath is the same as ResourcePath except that the directory part
// of the path is created if it doesn't already exist.
func MakeResourcePath(subPth string, file string) (string, error) {
	pth, err := ResourcePath(subPth, file)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(pth), 0o700); err != nil {
		return "", err
	}

	return pth, nil
}

func getBasePath() (string, error) {
	if _, err := os.Stat(localResourcePath); err == nil {
		return localResourcePath, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		// no user config directory so fall back to the local directory,
		// even though it doesn't exist yet
		return localResourcePath, nil
	}

	return filepath.Join(cnf, configResourcePath), nil
}
