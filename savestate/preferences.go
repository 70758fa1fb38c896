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
	"github.com/jetsetilly/rollback/paths"
	"github.com/jetsetilly/rollback/prefs"
)

// the key used for the Verify preference in the preferences file.
const verifyKey = "savestate.verify"

// Preferences for the savestate package. A single Preferences instance
// can be shared by every Savestate in a session.
type Preferences struct {
	// nil if the preferences are not backed by the preferences file
	dsk *prefs.Disk

	// check the result of a restore against the digest taken at capture
	Verify prefs.Bool
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return verifyKey + " :: " + p.Verify.String()
	}
	return p.dsk.String()
}

// defaultPreferences are used by a Savestate until UsePreferences() is
// called. They are never loaded from or saved to disk.
func defaultPreferences() *Preferences {
	p := &Preferences{}
	_ = p.Verify.Set(false)
	return p
}

// NewPreferences creates preferences backed by the preferences file in the
// resource directory. Values on the command line stack override those in
// the file.
func NewPreferences() (*Preferences, error) {
	p := defaultPreferences()

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add(verifyKey, &p.Verify)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(false)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Load savestate preferences.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current savestate preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
