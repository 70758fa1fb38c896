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

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address of the stats server.
const Address = "localhost:12600"

const url = "/debug/statsview"

// Viewer is a running stats server.
type Viewer struct {
	mgr *statsview.ViewManager
}

// Launch a new goroutine running the statsview. The address is printed to the
// output io.Writer.
func Launch(output io.Writer) *Viewer {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	v := &Viewer{mgr: statsview.New()}
	go v.mgr.Start()

	fmt.Fprintf(output, "stats server available at %s%s\n", Address, url)

	return v
}

// Stop the stats server.
func (v *Viewer) Stop() {
	if v == nil {
		return
	}
	v.mgr.Stop()
}
