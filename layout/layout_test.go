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

package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jetsetilly/rollback/curated"
	"github.com/jetsetilly/rollback/layout"
	"github.com/jetsetilly/rollback/test"
)

const example = `
name: example
revision: 3
full:
  - {start: "0x1000", end: "0x2000", label: heap}
  - {start: 8192, end: "0x3000"}
exclude:
  - {address: "0x1500", length: "0x100", label: audio buffer}
preserve:
  - {address: "0x1800", length: 4, label: frame counter}
`

func TestParse(t *testing.T) {
	l, err := layout.Parse([]byte(example))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, l.Key(), "example@3")

	want := []layout.Span{
		{Start: 0x1000, End: 0x2000, Label: "heap"},
		{Start: 0x2000, End: 0x3000},
	}
	if diff := cmp.Diff(want, l.Full); diff != "" {
		t.Errorf("full regions mismatch (-want +got):\n%s", diff)
	}

	test.DemandEquality(t, len(l.Exclude), 1)
	test.ExpectEquality(t, l.Exclude[0].Address, 0x1500)
	test.ExpectEquality(t, l.Exclude[0].Length, 0x100)

	test.DemandEquality(t, len(l.Preserve), 1)
	test.ExpectEquality(t, l.Preserve[0].Length, 4)
	test.ExpectEquality(t, l.Preserve[0].Label, "frame counter")
}

func TestParseErrors(t *testing.T) {
	_, err := layout.Parse([]byte("revision: 1\n"))
	test.ExpectSuccess(t, curated.Is(err, layout.ParseError))

	_, err = layout.Parse([]byte("name: bad\nfull:\n  - {start: \"0xzz\", end: 1}\n"))
	test.ExpectSuccess(t, curated.Is(err, layout.ParseError))

	// larger than 32 bits
	_, err = layout.Parse([]byte("name: bad\nfull:\n  - {start: \"0x100000000\", end: 1}\n"))
	test.ExpectSuccess(t, curated.Is(err, layout.ParseError))
}

func TestMarshal(t *testing.T) {
	l, err := layout.Parse([]byte(example))
	test.DemandSuccess(t, err)

	data, err := l.Marshal()
	test.DemandSuccess(t, err)

	m, err := layout.Parse(data)
	test.DemandSuccess(t, err)

	if diff := cmp.Diff(l, m); diff != "" {
		t.Errorf("layout changed after marshal (-want +got):\n%s", diff)
	}
}

func TestBuiltin(t *testing.T) {
	names := layout.Builtin()
	test.DemandEquality(t, len(names), 2)
	test.ExpectEquality(t, names[0], "melee-ntsc-1.02")
	test.ExpectEquality(t, names[1], "soak-machine")

	l, err := layout.Find("melee-ntsc-1.02")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.Key(), "melee-ntsc-1.02@1")
	test.DemandEquality(t, len(l.Full), 7)
	test.ExpectEquality(t, l.Full[0].Start, 0x8123ab60)
	test.ExpectEquality(t, l.Full[6].End, 0x81601960)
	test.ExpectEquality(t, len(l.Exclude), 0)

	// the full list in the built in layout is contiguous
	for i := 1; i < len(l.Full); i++ {
		test.ExpectEquality(t, l.Full[i].Start, l.Full[i-1].End)
	}
}

func TestFind(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "example.yaml")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(example), 0o600))

	l, err := layout.Find(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.Name, "example")

	_, err = layout.Find(filepath.Join(t.TempDir(), "missing"))
	test.ExpectSuccess(t, curated.Is(err, layout.UnknownError))
}
