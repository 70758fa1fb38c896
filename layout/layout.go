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

package layout

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/rollback/curated"
	"github.com/jetsetilly/rollback/paths"
)

// ParseError is returned when a layout cannot be decoded.
const ParseError = "layout: %v"

// UnknownError is returned by Find() when no layout can be found.
const UnknownError = "layout: unknown layout (%s)"

// the directory in the resource path where user layouts are kept.
const resourceDir = "layouts"

//go:embed layouts/*.yaml
var builtin embed.FS

// Word is a 32 bit address or length. It can be specified in a layout file as
// a decimal number or a hex string.
type Word uint32

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (w *Word) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", value.Line)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(value.Value), 0, 32)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*w = Word(v)
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (w Word) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("%#08x", uint32(w)), nil
}

func (w Word) String() string {
	return fmt.Sprintf("%#08x", uint32(w))
}

// Span is a half-open range of memory [Start, End).
type Span struct {
	Start Word   `yaml:"start"`
	End   Word   `yaml:"end"`
	Label string `yaml:"label,omitempty"`
}

// Range is an area of memory specified by its address and length.
type Range struct {
	Address Word   `yaml:"address"`
	Length  Word   `yaml:"length"`
	Label   string `yaml:"label,omitempty"`
}

// Layout of the memory areas used by the savestate package.
type Layout struct {
	Name        string  `yaml:"name"`
	Revision    int     `yaml:"revision"`
	Description string  `yaml:"description,omitempty"`
	Full        []Span  `yaml:"full"`
	Exclude     []Range `yaml:"exclude"`
	Preserve    []Range `yaml:"preserve"`
}

// Key uniquely identifies the layout and its revision.
func (l *Layout) Key() string {
	return fmt.Sprintf("%s@%d", l.Name, l.Revision)
}

func (l *Layout) String() string {
	return fmt.Sprintf("%s (%d full, %d exclude, %d preserve)", l.Key(), len(l.Full), len(l.Exclude), len(l.Preserve))
}

// Parse a layout from YAML data.
func Parse(data []byte) (*Layout, error) {
	l := &Layout{}
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, curated.Errorf(ParseError, err)
	}
	if l.Name == "" {
		return nil, curated.Errorf(ParseError, "layout has no name")
	}
	return l, nil
}

// Marshal the layout as YAML data.
func (l *Layout) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, curated.Errorf(ParseError, err)
	}
	return data, nil
}

// Load a layout from a file.
func Load(filename string) (*Layout, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(ParseError, err)
	}
	return Parse(data)
}

// Builtin returns the names of the built in layouts in alphabetical order.
func Builtin() []string {
	ents, err := builtin.ReadDir("layouts")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(ents))
	for _, e := range ents {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)

	return names
}

// Find a layout. The name is checked against the list of built in layouts,
// then against the layouts in the resource directory and finally the name is
// treated as a filename.
func Find(name string) (*Layout, error) {
	data, err := builtin.ReadFile(path.Join("layouts", name+".yaml"))
	if err == nil {
		return Parse(data)
	}

	pth, err := paths.ResourcePath(resourceDir, name+".yaml")
	if err == nil {
		l, err := Load(pth)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	l, err := Load(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(UnknownError, name)
		}
		return nil, err
	}

	return l, nil
}
