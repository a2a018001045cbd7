package mod

import (
	"encoding/json"
	"errors"
	"slices"

	"github.com/cory-johannsen/modkit/internal/asset"
)

// Info is the content of a mod info file, the descriptor the game reads to
// learn a mod's name and its place in the dependency graph.
//
// No field is ever nil: every setter and the decoder normalize absent input
// to "" or an empty list.
type Info struct {
	name     string
	requires []string
	includes []string
}

// NewInfo returns an Info with the given values.
//
// Postcondition: Requires() and Includes() are non-nil.
func NewInfo(name string, requires, includes []string) *Info {
	i := &Info{}
	i.SetName(name)
	i.SetRequires(requires)
	i.SetIncludes(includes)
	return i
}

// Name returns the mod name.
func (i *Info) Name() string { return i.name }

// SetName sets the mod name.
func (i *Info) SetName(name string) { i.name = name }

// Requires returns the names of the mods this mod requires, in order.
func (i *Info) Requires() []string { return slices.Clone(i.requires) }

// SetRequires replaces the required mod names. nil yields an empty list.
func (i *Info) SetRequires(requires []string) { i.requires = normalizeNames(requires) }

// Includes returns the names of the mods this mod includes, in order.
func (i *Info) Includes() []string { return slices.Clone(i.includes) }

// SetIncludes replaces the included mod names. nil yields an empty list.
func (i *Info) SetIncludes(includes []string) { i.includes = normalizeNames(includes) }

func normalizeNames(names []string) []string {
	if names == nil {
		return []string{}
	}
	return slices.Clone(names)
}

type wireInfo struct {
	Name     string   `json:"name"`
	Requires []string `json:"requires"`
	Includes []string `json:"includes"`
}

// MarshalJSON encodes i in the mod info file format.
func (i *Info) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireInfo{
		Name:     i.name,
		Requires: normalizeNames(i.requires),
		Includes: normalizeNames(i.includes),
	})
}

// UnmarshalJSON decodes the mod info file format into i. Absent or null
// values decode to "" or an empty list.
func (i *Info) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("mod info JSON must be an object")
	}
	var w wireInfo
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	i.SetName(w.Name)
	i.SetRequires(w.Requires)
	i.SetIncludes(w.Includes)
	return nil
}

// LoadInfoFile reads and parses the mod info file at path.
//
// Postcondition: returns a normalized Info, or an error of kind ErrArgument
// (missing or unreadable file), ErrIO, or ErrParse.
func LoadInfoFile(path string) (*Info, error) {
	const op = "mod.LoadInfoFile"
	data, err := asset.ReadFile(op, path)
	if err != nil {
		return nil, err
	}
	info := NewInfo("", nil, nil)
	if err := json.Unmarshal(data, info); err != nil {
		return nil, asset.ParseError(op, path, err)
	}
	return info, nil
}
