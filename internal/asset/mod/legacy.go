package mod

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cory-johannsen/modkit/internal/asset"
)

// flatMod is the legacy editor save format. It is unrelated to the mod info
// file the game reads.
type flatMod struct {
	Name            *string `json:"name"`
	Folder          *string `json:"folder"`
	ModInfoFilename *string `json:"modinfo_filename"`
}

// writeFile replaces path's content. Tests swap it to inject write failures.
var writeFile = func(path string, data []byte) error {
	return asset.WriteFileAtomic(path, data, 0644)
}

// FlatJSON encodes d in the legacy flat format with the folder as an
// absolute, forward-slash path.
//
// Precondition: the folder is set.
// Postcondition: returns the encoded object, or an ErrArgument-kind error
// when the folder is not set.
func (d *Descriptor) FlatJSON() ([]byte, error) {
	const op = "mod.FlatJSON"
	if d.folder == "" {
		return nil, asset.ArgumentError(op, "", "folder is not set")
	}
	abs, err := filepath.Abs(d.folder)
	if err != nil {
		return nil, asset.ArgumentError(op, d.folder, "resolving folder: %w", err)
	}
	name := d.Name()
	folder := asset.ToSlash(abs)
	filename := d.modInfoFilename
	return json.Marshal(flatMod{Name: &name, Folder: &folder, ModInfoFilename: &filename})
}

// ParseFlatJSON decodes a Descriptor from the legacy flat format. Each of
// name, folder, and modinfo_filename is optional.
//
// Postcondition: returns a Descriptor, or an ErrParse-kind error when data
// is not a JSON object or a present value is not a string.
func ParseFlatJSON(data []byte) (*Descriptor, error) {
	d, err := parseFlat(data)
	if err != nil {
		return nil, asset.ParseError("mod.ParseFlatJSON", "", err)
	}
	return d, nil
}

func parseFlat(data []byte) (*Descriptor, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("mod JSON must be an object")
	}
	var flat flatMod
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, err
	}

	d := New()
	if flat.Name != nil {
		d.SetName(*flat.Name)
	}
	if flat.Folder != nil {
		d.SetFolder(filepath.FromSlash(*flat.Folder))
	}
	if flat.ModInfoFilename != nil {
		d.SetModInfoFilename(*flat.ModInfoFilename)
	}
	return d, nil
}

// SaveToFile writes d to path in the legacy flat format, creating path if
// it does not exist.
//
// Whether this call created path is recorded before anything else happens;
// if any later step fails, a file created by this call is removed again. A
// pre-existing file is never removed, and its content is replaced only by a
// complete successful write.
//
// Postcondition: returns nil, or an error of kind ErrArgument (empty path,
// path not writable, folder not set) or ErrIO.
func (d *Descriptor) SaveToFile(path string) (err error) {
	const op = "mod.SaveToFile"
	if path == "" {
		return asset.ArgumentError(op, path, "path is empty")
	}

	created, err := createIfAbsent(path)
	if err != nil {
		return asset.IOError(op, path, err)
	}
	defer func() {
		if err != nil && created {
			_ = os.Remove(path)
		}
	}()

	if !writable(path) {
		return asset.ArgumentError(op, path, "can not write to file")
	}
	data, err := d.FlatJSON()
	if err != nil {
		return err
	}
	if err = writeFile(path, data); err != nil {
		return asset.IOError(op, path, err)
	}
	return nil
}

// LoadFromFile reads a Descriptor saved in the legacy flat format.
//
// Postcondition: returns a Descriptor, or an error of kind ErrArgument (file
// not readable), ErrIO, or ErrParse.
func LoadFromFile(path string) (*Descriptor, error) {
	const op = "mod.LoadFromFile"
	data, err := asset.ReadFile(op, path)
	if err != nil {
		return nil, err
	}
	d, err := parseFlat(data)
	if err != nil {
		return nil, asset.ParseError(op, path, err)
	}
	return d, nil
}

// createIfAbsent creates an empty file at path and reports whether it did.
// An existing path is left alone.
func createIfAbsent(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return false, err
	}
	return true, nil
}

func writable(path string) bool {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
