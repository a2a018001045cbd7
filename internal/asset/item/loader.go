package item

import (
	"encoding/json"

	"github.com/cory-johannsen/modkit/internal/asset"
)

// Parse decodes an item from data as if it had been read from file.
//
// Decoding happens in three steps: the plain fields are decoded into a
// draft, the draft is associated with file, and only then is the raw
// inventoryIcon value applied so it resolves against file's directory.
//
// Precondition: file may be empty, in which case the icon stays pending.
// Postcondition: returns a descriptor associated with file, or an
// ErrParse-kind error and no descriptor.
func Parse(data []byte, file string) (*Descriptor, error) {
	d, err := parse(data, file)
	if err != nil {
		return nil, asset.ParseError("item.Parse", file, err)
	}
	return d, nil
}

func parse(data []byte, file string) (*Descriptor, error) {
	w, extra, err := decodeDraft(data)
	if err != nil {
		return nil, err
	}
	d := New()
	d.applyDraft(w, extra)
	d.SetFile(file)
	d.applyIcon(w)
	return d, nil
}

// LoadFromFile reads and parses the item file at path.
//
// Precondition: path names a regular file.
// Postcondition: returns a descriptor associated with path, or an error of
// kind ErrArgument (empty path, not a regular file, unreadable), ErrIO
// (read failure), or ErrParse (invalid JSON or unknown rarity token).
func LoadFromFile(path string) (*Descriptor, error) {
	const op = "item.LoadFromFile"
	if path == "" {
		return nil, asset.ArgumentError(op, path, "path is empty")
	}
	if !asset.IsRegularFile(path) {
		return nil, asset.ArgumentError(op, path, "given path is not a file")
	}
	data, err := asset.ReadFile(op, path)
	if err != nil {
		return nil, err
	}
	d, err := parse(data, path)
	if err != nil {
		return nil, asset.ParseError(op, path, err)
	}
	return d, nil
}

// SaveToFile writes d to path in the item file format, with the inventory
// icon expressed relative to path's directory, and associates d with path.
//
// Precondition: path is non-empty and its directory exists.
// Postcondition: on success path holds the encoded item and File() == path;
// on failure path and d are unchanged.
func (d *Descriptor) SaveToFile(path string) error {
	const op = "item.SaveToFile"
	if path == "" {
		return asset.ArgumentError(op, path, "path is empty")
	}
	target := d.clone()
	target.SetFile(path)
	data, err := json.MarshalIndent(target, "", "  ")
	if err != nil {
		return asset.ArgumentError(op, path, "encoding item: %w", err)
	}
	if err := asset.WriteFileAtomic(path, append(data, '\n'), 0644); err != nil {
		return asset.IOError(op, path, err)
	}
	d.SetFile(path)
	return nil
}
