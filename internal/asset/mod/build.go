package mod

import (
	"encoding/json"
	"os"

	"github.com/cory-johannsen/modkit/internal/asset"
)

// BuildModStructure creates the mod folder and then the mod info file.
// The steps are not rolled back as a unit: if the info file cannot be
// written, the folder created by the first step remains.
func (d *Descriptor) BuildModStructure() error {
	if err := d.CreateModDirectory(); err != nil {
		return err
	}
	return d.CreateModInfoFile()
}

// CreateModDirectory creates the mod folder and any missing parents. It is
// a no-op when the folder already exists.
//
// Precondition: DirectoryReadyToBuild() is true.
// Postcondition: FolderValid() is true, or an error of kind ErrArgument or
// ErrIO is returned.
func (d *Descriptor) CreateModDirectory() error {
	const op = "mod.CreateModDirectory"
	if !d.DirectoryReadyToBuild() {
		return asset.ArgumentError(op, d.folder, "invalid directory")
	}
	if err := os.MkdirAll(d.folder, 0755); err != nil {
		return asset.IOError(op, d.folder, err)
	}
	return nil
}

// CreateModInfoFile writes the owned Info to ModInfoFile() in the mod info
// file format.
//
// Precondition: ModInfoFilenameValid() and NameValid() are true and the
// folder exists.
// Postcondition: ModInfoFile() holds the encoded Info, or an error of kind
// ErrArgument or ErrIO is returned.
func (d *Descriptor) CreateModInfoFile() error {
	const op = "mod.CreateModInfoFile"
	if !d.ModInfoFilenameValid() {
		return asset.ArgumentError(op, d.modInfoFilename, "modinfo file name is not valid")
	}
	if !d.NameValid() {
		return asset.ArgumentError(op, "", "mod name is not valid")
	}
	path := d.ModInfoFile()
	if path == "" {
		return asset.ArgumentError(op, "", "folder is not set")
	}
	data, err := json.MarshalIndent(d.info, "", "  ")
	if err != nil {
		return asset.ArgumentError(op, path, "encoding mod info: %w", err)
	}
	if err := asset.WriteFileAtomic(path, append(data, '\n'), 0644); err != nil {
		return asset.IOError(op, path, err)
	}
	return nil
}
