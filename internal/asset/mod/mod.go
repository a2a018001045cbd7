// Package mod models a mod as the editor sees it: a folder on disk, the
// name of the mod's info file inside that folder, and the Info the game
// reads from that file. It persists a mod reference in a flat legacy format
// and can build the mod's on-disk structure.
package mod

import (
	"path/filepath"
	"strings"

	"github.com/cory-johannsen/modkit/internal/asset"
)

const defaultSaveFileName = "mod.save"

// Descriptor pairs a mod folder and info file name with the Info it owns.
// The empty string means "not set" for both folder and file name.
type Descriptor struct {
	folder          string
	modInfoFilename string
	info            *Info
}

// New returns a Descriptor with nothing set.
func New() *Descriptor {
	return NewDescriptor("", "", "")
}

// NewDescriptor returns a Descriptor owning a fresh Info named name.
//
// Postcondition: Info() is non-nil for the lifetime of the Descriptor.
func NewDescriptor(name, folder, modInfoFilename string) *Descriptor {
	d := &Descriptor{info: NewInfo("", nil, nil)}
	d.SetName(name)
	d.SetFolder(folder)
	d.SetModInfoFilename(modInfoFilename)
	return d
}

// Name returns the mod name held by the owned Info.
func (d *Descriptor) Name() string { return d.info.Name() }

// SetName sets the mod name on the owned Info.
func (d *Descriptor) SetName(name string) { d.info.SetName(name) }

// Folder returns the mod folder, or "".
func (d *Descriptor) Folder() string { return d.folder }

// SetFolder sets the mod folder.
func (d *Descriptor) SetFolder(folder string) { d.folder = folder }

// ModInfoFilename returns the info file name, or "".
func (d *Descriptor) ModInfoFilename() string { return d.modInfoFilename }

// SetModInfoFilename sets the info file name.
func (d *Descriptor) SetModInfoFilename(name string) { d.modInfoFilename = name }

// Info returns the owned Info. Mutations through it are visible to d.
func (d *Descriptor) Info() *Info { return d.info }

// ModInfoFile returns folder/modInfoFilename, or "" unless both are set.
func (d *Descriptor) ModInfoFile() string {
	if d.folder == "" || d.modInfoFilename == "" {
		return ""
	}
	return filepath.Join(d.folder, d.modInfoFilename)
}

// NameValid reports whether the name is non-blank.
func (d *Descriptor) NameValid() bool {
	return strings.TrimSpace(d.Name()) != ""
}

// FolderValid reports whether the folder is set and is an existing directory.
func (d *Descriptor) FolderValid() bool {
	return asset.IsDir(d.folder)
}

// ModInfoFilenameValid reports whether the info file name is non-blank.
func (d *Descriptor) ModInfoFilenameValid() bool {
	return strings.TrimSpace(d.modInfoFilename) != ""
}

// ModInfoValid reports whether both the folder and the info file name are
// valid.
func (d *Descriptor) ModInfoValid() bool {
	return d.FolderValid() && d.ModInfoFilenameValid()
}

// DirectoryReadyToBuild reports whether the folder is set and its parent is
// an existing directory.
func (d *Descriptor) DirectoryReadyToBuild() bool {
	if d.folder == "" {
		return false
	}
	return asset.IsDir(filepath.Dir(filepath.Clean(d.folder)))
}

// ReadyToBuild reports whether BuildModStructure has everything it needs.
func (d *Descriptor) ReadyToBuild() bool {
	return d.NameValid() && d.DirectoryReadyToBuild() && d.ModInfoFilenameValid()
}

// DefaultSaveFileName returns the file name the editor proposes when saving
// d in the legacy format: "<name>.save", or "mod.save" without a valid name.
func (d *Descriptor) DefaultSaveFileName() string {
	if d.NameValid() {
		return d.Name() + ".save"
	}
	return defaultSaveFileName
}
