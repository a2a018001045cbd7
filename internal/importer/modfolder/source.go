// Package modfolder reads a built mod folder into a catalog.
package modfolder

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/modkit/internal/asset"
	"github.com/cory-johannsen/modkit/internal/asset/item"
	"github.com/cory-johannsen/modkit/internal/asset/mod"
	"github.com/cory-johannsen/modkit/internal/importer"
)

var _ importer.Source = (*Source)(nil)

// Source implements importer.Source for a mod folder laid out the way
// BuildModStructure creates it:
//
//	modDir/
//	  <modInfoFilename>   <- mod info JSON
//	  **/*<ext>           <- item descriptors, any depth
type Source struct {
	modInfoFilename string
	extensions      []string
	logger          *zap.Logger
}

// NewSource constructs a Source that reads modInfoFilename and every file
// whose extension is in extensions.
//
// Precondition: logger must be non-nil; extensions include the leading dot.
func NewSource(modInfoFilename string, extensions []string, logger *zap.Logger) *Source {
	return &Source{
		modInfoFilename: modInfoFilename,
		extensions:      slices.Clone(extensions),
		logger:          logger,
	}
}

// Load reads the mod info file and every item descriptor under modDir.
// Item files that fail to load, or whose name yields no id, are logged and
// skipped.
//
// Precondition: modDir must be a directory containing the mod info file.
// Postcondition: returns a CatalogData whose items are ordered by file path,
// or a non-nil error.
func (s *Source) Load(modDir string) (*importer.CatalogData, error) {
	const op = "modfolder.Load"
	if !asset.IsDir(modDir) {
		return nil, asset.ArgumentError(op, modDir, "not a directory")
	}

	info, err := mod.LoadInfoFile(filepath.Join(modDir, s.modInfoFilename))
	if err != nil {
		return nil, fmt.Errorf("reading mod info: %w", err)
	}

	paths, err := s.itemFiles(modDir)
	if err != nil {
		return nil, asset.IOError(op, modDir, err)
	}

	cd := &importer.CatalogData{Catalog: importer.CatalogSpec{
		Mod:      info.Name(),
		Requires: info.Requires(),
		Includes: info.Includes(),
		Items:    []importer.ItemSpec{},
	}}
	for _, path := range paths {
		spec, ok := s.loadItem(modDir, path)
		if ok {
			cd.Catalog.Items = append(cd.Catalog.Items, spec)
		}
	}
	return cd, nil
}

func (s *Source) loadItem(modDir, path string) (importer.ItemSpec, bool) {
	d, err := item.LoadFromFile(path)
	if err != nil {
		s.logger.Warn("skipping item file", zap.String("path", path), zap.Error(err))
		return importer.ItemSpec{}, false
	}
	id := importer.NameToID(d.ItemName())
	if id == "" {
		s.logger.Warn("skipping item without usable name",
			zap.String("path", path),
			zap.String("itemName", d.ItemName()),
		)
		return importer.ItemSpec{}, false
	}
	rel, err := filepath.Rel(modDir, path)
	if err != nil {
		rel = path
	}
	return importer.ItemSpec{
		ID:         id,
		Name:       d.ItemName(),
		Rarity:     d.Rarity().String(),
		Icon:       d.InventoryIcon(),
		File:       asset.ToSlash(rel),
		Blueprints: d.Blueprints(),
	}, true
}

func (s *Source) itemFiles(modDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(modDir, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() || !s.isItemFile(e.Name()) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

func (s *Source) isItemFile(name string) bool {
	ext := filepath.Ext(name)
	for _, want := range s.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
