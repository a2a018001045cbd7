package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/modkit/internal/asset"
)

// Importer orchestrates catalog export from a Source to an output directory.
type Importer struct {
	source Source
	logger *zap.Logger
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source and logger must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, logger *zap.Logger) *Importer {
	return &Importer{source: source, logger: logger}
}

// Result describes a written catalog.
type Result struct {
	Path    string
	Catalog *CatalogData
}

// Run loads the mod at modDir, validates the resulting catalog, and writes it
// as <catalog_id>.yaml in outputDir.
//
// Precondition: modDir must satisfy the source's layout requirements;
// outputDir must exist or be creatable.
// Postcondition: one catalog YAML is written to outputDir, or an error is
// returned and nothing is written.
func (imp *Importer) Run(modDir, outputDir string) (Result, error) {
	overall := time.Now()

	t0 := time.Now()
	cd, err := imp.source.Load(modDir)
	if err != nil {
		return Result{}, fmt.Errorf("loading source: %w", err)
	}
	imp.logger.Debug("loaded mod",
		zap.String("mod", cd.Catalog.Mod),
		zap.Int("items", len(cd.Catalog.Items)),
		zap.Duration("elapsed", time.Since(t0)),
	)

	data, err := yaml.Marshal(cd)
	if err != nil {
		return Result{}, fmt.Errorf("serialising catalog %q: %w", cd.Catalog.Mod, err)
	}

	// Validate output is loadable before writing.
	if _, err := LoadCatalogFromBytes(data); err != nil {
		return Result{}, fmt.Errorf("catalog %q failed validation: %w", cd.Catalog.Mod, err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return Result{}, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	outPath := filepath.Join(outputDir, cd.ID()+".yaml")
	if err := asset.WriteFileAtomic(outPath, data, 0644); err != nil {
		return Result{}, fmt.Errorf("writing catalog %q to %s: %w", cd.Catalog.Mod, outPath, err)
	}

	imp.logger.Info("wrote catalog",
		zap.String("path", outPath),
		zap.Int("items", len(cd.Catalog.Items)),
		zap.Duration("elapsed", time.Since(overall)),
	)
	return Result{Path: outPath, Catalog: cd}, nil
}
