package importer

// CatalogData is the common intermediate format produced by all Source
// implementations. Its YAML tags match the catalog file schema exactly, so it
// can be marshalled directly and validated by LoadCatalogFromBytes.
type CatalogData struct {
	Catalog CatalogSpec `yaml:"catalog"`
}

// CatalogSpec holds mod-level metadata and its items.
type CatalogSpec struct {
	Mod      string     `yaml:"mod" validate:"modid"`
	Requires []string   `yaml:"requires"`
	Includes []string   `yaml:"includes"`
	Items    []ItemSpec `yaml:"items" validate:"dive"`
}

// ItemSpec holds a single item's catalog entry.
type ItemSpec struct {
	ID         string   `yaml:"id" validate:"required"`
	Name       string   `yaml:"name"`
	Rarity     string   `yaml:"rarity,omitempty" validate:"rarity"`
	Icon       string   `yaml:"icon,omitempty"`
	File       string   `yaml:"file" validate:"required"`
	Blueprints []string `yaml:"blueprints,omitempty"`
}

// Source loads a mod from a format-specific directory and produces
// CatalogData ready to be written as a catalog YAML file.
//
// Precondition: modDir must exist and contain the expected layout for the format.
// Postcondition: returns a non-nil CatalogData, or a non-nil error.
type Source interface {
	Load(modDir string) (*CatalogData, error)
}
