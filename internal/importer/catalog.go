package importer

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/modkit/internal/asset/item"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func catalogValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("modid", validateModID)
		_ = v.RegisterValidation("rarity", validateRarity)
		validate = v
	})
	return validate
}

// validateModID accepts mod names that yield a non-empty catalog id.
func validateModID(fl validator.FieldLevel) bool {
	return NameToID(fl.Field().String()) != ""
}

// validateRarity accepts an empty rarity or any tier token in any case.
func validateRarity(fl validator.FieldLevel) bool {
	token := fl.Field().String()
	if token == "" {
		return true
	}
	_, err := item.ParseRarity(token)
	return err == nil
}

// LoadCatalogFromBytes parses and validates a catalog YAML document.
//
// Precondition: data must be valid YAML in the catalog file schema.
// Postcondition: Returns a validated CatalogData or a non-nil error.
func LoadCatalogFromBytes(data []byte) (*CatalogData, error) {
	var cd CatalogData
	if err := yaml.Unmarshal(data, &cd); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if err := cd.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	return &cd, nil
}

// ID returns the identifier the catalog is written under.
func (cd *CatalogData) ID() string {
	return NameToID(cd.Catalog.Mod)
}

// Validate checks catalog invariants: a usable mod name, and items with a
// unique id, a file, and a known rarity if any.
//
// Postcondition: Returns nil if the catalog is valid, or an error joining all violations.
func (cd *CatalogData) Validate() error {
	var errs []error
	if err := catalogValidator().Struct(cd); err != nil {
		errs = append(errs, describeValidation(err))
	}
	seen := make(map[string]string, len(cd.Catalog.Items))
	for _, it := range cd.Catalog.Items {
		if it.ID == "" {
			continue
		}
		if prev, dup := seen[it.ID]; dup {
			errs = append(errs, fmt.Errorf("item id %q is used by both %s and %s", it.ID, prev, it.File))
			continue
		}
		seen[it.ID] = it.File
	}
	return errors.Join(errs...)
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "CatalogData.")
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "modid":
			msgs = append(msgs, fmt.Sprintf("%s %q yields an empty id", field, e.Value()))
		case "rarity":
			msgs = append(msgs, fmt.Sprintf("%s %q: %v", field, e.Value(), item.ErrUnknownRarity))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, e.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
