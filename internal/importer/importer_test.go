package importer_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/modkit/internal/importer"
)

type fakeSource struct {
	data *importer.CatalogData
	err  error
}

func (f fakeSource) Load(string) (*importer.CatalogData, error) {
	return f.data, f.err
}

func sampleCatalog() *importer.CatalogData {
	return &importer.CatalogData{Catalog: importer.CatalogSpec{
		Mod:      "Starter Kit",
		Requires: []string{"Base"},
		Includes: []string{},
		Items: []importer.ItemSpec{
			{ID: "copper_pickaxe", Name: "Copper Pickaxe", Rarity: "common", Icon: "pickaxe.png", File: "items/pickaxe.item"},
			{ID: "plasma_rifle", Name: "Plasma Rifle", Rarity: "rare", File: "items/rifle.item", Blueprints: []string{"ammo"}},
		},
	}}
}

func TestImporter_Run_WritesCatalogFile(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	imp := importer.New(fakeSource{data: sampleCatalog()}, zap.NewNop())

	res, err := imp.Run("ignored", outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "starter_kit.yaml"), res.Path)
	assert.Equal(t, sampleCatalog(), res.Catalog)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	cd, err := importer.LoadCatalogFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, sampleCatalog(), cd)
}

func TestImporter_Run_SourceError(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	boom := errors.New("boom")
	imp := importer.New(fakeSource{err: boom}, zap.NewNop())

	_, err := imp.Run("ignored", outDir)
	assert.ErrorIs(t, err, boom)
	assert.NoDirExists(t, outDir)
}

func TestImporter_Run_InvalidCatalogWritesNothing(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	cd := sampleCatalog()
	cd.Catalog.Items[1].ID = cd.Catalog.Items[0].ID
	imp := importer.New(fakeSource{data: cd}, zap.NewNop())

	_, err := imp.Run("ignored", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copper_pickaxe")
	assert.NoDirExists(t, outDir)
}

func TestLoadCatalogFromBytes_Violations(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"not yaml", "catalog: ["},
		{"empty mod name", "catalog:\n  mod: '!!!'\n"},
		{"empty item id", "catalog:\n  mod: m\n  items:\n    - {id: '', file: a.item}\n"},
		{"missing file", "catalog:\n  mod: m\n  items:\n    - {id: a}\n"},
		{"bad rarity", "catalog:\n  mod: m\n  items:\n    - {id: a, file: a.item, rarity: mythic}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := importer.LoadCatalogFromBytes([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalogFromBytes_RarityCaseInsensitive(t *testing.T) {
	cd, err := importer.LoadCatalogFromBytes([]byte("catalog:\n  mod: m\n  items:\n    - {id: a, file: a.item, rarity: LEGENDARY}\n"))
	require.NoError(t, err)
	assert.Equal(t, "m", cd.ID())
}

// TestImporter_Run_ItemCountPreserved verifies that every item handed over by
// the source appears in the written catalog.
func TestImporter_Run_ItemCountPreserved(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(rt, "numItems")
		cd := &importer.CatalogData{Catalog: importer.CatalogSpec{Mod: "Generated"}}
		for i := 0; i < n; i++ {
			cd.Catalog.Items = append(cd.Catalog.Items, importer.ItemSpec{
				ID:   fmt.Sprintf("item_%d", i),
				Name: fmt.Sprintf("Item %d", i),
				File: fmt.Sprintf("items/%d.item", i),
			})
		}

		outDir := t.TempDir()
		res, err := importer.New(fakeSource{data: cd}, zap.NewNop()).Run("ignored", outDir)
		if err != nil {
			rt.Fatal(err)
		}
		data, err := os.ReadFile(res.Path)
		if err != nil {
			rt.Fatal(err)
		}
		loaded, err := importer.LoadCatalogFromBytes(data)
		if err != nil {
			rt.Fatal(err)
		}
		assert.Len(rt, loaded.Catalog.Items, n)
	})
}
