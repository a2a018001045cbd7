package item_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/modkit/internal/asset"
	"github.com/cory-johannsen/modkit/internal/asset/item"
)

func writeItem(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNew_Defaults(t *testing.T) {
	d := item.New()
	assert.Equal(t, "", d.ItemName())
	assert.Equal(t, item.Common, d.Rarity())
	assert.NotNil(t, d.Blueprints())
	assert.Empty(t, d.Blueprints())
	assert.False(t, d.HasFile())
	assert.Equal(t, "", d.InventoryIcon())
}

func TestNewDescriptor_NilBlueprintsIsEmpty(t *testing.T) {
	d := item.NewDescriptor(item.Fields{ItemName: "Sword", Rarity: item.Rare})
	require.NotNil(t, d.Blueprints())
	assert.Len(t, d.Blueprints(), 0)
}

func TestSetBlueprints_NilNormalizesToEmpty(t *testing.T) {
	d := item.New()
	d.SetBlueprintsLearnedOnPickup([]string{"a"})
	d.SetBlueprintsLearnedOnPickup(nil)
	assert.Equal(t, []string{}, d.Blueprints())
}

func TestSetBlueprints_IsASet(t *testing.T) {
	d := item.New()
	d.SetBlueprintsLearnedOnPickup([]string{"b", "a", "b"})
	assert.Equal(t, []string{"a", "b"}, d.Blueprints())
	assert.True(t, d.LearnsBlueprint("a"))
	assert.False(t, d.LearnsBlueprint("c"))
}

func TestInventoryIcon_RelativeToAssociatedDir(t *testing.T) {
	d := item.NewDescriptor(item.Fields{
		File:              "/mods/x/item.json",
		InventoryIconFile: "/mods/x/icons/a.png",
	})
	assert.Equal(t, "icons/a.png", d.InventoryIcon())
}

func TestInventoryIcon_OutsideDirFallsBackToAbsolute(t *testing.T) {
	d := item.NewDescriptor(item.Fields{
		File:              "/mods/x/item.json",
		InventoryIconFile: "/other/a.png",
	})
	assert.Equal(t, "/other/a.png", d.InventoryIcon())
	assert.False(t, asset.HasParentSegment(d.InventoryIcon()))
}

func TestInventoryIcon_BackslashesNormalized(t *testing.T) {
	pending := item.New()
	pending.SetInventoryIcon(`icons\a.png`)
	assert.Equal(t, "icons/a.png", pending.InventoryIcon())

	associated := item.New()
	associated.SetFile("/mods/x/item.json")
	associated.SetInventoryIcon(`icons\a.png`)
	assert.Equal(t, "icons/a.png", associated.InventoryIcon())
	assert.Equal(t, filepath.FromSlash("/mods/x/icons/a.png"), associated.InventoryIconFile())
}

func TestInventoryIcon_PendingResolvesOnAssociation(t *testing.T) {
	d := item.New()
	d.SetInventoryIcon("icons/a.png")
	assert.Equal(t, "", d.InventoryIconFile())
	assert.Equal(t, "icons/a.png", d.InventoryIcon())

	d.SetFile("/mods/x/item.json")

	assert.Equal(t, filepath.FromSlash("/mods/x/icons/a.png"), d.InventoryIconFile())
	assert.Equal(t, "icons/a.png", d.InventoryIcon())
}

func TestInventoryIcon_ResolvedIconSurvivesReassociation(t *testing.T) {
	d := item.New()
	d.SetFile("/mods/x/item.json")
	d.SetInventoryIcon("icons/a.png")

	d.SetFile("/mods/y/deep/item.json")

	assert.Equal(t, "/mods/x/icons/a.png", d.InventoryIcon())

	d.SetFile("/mods/x/sub/../other.json")
	assert.Equal(t, "icons/a.png", d.InventoryIcon())
}

func TestInventoryIcon_ClearedAssociationReportsAbsolute(t *testing.T) {
	d := item.New()
	d.SetFile("/mods/x/item.json")
	d.SetInventoryIcon("icons/a.png")
	d.SetFile("")
	assert.Equal(t, "/mods/x/icons/a.png", d.InventoryIcon())
}

func TestInventoryIcon_NeverContainsParentSegment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seg := rapid.StringMatching(`[a-z]{1,6}`)
		fileDir := rapid.SliceOfN(seg, 1, 4).Draw(t, "fileDir")
		iconDir := rapid.SliceOfN(seg, 1, 4).Draw(t, "iconDir")
		d := item.New()
		d.SetFile("/" + strings.Join(fileDir, "/") + "/item.json")
		d.SetInventoryIconFile("/" + strings.Join(iconDir, "/") + "/icon.png")
		icon := d.InventoryIcon()
		assert.False(t, asset.HasParentSegment(icon), "icon %q", icon)
		assert.NotContains(t, icon, `\`)
	})
}

func TestSetInventoryIcon_EmptyClears(t *testing.T) {
	d := item.New()
	d.SetFile("/mods/x/item.json")
	d.SetInventoryIcon("a.png")
	d.SetInventoryIcon("")
	assert.Equal(t, "", d.InventoryIcon())
	assert.Equal(t, "", d.InventoryIconFile())
}

func TestLoadFromFile_ResolvesIconAgainstFile(t *testing.T) {
	dir := t.TempDir()
	path := writeItem(t, dir, "sword.item", `{
  "itemName": "ironsword",
  "rarity": "Rare",
  "inventoryIcon": "icons/sword.png",
  "description": "A sword.",
  "shortDescription": "Iron Sword",
  "learnBlueprintsOnPickup": ["ironbar", "ironsword"]
}`)

	d, err := item.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, d.File())
	assert.Equal(t, "ironsword", d.ItemName())
	assert.Equal(t, item.Rare, d.Rarity())
	assert.Equal(t, "A sword.", d.Description())
	assert.Equal(t, "Iron Sword", d.ShortDescription())
	assert.Equal(t, []string{"ironbar", "ironsword"}, d.Blueprints())
	assert.Equal(t, filepath.Join(dir, "icons", "sword.png"), d.InventoryIconFile())
	assert.Equal(t, "icons/sword.png", d.InventoryIcon())
}

func TestLoadFromFile_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeItem(t, dir, "bare.item", `{"itemName": "bare", "learnBlueprintsOnPickup": null}`)

	d, err := item.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, item.Common, d.Rarity())
	assert.Equal(t, []string{}, d.Blueprints())
	assert.Equal(t, "", d.InventoryIcon())
}

func TestLoadFromFile_NonStringRarityIsNone(t *testing.T) {
	dir := t.TempDir()
	path := writeItem(t, dir, "odd.item", `{"itemName": "odd", "rarity": 3}`)

	d, err := item.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, item.RarityNone, d.Rarity())
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()
	badJSON := writeItem(t, dir, "bad.item", `{"itemName": `)
	badRarity := writeItem(t, dir, "epic.item", `{"rarity": "epic"}`)
	notObject := writeItem(t, dir, "list.item", `["x"]`)

	cases := []struct {
		name string
		path string
		kind error
	}{
		{"empty path", "", asset.ErrArgument},
		{"missing", filepath.Join(dir, "missing.item"), asset.ErrArgument},
		{"directory", dir, asset.ErrArgument},
		{"invalid json", badJSON, asset.ErrParse},
		{"unknown rarity", badRarity, asset.ErrParse},
		{"not an object", notObject, asset.ErrParse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := item.LoadFromFile(tc.path)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestLoadFromFile_UnknownRarityExposesLookupError(t *testing.T) {
	path := writeItem(t, t.TempDir(), "epic.item", `{"rarity": "epic"}`)
	_, err := item.LoadFromFile(path)
	assert.ErrorIs(t, err, item.ErrUnknownRarity)
}

func TestUnmarshalJSON_WithoutAssociationKeepsIconPending(t *testing.T) {
	d := item.New()
	require.NoError(t, json.Unmarshal([]byte(`{"inventoryIcon": "a.png"}`), d))
	assert.Equal(t, "", d.InventoryIconFile())
	assert.Equal(t, "a.png", d.InventoryIcon())

	d.SetFile("/mods/x/item.json")
	assert.Equal(t, filepath.FromSlash("/mods/x/a.png"), d.InventoryIconFile())
}

func TestMarshalJSON_PreservesUnknownKeys(t *testing.T) {
	d, err := item.Parse([]byte(`{"itemName": "x", "price": 10, "category": "tool"}`), "")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, float64(10), out["price"])
	assert.Equal(t, "tool", out["category"])
	assert.Equal(t, "x", out["itemName"])
	assert.Equal(t, "common", out["rarity"])
	assert.NotContains(t, out, "inventoryIcon")
}

func TestMarshalJSON_NoneRarityIsNull(t *testing.T) {
	d := item.New()
	d.SetRarity(item.RarityNone)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rarity":null`)
}

func TestSaveToFile_NoneRaritySurvivesReload(t *testing.T) {
	dir := t.TempDir()
	path := writeItem(t, dir, "odd.item", `{"itemName": "x", "rarity": 3}`)
	d, err := item.LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, item.RarityNone, d.Rarity())

	saved := filepath.Join(dir, "saved.item")
	require.NoError(t, d.SaveToFile(saved))

	reloaded, err := item.LoadFromFile(saved)
	require.NoError(t, err)
	assert.Equal(t, item.RarityNone, reloaded.Rarity())
}

func TestParse_RoundTrip(t *testing.T) {
	const file = "/mods/x/item.json"
	rapid.Check(t, func(t *rapid.T) {
		seg := rapid.StringMatching(`[a-z0-9_]{1,8}`)
		d := item.NewDescriptor(item.Fields{
			File:             file,
			ItemName:         rapid.String().Draw(t, "itemName"),
			Rarity:           rapid.SampledFrom(item.Rarities()).Draw(t, "rarity"),
			Description:      rapid.String().Draw(t, "description"),
			ShortDescription: rapid.String().Draw(t, "shortDescription"),
			Blueprints:       rapid.SliceOf(rapid.String()).Draw(t, "blueprints"),
		})
		if rapid.Bool().Draw(t, "hasIcon") {
			d.SetInventoryIcon(strings.Join(rapid.SliceOfN(seg, 1, 3).Draw(t, "icon"), "/") + ".png")
		}

		data, err := json.Marshal(d)
		require.NoError(t, err)
		got, err := item.Parse(data, file)
		require.NoError(t, err)

		assert.Equal(t, d.ItemName(), got.ItemName())
		assert.Equal(t, d.Rarity(), got.Rarity())
		assert.Equal(t, d.Description(), got.Description())
		assert.Equal(t, d.ShortDescription(), got.ShortDescription())
		assert.Equal(t, d.Blueprints(), got.Blueprints())
		assert.Equal(t, d.InventoryIcon(), got.InventoryIcon())
		assert.Equal(t, d.InventoryIconFile(), got.InventoryIconFile())
	})
}

func TestSaveToFile_WritesRelativeIconAndAssociates(t *testing.T) {
	dir := t.TempDir()
	d := item.NewDescriptor(item.Fields{
		ItemName:   "lamp",
		Rarity:     item.Uncommon,
		Blueprints: []string{"lamp"},
	})
	d.SetInventoryIcon("icons/lamp.png")
	path := filepath.Join(dir, "lamp.item")

	require.NoError(t, d.SaveToFile(path))

	assert.Equal(t, path, d.File())
	assert.Equal(t, filepath.Join(dir, "icons", "lamp.png"), d.InventoryIconFile())

	loaded, err := item.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "lamp", loaded.ItemName())
	assert.Equal(t, item.Uncommon, loaded.Rarity())
	assert.Equal(t, "icons/lamp.png", loaded.InventoryIcon())
	assert.Equal(t, []string{"lamp"}, loaded.Blueprints())
}

func TestSaveToFile_MissingDirLeavesDescriptorUnchanged(t *testing.T) {
	d := item.New()
	d.SetInventoryIcon("a.png")
	err := d.SaveToFile(filepath.Join(t.TempDir(), "missing", "x.item"))
	require.Error(t, err)
	assert.ErrorIs(t, err, asset.ErrIO)
	assert.False(t, d.HasFile())
	assert.Equal(t, "a.png", d.InventoryIcon())
}

func TestSaveToFile_EmptyPath(t *testing.T) {
	assert.ErrorIs(t, item.New().SaveToFile(""), asset.ErrArgument)
}

func TestSaveToFile_WritesThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	target := writeItem(t, dir, "real.item", `{"itemName": "old"}`)
	link := filepath.Join(dir, "link.item")
	require.NoError(t, os.Symlink(target, link))

	d := item.New()
	d.SetItemName("new")
	require.NoError(t, d.SaveToFile(link))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
	reloaded, err := item.LoadFromFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", reloaded.ItemName())
}

func TestSaveToFile_KeepsExistingMode(t *testing.T) {
	dir := t.TempDir()
	path := writeItem(t, dir, "private.item", `{}`)
	require.NoError(t, os.Chmod(path, 0600))

	require.NoError(t, item.New().SaveToFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
