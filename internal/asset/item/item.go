// Package item models the descriptor of a moddable game item: its display
// text, rarity tier, blueprints unlocked on pickup, and an inventory icon
// reference that is resolved relative to the file the item was loaded from.
package item

import (
	"encoding/json"
	"errors"
	"maps"
	"path/filepath"
	"slices"

	"github.com/cory-johannsen/modkit/internal/asset"
)

// JSON keys of the item file format.
const (
	keyItemName         = "itemName"
	keyRarity           = "rarity"
	keyInventoryIcon    = "inventoryIcon"
	keyDescription      = "description"
	keyShortDescription = "shortDescription"
	keyBlueprints       = "learnBlueprintsOnPickup"
)

// Fields carries the initial values for NewDescriptor.
type Fields struct {
	File              string
	ItemName          string
	Rarity            Rarity
	InventoryIconFile string
	Description       string
	ShortDescription  string
	Blueprints        []string
}

// Descriptor is an item's metadata. A Descriptor must not be copied after
// first use; its file-change hook is bound to the original. Use pointers.
//
// The inventory icon has two internal forms. While the descriptor has an
// associated file the icon is held as a resolved path; without one it is held
// as the bare string it was given, and is resolved against the containing
// directory of the file once an association is established.
type Descriptor struct {
	asset.Association

	itemName         string
	rarity           Rarity
	description      string
	shortDescription string
	blueprints       map[string]struct{}

	iconFile    string
	pendingIcon string

	// extra holds keys of the source JSON this package does not model, so a
	// load/save cycle does not drop them.
	extra map[string]json.RawMessage
}

// New returns a blank Common descriptor with no associated file.
func New() *Descriptor {
	return NewDescriptor(Fields{Rarity: Common})
}

// NewDescriptor returns a descriptor initialised from f.
//
// Postcondition: Blueprints() is never nil.
func NewDescriptor(f Fields) *Descriptor {
	d := &Descriptor{}
	d.SetFile(f.File)
	d.SetItemName(f.ItemName)
	d.SetRarity(f.Rarity)
	d.SetInventoryIconFile(f.InventoryIconFile)
	d.SetDescription(f.Description)
	d.SetShortDescription(f.ShortDescription)
	d.SetBlueprintsLearnedOnPickup(f.Blueprints)
	return d
}

// SetFile associates d with file and re-derives the inventory icon: an icon
// still held as a bare string is resolved against file's directory.
func (d *Descriptor) SetFile(file string) {
	d.Association.OnChange(d.fileChanged)
	d.Association.SetFile(file)
}

func (d *Descriptor) fileChanged(string) {
	if d.iconFile == "" {
		d.SetInventoryIcon(d.pendingIcon)
	}
}

// ItemName returns the display name.
func (d *Descriptor) ItemName() string { return d.itemName }

// SetItemName sets the display name.
func (d *Descriptor) SetItemName(name string) { d.itemName = name }

// Rarity returns the rarity tier, RarityNone if unset.
func (d *Descriptor) Rarity() Rarity { return d.rarity }

// SetRarity sets the rarity tier.
func (d *Descriptor) SetRarity(r Rarity) { d.rarity = r }

// Description returns the flavor text.
func (d *Descriptor) Description() string { return d.description }

// SetDescription sets the flavor text.
func (d *Descriptor) SetDescription(s string) { d.description = s }

// ShortDescription returns the subtitle shown under the item name.
func (d *Descriptor) ShortDescription() string { return d.shortDescription }

// SetShortDescription sets the subtitle shown under the item name.
func (d *Descriptor) SetShortDescription(s string) { d.shortDescription = s }

// Blueprints returns the blueprints learned on pickup, sorted.
//
// Postcondition: result is non-nil.
func (d *Descriptor) Blueprints() []string {
	out := slices.Sorted(maps.Keys(d.blueprints))
	if out == nil {
		out = []string{}
	}
	return out
}

// SetBlueprintsLearnedOnPickup replaces the blueprint set. A nil slice yields
// an empty set; duplicates collapse.
func (d *Descriptor) SetBlueprintsLearnedOnPickup(blueprints []string) {
	d.blueprints = make(map[string]struct{}, len(blueprints))
	for _, b := range blueprints {
		d.blueprints[b] = struct{}{}
	}
}

// LearnsBlueprint reports whether picking the item up unlocks blueprint.
func (d *Descriptor) LearnsBlueprint(blueprint string) bool {
	_, ok := d.blueprints[blueprint]
	return ok
}

// InventoryIconFile returns the resolved icon path, or "" when the icon is
// unset or still pending an association.
func (d *Descriptor) InventoryIconFile() string { return d.iconFile }

// SetInventoryIconFile sets the resolved icon path directly.
func (d *Descriptor) SetInventoryIconFile(path string) {
	d.iconFile = path
	if path != "" {
		d.pendingIcon = ""
	}
}

// InventoryIcon returns the icon reference as written to item files. It is
// computed on every call:
//   - associated and resolved: the path relative to the associated file's
//     directory, or the absolute path when the relative form needs "..";
//   - resolved but not associated: the absolute path;
//   - otherwise the pending bare string, possibly "".
//
// Postcondition: result contains no backslashes.
func (d *Descriptor) InventoryIcon() string {
	var icon string
	switch {
	case d.iconFile != "" && d.HasFile():
		rel, ok := asset.RelativeTo(d.File(), d.iconFile)
		if !ok {
			rel = asset.Absolute(d.iconFile)
		}
		icon = rel
	case d.iconFile != "":
		icon = asset.Absolute(d.iconFile)
	default:
		icon = d.pendingIcon
	}
	return asset.ToSlash(icon)
}

// SetInventoryIcon sets the icon from a reference as found in item files.
// With an associated file, a relative icon is resolved against that file's
// containing directory; without one it is kept as a pending bare string.
// The empty string clears the icon.
func (d *Descriptor) SetInventoryIcon(icon string) {
	if icon == "" {
		d.iconFile, d.pendingIcon = "", ""
		return
	}
	if !d.HasFile() {
		d.iconFile, d.pendingIcon = "", icon
		return
	}
	p := filepath.FromSlash(asset.ToSlash(icon))
	if !filepath.IsAbs(p) {
		p = filepath.Join(asset.ContainingDir(d.File()), p)
	}
	d.SetInventoryIconFile(p)
}

// wireItem is the item file shape. InventoryIcon is a pointer so that
// decoding can tell an absent key from an empty one.
type wireItem struct {
	ItemName         string   `json:"itemName"`
	Rarity           Rarity   `json:"rarity,omitempty"`
	InventoryIcon    *string  `json:"inventoryIcon,omitempty"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Blueprints       []string `json:"learnBlueprintsOnPickup"`
}

var knownKeys = []string{
	keyItemName, keyRarity, keyInventoryIcon,
	keyDescription, keyShortDescription, keyBlueprints,
}

// MarshalJSON encodes d in the item file format. rarity is always written,
// as null for RarityNone, so an absent rarity does not decode back as Common.
// inventoryIcon carries the derived InventoryIcon value and is omitted when
// empty; unknown keys read from the source file are written back unchanged.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(knownKeys)+len(d.extra))
	for k, v := range d.extra {
		out[k] = v
	}
	out[keyItemName] = d.itemName
	out[keyRarity] = d.rarity
	if icon := d.InventoryIcon(); icon != "" {
		out[keyInventoryIcon] = icon
	}
	out[keyDescription] = d.description
	out[keyShortDescription] = d.shortDescription
	out[keyBlueprints] = d.Blueprints()
	return json.Marshal(out)
}

// UnmarshalJSON decodes the item file format into d. The inventory icon is
// applied last, against whatever file d is associated with at that moment.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	w, extra, err := decodeDraft(data)
	if err != nil {
		return err
	}
	d.applyDraft(w, extra)
	d.applyIcon(w)
	return nil
}

// decodeDraft decodes the plain fields. Keys absent from data keep the
// defaults of New.
func decodeDraft(data []byte) (wireItem, map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return wireItem{}, nil, err
	}
	if raw == nil {
		return wireItem{}, nil, errors.New("item JSON must be an object")
	}
	w := wireItem{Rarity: Common}
	if err := json.Unmarshal(data, &w); err != nil {
		return wireItem{}, nil, err
	}
	for _, k := range knownKeys {
		delete(raw, k)
	}
	return w, raw, nil
}

func (d *Descriptor) applyDraft(w wireItem, extra map[string]json.RawMessage) {
	d.SetItemName(w.ItemName)
	d.SetRarity(w.Rarity)
	d.SetDescription(w.Description)
	d.SetShortDescription(w.ShortDescription)
	d.SetBlueprintsLearnedOnPickup(w.Blueprints)
	d.iconFile, d.pendingIcon = "", ""
	d.extra = extra
}

func (d *Descriptor) applyIcon(w wireItem) {
	if w.InventoryIcon != nil {
		d.SetInventoryIcon(*w.InventoryIcon)
	}
}

// clone returns a deep copy of d with its own association.
func (d *Descriptor) clone() *Descriptor {
	c := &Descriptor{
		itemName:         d.itemName,
		rarity:           d.rarity,
		description:      d.description,
		shortDescription: d.shortDescription,
		blueprints:       maps.Clone(d.blueprints),
		iconFile:         d.iconFile,
		pendingIcon:      d.pendingIcon,
		extra:            maps.Clone(d.extra),
	}
	c.Association = asset.NewAssociation(d.File())
	return c
}
