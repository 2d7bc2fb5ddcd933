// Package itemdb is the validated registry of item definitions. It flattens
// the categorized item tables into an id-keyed cache on first use and is
// shared by every component that needs to look an item up.
package itemdb

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
)

// Definition is a validated static item.
type Definition struct {
	ID                  string
	Category            string
	Name                string
	Description         string
	Type                rpg.ItemType
	Slot                rpg.Slot
	Effect              *rpg.Effect
	Stats               rpg.Stats
	ShopPrice           int
	SellPrice           int
	IsStartingEquipment bool
	IsBossDrop          bool
	DroppedBy           string
}

// IsEquipment reports whether the item goes in a slot.
func (d *Definition) IsEquipment() bool {
	return d.Type == rpg.ItemTypeEquipment
}

// InventoryItem builds a bag entry for the definition.
func (d *Definition) InventoryItem(quantity int) rpg.InventoryItem {
	item := rpg.InventoryItem{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Type:        d.Type,
		Quantity:    quantity,
	}
	if d.Effect != nil {
		eff := *d.Effect
		item.Effect = &eff
	}
	return item
}

// Equipment builds the slotted form of the definition.
func (d *Definition) Equipment() *rpg.Equipment {
	return &rpg.Equipment{
		InventoryItem: d.InventoryItem(1),
		Slot:          d.Slot,
		Stats:         d.Stats,
	}
}

// Invalid records why a raw item was skipped.
type Invalid struct {
	ID     string
	Reason string
}

// Report is the outcome of validating every raw record.
type Report struct {
	Valid   []string
	Invalid []Invalid
}

// Summary describes the loaded cache.
type Summary struct {
	TotalItems int
	Categories []string
}

// Config holds the dependencies for the item database.
type Config struct {
	// Tables supplies the raw item tables. It is called at most once.
	Tables func() (gamedata.ItemTables, error)
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Tables == nil {
		vb.RequiredField("Tables")
	}
	return vb.Build()
}

// Database is the item registry. Lookups are safe for concurrent use.
type Database struct {
	tables func() (gamedata.ItemTables, error)

	once    sync.Once
	loadErr error
	items   map[string]*Definition
	report  Report
}

// New creates an item database. Tables are not read until the first lookup.
func New(cfg *Config) (*Database, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Database{tables: cfg.Tables}, nil
}

// FromTables creates a database over tables already in memory.
func FromTables(tables gamedata.ItemTables) *Database {
	return &Database{tables: func() (gamedata.ItemTables, error) { return tables, nil }}
}

func (db *Database) init() {
	db.once.Do(func() {
		raw, err := db.tables()
		if err != nil {
			db.loadErr = errors.Wrap(err, "failed to load item tables")
			db.items = map[string]*Definition{}
			slog.Error("Item database failed to load", "error", err)
			return
		}
		db.items, db.report = build(raw)
		slog.Info("Item database initialized",
			"valid_items", len(db.report.Valid),
			"invalid_items", len(db.report.Invalid),
		)
	})
}

// Err returns the error from loading the tables, if any.
func (db *Database) Err() error {
	db.init()
	return db.loadErr
}

// Get returns an item by id.
func (db *Database) Get(id string) (*Definition, bool) {
	db.init()
	d, ok := db.items[id]
	return d, ok
}

// Has reports whether the id resolves to a valid item.
func (db *Database) Has(id string) bool {
	_, ok := db.Get(id)
	return ok
}

// ByType returns every item of a type, sorted by id.
func (db *Database) ByType(t rpg.ItemType) []*Definition {
	return db.filter(func(d *Definition) bool { return d.Type == t })
}

// BySlot returns every equipment item for a slot, sorted by id.
func (db *Database) BySlot(slot rpg.Slot) []*Definition {
	return db.filter(func(d *Definition) bool { return d.IsEquipment() && d.Slot == slot })
}

// All returns every valid item, sorted by id.
func (db *Database) All() []*Definition {
	return db.filter(func(*Definition) bool { return true })
}

// IsStartingEquipment reports whether the item is protected baseline gear.
func (db *Database) IsStartingEquipment(id string) bool {
	d, ok := db.Get(id)
	return ok && d.IsStartingEquipment
}

// Summary reports the cache size and the slot/type categories present.
func (db *Database) Summary() Summary {
	db.init()
	seen := map[string]bool{}
	for _, d := range db.items {
		if d.IsEquipment() && d.Slot != "" {
			seen[string(d.Slot)] = true
		} else {
			seen[string(d.Type)] = true
		}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return Summary{TotalItems: len(db.items), Categories: cats}
}

// ValidateAll returns the per-record validation results.
func (db *Database) ValidateAll() Report {
	db.init()
	return db.report
}

func (db *Database) filter(keep func(*Definition) bool) []*Definition {
	db.init()
	var out []*Definition
	for _, d := range db.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func build(raw gamedata.ItemTables) (map[string]*Definition, Report) {
	items := make(map[string]*Definition)
	var report Report

	categories := make([]string, 0, len(raw))
	for c := range raw {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		ids := make([]string, 0, len(raw[category]))
		for id := range raw[category] {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			record, ok := raw[category][id].(map[string]any)
			if !ok {
				continue
			}
			def, reason := validate(id, record)
			if def == nil {
				slog.Warn("Skipping invalid item", "item_id", id, "reason", reason)
				report.Invalid = append(report.Invalid, Invalid{ID: id, Reason: reason})
				continue
			}
			def.Category = category
			items[id] = def
			report.Valid = append(report.Valid, id)
		}
	}

	return items, report
}

func validate(id string, record map[string]any) (*Definition, string) {
	name, ok := record["name"].(string)
	if !ok {
		return nil, `missing or invalid "name"`
	}
	description, ok := record["description"].(string)
	if !ok {
		return nil, `missing or invalid "description"`
	}
	itemType, _ := record["type"].(string)
	if itemType != string(rpg.ItemTypeConsumable) && itemType != string(rpg.ItemTypeEquipment) {
		return nil, `invalid "type"`
	}

	if rawID, present := record["id"]; present && rawID != id {
		slog.Warn("Item id does not match table key, using key",
			"item_id", id,
			"record_id", rawID,
		)
	}

	def := &Definition{
		ID:          id,
		Name:        name,
		Description: description,
		Type:        rpg.ItemType(itemType),
	}

	if rawSlot, present := record["slot"]; present {
		if slot, ok := rawSlot.(string); ok && rpg.Slot(slot).IsItemSlot() {
			def.Slot = rpg.Slot(slot)
		} else {
			slog.Warn("Ignoring invalid item slot", "item_id", id, "slot", rawSlot)
		}
	}

	if def.IsEquipment() {
		normalized := NormalizeEquipmentRecord(record)
		def.Stats = NormalizeStats(normalized["stats"])
	}

	if rawEffect, ok := record["effect"].(map[string]any); ok {
		def.Effect = decodeEffect(id, rawEffect)
	}

	if v, ok := toInt(record["shopPrice"]); ok {
		def.ShopPrice = v
	}
	if v, ok := toInt(record["sellPrice"]); ok {
		def.SellPrice = v
	}
	def.IsStartingEquipment, _ = record["isStartingEquipment"].(bool)
	def.IsBossDrop, _ = record["isBossDrop"].(bool)
	def.DroppedBy, _ = record["droppedBy"].(string)

	return def, ""
}

func decodeEffect(id string, raw map[string]any) *rpg.Effect {
	eff := &rpg.Effect{}
	for key, value := range raw {
		switch key {
		case "healHp":
			eff.HealHP, _ = toInt(value)
		case "healHpPercent":
			eff.HealHPPercent, _ = toInt(value)
		case "buffAtk":
			eff.BuffAtk, _ = toInt(value)
		case "buffDef":
			eff.BuffDef, _ = toInt(value)
		case "revive":
			eff.Revive, _ = value.(bool)
		default:
			slog.Warn("Ignoring unknown item effect", "item_id", id, "effect", key)
		}
	}
	return eff
}
