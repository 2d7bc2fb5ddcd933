// Package gamedata loads the static tables the game runs on: items, enemies,
// ingredient powers, shop stock and locations. Tables are embedded YAML and are
// read once at startup; callers treat the result as read-only.
package gamedata

import (
	"embed"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	itemsFile       = "items.yaml"
	enemiesFile     = "enemies.yaml"
	ingredientsFile = "ingredients.yaml"
	shopsFile       = "shops.yaml"
	locationsFile   = "locations.yaml"
)

// ItemTables is the raw item data: category name to item id to record. The
// records stay untyped so the item database can validate them field by field.
type ItemTables map[string]map[string]any

// PhaseData is a boss phase as authored.
type PhaseData struct {
	HealthThreshold float64            `yaml:"healthThreshold"`
	Special         *rpg.SpecialRecord `yaml:"special"`
	PhaseMessage    string             `yaml:"phaseMessage"`
	StatBoost       rpg.Stats          `yaml:"statBoost"`
}

// EnemyData is an enemy template. Live enemies are spawned from it.
type EnemyData struct {
	ID           string             `yaml:"-"`
	Name         string             `yaml:"name"`
	Description  string             `yaml:"description"`
	Level        int                `yaml:"level"`
	MaxHP        int                `yaml:"maxHp"`
	Atk          int                `yaml:"atk"`
	Def          int                `yaml:"def"`
	Spd          int                `yaml:"spd"`
	XPReward     int                `yaml:"xpReward"`
	CurrencyDrop rpg.CurrencyDrop   `yaml:"currencyDrop"`
	LootTable    []rpg.LootDrop     `yaml:"lootTable"`
	AIPattern    rpg.AIPattern      `yaml:"aiPattern"`
	IsBoss       bool               `yaml:"isBoss"`
	IsSecretBoss bool               `yaml:"isSecretBoss"`
	BossIntro    []string           `yaml:"bossIntro"`
	Special      *rpg.SpecialRecord `yaml:"special"`
	Phases       []PhaseData        `yaml:"phases"`
}

// Stock is a shop entry's supply: a count or unlimited.
type Stock struct {
	Unlimited bool
	Count     int
}

// UnlimitedStock never depletes.
var UnlimitedStock = Stock{Unlimited: true}

// UnmarshalYAML accepts an integer or the word "unlimited".
func (s *Stock) UnmarshalYAML(value *yaml.Node) error {
	if strings.EqualFold(value.Value, "unlimited") {
		*s = UnlimitedStock
		return nil
	}
	n, err := strconv.Atoi(value.Value)
	if err != nil || n < 0 {
		return errors.InvalidArgumentf("invalid stock %q at line %d", value.Value, value.Line)
	}
	*s = Stock{Count: n}
	return nil
}

// String renders the stock for listings.
func (s Stock) String() string {
	if s.Unlimited {
		return "unlimited"
	}
	return strconv.Itoa(s.Count)
}

// ShopEntry is one line of a location's shop inventory.
type ShopEntry struct {
	ItemID   string `yaml:"itemId"`
	Stock    Stock  `yaml:"stock"`
	Respawns bool   `yaml:"respawns"`
}

// Location is a place on the map.
type Location struct {
	ID           string   `yaml:"-"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Checkpoint   bool     `yaml:"checkpoint"`
	RequiresBoss string   `yaml:"requiresBoss"`
	Connections  []string `yaml:"connections"`
	Encounters   []string `yaml:"encounters"`
	Boss         string   `yaml:"boss"`
}

// ConnectsTo reports whether the location has a path to id.
func (l Location) ConnectsTo(id string) bool {
	for _, c := range l.Connections {
		if c == id {
			return true
		}
	}
	return false
}

// Data holds every static table.
type Data struct {
	Items       ItemTables
	Enemies     map[string]EnemyData
	Ingredients map[string]rpg.StatBonus
	Shops       map[string][]ShopEntry
	Locations   map[string]Location
}

// Load parses the embedded tables.
func Load() (*Data, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded data")
	}
	return Parse(sub)
}

// Parse reads the tables from any file system holding the five YAML files.
func Parse(fsys fs.FS) (*Data, error) {
	d := &Data{}

	if err := decodeFile(fsys, itemsFile, &d.Items); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, enemiesFile, &d.Enemies); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, ingredientsFile, &d.Ingredients); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, shopsFile, &d.Shops); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, locationsFile, &d.Locations); err != nil {
		return nil, err
	}

	for id, e := range d.Enemies {
		e.ID = id
		d.Enemies[id] = e
	}
	for id, l := range d.Locations {
		l.ID = id
		d.Locations[id] = l
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

func decodeFile(fsys fs.FS, name string, target any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}
	if err := yaml.Unmarshal(raw, target); err != nil {
		return errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to decode %s", name)
	}
	return nil
}

// Validate checks cross-table references. Item records are validated by the
// item database, not here.
func (d *Data) Validate() error {
	vb := errors.NewValidationBuilder()

	for id, e := range d.Enemies {
		if e.MaxHP <= 0 {
			vb.Fieldf("enemies."+id, "maxHp must be positive, got %d", e.MaxHP)
		}
		if e.CurrencyDrop.Max < e.CurrencyDrop.Min {
			vb.Field("enemies."+id, "currencyDrop max is below min")
		}
		switch e.AIPattern {
		case rpg.AIAggressive, rpg.AIDefensive, rpg.AIRandom:
		default:
			vb.Fieldf("enemies."+id, "unknown aiPattern %q", e.AIPattern)
		}
		if e.Special != nil && e.Special.Type == rpg.SpecialSummonMinions {
			if _, ok := d.Enemies[e.Special.SummonID]; !ok {
				vb.Fieldf("enemies."+id, "summons unknown enemy %q", e.Special.SummonID)
			}
		}
	}

	for id, l := range d.Locations {
		for _, enemyID := range l.Encounters {
			if _, ok := d.Enemies[enemyID]; !ok {
				vb.Fieldf("locations."+id, "unknown encounter %q", enemyID)
			}
		}
		if l.Boss != "" {
			if e, ok := d.Enemies[l.Boss]; !ok || !e.IsBoss {
				vb.Fieldf("locations."+id, "boss %q is not a boss enemy", l.Boss)
			}
		}
		for _, c := range l.Connections {
			if _, ok := d.Locations[c]; !ok {
				vb.Fieldf("locations."+id, "unknown connection %q", c)
			}
		}
	}
	if _, ok := d.Locations[rpg.StartingLocation]; !ok {
		vb.Field("locations", "starting location is missing")
	}

	for loc := range d.Shops {
		if _, ok := d.Locations[loc]; !ok {
			vb.Fieldf("shops."+loc, "unknown location %q", loc)
		}
	}

	if err := vb.Build(); err != nil {
		return errors.WrapWithCode(err, errors.CodeDataLoss, "static data failed validation")
	}
	return nil
}

// Ingredient returns the bonus for an ingredient id.
func (d *Data) Ingredient(id string) (rpg.StatBonus, bool) {
	b, ok := d.Ingredients[id]
	return b, ok
}

// Location returns a location by id.
func (d *Data) Location(id string) (Location, bool) {
	l, ok := d.Locations[id]
	return l, ok
}

// Shop returns a location's shop entries; nil when it has no shop.
func (d *Data) Shop(locationID string) []ShopEntry {
	return d.Shops[locationID]
}

// LocationIDs returns every location id in sorted order.
func (d *Data) LocationIDs() []string {
	ids := make([]string, 0, len(d.Locations))
	for id := range d.Locations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
