package itemdb

import (
	"fmt"
	"math"
	"strings"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
)

var statKeys = []string{"atk", "def", "spd"}

// NormalizeStats reads a raw stats value into Stats. Missing, null and
// non-numeric fields become 0.
func NormalizeStats(raw any) rpg.Stats {
	m, _ := raw.(map[string]any)
	atk, _ := toInt(m["atk"])
	def, _ := toInt(m["def"])
	spd, _ := toInt(m["spd"])
	return rpg.Stats{Atk: atk, Def: def, Spd: spd}
}

// NormalizeEquipmentRecord returns a shallow copy of a raw equipment record
// whose "stats" holds numeric atk, def and spd. The input is left untouched.
func NormalizeEquipmentRecord(record map[string]any) map[string]any {
	out := make(map[string]any, len(record)+1)
	for k, v := range record {
		out[k] = v
	}
	stats := NormalizeStats(record["stats"])
	out["stats"] = map[string]any{"atk": stats.Atk, "def": stats.Def, "spd": stats.Spd}
	return out
}

// AssertEquipmentRecord fails with CodeDataLoss when a raw equipment record has
// a missing or non-numeric stat, or a slot outside the item slots.
func AssertEquipmentRecord(record map[string]any, context string) error {
	var issues []string

	stats, ok := record["stats"].(map[string]any)
	if !ok {
		issues = append(issues, "missing stats object")
	} else {
		for _, key := range statKeys {
			if _, ok := toInt(stats[key]); !ok {
				issues = append(issues, fmt.Sprintf("invalid %s stat: %v", key, stats[key]))
			}
		}
	}

	slot, _ := record["slot"].(string)
	if !rpg.Slot(slot).IsItemSlot() {
		issues = append(issues, fmt.Sprintf("invalid slot: %v", record["slot"]))
	}

	if len(issues) > 0 {
		return errors.DataLossf("equipment validation failed for %s: %s", context, strings.Join(issues, ", ")).
			WithMeta("context", context)
	}
	return nil
}

// AssertEquipment is the runtime check used before equipment reaches stat
// math. Loadout slots (accessory2 included) are accepted.
func AssertEquipment(eq *rpg.Equipment, context string) error {
	if eq == nil {
		return errors.DataLossf("equipment validation failed for %s: missing equipment", context)
	}
	valid := false
	for _, s := range rpg.LoadoutSlots {
		if eq.Slot == s {
			valid = true
			break
		}
	}
	if !valid {
		return errors.DataLossf("equipment validation failed for %s: invalid slot: %q", context, eq.Slot).
			WithMeta("item_id", eq.ID)
	}
	return nil
}

// FallbackEquipment builds a zero-stat item for a slot when source data is
// unusable.
func FallbackEquipment(slot rpg.Slot, itemID string) *rpg.Equipment {
	name := string(slot)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return &rpg.Equipment{
		InventoryItem: rpg.InventoryItem{
			ID:          itemID,
			Name:        name,
			Description: fmt.Sprintf("Basic %s (fallback)", slot),
			Type:        rpg.ItemTypeEquipment,
			Quantity:    1,
		},
		Slot: slot,
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
