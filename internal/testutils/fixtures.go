package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/itemdb"
)

// Enemy ids from the embedded tables that tests lean on
const (
	EnemyAnt       = "ant_soldier"
	EnemyRatKing   = "rat_king"
	EnemyRatMinion = "rat_minion"
)

// LoadGameData loads the embedded static tables
func LoadGameData(t *testing.T) *gamedata.Data {
	data, err := gamedata.Load()
	require.NoError(t, err, "failed to load embedded game data")
	return data
}

// LoadItems builds an item database over the embedded item tables
func LoadItems(t *testing.T) *itemdb.Database {
	db := itemdb.FromTables(LoadGameData(t).Items)
	require.NoError(t, db.Err(), "failed to load item tables")
	return db
}

// Item builds a bag stack for an item in the database
func Item(t *testing.T, db *itemdb.Database, id string, quantity int) rpg.InventoryItem {
	def, ok := db.Get(id)
	require.True(t, ok, "unknown item %s", id)
	return def.InventoryItem(quantity)
}

// Equipment builds the slotted form of an item in the database
func Equipment(t *testing.T, db *itemdb.Database, id string) *rpg.Equipment {
	def, ok := db.Get(id)
	require.True(t, ok, "unknown item %s", id)
	require.True(t, def.IsEquipment(), "%s is not equipment", id)
	return def.Equipment()
}

// CreateTestEnemy creates a plain aggressive enemy with no special
func CreateTestEnemy(hp, atk, def int) *rpg.Enemy {
	return &rpg.Enemy{
		ID:           "test_grub",
		Name:         "Test Grub",
		Description:  "A grub that exists only for tests.",
		Level:        1,
		HP:           hp,
		MaxHP:        hp,
		Atk:          atk,
		Def:          def,
		Spd:          1,
		XPReward:     10,
		CurrencyDrop: rpg.CurrencyDrop{Min: 1, Max: 5},
		AIPattern:    rpg.AIAggressive,
	}
}
