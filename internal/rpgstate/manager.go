// Package rpgstate builds the opening RPG state from the ingredients carried
// out of the story act and handles leveling and world bookkeeping.
package rpgstate

import (
	"log/slog"
	"slices"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/inventory"
)

// Config holds the dependencies for the state manager
type Config struct {
	Data      *gamedata.Data
	Inventory *inventory.Manager
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Data == nil {
		vb.RequiredField("Data")
	}
	if c.Inventory == nil {
		vb.RequiredField("Inventory")
	}
	return vb.Build()
}

// Manager creates and advances RPG states.
type Manager struct {
	data      *gamedata.Data
	inventory *inventory.Manager
}

// New creates a state manager
func New(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Manager{data: cfg.Data, inventory: cfg.Inventory}, nil
}

// IngredientBonuses maps carried ingredients to their powers. Unknown
// ingredients contribute nothing.
func (m *Manager) IngredientBonuses(ingredients []string) map[string]rpg.StatBonus {
	bonuses := make(map[string]rpg.StatBonus, len(ingredients))
	for _, id := range ingredients {
		bonus, ok := m.data.Ingredient(id)
		if !ok {
			slog.Debug("Ingredient has no power", "ingredient_id", id)
			continue
		}
		bonuses[id] = bonus
	}
	return bonuses
}

// StartingStats is the level 1 stat block after ingredient bonuses, clamped
// so that max HP, ATK and SPD stay at least 1 and DEF at least 0.
func StartingStats(bonuses map[string]rpg.StatBonus) (int, rpg.Stats) {
	maxHP := rpg.StartingHP
	stats := rpg.Stats{Atk: rpg.StartingAtk, Def: rpg.StartingDef, Spd: rpg.StartingSpd}
	for _, b := range bonuses {
		maxHP += b.MaxHP
		stats = stats.Add(rpg.Stats{Atk: b.Atk, Def: b.Def, Spd: b.Spd})
	}
	return max(1, maxHP), rpg.Stats{
		Atk: max(1, stats.Atk),
		Def: max(0, stats.Def),
		Spd: max(1, stats.Spd),
	}
}

// CreateInitialState builds a fresh session at the starting location wearing
// the starting gear. A missing starting item definition is CodeDataLoss.
func (m *Manager) CreateInitialState(ingredients []string) (*rpg.State, error) {
	bonuses := m.IngredientBonuses(ingredients)
	maxHP, stats := StartingStats(bonuses)

	var loadout rpg.Loadout
	for _, slot := range []rpg.Slot{rpg.SlotWeapon, rpg.SlotArmor, rpg.SlotShield} {
		eq, err := m.inventory.StartingEquipment(slot)
		if err != nil {
			return nil, errors.Wrap(err, "failed to assemble starting equipment")
		}
		loadout = loadout.With(slot, eq)
	}

	return &rpg.State{
		Level:             rpg.StartingLevel,
		XP:                rpg.StartingXP,
		MaxXP:             rpg.XPForLevel(rpg.StartingLevel),
		HP:                maxHP,
		MaxHP:             maxHP,
		Stats:             stats,
		Inventory:         []rpg.InventoryItem{},
		Equipment:         loadout,
		Currency:          rpg.StartingCurrency,
		CurrentLocation:   rpg.StartingLocation,
		VisitedLocations:  []string{rpg.StartingLocation},
		Checkpoints:       []string{rpg.StartingLocation},
		DefeatedBosses:    []string{},
		IngredientBonuses: bonuses,
	}, nil
}

// LevelUp raises the level by one. HP is healed by the max HP gain.
func LevelUp(state *rpg.State) *rpg.State {
	next := state.Clone()
	levelUp(next)
	return next
}

func levelUp(state *rpg.State) {
	state.Level++
	state.MaxXP = rpg.XPForLevel(state.Level)
	state.MaxHP += rpg.LevelUpHPGain
	state.HP += rpg.LevelUpHPGain
	state.Stats = state.Stats.Add(rpg.Stats{
		Atk: rpg.LevelUpAtkGain,
		Def: rpg.LevelUpDefGain,
		Spd: rpg.LevelUpSpdGain,
	})
}

// AddXP grants XP, leveling up while the pool covers the threshold. At
// MaxLevel the pool is capped at the threshold. It returns the new state and
// the number of levels gained.
func AddXP(state *rpg.State, amount int) (*rpg.State, int) {
	next := state.Clone()
	remaining := next.XP + max(0, amount)
	gained := 0
	for remaining >= next.MaxXP && next.Level < rpg.MaxLevel {
		remaining -= next.MaxXP
		levelUp(next)
		gained++
	}
	if next.Level >= rpg.MaxLevel {
		remaining = min(remaining, next.MaxXP)
	}
	next.XP = remaining
	return next, gained
}

// AddCurrency credits Crumbs. The balance never goes below zero.
func AddCurrency(state *rpg.State, amount int) *rpg.State {
	next := state.Clone()
	next.Currency = max(0, next.Currency+amount)
	return next
}

// ChangeLocation moves the player, recording the location as visited.
func ChangeLocation(state *rpg.State, locationID string) *rpg.State {
	next := state.Clone()
	next.CurrentLocation = locationID
	if !next.HasVisited(locationID) {
		next.VisitedLocations = append(next.VisitedLocations, locationID)
	}
	return next
}

// AddCheckpoint appends a checkpoint once.
func AddCheckpoint(state *rpg.State, checkpointID string) *rpg.State {
	if slices.Contains(state.Checkpoints, checkpointID) {
		return state
	}
	next := state.Clone()
	next.Checkpoints = append(next.Checkpoints, checkpointID)
	return next
}

// DefeatBoss records a boss kill once.
func DefeatBoss(state *rpg.State, bossID string) *rpg.State {
	if state.HasDefeatedBoss(bossID) {
		return state
	}
	next := state.Clone()
	next.DefeatedBosses = append(next.DefeatedBosses, bossID)
	return next
}

// Respawn returns a defeated player to the last checkpoint at full HP.
func Respawn(state *rpg.State) *rpg.State {
	next := state.Clone()
	next.HP = next.MaxHP
	next.StatusEffects = rpg.StatusEffects{}
	next.CombatBuffs = rpg.Stats{}
	if n := len(next.Checkpoints); n > 0 {
		next.CurrentLocation = next.Checkpoints[n-1]
	} else {
		next.CurrentLocation = rpg.StartingLocation
	}
	return next
}
