// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
)

// StateBuilder provides a fluent interface for building test State instances
type StateBuilder struct {
	state *rpg.State
}

// NewStateBuilder creates a builder for a fresh level 1 player at the
// starting location wearing the starting gear
func NewStateBuilder() *StateBuilder {
	return &StateBuilder{
		state: &rpg.State{
			Level: rpg.StartingLevel,
			XP:    rpg.StartingXP,
			MaxXP: rpg.XPForLevel(rpg.StartingLevel),
			HP:    rpg.StartingHP,
			MaxHP: rpg.StartingHP,
			Stats: rpg.Stats{Atk: rpg.StartingAtk, Def: rpg.StartingDef, Spd: rpg.StartingSpd},
			Equipment: rpg.Loadout{
				Weapon: StartingEquipment(rpg.SlotWeapon, rpg.StartingWeaponID, "Toothpick Shiv"),
				Armor:  StartingEquipment(rpg.SlotArmor, rpg.StartingArmorID, "Exposed Bun"),
				Shield: StartingEquipment(rpg.SlotShield, rpg.StartingShieldID, "No Shield"),
			},
			Inventory:         []rpg.InventoryItem{},
			CurrentLocation:   rpg.StartingLocation,
			VisitedLocations:  []string{rpg.StartingLocation},
			Checkpoints:       []string{rpg.StartingLocation},
			DefeatedBosses:    []string{},
			IngredientBonuses: map[string]rpg.StatBonus{},
		},
	}
}

// StartingEquipment builds a zero-stat starter item
func StartingEquipment(slot rpg.Slot, id, name string) *rpg.Equipment {
	return &rpg.Equipment{
		InventoryItem: rpg.InventoryItem{
			ID:       id,
			Name:     name,
			Type:     rpg.ItemTypeEquipment,
			Quantity: 1,
		},
		Slot: slot,
	}
}

// WithLevel sets the level and the matching XP threshold
func (b *StateBuilder) WithLevel(level int) *StateBuilder {
	b.state.Level = level
	b.state.MaxXP = rpg.XPForLevel(level)
	return b
}

// WithXP sets the current XP
func (b *StateBuilder) WithXP(xp int) *StateBuilder {
	b.state.XP = xp
	return b
}

// WithHP sets current and max HP
func (b *StateBuilder) WithHP(hp, maxHP int) *StateBuilder {
	b.state.HP = hp
	b.state.MaxHP = maxHP
	return b
}

// WithStats sets the derived stats
func (b *StateBuilder) WithStats(atk, def, spd int) *StateBuilder {
	b.state.Stats = rpg.Stats{Atk: atk, Def: def, Spd: spd}
	return b
}

// WithCurrency sets the Crumb balance
func (b *StateBuilder) WithCurrency(currency int) *StateBuilder {
	b.state.Currency = currency
	return b
}

// WithItem appends a stack to the bag
func (b *StateBuilder) WithItem(item rpg.InventoryItem) *StateBuilder {
	b.state.Inventory = append(b.state.Inventory, item)
	return b
}

// WithConsumable appends a consumable stack to the bag
func (b *StateBuilder) WithConsumable(id, name string, effect rpg.Effect, quantity int) *StateBuilder {
	return b.WithItem(rpg.InventoryItem{
		ID:       id,
		Name:     name,
		Type:     rpg.ItemTypeConsumable,
		Effect:   &effect,
		Quantity: quantity,
	})
}

// WithEquipped puts an item in a loadout slot
func (b *StateBuilder) WithEquipped(slot rpg.Slot, eq *rpg.Equipment) *StateBuilder {
	b.state.Equipment = b.state.Equipment.With(slot, eq)
	return b
}

// WithIngredient adds an ingredient bonus
func (b *StateBuilder) WithIngredient(id string, bonus rpg.StatBonus) *StateBuilder {
	b.state.IngredientBonuses[id] = bonus
	return b
}

// WithLocation moves the player and marks the location visited
func (b *StateBuilder) WithLocation(id string) *StateBuilder {
	b.state.CurrentLocation = id
	if !b.state.HasVisited(id) {
		b.state.VisitedLocations = append(b.state.VisitedLocations, id)
	}
	return b
}

// WithDefeatedBoss records a boss kill
func (b *StateBuilder) WithDefeatedBoss(id string) *StateBuilder {
	b.state.DefeatedBosses = append(b.state.DefeatedBosses, id)
	return b
}

// InCombatWith starts a fight against the enemy
func (b *StateBuilder) InCombatWith(enemy *rpg.Enemy) *StateBuilder {
	b.state.InCombat = true
	b.state.CurrentEnemy = enemy
	return b
}

// Defending sets the player's defend stance
func (b *StateBuilder) Defending() *StateBuilder {
	b.state.PlayerDefending = true
	return b
}

// Build returns a copy of the built state
func (b *StateBuilder) Build() *rpg.State {
	return b.state.Clone()
}
