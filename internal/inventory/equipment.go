package inventory

import (
	"fmt"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/itemdb"
)

// Equip moves an item from the bag into its slot. The previous occupant goes
// back into the bag unless it is starting equipment. A second accessory fills
// accessory2; a third swaps out the first. The error is reserved for
// equipment that fails validation.
func (m *Manager) Equip(state *rpg.State, itemID string) (*Result, error) {
	def, ok := m.items.Get(itemID)
	if !ok || !def.IsEquipment() || def.Slot == "" {
		return failed(state, "Item cannot be equipped"), nil
	}
	if state.FindItem(itemID) < 0 {
		return failed(state, "Item not found in inventory"), nil
	}

	slot := def.Slot
	if slot == rpg.SlotAccessory && state.Equipment.Accessory != nil && state.Equipment.Accessory2 == nil {
		slot = rpg.SlotAccessory2
	}

	eq := def.Equipment()
	if err := itemdb.AssertEquipment(eq, itemID); err != nil {
		return nil, err
	}

	next := state.Clone()
	removeAt(next, next.FindItem(itemID), 1)

	if current := next.Equipment.Get(slot); current != nil && !m.items.IsStartingEquipment(current.ID) {
		added := m.AddItem(next, current.ID, 1)
		if !added.Success {
			return failed(state, "Inventory is full"), nil
		}
		next = added.State
	}

	next.Equipment = next.Equipment.With(slot, eq)
	if err := m.recalculate(next); err != nil {
		return nil, err
	}

	return &Result{
		State:   next,
		Success: true,
		Message: fmt.Sprintf("Equipped %s", def.Name),
	}, nil
}

// Unequip returns a slot's item to the bag. Weapon, armor and shield fall back
// to their starting item; accessory slots are left empty. A missing starting
// item definition is reported as CodeDataLoss.
func (m *Manager) Unequip(state *rpg.State, slot rpg.Slot) (*Result, error) {
	current := state.Equipment.Get(slot)
	if current == nil {
		return failed(state, "No item equipped in this slot"), nil
	}
	if m.items.IsStartingEquipment(current.ID) {
		return failed(state, "Cannot unequip starting equipment"), nil
	}

	added := m.AddItem(state, current.ID, 1)
	if !added.Success {
		return failed(state, "Inventory is full"), nil
	}
	next := added.State

	var replacement *rpg.Equipment
	if slot.IsMandatory() {
		eq, err := m.StartingEquipment(slot)
		if err != nil {
			return nil, err
		}
		replacement = eq
	}

	next.Equipment = next.Equipment.With(slot, replacement)
	if err := m.recalculate(next); err != nil {
		return nil, err
	}

	return &Result{
		State:   next,
		Success: true,
		Message: fmt.Sprintf("Unequipped %s", current.Name),
	}, nil
}

// StartingEquipment builds the baseline item for a mandatory slot.
func (m *Manager) StartingEquipment(slot rpg.Slot) (*rpg.Equipment, error) {
	id, ok := rpg.StartingEquipmentID(slot)
	if !ok {
		return nil, errors.InvalidArgumentf("slot %q has no starting equipment", slot)
	}
	def, ok := m.items.Get(id)
	if !ok || !def.IsEquipment() {
		return nil, errors.DataLossf("starting equipment definition not found for %s (%s)", slot, id).
			WithMeta("slot", string(slot)).
			WithMeta("item_id", id)
	}
	eq := def.Equipment()
	eq.Slot = slot
	return eq, nil
}

// recalculate rebuilds stats from the level base, every loadout slot
// (accessories included) and the ingredient bonuses.
func (m *Manager) recalculate(state *rpg.State) error {
	total := BaseStats(state.Level)
	for _, slot := range rpg.LoadoutSlots {
		eq := state.Equipment.Get(slot)
		if eq == nil {
			continue
		}
		if err := itemdb.AssertEquipment(eq, fmt.Sprintf("%s slot", slot)); err != nil {
			return err
		}
		total = total.Add(eq.Stats)
	}
	for _, bonus := range state.IngredientBonuses {
		total = total.Add(rpg.Stats{Atk: bonus.Atk, Def: bonus.Def, Spd: bonus.Spd})
	}
	state.Stats = total
	return nil
}

// BaseStats are the unequipped stats for a level.
func BaseStats(level int) rpg.Stats {
	return rpg.Stats{
		Atk: rpg.BaseStat(rpg.StartingAtk, level, rpg.LevelUpAtkGain),
		Def: rpg.BaseStat(rpg.StartingDef, level, rpg.LevelUpDefGain),
		Spd: rpg.BaseStat(rpg.StartingSpd, level, rpg.LevelUpSpdGain),
	}
}
