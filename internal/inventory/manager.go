// Package inventory adds, removes, uses and equips items on a player state and
// keeps the derived stats in line with the loadout.
package inventory

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/itemdb"
)

// Result is the outcome of an inventory operation. On failure State is the
// unchanged input.
type Result struct {
	State      *rpg.State
	Success    bool
	Message    string
	HealAmount int
}

func failed(state *rpg.State, message string) *Result {
	return &Result{State: state, Message: message}
}

// Config holds the dependencies for the inventory manager
type Config struct {
	Items *itemdb.Database
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Items == nil {
		vb.RequiredField("Items")
	}
	return vb.Build()
}

// Manager applies inventory operations. It holds no per-session state.
type Manager struct {
	items *itemdb.Database
}

// New creates an inventory manager
func New(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Manager{items: cfg.Items}, nil
}

// Items exposes the item registry the manager resolves against.
func (m *Manager) Items() *itemdb.Database {
	return m.items
}

// AddItem stacks onto an existing entry or appends a new one. A new stack is
// refused once the bag holds MaxInventorySize entries.
func (m *Manager) AddItem(state *rpg.State, itemID string, quantity int) *Result {
	def, ok := m.items.Get(itemID)
	if !ok {
		return failed(state, fmt.Sprintf("Item %s not found", itemID))
	}
	if quantity < 1 {
		return failed(state, fmt.Sprintf("Invalid quantity %d", quantity))
	}
	if def.IsStartingEquipment {
		return failed(state, fmt.Sprintf("%s cannot be carried", def.Name))
	}

	next := state.Clone()
	if i := next.FindItem(itemID); i >= 0 {
		next.Inventory[i].Quantity += quantity
	} else {
		if len(next.Inventory) >= rpg.MaxInventorySize {
			return failed(state, "Inventory is full!")
		}
		next.Inventory = append(next.Inventory, def.InventoryItem(quantity))
	}

	return &Result{
		State:   next,
		Success: true,
		Message: fmt.Sprintf("Received %dx %s", quantity, def.Name),
	}
}

// RemoveItem decrements a stack, dropping it when it reaches zero. Removing
// more than is held fails without touching the state.
func (m *Manager) RemoveItem(state *rpg.State, itemID string, quantity int) *Result {
	i := state.FindItem(itemID)
	if i < 0 || quantity < 1 || state.Inventory[i].Quantity < quantity {
		return failed(state, "Item not found in inventory")
	}

	next := state.Clone()
	removeAt(next, i, quantity)
	return &Result{State: next, Success: true}
}

// RemoveAt drops one unit of the stack at index i. Used for stolen items.
func (m *Manager) RemoveAt(state *rpg.State, i int) (*Result, string) {
	if i < 0 || i >= len(state.Inventory) {
		return failed(state, "Item not found in inventory"), ""
	}
	name := state.Inventory[i].Name
	next := state.Clone()
	removeAt(next, i, 1)
	return &Result{State: next, Success: true}, name
}

func removeAt(state *rpg.State, i, quantity int) {
	if state.Inventory[i].Quantity <= quantity {
		state.Inventory = append(state.Inventory[:i], state.Inventory[i+1:]...)
		return
	}
	state.Inventory[i].Quantity -= quantity
}

// UseConsumable applies a consumable's effect and spends one unit. Heals are
// capped at max HP; buffs last until the current combat ends.
func (m *Manager) UseConsumable(state *rpg.State, itemID string) *Result {
	i := state.FindItem(itemID)
	if i < 0 {
		return failed(state, "Item not found in inventory")
	}
	item := state.Inventory[i]
	if item.Type != rpg.ItemTypeConsumable {
		return failed(state, "This item cannot be used")
	}
	if item.Effect == nil {
		return failed(state, "This item has no effect")
	}

	eff := *item.Effect
	if eff.Revive && eff.HealHP == 0 && eff.HealHPPercent == 0 && eff.BuffAtk == 0 && eff.BuffDef == 0 {
		return failed(state, fmt.Sprintf("%s is used automatically when you fall", item.Name))
	}
	if (eff.BuffAtk != 0 || eff.BuffDef != 0) && !state.InCombat {
		return failed(state, fmt.Sprintf("%s can only be used in battle", item.Name))
	}

	next := state.Clone()
	var parts []string
	healed := 0

	if heal := eff.HealHP + next.MaxHP*eff.HealHPPercent/100; heal > 0 {
		before := next.HP
		next.HP = min(next.MaxHP, next.HP+heal)
		healed = next.HP - before
		parts = append(parts, fmt.Sprintf("Healed %d HP!", healed))
	}
	if eff.BuffAtk != 0 {
		next.CombatBuffs.Atk += eff.BuffAtk
		parts = append(parts, fmt.Sprintf("ATK +%d for this battle!", eff.BuffAtk))
	}
	if eff.BuffDef != 0 {
		next.CombatBuffs.Def += eff.BuffDef
		parts = append(parts, fmt.Sprintf("DEF +%d for this battle!", eff.BuffDef))
	}
	if len(parts) == 0 {
		slog.Warn("Consumable has no recognized effect", "item_id", itemID)
		parts = append(parts, fmt.Sprintf("You use the %s. Nothing happens.", item.Name))
	}

	removeAt(next, next.FindItem(itemID), 1)

	return &Result{
		State:      next,
		Success:    true,
		Message:    strings.Join(parts, " "),
		HealAmount: healed,
	}
}

// Revive spends one revive item, restoring the player to a fraction of max
// HP. It reports false when the player holds none.
func (m *Manager) Revive(state *rpg.State) (*Result, bool) {
	i := state.FindItem(rpg.ReviveItemID)
	if i < 0 {
		return failed(state, ""), false
	}
	next := state.Clone()
	removeAt(next, i, 1)
	next.HP = max(1, int(float64(next.MaxHP)*rpg.ReviveHPFraction))
	return &Result{State: next, Success: true, HealAmount: next.HP - max(0, state.HP)}, true
}

