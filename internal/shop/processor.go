// Package shop handles buying and selling against the per-location shop
// inventories. Limited stock is tracked on the state per location.
package shop

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/inventory"
	"github.com/KirkDiggler/bun-dungeon/internal/itemdb"
)

// Unlimited is the Remaining value of a stock that never runs out.
const Unlimited = -1

// Result is the outcome of a transaction. A failed transaction returns the
// input state unchanged.
type Result struct {
	State   *rpg.State
	Success bool
	Message string
}

func failed(state *rpg.State, message string) *Result {
	return &Result{State: state, Message: message}
}

// Listing is one shop line as seen by a player.
type Listing struct {
	Item      *itemdb.Definition
	Stock     gamedata.Stock
	Remaining int
	Respawns  bool
	CanAfford bool
}

// SoldOut reports whether a limited line has nothing left.
func (l Listing) SoldOut() bool {
	return l.Remaining == 0
}

// Sellable is a bag stack the shop will buy.
type Sellable struct {
	Item      *itemdb.Definition
	Quantity  int
	SellPrice int
}

// Config holds the dependencies for the shop processor
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

// Processor runs shop transactions.
type Processor struct {
	data      *gamedata.Data
	inventory *inventory.Manager
	items     *itemdb.Database
}

// New creates a shop processor
func New(cfg *Config) (*Processor, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Processor{
		data:      cfg.Data,
		inventory: cfg.Inventory,
		items:     cfg.Inventory.Items(),
	}, nil
}

// HasShop reports whether the location sells anything.
func (p *Processor) HasShop(locationID string) bool {
	return len(p.data.Shop(locationID)) > 0
}

// List returns the shop's lines in authored order with the player's view of
// stock and affordability. Lines naming unknown items are skipped.
func (p *Processor) List(state *rpg.State, locationID string) []Listing {
	entries := p.data.Shop(locationID)
	if len(entries) == 0 {
		slog.Warn("No shop inventory for location", "location_id", locationID)
		return nil
	}

	listings := make([]Listing, 0, len(entries))
	for _, entry := range entries {
		def, ok := p.items.Get(entry.ItemID)
		if !ok {
			slog.Warn("Shop lists unknown item", "location_id", locationID, "item_id", entry.ItemID)
			continue
		}
		listings = append(listings, Listing{
			Item:      def,
			Stock:     entry.Stock,
			Remaining: remaining(state, locationID, entry),
			Respawns:  entry.Respawns,
			CanAfford: def.ShopPrice <= state.Currency,
		})
	}
	return listings
}

func remaining(state *rpg.State, locationID string, entry gamedata.ShopEntry) int {
	if entry.Stock.Unlimited {
		return Unlimited
	}
	return max(0, entry.Stock.Count-state.Purchased(locationID, entry.ItemID))
}

func (p *Processor) entry(locationID, itemID string) (gamedata.ShopEntry, bool) {
	for _, e := range p.data.Shop(locationID) {
		if e.ItemID == itemID {
			return e, true
		}
	}
	return gamedata.ShopEntry{}, false
}

// Buy purchases one unit. The item must be listed at the location, priced,
// in stock and affordable, and must fit in the bag.
func (p *Processor) Buy(state *rpg.State, itemID, locationID string) *Result {
	def, ok := p.items.Get(itemID)
	if !ok {
		return failed(state, fmt.Sprintf("Item %s not found.", itemID))
	}
	entry, ok := p.entry(locationID, itemID)
	if !ok {
		return failed(state, fmt.Sprintf("%s is not available in this shop.", def.Name))
	}
	if def.ShopPrice <= 0 {
		return failed(state, fmt.Sprintf("%s cannot be purchased.", def.Name))
	}
	if remaining(state, locationID, entry) == 0 {
		return failed(state, fmt.Sprintf("%s is sold out.", def.Name))
	}
	if state.Currency < def.ShopPrice {
		return failed(state, fmt.Sprintf("Not enough Crumbs! Need %d, have %d.", def.ShopPrice, state.Currency))
	}

	added := p.inventory.AddItem(state, itemID, 1)
	if !added.Success {
		return failed(state, added.Message)
	}

	next := added.State
	next.Currency -= def.ShopPrice
	if !entry.Stock.Unlimited {
		recordPurchase(next, locationID, itemID)
	}

	return &Result{
		State:   next,
		Success: true,
		Message: fmt.Sprintf("Purchased %s for %d Crumbs!", def.Name, def.ShopPrice),
	}
}

func recordPurchase(state *rpg.State, locationID, itemID string) {
	if state.ShopPurchases == nil {
		state.ShopPurchases = map[string]map[string]int{}
	}
	if state.ShopPurchases[locationID] == nil {
		state.ShopPurchases[locationID] = map[string]int{}
	}
	state.ShopPurchases[locationID][itemID]++
}

// Sell sells one unit from the bag. Starting gear, unpriced items and
// anything with the same id as an equipped item are refused.
func (p *Processor) Sell(state *rpg.State, itemID string) *Result {
	def, ok := p.items.Get(itemID)
	if !ok {
		return failed(state, fmt.Sprintf("Item %s not found.", itemID))
	}
	if def.SellPrice <= 0 {
		return failed(state, fmt.Sprintf("%s cannot be sold.", def.Name))
	}
	if def.IsStartingEquipment {
		return failed(state, fmt.Sprintf("%s is starting equipment and cannot be sold.", def.Name))
	}
	if def.IsEquipment() && state.Equipment.IsEquipped(itemID) {
		return failed(state, fmt.Sprintf("%s is currently equipped. Unequip it first.", def.Name))
	}
	if state.Quantity(itemID) < 1 {
		return failed(state, fmt.Sprintf("You don't have %s to sell.", def.Name))
	}

	removed := p.inventory.RemoveItem(state, itemID, 1)
	if !removed.Success {
		return failed(state, "Could not remove item from inventory.")
	}

	next := removed.State
	next.Currency += def.SellPrice
	return &Result{
		State:   next,
		Success: true,
		Message: fmt.Sprintf("Sold %s for %d Crumbs!", def.Name, def.SellPrice),
	}
}

// SellableItems lists the bag stacks Sell would accept.
func (p *Processor) SellableItems(state *rpg.State) []Sellable {
	var out []Sellable
	for _, item := range state.Inventory {
		def, ok := p.items.Get(item.ID)
		if !ok || def.IsStartingEquipment || def.SellPrice <= 0 {
			continue
		}
		if def.IsEquipment() && state.Equipment.IsEquipped(item.ID) {
			continue
		}
		out = append(out, Sellable{Item: def, Quantity: item.Quantity, SellPrice: def.SellPrice})
	}
	return out
}

// Restock forgets purchases of respawning lines at the location. The input
// state is returned as is when there is nothing to restock.
func (p *Processor) Restock(state *rpg.State, locationID string) *rpg.State {
	bought := state.ShopPurchases[locationID]
	if len(bought) == 0 {
		return state
	}

	var restocked []string
	for _, e := range p.data.Shop(locationID) {
		if e.Respawns && bought[e.ItemID] > 0 {
			restocked = append(restocked, e.ItemID)
		}
	}
	if len(restocked) == 0 {
		return state
	}

	next := state.Clone()
	for _, id := range restocked {
		delete(next.ShopPurchases[locationID], id)
	}
	slog.Debug("Shop restocked", "location_id", locationID, "items", restocked)
	return next
}
