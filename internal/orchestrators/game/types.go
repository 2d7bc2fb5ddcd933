package game

import (
	"github.com/KirkDiggler/bun-dungeon/internal/combat"
	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/repositories/session"
	"github.com/KirkDiggler/bun-dungeon/internal/shop"
)

// NewGameInput starts a dungeon run with the ingredients carried out of the
// story act
type NewGameInput struct {
	Ingredients []string
}

// NewGameOutput holds the created session
type NewGameOutput struct {
	Session *session.Session
}

// GetGameInput identifies a session
type GetGameInput struct {
	SessionID string
}

// GetGameOutput holds the session
type GetGameOutput struct {
	Session *session.Session
}

// TravelInput moves the player to a connected location
type TravelInput struct {
	SessionID  string
	LocationID string
}

// TravelOutput reports whether the move happened. A refused move leaves the
// session unchanged.
type TravelOutput struct {
	Session  *session.Session
	Location gamedata.Location
	Success  bool
	Message  string
}

// ExploreInput searches the current location for a fight
type ExploreInput struct {
	SessionID string
}

// ExploreOutput holds the encountered enemy, nil when the location is quiet
type ExploreOutput struct {
	Session *session.Session
	Enemy   *rpg.Enemy
	Message string
}

// StartBattleInput picks a fight. An empty EnemyID challenges the location
// boss.
type StartBattleInput struct {
	SessionID string
	EnemyID   string
}

// StartBattleOutput holds the enemy when the fight started
type StartBattleOutput struct {
	Session *session.Session
	Enemy   *rpg.Enemy
	Success bool
	Message string
}

// TakeTurnInput is one combat decision
type TakeTurnInput struct {
	SessionID string
	Action    rpg.PlayerAction
	// TargetID names the item or ability for the item and ability actions
	TargetID string
}

// TakeTurnOutput is the round's log and, once the fight is over, how it ended
type TakeTurnOutput struct {
	Session *session.Session
	// EnemyName is the enemy the round was fought against
	EnemyName string
	Actions   []rpg.CombatAction
	Outcome   rpg.Outcome
	// Rewards is set on victory
	Rewards *combat.EndResult
	// Respawned is set on defeat; the player is back at the last checkpoint
	Respawned bool
}

// UseItemInput uses a consumable outside combat
type UseItemInput struct {
	SessionID string
	ItemID    string
}

// UseItemOutput reports the result of the use
type UseItemOutput struct {
	Session    *session.Session
	Success    bool
	Message    string
	HealAmount int
}

// EquipInput moves an item from the bag into its slot
type EquipInput struct {
	SessionID string
	ItemID    string
}

// EquipOutput reports the result of the equip
type EquipOutput struct {
	Session *session.Session
	Success bool
	Message string
}

// UnequipInput empties a slot back into the bag
type UnequipInput struct {
	SessionID string
	Slot      rpg.Slot
}

// UnequipOutput reports the result of the unequip
type UnequipOutput struct {
	Session *session.Session
	Success bool
	Message string
}

// ListShopInput asks what the current location's shop offers
type ListShopInput struct {
	SessionID string
}

// ListShopOutput holds the shop lines and what the player could sell. Both
// are empty when there is no shop here.
type ListShopOutput struct {
	Session    *session.Session
	LocationID string
	HasShop    bool
	Listings   []shop.Listing
	Sellable   []shop.Sellable
}

// BuyInput buys one unit at the current location
type BuyInput struct {
	SessionID string
	ItemID    string
}

// BuyOutput reports the transaction
type BuyOutput struct {
	Session *session.Session
	Success bool
	Message string
}

// SellInput sells one unit at the current location
type SellInput struct {
	SessionID string
	ItemID    string
}

// SellOutput reports the transaction
type SellOutput struct {
	Session *session.Session
	Success bool
	Message string
}

// RestartInput throws away progress and starts over with the same
// ingredients
type RestartInput struct {
	SessionID string
}

// RestartOutput holds the reset session
type RestartOutput struct {
	Session *session.Session
}
