package rpg

import "maps"

// StatBonus is the passive power an ingredient carries into the RPG act.
type StatBonus struct {
	MaxHP   int       `json:"maxHp,omitempty" yaml:"maxHp,omitempty"`
	Atk     int       `json:"atk,omitempty" yaml:"atk,omitempty"`
	Def     int       `json:"def,omitempty" yaml:"def,omitempty"`
	Spd     int       `json:"spd,omitempty" yaml:"spd,omitempty"`
	Ability AbilityID `json:"ability,omitempty" yaml:"ability,omitempty"`
}

// StatusEffects tracks damage over time applied to the player.
type StatusEffects struct {
	PoisonTurns     int `json:"poisonTurns,omitempty"`
	PoisonDamage    int `json:"poisonDamage,omitempty"`
	ConstrictTurns  int `json:"constrictTurns,omitempty"`
	ConstrictDamage int `json:"constrictDamage,omitempty"`
}

// Active reports whether any effect still has turns left.
func (s StatusEffects) Active() bool {
	return s.PoisonTurns > 0 || s.ConstrictTurns > 0
}

// State is the whole RPG session. Operations never mutate a State they are
// handed; they Clone and return the copy.
type State struct {
	Level int   `json:"level"`
	XP    int   `json:"xp"`
	MaxXP int   `json:"maxXp"`
	HP    int   `json:"hp"`
	MaxHP int   `json:"maxHp"`
	Stats Stats `json:"stats"`

	Inventory []InventoryItem `json:"inventory"`
	Equipment Loadout         `json:"equipment"`
	Currency  int             `json:"currency"`

	CurrentLocation  string   `json:"currentLocation"`
	VisitedLocations []string `json:"visitedLocations"`
	Checkpoints      []string `json:"checkpoints"`
	DefeatedBosses   []string `json:"defeatedBosses"`

	InCombat        bool          `json:"inCombat"`
	CurrentEnemy    *Enemy        `json:"currentEnemy,omitempty"`
	PlayerDefending bool          `json:"playerDefending"`
	StatusEffects   StatusEffects `json:"statusEffects"`
	CombatBuffs     Stats         `json:"combatBuffs"`

	IngredientBonuses map[string]StatBonus `json:"ingredientBonuses"`

	// ShopPurchases counts units bought per location and item, for limited stock.
	ShopPurchases map[string]map[string]int `json:"shopPurchases,omitempty"`
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := *s
	c.Inventory = make([]InventoryItem, len(s.Inventory))
	for i, item := range s.Inventory {
		c.Inventory[i] = item.clone()
	}
	c.Equipment = s.Equipment.Clone()
	c.VisitedLocations = append([]string(nil), s.VisitedLocations...)
	c.Checkpoints = append([]string(nil), s.Checkpoints...)
	c.DefeatedBosses = append([]string(nil), s.DefeatedBosses...)
	c.CurrentEnemy = s.CurrentEnemy.Clone()
	c.IngredientBonuses = maps.Clone(s.IngredientBonuses)
	if s.ShopPurchases != nil {
		c.ShopPurchases = make(map[string]map[string]int, len(s.ShopPurchases))
		for loc, counts := range s.ShopPurchases {
			c.ShopPurchases[loc] = maps.Clone(counts)
		}
	}
	return &c
}

// FindItem returns the inventory index of an item id, or -1.
func (s *State) FindItem(itemID string) int {
	for i := range s.Inventory {
		if s.Inventory[i].ID == itemID {
			return i
		}
	}
	return -1
}

// Quantity returns how many of an item the player holds.
func (s *State) Quantity(itemID string) int {
	if i := s.FindItem(itemID); i >= 0 {
		return s.Inventory[i].Quantity
	}
	return 0
}

// ItemsOfType returns the bag stacks of one type in bag order.
func (s *State) ItemsOfType(t ItemType) []InventoryItem {
	var out []InventoryItem
	for _, item := range s.Inventory {
		if item.Type == t {
			out = append(out, item)
		}
	}
	return out
}

// HasAbility reports whether an ingredient bonus unlocked the ability.
func (s *State) HasAbility(id AbilityID) bool {
	for _, b := range s.IngredientBonuses {
		if b.Ability == id {
			return true
		}
	}
	return false
}

// UnlockedAbilities lists unlocked abilities in menu order.
func (s *State) UnlockedAbilities() []AbilityInfo {
	var out []AbilityInfo
	for _, a := range Abilities {
		if s.HasAbility(a.ID) {
			out = append(out, a)
		}
	}
	return out
}

// HasDefeatedBoss reports whether the boss id is recorded.
func (s *State) HasDefeatedBoss(bossID string) bool {
	for _, id := range s.DefeatedBosses {
		if id == bossID {
			return true
		}
	}
	return false
}

// HasVisited reports whether the location was ever entered.
func (s *State) HasVisited(locationID string) bool {
	for _, id := range s.VisitedLocations {
		if id == locationID {
			return true
		}
	}
	return false
}

// Purchased returns how many units of an item were bought at a location.
func (s *State) Purchased(locationID, itemID string) int {
	return s.ShopPurchases[locationID][itemID]
}
