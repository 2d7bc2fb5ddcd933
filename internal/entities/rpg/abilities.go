package rpg

// AbilityID identifies a player ability unlocked by an ingredient.
type AbilityID string

// Player abilities
const (
	AbilityPoisonStrike AbilityID = "poison_strike"
	AbilityOnionTears   AbilityID = "onion_tears"
	AbilityHeal         AbilityID = "heal"
)

// Ability tuning
const (
	PoisonStrikeDamage   = 5
	PoisonStrikeDuration = 3

	OnionTearsHPCost    = 10
	OnionTearsAOEDamage = 12

	HealHPRestored = 20
)

// AbilityInfo describes an ability for menus.
type AbilityInfo struct {
	ID          AbilityID
	Name        string
	Description string
}

// Abilities lists every player ability in menu order.
var Abilities = []AbilityInfo{
	{ID: AbilityPoisonStrike, Name: "Poison Strike", Description: "5 damage per turn for 3 turns"},
	{ID: AbilityOnionTears, Name: "Onion Tears", Description: "12 AOE damage (costs 10 HP)"},
	{ID: AbilityHeal, Name: "Special Sauce", Description: "Restore 20 HP (unlimited)"},
}

// LookupAbility returns the menu info for an ability id.
func LookupAbility(id AbilityID) (AbilityInfo, bool) {
	for _, a := range Abilities {
		if a.ID == id {
			return a, true
		}
	}
	return AbilityInfo{}, false
}
