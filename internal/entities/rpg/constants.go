package rpg

// Combat balancing
const (
	// DamageVariance is the exclusive upper bound of the random bonus added to
	// every direct attack (0 to DamageVariance-1).
	DamageVariance = 3

	// DefenseMultiplier scales incoming damage while the target is defending.
	DefenseMultiplier = 0.5

	// FleeChance is the probability that a flee attempt succeeds.
	FleeChance = 0.5

	// MinDamage is the floor for any direct attack.
	MinDamage = 1

	// CounterMultiplier scales the counter-attack fired after a successful defend.
	CounterMultiplier = 0.5

	// DefensiveDefendChance and RandomDefendChance are the per-turn odds that
	// an enemy with the matching AI pattern defends instead of attacking.
	DefensiveDefendChance = 0.4
	RandomDefendChance    = 0.2
)

// Progression
const (
	MaxLevel = 10

	LevelUpHPGain  = 10
	LevelUpAtkGain = 2
	LevelUpDefGain = 1
	LevelUpSpdGain = 1
)

// Starting stats
const (
	StartingHP       = 50
	StartingAtk      = 5
	StartingDef      = 3
	StartingSpd      = 5
	StartingLevel    = 1
	StartingXP       = 0
	StartingCurrency = 0
)

// Inventory
const (
	MaxInventorySize = 10

	// ReviveItemID is auto-consumed when the player would be defeated.
	ReviveItemID = "moldy_bread"

	// ReviveHPFraction is the share of max HP restored by a revive.
	ReviveHPFraction = 0.5
)

// Starting equipment ids; these are never placed in the inventory.
const (
	StartingWeaponID = "toothpick_shiv"
	StartingArmorID  = "exposed_bun"
	StartingShieldID = "no_shield"
)

// StartingLocation is where every new session begins.
const StartingLocation = "garbage_can_start"

// XPCurve holds the XP needed to clear each level, indexed by level.
var XPCurve = [...]int{0, 100, 250, 450, 700, 1000, 1350, 1750, 2200, 2700}

// XPForLevel returns the XP threshold for the given level, clamped to the
// last entry of the curve.
func XPForLevel(level int) int {
	if level < 0 {
		return XPCurve[0]
	}
	if level >= len(XPCurve) {
		return XPCurve[len(XPCurve)-1]
	}
	return XPCurve[level]
}

// BaseStat applies per-level growth to a starting stat.
func BaseStat(base, level, growthPerLevel int) int {
	return base + (level-1)*growthPerLevel
}

// StartingEquipmentID returns the fallback item id for a mandatory slot.
func StartingEquipmentID(slot Slot) (string, bool) {
	switch slot {
	case SlotWeapon:
		return StartingWeaponID, true
	case SlotArmor:
		return StartingArmorID, true
	case SlotShield:
		return StartingShieldID, true
	default:
		return "", false
	}
}
