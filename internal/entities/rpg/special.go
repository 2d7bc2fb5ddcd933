package rpg

// SpecialType discriminates enemy special abilities.
type SpecialType string

// Special ability variants
const (
	SpecialPoison        SpecialType = "poison"
	SpecialConstrict     SpecialType = "constrict"
	SpecialSplashDamage  SpecialType = "splash_damage"
	SpecialSummonMinions SpecialType = "summon_minions"
	SpecialPounce        SpecialType = "pounce"
	SpecialNutThrow      SpecialType = "nut_throw"
	SpecialWrenchThrow   SpecialType = "wrench_throw"
	SpecialRabidBite     SpecialType = "rabid_bite"
	SpecialCrushingBlow  SpecialType = "crushing_blow"
	SpecialBite          SpecialType = "bite"
	SpecialFrenzy        SpecialType = "frenzy"
	SpecialEvasion       SpecialType = "evasion"
	SpecialStealItem     SpecialType = "steal_item"
	SpecialRegenerate    SpecialType = "regenerate"
	SpecialLifesteal     SpecialType = "lifesteal"
	SpecialEnrage        SpecialType = "enrage"
)

// Variant defaults used when the data leaves a field unset.
const (
	DefaultPounceMultiplier       = 2.0
	DefaultWrenchThrowMultiplier  = 1.5
	DefaultRabidBiteMultiplier    = 1.5
	DefaultCrushingBlowMultiplier = 2.0
	DefaultBiteMultiplier         = 2.0
	DefaultEnrageMultiplier       = 1.5
	DefaultEnrageThreshold        = 0.3
	DefaultDefenseIgnore          = 0.5
	DefaultMissChance             = 0.2
	DefaultLifestealFraction      = 0.5
)

// Special is an enemy's special ability. The set of implementations is closed;
// SpecialAbilities switches over them exhaustively.
type Special interface {
	Type() SpecialType
	// TriggerChance is the per-turn activation probability; 0 means always.
	TriggerChance() float64
	isSpecial()
}

// Trigger carries the optional activation chance shared by every variant.
type Trigger struct {
	Chance float64
}

// TriggerChance implements Special.
func (t Trigger) TriggerChance() float64 { return t.Chance }

func (Trigger) isSpecial() {}

// Poison applies damage over time to the player.
type Poison struct {
	Trigger
	Damage   int
	Duration int
}

// Constrict grapples the player for damage each turn.
type Constrict struct {
	Trigger
	Damage   int
	Duration int
}

// SplashDamage deals fixed damage that ignores defense.
type SplashDamage struct {
	Trigger
	Damage int
}

// SummonMinions periodically calls in helpers instead of attacking.
type SummonMinions struct {
	Trigger
	SummonID       string
	SummonInterval int
	SummonCount    int
}

// Pounce alternates a charging turn with a multiplied strike.
type Pounce struct {
	Trigger
	DamageMultiplier float64
}

// Multiplier returns the strike multiplier with its default applied.
func (p Pounce) Multiplier() float64 { return orDefault(p.DamageMultiplier, DefaultPounceMultiplier) }

// NutThrow adds part of the player's defense back onto the damage.
type NutThrow struct {
	Trigger
	DefenseIgnore float64
}

// Ignore returns the ignored defense fraction with its default applied.
func (n NutThrow) Ignore() float64 { return orDefault(n.DefenseIgnore, DefaultDefenseIgnore) }

// WrenchThrow multiplies base damage.
type WrenchThrow struct {
	Trigger
	DamageMultiplier float64
}

// Multiplier returns the damage multiplier with its default applied.
func (w WrenchThrow) Multiplier() float64 {
	return orDefault(w.DamageMultiplier, DefaultWrenchThrowMultiplier)
}

// RabidBite multiplies base damage.
type RabidBite struct {
	Trigger
	DamageMultiplier float64
}

// Multiplier returns the damage multiplier with its default applied.
func (r RabidBite) Multiplier() float64 {
	return orDefault(r.DamageMultiplier, DefaultRabidBiteMultiplier)
}

// CrushingBlow multiplies base damage.
type CrushingBlow struct {
	Trigger
	DamageMultiplier float64
}

// Multiplier returns the damage multiplier with its default applied.
func (c CrushingBlow) Multiplier() float64 {
	return orDefault(c.DamageMultiplier, DefaultCrushingBlowMultiplier)
}

// Bite multiplies base damage.
type Bite struct {
	Trigger
	DamageMultiplier float64
}

// Multiplier returns the damage multiplier with its default applied.
func (b Bite) Multiplier() float64 { return orDefault(b.DamageMultiplier, DefaultBiteMultiplier) }

// Frenzy makes the enemy roll a second full attack.
type Frenzy struct {
	Trigger
}

// Evasion lets the enemy dodge the player's attacks.
type Evasion struct {
	Trigger
	MissChance float64
}

// Miss returns the dodge probability with its default applied.
func (e Evasion) Miss() float64 { return orDefault(e.MissChance, DefaultMissChance) }

// StealItem takes one random item from the player's bag.
type StealItem struct {
	Trigger
}

// Regenerate heals the enemy a fixed amount each turn.
type Regenerate struct {
	Trigger
	Amount int
}

// Lifesteal heals the enemy for a fraction of the damage it deals.
type Lifesteal struct {
	Trigger
	Fraction float64
}

// Share returns the healed fraction with its default applied.
func (l Lifesteal) Share() float64 { return orDefault(l.Fraction, DefaultLifestealFraction) }

// Enrage multiplies damage once the enemy drops under a health fraction.
type Enrage struct {
	Trigger
	HealthThreshold  float64
	DamageMultiplier float64
}

// Threshold returns the health fraction with its default applied.
func (e Enrage) Threshold() float64 { return orDefault(e.HealthThreshold, DefaultEnrageThreshold) }

// Multiplier returns the damage multiplier with its default applied.
func (e Enrage) Multiplier() float64 { return orDefault(e.DamageMultiplier, DefaultEnrageMultiplier) }

// Unknown keeps a variant this build does not understand so data written by
// newer content still loads.
type Unknown struct {
	Trigger
	Name SpecialType
}

func (Poison) Type() SpecialType        { return SpecialPoison }
func (Constrict) Type() SpecialType     { return SpecialConstrict }
func (SplashDamage) Type() SpecialType  { return SpecialSplashDamage }
func (SummonMinions) Type() SpecialType { return SpecialSummonMinions }
func (Pounce) Type() SpecialType        { return SpecialPounce }
func (NutThrow) Type() SpecialType      { return SpecialNutThrow }
func (WrenchThrow) Type() SpecialType   { return SpecialWrenchThrow }
func (RabidBite) Type() SpecialType     { return SpecialRabidBite }
func (CrushingBlow) Type() SpecialType  { return SpecialCrushingBlow }
func (Bite) Type() SpecialType          { return SpecialBite }
func (Frenzy) Type() SpecialType        { return SpecialFrenzy }
func (Evasion) Type() SpecialType       { return SpecialEvasion }
func (StealItem) Type() SpecialType     { return SpecialStealItem }
func (Regenerate) Type() SpecialType    { return SpecialRegenerate }
func (Lifesteal) Type() SpecialType     { return SpecialLifesteal }
func (Enrage) Type() SpecialType        { return SpecialEnrage }
func (u Unknown) Type() SpecialType     { return u.Name }

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// SpecialRecord is the flat wire/data form of a Special. Static tables and
// saved sessions use it; code works with the typed variants.
type SpecialRecord struct {
	Type             SpecialType `json:"type" yaml:"type"`
	Chance           float64     `json:"chance,omitempty" yaml:"chance,omitempty"`
	Damage           int         `json:"damage,omitempty" yaml:"damage,omitempty"`
	Duration         int         `json:"duration,omitempty" yaml:"duration,omitempty"`
	SummonID         string      `json:"summonId,omitempty" yaml:"summonId,omitempty"`
	SummonInterval   int         `json:"summonInterval,omitempty" yaml:"summonInterval,omitempty"`
	SummonCount      int         `json:"summonCount,omitempty" yaml:"summonCount,omitempty"`
	DamageMultiplier float64     `json:"damageMultiplier,omitempty" yaml:"damageMultiplier,omitempty"`
	DefenseIgnore    float64     `json:"defenseIgnore,omitempty" yaml:"defenseIgnore,omitempty"`
	MissChance       float64     `json:"missChance,omitempty" yaml:"missChance,omitempty"`
	Amount           int         `json:"amount,omitempty" yaml:"amount,omitempty"`
	Fraction         float64     `json:"fraction,omitempty" yaml:"fraction,omitempty"`
	HealthThreshold  float64     `json:"healthThreshold,omitempty" yaml:"healthThreshold,omitempty"`
}

// Special converts the record into its typed variant. A nil record yields nil.
func (r *SpecialRecord) Special() Special {
	if r == nil {
		return nil
	}
	t := Trigger{Chance: r.Chance}
	switch r.Type {
	case SpecialPoison:
		return Poison{Trigger: t, Damage: r.Damage, Duration: r.Duration}
	case SpecialConstrict:
		return Constrict{Trigger: t, Damage: r.Damage, Duration: r.Duration}
	case SpecialSplashDamage:
		return SplashDamage{Trigger: t, Damage: r.Damage}
	case SpecialSummonMinions:
		return SummonMinions{Trigger: t, SummonID: r.SummonID, SummonInterval: r.SummonInterval, SummonCount: r.SummonCount}
	case SpecialPounce:
		return Pounce{Trigger: t, DamageMultiplier: r.DamageMultiplier}
	case SpecialNutThrow:
		return NutThrow{Trigger: t, DefenseIgnore: r.DefenseIgnore}
	case SpecialWrenchThrow:
		return WrenchThrow{Trigger: t, DamageMultiplier: r.DamageMultiplier}
	case SpecialRabidBite:
		return RabidBite{Trigger: t, DamageMultiplier: r.DamageMultiplier}
	case SpecialCrushingBlow:
		return CrushingBlow{Trigger: t, DamageMultiplier: r.DamageMultiplier}
	case SpecialBite:
		return Bite{Trigger: t, DamageMultiplier: r.DamageMultiplier}
	case SpecialFrenzy:
		return Frenzy{Trigger: t}
	case SpecialEvasion:
		return Evasion{Trigger: t, MissChance: r.MissChance}
	case SpecialStealItem:
		return StealItem{Trigger: t}
	case SpecialRegenerate:
		return Regenerate{Trigger: t, Amount: r.Amount}
	case SpecialLifesteal:
		return Lifesteal{Trigger: t, Fraction: r.Fraction}
	case SpecialEnrage:
		return Enrage{Trigger: t, HealthThreshold: r.HealthThreshold, DamageMultiplier: r.DamageMultiplier}
	default:
		return Unknown{Trigger: t, Name: r.Type}
	}
}

// RecordOf flattens a Special. A nil special yields nil.
func RecordOf(s Special) *SpecialRecord {
	if s == nil {
		return nil
	}
	r := &SpecialRecord{Type: s.Type(), Chance: s.TriggerChance()}
	switch v := s.(type) {
	case Poison:
		r.Damage, r.Duration = v.Damage, v.Duration
	case Constrict:
		r.Damage, r.Duration = v.Damage, v.Duration
	case SplashDamage:
		r.Damage = v.Damage
	case SummonMinions:
		r.SummonID, r.SummonInterval, r.SummonCount = v.SummonID, v.SummonInterval, v.SummonCount
	case Pounce:
		r.DamageMultiplier = v.DamageMultiplier
	case NutThrow:
		r.DefenseIgnore = v.DefenseIgnore
	case WrenchThrow:
		r.DamageMultiplier = v.DamageMultiplier
	case RabidBite:
		r.DamageMultiplier = v.DamageMultiplier
	case CrushingBlow:
		r.DamageMultiplier = v.DamageMultiplier
	case Bite:
		r.DamageMultiplier = v.DamageMultiplier
	case Evasion:
		r.MissChance = v.MissChance
	case Regenerate:
		r.Amount = v.Amount
	case Lifesteal:
		r.Fraction = v.Fraction
	case Enrage:
		r.HealthThreshold, r.DamageMultiplier = v.HealthThreshold, v.DamageMultiplier
	case Frenzy, StealItem, Unknown:
	}
	return r
}
