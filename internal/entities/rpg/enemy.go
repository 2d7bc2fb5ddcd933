package rpg

import "encoding/json"

// AIPattern controls how often an enemy defends.
type AIPattern string

// AI patterns
const (
	AIAggressive AIPattern = "aggressive"
	AIDefensive  AIPattern = "defensive"
	AIRandom     AIPattern = "random"
)

// LootDrop is an independent chance to drop an item.
type LootDrop struct {
	ItemID string  `json:"itemId" yaml:"itemId"`
	Chance float64 `json:"chance" yaml:"chance"`
}

// CurrencyDrop is the inclusive scrap range rolled on victory.
type CurrencyDrop struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Phase is a boss stage entered once health falls to HealthThreshold
// (a fraction of max HP).
type Phase struct {
	HealthThreshold float64 `json:"healthThreshold"`
	Special         Special `json:"-"`
	PhaseMessage    string  `json:"phaseMessage,omitempty"`
	StatBoost       Stats   `json:"statBoost"`
}

// Enemy is a live opponent. Instances are created fresh per encounter and
// discarded when combat ends.
type Enemy struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Level        int          `json:"level"`
	HP           int          `json:"hp"`
	MaxHP        int          `json:"maxHp"`
	Atk          int          `json:"atk"`
	Def          int          `json:"def"`
	Spd          int          `json:"spd"`
	XPReward     int          `json:"xpReward"`
	CurrencyDrop CurrencyDrop `json:"currencyDrop"`
	LootTable    []LootDrop   `json:"lootTable,omitempty"`
	AIPattern    AIPattern    `json:"aiPattern"`
	IsBoss       bool         `json:"isBoss,omitempty"`
	IsSecretBoss bool         `json:"isSecretBoss,omitempty"`
	BossIntro    []string     `json:"bossIntro,omitempty"`

	Special      Special `json:"-"`
	Phases       []Phase `json:"phases,omitempty"`
	CurrentPhase int     `json:"currentPhase"`

	// Per-encounter combat flags.
	TurnCounter    int  `json:"turnCounter"`
	Charging       bool `json:"charging,omitempty"`
	Defending      bool `json:"defending,omitempty"`
	PoisonTurns    int  `json:"poisonTurns,omitempty"`
	PoisonDamage   int  `json:"poisonDamage,omitempty"`
	ConstrictTurns int  `json:"constrictTurns,omitempty"`

	Minions []Enemy `json:"minions,omitempty"`
}

// IsAlive reports whether the enemy still has HP.
func (e *Enemy) IsAlive() bool {
	return e.HP > 0
}

// HealthFraction is current HP over max HP.
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHP <= 0 {
		return 0
	}
	return float64(e.HP) / float64(e.MaxHP)
}

// SpecialType returns the discriminator of the current special, or "".
func (e *Enemy) SpecialType() SpecialType {
	if e.Special == nil {
		return ""
	}
	return e.Special.Type()
}

// Clone deep-copies the enemy including minions.
func (e *Enemy) Clone() *Enemy {
	if e == nil {
		return nil
	}
	c := *e
	c.LootTable = append([]LootDrop(nil), e.LootTable...)
	c.BossIntro = append([]string(nil), e.BossIntro...)
	c.Phases = append([]Phase(nil), e.Phases...)
	if e.Minions != nil {
		c.Minions = make([]Enemy, len(e.Minions))
		for i := range e.Minions {
			c.Minions[i] = *e.Minions[i].Clone()
		}
	}
	return &c
}

// FirstLivingMinion returns the index of the first minion with HP, or -1.
func (e *Enemy) FirstLivingMinion() int {
	for i := range e.Minions {
		if e.Minions[i].IsAlive() {
			return i
		}
	}
	return -1
}

// PruneMinions drops minions whose HP reached 0.
func (e *Enemy) PruneMinions() {
	alive := e.Minions[:0]
	for _, m := range e.Minions {
		if m.IsAlive() {
			alive = append(alive, m)
		}
	}
	e.Minions = alive
}

// MarshalJSON writes the special as its flat record.
func (e Enemy) MarshalJSON() ([]byte, error) {
	type alias Enemy
	return json.Marshal(struct {
		alias
		Special *SpecialRecord `json:"special,omitempty"`
	}{alias: alias(e), Special: RecordOf(e.Special)})
}

// UnmarshalJSON restores the typed special from its flat record.
func (e *Enemy) UnmarshalJSON(data []byte) error {
	type alias Enemy
	aux := struct {
		*alias
		Special *SpecialRecord `json:"special,omitempty"`
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Special = aux.Special.Special()
	return nil
}

// MarshalJSON writes the phase special as its flat record.
func (p Phase) MarshalJSON() ([]byte, error) {
	type alias Phase
	return json.Marshal(struct {
		alias
		Special *SpecialRecord `json:"special,omitempty"`
	}{alias: alias(p), Special: RecordOf(p.Special)})
}

// UnmarshalJSON restores the typed phase special.
func (p *Phase) UnmarshalJSON(data []byte) error {
	type alias Phase
	aux := struct {
		*alias
		Special *SpecialRecord `json:"special,omitempty"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Special = aux.Special.Special()
	return nil
}
