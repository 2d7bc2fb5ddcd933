package gamedata

import (
	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
)

// Bestiary spawns live enemies from templates.
type Bestiary struct {
	templates map[string]EnemyData
}

// NewBestiary wraps the enemy table.
func NewBestiary(templates map[string]EnemyData) *Bestiary {
	return &Bestiary{templates: templates}
}

// Template returns the static data for an enemy id.
func (b *Bestiary) Template(id string) (EnemyData, bool) {
	t, ok := b.templates[id]
	return t, ok
}

// Spawn creates a fresh enemy at full HP with phase and turn counters reset.
func (b *Bestiary) Spawn(id string) (*rpg.Enemy, bool) {
	t, ok := b.templates[id]
	if !ok {
		return nil, false
	}
	return t.Spawn(), true
}

// RandomEncounter picks uniformly from the location's encounter pool.
func (b *Bestiary) RandomEncounter(loc Location, src random.Source) (*rpg.Enemy, bool) {
	if len(loc.Encounters) == 0 {
		return nil, false
	}
	return b.Spawn(loc.Encounters[random.Intn(src, len(loc.Encounters))])
}

// Spawn builds a live enemy from the template.
func (t EnemyData) Spawn() *rpg.Enemy {
	e := &rpg.Enemy{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Level:        t.Level,
		HP:           t.MaxHP,
		MaxHP:        t.MaxHP,
		Atk:          t.Atk,
		Def:          t.Def,
		Spd:          t.Spd,
		XPReward:     t.XPReward,
		CurrencyDrop: t.CurrencyDrop,
		LootTable:    append([]rpg.LootDrop(nil), t.LootTable...),
		AIPattern:    t.AIPattern,
		IsBoss:       t.IsBoss,
		IsSecretBoss: t.IsSecretBoss,
		BossIntro:    append([]string(nil), t.BossIntro...),
		Special:      t.Special.Special(),
	}
	if e.AIPattern == "" {
		e.AIPattern = rpg.AIAggressive
	}
	for _, p := range t.Phases {
		e.Phases = append(e.Phases, rpg.Phase{
			HealthThreshold: p.HealthThreshold,
			Special:         p.Special.Special(),
			PhaseMessage:    p.PhaseMessage,
			StatBoost:       p.StatBoost,
		})
	}
	return e
}
