package combat

import (
	"math"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
)

// CalculateDamage rolls a direct attack: attack minus defense plus a small
// variance, halved against a defending target, and never below MinDamage.
func (p *Processor) CalculateDamage(atk, def int, defending bool) int {
	raw := float64(atk - def + random.Intn(p.rng, rpg.DamageVariance))
	if defending {
		raw *= rpg.DefenseMultiplier
	}
	return max(rpg.MinDamage, int(math.Floor(raw)))
}

func (p *Processor) chance(probability float64) bool {
	return random.Chance(p.rng, probability)
}

func scale(damage int, multiplier float64) int {
	return int(math.Floor(float64(damage) * multiplier))
}
