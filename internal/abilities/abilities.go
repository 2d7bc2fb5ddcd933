// Package abilities resolves enemy special abilities, boss phase changes and
// the damage-over-time effects they leave behind.
package abilities

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
)

// NoSteal marks an outcome where nothing was taken.
const NoSteal = -1

// Input is one enemy turn to run through the enemy's special.
type Input struct {
	// State is read for the player's defense and bag.
	State *rpg.State
	// Enemy is the working copy; charging, turn and heal changes land on it.
	Enemy *rpg.Enemy
	// BaseDamage is the mitigated damage of the enemy's normal attack.
	BaseDamage int
}

// Outcome is what the special did to the turn.
type Outcome struct {
	Actions []rpg.CombatAction
	// Damage replaces BaseDamage for the enemy's own attack.
	Damage int
	// StolenIndex is the bag index to remove one unit from, or NoSteal.
	StolenIndex int
	// SummonID is set when minions arrive this turn; the enemy does not attack.
	SummonID    string
	SummonCount int
	// Frenzy asks the caller for a second attack roll.
	Frenzy bool
	// Status is merged onto the player's status effects when non-zero.
	Status rpg.StatusEffects
	// EnemyHeal is what the enemy recovered this turn.
	EnemyHeal int
}

// Config holds the dependencies for the ability processor
type Config struct {
	Random random.Source
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Random == nil {
		vb.RequiredField("Random")
	}
	return vb.Build()
}

// Processor resolves specials against a random source.
type Processor struct {
	rng random.Source
}

// New creates an ability processor
func New(cfg *Config) (*Processor, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Processor{rng: cfg.Random}, nil
}

func enemyAction(message string, damage int) rpg.CombatAction {
	return rpg.CombatAction{Actor: rpg.ActorEnemy, Action: rpg.ActionAttack, Damage: damage, Message: message}
}

func scale(damage int, multiplier float64) int {
	return int(math.Floor(float64(damage) * multiplier))
}

// ProcessSpecial applies the enemy's special to one turn. An enemy without a
// special, or whose trigger roll fails, deals BaseDamage unchanged.
func (p *Processor) ProcessSpecial(input *Input) *Outcome {
	enemy := input.Enemy
	out := &Outcome{Damage: input.BaseDamage, StolenIndex: NoSteal}
	if enemy == nil || enemy.Special == nil {
		return out
	}

	special := enemy.Special
	if chance := special.TriggerChance(); chance > 0 && !random.Chance(p.rng, chance) {
		return out
	}

	base := input.BaseDamage
	switch s := special.(type) {
	case rpg.Poison:
		out.Status.PoisonTurns, out.Status.PoisonDamage = s.Duration, s.Damage
		out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
			"%s inflicts POISON! You'll take %d damage for %d turns!", enemy.Name, s.Damage, s.Duration), 0))

	case rpg.Constrict:
		out.Status.ConstrictTurns, out.Status.ConstrictDamage = s.Duration, s.Damage
		out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
			"%s CONSTRICTS you! %d damage per turn for %d turns!", enemy.Name, s.Damage, s.Duration), 0))

	case rpg.SplashDamage:
		out.Damage = s.Damage
		out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
			"%s uses SPLASH DAMAGE! %d unblockable damage!", enemy.Name, s.Damage), s.Damage))

	case rpg.SummonMinions:
		interval := max(1, s.SummonInterval)
		if enemy.TurnCounter >= interval && len(enemy.Minions) < max(1, s.SummonCount) {
			enemy.TurnCounter = 0
			out.Damage = 0
			out.SummonID = s.SummonID
			out.SummonCount = 1
			out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
				"%s summons %ss to aid in battle!", enemy.Name, strings.ReplaceAll(s.SummonID, "_", " ")), 0))
		}

	case rpg.Pounce:
		if enemy.Charging {
			enemy.Charging = false
			out.Damage = scale(base, s.Multiplier())
			out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
				"%s POUNCES! %d damage!", enemy.Name, out.Damage), out.Damage))
		} else {
			enemy.Charging = true
			out.Damage = 0
			out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
				"%s crouches low, preparing to pounce...", enemy.Name), 0))
		}

	case rpg.NutThrow:
		def := 0
		if input.State != nil {
			def = input.State.Stats.Def + input.State.CombatBuffs.Def
		}
		ignored := scale(max(0, def), s.Ignore())
		out.Damage = base + ignored
		out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
			"%s throws an acorn! Ignores %d DEF!", enemy.Name, ignored), out.Damage))

	case rpg.WrenchThrow:
		out.Damage = scale(base, s.Multiplier())
		out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
			"%s throws itself at you like a metal projectile! %d damage!", enemy.Name, out.Damage), out.Damage))

	case rpg.RabidBite:
		out.Damage = scale(base, s.Multiplier())
		out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
			"%s bites with rabid fury! %d damage!", enemy.Name, out.Damage), out.Damage))

	case rpg.CrushingBlow:
		out.Damage = scale(base, s.Multiplier())
		out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
			"%s delivers a CRUSHING BLOW! %d damage!", enemy.Name, out.Damage), out.Damage))

	case rpg.Bite:
		out.Damage = scale(base, s.Multiplier())
		out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
			"%s BITES with terrifying force! %d damage!", enemy.Name, out.Damage), out.Damage))

	case rpg.Frenzy:
		out.Frenzy = true
		out.Actions = append(out.Actions, enemyAction(fmt.Sprintf("%s attacks in a FRENZY!", enemy.Name), 0))

	case rpg.Evasion:
		// Resolved against the player's attack by CheckEvasion.

	case rpg.StealItem:
		if input.State != nil && len(input.State.Inventory) > 0 {
			out.StolenIndex = random.Intn(p.rng, len(input.State.Inventory))
			out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
				"%s steals %s!", enemy.Name, input.State.Inventory[out.StolenIndex].Name), 0))
		}

	case rpg.Regenerate:
		if healed := healEnemy(enemy, s.Amount); healed > 0 {
			out.EnemyHeal = healed
			out.Actions = append(out.Actions, rpg.CombatAction{
				Actor:      rpg.ActorEnemy,
				Action:     rpg.ActionAbility,
				HealAmount: healed,
				Message:    fmt.Sprintf("%s regenerates %d HP!", enemy.Name, healed),
			})
		}

	case rpg.Lifesteal:
		if healed := healEnemy(enemy, scale(base, s.Share())); healed > 0 {
			out.EnemyHeal = healed
			out.Actions = append(out.Actions, rpg.CombatAction{
				Actor:      rpg.ActorEnemy,
				Action:     rpg.ActionAbility,
				HealAmount: healed,
				Message:    fmt.Sprintf("%s drains %d HP from you!", enemy.Name, healed),
			})
		}

	case rpg.Enrage:
		if enemy.HealthFraction() <= s.Threshold() {
			out.Damage = scale(base, s.Multiplier())
			out.Actions = append(out.Actions, enemyAction(fmt.Sprintf(
				"%s is ENRAGED! %d damage!", enemy.Name, out.Damage), out.Damage))
		}

	case rpg.Unknown:
		slog.Warn("Ignoring unknown special ability", "enemy_id", enemy.ID, "special", string(s.Name))

	default:
		slog.Warn("Unhandled special ability", "enemy_id", enemy.ID, "special", string(special.Type()))
	}

	return out
}

func healEnemy(enemy *rpg.Enemy, amount int) int {
	if amount <= 0 || !enemy.IsAlive() {
		return 0
	}
	before := enemy.HP
	enemy.HP = min(enemy.MaxHP, enemy.HP+amount)
	return enemy.HP - before
}

// CheckEvasion reports whether an evasive enemy dodges the player's attack.
func (p *Processor) CheckEvasion(enemy *rpg.Enemy) bool {
	if enemy == nil {
		return false
	}
	evasion, ok := enemy.Special.(rpg.Evasion)
	if !ok {
		return false
	}
	return random.Chance(p.rng, evasion.Miss())
}
