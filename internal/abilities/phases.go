package abilities

import (
	"fmt"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
)

// UpdateBossPhase moves the enemy into the deepest phase whose threshold its
// health has fallen to. Phases are never left once entered. A hit that skips
// phases still applies every skipped stat boost, and the deepest phase special
// along the way replaces the current one.
func UpdateBossPhase(enemy *rpg.Enemy) (bool, string) {
	if enemy == nil || len(enemy.Phases) == 0 {
		return false, ""
	}

	health := enemy.HealthFraction()
	target := enemy.CurrentPhase
	for i := len(enemy.Phases) - 1; i > enemy.CurrentPhase; i-- {
		if health <= enemy.Phases[i].HealthThreshold {
			target = i
			break
		}
	}
	if target == enemy.CurrentPhase {
		return false, ""
	}

	for _, phase := range enemy.Phases[enemy.CurrentPhase+1 : target+1] {
		if phase.Special != nil {
			enemy.Special = phase.Special
			enemy.Charging = false
		}
		enemy.Atk += phase.StatBoost.Atk
		enemy.Def += phase.StatBoost.Def
		enemy.Spd += phase.StatBoost.Spd
	}
	enemy.CurrentPhase = target

	msg := enemy.Phases[target].PhaseMessage
	if msg == "" {
		msg = fmt.Sprintf("%s enters a new phase!", enemy.Name)
	}
	return true, msg
}

// TickEnemyPoison applies one turn of poison to the enemy.
func TickEnemyPoison(enemy *rpg.Enemy) (int, *rpg.CombatAction) {
	if enemy == nil || enemy.PoisonTurns <= 0 {
		return 0, nil
	}
	damage := enemy.PoisonDamage
	enemy.HP = max(0, enemy.HP-damage)
	enemy.PoisonTurns--
	if enemy.PoisonTurns == 0 {
		enemy.PoisonDamage = 0
	}
	return damage, &rpg.CombatAction{
		Actor:   rpg.ActorPlayer,
		Action:  rpg.ActionAbility,
		Damage:  damage,
		Message: fmt.Sprintf("The %s takes %d poison damage!", enemy.Name, damage),
	}
}

// TickPlayerStatus applies one turn of the player's poison and constrict
// effects to the state in place.
func TickPlayerStatus(state *rpg.State) (int, []rpg.CombatAction) {
	if !state.StatusEffects.Active() {
		return 0, nil
	}

	var (
		total   int
		actions []rpg.CombatAction
	)
	fx := &state.StatusEffects

	if fx.PoisonTurns > 0 {
		total += fx.PoisonDamage
		actions = append(actions, rpg.CombatAction{
			Actor:   rpg.ActorEnemy,
			Action:  rpg.ActionAbility,
			Damage:  fx.PoisonDamage,
			Message: fmt.Sprintf("You take %d poison damage!", fx.PoisonDamage),
		})
		fx.PoisonTurns--
		if fx.PoisonTurns == 0 {
			fx.PoisonDamage = 0
		}
	}

	if fx.ConstrictTurns > 0 {
		total += fx.ConstrictDamage
		actions = append(actions, rpg.CombatAction{
			Actor:   rpg.ActorEnemy,
			Action:  rpg.ActionAbility,
			Damage:  fx.ConstrictDamage,
			Message: fmt.Sprintf("You are squeezed for %d damage!", fx.ConstrictDamage),
		})
		fx.ConstrictTurns--
		if fx.ConstrictTurns == 0 {
			fx.ConstrictDamage = 0
		}
	}

	state.HP = max(0, state.HP-total)
	return total, actions
}

// ApplyStatus merges a freshly inflicted status onto the player, refreshing
// durations rather than stacking them.
func ApplyStatus(state *rpg.State, inflicted rpg.StatusEffects) {
	if inflicted.PoisonTurns > 0 {
		state.StatusEffects.PoisonTurns = inflicted.PoisonTurns
		state.StatusEffects.PoisonDamage = inflicted.PoisonDamage
	}
	if inflicted.ConstrictTurns > 0 {
		state.StatusEffects.ConstrictTurns = inflicted.ConstrictTurns
		state.StatusEffects.ConstrictDamage = inflicted.ConstrictDamage
	}
}
