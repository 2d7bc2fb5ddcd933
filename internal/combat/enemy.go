package combat

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/bun-dungeon/internal/abilities"
	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
)

// enemyTurn ticks damage over time, then lets the enemy and its minions act.
// It reports whether the enemy died during its own turn.
func (p *Processor) enemyTurn(t *turn) bool {
	enemy := t.state.CurrentEnemy
	enemy.Defending = false
	enemy.TurnCounter++

	if _, action := abilities.TickEnemyPoison(enemy); action != nil {
		t.log(*action)
		if !enemy.IsAlive() {
			return true
		}
	}
	p.checkPhase(t)

	_, ticks := abilities.TickPlayerStatus(t.state)
	t.log(ticks...)
	if t.state.HP <= 0 {
		return false
	}

	playerDef := t.state.Stats.Def + t.state.CombatBuffs.Def
	defending := t.state.PlayerDefending
	damage := 0
	var special *abilities.Outcome

	if p.enemyDefends(enemy) {
		enemy.Defending = true
		t.log(rpg.CombatAction{
			Actor:   rpg.ActorEnemy,
			Action:  rpg.ActionDefend,
			Message: fmt.Sprintf("The %s takes a defensive stance.", enemy.Name),
		})
	} else {
		special = p.abilities.ProcessSpecial(&abilities.Input{
			State:      t.state,
			Enemy:      enemy,
			BaseDamage: p.CalculateDamage(enemy.Atk, playerDef, defending),
		})
		t.log(special.Actions...)
		damage += special.Damage
		if special.Damage > 0 && !reportsDamage(special.Actions) {
			t.log(rpg.CombatAction{
				Actor:   rpg.ActorEnemy,
				Action:  rpg.ActionAttack,
				Damage:  special.Damage,
				Message: fmt.Sprintf("The %s attacks you for %d damage!", enemy.Name, special.Damage),
			})
		}
		if special.Frenzy {
			extra := p.CalculateDamage(enemy.Atk, playerDef, defending)
			damage += extra
			t.log(rpg.CombatAction{
				Actor:   rpg.ActorEnemy,
				Action:  rpg.ActionAttack,
				Damage:  extra,
				Message: fmt.Sprintf("The %s strikes again for %d damage!", enemy.Name, extra),
			})
		}
	}

	for i := range enemy.Minions {
		minion := &enemy.Minions[i]
		if !minion.IsAlive() {
			continue
		}
		hit := p.CalculateDamage(minion.Atk, playerDef, defending)
		damage += hit
		t.log(rpg.CombatAction{
			Actor:   rpg.ActorEnemy,
			Action:  rpg.ActionAttack,
			Damage:  hit,
			Message: fmt.Sprintf("The %s attacks you for %d damage!", minion.Name, hit),
		})
	}

	if special != nil && special.SummonID != "" {
		p.summon(enemy, special.SummonID, special.SummonCount)
	}

	t.state.HP = max(0, t.state.HP-damage)

	if special != nil {
		if special.StolenIndex != abilities.NoSteal {
			if stolen, name := p.inventory.RemoveAt(t.state, special.StolenIndex); stolen.Success {
				t.state = stolen.State
				slog.Debug("Item stolen", "enemy_id", enemy.ID, "item", name)
			}
		}
		abilities.ApplyStatus(t.state, special.Status)
	}

	p.checkPhase(t)
	return false
}

func (p *Processor) enemyDefends(enemy *rpg.Enemy) bool {
	switch enemy.AIPattern {
	case rpg.AIDefensive:
		return p.chance(rpg.DefensiveDefendChance)
	case rpg.AIRandom:
		return p.chance(rpg.RandomDefendChance)
	default:
		return false
	}
}

func (p *Processor) summon(enemy *rpg.Enemy, id string, count int) {
	for range max(1, count) {
		minion, ok := p.bestiary.Spawn(id)
		if !ok {
			slog.Warn("Summoned enemy not found", "enemy_id", enemy.ID, "summon_id", id)
			return
		}
		enemy.Minions = append(enemy.Minions, *minion)
	}
}

func reportsDamage(actions []rpg.CombatAction) bool {
	for _, a := range actions {
		if a.Damage > 0 {
			return true
		}
	}
	return false
}
