package combat

import (
	"fmt"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
)

func playerAction(kind rpg.ActionKind, message string) rpg.CombatAction {
	return rpg.CombatAction{Actor: rpg.ActorPlayer, Action: kind, Message: message}
}

// playerAttack strikes the first living minion, or the main enemy when the
// field is clear. Evasion is rolled before damage.
func (p *Processor) playerAttack(t *turn) {
	enemy := t.state.CurrentEnemy
	atk := t.state.Stats.Atk + t.state.CombatBuffs.Atk

	target := enemy
	i := enemy.FirstLivingMinion()
	if i >= 0 {
		target = &enemy.Minions[i]
	}

	if p.abilities.CheckEvasion(target) {
		t.log(rpg.CombatAction{
			Actor:   rpg.ActorPlayer,
			Action:  rpg.ActionAttack,
			Message: fmt.Sprintf("The %s dodges your attack!", target.Name),
		})
		return
	}

	damage := p.CalculateDamage(atk, target.Def, target.Defending)
	target.Defending = false
	target.HP = max(0, target.HP-damage)
	t.log(rpg.CombatAction{
		Actor:   rpg.ActorPlayer,
		Action:  rpg.ActionAttack,
		Damage:  damage,
		Success: true,
		Message: fmt.Sprintf("You attack the %s for %d damage!", target.Name, damage),
	})

	if i >= 0 && !target.IsAlive() {
		t.log(playerAction(rpg.ActionAttack, fmt.Sprintf("The %s is defeated!", target.Name)))
		enemy.PruneMinions()
	}
}

func (p *Processor) playerDefend(t *turn) {
	t.state.PlayerDefending = true
	t.log(rpg.CombatAction{
		Actor:   rpg.ActorPlayer,
		Action:  rpg.ActionDefend,
		Success: true,
		Message: "You brace yourself. Incoming damage will be reduced by 50%.",
	})
}

func (p *Processor) playerUseItem(t *turn, itemID string) {
	if itemID == "" {
		t.log(playerAction(rpg.ActionItem, "No item specified to use!"))
		return
	}
	used := p.inventory.UseConsumable(t.state, itemID)
	if !used.Success {
		t.log(playerAction(rpg.ActionItem, used.Message))
		return
	}
	t.state = used.State
	t.log(rpg.CombatAction{
		Actor:      rpg.ActorPlayer,
		Action:     rpg.ActionItem,
		HealAmount: used.HealAmount,
		Success:    true,
		Message:    used.Message,
	})
}

// playerFlee reports whether the player escaped. A boss refuses the attempt;
// a failed attempt gives the enemy one free attack in place of its turn.
func (p *Processor) playerFlee(t *turn) bool {
	enemy := t.state.CurrentEnemy
	if enemy.IsBoss {
		t.log(rpg.CombatAction{
			Actor:   rpg.ActorPlayer,
			Action:  rpg.ActionFlee,
			Message: "You cannot flee from a boss battle!",
		})
		return false
	}

	if p.chance(rpg.FleeChance) {
		clearCombat(t.state)
		t.log(rpg.CombatAction{
			Actor:   rpg.ActorPlayer,
			Action:  rpg.ActionFlee,
			Success: true,
			Message: "You successfully fled from battle!",
		})
		return true
	}

	damage := p.CalculateDamage(enemy.Atk, t.state.Stats.Def+t.state.CombatBuffs.Def, false)
	t.state.HP = max(0, t.state.HP-damage)
	t.enemyActed = true
	t.fleeFailed = true
	t.log(
		rpg.CombatAction{
			Actor:   rpg.ActorPlayer,
			Action:  rpg.ActionFlee,
			Message: "You failed to escape!",
		},
		rpg.CombatAction{
			Actor:   rpg.ActorEnemy,
			Action:  rpg.ActionAttack,
			Damage:  damage,
			Message: fmt.Sprintf("The %s attacks while you flee, dealing %d damage!", enemy.Name, damage),
		},
	)
	return false
}

// playerAbility uses an ingredient-unlocked ability.
func (p *Processor) playerAbility(t *turn, id string) {
	info, ok := rpg.LookupAbility(rpg.AbilityID(id))
	if !ok {
		t.log(playerAction(rpg.ActionAbility, fmt.Sprintf("Unknown ability %s", id)))
		return
	}
	if !t.state.HasAbility(info.ID) {
		t.log(playerAction(rpg.ActionAbility, fmt.Sprintf("You haven't unlocked %s!", info.Name)))
		return
	}

	enemy := t.state.CurrentEnemy
	switch info.ID {
	case rpg.AbilityPoisonStrike:
		enemy.PoisonTurns = rpg.PoisonStrikeDuration
		enemy.PoisonDamage = rpg.PoisonStrikeDamage
		t.log(rpg.CombatAction{
			Actor:   rpg.ActorPlayer,
			Action:  rpg.ActionAbility,
			Success: true,
			Message: fmt.Sprintf("You use %s! The %s is poisoned for %d turns!", info.Name, enemy.Name, rpg.PoisonStrikeDuration),
		})

	case rpg.AbilityOnionTears:
		if t.state.HP <= rpg.OnionTearsHPCost {
			t.log(playerAction(rpg.ActionAbility, fmt.Sprintf("You don't have enough HP to use %s!", info.Name)))
			return
		}
		t.state.HP -= rpg.OnionTearsHPCost
		enemy.HP = max(0, enemy.HP-rpg.OnionTearsAOEDamage)
		for i := range enemy.Minions {
			enemy.Minions[i].HP = max(0, enemy.Minions[i].HP-rpg.OnionTearsAOEDamage)
		}
		enemy.PruneMinions()
		t.log(rpg.CombatAction{
			Actor:   rpg.ActorPlayer,
			Action:  rpg.ActionAbility,
			Damage:  rpg.OnionTearsAOEDamage,
			Success: true,
			Message: fmt.Sprintf("You unleash %s! %d damage to all enemies! (-%d HP)",
				info.Name, rpg.OnionTearsAOEDamage, rpg.OnionTearsHPCost),
		})

	case rpg.AbilityHeal:
		healed := min(rpg.HealHPRestored, t.state.MaxHP-t.state.HP)
		t.state.HP += healed
		t.log(rpg.CombatAction{
			Actor:      rpg.ActorPlayer,
			Action:     rpg.ActionAbility,
			HealAmount: healed,
			Success:    true,
			Message:    fmt.Sprintf("You use %s and restore %d HP!", info.Name, healed),
		})
	}
}

// counterAttack fires after a successful defend. It reports whether the
// counter finished the enemy.
func (p *Processor) counterAttack(t *turn) bool {
	enemy := t.state.CurrentEnemy
	atk := t.state.Stats.Atk + t.state.CombatBuffs.Atk
	damage := max(rpg.MinDamage, scale(p.CalculateDamage(atk, enemy.Def, false), rpg.CounterMultiplier))
	enemy.HP = max(0, enemy.HP-damage)
	t.log(rpg.CombatAction{
		Actor:   rpg.ActorPlayer,
		Action:  rpg.ActionAttack,
		Damage:  damage,
		Success: true,
		Message: fmt.Sprintf("You counter-attack the %s for %d damage!", enemy.Name, damage),
	})
	return !enemy.IsAlive()
}
