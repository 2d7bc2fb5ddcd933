// Package combat runs the turn-based battle loop: one call resolves the
// player's action, the enemy's response and the defeat and revive checks.
package combat

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/bun-dungeon/internal/abilities"
	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/inventory"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
)

// TurnInput is one player decision.
type TurnInput struct {
	State  *rpg.State
	Action rpg.PlayerAction
	// TargetID names the item or ability for the item and ability actions.
	TargetID string
}

// TurnResult is the state after a full round and what happened in it.
type TurnResult struct {
	State   *rpg.State
	Actions []rpg.CombatAction
	Outcome rpg.Outcome
}

// Config holds the dependencies for the combat processor
type Config struct {
	Inventory *inventory.Manager
	Abilities *abilities.Processor
	Bestiary  *gamedata.Bestiary
	Random    random.Source
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Inventory == nil {
		vb.RequiredField("Inventory")
	}
	if c.Abilities == nil {
		vb.RequiredField("Abilities")
	}
	if c.Bestiary == nil {
		vb.RequiredField("Bestiary")
	}
	if c.Random == nil {
		vb.RequiredField("Random")
	}
	return vb.Build()
}

// Processor resolves combat rounds. It keeps no per-session state.
type Processor struct {
	inventory *inventory.Manager
	abilities *abilities.Processor
	bestiary  *gamedata.Bestiary
	rng       random.Source
}

// New creates a combat processor
func New(cfg *Config) (*Processor, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Processor{
		inventory: cfg.Inventory,
		abilities: cfg.Abilities,
		bestiary:  cfg.Bestiary,
		rng:       cfg.Random,
	}, nil
}

// ProcessTurn runs one round. Requests that cannot be carried out come back
// as a log message with the state untouched; the input state is never
// modified.
func (p *Processor) ProcessTurn(input *TurnInput) (*TurnResult, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("state is required")
	}
	state := input.State

	if !state.InCombat || state.CurrentEnemy == nil {
		return &TurnResult{
			State:   state,
			Actions: []rpg.CombatAction{{Actor: rpg.ActorPlayer, Action: input.Action, Message: "No enemy to fight!"}},
			Outcome: rpg.OutcomeContinue,
		}, nil
	}
	if !input.Action.IsPlayerAction() {
		return &TurnResult{
			State:   state,
			Actions: []rpg.CombatAction{{Actor: rpg.ActorPlayer, Action: input.Action, Message: fmt.Sprintf("Unknown action %q", input.Action)}},
			Outcome: rpg.OutcomeContinue,
		}, nil
	}

	t := &turn{state: state.Clone()}

	switch input.Action {
	case rpg.ActionAttack:
		p.playerAttack(t)
	case rpg.ActionDefend:
		p.playerDefend(t)
	case rpg.ActionItem:
		p.playerUseItem(t, input.TargetID)
	case rpg.ActionAbility:
		p.playerAbility(t, input.TargetID)
	case rpg.ActionFlee:
		if p.playerFlee(t) {
			return t.result(rpg.OutcomeFled), nil
		}
	}

	enemy := t.state.CurrentEnemy
	if !enemy.IsAlive() {
		return t.result(rpg.OutcomeVictory), nil
	}
	p.checkPhase(t)

	defended := t.state.PlayerDefending
	if !t.enemyActed {
		if p.enemyTurn(t) {
			return t.result(rpg.OutcomeVictory), nil
		}
	}

	if defended && t.state.HP > 0 && t.state.CurrentEnemy.IsAlive() && !t.fleeFailed {
		if p.counterAttack(t) {
			t.state.PlayerDefending = false
			return t.result(rpg.OutcomeVictory), nil
		}
	}
	t.state.PlayerDefending = false

	if t.state.HP <= 0 {
		revived, ok := p.inventory.Revive(t.state)
		if !ok {
			t.state.HP = 0
			return t.result(rpg.OutcomeDefeat), nil
		}
		t.state = revived.State
		t.log(rpg.CombatAction{
			Actor:      rpg.ActorPlayer,
			Action:     rpg.ActionRevive,
			HealAmount: t.state.HP,
			Success:    true,
			AutoUsed:   true,
			Message:    fmt.Sprintf("💀 You were defeated! But Moldy Bread activated, reviving you to %d HP!", t.state.HP),
		})
	}

	return t.result(rpg.OutcomeContinue), nil
}

// turn is the working copy threaded through one round.
type turn struct {
	state      *rpg.State
	actions    []rpg.CombatAction
	enemyActed bool
	fleeFailed bool
}

func (t *turn) log(actions ...rpg.CombatAction) {
	t.actions = append(t.actions, actions...)
}

func (t *turn) result(outcome rpg.Outcome) *TurnResult {
	slog.Debug("Combat round resolved", "outcome", string(outcome), "actions", len(t.actions))
	return &TurnResult{State: t.state, Actions: t.actions, Outcome: outcome}
}

func (p *Processor) checkPhase(t *turn) {
	if changed, msg := abilities.UpdateBossPhase(t.state.CurrentEnemy); changed {
		t.log(rpg.CombatAction{Actor: rpg.ActorEnemy, Action: rpg.ActionAbility, Message: msg})
	}
}

// StartCombat begins a fight against a fresh copy of the enemy.
func StartCombat(state *rpg.State, enemy *rpg.Enemy) *rpg.State {
	next := state.Clone()
	next.InCombat = true
	next.CurrentEnemy = enemy.Clone()
	next.PlayerDefending = false
	next.CombatBuffs = rpg.Stats{}
	next.StatusEffects = rpg.StatusEffects{}
	return next
}

// StartCombatByID spawns the enemy from the bestiary and begins the fight.
func (p *Processor) StartCombatByID(state *rpg.State, enemyID string) (*rpg.State, error) {
	enemy, ok := p.bestiary.Spawn(enemyID)
	if !ok {
		return nil, errors.NotFoundf("enemy %s not found", enemyID).WithMeta("enemy_id", enemyID)
	}
	return StartCombat(state, enemy), nil
}

func clearCombat(state *rpg.State) {
	state.InCombat = false
	state.CurrentEnemy = nil
	state.PlayerDefending = false
	state.CombatBuffs = rpg.Stats{}
	state.StatusEffects = rpg.StatusEffects{}
}
