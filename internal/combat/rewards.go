package combat

import (
	"log/slog"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
	"github.com/KirkDiggler/bun-dungeon/internal/rpgstate"
)

// EndResult is the state after combat ends and the rewards granted.
type EndResult struct {
	State          *rpg.State
	XPGained       int
	CurrencyGained int
	// ItemsLooted holds the names of drops that made it into the bag.
	ItemsLooted  []string
	LeveledUp    bool
	NewLevel     int
	BossDefeated string
}

// EndCombat closes the fight. A victory grants XP, Crumbs and loot and
// records boss kills; any other ending only clears the combat flags.
func (p *Processor) EndCombat(state *rpg.State, victory bool) (*EndResult, error) {
	if state == nil {
		return nil, errors.InvalidArgument("state is required")
	}

	enemy := state.CurrentEnemy
	if !victory || enemy == nil {
		next := state.Clone()
		clearCombat(next)
		return &EndResult{State: next, NewLevel: next.Level}, nil
	}

	currency := enemy.CurrencyDrop.Min
	if spread := enemy.CurrencyDrop.Max - enemy.CurrencyDrop.Min; spread > 0 {
		currency += random.Intn(p.rng, spread+1)
	}

	next, levels := rpgstate.AddXP(state, enemy.XPReward)
	next = rpgstate.AddCurrency(next, currency)

	var looted []string
	for _, drop := range enemy.LootTable {
		if !p.chance(drop.Chance) {
			continue
		}
		added := p.inventory.AddItem(next, drop.ItemID, 1)
		if !added.Success {
			slog.Info("Loot dropped but not collected",
				"enemy_id", enemy.ID,
				"item_id", drop.ItemID,
				"reason", added.Message)
			continue
		}
		next = added.State
		if def, ok := p.inventory.Items().Get(drop.ItemID); ok {
			looted = append(looted, def.Name)
		}
	}

	result := &EndResult{
		XPGained:       enemy.XPReward,
		CurrencyGained: currency,
		ItemsLooted:    looted,
		LeveledUp:      levels > 0,
	}
	if enemy.IsBoss {
		next = rpgstate.DefeatBoss(next, enemy.ID)
		result.BossDefeated = enemy.ID
	}

	next = next.Clone()
	clearCombat(next)
	result.State = next
	result.NewLevel = next.Level
	return result, nil
}
