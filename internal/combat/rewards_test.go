package combat_test

import (
	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
	"github.com/KirkDiggler/bun-dungeon/internal/testutils"
	"github.com/KirkDiggler/bun-dungeon/internal/testutils/builders"
)

func (s *ProcessorTestSuite) TestEndCombatVictory() {
	enemy := testutils.CreateTestEnemy(0, 6, 1)
	enemy.LootTable = []rpg.LootDrop{
		{ItemID: "crumb", Chance: 1.0},
		{ItemID: rpg.ReviveItemID, Chance: 0},
	}
	state := builders.NewStateBuilder().WithCurrency(4).InCombatWith(enemy).Build()
	state.CombatBuffs.Def = 2

	result, err := s.processor(random.NewSequence(0.5)).EndCombat(state, true)
	s.Require().NoError(err)

	s.Equal(10, result.XPGained)
	s.Equal(3, result.CurrencyGained)
	s.Equal([]string{"Stale Crumb"}, result.ItemsLooted)
	s.False(result.LeveledUp)
	s.Equal(1, result.NewLevel)
	s.Empty(result.BossDefeated)

	s.Equal(10, result.State.XP)
	s.Equal(7, result.State.Currency)
	s.Equal(1, result.State.Quantity("crumb"))
	s.Equal(0, result.State.Quantity(rpg.ReviveItemID))
	s.False(result.State.InCombat)
	s.Nil(result.State.CurrentEnemy)
	s.Equal(rpg.Stats{}, result.State.CombatBuffs)

	s.True(state.InCombat)
	s.Equal(4, state.Currency)
}

func (s *ProcessorTestSuite) TestEndCombatLevelUp() {
	state := builders.NewStateBuilder().WithXP(95).InCombatWith(testutils.CreateTestEnemy(0, 6, 1)).Build()

	result, err := s.processor(random.Fixed(0)).EndCombat(state, true)
	s.Require().NoError(err)

	s.True(result.LeveledUp)
	s.Equal(2, result.NewLevel)
	s.Equal(5, result.State.XP)
	s.Equal(250, result.State.MaxXP)
	s.Equal(1, result.CurrencyGained)
}

func (s *ProcessorTestSuite) TestEndCombatBoss() {
	p := s.processor(random.Fixed(0))
	state, err := p.StartCombatByID(builders.NewStateBuilder().Build(), testutils.EnemyRatKing)
	s.Require().NoError(err)

	result, err := p.EndCombat(state, true)
	s.Require().NoError(err)

	s.Equal(testutils.EnemyRatKing, result.BossDefeated)
	s.True(result.State.HasDefeatedBoss(testutils.EnemyRatKing))
	s.Equal(30, result.CurrencyGained)
	s.Equal(1, result.State.Quantity("chef_cleaver"))
	s.True(result.LeveledUp)
}

func (s *ProcessorTestSuite) TestEndCombatFullBagKeepsRewards() {
	enemy := testutils.CreateTestEnemy(0, 6, 1)
	enemy.LootTable = []rpg.LootDrop{{ItemID: "crumb", Chance: 1.0}}

	b := builders.NewStateBuilder()
	for _, id := range []string{
		"ketchup_packet", "mustard_packet", "moldy_bread", "hot_sauce", "sesame_glaze",
		"glitter_sprinkles", "plastic_fork", "butter_knife", "napkin_wrap", "bottle_cap",
	} {
		b.WithItem(testutils.Item(s.T(), s.items, id, 1))
	}
	state := b.InCombatWith(enemy).Build()

	result, err := s.processor(random.Fixed(0)).EndCombat(state, true)
	s.Require().NoError(err)

	s.Empty(result.ItemsLooted)
	s.Len(result.State.Inventory, rpg.MaxInventorySize)
	s.Equal(10, result.State.XP)
}

func (s *ProcessorTestSuite) TestEndCombatWithoutVictory() {
	state := builders.NewStateBuilder().
		WithXP(40).
		WithCurrency(12).
		WithItem(testutils.Item(s.T(), s.items, "crumb", 2)).
		InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).
		Build()
	state.StatusEffects = rpg.StatusEffects{PoisonTurns: 2, PoisonDamage: 2}

	result, err := s.processor(random.Fixed(0.5)).EndCombat(state, false)
	s.Require().NoError(err)

	s.Zero(result.XPGained)
	s.Zero(result.CurrencyGained)
	s.Empty(result.ItemsLooted)
	s.Equal(40, result.State.XP)
	s.Equal(12, result.State.Currency)
	s.Equal(state.Inventory, result.State.Inventory)
	s.False(result.State.InCombat)
	s.Nil(result.State.CurrentEnemy)
	s.False(result.State.StatusEffects.Active())
}
