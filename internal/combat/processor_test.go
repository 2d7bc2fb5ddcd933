package combat_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/bun-dungeon/internal/abilities"
	"github.com/KirkDiggler/bun-dungeon/internal/combat"
	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/inventory"
	"github.com/KirkDiggler/bun-dungeon/internal/itemdb"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
	"github.com/KirkDiggler/bun-dungeon/internal/testutils"
	"github.com/KirkDiggler/bun-dungeon/internal/testutils/builders"
)

type ProcessorTestSuite struct {
	suite.Suite
	items     *itemdb.Database
	inventory *inventory.Manager
	bestiary  *gamedata.Bestiary
}

func TestProcessorTestSuite(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

func (s *ProcessorTestSuite) SetupTest() {
	data := testutils.LoadGameData(s.T())
	s.items = itemdb.FromTables(data.Items)
	s.bestiary = gamedata.NewBestiary(data.Enemies)

	var err error
	s.inventory, err = inventory.New(&inventory.Config{Items: s.items})
	s.Require().NoError(err)
}

func (s *ProcessorTestSuite) processor(src random.Source) *combat.Processor {
	ab, err := abilities.New(&abilities.Config{Random: src})
	s.Require().NoError(err)

	p, err := combat.New(&combat.Config{
		Inventory: s.inventory,
		Abilities: ab,
		Bestiary:  s.bestiary,
		Random:    src,
	})
	s.Require().NoError(err)
	return p
}

func (s *ProcessorTestSuite) turn(src random.Source, state *rpg.State, action rpg.PlayerAction, target string) *combat.TurnResult {
	result, err := s.processor(src).ProcessTurn(&combat.TurnInput{State: state, Action: action, TargetID: target})
	s.Require().NoError(err)
	return result
}

func messages(actions []rpg.CombatAction) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Message
	}
	return out
}

func (s *ProcessorTestSuite) TestNewValidatesConfig() {
	_, err := combat.New(&combat.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Inventory")
	s.Contains(err.Error(), "Random")

	_, err = combat.New(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ProcessorTestSuite) TestCalculateDamage() {
	testCases := []struct {
		name      string
		roll      float64
		atk, def  int
		defending bool
		want      int
	}{
		{name: "low roll", roll: 0, atk: 5, def: 3, want: 2},
		{name: "mid roll", roll: 0.5, atk: 5, def: 3, want: 3},
		{name: "high roll", roll: 0.999, atk: 5, def: 3, want: 4},
		{name: "defending halves and floors", roll: 0, atk: 5, def: 2, defending: true, want: 1},
		{name: "defending even damage", roll: 0.999, atk: 10, def: 2, defending: true, want: 5},
		{name: "armor wall floors at minimum", roll: 0.999, atk: 1, def: 10, want: 1},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			p := s.processor(random.Fixed(tc.roll))
			s.Equal(tc.want, p.CalculateDamage(tc.atk, tc.def, tc.defending))
		})
	}
}

func (s *ProcessorTestSuite) TestNoEnemy() {
	state := builders.NewStateBuilder().Build()

	result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

	s.Equal(rpg.OutcomeContinue, result.Outcome)
	s.Equal([]string{"No enemy to fight!"}, messages(result.Actions))
	s.Same(state, result.State)
}

func (s *ProcessorTestSuite) TestUnknownAction() {
	state := builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).Build()

	result := s.turn(random.Fixed(0), state, rpg.ActionRevive, "")

	s.Equal(rpg.OutcomeContinue, result.Outcome)
	s.Equal([]string{`Unknown action "revive"`}, messages(result.Actions))
	s.Equal(50, result.State.HP)
}

func (s *ProcessorTestSuite) TestAttackRound() {
	state := builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).Build()

	result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

	s.Equal(rpg.OutcomeContinue, result.Outcome)
	s.Equal([]string{
		"You attack the Test Grub for 4 damage!",
		"The Test Grub attacks you for 3 damage!",
	}, messages(result.Actions))
	s.Equal(16, result.State.CurrentEnemy.HP)
	s.Equal(1, result.State.CurrentEnemy.TurnCounter)
	s.Equal(47, result.State.HP)

	s.Equal(20, state.CurrentEnemy.HP)
	s.Equal(50, state.HP)
}

func (s *ProcessorTestSuite) TestVictory() {
	state := builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(3, 6, 0)).Build()

	result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

	s.Equal(rpg.OutcomeVictory, result.Outcome)
	s.Len(result.Actions, 1)
	s.Equal(0, result.State.CurrentEnemy.HP)
	s.Equal(50, result.State.HP)
}

func (s *ProcessorTestSuite) TestDefendAndCounter() {
	state := builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).Build()

	result := s.turn(random.Fixed(0), state, rpg.ActionDefend, "")

	s.Equal(rpg.OutcomeContinue, result.Outcome)
	s.Equal([]string{
		"You brace yourself. Incoming damage will be reduced by 50%.",
		"The Test Grub attacks you for 1 damage!",
		"You counter-attack the Test Grub for 2 damage!",
	}, messages(result.Actions))
	s.Equal(49, result.State.HP)
	s.Equal(18, result.State.CurrentEnemy.HP)
	s.False(result.State.PlayerDefending)
}

func (s *ProcessorTestSuite) TestCounterFinishesEnemy() {
	state := builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(2, 6, 1)).Build()

	result := s.turn(random.Fixed(0), state, rpg.ActionDefend, "")

	s.Equal(rpg.OutcomeVictory, result.Outcome)
	s.Equal(0, result.State.CurrentEnemy.HP)
}

func (s *ProcessorTestSuite) TestFlee() {
	s.Run("escape", func() {
		state := builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).Build()
		state.CombatBuffs.Atk = 3

		result := s.turn(random.Fixed(0.1), state, rpg.ActionFlee, "")

		s.Equal(rpg.OutcomeFled, result.Outcome)
		s.Equal([]string{"You successfully fled from battle!"}, messages(result.Actions))
		s.False(result.State.InCombat)
		s.Nil(result.State.CurrentEnemy)
		s.Equal(rpg.Stats{}, result.State.CombatBuffs)
	})

	s.Run("caught", func() {
		state := builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).Build()
		src := random.NewSequence(0.9, 0)

		result := s.turn(src, state, rpg.ActionFlee, "")

		s.Equal(rpg.OutcomeContinue, result.Outcome)
		s.Equal([]string{
			"You failed to escape!",
			"The Test Grub attacks while you flee, dealing 3 damage!",
		}, messages(result.Actions))
		s.Equal(47, result.State.HP)
		s.Equal(0, result.State.CurrentEnemy.TurnCounter)
		s.Equal(2, src.Drawn())
	})

	s.Run("boss refuses", func() {
		boss := testutils.CreateTestEnemy(20, 6, 1)
		boss.IsBoss = true
		state := builders.NewStateBuilder().InCombatWith(boss).Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionFlee, "")

		s.Equal(rpg.OutcomeContinue, result.Outcome)
		s.Equal([]string{
			"You cannot flee from a boss battle!",
			"The Test Grub attacks you for 3 damage!",
		}, messages(result.Actions))
		s.True(result.State.InCombat)
	})
}

func (s *ProcessorTestSuite) TestDefeatAndRevive() {
	s.Run("moldy bread revives", func() {
		state := builders.NewStateBuilder().
			WithHP(1, 50).
			WithItem(testutils.Item(s.T(), s.items, rpg.ReviveItemID, 1)).
			InCombatWith(testutils.CreateTestEnemy(100, 20, 0)).
			Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

		s.Equal(rpg.OutcomeContinue, result.Outcome)
		s.Equal(25, result.State.HP)
		s.Empty(result.State.Inventory)

		last := result.Actions[len(result.Actions)-1]
		s.Equal(rpg.ActionRevive, last.Action)
		s.True(last.AutoUsed)
		s.Equal("💀 You were defeated! But Moldy Bread activated, reviving you to 25 HP!", last.Message)
	})

	s.Run("no revive item", func() {
		state := builders.NewStateBuilder().
			WithHP(1, 50).
			InCombatWith(testutils.CreateTestEnemy(100, 20, 0)).
			Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

		s.Equal(rpg.OutcomeDefeat, result.Outcome)
		s.Equal(0, result.State.HP)
	})
}

func (s *ProcessorTestSuite) TestMinions() {
	minion := func(hp int) rpg.Enemy {
		m := testutils.CreateTestEnemy(hp, 2, 1)
		m.ID = testutils.EnemyRatMinion
		m.Name = "Rat Minion"
		return *m
	}

	s.Run("attacks land on the minion first", func() {
		enemy := testutils.CreateTestEnemy(20, 6, 1)
		enemy.Minions = []rpg.Enemy{minion(5)}
		state := builders.NewStateBuilder().InCombatWith(enemy).Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

		s.Equal(20, result.State.CurrentEnemy.HP)
		s.Require().Len(result.State.CurrentEnemy.Minions, 1)
		s.Equal(1, result.State.CurrentEnemy.Minions[0].HP)
		s.Contains(messages(result.Actions), "The Rat Minion attacks you for 1 damage!")
		s.Equal(46, result.State.HP)
	})

	s.Run("defeated minions are removed", func() {
		enemy := testutils.CreateTestEnemy(20, 6, 1)
		enemy.Minions = []rpg.Enemy{minion(4)}
		state := builders.NewStateBuilder().InCombatWith(enemy).Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

		s.Empty(result.State.CurrentEnemy.Minions)
		s.Contains(messages(result.Actions), "The Rat Minion is defeated!")
		s.Equal(47, result.State.HP)
	})
}

func (s *ProcessorTestSuite) TestSummon() {
	p := s.processor(random.Fixed(0))
	state, err := p.StartCombatByID(builders.NewStateBuilder().Build(), testutils.EnemyRatKing)
	s.Require().NoError(err)
	state.CurrentEnemy.TurnCounter = 1

	result, err := p.ProcessTurn(&combat.TurnInput{State: state, Action: rpg.ActionAttack})
	s.Require().NoError(err)

	s.Contains(messages(result.Actions), "Rat King summons rat minions to aid in battle!")
	s.Require().Len(result.State.CurrentEnemy.Minions, 1)
	s.Equal(testutils.EnemyRatMinion, result.State.CurrentEnemy.Minions[0].ID)
	s.Equal(0, result.State.CurrentEnemy.TurnCounter)
	s.Equal(50, result.State.HP)
}

func (s *ProcessorTestSuite) TestFrenzy() {
	enemy := testutils.CreateTestEnemy(20, 6, 1)
	enemy.Special = rpg.Frenzy{}
	state := builders.NewStateBuilder().InCombatWith(enemy).Build()

	result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

	s.Equal([]string{
		"You attack the Test Grub for 4 damage!",
		"Test Grub attacks in a FRENZY!",
		"The Test Grub attacks you for 3 damage!",
		"The Test Grub strikes again for 3 damage!",
	}, messages(result.Actions))
	s.Equal(44, result.State.HP)
}

func (s *ProcessorTestSuite) TestEnemyDefends() {
	enemy := testutils.CreateTestEnemy(20, 6, 1)
	enemy.AIPattern = rpg.AIDefensive
	state := builders.NewStateBuilder().InCombatWith(enemy).Build()

	first := s.turn(random.Fixed(0.1), state, rpg.ActionAttack, "")

	s.Contains(messages(first.Actions), "The Test Grub takes a defensive stance.")
	s.True(first.State.CurrentEnemy.Defending)
	s.Equal(16, first.State.CurrentEnemy.HP)
	s.Equal(50, first.State.HP)

	second := s.turn(random.Fixed(0.9), first.State, rpg.ActionAttack, "")

	s.Equal(13, second.State.CurrentEnemy.HP)
	s.False(second.State.CurrentEnemy.Defending)
	s.Equal(45, second.State.HP)
}

func (s *ProcessorTestSuite) TestEnemySpecialSideEffects() {
	s.Run("steal", func() {
		enemy := testutils.CreateTestEnemy(20, 6, 1)
		enemy.Special = rpg.StealItem{}
		state := builders.NewStateBuilder().
			WithItem(testutils.Item(s.T(), s.items, "crumb", 2)).
			InCombatWith(enemy).
			Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

		s.Contains(messages(result.Actions), "Test Grub steals Stale Crumb!")
		s.Equal(1, result.State.Quantity("crumb"))
		s.Equal(2, state.Quantity("crumb"))
	})

	s.Run("poison lands after the hit", func() {
		enemy := testutils.CreateTestEnemy(20, 6, 1)
		enemy.Special = rpg.Poison{Damage: 2, Duration: 3}
		state := builders.NewStateBuilder().InCombatWith(enemy).Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

		s.Equal(47, result.State.HP)
		s.Equal(rpg.StatusEffects{PoisonTurns: 3, PoisonDamage: 2}, result.State.StatusEffects)
	})

	s.Run("player status ticks each round", func() {
		state := builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).Build()
		state.StatusEffects = rpg.StatusEffects{PoisonTurns: 2, PoisonDamage: 2}

		result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

		s.Contains(messages(result.Actions), "You take 2 poison damage!")
		s.Equal(45, result.State.HP)
		s.Equal(1, result.State.StatusEffects.PoisonTurns)
	})

	s.Run("enemy succumbs to poison", func() {
		enemy := testutils.CreateTestEnemy(5, 6, 1)
		enemy.PoisonTurns = 1
		enemy.PoisonDamage = 5
		state := builders.NewStateBuilder().InCombatWith(enemy).Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAttack, "")

		s.Equal(rpg.OutcomeVictory, result.Outcome)
		s.Equal(50, result.State.HP)
	})
}

func (s *ProcessorTestSuite) TestUseItem() {
	s.Run("heal in battle", func() {
		state := builders.NewStateBuilder().
			WithHP(30, 50).
			WithItem(testutils.Item(s.T(), s.items, "crumb", 1)).
			InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).
			Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionItem, "crumb")

		s.Require().NotEmpty(result.Actions)
		s.Equal(rpg.ActionItem, result.Actions[0].Action)
		s.Equal(10, result.Actions[0].HealAmount)
		s.True(result.Actions[0].Success)
		s.Equal(37, result.State.HP)
		s.Empty(result.State.Inventory)
	})

	s.Run("no item named", func() {
		state := builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionItem, "")

		s.Equal("No item specified to use!", result.Actions[0].Message)
		s.Equal(47, result.State.HP)
	})
}

func (s *ProcessorTestSuite) TestAbilities() {
	ingredient := func(ability rpg.AbilityID) rpg.StatBonus {
		return rpg.StatBonus{Ability: ability}
	}

	s.Run("poison strike", func() {
		state := builders.NewStateBuilder().
			WithIngredient("pickle", ingredient(rpg.AbilityPoisonStrike)).
			InCombatWith(testutils.CreateTestEnemy(30, 6, 1)).
			Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAbility, string(rpg.AbilityPoisonStrike))

		s.Equal(25, result.State.CurrentEnemy.HP)
		s.Equal(2, result.State.CurrentEnemy.PoisonTurns)
		s.Equal(47, result.State.HP)
	})

	s.Run("onion tears hits everything", func() {
		enemy := testutils.CreateTestEnemy(30, 6, 1)
		minion := testutils.CreateTestEnemy(10, 2, 1)
		enemy.Minions = []rpg.Enemy{*minion}
		state := builders.NewStateBuilder().
			WithIngredient("onion", ingredient(rpg.AbilityOnionTears)).
			InCombatWith(enemy).
			Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAbility, string(rpg.AbilityOnionTears))

		s.Equal(18, result.State.CurrentEnemy.HP)
		s.Empty(result.State.CurrentEnemy.Minions)
		s.Equal(37, result.State.HP)
	})

	s.Run("onion tears needs HP", func() {
		state := builders.NewStateBuilder().
			WithHP(10, 50).
			WithIngredient("onion", ingredient(rpg.AbilityOnionTears)).
			InCombatWith(testutils.CreateTestEnemy(30, 6, 1)).
			Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAbility, string(rpg.AbilityOnionTears))

		s.Equal("You don't have enough HP to use Onion Tears!", result.Actions[0].Message)
		s.Equal(30, result.State.CurrentEnemy.HP)
		s.Equal(7, result.State.HP)
	})

	s.Run("heal", func() {
		state := builders.NewStateBuilder().
			WithHP(20, 50).
			WithIngredient("special_sauce", ingredient(rpg.AbilityHeal)).
			InCombatWith(testutils.CreateTestEnemy(30, 6, 1)).
			Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAbility, string(rpg.AbilityHeal))

		s.Equal(20, result.Actions[0].HealAmount)
		s.Equal(37, result.State.HP)
	})

	s.Run("locked", func() {
		state := builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(30, 6, 1)).Build()

		result := s.turn(random.Fixed(0), state, rpg.ActionAbility, string(rpg.AbilityPoisonStrike))

		s.Equal("You haven't unlocked Poison Strike!", result.Actions[0].Message)
		s.Equal(0, result.State.CurrentEnemy.PoisonTurns)
	})
}

func (s *ProcessorTestSuite) TestStartCombat() {
	state := builders.NewStateBuilder().Build()
	state.CombatBuffs.Atk = 4
	enemy := testutils.CreateTestEnemy(10, 1, 1)

	next := combat.StartCombat(state, enemy)

	s.True(next.InCombat)
	s.Equal(rpg.Stats{}, next.CombatBuffs)
	s.NotSame(enemy, next.CurrentEnemy)
	s.False(state.InCombat)

	_, err := s.processor(random.Fixed(0)).StartCombatByID(state, "giant_spoon")
	s.True(errors.IsNotFound(err))
}
