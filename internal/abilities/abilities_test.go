package abilities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/bun-dungeon/internal/abilities"
	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
	"github.com/KirkDiggler/bun-dungeon/internal/testutils"
	"github.com/KirkDiggler/bun-dungeon/internal/testutils/builders"
)

type AbilitiesTestSuite struct {
	suite.Suite
	state *rpg.State
}

func TestAbilitiesTestSuite(t *testing.T) {
	suite.Run(t, new(AbilitiesTestSuite))
}

func (s *AbilitiesTestSuite) SetupTest() {
	s.state = builders.NewStateBuilder().Build()
}

func (s *AbilitiesTestSuite) processor(src random.Source) *abilities.Processor {
	p, err := abilities.New(&abilities.Config{Random: src})
	s.Require().NoError(err)
	return p
}

func (s *AbilitiesTestSuite) enemyWith(special rpg.Special) *rpg.Enemy {
	e := testutils.CreateTestEnemy(40, 6, 2)
	e.Name = "Grub"
	e.Special = special
	return e
}

func (s *AbilitiesTestSuite) TestNewRequiresRandom() {
	_, err := abilities.New(&abilities.Config{})
	s.Error(err)
}

func (s *AbilitiesTestSuite) TestDamageModifiers() {
	testCases := []struct {
		name        string
		special     rpg.Special
		base        int
		wantDamage  int
		wantMessage string
	}{
		{name: "no special", special: nil, base: 5, wantDamage: 5},
		{
			name:        "splash ignores base",
			special:     rpg.SplashDamage{Damage: 12},
			base:        2,
			wantDamage:  12,
			wantMessage: "Grub uses SPLASH DAMAGE! 12 unblockable damage!",
		},
		{
			name:        "wrench default multiplier",
			special:     rpg.WrenchThrow{},
			base:        5,
			wantDamage:  7,
			wantMessage: "Grub throws itself at you like a metal projectile! 7 damage!",
		},
		{
			name:        "rabid bite",
			special:     rpg.RabidBite{DamageMultiplier: 1.5},
			base:        4,
			wantDamage:  6,
			wantMessage: "Grub bites with rabid fury! 6 damage!",
		},
		{
			name:        "crushing blow",
			special:     rpg.CrushingBlow{},
			base:        5,
			wantDamage:  10,
			wantMessage: "Grub delivers a CRUSHING BLOW! 10 damage!",
		},
		{
			name:        "bite custom multiplier",
			special:     rpg.Bite{DamageMultiplier: 3},
			base:        3,
			wantDamage:  9,
			wantMessage: "Grub BITES with terrifying force! 9 damage!",
		},
		{
			name:        "nut throw adds ignored defense",
			special:     rpg.NutThrow{},
			base:        4,
			wantDamage:  5,
			wantMessage: "Grub throws an acorn! Ignores 1 DEF!",
		},
		{name: "evasion is passive", special: rpg.Evasion{}, base: 5, wantDamage: 5},
		{name: "unknown is a no-op", special: rpg.Unknown{Name: "laser_eyes"}, base: 5, wantDamage: 5},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out := s.processor(random.Fixed(0)).ProcessSpecial(&abilities.Input{
				State:      s.state,
				Enemy:      s.enemyWith(tc.special),
				BaseDamage: tc.base,
			})

			s.Equal(tc.wantDamage, out.Damage)
			s.Equal(abilities.NoSteal, out.StolenIndex)
			if tc.wantMessage == "" {
				s.Empty(out.Actions)
				return
			}
			s.Require().Len(out.Actions, 1)
			s.Equal(tc.wantMessage, out.Actions[0].Message)
			s.Equal(rpg.ActorEnemy, out.Actions[0].Actor)
		})
	}
}

func (s *AbilitiesTestSuite) TestNutThrowCountsDefenseBuffs() {
	state := builders.NewStateBuilder().WithStats(5, 6, 5).Build()
	state.CombatBuffs.Def = 2

	out := s.processor(random.Fixed(0)).ProcessSpecial(&abilities.Input{
		State:      state,
		Enemy:      s.enemyWith(rpg.NutThrow{DefenseIgnore: 0.5}),
		BaseDamage: 1,
	})
	s.Equal(5, out.Damage)
}

func (s *AbilitiesTestSuite) TestTriggerChanceGatesSpecial() {
	poison := rpg.Poison{Trigger: rpg.Trigger{Chance: 0.3}, Damage: 2, Duration: 3}

	missed := s.processor(random.Fixed(0.5)).ProcessSpecial(&abilities.Input{
		State: s.state, Enemy: s.enemyWith(poison), BaseDamage: 4,
	})
	s.Equal(4, missed.Damage)
	s.Empty(missed.Actions)
	s.False(missed.Status.Active())

	hit := s.processor(random.Fixed(0.1)).ProcessSpecial(&abilities.Input{
		State: s.state, Enemy: s.enemyWith(poison), BaseDamage: 4,
	})
	s.Equal(4, hit.Damage)
	s.Equal(rpg.StatusEffects{PoisonTurns: 3, PoisonDamage: 2}, hit.Status)
	s.Equal("Grub inflicts POISON! You'll take 2 damage for 3 turns!", hit.Actions[0].Message)
}

func (s *AbilitiesTestSuite) TestConstrict() {
	out := s.processor(random.Fixed(0)).ProcessSpecial(&abilities.Input{
		State: s.state, Enemy: s.enemyWith(rpg.Constrict{Damage: 3, Duration: 2}), BaseDamage: 4,
	})
	s.Equal(rpg.StatusEffects{ConstrictTurns: 2, ConstrictDamage: 3}, out.Status)
	s.Equal("Grub CONSTRICTS you! 3 damage per turn for 2 turns!", out.Actions[0].Message)
}

func (s *AbilitiesTestSuite) TestPounceAlternates() {
	p := s.processor(random.Fixed(0))
	enemy := s.enemyWith(rpg.Pounce{})

	charge := p.ProcessSpecial(&abilities.Input{State: s.state, Enemy: enemy, BaseDamage: 5})
	s.Equal(0, charge.Damage)
	s.True(enemy.Charging)
	s.Equal("Grub crouches low, preparing to pounce...", charge.Actions[0].Message)

	release := p.ProcessSpecial(&abilities.Input{State: s.state, Enemy: enemy, BaseDamage: 5})
	s.Equal(10, release.Damage)
	s.False(enemy.Charging)
	s.Equal("Grub POUNCES! 10 damage!", release.Actions[0].Message)
}

func (s *AbilitiesTestSuite) TestSummonMinions() {
	summon := rpg.SummonMinions{SummonID: "rat_minion", SummonInterval: 2, SummonCount: 2}

	testCases := []struct {
		name       string
		turn       int
		minions    int
		wantSummon bool
	}{
		{name: "before interval", turn: 1, minions: 0},
		{name: "on interval", turn: 2, minions: 0, wantSummon: true},
		{name: "below cap", turn: 3, minions: 1, wantSummon: true},
		{name: "at cap", turn: 2, minions: 2},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			enemy := s.enemyWith(summon)
			enemy.TurnCounter = tc.turn
			for range tc.minions {
				enemy.Minions = append(enemy.Minions, *testutils.CreateTestEnemy(5, 2, 0))
			}

			out := s.processor(random.Fixed(0)).ProcessSpecial(&abilities.Input{
				State: s.state, Enemy: enemy, BaseDamage: 4,
			})

			if !tc.wantSummon {
				s.Empty(out.SummonID)
				s.Equal(4, out.Damage)
				s.Equal(tc.turn, enemy.TurnCounter)
				return
			}
			s.Equal("rat_minion", out.SummonID)
			s.Equal(1, out.SummonCount)
			s.Equal(0, out.Damage)
			s.Equal(0, enemy.TurnCounter)
			s.Equal("Grub summons rat minions to aid in battle!", out.Actions[0].Message)
		})
	}
}

func (s *AbilitiesTestSuite) TestFrenzyFlagsSecondAttack() {
	out := s.processor(random.Fixed(0)).ProcessSpecial(&abilities.Input{
		State: s.state, Enemy: s.enemyWith(rpg.Frenzy{}), BaseDamage: 4,
	})
	s.True(out.Frenzy)
	s.Equal(4, out.Damage)
	s.Equal("Grub attacks in a FRENZY!", out.Actions[0].Message)
}

func (s *AbilitiesTestSuite) TestStealItem() {
	state := builders.NewStateBuilder().
		WithConsumable("crumb", "Stale Crumb", rpg.Effect{HealHP: 10}, 1).
		WithConsumable("ketchup_packet", "Ketchup Packet", rpg.Effect{HealHP: 25}, 2).
		Build()

	out := s.processor(random.Fixed(0.6)).ProcessSpecial(&abilities.Input{
		State: state, Enemy: s.enemyWith(rpg.StealItem{}), BaseDamage: 3,
	})
	s.Equal(1, out.StolenIndex)
	s.Equal("Grub steals Ketchup Packet!", out.Actions[0].Message)
	s.Equal(2, state.Quantity("ketchup_packet"))

	empty := s.processor(random.Fixed(0.6)).ProcessSpecial(&abilities.Input{
		State: s.state, Enemy: s.enemyWith(rpg.StealItem{}), BaseDamage: 3,
	})
	s.Equal(abilities.NoSteal, empty.StolenIndex)
	s.Empty(empty.Actions)
}

func (s *AbilitiesTestSuite) TestEnemyHealing() {
	regen := s.enemyWith(rpg.Regenerate{Amount: 5})
	regen.HP = 38
	out := s.processor(random.Fixed(0)).ProcessSpecial(&abilities.Input{State: s.state, Enemy: regen, BaseDamage: 3})
	s.Equal(40, regen.HP)
	s.Equal(2, out.EnemyHeal)
	s.Equal("Grub regenerates 2 HP!", out.Actions[0].Message)

	leech := s.enemyWith(rpg.Lifesteal{})
	leech.HP = 10
	out = s.processor(random.Fixed(0)).ProcessSpecial(&abilities.Input{State: s.state, Enemy: leech, BaseDamage: 7})
	s.Equal(13, leech.HP)
	s.Equal(7, out.Damage)
	s.Equal(3, out.EnemyHeal)
}

func (s *AbilitiesTestSuite) TestEnrageBelowThreshold() {
	calm := s.enemyWith(rpg.Enrage{HealthThreshold: 0.5, DamageMultiplier: 2})
	out := s.processor(random.Fixed(0)).ProcessSpecial(&abilities.Input{State: s.state, Enemy: calm, BaseDamage: 4})
	s.Equal(4, out.Damage)

	angry := s.enemyWith(rpg.Enrage{HealthThreshold: 0.5, DamageMultiplier: 2})
	angry.HP = 20
	out = s.processor(random.Fixed(0)).ProcessSpecial(&abilities.Input{State: s.state, Enemy: angry, BaseDamage: 4})
	s.Equal(8, out.Damage)
	s.Equal("Grub is ENRAGED! 8 damage!", out.Actions[0].Message)
}

func (s *AbilitiesTestSuite) TestCheckEvasion() {
	fly := s.enemyWith(rpg.Evasion{})
	s.True(s.processor(random.Fixed(0.19)).CheckEvasion(fly))
	s.False(s.processor(random.Fixed(0.2)).CheckEvasion(fly))

	slippery := s.enemyWith(rpg.Evasion{MissChance: 0.9})
	s.True(s.processor(random.Fixed(0.5)).CheckEvasion(slippery))

	s.False(s.processor(random.Fixed(0)).CheckEvasion(s.enemyWith(rpg.Frenzy{})))
	s.False(s.processor(random.Fixed(0)).CheckEvasion(nil))
}
