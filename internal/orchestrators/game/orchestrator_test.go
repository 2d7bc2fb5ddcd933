package game_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/orchestrators/game"
	"github.com/KirkDiggler/bun-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/bun-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
	"github.com/KirkDiggler/bun-dungeon/internal/repositories/session"
	"github.com/KirkDiggler/bun-dungeon/internal/testutils"
	"github.com/KirkDiggler/bun-dungeon/internal/testutils/builders"
)

const seededSessionID = "game_seeded"

type published struct {
	eventType string
	sourceID  string
	data      map[string]any
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctx   context.Context
	data  *gamedata.Data
	clock *clock.Fixed
	repo  session.Repository
	bus   events.EventBus

	mu     sync.Mutex
	events []published
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.data = testutils.LoadGameData(s.T())
	s.clock = clock.NewFixed(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	s.repo = session.NewInMemory(s.clock)
	s.bus = events.NewBus()
	s.events = nil

	for _, eventType := range []string{
		game.EventGameStarted, game.EventGameRestarted, game.EventTraveled, game.EventLevelUp,
		game.EventCombatStarted, game.EventCombatVictory, game.EventCombatDefeat, game.EventCombatFled,
		game.EventBossDefeated, game.EventItemPurchased, game.EventItemSold,
	} {
		s.bus.SubscribeFunc(eventType, 0, s.record)
	}
}

func (s *OrchestratorTestSuite) record(_ context.Context, e events.Event) error {
	p := published{eventType: e.Type(), data: map[string]any{}}
	if e.Source() != nil {
		p.sourceID = e.Source().GetID()
	}
	for _, key := range []string{
		game.KeyLocationID, game.KeyEnemyID, game.KeyItemID, game.KeyLevel, game.KeyXP, game.KeyCurrency,
	} {
		if v, ok := e.Context().Get(key); ok {
			p.data[key] = v
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, p)
	return nil
}

func (s *OrchestratorTestSuite) eventTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]string, 0, len(s.events))
	for _, e := range s.events {
		types = append(types, e.eventType)
	}
	return types
}

func (s *OrchestratorTestSuite) lastEvent() published {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Require().NotEmpty(s.events)
	return s.events[len(s.events)-1]
}

func (s *OrchestratorTestSuite) newOrchestrator(src random.Source) game.Service {
	svc, err := game.NewOrchestrator(&game.Config{
		Data:        s.data,
		Random:      src,
		Repository:  s.repo,
		IDGenerator: idgen.NewSequential("game"),
		EventBus:    s.bus,
		SessionTTL:  time.Hour,
	})
	s.Require().NoError(err)
	return svc
}

// seed stores a session built outside the orchestrator
func (s *OrchestratorTestSuite) seed(state *rpg.State) {
	_, err := s.repo.Create(s.ctx, session.CreateInput{ID: seededSessionID, State: state})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) stored() *session.Session {
	out, err := s.repo.Get(s.ctx, session.GetInput{ID: seededSessionID})
	s.Require().NoError(err)
	return out.Session
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := game.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = game.NewOrchestrator(&game.Config{SessionTTL: -time.Second})
	s.Require().Error(err)
	for _, field := range []string{"Data", "Random", "Repository", "IDGenerator", "EventBus", "SessionTTL"} {
		s.Contains(err.Error(), field)
	}
}

func (s *OrchestratorTestSuite) TestNewGame() {
	svc := s.newOrchestrator(random.Fixed(0))

	out, err := svc.NewGame(s.ctx, &game.NewGameInput{Ingredients: []string{"cheese", "bacon", "pickle"}})
	s.Require().NoError(err)

	sess := out.Session
	s.Equal("game_1", sess.ID)
	s.Equal(rpg.StartingLocation, sess.State.CurrentLocation)
	s.Equal(rpg.StartingHP, sess.State.HP)
	s.Equal(rpg.StartingAtk+5, sess.State.Stats.Atk)
	s.Equal(rpg.StartingDef+5, sess.State.Stats.Def)
	s.Len(sess.State.IngredientBonuses, 3)
	s.Equal(s.clock.Now().Add(time.Hour), sess.ExpiresAt)

	got, err := svc.GetGame(s.ctx, &game.GetGameInput{SessionID: sess.ID})
	s.Require().NoError(err)
	s.Equal(sess.State, got.Session.State)

	s.Equal([]string{game.EventGameStarted}, s.eventTypes())
	s.Equal(sess.ID, s.lastEvent().sourceID)
}

func (s *OrchestratorTestSuite) TestGetGameErrors() {
	svc := s.newOrchestrator(random.Fixed(0))

	_, err := svc.GetGame(s.ctx, &game.GetGameInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = svc.GetGame(s.ctx, &game.GetGameInput{SessionID: "game_missing"})
	s.True(errors.IsNotFound(err))

	_, err = svc.GetGame(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestTravel() {
	testCases := []struct {
		name        string
		state       *rpg.State
		destination string
		wantSuccess bool
		wantMessage string
		wantAt      string
	}{
		{
			name:        "connected location",
			state:       builders.NewStateBuilder().Build(),
			destination: "back_alley",
			wantSuccess: true,
			wantMessage: "You travel to the Back Alley.",
			wantAt:      "back_alley",
		},
		{
			name:        "not connected",
			state:       builders.NewStateBuilder().Build(),
			destination: "sewer_grate",
			wantMessage: "You can't reach the Sewer Grate from here.",
			wantAt:      rpg.StartingLocation,
		},
		{
			name:        "boss gate closed",
			state:       builders.NewStateBuilder().WithLocation("sewer_grate").Build(),
			destination: "diner_kitchen",
			wantMessage: "The way to the Diner Kitchen is blocked. Defeat the Rat King first.",
			wantAt:      "sewer_grate",
		},
		{
			name:        "boss gate open",
			state:       builders.NewStateBuilder().WithLocation("sewer_grate").WithDefeatedBoss("rat_king").Build(),
			destination: "diner_kitchen",
			wantSuccess: true,
			wantMessage: "You travel to the Diner Kitchen.",
			wantAt:      "diner_kitchen",
		},
		{
			name:        "already there",
			state:       builders.NewStateBuilder().Build(),
			destination: rpg.StartingLocation,
			wantMessage: "You are already at the Garbage Can.",
			wantAt:      rpg.StartingLocation,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.seed(tc.state)
			svc := s.newOrchestrator(random.Fixed(0))

			out, err := svc.Travel(s.ctx, &game.TravelInput{SessionID: seededSessionID, LocationID: tc.destination})
			s.Require().NoError(err)

			s.Equal(tc.wantSuccess, out.Success)
			s.Equal(tc.wantMessage, out.Message)
			s.Equal(tc.destination, out.Location.ID)
			s.Equal(tc.wantAt, s.stored().State.CurrentLocation)
			if tc.wantSuccess {
				s.True(out.Session.State.HasVisited(tc.destination))
				s.Equal([]string{game.EventTraveled}, s.eventTypes())
			} else {
				s.Empty(s.eventTypes())
			}
		})
	}
}

func (s *OrchestratorTestSuite) TestTravelRecordsCheckpointsAndRestocks() {
	state := builders.NewStateBuilder().WithLocation("sewer_grate").Build()
	state.ShopPurchases = map[string]map[string]int{"overgrown_garden": {"mustard_packet": 3, "butter_knife": 1}}
	s.seed(state)
	svc := s.newOrchestrator(random.Fixed(0))

	_, err := svc.Travel(s.ctx, &game.TravelInput{SessionID: seededSessionID, LocationID: "back_alley"})
	s.Require().NoError(err)
	out, err := svc.Travel(s.ctx, &game.TravelInput{SessionID: seededSessionID, LocationID: "overgrown_garden"})
	s.Require().NoError(err)

	next := out.Session.State
	s.Equal([]string{rpg.StartingLocation, "back_alley", "overgrown_garden"}, next.Checkpoints)
	s.Zero(next.Purchased("overgrown_garden", "mustard_packet"))
	s.Equal(1, next.Purchased("overgrown_garden", "butter_knife"))
}

func (s *OrchestratorTestSuite) TestTravelErrors() {
	s.seed(builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).Build())
	svc := s.newOrchestrator(random.Fixed(0))

	_, err := svc.Travel(s.ctx, &game.TravelInput{SessionID: seededSessionID})
	s.True(errors.IsInvalidArgument(err))

	_, err = svc.Travel(s.ctx, &game.TravelInput{SessionID: seededSessionID, LocationID: "back_alley"})
	s.True(errors.IsFailedPrecondition(err))

	_, err = svc.Travel(s.ctx, &game.TravelInput{SessionID: "game_missing", LocationID: "back_alley"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestTravelUnknownLocation() {
	s.seed(builders.NewStateBuilder().Build())
	svc := s.newOrchestrator(random.Fixed(0))

	_, err := svc.Travel(s.ctx, &game.TravelInput{SessionID: seededSessionID, LocationID: "moon_base"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestExplore() {
	s.seed(builders.NewStateBuilder().Build())
	svc := s.newOrchestrator(random.Fixed(0))

	out, err := svc.Explore(s.ctx, &game.ExploreInput{SessionID: seededSessionID})
	s.Require().NoError(err)

	s.Require().NotNil(out.Enemy)
	s.Equal(testutils.EnemyAnt, out.Enemy.ID)
	s.Equal("A wild Ant Soldier appears!", out.Message)
	s.True(s.stored().State.InCombat)

	e := s.lastEvent()
	s.Equal(game.EventCombatStarted, e.eventType)
	s.Equal(testutils.EnemyAnt, e.data[game.KeyEnemyID])

	_, err = svc.Explore(s.ctx, &game.ExploreInput{SessionID: seededSessionID})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestStartBattle() {
	testCases := []struct {
		name        string
		state       *rpg.State
		enemyID     string
		wantSuccess bool
		wantEnemy   string
		wantMessage string
	}{
		{
			name:        "location boss",
			state:       builders.NewStateBuilder().WithLocation("sewer_grate").Build(),
			wantSuccess: true,
			wantEnemy:   testutils.EnemyRatKing,
			wantMessage: "The Rat King blocks your path!",
		},
		{
			name:        "enemy from the pool",
			state:       builders.NewStateBuilder().WithLocation("sewer_grate").Build(),
			enemyID:     testutils.EnemyRatMinion,
			wantSuccess: true,
			wantEnemy:   testutils.EnemyRatMinion,
			wantMessage: "The Rat Minion blocks your path!",
		},
		{
			name:        "no boss here",
			state:       builders.NewStateBuilder().Build(),
			wantMessage: "There is no boss here.",
		},
		{
			name:        "boss already defeated",
			state:       builders.NewStateBuilder().WithLocation("sewer_grate").WithDefeatedBoss("rat_king").Build(),
			wantMessage: "You have already defeated the Rat King.",
		},
		{
			name:        "enemy from elsewhere",
			state:       builders.NewStateBuilder().Build(),
			enemyID:     testutils.EnemyRatKing,
			wantMessage: "The Rat King does not roam the Garbage Can.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.seed(tc.state)
			svc := s.newOrchestrator(random.Fixed(0))

			out, err := svc.StartBattle(s.ctx, &game.StartBattleInput{SessionID: seededSessionID, EnemyID: tc.enemyID})
			s.Require().NoError(err)

			s.Equal(tc.wantSuccess, out.Success)
			s.Equal(tc.wantMessage, out.Message)
			s.Equal(tc.wantSuccess, s.stored().State.InCombat)
			if tc.wantSuccess {
				s.Equal(tc.wantEnemy, out.Enemy.ID)
				s.Equal(out.Enemy.MaxHP, out.Enemy.HP)
			} else {
				s.Nil(out.Enemy)
			}
		})
	}
}

func (s *OrchestratorTestSuite) TestStartBattleUnknownEnemy() {
	s.seed(builders.NewStateBuilder().Build())
	svc := s.newOrchestrator(random.Fixed(0))

	_, err := svc.StartBattle(s.ctx, &game.StartBattleInput{SessionID: seededSessionID, EnemyID: "dragon"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestTakeTurnVictory() {
	s.seed(builders.NewStateBuilder().WithXP(95).InCombatWith(testutils.CreateTestEnemy(1, 6, 1)).Build())
	svc := s.newOrchestrator(random.Fixed(0))

	out, err := svc.TakeTurn(s.ctx, &game.TakeTurnInput{SessionID: seededSessionID, Action: rpg.ActionAttack})
	s.Require().NoError(err)

	s.Equal(rpg.OutcomeVictory, out.Outcome)
	s.Equal("Test Grub", out.EnemyName)
	s.Require().NotNil(out.Rewards)
	s.Equal(10, out.Rewards.XPGained)
	s.Equal(1, out.Rewards.CurrencyGained)
	s.True(out.Rewards.LeveledUp)
	s.False(out.Respawned)

	stored := s.stored()
	s.False(stored.State.InCombat)
	s.Equal(2, stored.State.Level)
	s.Equal(1, stored.State.Currency)
	s.Equal(out.Actions, stored.LastLog)

	s.Equal([]string{game.EventCombatVictory, game.EventLevelUp}, s.eventTypes())
	s.Equal(2, s.lastEvent().data[game.KeyLevel])
}

func (s *OrchestratorTestSuite) TestTakeTurnBossVictory() {
	svc := s.newOrchestrator(random.Fixed(0))
	s.seed(builders.NewStateBuilder().WithLocation("sewer_grate").Build())
	_, err := svc.StartBattle(s.ctx, &game.StartBattleInput{SessionID: seededSessionID})
	s.Require().NoError(err)

	sess := s.stored()
	sess.State.CurrentEnemy.HP = 1
	_, err = s.repo.Update(s.ctx, session.UpdateInput{Session: sess})
	s.Require().NoError(err)

	out, err := svc.TakeTurn(s.ctx, &game.TakeTurnInput{SessionID: seededSessionID, Action: rpg.ActionAttack})
	s.Require().NoError(err)

	s.Equal(rpg.OutcomeVictory, out.Outcome)
	s.Equal(testutils.EnemyRatKing, out.Rewards.BossDefeated)
	s.True(s.stored().State.HasDefeatedBoss(testutils.EnemyRatKing))
	s.Contains(s.eventTypes(), game.EventBossDefeated)

	again, err := svc.StartBattle(s.ctx, &game.StartBattleInput{SessionID: seededSessionID})
	s.Require().NoError(err)
	s.False(again.Success)
}

func (s *OrchestratorTestSuite) TestTakeTurnDefeatRespawns() {
	state := builders.NewStateBuilder().
		WithHP(1, 50).
		WithCurrency(12).
		WithLocation("sewer_grate").
		InCombatWith(testutils.CreateTestEnemy(100, 50, 1)).
		Build()
	state.Checkpoints = append(state.Checkpoints, "back_alley")
	state.StatusEffects = rpg.StatusEffects{PoisonTurns: 2, PoisonDamage: 3}
	s.seed(state)
	svc := s.newOrchestrator(random.Fixed(0.99))

	out, err := svc.TakeTurn(s.ctx, &game.TakeTurnInput{SessionID: seededSessionID, Action: rpg.ActionFlee})
	s.Require().NoError(err)

	s.Equal(rpg.OutcomeDefeat, out.Outcome)
	s.True(out.Respawned)
	s.Nil(out.Rewards)

	next := s.stored().State
	s.False(next.InCombat)
	s.Equal("back_alley", next.CurrentLocation)
	s.Equal(50, next.HP)
	s.Equal(12, next.Currency)
	s.False(next.StatusEffects.Active())

	e := s.lastEvent()
	s.Equal(game.EventCombatDefeat, e.eventType)
	s.Equal("back_alley", e.data[game.KeyLocationID])
}

func (s *OrchestratorTestSuite) TestTakeTurnFlee() {
	s.seed(builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(20, 6, 1)).Build())
	svc := s.newOrchestrator(random.Fixed(0))

	out, err := svc.TakeTurn(s.ctx, &game.TakeTurnInput{SessionID: seededSessionID, Action: rpg.ActionFlee})
	s.Require().NoError(err)

	s.Equal(rpg.OutcomeFled, out.Outcome)
	s.False(s.stored().State.InCombat)
	s.Equal([]string{game.EventCombatFled}, s.eventTypes())
}

func (s *OrchestratorTestSuite) TestTakeTurnContinues() {
	s.seed(builders.NewStateBuilder().InCombatWith(testutils.CreateTestEnemy(100, 6, 1)).Build())
	svc := s.newOrchestrator(random.Fixed(0))

	out, err := svc.TakeTurn(s.ctx, &game.TakeTurnInput{SessionID: seededSessionID, Action: rpg.ActionDefend})
	s.Require().NoError(err)

	s.Equal(rpg.OutcomeContinue, out.Outcome)
	s.NotEmpty(out.Actions)
	s.True(s.stored().State.InCombat)
	s.Equal(out.Actions, s.stored().LastLog)
	s.Empty(s.eventTypes())
}

func (s *OrchestratorTestSuite) TestTakeTurnErrors() {
	s.seed(builders.NewStateBuilder().Build())
	svc := s.newOrchestrator(random.Fixed(0))

	_, err := svc.TakeTurn(s.ctx, &game.TakeTurnInput{SessionID: seededSessionID})
	s.True(errors.IsInvalidArgument(err))

	_, err = svc.TakeTurn(s.ctx, &game.TakeTurnInput{SessionID: seededSessionID, Action: rpg.ActionAttack})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestUseItem() {
	items := testutils.LoadItems(s.T())
	s.seed(builders.NewStateBuilder().WithHP(20, 50).WithItem(testutils.Item(s.T(), items, "ketchup_packet", 2)).Build())
	svc := s.newOrchestrator(random.Fixed(0))

	out, err := svc.UseItem(s.ctx, &game.UseItemInput{SessionID: seededSessionID, ItemID: "ketchup_packet"})
	s.Require().NoError(err)

	s.True(out.Success)
	s.Positive(out.HealAmount)
	s.Equal(20+out.HealAmount, s.stored().State.HP)
	s.Equal(1, s.stored().State.Quantity("ketchup_packet"))

	missing, err := svc.UseItem(s.ctx, &game.UseItemInput{SessionID: seededSessionID, ItemID: "hot_sauce"})
	s.Require().NoError(err)
	s.False(missing.Success)
	s.Equal("Item not found in inventory", missing.Message)
}

func (s *OrchestratorTestSuite) TestEquipAndUnequip() {
	items := testutils.LoadItems(s.T())
	s.seed(builders.NewStateBuilder().WithItem(testutils.Item(s.T(), items, "butter_knife", 1)).Build())
	svc := s.newOrchestrator(random.Fixed(0))

	equipped, err := svc.Equip(s.ctx, &game.EquipInput{SessionID: seededSessionID, ItemID: "butter_knife"})
	s.Require().NoError(err)
	s.True(equipped.Success)
	s.Equal("butter_knife", s.stored().State.Equipment.Weapon.ID)

	unequipped, err := svc.Unequip(s.ctx, &game.UnequipInput{SessionID: seededSessionID, Slot: rpg.SlotWeapon})
	s.Require().NoError(err)
	s.True(unequipped.Success)
	s.Equal(rpg.StartingWeaponID, s.stored().State.Equipment.Weapon.ID)

	_, err = svc.Equip(s.ctx, &game.EquipInput{SessionID: seededSessionID})
	s.True(errors.IsInvalidArgument(err))
	_, err = svc.Unequip(s.ctx, &game.UnequipInput{SessionID: seededSessionID})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestShop() {
	s.seed(builders.NewStateBuilder().WithLocation("back_alley").WithCurrency(20).Build())
	svc := s.newOrchestrator(random.Fixed(0))

	listed, err := svc.ListShop(s.ctx, &game.ListShopInput{SessionID: seededSessionID})
	s.Require().NoError(err)
	s.True(listed.HasShop)
	s.Equal("back_alley", listed.LocationID)
	s.Len(listed.Listings, 6)
	s.Empty(listed.Sellable)

	bought, err := svc.Buy(s.ctx, &game.BuyInput{SessionID: seededSessionID, ItemID: "crumb"})
	s.Require().NoError(err)
	s.True(bought.Success)
	s.Equal(15, s.stored().State.Currency)

	e := s.lastEvent()
	s.Equal(game.EventItemPurchased, e.eventType)
	s.Equal("crumb", e.data[game.KeyItemID])
	s.Equal(15, e.data[game.KeyCurrency])

	sold, err := svc.Sell(s.ctx, &game.SellInput{SessionID: seededSessionID, ItemID: "crumb"})
	s.Require().NoError(err)
	s.True(sold.Success)
	s.Equal(17, s.stored().State.Currency)
	s.Equal(game.EventItemSold, s.lastEvent().eventType)

	refused, err := svc.Buy(s.ctx, &game.BuyInput{SessionID: seededSessionID, ItemID: "butter_knife"})
	s.Require().NoError(err)
	s.False(refused.Success)
	s.Equal(17, s.stored().State.Currency)
}

func (s *OrchestratorTestSuite) TestShopMissing() {
	s.seed(builders.NewStateBuilder().WithLocation("sewer_grate").WithCurrency(20).Build())
	svc := s.newOrchestrator(random.Fixed(0))

	listed, err := svc.ListShop(s.ctx, &game.ListShopInput{SessionID: seededSessionID})
	s.Require().NoError(err)
	s.False(listed.HasShop)
	s.Nil(listed.Listings)

	bought, err := svc.Buy(s.ctx, &game.BuyInput{SessionID: seededSessionID, ItemID: "crumb"})
	s.Require().NoError(err)
	s.False(bought.Success)
	s.Equal("There is no shop here.", bought.Message)

	sold, err := svc.Sell(s.ctx, &game.SellInput{SessionID: seededSessionID, ItemID: "crumb"})
	s.Require().NoError(err)
	s.False(sold.Success)
}

func (s *OrchestratorTestSuite) TestRestart() {
	svc := s.newOrchestrator(random.Fixed(0))
	created, err := svc.NewGame(s.ctx, &game.NewGameInput{Ingredients: []string{"tomato", "onion"}})
	s.Require().NoError(err)
	id := created.Session.ID

	_, err = svc.Travel(s.ctx, &game.TravelInput{SessionID: id, LocationID: "back_alley"})
	s.Require().NoError(err)
	_, err = svc.Explore(s.ctx, &game.ExploreInput{SessionID: id})
	s.Require().NoError(err)

	out, err := svc.Restart(s.ctx, &game.RestartInput{SessionID: id})
	s.Require().NoError(err)

	s.Equal(id, out.Session.ID)
	s.Equal(created.Session.State, out.Session.State)
	s.False(out.Session.State.InCombat)
	s.Nil(out.Session.LastLog)
	s.Equal(game.EventGameRestarted, s.lastEvent().eventType)
}
