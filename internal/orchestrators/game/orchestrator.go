// Package game implements the game orchestrator: it loads a session, runs one
// engine operation on its state, saves the result and publishes what happened.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/bun-dungeon/internal/orchestrators/game Service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/bun-dungeon/internal/abilities"
	"github.com/KirkDiggler/bun-dungeon/internal/combat"
	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/inventory"
	"github.com/KirkDiggler/bun-dungeon/internal/itemdb"
	"github.com/KirkDiggler/bun-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
	"github.com/KirkDiggler/bun-dungeon/internal/repositories/session"
	"github.com/KirkDiggler/bun-dungeon/internal/rpgstate"
	"github.com/KirkDiggler/bun-dungeon/internal/shop"
)

// Service defines the interface for game operations
type Service interface {
	// NewGame creates a session at the starting location
	NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error)

	// GetGame loads a session
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// Travel moves to a connected location, restocking its shop
	Travel(ctx context.Context, input *TravelInput) (*TravelOutput, error)

	// Explore starts a fight with a random enemy from the location
	Explore(ctx context.Context, input *ExploreInput) (*ExploreOutput, error)

	// StartBattle starts a fight with a named enemy or the location boss
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// TakeTurn resolves one combat round and settles the fight when it ends
	TakeTurn(ctx context.Context, input *TakeTurnInput) (*TakeTurnOutput, error)

	// UseItem uses a consumable outside combat
	UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error)

	// Equip moves an item from the bag into its slot
	Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error)

	// Unequip empties a slot back into the bag
	Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error)

	// ListShop lists the current location's shop
	ListShop(ctx context.Context, input *ListShopInput) (*ListShopOutput, error)

	// Buy buys one unit at the current location's shop
	Buy(ctx context.Context, input *BuyInput) (*BuyOutput, error)

	// Sell sells one unit at the current location's shop
	Sell(ctx context.Context, input *SellInput) (*SellOutput, error)

	// Restart resets the session to a fresh state with the same ingredients
	Restart(ctx context.Context, input *RestartInput) (*RestartOutput, error)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	Data        *gamedata.Data
	Random      random.Source
	Repository  session.Repository
	IDGenerator idgen.Generator
	EventBus    events.EventBus
	// SessionTTL defaults to session.DefaultTTL
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Data == nil {
		vb.RequiredField("Data")
	}
	if c.Random == nil {
		vb.RequiredField("Random")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.SessionTTL < 0 {
		vb.InvalidField("SessionTTL", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	repo     session.Repository
	idGen    idgen.Generator
	eventBus events.EventBus
	ttl      time.Duration

	rng       random.Source
	data      *gamedata.Data
	bestiary  *gamedata.Bestiary
	inventory *inventory.Manager
	states    *rpgstate.Manager
	combat    *combat.Processor
	shop      *shop.Processor

	// mu serializes load-modify-save cycles and draws from rng
	mu sync.Mutex
}

// NewOrchestrator creates a new game orchestrator and the engine behind it
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	items := itemdb.FromTables(cfg.Data.Items)
	if err := items.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to load item database")
	}
	inv, err := inventory.New(&inventory.Config{Items: items})
	if err != nil {
		return nil, err
	}
	specials, err := abilities.New(&abilities.Config{Random: cfg.Random})
	if err != nil {
		return nil, err
	}
	bestiary := gamedata.NewBestiary(cfg.Data.Enemies)
	combatProcessor, err := combat.New(&combat.Config{
		Inventory: inv,
		Abilities: specials,
		Bestiary:  bestiary,
		Random:    cfg.Random,
	})
	if err != nil {
		return nil, err
	}
	states, err := rpgstate.New(&rpgstate.Config{Data: cfg.Data, Inventory: inv})
	if err != nil {
		return nil, err
	}
	shops, err := shop.New(&shop.Config{Data: cfg.Data, Inventory: inv})
	if err != nil {
		return nil, err
	}

	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = session.DefaultTTL
	}

	return &orchestrator{
		repo:      cfg.Repository,
		idGen:     cfg.IDGenerator,
		eventBus:  cfg.EventBus,
		ttl:       ttl,
		rng:       cfg.Random,
		data:      cfg.Data,
		bestiary:  bestiary,
		inventory: inv,
		states:    states,
		combat:    combatProcessor,
		shop:      shops,
	}, nil
}

// NewGame creates a session at the starting location
func (o *orchestrator) NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.states.CreateInitialState(input.Ingredients)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create initial state")
	}

	sessionID := o.idGen.Generate()
	out, err := o.repo.Create(ctx, session.CreateInput{ID: sessionID, State: state, TTL: o.ttl})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create game")
	}

	slog.Info("Game created",
		"session_id", sessionID,
		"ingredients", input.Ingredients,
		"max_hp", state.MaxHP,
	)
	o.publish(ctx, EventGameStarted, player(sessionID), nil, map[string]any{
		KeyLocationID: state.CurrentLocation,
	})

	return &NewGameOutput{Session: out.Session}, nil
}

// GetGame loads a session
func (o *orchestrator) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sess, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{Session: sess}, nil
}

// Travel moves to a connected location, restocking its shop
func (o *orchestrator) Travel(ctx context.Context, input *TravelInput) (*TravelOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.LocationID == "" {
		return nil, errors.InvalidArgument("location ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, err := o.loadIdle(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	state := sess.State

	dest, ok := o.data.Location(input.LocationID)
	if !ok {
		return nil, errors.NotFoundf("location %s not found", input.LocationID).
			WithMeta("location_id", input.LocationID)
	}

	refuse := func(message string) (*TravelOutput, error) {
		return &TravelOutput{Session: sess, Location: dest, Message: message}, nil
	}
	if dest.ID == state.CurrentLocation {
		return refuse(fmt.Sprintf("You are already at the %s.", dest.Name))
	}
	if here, _ := o.data.Location(state.CurrentLocation); !here.ConnectsTo(dest.ID) {
		return refuse(fmt.Sprintf("You can't reach the %s from here.", dest.Name))
	}
	if dest.RequiresBoss != "" && !state.HasDefeatedBoss(dest.RequiresBoss) {
		return refuse(fmt.Sprintf("The way to the %s is blocked. Defeat the %s first.",
			dest.Name, o.enemyName(dest.RequiresBoss)))
	}

	next := rpgstate.ChangeLocation(state, dest.ID)
	if dest.Checkpoint {
		next = rpgstate.AddCheckpoint(next, dest.ID)
	}
	next = o.shop.Restock(next, dest.ID)

	saved, err := o.save(ctx, sess, next, nil)
	if err != nil {
		return nil, err
	}

	slog.Info("Player traveled",
		"session_id", sess.ID,
		"from", state.CurrentLocation,
		"to", dest.ID,
	)
	o.publish(ctx, EventTraveled, player(sess.ID), nil, map[string]any{KeyLocationID: dest.ID})

	return &TravelOutput{
		Session:  saved,
		Location: dest,
		Success:  true,
		Message:  fmt.Sprintf("You travel to the %s.", dest.Name),
	}, nil
}

// Explore starts a fight with a random enemy from the location
func (o *orchestrator) Explore(ctx context.Context, input *ExploreInput) (*ExploreOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, err := o.loadIdle(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	loc, _ := o.data.Location(sess.State.CurrentLocation)
	spawned, ok := o.bestiary.RandomEncounter(loc, o.rng)
	if !ok {
		return &ExploreOutput{Session: sess, Message: "Nothing stirs here."}, nil
	}

	saved, err := o.startCombat(ctx, sess, combat.StartCombat(sess.State, spawned))
	if err != nil {
		return nil, err
	}

	return &ExploreOutput{
		Session: saved,
		Enemy:   saved.State.CurrentEnemy,
		Message: fmt.Sprintf("A wild %s appears!", spawned.Name),
	}, nil
}

// StartBattle starts a fight with a named enemy or the location boss
func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, err := o.loadIdle(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	state := sess.State
	loc, _ := o.data.Location(state.CurrentLocation)

	refuse := func(message string) (*StartBattleOutput, error) {
		return &StartBattleOutput{Session: sess, Message: message}, nil
	}

	enemyID := input.EnemyID
	switch {
	case enemyID == "" && loc.Boss == "":
		return refuse("There is no boss here.")
	case enemyID == "":
		enemyID = loc.Boss
	case enemyID != loc.Boss && !slices.Contains(loc.Encounters, enemyID):
		if _, ok := o.bestiary.Template(enemyID); !ok {
			return nil, errors.NotFoundf("enemy %s not found", enemyID).WithMeta("enemy_id", enemyID)
		}
		return refuse(fmt.Sprintf("The %s does not roam the %s.", o.enemyName(enemyID), loc.Name))
	}
	if enemyID == loc.Boss && state.HasDefeatedBoss(enemyID) {
		return refuse(fmt.Sprintf("You have already defeated the %s.", o.enemyName(enemyID)))
	}

	next, err := o.combat.StartCombatByID(state, enemyID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start battle")
	}

	saved, err := o.startCombat(ctx, sess, next)
	if err != nil {
		return nil, err
	}

	return &StartBattleOutput{
		Session: saved,
		Enemy:   saved.State.CurrentEnemy,
		Success: true,
		Message: fmt.Sprintf("The %s blocks your path!", saved.State.CurrentEnemy.Name),
	}, nil
}

func (o *orchestrator) startCombat(ctx context.Context, sess *session.Session, next *rpg.State) (*session.Session, error) {
	saved, err := o.save(ctx, sess, next, nil)
	if err != nil {
		return nil, err
	}

	e := next.CurrentEnemy
	slog.Info("Combat started",
		"session_id", sess.ID,
		"enemy_id", e.ID,
		"boss", e.IsBoss,
		"location_id", next.CurrentLocation,
	)
	o.publish(ctx, EventCombatStarted, player(sess.ID), enemy(e.ID), map[string]any{
		KeyEnemyID:    e.ID,
		KeyLocationID: next.CurrentLocation,
	})

	return saved, nil
}

// TakeTurn resolves one combat round and settles the fight when it ends
func (o *orchestrator) TakeTurn(ctx context.Context, input *TakeTurnInput) (*TakeTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Action == "" {
		return nil, errors.InvalidArgument("action is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	state := sess.State
	if !state.InCombat || state.CurrentEnemy == nil {
		return nil, errors.FailedPrecondition("no battle in progress").WithMeta("session_id", sess.ID)
	}
	foe := state.CurrentEnemy

	result, err := o.combat.ProcessTurn(&combat.TurnInput{
		State:    state,
		Action:   input.Action,
		TargetID: input.TargetID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to process turn")
	}

	out := &TakeTurnOutput{
		EnemyName: foe.Name,
		Actions:   result.Actions,
		Outcome:   result.Outcome,
	}
	next := result.State

	switch result.Outcome {
	case rpg.OutcomeVictory:
		rewards, err := o.combat.EndCombat(next, true)
		if err != nil {
			return nil, errors.Wrap(err, "failed to settle victory")
		}
		next = rewards.State
		out.Rewards = rewards
	case rpg.OutcomeDefeat:
		ended, err := o.combat.EndCombat(next, false)
		if err != nil {
			return nil, errors.Wrap(err, "failed to settle defeat")
		}
		next = rpgstate.Respawn(ended.State)
		out.Respawned = true
	}

	saved, err := o.save(ctx, sess, next, result.Actions)
	if err != nil {
		return nil, err
	}
	out.Session = saved

	if result.Outcome.Ended() {
		slog.Info("Combat ended",
			"session_id", sess.ID,
			"enemy_id", foe.ID,
			"outcome", string(result.Outcome),
		)
	}
	o.publishOutcome(ctx, sess.ID, foe.ID, out)

	return out, nil
}

func (o *orchestrator) publishOutcome(ctx context.Context, sessionID, enemyID string, out *TakeTurnOutput) {
	source, target := player(sessionID), enemy(enemyID)

	switch out.Outcome {
	case rpg.OutcomeVictory:
		r := out.Rewards
		o.publish(ctx, EventCombatVictory, source, target, map[string]any{
			KeyEnemyID:  enemyID,
			KeyXP:       r.XPGained,
			KeyCurrency: r.CurrencyGained,
		})
		if r.LeveledUp {
			o.publish(ctx, EventLevelUp, source, nil, map[string]any{KeyLevel: r.NewLevel})
		}
		if r.BossDefeated != "" {
			o.publish(ctx, EventBossDefeated, source, target, map[string]any{KeyEnemyID: r.BossDefeated})
		}
	case rpg.OutcomeDefeat:
		o.publish(ctx, EventCombatDefeat, source, target, map[string]any{
			KeyEnemyID:    enemyID,
			KeyLocationID: out.Session.State.CurrentLocation,
		})
	case rpg.OutcomeFled:
		o.publish(ctx, EventCombatFled, source, target, map[string]any{KeyEnemyID: enemyID})
	}
}

// UseItem uses a consumable outside combat
func (o *orchestrator) UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, err := o.loadIdle(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	result := o.inventory.UseConsumable(sess.State, input.ItemID)
	out := &UseItemOutput{Session: sess, Success: result.Success, Message: result.Message, HealAmount: result.HealAmount}
	if !result.Success {
		return out, nil
	}

	if out.Session, err = o.save(ctx, sess, result.State, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// Equip moves an item from the bag into its slot
func (o *orchestrator) Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, err := o.loadIdle(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	result, err := o.inventory.Equip(sess.State, input.ItemID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to equip item")
	}
	out := &EquipOutput{Session: sess, Success: result.Success, Message: result.Message}
	if !result.Success {
		return out, nil
	}

	if out.Session, err = o.save(ctx, sess, result.State, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// Unequip empties a slot back into the bag
func (o *orchestrator) Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Slot == "" {
		return nil, errors.InvalidArgument("slot is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, err := o.loadIdle(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	result, err := o.inventory.Unequip(sess.State, input.Slot)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unequip item")
	}
	out := &UnequipOutput{Session: sess, Success: result.Success, Message: result.Message}
	if !result.Success {
		return out, nil
	}

	if out.Session, err = o.save(ctx, sess, result.State, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// ListShop lists the current location's shop
func (o *orchestrator) ListShop(ctx context.Context, input *ListShopInput) (*ListShopOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sess, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	locationID := sess.State.CurrentLocation
	out := &ListShopOutput{Session: sess, LocationID: locationID}
	if !o.shop.HasShop(locationID) {
		return out, nil
	}

	out.HasShop = true
	out.Listings = o.shop.List(sess.State, locationID)
	out.Sellable = o.shop.SellableItems(sess.State)
	return out, nil
}

// Buy buys one unit at the current location's shop
func (o *orchestrator) Buy(ctx context.Context, input *BuyInput) (*BuyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, err := o.loadIdle(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	locationID := sess.State.CurrentLocation
	if !o.shop.HasShop(locationID) {
		return &BuyOutput{Session: sess, Message: "There is no shop here."}, nil
	}

	result := o.shop.Buy(sess.State, input.ItemID, locationID)
	out := &BuyOutput{Session: sess, Success: result.Success, Message: result.Message}
	if !result.Success {
		return out, nil
	}

	if out.Session, err = o.save(ctx, sess, result.State, nil); err != nil {
		return nil, err
	}
	o.publish(ctx, EventItemPurchased, player(sess.ID), nil, map[string]any{
		KeyItemID:     input.ItemID,
		KeyLocationID: locationID,
		KeyCurrency:   result.State.Currency,
	})
	return out, nil
}

// Sell sells one unit at the current location's shop
func (o *orchestrator) Sell(ctx context.Context, input *SellInput) (*SellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, err := o.loadIdle(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	locationID := sess.State.CurrentLocation
	if !o.shop.HasShop(locationID) {
		return &SellOutput{Session: sess, Message: "There is no shop here."}, nil
	}

	result := o.shop.Sell(sess.State, input.ItemID)
	out := &SellOutput{Session: sess, Success: result.Success, Message: result.Message}
	if !result.Success {
		return out, nil
	}

	if out.Session, err = o.save(ctx, sess, result.State, nil); err != nil {
		return nil, err
	}
	o.publish(ctx, EventItemSold, player(sess.ID), nil, map[string]any{
		KeyItemID:     input.ItemID,
		KeyLocationID: locationID,
		KeyCurrency:   result.State.Currency,
	})
	return out, nil
}

// Restart resets the session to a fresh state with the same ingredients
func (o *orchestrator) Restart(ctx context.Context, input *RestartInput) (*RestartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	ingredients := make([]string, 0, len(sess.State.IngredientBonuses))
	for id := range sess.State.IngredientBonuses {
		ingredients = append(ingredients, id)
	}
	slices.Sort(ingredients)

	state, err := o.states.CreateInitialState(ingredients)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create initial state")
	}

	saved, err := o.save(ctx, sess, state, nil)
	if err != nil {
		return nil, err
	}

	slog.Info("Game restarted", "session_id", sess.ID)
	o.publish(ctx, EventGameRestarted, player(sess.ID), nil, map[string]any{
		KeyLocationID: state.CurrentLocation,
	})

	return &RestartOutput{Session: saved}, nil
}

func (o *orchestrator) load(ctx context.Context, sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.repo.Get(ctx, session.GetInput{ID: sessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load game")
	}

	return out.Session, nil
}

// loadIdle loads a session that must not be mid-fight
func (o *orchestrator) loadIdle(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := o.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State.InCombat {
		return nil, errors.FailedPrecondition("not available during battle").WithMeta("session_id", sessionID)
	}
	return sess, nil
}

func (o *orchestrator) save(ctx context.Context, sess *session.Session, state *rpg.State, log []rpg.CombatAction) (*session.Session, error) {
	next := *sess
	next.State = state
	next.LastLog = log

	out, err := o.repo.Update(ctx, session.UpdateInput{Session: &next, TTL: o.ttl})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save game")
	}

	return out.Session, nil
}

func (o *orchestrator) enemyName(enemyID string) string {
	if t, ok := o.bestiary.Template(enemyID); ok {
		return t.Name
	}
	return enemyID
}
