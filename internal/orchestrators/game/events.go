package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types published on the bus after a change is saved
const (
	EventGameStarted   = "game.started"
	EventGameRestarted = "game.restarted"
	EventTraveled      = "player.traveled"
	EventLevelUp       = "player.level_up"
	EventCombatStarted = "combat.started"
	EventCombatVictory = "combat.victory"
	EventCombatDefeat  = "combat.defeat"
	EventCombatFled    = "combat.fled"
	EventBossDefeated  = "boss.defeated"
	EventItemPurchased = "shop.purchased"
	EventItemSold      = "shop.sold"
)

// Event context keys
const (
	KeyLocationID = "location_id"
	KeyEnemyID    = "enemy_id"
	KeyItemID     = "item_id"
	KeyLevel      = "level"
	KeyXP         = "xp"
	KeyCurrency   = "currency"
)

// Entity types
const (
	EntityTypePlayer = "player"
	EntityTypeEnemy  = "enemy"
)

// gameEntity implements core.Entity for event sources and targets
type gameEntity struct {
	id         string
	entityType string
}

func (e *gameEntity) GetID() string {
	return e.id
}

func (e *gameEntity) GetType() string {
	return e.entityType
}

func player(sessionID string) core.Entity {
	return &gameEntity{id: sessionID, entityType: EntityTypePlayer}
}

func enemy(enemyID string) core.Entity {
	return &gameEntity{id: enemyID, entityType: EntityTypeEnemy}
}

// publish sends an event. Handlers cannot undo a saved change, so a failed
// publish is logged and dropped.
func (o *orchestrator) publish(ctx context.Context, eventType string, source, target core.Entity, data map[string]any) {
	event := events.NewGameEvent(eventType, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}
	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish event", "event_type", eventType, "source_id", source.GetID(), "error", err)
	}
}
