package main

import (
	"context"
	"fmt"
	"io"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/bun-dungeon/internal/orchestrators/game"
)

// subscribeToasts prints one-line notices for milestone events
func subscribeToasts(bus events.EventBus, out io.Writer) {
	toast := func(format string, key string) events.HandlerFunc {
		return func(_ context.Context, e events.Event) error {
			v, _ := e.Context().Get(key)
			_, err := fmt.Fprintf(out, "\n★ "+format+"\n", v)
			return err
		}
	}

	bus.SubscribeFunc(game.EventLevelUp, 0, toast("Reached level %v!", game.KeyLevel))
	bus.SubscribeFunc(game.EventBossDefeated, 0, toast("Boss defeated: %v", game.KeyEnemyID))
	bus.SubscribeFunc(game.EventItemPurchased, 0, toast("%v Crumbs left.", game.KeyCurrency))
}
