package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/bun-dungeon/internal/config"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/orchestrators/game"
	"github.com/KirkDiggler/bun-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/bun-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/bun-dungeon/internal/random"
	"github.com/KirkDiggler/bun-dungeon/internal/redis"
	"github.com/KirkDiggler/bun-dungeon/internal/repositories/session"
)

// app is everything a command needs to run the game
type app struct {
	data    *gamedata.Data
	service game.Service
	bus     events.EventBus
	cleanup func()
}

// loadData loads the embedded tables. Loading cross-checks their references.
func loadData() (*gamedata.Data, error) {
	data, err := gamedata.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load game data")
	}
	return data, nil
}

func newRandom(c *config.Config) random.Source {
	if c.Seed != 0 {
		slog.Debug("Using seeded random source", "seed", c.Seed)
		return random.NewSeeded(c.Seed)
	}
	return random.NewDiceSource(nil)
}

func newRepository(ctx context.Context, c *config.Config) (session.Repository, func(), error) {
	if !c.UseRedis() {
		slog.Debug("Keeping sessions in memory")
		return session.NewInMemory(clock.New()), func() {}, nil
	}

	client, err := redis.NewClient(c.RedisAddr, nil)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}
	if err := redis.Ping(ctx, client); err != nil {
		cleanup()
		return nil, nil, err
	}

	repo, err := session.NewRedisRepository(&session.Config{Client: client, Clock: clock.New()})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	slog.Info("Using Redis session storage", "addr", c.RedisAddr)
	return repo, cleanup, nil
}

// newApp wires the game orchestrator from configuration
func newApp(ctx context.Context, c *config.Config) (*app, error) {
	data, err := loadData()
	if err != nil {
		return nil, err
	}

	repo, cleanup, err := newRepository(ctx, c)
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	svc, err := game.NewOrchestrator(&game.Config{
		Data:        data,
		Random:      newRandom(c),
		Repository:  repo,
		IDGenerator: idgen.NewUUID("game"),
		EventBus:    bus,
		SessionTTL:  c.SessionTTL,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	return &app{data: data, service: svc, bus: bus, cleanup: cleanup}, nil
}
