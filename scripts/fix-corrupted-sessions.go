package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/repositories/session"
)

// problem reports why a stored session cannot be played, or "" when it can
func problem(sess *session.Session, data *gamedata.Data) string {
	st := sess.State
	switch {
	case st == nil:
		return "state is missing"
	case st.MaxHP <= 0:
		return fmt.Sprintf("max hp is %d", st.MaxHP)
	case st.HP > st.MaxHP:
		return fmt.Sprintf("hp %d exceeds max hp %d", st.HP, st.MaxHP)
	case st.InCombat && st.CurrentEnemy == nil:
		return "in combat without an enemy"
	case !st.InCombat && st.StatusEffects.Active():
		return "status effects outside combat"
	}
	if _, ok := data.Location(st.CurrentLocation); !ok {
		return fmt.Sprintf("unknown location %q", st.CurrentLocation)
	}
	return ""
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	data, err := gamedata.Load()
	if err != nil {
		log.Fatal("Failed to load game data:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for corrupted sessions...")

	iter := client.Scan(ctx, 0, session.KeyPrefix+"*", 0).Iterator()

	var corruptedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		raw, err := client.Get(ctx, key).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var sess session.Session
		if err := json.Unmarshal(raw, &sess); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		if reason := problem(&sess, data); reason != "" {
			fmt.Printf("✗ Unplayable session in %s: %s\n", key, reason)
			corruptedKeys = append(corruptedKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d corrupted entries\n", checkedCount, len(corruptedKeys))

	if len(corruptedKeys) == 0 {
		fmt.Println("No corrupted sessions found!")
		return
	}

	fmt.Println("\nCorrupted keys:")
	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDo you want to DELETE these sessions? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response) // nolint:errcheck // empty input means no

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range corruptedKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}
