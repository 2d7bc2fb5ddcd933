package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the go-redis client surface used by the session repository
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of missing keys
const Nil = redis.Nil
