package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so repositories can accept either a
// real connection or a miniredis-backed one in tests
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of a missing key
const Nil = redis.Nil
