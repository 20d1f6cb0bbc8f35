package config

import (
	"log"

	"github.com/redis/rueidis"
)

// NewRedisClient connects without client-side caching; the limiter only issues
// INCR and PEXPIRE.
func NewRedisClient(addr string) rueidis.Client {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress:  []string{addr},
			DisableCache: true,
		},
	)
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}

	return redisClient
}
