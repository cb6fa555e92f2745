// Package bootstrap wires the runtime dependencies (database, cache) for commands.
package bootstrap

import (
	"fmt"

	"rolodex/internal/cache"
	"rolodex/internal/config"
	"rolodex/internal/database"
	"rolodex/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
// The Redis client may come back nil when the cache is unreachable; every
// consumer treats that as a degraded but working mode.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seed.NewSeeder(db).Run(seed.Options{NumUsers: 10, ContactsPerUser: 20}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
