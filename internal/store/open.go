package store

import (
	"fmt"

	"github.com/mmcdole/tablemap/internal/config"
	"github.com/mmcdole/tablemap/internal/domain"
)

// Open builds the store selected by cfg.Cache.Driver.
func Open(cfg *config.Config) (domain.KeyValueStore, error) {
	switch cfg.Cache.Driver {
	case config.DriverBolt, "":
		return NewBoltStore(config.ExpandHome(cfg.Cache.Path), cfg.API.URL)
	case config.DriverMemory:
		return NewBoltStore("", "")
	case config.DriverRedis:
		return DialRedis(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
	default:
		return nil, fmt.Errorf("unknown cache driver: %s", cfg.Cache.Driver)
	}
}
