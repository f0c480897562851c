package cache

import (
	"go.uber.org/fx"

	"github.com/threadcart/garmentshop/internal/config"
)

// Module provides the product cache, falling back to a no-op when redis
// is not configured.
var Module = fx.Provide(newProductCache)

type cacheParams struct {
	fx.In

	Config *config.Config
}

func newProductCache(p cacheParams) ProductCache {
	if p.Config.RedisAddr == "" {
		return NopProductCache{}
	}
	return NewRedisProductCache(p.Config.RedisAddr)
}
