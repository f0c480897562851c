package di

import (
	"go.uber.org/fx"

	"github.com/threadcart/garmentshop/internal/adapter/events"
	"github.com/threadcart/garmentshop/internal/adapter/payment"
	"github.com/threadcart/garmentshop/internal/app"
	"github.com/threadcart/garmentshop/internal/cache"
	"github.com/threadcart/garmentshop/internal/config"
	"github.com/threadcart/garmentshop/internal/logger"
	"github.com/threadcart/garmentshop/internal/pkg/auth"
	"github.com/threadcart/garmentshop/internal/server/http/handlers"
	"github.com/threadcart/garmentshop/internal/server/http/router"
	"github.com/threadcart/garmentshop/internal/storage/postgres"
	"github.com/threadcart/garmentshop/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		payment.Module,
		events.Module,
		usecase.Module,
		fx.Provide(
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.CommerceFacade) handlers.CommerceFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
