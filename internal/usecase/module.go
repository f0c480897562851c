package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/threadcart/garmentshop/internal/adapter/events"
	"github.com/threadcart/garmentshop/internal/adapter/payment"
	"github.com/threadcart/garmentshop/internal/config"
	"github.com/threadcart/garmentshop/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewOrderUseCase,
	newCheckoutUseCase,
	NewTrackingUseCase,
)

type checkoutParams struct {
	fx.In

	Users     repository.UserRepository
	Catalog   *CatalogUseCase
	Orders    repository.OrderRepository
	Trackings repository.TrackingRepository
	Sessions  repository.SessionRepository
	Gateway   payment.Gateway
	Publisher events.Publisher
	Config    *config.Config
	Logger    *slog.Logger
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	urls := CheckoutURLs{
		Success: p.Config.CheckoutSuccessURL,
		Cancel:  p.Config.CheckoutCancelURL,
	}
	return NewCheckoutUseCase(p.Users, p.Catalog, p.Orders, p.Trackings, p.Sessions, p.Gateway, p.Publisher, urls, p.Logger)
}
