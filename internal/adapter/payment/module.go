package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/threadcart/garmentshop/internal/config"
)

// Module exposes the gateway client implementation to the fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (Gateway, error) {
	return NewHTTPClient(p.Config.GatewayAddress, p.Config.GatewayAPIKey, p.Logger)
}
