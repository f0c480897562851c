package events

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/threadcart/garmentshop/internal/config"
)

// Module provides the event publisher, dropping events when kafka is
// not configured.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	if len(p.Config.KafkaBrokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.OrderEventsTopic, p.Logger)
}
