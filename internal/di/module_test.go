package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/threadcart/garmentshop/internal/adapter/events"
	"github.com/threadcart/garmentshop/internal/adapter/payment"
	"github.com/threadcart/garmentshop/internal/app"
	"github.com/threadcart/garmentshop/internal/cache"
	"github.com/threadcart/garmentshop/internal/config"
	"github.com/threadcart/garmentshop/internal/domain/model"
	"github.com/threadcart/garmentshop/internal/domain/repository"
	"github.com/threadcart/garmentshop/internal/storage/postgres"
	"github.com/threadcart/garmentshop/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:           ":0",
		DatabaseURI:          "postgres://stub",
		GatewayAddress:       "http://localhost",
		TokenSecret:          "secret",
		SessionSweepInterval: time.Millisecond,
		SessionSweepAge:      time.Millisecond,
		SweepBatchSize:       1,
		WorkerPoolSize:       1,
		ShutdownTimeout:      time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	productRepo := test.NewProductRepositoryStub()
	orderRepo := &test.OrderRepositoryStub{}
	trackingRepo := &test.TrackingRepositoryStub{}
	sessionRepo := &test.SessionRepositoryStub{}
	gateway := &test.GatewayStub{Sessions: make(map[string]*model.CheckoutSession)}
	publisher := &test.PublisherStub{}

	var facade *app.CommerceFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.ProductRepository(productRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.TrackingRepository(trackingRepo)),
			fx.Replace(repository.SessionRepository(sessionRepo)),
			fx.Replace(payment.Gateway(gateway)),
			fx.Replace(events.Publisher(publisher)),
			fx.Replace(cache.ProductCache(test.NewProductCacheStub())),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected commerce facade instance")
	}
}
