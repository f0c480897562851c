package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/domain/model"
	"github.com/threadcart/garmentshop/internal/test"
)

func TestCatalogGetPrefersCache(t *testing.T) {
	products := test.NewProductRepositoryStub()
	productCache := test.NewProductCacheStub()
	productCache.Items[7] = &model.Product{ID: 7, Title: "cached hat"}
	uc := NewCatalogUseCase(products, productCache)

	product, err := uc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Title != "cached hat" {
		t.Fatalf("expected cached product, got %s", product.Title)
	}
}

func TestCatalogGetFillsCacheOnMiss(t *testing.T) {
	products := test.NewProductRepositoryStub()
	seeded := products.Add(&model.Product{Title: "silk tie", Price: 25})
	productCache := test.NewProductCacheStub()
	uc := NewCatalogUseCase(products, productCache)

	product, err := uc.Get(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Title != "silk tie" {
		t.Fatalf("unexpected product %s", product.Title)
	}
	if len(productCache.Sets) != 1 || productCache.Sets[0] != seeded.ID {
		t.Fatalf("cache must be filled on miss, got %+v", productCache.Sets)
	}
}

func TestCatalogGetMissingProduct(t *testing.T) {
	uc := NewCatalogUseCase(test.NewProductRepositoryStub(), test.NewProductCacheStub())

	if _, err := uc.Get(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogRemoveInvalidatesCache(t *testing.T) {
	products := test.NewProductRepositoryStub()
	seeded := products.Add(&model.Product{Title: "belt", Price: 12})
	productCache := test.NewProductCacheStub()
	productCache.Items[seeded.ID] = seeded
	uc := NewCatalogUseCase(products, productCache)

	if err := uc.Remove(context.Background(), seeded.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(productCache.Invalidated) != 1 || productCache.Invalidated[0] != seeded.ID {
		t.Fatalf("cache entry must be invalidated, got %+v", productCache.Invalidated)
	}
}

func TestCatalogMarkPaid(t *testing.T) {
	products := test.NewProductRepositoryStub()
	seeded := products.Add(&model.Product{Title: "gloves", Price: 18, PaymentStatus: model.PaymentStatusUnpaid})
	productCache := test.NewProductCacheStub()
	uc := NewCatalogUseCase(products, productCache)

	if err := uc.MarkPaid(context.Background(), seeded.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seeded.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("expected paid flag, got %s", seeded.PaymentStatus)
	}
	if len(productCache.Invalidated) != 1 {
		t.Fatalf("stale cache entry must be dropped")
	}
}
