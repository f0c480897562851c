package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/domain/model"
	pkgAuth "github.com/threadcart/garmentshop/internal/pkg/auth"
	"github.com/threadcart/garmentshop/internal/test"
)

func newAuthUseCaseForTest(users *test.UserRepositoryStub) *AuthUseCase {
	return NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{
		IssueFn: func(id int64) (string, error) { return "token-for-user", nil },
	})
}

func TestAuthRegisterSuccess(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCaseForTest(users)

	usr, token, err := uc.Register(context.Background(), " Buyer@Shop.Dev ", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.Email != "buyer@shop.dev" {
		t.Fatalf("email must be normalized, got %s", usr.Email)
	}
	if usr.Role != model.RoleBuyer {
		t.Fatalf("new accounts must be buyers, got %s", usr.Role)
	}
	if usr.PasswordHash != "hash:secret" {
		t.Fatalf("password must be hashed, got %s", usr.PasswordHash)
	}
	if token != "token-for-user" {
		t.Fatalf("unexpected token %s", token)
	}
}

func TestAuthRegisterRejectsBadInput(t *testing.T) {
	uc := newAuthUseCaseForTest(test.NewUserRepositoryStub())

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret"},
		{"no at sign", "buyer.shop.dev", "secret"},
		{"empty password", "buyer@shop.dev", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := uc.Register(context.Background(), tc.email, tc.password); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
				t.Fatalf("expected invalid credentials, got %v", err)
			}
		})
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCaseForTest(users)

	if _, _, err := uc.Register(context.Background(), "buyer@shop.dev", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "buyer@shop.dev", "other"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestAuthAuthenticateSuccess(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCaseForTest(users)
	if _, _, err := uc.Register(context.Background(), "buyer@shop.dev", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usr, token, err := uc.Authenticate(context.Background(), "buyer@shop.dev", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.Email != "buyer@shop.dev" || token == "" {
		t.Fatalf("unexpected result: %s %s", usr.Email, token)
	}
}

func TestAuthAuthenticateWrongPassword(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCaseForTest(users)
	if _, _, err := uc.Register(context.Background(), "buyer@shop.dev", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := uc.Authenticate(context.Background(), "buyer@shop.dev", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthAuthenticateUnknownEmail(t *testing.T) {
	uc := newAuthUseCaseForTest(test.NewUserRepositoryStub())

	if _, _, err := uc.Authenticate(context.Background(), "ghost@shop.dev", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthParseTokenEmpty(t *testing.T) {
	uc := newAuthUseCaseForTest(test.NewUserRepositoryStub())

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestAuthSetUserStatus(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCaseForTest(users)
	usr := users.Add(&model.User{Email: "buyer@shop.dev", Status: model.UserStatusActive})

	if err := uc.SetUserStatus(context.Background(), usr.ID, model.UserStatusSuspended); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.Status != model.UserStatusSuspended {
		t.Fatalf("expected suspended, got %s", usr.Status)
	}

	if err := uc.SetUserStatus(context.Background(), 404, model.UserStatusActive); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
