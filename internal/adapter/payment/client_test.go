package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "key", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "key", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCreateSessionReturnsRedirectURL(t *testing.T) {
	var captured createSessionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing api key header, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(sessionResponse{
			ID:            "cs_123",
			URL:           "https://pay.example/cs_123",
			PaymentStatus: "unpaid",
			Metadata:      captured.Metadata,
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "key", testLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	session, err := client.CreateSession(context.Background(), SessionRequest{
		Title:      "denim jacket",
		UnitPrice:  42.5,
		Quantity:   2,
		SuccessURL: "https://shop.example/paid",
		CancelURL:  "https://shop.example/cancel",
		Metadata: model.CheckoutMetadata{
			ProductID:  9,
			BuyerEmail: "buyer@example.com",
			Quantity:   2,
			UnitPrice:  42.5,
		},
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.ID != "cs_123" || session.URL != "https://pay.example/cs_123" {
		t.Fatalf("unexpected session %+v", session)
	}
	if len(captured.LineItems) != 1 || captured.LineItems[0].Name != "denim jacket" {
		t.Fatalf("unexpected line items %+v", captured.LineItems)
	}
	if captured.Metadata.BuyerEmail != "buyer@example.com" || captured.Metadata.ProductID != 9 {
		t.Fatalf("metadata not forwarded: %+v", captured.Metadata)
	}
}

func TestRetrieveSessionDecodesMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/cs_42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sessionResponse{
			ID:            "cs_42",
			PaymentStatus: "paid",
			AmountTotal:   85,
			Metadata: sessionMetadata{
				ProductID:  9,
				BuyerEmail: "buyer@example.com",
				Quantity:   2,
				UnitPrice:  42.5,
			},
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "", testLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	session, err := client.RetrieveSession(context.Background(), "cs_42")
	if err != nil {
		t.Fatalf("retrieve session: %v", err)
	}
	if !session.Paid() {
		t.Fatal("expected paid session")
	}
	if session.Metadata.ProductID != 9 || session.Metadata.Quantity != 2 {
		t.Fatalf("unexpected metadata %+v", session.Metadata)
	}
}

func TestRetrieveSessionNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, "", testLogger())
	if _, err := client.RetrieveSession(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRetrieveSessionRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, "", testLogger())
	_, err := client.RetrieveSession(context.Background(), "cs_1")
	var tooMany TooManyRequestsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("expected TooManyRequestsError, got %v", err)
	}
	if tooMany.RetryAfter != 7*time.Second {
		t.Fatalf("unexpected retry-after %s", tooMany.RetryAfter)
	}
}

func TestRetrieveSessionServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, "", testLogger())
	if _, err := client.RetrieveSession(context.Background(), "cs_1"); !errors.Is(err, domainErrors.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d := parseRetryAfter(""); d != 5*time.Second {
		t.Fatalf("expected default 5s, got %s", d)
	}
	if d := parseRetryAfter("12"); d != 12*time.Second {
		t.Fatalf("expected 12s, got %s", d)
	}
	if d := parseRetryAfter("garbage"); d != 5*time.Second {
		t.Fatalf("expected default for garbage, got %s", d)
	}
}
