package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/domain/model"
)

// TooManyRequestsError represents a rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// SessionRequest describes a checkout session to create. Metadata is echoed
// back on retrieval and is the only correlation channel to purchase intent.
type SessionRequest struct {
	Title      string
	UnitPrice  float64
	Quantity   int
	SuccessURL string
	CancelURL  string
	Metadata   model.CheckoutMetadata
}

// Gateway exposes operations against the hosted checkout service.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*model.CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
}

// HTTPClient implements Gateway via the gateway's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type sessionMetadata struct {
	ProductID  int64   `json:"product_id,string"`
	BuyerEmail string  `json:"buyer_email"`
	Quantity   int     `json:"quantity,string"`
	UnitPrice  float64 `json:"unit_price,string"`
}

type createSessionRequest struct {
	LineItems  []lineItem      `json:"line_items"`
	SuccessURL string          `json:"success_url"`
	CancelURL  string          `json:"cancel_url"`
	Metadata   sessionMetadata `json:"metadata"`
}

type lineItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type sessionResponse struct {
	ID            string          `json:"id"`
	URL           string          `json:"url"`
	PaymentStatus string          `json:"payment_status"`
	AmountTotal   float64         `json:"amount_total"`
	Metadata      sessionMetadata `json:"metadata"`
}

// NewHTTPClient creates a gateway client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateSession creates a hosted checkout session and returns its redirect URL.
func (c *HTTPClient) CreateSession(ctx context.Context, req SessionRequest) (*model.CheckoutSession, error) {
	payload := createSessionRequest{
		LineItems: []lineItem{{
			Name:      req.Title,
			UnitPrice: req.UnitPrice,
			Quantity:  req.Quantity,
		}},
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Metadata: sessionMetadata{
			ProductID:  req.Metadata.ProductID,
			BuyerEmail: req.Metadata.BuyerEmail,
			Quantity:   req.Metadata.Quantity,
			UnitPrice:  req.Metadata.UnitPrice,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return c.decodeSession(resp.Body)
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		return nil, c.unexpected(resp)
	}
}

// RetrieveSession fetches payment status and metadata for a session.
func (c *HTTPClient) RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	resp, err := c.do(ctx, http.MethodGet, path.Join("/v1/checkout/sessions", sessionID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return c.decodeSession(resp.Body)
	case http.StatusNotFound:
		return nil, domainErrors.ErrNotFound
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		return nil, c.unexpected(resp)
	}
}

func (c *HTTPClient) do(ctx context.Context, method, endpointPath string, body io.Reader) (*http.Response, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrUpstreamUnavailable, err)
	}
	return resp, nil
}

func (c *HTTPClient) decodeSession(r io.Reader) (*model.CheckoutSession, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var data sessionResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return &model.CheckoutSession{
		ID:            data.ID,
		URL:           data.URL,
		PaymentStatus: model.PaymentStatus(data.PaymentStatus),
		AmountTotal:   data.AmountTotal,
		Metadata: model.CheckoutMetadata{
			ProductID:  data.Metadata.ProductID,
			BuyerEmail: data.Metadata.BuyerEmail,
			Quantity:   data.Metadata.Quantity,
			UnitPrice:  data.Metadata.UnitPrice,
		},
	}, nil
}

func (c *HTTPClient) unexpected(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	c.logger.Error("gateway request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
	return fmt.Errorf("%w: gateway returned %s", domainErrors.ErrUpstreamUnavailable, resp.Status)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
