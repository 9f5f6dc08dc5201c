package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/repair-desk/models"
	"github.com/go-resty/resty/v2"
)

// HTTPClientConfig configures the HTTP/REST implementation of
// [ServerAdapter].
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL and configures
// the underlying client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg HTTPClientConfig) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) authorized(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+h.Token())
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, identity, secret string) (models.AuthResult, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"identity": identity, "secret": secret}).
		Post("/api/auth/login")
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResult{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	var result models.AuthResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return models.AuthResult{}, fmt.Errorf("login decode response: %w", err)
	}

	h.SetToken(token)
	return result, nil
}

// Logout implements [ServerAdapter].
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authorized(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

// CreateUser implements [ServerAdapter].
func (h *httpServerAdapter) CreateUser(ctx context.Context, identity, secret string) error {
	resp, err := h.authorized(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"identity": identity, "secret": secret}).
		Post("/api/users")
	if err != nil {
		return fmt.Errorf("create user request: %w", err)
	}
	return mapHTTPError(resp)
}

// Records implements [ServerAdapter].
func (h *httpServerAdapter) Records(ctx context.Context, filter models.FilterSpec, sortByPriority bool) (models.Table, error) {
	req := h.authorized(ctx)
	if filter.Status != "" {
		req.SetQueryParam("status", filter.Status)
	}
	if filter.ParentFleet != "" {
		req.SetQueryParam("fleet", filter.ParentFleet)
	}
	if filter.Priority != "" {
		req.SetQueryParam("priority", filter.Priority)
	}
	if sortByPriority {
		req.SetQueryParam("sort", "priority")
	}

	resp, err := req.Get("/api/records")
	if err != nil {
		return models.Table{}, fmt.Errorf("records request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Table{}, err
	}

	var table models.Table
	if err := json.Unmarshal(resp.Body(), &table); err != nil {
		return models.Table{}, fmt.Errorf("records decode response: %w", err)
	}

	return table, nil
}

// AddRecord implements [ServerAdapter].
func (h *httpServerAdapter) AddRecord(ctx context.Context, row models.Row) error {
	resp, err := h.authorized(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(row).
		Post("/api/records")
	if err != nil {
		return fmt.Errorf("add record request: %w", err)
	}
	return mapHTTPError(resp)
}

// UpdateRecord implements [ServerAdapter].
func (h *httpServerAdapter) UpdateRecord(ctx context.Context, id string, fields map[string]string) error {
	resp, err := h.authorized(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Put("/api/records/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("update record request: %w", err)
	}
	return mapHTTPError(resp)
}

// DeleteRecord implements [ServerAdapter].
func (h *httpServerAdapter) DeleteRecord(ctx context.Context, id string) error {
	resp, err := h.authorized(ctx).Delete("/api/records/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete record request: %w", err)
	}
	return mapHTTPError(resp)
}

// Export implements [ServerAdapter].
func (h *httpServerAdapter) Export(ctx context.Context) ([]byte, error) {
	resp, err := h.authorized(ctx).Get("/api/records/export")
	if err != nil {
		return nil, fmt.Errorf("export request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// Import implements [ServerAdapter]. The server detects the tabular format
// from filename.
func (h *httpServerAdapter) Import(ctx context.Context, filename string, data []byte) error {
	resp, err := h.authorized(ctx).
		SetFileReader("file", filename, strings.NewReader(string(data))).
		Post("/api/records/import")
	if err != nil {
		return fmt.Errorf("import request: %w", err)
	}
	return mapHTTPError(resp)
}

func parseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return parts[1], nil
}
