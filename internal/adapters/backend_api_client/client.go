package backend_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"
	"rental-bff/pkg/keyedlock"

	"github.com/google/uuid"
)

// DefaultTimeout - таймаут одного запроса к бэкенду.
const DefaultTimeout = 10 * time.Second

// Client - типизированный клиент PHP-бэкенда маркетплейса.
// Cookie бэкенд-сессии хранятся отдельно для каждого посетителя в клиентском хранилище.
type Client struct {
	baseURL    string
	httpClient *http.Client
	storage    port.ClientStoragePort

	// слияние Set-Cookie параллельных ответов одного посетителя
	cookieLocks *keyedlock.Mutex[uuid.UUID]
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config, storage port.ClientStoragePort) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if storage == nil {
		return nil, fmt.Errorf("client storage cannot be nil")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		storage:     storage,
		cookieLocks: keyedlock.New[uuid.UUID](),
	}, nil
}

// do выполняет запрос и декодирует тело в out. Возвращает HTTP-статус.
// Ошибка - при сбое транспорта, не-2xx статусе или невалидном JSON.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, payload, out any) (int, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "BackendAPIClient",
		"method":    operation,
	})

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			clientLogger.Error("Failed to marshal request body", err, nil)
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	visitorID := contextkeys.VisitorIDFromContext(ctx)
	for _, ck := range c.loadCookies(ctx, visitorID) {
		req.AddCookie(ck.toHTTP())
	}

	clientLogger.Debug("Sending request to backend.", port.Fields{"url": fullURL, "http_method": method})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Failed to perform request to backend", err, port.Fields{"url": fullURL})
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.storeCookies(ctx, visitorID, resp.Cookies())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		clientLogger.Error("Failed to read backend response", err, port.Fields{"url": fullURL})
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &domain.HTTPStatusError{
			Method:     method,
			URL:        fullURL,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 512),
			Message:    extractMessage(respBody),
		}
		clientLogger.Error("Received non-success response from backend", statusErr, port.Fields{"status_code": resp.StatusCode})
		return resp.StatusCode, statusErr
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			clientLogger.Error("Failed to decode backend response", err, port.Fields{"url": fullURL})
			return resp.StatusCode, fmt.Errorf("failed to decode response from backend: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func extractMessage(body []byte) string {
	var status struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return ""
	}
	if status.Message != "" {
		return status.Message
	}
	return status.Error
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// storedCookie - cookie бэкенда в хранилище посетителя.
type storedCookie struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Path    string `json:"path,omitempty"`
	Expires string `json:"expires,omitempty"`
}

func (s storedCookie) toHTTP() *http.Cookie {
	return &http.Cookie{Name: s.Name, Value: s.Value}
}

func (s storedCookie) expired(now time.Time) bool {
	if s.Expires == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, s.Expires)
	return err == nil && !t.After(now)
}

func (c *Client) loadCookies(ctx context.Context, visitorID uuid.UUID) []storedCookie {
	if visitorID == uuid.Nil {
		return nil
	}
	raw, found, err := c.storage.Get(ctx, domain.VisitorNamespace(visitorID), domain.KeyBackendSession)
	if err != nil || !found {
		return nil
	}
	var cookies []storedCookie
	if err := json.Unmarshal([]byte(raw), &cookies); err != nil {
		return nil
	}
	now := time.Now()
	active := cookies[:0]
	for _, ck := range cookies {
		if !ck.expired(now) {
			active = append(active, ck)
		}
	}
	return active
}

// storeCookies сливает Set-Cookie ответа с сохраненными cookie посетителя.
// Cookie с MaxAge<0 или истекшим Expires удаляются.
func (c *Client) storeCookies(ctx context.Context, visitorID uuid.UUID, received []*http.Cookie) {
	if visitorID == uuid.Nil || len(received) == 0 {
		return
	}
	unlock := c.cookieLocks.Lock(visitorID)
	defer unlock()

	now := time.Now()
	current := c.loadCookies(ctx, visitorID)
	byName := make(map[string]int, len(current))
	for i, ck := range current {
		byName[ck.Name] = i
	}

	for _, rc := range received {
		removed := rc.MaxAge < 0 || (!rc.Expires.IsZero() && !rc.Expires.After(now))
		idx, exists := byName[rc.Name]
		if removed {
			if exists {
				current[idx].Name = ""
			}
			continue
		}
		sc := storedCookie{Name: rc.Name, Value: rc.Value, Path: rc.Path}
		if rc.MaxAge > 0 {
			sc.Expires = now.Add(time.Duration(rc.MaxAge) * time.Second).UTC().Format(time.RFC3339)
		} else if !rc.Expires.IsZero() {
			sc.Expires = rc.Expires.UTC().Format(time.RFC3339)
		}
		if exists {
			current[idx] = sc
		} else {
			byName[rc.Name] = len(current)
			current = append(current, sc)
		}
	}

	kept := make([]storedCookie, 0, len(current))
	for _, ck := range current {
		if ck.Name != "" {
			kept = append(kept, ck)
		}
	}
	raw, err := json.Marshal(kept)
	if err != nil {
		return
	}
	if err := c.storage.Set(ctx, domain.VisitorNamespace(visitorID), domain.KeyBackendSession, string(raw)); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to persist backend session cookies", port.Fields{
			"component": "BackendAPIClient",
			"error":     err.Error(),
		})
	}
}

// ClearSession забывает cookie бэкенд-сессии текущего посетителя.
func (c *Client) ClearSession(ctx context.Context) error {
	visitorID := contextkeys.VisitorIDFromContext(ctx)
	if visitorID == uuid.Nil {
		return nil
	}
	unlock := c.cookieLocks.Lock(visitorID)
	defer unlock()

	if err := c.storage.Delete(ctx, domain.VisitorNamespace(visitorID), domain.KeyBackendSession); err != nil {
		return fmt.Errorf("failed to clear backend session: %w", err)
	}
	return nil
}
