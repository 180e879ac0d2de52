package exchange_rate_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"
)

// DefaultURL - публичный сервис курсов относительно USD.
const DefaultURL = "https://api.exchangerate-api.com/v4/latest/USD"

// Client получает таблицу курсов у стороннего сервиса.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// currencyCode совпадает с propertyNames схемы сохраненных курсов.
var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates - одна попытка без повторов. Коды приводятся к верхнему регистру;
// неположительные курсы и коды не из трех латинских букв отбрасываются.
func (c *Client) FetchRates(ctx context.Context) (domain.ExchangeRateTable, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ExchangeRateClient",
		"method":    "FetchRates",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	clientLogger.Debug("Fetching exchange rates.", port.Fields{"url": c.url})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Failed to fetch exchange rates", err, nil)
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("exchange rate service returned non-200 status: %d, body: %s", resp.StatusCode, string(body))
		clientLogger.Error("Received non-OK response from exchange rate service", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		clientLogger.Error("Failed to decode exchange rates", err, nil)
		return nil, fmt.Errorf("failed to decode exchange rates: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("exchange rate service returned an empty table")
	}

	table := make(domain.ExchangeRateTable, len(payload.Rates))
	dropped := 0
	for code, rate := range payload.Rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		if rate <= 0 || !currencyCode.MatchString(code) {
			dropped++
			continue
		}
		table[code] = rate
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("exchange rate service returned no usable rates")
	}
	if dropped > 0 {
		clientLogger.Warn("Dropped malformed exchange rates", port.Fields{"dropped": dropped})
	}
	clientLogger.Info("Exchange rates fetched.", port.Fields{"currencies": len(table), "base": payload.Base})
	return table, nil
}
