package exchange_rate_client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental-bff/internal/contracts"
	"rental-bff/internal/core/domain"
)

func TestFetchRates_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"USD":1,"eur":0.92,"XXX":0}}`))
	}))
	defer srv.Close()

	table, err := NewClient(srv.URL, time.Second).FetchRates(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if table["EUR"] != 0.92 || table["USD"] != 1 {
		t.Errorf("unexpected table %v", table)
	}
	if _, ok := table["XXX"]; ok {
		t.Error("zero rate must be dropped")
	}
}

func TestFetchRates_Failures(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"server error":   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
		"bad json":       func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`<html>`)) },
		"empty table":    func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"rates":{}}`)) },
		"no valid codes": func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"rates":{"BTC-X":1,"":2,"US":3}}`)) },
	}
	for name, handler := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()
			if _, err := NewClient(srv.URL, time.Second).FetchRates(context.Background()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFetchRates_DropsCodesTheCacheSchemaRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"USD":1,"EUR":0.92,"BTC-X":0.00001,"usdt":1,"X1Y":2," gbp ":0.79}}`))
	}))
	defer srv.Close()

	table, err := NewClient(srv.URL, time.Second).FetchRates(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"USD": 1, "EUR": 0.92, "GBP": 0.79}
	if len(table) != len(want) {
		t.Fatalf("table = %v, want %v", table, want)
	}
	for code, rate := range want {
		if table[code] != rate {
			t.Errorf("%s = %v, want %v", code, table[code], rate)
		}
	}

	cached, err := json.Marshal(domain.CachedRates{Base: "USD", Rates: table, FetchedAt: time.Now().UTC()})
	if err != nil {
		t.Fatal(err)
	}
	if err := contracts.ValidateStoredValue(domain.KeyExchangeRates, cached); err != nil {
		t.Errorf("filtered table must pass the cache schema: %v", err)
	}
}
