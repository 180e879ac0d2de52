package domain

import (
	"math"
	"strings"
	"time"
)

const (
	DefaultCountry  = "United States"
	DefaultCurrency = "USD"
)

// RatesStatus - откуда взята текущая таблица курсов.
type RatesStatus string

const (
	RatesFresh       RatesStatus = "fresh"
	RatesCached      RatesStatus = "cached"
	RatesUnavailable RatesStatus = "unavailable"
)

// ExchangeRateTable - множители относительно USD по ISO-коду валюты.
type ExchangeRateTable map[string]float64

// Rate возвращает множитель для кода; для неизвестного кода множитель 1.
func (t ExchangeRateTable) Rate(code string) float64 {
	rate, ok := t[strings.ToUpper(code)]
	if !ok || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 1
	}
	return rate
}

// Convert переводит цену в USD в валюту code с округлением до 2 знаков.
func (t ExchangeRateTable) Convert(priceUSD float64, code string) float64 {
	return RoundPrice(priceUSD * t.Rate(code))
}

// MaxRoundedPrice - выше этой суммы float64 уже не хранит центы, округлять нечего.
const MaxRoundedPrice = 1e15

// RoundPrice округляет до центов. Большие и неконечные значения возвращаются как есть,
// иначе v*100 переполняется в +Inf.
func RoundPrice(v float64) float64 {
	if math.IsNaN(v) || math.Abs(v) >= MaxRoundedPrice {
		return v
	}
	return math.Round(v*100) / 100
}

// CurrencySelection - выбранные посетителем страна и валюта.
type CurrencySelection struct {
	Country  string
	Currency string
}

// DefaultCurrencySelection - выбор при первом запуске.
func DefaultCurrencySelection() CurrencySelection {
	return CurrencySelection{Country: DefaultCountry, Currency: DefaultCurrency}
}

// Conversion - результат пересчета цены для показа.
type Conversion struct {
	AmountUSD   float64
	Amount      float64
	Currency    string
	Display     string
	RatesStatus RatesStatus
}

// CachedRates - таблица курсов в хранилище. Возраст не проверяется: при сбое загрузки
// используется любой сохраненный кэш.
type CachedRates struct {
	Base      string            `json:"base"`
	Rates     ExchangeRateTable `json:"rates"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// RatesView - текущая таблица курсов для показа.
type RatesView struct {
	Base      string
	Rates     ExchangeRateTable
	Status    RatesStatus
	FetchedAt time.Time
}
