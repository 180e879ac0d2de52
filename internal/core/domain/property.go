package domain

import (
	"sort"
	"strings"
	"time"
)

// Property - карточка объекта размещения, как ее отдает бэкенд.
// Клиент ее не изменяет: только показывает, фильтрует и сортирует локальную копию.
type Property struct {
	ID        string
	HostID    string
	Title     string
	Images    []string
	PriceUSD  float64 // за ночь, базовая валюта USD
	Location  Location
	Bedrooms  int
	Bathrooms int
	MaxGuests int
	Amenities []string
	Policies  Policies
	Reviews   []Review
	Rating    float64
	CreatedAt time.Time
}

type Location struct {
	Address   string
	City      string
	Country   string
	Latitude  float64
	Longitude float64
}

// HasCoordinates - у бэкенда координаты необязательны, нули считаем отсутствием.
func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

type Policies struct {
	CheckInTime  string
	CheckOutTime string
	Cancellation string
	HouseRules   []string
}

type Review struct {
	ID        string
	Author    string
	Rating    float64
	Comment   string
	CreatedAt time.Time
}

// Host - публичный профиль хозяина.
type Host struct {
	ID           string
	Name         string
	AvatarURL    string
	Bio          string
	Superhost    bool
	ResponseRate float64
	JoinedAt     time.Time
}

// Event - мероприятие из ленты событий.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	ImageURL    string
	StartsAt    time.Time
}

// Варианты сортировки локальной копии списка.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortGuests    = "guests"
)

// PropertyQuery - параметры выдачи. Цены в фильтре задаются в USD.
type PropertyQuery struct {
	Location  string
	MinPrice  float64
	MaxPrice  float64
	Guests    int
	Bedrooms  int
	Amenities []string
	Sort      string
	// NearDraft - оставить только объекты рядом с локацией из черновика поиска.
	NearDraft bool
}

// HasServerFilters - нужно ли идти в filter-эндпоинт вместо обычного списка.
func (q PropertyQuery) HasServerFilters() bool {
	return strings.TrimSpace(q.Location) != "" || q.MinPrice > 0 || q.MaxPrice > 0 ||
		q.Guests > 0 || q.Bedrooms > 0 || len(q.Amenities) > 0
}

// IsValidSort проверяет ключ сортировки; пустой ключ означает порядок бэкенда.
func IsValidSort(key string) bool {
	switch key {
	case "", SortPriceAsc, SortPriceDesc, SortRating, SortGuests:
		return true
	}
	return false
}

// SortProperties сортирует срез на месте, сохраняя порядок равных элементов.
func SortProperties(properties []Property, key string) {
	var less func(a, b Property) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b Property) bool { return a.PriceUSD < b.PriceUSD }
	case SortPriceDesc:
		less = func(a, b Property) bool { return a.PriceUSD > b.PriceUSD }
	case SortRating:
		less = func(a, b Property) bool { return a.Rating > b.Rating }
	case SortGuests:
		less = func(a, b Property) bool { return a.MaxGuests > b.MaxGuests }
	default:
		return
	}
	sort.SliceStable(properties, func(i, j int) bool { return less(properties[i], properties[j]) })
}

// FilterNear оставляет объекты, чей geohash начинается с prefix.
// Объекты без координат отбрасываются.
func FilterNear(properties []Property, prefix string) []Property {
	if prefix == "" {
		return properties
	}
	result := make([]Property, 0, len(properties))
	for _, p := range properties {
		if !p.Location.HasCoordinates() {
			continue
		}
		if strings.HasPrefix(EncodeGeohash(p.Location.Latitude, p.Location.Longitude), prefix) {
			result = append(result, p)
		}
	}
	return result
}

// NearbyGeohashLength - длина префикса geohash для фильтра "рядом с местом поиска" (ячейка ~40x20 км).
const NearbyGeohashLength = 4

// PricedProperty - объект с ценой в валюте посетителя.
type PricedProperty struct {
	Property
	Price Conversion
}

// PropertyListing - выдача с пересчитанными ценами.
type PropertyListing struct {
	Properties  []PricedProperty
	Currency    string
	RatesStatus RatesStatus
}
