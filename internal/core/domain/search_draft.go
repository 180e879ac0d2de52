package domain

import (
	"strings"
	"time"

	"github.com/mmcloughlin/geohash"
)

// GeohashPrecision - 5 символов, ячейка около 5x5 км.
const GeohashPrecision = 5

// EncodeGeohash кодирует координаты с точностью GeohashPrecision.
func EncodeGeohash(lat, lng float64) string {
	return geohash.EncodeWithPrecision(lat, lng, GeohashPrecision)
}

// SearchLocation - выбранное место поиска.
type SearchLocation struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Geohash   string   `json:"geohash,omitempty"`
}

// SearchDates - выбранный диапазон дат.
type SearchDates struct {
	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
}

// GuestCount - состав гостей.
type GuestCount struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
	Pets     int `json:"pets"`
}

// Total - гости, которые учитываются во вместимости (без младенцев и животных).
func (g GuestCount) Total() int {
	return g.Adults + g.Children
}

// SearchDraft - незавершенный поиск, переживающий перезагрузку страницы.
type SearchDraft struct {
	Location SearchLocation `json:"location"`
	Dates    SearchDates    `json:"dates"`
	Guests   GuestCount     `json:"guests"`
}

// DefaultGuestCount - один взрослый.
func DefaultGuestCount() GuestCount {
	return GuestCount{Adults: 1}
}

// Normalize проверяет черновик и вычисляет geohash по координатам.
func (d *SearchDraft) Normalize() error {
	d.Location.Name = strings.TrimSpace(d.Location.Name)

	if (d.Location.Latitude == nil) != (d.Location.Longitude == nil) {
		return ErrInvalidSearchDraft
	}
	d.Location.Geohash = ""
	if d.Location.Latitude != nil {
		lat, lng := *d.Location.Latitude, *d.Location.Longitude
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return ErrInvalidSearchDraft
		}
		d.Location.Geohash = EncodeGeohash(lat, lng)
	}

	if d.Dates.CheckIn != nil && d.Dates.CheckOut != nil && !d.Dates.CheckOut.After(*d.Dates.CheckIn) {
		return ErrInvalidSearchDraft
	}

	g := d.Guests
	if g.Adults < 1 || g.Children < 0 || g.Infants < 0 || g.Pets < 0 {
		return ErrInvalidSearchDraft
	}
	return nil
}
