package domain

// Тела ответов бэкенда после маппинга из DTO. Каждое несет success/message.

type PropertiesPage struct {
	BackendStatus
	Properties []Property
}

type PropertyDetails struct {
	BackendStatus
	Property *Property
}

type HostDetails struct {
	BackendStatus
	Host *Host
}

type EventsPage struct {
	BackendStatus
	Events []Event
}

type ProfileDetails struct {
	BackendStatus
	Profile *Profile
}

type WishlistsPage struct {
	BackendStatus
	Wishlists WishlistCollection
}

type WishlistDetails struct {
	BackendStatus
	Wishlist *Wishlist
}

type BookingsPage struct {
	BackendStatus
	Bookings []Booking
}

type BookingDetails struct {
	BackendStatus
	Booking *Booking
}
