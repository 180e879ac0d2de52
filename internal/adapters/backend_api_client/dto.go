package backend_api_client

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"rental-bff/internal/core/domain"
)

// PHP-бэкенд отдает id и числа то строками, то числами, а даты в формате MySQL.
// Эти типы принимают оба варианта.

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var v flexFloat
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*f = flexInt(int(v))
	return nil
}

type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(data)), `"`) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

type flexTime time.Time

func (f *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" || strings.HasPrefix(s, "0000-00-00") {
		*f = flexTime(time.Time{})
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*f = flexTime(t.UTC())
			return nil
		}
	}
	*f = flexTime(time.Time{})
	return nil
}

func (f flexTime) Time() time.Time { return time.Time(f) }

// statusDTO - общая часть всех ответов.
type statusDTO struct {
	Success flexBool `json:"success"`
	Message string   `json:"message"`
}

func (s statusDTO) toDomain() domain.BackendStatus {
	return domain.BackendStatus{Success: bool(s.Success), Message: s.Message}
}

// --- properties ---

type locationDTO struct {
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Latitude  flexFloat `json:"latitude"`
	Longitude flexFloat `json:"longitude"`
}

type policiesDTO struct {
	CheckInTime  string   `json:"check_in_time"`
	CheckOutTime string   `json:"check_out_time"`
	Cancellation string   `json:"cancellation"`
	HouseRules   []string `json:"house_rules"`
}

type reviewDTO struct {
	ID        flexString `json:"id"`
	Author    string     `json:"author"`
	Rating    flexFloat  `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt flexTime   `json:"created_at"`
}

type propertyDTO struct {
	ID        flexString  `json:"id"`
	HostID    flexString  `json:"host_id"`
	Title     string      `json:"title"`
	Images    []string    `json:"images"`
	Price     flexFloat   `json:"price"`
	Location  locationDTO `json:"location"`
	Bedrooms  flexInt     `json:"bedrooms"`
	Bathrooms flexInt     `json:"bathrooms"`
	MaxGuests flexInt     `json:"max_guests"`
	Amenities []string    `json:"amenities"`
	Policies  policiesDTO `json:"policies"`
	Reviews   []reviewDTO `json:"reviews"`
	Rating    flexFloat   `json:"rating"`
	CreatedAt flexTime    `json:"created_at"`
}

func (p propertyDTO) toDomain() domain.Property {
	reviews := make([]domain.Review, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		reviews = append(reviews, domain.Review{
			ID:        string(r.ID),
			Author:    r.Author,
			Rating:    float64(r.Rating),
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Time(),
		})
	}
	return domain.Property{
		ID:     string(p.ID),
		HostID: string(p.HostID),
		Title:  p.Title,
		Images: p.Images,
		// Цена на бэкенде всегда в USD.
		PriceUSD: float64(p.Price),
		Location: domain.Location{
			Address:   p.Location.Address,
			City:      p.Location.City,
			Country:   p.Location.Country,
			Latitude:  float64(p.Location.Latitude),
			Longitude: float64(p.Location.Longitude),
		},
		Bedrooms:  int(p.Bedrooms),
		Bathrooms: int(p.Bathrooms),
		MaxGuests: int(p.MaxGuests),
		Amenities: p.Amenities,
		Policies: domain.Policies{
			CheckInTime:  p.Policies.CheckInTime,
			CheckOutTime: p.Policies.CheckOutTime,
			Cancellation: p.Policies.Cancellation,
			HouseRules:   p.Policies.HouseRules,
		},
		Reviews:   reviews,
		Rating:    float64(p.Rating),
		CreatedAt: p.CreatedAt.Time(),
	}
}

type propertiesResponse struct {
	statusDTO
	Properties []propertyDTO `json:"properties"`
}

func (r propertiesResponse) toDomain() domain.PropertiesPage {
	props := make([]domain.Property, 0, len(r.Properties))
	for _, p := range r.Properties {
		props = append(props, p.toDomain())
	}
	return domain.PropertiesPage{BackendStatus: r.statusDTO.toDomain(), Properties: props}
}

type propertyResponse struct {
	statusDTO
	Property *propertyDTO `json:"property"`
}

type hostDTO struct {
	ID           flexString `json:"id"`
	Name         string     `json:"name"`
	AvatarURL    string     `json:"avatar_url"`
	Bio          string     `json:"bio"`
	Superhost    flexBool   `json:"superhost"`
	ResponseRate flexFloat  `json:"response_rate"`
	JoinedAt     flexTime   `json:"joined_at"`
}

type hostResponse struct {
	statusDTO
	Host *hostDTO `json:"host"`
}

type eventDTO struct {
	ID          flexString `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	ImageURL    string     `json:"image_url"`
	StartsAt    flexTime   `json:"starts_at"`
}

type eventsResponse struct {
	statusDTO
	Events []eventDTO `json:"events"`
}

// --- auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userDTO struct {
	ID    flexString `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  string     `json:"role"`
}

type loginResponse struct {
	statusDTO
	User *userDTO `json:"user"`
}

func (r loginResponse) toDomain() domain.LoginResult {
	result := domain.LoginResult{BackendStatus: r.statusDTO.toDomain()}
	if r.User != nil {
		result.UserID = string(r.User.ID)
		result.Name = r.User.Name
		result.Email = r.User.Email
		result.Role = r.User.Role
	}
	return result
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registerResponse struct {
	statusDTO
	Email       string   `json:"email"`
	RequiresOTP flexBool `json:"requires_otp"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type verifyOTPResponse struct {
	statusDTO
	RequiresAdditionalDetails flexBool `json:"requires_additional_details"`
	User                      *userDTO `json:"user"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type completeRegistrationRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Country   string `json:"country,omitempty"`
}

// --- profile ---

type profileDTO struct {
	ID        flexString `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	AvatarURL string     `json:"avatar_url"`
	Bio       string     `json:"bio"`
	Role      string     `json:"role"`
}

type profileResponse struct {
	statusDTO
	Profile *profileDTO `json:"profile"`
}

func (r profileResponse) toDomain() domain.ProfileDetails {
	details := domain.ProfileDetails{BackendStatus: r.statusDTO.toDomain()}
	if r.Profile != nil {
		details.Profile = &domain.Profile{
			UserID:    string(r.Profile.ID),
			Name:      r.Profile.Name,
			Email:     r.Profile.Email,
			Phone:     r.Profile.Phone,
			AvatarURL: r.Profile.AvatarURL,
			Bio:       r.Profile.Bio,
			Role:      r.Profile.Role,
		}
	}
	return details
}

type updateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// --- wishlists ---

type wishlistDTO struct {
	ID         flexString   `json:"id"`
	ListName   string       `json:"list_name"`
	Properties []flexString `json:"properties"`
	CreatedAt  flexTime     `json:"created_at"`
}

func (w wishlistDTO) toDomain() domain.Wishlist {
	props := make([]string, 0, len(w.Properties))
	for _, p := range w.Properties {
		props = append(props, string(p))
	}
	return domain.Wishlist{
		ID:         string(w.ID),
		ListName:   w.ListName,
		Properties: props,
		CreatedAt:  w.CreatedAt.Time(),
	}
}

type wishlistsResponse struct {
	statusDTO
	Wishlists []wishlistDTO `json:"wishlists"`
}

func (r wishlistsResponse) toDomain() domain.WishlistsPage {
	lists := make(domain.WishlistCollection, 0, len(r.Wishlists))
	for _, w := range r.Wishlists {
		lists = append(lists, w.toDomain())
	}
	return domain.WishlistsPage{BackendStatus: r.statusDTO.toDomain(), Wishlists: lists.Normalize()}
}

type wishlistResponse struct {
	statusDTO
	Wishlist *wishlistDTO `json:"wishlist"`
}

type createWishlistRequest struct {
	ListName string `json:"list_name"`
}

type wishlistPropertyRequest struct {
	WishlistID string `json:"wishlist_id"`
	PropertyID string `json:"property_id"`
}

type deleteWishlistRequest struct {
	WishlistID string `json:"wishlist_id"`
}

type syncWishlistsRequest struct {
	Wishlists []domain.WishlistSyncItem `json:"wishlists"`
}

// --- bookings ---

type bookingDTO struct {
	ID            flexString `json:"id"`
	PropertyID    flexString `json:"property_id"`
	PropertyTitle string     `json:"property_title"`
	CheckIn       flexTime   `json:"check_in"`
	CheckOut      flexTime   `json:"check_out"`
	Guests        flexInt    `json:"guests"`
	TotalPrice    flexFloat  `json:"total_price"`
	Status        string     `json:"status"`
	CreatedAt     flexTime   `json:"created_at"`
}

func (b bookingDTO) toDomain() domain.Booking {
	return domain.Booking{
		ID:            string(b.ID),
		PropertyID:    string(b.PropertyID),
		PropertyTitle: b.PropertyTitle,
		CheckIn:       b.CheckIn.Time(),
		CheckOut:      b.CheckOut.Time(),
		Guests:        int(b.Guests),
		TotalPriceUSD: float64(b.TotalPrice),
		Status:        b.Status,
		CreatedAt:     b.CreatedAt.Time(),
	}
}

type bookingsResponse struct {
	statusDTO
	Bookings []bookingDTO `json:"bookings"`
}

type bookingResponse struct {
	statusDTO
	Booking *bookingDTO `json:"booking"`
}

type createBookingRequest struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	Message    string `json:"message,omitempty"`
}

type createBookingResponse struct {
	statusDTO
	BookingID flexString `json:"booking_id"`
}
