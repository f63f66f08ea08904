package domain

// Accommodation is a hotel or other lodging listing.
type Accommodation struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	StarRating   int     `json:"star_rating"`
	TotalRooms   int     `json:"total_rooms"`
	Amenities    string  `json:"amenities"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime string  `json:"check_out_time"`
	ContactInfo  string  `json:"contact_info"`
	Description  string  `json:"description,omitempty"`
	ImgURL       string  `json:"img_url,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	Types        []int64 `json:"types,omitempty"`
}

// Image returns whichever image field the backend filled in.
func (a Accommodation) Image() string {
	if a.ImageURL != "" {
		return a.ImageURL
	}
	return a.ImgURL
}

// RoomType is a bookable class of room.
type RoomType struct {
	ID              int64  `json:"id"`
	RoomType        string `json:"room_type"`
	PricePerNight   string `json:"price_per_night"`
	MaxOccupancy    int    `json:"max_occupancy"`
	Availability    bool   `json:"availability"`
	AccommodationID int64  `json:"accommodation_id,omitempty"`
}

// GuestService is an extra offered by an accommodation.
type GuestService struct {
	ID                int64   `json:"id"`
	ServiceName       string  `json:"service_name"`
	Price             float64 `json:"price"`
	AvailabilityHours string  `json:"availability_hours"`
	AccommodationID   int64   `json:"accommodation_id"`
}

// Feedback is a review left on an accommodation.
type Feedback struct {
	ID              int64  `json:"id"`
	AccommodationID int64  `json:"accommodation_id"`
	UserID          int64  `json:"user_id"`
	UserName        string `json:"user_name,omitempty"`
	Rating          int    `json:"rating"`
	Review          string `json:"review"`
	Date            string `json:"date"`
}

// RoomBooking is a stay reserved by a user.
type RoomBooking struct {
	ID              int64  `json:"id"`
	RoomTypeID      int64  `json:"room_type_id"`
	UserID          int64  `json:"user_id"`
	AccommodationID int64  `json:"accommodation_id,omitempty"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
}
