package domain

// Destination is a point of interest in the information center.
type Destination struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	OpeningHours string `json:"opening_hours"`
	ContactInfo  string `json:"contact_info"`
	ImgURL       string `json:"img_url,omitempty"`
}

// Tour is a guided tour of a destination.
type Tour struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	TourType       string `json:"tour_type"`
	Duration       string `json:"duration"`
	PricePerPerson string `json:"price_per_person"`
	MaxCapacity    int    `json:"max_capacity"`
	TourDate       string `json:"tour_date"`
	GuideName      string `json:"guide_name"`
	Destination    int64  `json:"destination"`
}

// TourBooking is a seat on a tour.
type TourBooking struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	TotalPrice    string `json:"total_price"`
	BookingStatus bool   `json:"booking_status"`
	PaymentStatus bool   `json:"payment_status"`
	TourID        int64  `json:"tour_id"`
}
