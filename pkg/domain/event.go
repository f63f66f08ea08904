package domain

// Event is a ticketed happening at a venue.
type Event struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Venue           string `json:"venue"`
	Description     string `json:"description"`
	EventDate       string `json:"event_date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	EntryFee        string `json:"entry_fee"`
	MaxParticipants int    `json:"max_participants"`
	ImgURL          string `json:"img_url,omitempty"`
}

// Promotion is a discount attached to an event. Discount is a percentage.
type Promotion struct {
	ID                 int64  `json:"id"`
	Event              int64  `json:"event"`
	PromotionStartDate string `json:"promotion_start_date"`
	PromotionEndDate   string `json:"promotion_end_date"`
	Discount           string `json:"discount"`
}

// EventNotification is an announcement about an upcoming event.
type EventNotification struct {
	ID        int64  `json:"id"`
	Title     string `json:"title,omitempty"`
	Message   string `json:"message,omitempty"`
	EventID   int64  `json:"event_id,omitempty"`
	EventDate string `json:"event_date,omitempty"`
}

// VenueBooking is a set of tickets bought for an event.
type VenueBooking struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	BookingDate     string `json:"booking_date"`
	BookingStatus   bool   `json:"booking_status"`
	NumberOfTickets int    `json:"number_of_tickets"`
	TotalAmount     string `json:"total_amount"`
	DiscountAmount  string `json:"discount_amount"`
	EventID         int64  `json:"event_id"`
	PromotionID     int64  `json:"promotion_id,omitempty"`
}

// VenuePrice is the backend's quote for a number of tickets.
type VenuePrice struct {
	TotalAmount string `json:"total_amount"`
}
