package domain

// Restaurant is a dining listing.
type Restaurant struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	OpeningHours string `json:"opening_hours"`
	ContactInfo  string `json:"contact_info"`
	ImgURL       string `json:"img_url,omitempty"`
	CuisineType  string `json:"cuisine_type"`
}

// MenuItem is a dish on a restaurant's menu.
type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Restaurant  int64  `json:"restaurant"`
}

// TableReservation is a booked table.
type TableReservation struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	RestaurantID    int64  `json:"restaurant_id"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	NumberOfGuests  int    `json:"number_of_guests"`
	SpecialRequests string `json:"special_requests"`
	Status          string `json:"status"`
}

// OnlineOrder is a takeaway or delivery order.
type OnlineOrder struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	RestaurantID int64  `json:"restaurant_id"`
	OrderDate    string `json:"order_date,omitempty"`
	TotalAmount  string `json:"total_amount,omitempty"`
	Status       string `json:"status,omitempty"`
}
