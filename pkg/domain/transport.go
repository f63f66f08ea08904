package domain

// TransportProvider is a taxi, shuttle or similar local transport operator.
type TransportProvider struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ServiceType string `json:"service_type"`
	BaseFare    string `json:"base_fare"`
	PricePerKM  string `json:"price_per_km"`
	ContactInfo string `json:"contact_info"`
	ImgURL      string `json:"img_url,omitempty"`
}

// RoutePlan is a suggested route served by a provider.
type RoutePlan struct {
	ID            int64  `json:"id"`
	StartLocation string `json:"start_location"`
	EndLocation   string `json:"end_location"`
	Distance      string `json:"distance"`
	EstimatedTime string `json:"estimated_time"`
	ProviderID    int64  `json:"provider_id"`
}

// TrafficUpdate is a provider's live traffic note.
type TrafficUpdate struct {
	ID            int64  `json:"id"`
	UpdateTime    string `json:"update_time"`
	UpdateMessage string `json:"update_message"`
	ProviderID    int64  `json:"provider_id"`
}

// RideBooking is a booked ride.
type RideBooking struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	PickupLocation  string `json:"pickup_location"`
	DropOffLocation string `json:"drop_off_location"`
	RideDate        string `json:"ride_date"`
	PickupTime      string `json:"pickup_time"`
	EstimatedFare   string `json:"estimated_fare"`
	BookingStatus   bool   `json:"booking_status"`
	ProviderID      int64  `json:"provider_id"`
}
