package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/naveenspark/tripdesk/pkg/domain"
)

// CreateEventRequest is the payload for publishing an event.
type CreateEventRequest struct {
	Name            string `json:"name"`
	Venue           string `json:"venue"`
	Description     string `json:"description"`
	EventDate       string `json:"event_date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	EntryFee        string `json:"entry_fee"`
	MaxParticipants int    `json:"max_participants"`
}

// VenueBookingRequest is the payload for buying event tickets.
type VenueBookingRequest struct {
	BookingDate     string `json:"booking_date"`
	BookingStatus   bool   `json:"booking_status"`
	NumberOfTickets int    `json:"number_of_tickets"`
	TotalAmount     string `json:"total_amount"`
	DiscountAmount  string `json:"discount_amount"`
	EventID         int64  `json:"event_id"`
	UserID          int64  `json:"user_id"`
	PromotionID     *int64 `json:"promotion_id,omitempty"`
}

// VenuePriceRequest asks the backend to quote tickets for an event.
type VenuePriceRequest struct {
	Event           int64 `json:"event"`
	NumberOfTickets int   `json:"number_of_tickets"`
}

// ListEvents returns all events.
func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	resp, err := c.get(ctx, "/event-organizers/event/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Event](resp), nil
}

// CreateEvent publishes an event.
func (c *Client) CreateEvent(ctx context.Context, e CreateEventRequest) (*domain.Event, error) {
	resp, err := c.post(ctx, "/event-organizers/event/", e)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.Event](resp), nil
}

// GetEvent fetches one event.
func (c *Client) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	resp, err := c.get(ctx, idPath("/event-organizers/event/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.Event](resp), nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("/event-organizers/event/", id))
}

// ListEventPromotions returns every event promotion.
func (c *Client) ListEventPromotions(ctx context.Context) ([]domain.Promotion, error) {
	resp, err := c.get(ctx, "/event-organizers/event-promotion/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Promotion](resp), nil
}

// ListEventNotifications returns event announcements.
func (c *Client) ListEventNotifications(ctx context.Context) ([]domain.EventNotification, error) {
	resp, err := c.get(ctx, "/tourism-info/event-notifications/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.EventNotification](resp), nil
}

// CreateVenueBooking buys tickets.
func (c *Client) CreateVenueBooking(ctx context.Context, b VenueBookingRequest) (*domain.VenueBooking, error) {
	resp, err := c.post(ctx, "/event-organizers/venue-booking/", b)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.VenueBooking](resp), nil
}

// CalculateVenuePrice asks the backend for a ticket quote.
func (c *Client) CalculateVenuePrice(ctx context.Context, p VenuePriceRequest) (*domain.VenuePrice, error) {
	resp, err := c.post(ctx, "/event-organizers/venue-booking/calculate-price/", p)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.VenuePrice](resp), nil
}

// CancelVenueBooking cancels a ticket booking.
func (c *Client) CancelVenueBooking(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("/event-organizers/venue-booking/", id))
}

// ListVenueBookings returns the session user's ticket bookings, limited to
// one event unless eventID is 0.
func (c *Client) ListVenueBookings(ctx context.Context, eventID int64) ([]domain.VenueBooking, error) {
	var q url.Values
	if eventID != 0 {
		q = url.Values{"event_id": {strconv.FormatInt(eventID, 10)}}
	}
	resp, err := c.get(ctx, "/event-organizers/venue-booking/", q)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.VenueBooking](resp), nil
}
