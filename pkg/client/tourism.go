package client

import (
	"context"

	"github.com/naveenspark/tripdesk/pkg/domain"
)

// TourBookingRequest is the payload for booking a tour.
type TourBookingRequest struct {
	TotalPrice    string `json:"total_price"`
	BookingStatus bool   `json:"booking_status"`
	PaymentStatus bool   `json:"payment_status"`
	TourID        int64  `json:"tour_id"`
	UserID        int64  `json:"user_id"`
}

// ListDestinations returns the information center's destinations.
func (c *Client) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	resp, err := c.get(ctx, "/information-center/destinations/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Destination](resp), nil
}

// GetDestination fetches one destination.
func (c *Client) GetDestination(ctx context.Context, id int64) (*domain.Destination, error) {
	resp, err := c.get(ctx, idPath("/information-center/destinations/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.Destination](resp), nil
}

// ListTours returns every tour.
func (c *Client) ListTours(ctx context.Context) ([]domain.Tour, error) {
	resp, err := c.get(ctx, "/information-center/tours/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Tour](resp), nil
}

// GetTour fetches one tour.
func (c *Client) GetTour(ctx context.Context, id int64) (*domain.Tour, error) {
	resp, err := c.get(ctx, idPath("/information-center/tours/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.Tour](resp), nil
}

// CreateTourBooking books a tour.
func (c *Client) CreateTourBooking(ctx context.Context, b TourBookingRequest) (*domain.TourBooking, error) {
	resp, err := c.post(ctx, "/information-center/tour-bookings/", b)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.TourBooking](resp), nil
}

// DeleteTourBooking cancels a tour booking.
func (c *Client) DeleteTourBooking(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("/information-center/tour-bookings/", id))
}

// ListTourBookings returns the session user's tour bookings.
func (c *Client) ListTourBookings(ctx context.Context) ([]domain.TourBooking, error) {
	resp, err := c.get(ctx, "/information-center/tour-bookings/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.TourBooking](resp), nil
}

// ListTourismNotifications returns the information center's event notices.
func (c *Client) ListTourismNotifications(ctx context.Context) ([]domain.EventNotification, error) {
	resp, err := c.get(ctx, "/information-center/event-notifications/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.EventNotification](resp), nil
}
