package client

import (
	"context"

	"github.com/naveenspark/tripdesk/pkg/domain"
)

// RideBookingRequest is the payload for booking a ride.
type RideBookingRequest struct {
	PickupLocation  string `json:"pickup_location"`
	DropOffLocation string `json:"drop_off_location"`
	RideDate        string `json:"ride_date"`
	PickupTime      string `json:"pickup_time"`
	EstimatedFare   string `json:"estimated_fare"`
	BookingStatus   bool   `json:"booking_status"`
	UserID          int64  `json:"user_id"`
	ProviderID      int64  `json:"provider_id"`
}

// ListProviders returns the transport providers.
func (c *Client) ListProviders(ctx context.Context) ([]domain.TransportProvider, error) {
	resp, err := c.get(ctx, "/local-transportation/transportation-provider/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.TransportProvider](resp), nil
}

// GetProvider fetches one transport provider.
func (c *Client) GetProvider(ctx context.Context, id int64) (*domain.TransportProvider, error) {
	resp, err := c.get(ctx, idPath("/local-transportation/transportation-provider/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.TransportProvider](resp), nil
}

// ListTrafficUpdates returns live traffic notes.
func (c *Client) ListTrafficUpdates(ctx context.Context) ([]domain.TrafficUpdate, error) {
	resp, err := c.get(ctx, "/local-transportation/traffic-update/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.TrafficUpdate](resp), nil
}

// ListRoutePlans returns suggested routes.
func (c *Client) ListRoutePlans(ctx context.Context) ([]domain.RoutePlan, error) {
	resp, err := c.get(ctx, "/local-transportation/route-planning/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.RoutePlan](resp), nil
}

// CreateRideBooking books a ride.
func (c *Client) CreateRideBooking(ctx context.Context, b RideBookingRequest) (*domain.RideBooking, error) {
	resp, err := c.post(ctx, "/local-transportation/ride-booking/", b)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.RideBooking](resp), nil
}

// DeleteRideBooking cancels a ride booking.
func (c *Client) DeleteRideBooking(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("/local-transportation/ride-booking/", id))
}

// ListRideBookings returns the session user's ride bookings.
func (c *Client) ListRideBookings(ctx context.Context) ([]domain.RideBooking, error) {
	resp, err := c.get(ctx, "/local-transportation/ride-booking/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.RideBooking](resp), nil
}
