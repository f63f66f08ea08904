package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/naveenspark/tripdesk/pkg/domain"
)

// RoomBookingRequest is the payload for reserving a room.
type RoomBookingRequest struct {
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	RoomTypeID      int64  `json:"room_type_id"`
	AccommodationID int64  `json:"accommodation_id"`
	UserID          int64  `json:"user_id"`
}

// FeedbackRequest is the payload for reviewing an accommodation.
type FeedbackRequest struct {
	Rating          int    `json:"rating"`
	Review          string `json:"review"`
	Date            string `json:"date"`
	AccommodationID int64  `json:"accommodation_id"`
	User            int64  `json:"user"`
}

// ListAccommodations returns all accommodation listings.
func (c *Client) ListAccommodations(ctx context.Context) ([]domain.Accommodation, error) {
	resp, err := c.get(ctx, "/accommodation/accommodations/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Accommodation](resp), nil
}

// GetAccommodation fetches one accommodation.
func (c *Client) GetAccommodation(ctx context.Context, id int64) (*domain.Accommodation, error) {
	resp, err := c.get(ctx, idPath("/accommodation/accommodations/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.Accommodation](resp), nil
}

// ListRoomTypes returns every room type.
func (c *Client) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	resp, err := c.get(ctx, "/accommodation/room-types/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.RoomType](resp), nil
}

// ListAccommodationRoomTypes returns the room types of one accommodation.
func (c *Client) ListAccommodationRoomTypes(ctx context.Context, accommodationID int64) ([]domain.RoomType, error) {
	q := url.Values{"accommodation_id": {strconv.FormatInt(accommodationID, 10)}}
	resp, err := c.get(ctx, "/accommodation/room-types/", q)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.RoomType](resp), nil
}

// DeleteRoomType removes a room type.
func (c *Client) DeleteRoomType(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("/accommodation/room-types/", id))
}

// ListGuestServices returns guest services across accommodations.
func (c *Client) ListGuestServices(ctx context.Context) ([]domain.GuestService, error) {
	resp, err := c.get(ctx, "/accommodation/guest-services/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.GuestService](resp), nil
}

// CreateRoomBooking reserves a room.
func (c *Client) CreateRoomBooking(ctx context.Context, b RoomBookingRequest) (*domain.RoomBooking, error) {
	resp, err := c.post(ctx, "/accommodation/room-bookings/", b)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.RoomBooking](resp), nil
}

// ListRoomBookings returns the signed-in user's room bookings.
func (c *Client) ListRoomBookings(ctx context.Context) ([]domain.RoomBooking, error) {
	resp, err := c.get(ctx, "/accommodation/room-bookings/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.RoomBooking](resp), nil
}

// DeleteRoomBooking cancels a room booking.
func (c *Client) DeleteRoomBooking(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("/accommodation/room-bookings/", id))
}

// CreateFeedback posts a review.
func (c *Client) CreateFeedback(ctx context.Context, f FeedbackRequest) (*domain.Feedback, error) {
	resp, err := c.post(ctx, "/accommodation/feedback-reviews/", f)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.Feedback](resp), nil
}

// ListAccommodationFeedback returns the reviews of one accommodation.
func (c *Client) ListAccommodationFeedback(ctx context.Context, accommodationID int64) ([]domain.Feedback, error) {
	resp, err := c.get(ctx, idPath("/accommodation/feedback-reviews/accommodation/", accommodationID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Feedback](resp), nil
}

// DeleteFeedback removes a review.
func (c *Client) DeleteFeedback(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("/accommodation/feedback-reviews/", id))
}
