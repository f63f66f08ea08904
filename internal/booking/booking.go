// Package booking turns the detail pages' form input into booking payloads.
// It checks only what the form can know; prices, availability and
// double-booking are decided by the backend.
package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/naveenspark/tripdesk/internal/session"
	"github.com/naveenspark/tripdesk/pkg/client"
	"github.com/naveenspark/tripdesk/pkg/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

var (
	ErrNoUserID        = errors.New("user id not found, please sign in again")
	ErrDatesRequired   = errors.New("please select check-in and check-out dates")
	ErrBadDate         = errors.New("dates must look like YYYY-MM-DD")
	ErrCheckOutOrder   = errors.New("check-out date must be after check-in date")
	ErrRoomType        = errors.New("please select a room type")
	ErrRating          = errors.New("rating must be between 1 and 5")
	ErrReview          = errors.New("please write a review")
	ErrTickets         = errors.New("please enter a valid number of tickets")
	ErrTotalPrice      = errors.New("please fill in the total price")
	ErrReservation     = errors.New("please fill in date, time and number of guests")
	ErrRide            = errors.New("please fill in pickup, drop-off, date and time")
	ErrNameRequired    = errors.New("please enter your name")
	ErrInvalidDiscount = errors.New("promotion discount is not a number")
)

// parseUserID reads the session's user identifier.
func parseUserID(userID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(userID), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNoUserID
	}
	return id, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return t, nil
}

// RoomForm is the room booking form of an accommodation.
type RoomForm struct {
	AccommodationID int64
	RoomTypeID      int64
	CheckIn         string
	CheckOut        string
}

// Room validates a room booking.
func Room(userID string, f RoomForm) (client.RoomBookingRequest, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return client.RoomBookingRequest{}, err
	}
	if strings.TrimSpace(f.CheckIn) == "" || strings.TrimSpace(f.CheckOut) == "" {
		return client.RoomBookingRequest{}, ErrDatesRequired
	}
	in, err := parseDate(f.CheckIn)
	if err != nil {
		return client.RoomBookingRequest{}, err
	}
	out, err := parseDate(f.CheckOut)
	if err != nil {
		return client.RoomBookingRequest{}, err
	}
	if !out.After(in) {
		return client.RoomBookingRequest{}, ErrCheckOutOrder
	}
	if f.RoomTypeID <= 0 {
		return client.RoomBookingRequest{}, ErrRoomType
	}
	return client.RoomBookingRequest{
		CheckInDate:     in.Format(DateLayout),
		CheckOutDate:    out.Format(DateLayout),
		RoomTypeID:      f.RoomTypeID,
		AccommodationID: f.AccommodationID,
		UserID:          uid,
	}, nil
}

// Nights returns the length of a stay, or 0 when the dates don't parse.
func Nights(checkIn, checkOut string) int {
	in, err := parseDate(checkIn)
	if err != nil {
		return 0
	}
	out, err := parseDate(checkOut)
	if err != nil || !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// Feedback validates a review. The review is dated now.
func Feedback(userID string, accommodationID int64, rating int, review string, now time.Time) (client.FeedbackRequest, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return client.FeedbackRequest{}, err
	}
	if rating < 1 || rating > 5 {
		return client.FeedbackRequest{}, ErrRating
	}
	review = strings.TrimSpace(review)
	if review == "" {
		return client.FeedbackRequest{}, ErrReview
	}
	return client.FeedbackRequest{
		Rating:          rating,
		Review:          review,
		Date:            now.Format(DateLayout),
		AccommodationID: accommodationID,
		User:            uid,
	}, nil
}

// Venue validates a ticket purchase. total is the backend's quote; the
// discount is the promotion's percentage of it.
func Venue(userID string, eventID int64, tickets int, total string, promo *domain.Promotion, now time.Time) (client.VenueBookingRequest, error) {
	if tickets <= 0 {
		return client.VenueBookingRequest{}, ErrTickets
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return client.VenueBookingRequest{}, err
	}
	if strings.TrimSpace(total) == "" {
		total = "0"
	}
	req := client.VenueBookingRequest{
		BookingDate:     now.UTC().Format(time.RFC3339),
		BookingStatus:   true,
		NumberOfTickets: tickets,
		TotalAmount:     total,
		DiscountAmount:  "0",
		EventID:         eventID,
		UserID:          uid,
	}
	if promo != nil {
		d, err := Discount(total, promo.Discount)
		if err != nil {
			return client.VenueBookingRequest{}, err
		}
		req.DiscountAmount = d
		id := promo.ID
		req.PromotionID = &id
	}
	return req, nil
}

// Discount returns total × percent / 100 formatted with two decimals.
func Discount(total, percent string) (string, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(total), 64)
	if err != nil {
		t = 0
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(percent), 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDiscount, percent)
	}
	return strconv.FormatFloat(t*p/100, 'f', 2, 64), nil
}

// Tour validates a tour booking.
func Tour(userID string, tourID int64, totalPrice string) (client.TourBookingRequest, error) {
	if strings.TrimSpace(totalPrice) == "" {
		return client.TourBookingRequest{}, ErrTotalPrice
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return client.TourBookingRequest{}, err
	}
	return client.TourBookingRequest{
		TotalPrice:    strings.TrimSpace(totalPrice),
		BookingStatus: true,
		PaymentStatus: true,
		TourID:        tourID,
		UserID:        uid,
	}, nil
}

// TableForm is the reservation form of a restaurant.
type TableForm struct {
	RestaurantID    int64
	Date            string
	Time            string
	Guests          int
	SpecialRequests string
}

// Table validates a table reservation. New reservations start pending.
func Table(userID string, f TableForm) (client.TableReservationRequest, error) {
	if strings.TrimSpace(f.Date) == "" || strings.TrimSpace(f.Time) == "" || f.Guests <= 0 {
		return client.TableReservationRequest{}, ErrReservation
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return client.TableReservationRequest{}, err
	}
	d, err := parseDate(f.Date)
	if err != nil {
		return client.TableReservationRequest{}, err
	}
	return client.TableReservationRequest{
		RestaurantID:    f.RestaurantID,
		UserID:          uid,
		ReservationDate: d.Format(DateLayout),
		ReservationTime: strings.TrimSpace(f.Time),
		NumberOfGuests:  f.Guests,
		SpecialRequests: strings.TrimSpace(f.SpecialRequests),
		Status:          "pending",
	}, nil
}

// RideForm is the booking form of a transport provider.
type RideForm struct {
	ProviderID int64
	Pickup     string
	DropOff    string
	Date       string
	Time       string
}

// Ride validates a ride booking. The fare is left for the provider to set.
func Ride(userID string, f RideForm) (client.RideBookingRequest, error) {
	if strings.TrimSpace(f.Pickup) == "" || strings.TrimSpace(f.DropOff) == "" ||
		strings.TrimSpace(f.Date) == "" || strings.TrimSpace(f.Time) == "" {
		return client.RideBookingRequest{}, ErrRide
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return client.RideBookingRequest{}, err
	}
	d, err := parseDate(f.Date)
	if err != nil {
		return client.RideBookingRequest{}, err
	}
	return client.RideBookingRequest{
		PickupLocation:  strings.TrimSpace(f.Pickup),
		DropOffLocation: strings.TrimSpace(f.DropOff),
		RideDate:        d.Format(DateLayout),
		PickupTime:      strings.TrimSpace(f.Time),
		EstimatedFare:   "0",
		BookingStatus:   true,
		UserID:          uid,
		ProviderID:      f.ProviderID,
	}, nil
}

// SignUp validates the registration form.
func SignUp(name, email, password string) (client.CreateUserRequest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return client.CreateUserRequest{}, ErrNameRequired
	}
	email = strings.TrimSpace(email)
	if err := session.ValidateCredentials(email, password); err != nil {
		return client.CreateUserRequest{}, err
	}
	return client.CreateUserRequest{Name: name, Email: email, Password: password}, nil
}
