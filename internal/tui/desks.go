package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/naveenspark/tripdesk/internal/booking"
	"github.com/naveenspark/tripdesk/pkg/client"
	"github.com/naveenspark/tripdesk/pkg/domain"
)

var errNotFound = errors.New("record not found")

// listing is one row of a catalog.
type listing struct {
	ID       int64
	Title    string
	Subtitle string
	Summary  string
	Image    string
}

// choice is a selectable option in a booking form, such as a room type.
type choice struct {
	ID    int64
	Label string
	Price string
}

// bookingRow is one of the user's bookings.
type bookingRow struct {
	ID        int64
	Vertical  string
	Line      string
	Confirmed bool
	cancel    func(ctx context.Context, c *client.Client) error
}

type detailSection struct {
	Title string
	Lines []string
}

// detailData is everything a detail page shows.
type detailData struct {
	Listing  listing
	Facts    [][2]string
	Sections []detailSection
	Choices  []choice
	Promo    *domain.Promotion
	Bookings []bookingRow
}

type formField struct {
	Label       string
	Placeholder string
	Choice      bool // cycles through detailData.Choices
}

type formInput struct {
	Values []string
	Choice *choice
	Now    time.Time
}

// bookingForm is a booking form on a detail page. Submit returns the message
// shown on success.
type bookingForm struct {
	Name   string
	Fields []formField
	Submit func(ctx context.Context, c *client.Client, uid string, d detailData, in formInput) (string, error)
}

// desk wires one vertical to its endpoints.
type desk struct {
	Vertical   domain.Vertical
	List       func(ctx context.Context, c *client.Client) ([]listing, error)
	Detail     func(ctx context.Context, c *client.Client, id int64, uid string) (detailData, error)
	Forms      []bookingForm
	MyBookings func(ctx context.Context, c *client.Client, uid string) ([]bookingRow, error)
}

var desks = map[string]desk{
	domain.VerticalAccommodation: accommodationDesk(),
	domain.VerticalEvents:        eventsDesk(),
	domain.VerticalTourism:       tourismDesk(),
	domain.VerticalRestaurants:   restaurantsDesk(),
	domain.VerticalTransport:     transportDesk(),
}

func lookupDesk(id string) (desk, bool) {
	d, ok := desks[id]
	return d, ok
}

// ownedBy reports whether a booking's user matches the session's user id.
func ownedBy(uid string, userID int64) bool {
	id, err := strconv.ParseInt(uid, 10, 64)
	return err == nil && id > 0 && id == userID
}

func money(s string) string {
	if s == "" {
		return "-"
	}
	return priceStyle.Render("¥" + s)
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func choiceLines(choices []choice, suffix string) []string {
	lines := make([]string, 0, len(choices))
	for _, ch := range choices {
		lines = append(lines, fmt.Sprintf("%s  %s%s", normalStyle.Render(ch.Label), money(ch.Price), dimStyle.Render(suffix)))
	}
	return lines
}

// ---- accommodation ----

func roomRow(b domain.RoomBooking) bookingRow {
	return bookingRow{
		ID:        b.ID,
		Vertical:  domain.VerticalAccommodation,
		Line:      fmt.Sprintf("room %d · %s → %s", b.RoomTypeID, formatDate(b.CheckInDate), formatDate(b.CheckOutDate)),
		Confirmed: true,
		cancel: func(ctx context.Context, c *client.Client) error {
			return c.DeleteRoomBooking(ctx, b.ID)
		},
	}
}

func accommodationDesk() desk {
	v, _ := domain.LookupVertical(domain.VerticalAccommodation)
	return desk{
		Vertical: v,
		List: func(ctx context.Context, c *client.Client) ([]listing, error) {
			items, err := c.ListAccommodations(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]listing, 0, len(items))
			for _, a := range items {
				out = append(out, listing{
					ID:       a.ID,
					Title:    a.Name,
					Subtitle: fmt.Sprintf("%s · %s", a.Location, stars(a.StarRating)),
					Summary:  a.Description,
					Image:    a.Image(),
				})
			}
			return out, nil
		},
		Detail: func(ctx context.Context, c *client.Client, id int64, uid string) (detailData, error) {
			a, err := c.GetAccommodation(ctx, id)
			if err != nil {
				return detailData{}, err
			}
			if a == nil {
				return detailData{}, errNotFound
			}
			d := detailData{
				Listing: listing{ID: a.ID, Title: a.Name, Subtitle: a.Location, Summary: a.Description, Image: a.Image()},
				Facts: [][2]string{
					{"rating", stars(a.StarRating)},
					{"rooms", strconv.Itoa(a.TotalRooms)},
					{"check-in", a.CheckInTime},
					{"check-out", a.CheckOutTime},
					{"amenities", a.Amenities},
					{"contact", a.ContactInfo},
				},
			}

			types, err := c.ListAccommodationRoomTypes(ctx, id)
			if err != nil {
				return detailData{}, err
			}
			for _, rt := range types {
				label := rt.RoomType
				if !rt.Availability {
					label += " (full)"
				}
				d.Choices = append(d.Choices, choice{ID: rt.ID, Label: label, Price: rt.PricePerNight})
			}
			d.Sections = append(d.Sections, detailSection{Title: "Room types", Lines: choiceLines(d.Choices, " / night")})

			services, err := c.ListGuestServices(ctx)
			if err != nil {
				return detailData{}, err
			}
			var svc []string
			for _, s := range services {
				if s.AccommodationID == id {
					svc = append(svc, fmt.Sprintf("%s  %s  %s", s.ServiceName, money(strconv.FormatFloat(s.Price, 'f', 2, 64)), dimStyle.Render(s.AvailabilityHours)))
				}
			}
			d.Sections = append(d.Sections, detailSection{Title: "Guest services", Lines: svc})

			reviews, err := c.ListAccommodationFeedback(ctx, id)
			if err != nil {
				return detailData{}, err
			}
			var rv []string
			for _, f := range reviews {
				rv = append(rv, fmt.Sprintf("%s  %s  %s", accentStyle.Render(stars(f.Rating)), cleanText(f.Review, 80), dimStyle.Render(formatDate(f.Date))))
			}
			d.Sections = append(d.Sections, detailSection{Title: "Reviews", Lines: rv})

			if uid != "" {
				bookings, err := c.ListRoomBookings(ctx)
				if err != nil {
					return detailData{}, err
				}
				for _, b := range bookings {
					if ownedBy(uid, b.UserID) && (b.AccommodationID == id || hasChoice(d.Choices, b.RoomTypeID)) {
						d.Bookings = append(d.Bookings, roomRow(b))
					}
				}
			}
			return d, nil
		},
		Forms: []bookingForm{
			{
				Name: "Book a room",
				Fields: []formField{
					{Label: "check-in", Placeholder: "YYYY-MM-DD"},
					{Label: "check-out", Placeholder: "YYYY-MM-DD"},
					{Label: "room type", Choice: true},
				},
				Submit: func(ctx context.Context, c *client.Client, uid string, d detailData, in formInput) (string, error) {
					f := booking.RoomForm{
						AccommodationID: d.Listing.ID,
						CheckIn:         in.Values[0],
						CheckOut:        in.Values[1],
					}
					if in.Choice != nil {
						f.RoomTypeID = in.Choice.ID
					}
					req, err := booking.Room(uid, f)
					if err != nil {
						return "", err
					}
					if _, err := c.CreateRoomBooking(ctx, req); err != nil {
						return "", err
					}
					return fmt.Sprintf("room booked for %d nights", booking.Nights(req.CheckInDate, req.CheckOutDate)), nil
				},
			},
			{
				Name: "Write a review",
				Fields: []formField{
					{Label: "rating", Placeholder: "1-5"},
					{Label: "review", Placeholder: "how was your stay?"},
				},
				Submit: func(ctx context.Context, c *client.Client, uid string, d detailData, in formInput) (string, error) {
					rating, err := strconv.Atoi(strings.TrimSpace(in.Values[0]))
					if err != nil {
						return "", booking.ErrRating
					}
					req, err := booking.Feedback(uid, d.Listing.ID, rating, in.Values[1], in.Now)
					if err != nil {
						return "", err
					}
					if _, err := c.CreateFeedback(ctx, req); err != nil {
						return "", err
					}
					return "thanks for your review", nil
				},
			},
		},
		MyBookings: func(ctx context.Context, c *client.Client, uid string) ([]bookingRow, error) {
			items, err := c.ListRoomBookings(ctx)
			if err != nil {
				return nil, err
			}
			var out []bookingRow
			for _, b := range items {
				if ownedBy(uid, b.UserID) {
					out = append(out, roomRow(b))
				}
			}
			return out, nil
		},
	}
}

func hasChoice(choices []choice, id int64) bool {
	for _, ch := range choices {
		if ch.ID == id {
			return true
		}
	}
	return false
}

// ---- events ----

func ticketRow(b domain.VenueBooking) bookingRow {
	return bookingRow{
		ID:        b.ID,
		Vertical:  domain.VerticalEvents,
		Line:      fmt.Sprintf("event %d · %d tickets · %s", b.EventID, b.NumberOfTickets, money(b.TotalAmount)),
		Confirmed: b.BookingStatus,
		cancel: func(ctx context.Context, c *client.Client) error {
			return c.CancelVenueBooking(ctx, b.ID)
		},
	}
}

func eventsDesk() desk {
	v, _ := domain.LookupVertical(domain.VerticalEvents)
	return desk{
		Vertical: v,
		List: func(ctx context.Context, c *client.Client) ([]listing, error) {
			items, err := c.ListEvents(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]listing, 0, len(items))
			for _, e := range items {
				out = append(out, listing{
					ID:       e.ID,
					Title:    e.Name,
					Subtitle: fmt.Sprintf("%s · %s · ¥%s", e.Venue, formatDate(e.EventDate), e.EntryFee),
					Summary:  e.Description,
					Image:    e.ImgURL,
				})
			}
			return out, nil
		},
		Detail: func(ctx context.Context, c *client.Client, id int64, uid string) (detailData, error) {
			e, err := c.GetEvent(ctx, id)
			if err != nil {
				return detailData{}, err
			}
			if e == nil {
				return detailData{}, errNotFound
			}
			d := detailData{
				Listing: listing{ID: e.ID, Title: e.Name, Subtitle: e.Venue, Summary: e.Description, Image: e.ImgURL},
				Facts: [][2]string{
					{"date", formatDate(e.EventDate)},
					{"time", e.StartTime + " - " + e.EndTime},
					{"entry fee", money(e.EntryFee)},
					{"capacity", strconv.Itoa(e.MaxParticipants)},
				},
			}

			promos, err := c.ListEventPromotions(ctx)
			if err != nil {
				return detailData{}, err
			}
			var pl []string
			for i := range promos {
				p := promos[i]
				if p.Event != id {
					continue
				}
				if d.Promo == nil {
					d.Promo = &p
				}
				pl = append(pl, fmt.Sprintf("%s%% off  %s", p.Discount, dimStyle.Render(formatDate(p.PromotionStartDate)+" → "+formatDate(p.PromotionEndDate))))
			}
			d.Sections = append(d.Sections, detailSection{Title: "Promotions", Lines: pl})

			notes, err := c.ListEventNotifications(ctx)
			if err != nil {
				return detailData{}, err
			}
			var nl []string
			for _, n := range notes {
				if n.EventID == id {
					nl = append(nl, cleanText(n.Title+" "+n.Message, 90))
				}
			}
			d.Sections = append(d.Sections, detailSection{Title: "Notices", Lines: nl})

			if uid != "" {
				bookings, err := c.ListVenueBookings(ctx, id)
				if err != nil {
					return detailData{}, err
				}
				for _, b := range bookings {
					if ownedBy(uid, b.UserID) && b.BookingStatus {
						d.Bookings = append(d.Bookings, ticketRow(b))
					}
				}
			}
			return d, nil
		},
		Forms: []bookingForm{
			{
				Name:   "Buy tickets",
				Fields: []formField{{Label: "tickets", Placeholder: "number of tickets"}},
				Submit: func(ctx context.Context, c *client.Client, uid string, d detailData, in formInput) (string, error) {
					n, err := strconv.Atoi(strings.TrimSpace(in.Values[0]))
					if err != nil || n <= 0 {
						return "", booking.ErrTickets
					}
					// Validate before asking for a quote.
					if _, err := booking.Venue(uid, d.Listing.ID, n, "0", nil, in.Now); err != nil {
						return "", err
					}
					quote, err := c.CalculateVenuePrice(ctx, client.VenuePriceRequest{Event: d.Listing.ID, NumberOfTickets: n})
					if err != nil {
						return "", err
					}
					total := "0"
					if quote != nil {
						total = quote.TotalAmount
					}
					req, err := booking.Venue(uid, d.Listing.ID, n, total, d.Promo, in.Now)
					if err != nil {
						return "", err
					}
					if _, err := c.CreateVenueBooking(ctx, req); err != nil {
						return "", err
					}
					return fmt.Sprintf("%d tickets booked, total ¥%s", n, req.TotalAmount), nil
				},
			},
		},
		MyBookings: func(ctx context.Context, c *client.Client, uid string) ([]bookingRow, error) {
			items, err := c.ListVenueBookings(ctx, 0)
			if err != nil {
				return nil, err
			}
			var out []bookingRow
			for _, b := range items {
				if ownedBy(uid, b.UserID) {
					out = append(out, ticketRow(b))
				}
			}
			return out, nil
		},
	}
}

// ---- tourism ----

func tourRow(b domain.TourBooking) bookingRow {
	return bookingRow{
		ID:        b.ID,
		Vertical:  domain.VerticalTourism,
		Line:      fmt.Sprintf("tour %d · %s", b.TourID, money(b.TotalPrice)),
		Confirmed: b.BookingStatus,
		cancel: func(ctx context.Context, c *client.Client) error {
			return c.DeleteTourBooking(ctx, b.ID)
		},
	}
}

func tourismDesk() desk {
	v, _ := domain.LookupVertical(domain.VerticalTourism)
	return desk{
		Vertical: v,
		List: func(ctx context.Context, c *client.Client) ([]listing, error) {
			items, err := c.ListDestinations(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]listing, 0, len(items))
			for _, dst := range items {
				out = append(out, listing{
					ID:       dst.ID,
					Title:    dst.Name,
					Subtitle: fmt.Sprintf("%s · %s", dst.Category, dst.Location),
					Summary:  dst.Description,
					Image:    dst.ImgURL,
				})
			}
			return out, nil
		},
		Detail: func(ctx context.Context, c *client.Client, id int64, uid string) (detailData, error) {
			dst, err := c.GetDestination(ctx, id)
			if err != nil {
				return detailData{}, err
			}
			if dst == nil {
				return detailData{}, errNotFound
			}
			d := detailData{
				Listing: listing{ID: dst.ID, Title: dst.Name, Subtitle: dst.Location, Summary: dst.Description, Image: dst.ImgURL},
				Facts: [][2]string{
					{"category", dst.Category},
					{"opening hours", dst.OpeningHours},
					{"contact", dst.ContactInfo},
				},
			}

			tours, err := c.ListTours(ctx)
			if err != nil {
				return detailData{}, err
			}
			var tl []string
			for _, t := range tours {
				if t.Destination != id {
					continue
				}
				d.Choices = append(d.Choices, choice{ID: t.ID, Label: t.Name, Price: t.PricePerPerson})
				tl = append(tl, fmt.Sprintf("%s  %s  %s", normalStyle.Render(t.Name), money(t.PricePerPerson),
					dimStyle.Render(fmt.Sprintf("%s · %s · guide %s", t.TourType, formatDate(t.TourDate), t.GuideName))))
			}
			d.Sections = append(d.Sections, detailSection{Title: "Tours", Lines: tl})

			if uid != "" {
				bookings, err := c.ListTourBookings(ctx)
				if err != nil {
					return detailData{}, err
				}
				for _, b := range bookings {
					if ownedBy(uid, b.UserID) && hasChoice(d.Choices, b.TourID) {
						d.Bookings = append(d.Bookings, tourRow(b))
					}
				}
			}
			return d, nil
		},
		Forms: []bookingForm{
			{
				Name: "Book a tour",
				Fields: []formField{
					{Label: "tour", Choice: true},
					{Label: "total price", Placeholder: "amount to pay"},
				},
				Submit: func(ctx context.Context, c *client.Client, uid string, d detailData, in formInput) (string, error) {
					if in.Choice == nil {
						return "", errors.New("please select a tour")
					}
					req, err := booking.Tour(uid, in.Choice.ID, in.Values[1])
					if err != nil {
						return "", err
					}
					if _, err := c.CreateTourBooking(ctx, req); err != nil {
						return "", err
					}
					return "tour booked: " + in.Choice.Label, nil
				},
			},
		},
		MyBookings: func(ctx context.Context, c *client.Client, uid string) ([]bookingRow, error) {
			items, err := c.ListTourBookings(ctx)
			if err != nil {
				return nil, err
			}
			var out []bookingRow
			for _, b := range items {
				if ownedBy(uid, b.UserID) {
					out = append(out, tourRow(b))
				}
			}
			return out, nil
		},
	}
}

// ---- restaurants ----

func tableRow(r domain.TableReservation) bookingRow {
	return bookingRow{
		ID:        r.ID,
		Vertical:  domain.VerticalRestaurants,
		Line:      fmt.Sprintf("restaurant %d · %s %s · %d guests", r.RestaurantID, formatDate(r.ReservationDate), r.ReservationTime, r.NumberOfGuests),
		Confirmed: r.Status == "confirmed",
		cancel: func(ctx context.Context, c *client.Client) error {
			return c.DeleteTableReservation(ctx, r.ID)
		},
	}
}

func orderRow(o domain.OnlineOrder) bookingRow {
	return bookingRow{
		ID:        o.ID,
		Vertical:  domain.VerticalRestaurants,
		Line:      fmt.Sprintf("order at restaurant %d · %s · %s", o.RestaurantID, money(o.TotalAmount), o.Status),
		Confirmed: o.Status != "" && o.Status != "pending",
		cancel: func(ctx context.Context, c *client.Client) error {
			return c.DeleteOnlineOrder(ctx, o.ID)
		},
	}
}

func restaurantsDesk() desk {
	v, _ := domain.LookupVertical(domain.VerticalRestaurants)
	return desk{
		Vertical: v,
		List: func(ctx context.Context, c *client.Client) ([]listing, error) {
			items, err := c.ListRestaurants(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]listing, 0, len(items))
			for _, r := range items {
				out = append(out, listing{
					ID:       r.ID,
					Title:    r.Name,
					Subtitle: fmt.Sprintf("%s · %s", r.CuisineType, r.Location),
					Summary:  r.Description,
					Image:    r.ImgURL,
				})
			}
			return out, nil
		},
		Detail: func(ctx context.Context, c *client.Client, id int64, uid string) (detailData, error) {
			r, err := c.GetRestaurant(ctx, id)
			if err != nil {
				return detailData{}, err
			}
			if r == nil {
				return detailData{}, errNotFound
			}
			d := detailData{
				Listing: listing{ID: r.ID, Title: r.Name, Subtitle: r.Location, Summary: r.Description, Image: r.ImgURL},
				Facts: [][2]string{
					{"cuisine", r.CuisineType},
					{"opening hours", r.OpeningHours},
					{"contact", r.ContactInfo},
				},
			}

			menu, err := c.ListMenus(ctx, id)
			if err != nil {
				return detailData{}, err
			}
			var ml []string
			for _, m := range menu {
				ml = append(ml, fmt.Sprintf("%s  %s  %s", normalStyle.Render(m.Name), money(m.Price), dimStyle.Render(m.Category)))
			}
			d.Sections = append(d.Sections, detailSection{Title: "Menu", Lines: ml})

			if uid != "" {
				reservations, err := c.ListTableReservations(ctx)
				if err != nil {
					return detailData{}, err
				}
				for _, res := range reservations {
					if ownedBy(uid, res.UserID) && res.RestaurantID == id {
						d.Bookings = append(d.Bookings, tableRow(res))
					}
				}
			}
			return d, nil
		},
		Forms: []bookingForm{
			{
				Name: "Reserve a table",
				Fields: []formField{
					{Label: "date", Placeholder: "YYYY-MM-DD"},
					{Label: "time", Placeholder: "HH:MM"},
					{Label: "guests", Placeholder: "number of guests"},
					{Label: "requests", Placeholder: "optional"},
				},
				Submit: func(ctx context.Context, c *client.Client, uid string, d detailData, in formInput) (string, error) {
					guests, err := strconv.Atoi(strings.TrimSpace(in.Values[2]))
					if err != nil {
						guests = 0
					}
					req, err := booking.Table(uid, booking.TableForm{
						RestaurantID:    d.Listing.ID,
						Date:            in.Values[0],
						Time:            in.Values[1],
						Guests:          guests,
						SpecialRequests: in.Values[3],
					})
					if err != nil {
						return "", err
					}
					if _, err := c.CreateTableReservation(ctx, req); err != nil {
						return "", err
					}
					return fmt.Sprintf("table for %d requested on %s", guests, formatDate(req.ReservationDate)), nil
				},
			},
		},
		MyBookings: func(ctx context.Context, c *client.Client, uid string) ([]bookingRow, error) {
			reservations, err := c.ListTableReservations(ctx)
			if err != nil {
				return nil, err
			}
			orders, err := c.ListOnlineOrders(ctx)
			if err != nil {
				return nil, err
			}
			var out []bookingRow
			for _, r := range reservations {
				if ownedBy(uid, r.UserID) {
					out = append(out, tableRow(r))
				}
			}
			for _, o := range orders {
				if ownedBy(uid, o.UserID) {
					out = append(out, orderRow(o))
				}
			}
			return out, nil
		},
	}
}

// ---- transport ----

func rideRow(b domain.RideBooking) bookingRow {
	return bookingRow{
		ID:        b.ID,
		Vertical:  domain.VerticalTransport,
		Line:      fmt.Sprintf("%s → %s · %s %s", b.PickupLocation, b.DropOffLocation, formatDate(b.RideDate), b.PickupTime),
		Confirmed: b.BookingStatus,
		cancel: func(ctx context.Context, c *client.Client) error {
			return c.DeleteRideBooking(ctx, b.ID)
		},
	}
}

func transportDesk() desk {
	v, _ := domain.LookupVertical(domain.VerticalTransport)
	return desk{
		Vertical: v,
		List: func(ctx context.Context, c *client.Client) ([]listing, error) {
			items, err := c.ListProviders(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]listing, 0, len(items))
			for _, p := range items {
				out = append(out, listing{
					ID:       p.ID,
					Title:    p.Name,
					Subtitle: fmt.Sprintf("%s · from ¥%s", p.ServiceType, p.BaseFare),
					Image:    p.ImgURL,
				})
			}
			return out, nil
		},
		Detail: func(ctx context.Context, c *client.Client, id int64, uid string) (detailData, error) {
			p, err := c.GetProvider(ctx, id)
			if err != nil {
				return detailData{}, err
			}
			if p == nil {
				return detailData{}, errNotFound
			}
			d := detailData{
				Listing: listing{ID: p.ID, Title: p.Name, Subtitle: p.ServiceType, Image: p.ImgURL},
				Facts: [][2]string{
					{"base fare", money(p.BaseFare)},
					{"per km", money(p.PricePerKM)},
					{"contact", p.ContactInfo},
				},
			}

			routes, err := c.ListRoutePlans(ctx)
			if err != nil {
				return detailData{}, err
			}
			var rl []string
			for _, r := range routes {
				if r.ProviderID == id {
					rl = append(rl, fmt.Sprintf("%s → %s  %s", r.StartLocation, r.EndLocation, dimStyle.Render(r.Distance+" · "+r.EstimatedTime)))
				}
			}
			d.Sections = append(d.Sections, detailSection{Title: "Routes", Lines: rl})

			updates, err := c.ListTrafficUpdates(ctx)
			if err != nil {
				return detailData{}, err
			}
			var ul []string
			for _, u := range updates {
				if u.ProviderID == id {
					ul = append(ul, fmt.Sprintf("%s  %s", dimStyle.Render(formatDate(u.UpdateTime)), cleanText(u.UpdateMessage, 80)))
				}
			}
			d.Sections = append(d.Sections, detailSection{Title: "Traffic", Lines: ul})

			if uid != "" {
				rides, err := c.ListRideBookings(ctx)
				if err != nil {
					return detailData{}, err
				}
				for _, b := range rides {
					if ownedBy(uid, b.UserID) && b.ProviderID == id {
						d.Bookings = append(d.Bookings, rideRow(b))
					}
				}
			}
			return d, nil
		},
		Forms: []bookingForm{
			{
				Name: "Book a ride",
				Fields: []formField{
					{Label: "pickup", Placeholder: "where from"},
					{Label: "drop-off", Placeholder: "where to"},
					{Label: "date", Placeholder: "YYYY-MM-DD"},
					{Label: "time", Placeholder: "HH:MM"},
				},
				Submit: func(ctx context.Context, c *client.Client, uid string, d detailData, in formInput) (string, error) {
					req, err := booking.Ride(uid, booking.RideForm{
						ProviderID: d.Listing.ID,
						Pickup:     in.Values[0],
						DropOff:    in.Values[1],
						Date:       in.Values[2],
						Time:       in.Values[3],
					})
					if err != nil {
						return "", err
					}
					if _, err := c.CreateRideBooking(ctx, req); err != nil {
						return "", err
					}
					return fmt.Sprintf("ride booked: %s → %s", req.PickupLocation, req.DropOffLocation), nil
				},
			},
		},
		MyBookings: func(ctx context.Context, c *client.Client, uid string) ([]bookingRow, error) {
			items, err := c.ListRideBookings(ctx)
			if err != nil {
				return nil, err
			}
			var out []bookingRow
			for _, b := range items {
				if ownedBy(uid, b.UserID) {
					out = append(out, rideRow(b))
				}
			}
			return out, nil
		},
	}
}
