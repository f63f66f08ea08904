package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/naveenspark/tripdesk/pkg/domain"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		fmt.Fprint(w, `{"code":200,"data":[]}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("test-token"))
	if _, err := c.ListEvents(context.Background()); err != nil {
		t.Fatalf("ListEvents() error: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-token")
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q, want %q", gotType, "application/json")
	}
}

func TestDo_NoTokenNoAuthorization(t *testing.T) {
	tests := []struct {
		name   string
		tokens TokenSource
	}{
		{"nil source", nil},
		{"empty token", staticToken("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var present bool
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, present = r.Header["Authorization"]
				fmt.Fprint(w, `{"code":200,"data":[]}`) //nolint:errcheck
			}))
			defer srv.Close()

			c := New(srv.URL, tt.tokens)
			if _, err := c.ListRestaurants(context.Background()); err != nil {
				t.Fatalf("ListRestaurants() error: %v", err)
			}
			if present {
				t.Error("expected no Authorization header without a token")
			}
		})
	}
}

func TestDo_ExplicitAuthorizationWins(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"code":200,"data":{"id":7,"email":"a@b.co"}}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("stored"))
	me, err := c.GetMeWithToken(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("GetMeWithToken() error: %v", err)
	}
	if gotAuth != "Bearer fresh" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer fresh")
	}
	if me == nil || me.ID != 7 {
		t.Errorf("me = %+v, want ID 7", me)
	}
}

func TestDo_SendsRequestID(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-ID"))
		fmt.Fprint(w, `{}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	for i := 0; i < 2; i++ {
		if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/ping"}); err != nil {
			t.Fatalf("Do() error: %v", err)
		}
	}
	if len(ids) != 2 || ids[0] == "" || ids[0] == ids[1] {
		t.Errorf("request ids = %v, want two distinct non-empty ids", ids)
	}
}

func TestDo_ErrorNormalization(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"token expired"}`, KindAuthExpired, MsgAuthExpired},
		{"forbidden", http.StatusForbidden, `{"detail":"nope"}`, KindPermissionDenied, MsgPermissionDenied},
		{"detail", http.StatusBadRequest, `{"detail":"X"}`, KindBackend, "X"},
		{"detail before msg", http.StatusBadRequest, `{"msg":"m","detail":"d"}`, KindBackend, "d"},
		{"msg string", http.StatusBadRequest, `{"msg":"room unavailable"}`, KindBackend, "room unavailable"},
		{"msg map", http.StatusBadRequest, `{"msg":{"a":"x","b":"y"}}`, KindBackend, "x, y"},
		{"msg map in wire order", http.StatusBadRequest, `{"msg":{"b":"y","a":"x"}}`, KindBackend, "y, x"},
		{"msg map with lists", http.StatusBadRequest, `{"msg":{"email":["bad","taken"],"name":"short"}}`, KindBackend, "bad, taken, short"},
		{"plain text body", http.StatusInternalServerError, `boom`, KindUnknown, MsgUnknown},
		{"empty detail", http.StatusBadRequest, `{"detail":""}`, KindUnknown, MsgUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body) //nolint:errcheck
			}))
			defer srv.Close()

			c := New(srv.URL, staticToken("tok"))
			_, err := c.ListTours(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf = %v, want %v", got, tt.wantKind)
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Errorf("error type = %T, want *Error", err)
			}
		})
	}
}

func TestDo_UnauthorizedFiresExpiryOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	var fired int32
	c.OnSessionExpired(func() { atomic.AddInt32(&fired, 1) })

	if _, err := c.GetMe(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("expiry handlers fired %d times, want 1", got)
	}
}

func TestDo_ForbiddenDoesNotFireExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	fired := false
	c.OnSessionExpired(func() { fired = true })

	if err := c.DeleteRideBooking(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}
	if fired {
		t.Error("expiry handler fired on 403")
	}
}

func TestOnSessionExpired_Unsubscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	fired := false
	unsubscribe := c.OnSessionExpired(func() { fired = true })
	unsubscribe()

	c.GetMe(context.Background()) //nolint:errcheck
	if fired {
		t.Error("handler fired after unsubscribe")
	}
}

func TestDo_NetworkFailureUsesTransportMessage(t *testing.T) {
	c := New("http://backend.invalid", staticToken("tok"), WithTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("network is unreachable")
	})))
	_, err := c.ListProviders(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "network is unreachable" {
		t.Errorf("error = %q, want %q", err.Error(), "network is unreachable")
	}
	if KindOf(err) != KindNetwork {
		t.Errorf("KindOf = %v, want %v", KindOf(err), KindNetwork)
	}
}

func TestDo_UnsupportedMethod(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if _, err := c.Do(context.Background(), Request{Method: http.MethodPatch, Path: "/x"}); err == nil {
		t.Fatal("expected error for PATCH")
	}
	if hits != 0 {
		t.Errorf("server received %d requests, want 0", hits)
	}
}

func TestDo_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second) // slow server
		fmt.Fprint(w, `{}`)         //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetEvent(ctx, 1)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if KindOf(err) != KindNetwork {
		t.Errorf("KindOf = %v, want %v", KindOf(err), KindNetwork)
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New("", nil)
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
	if c.httpClient.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", c.httpClient.Timeout)
	}
	if got := New("http://x/api/", nil).BaseURL(); got != "http://x/api" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", got)
	}
}

func TestListDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"envelope", `{"code":200,"data":[{"id":1,"name":"Louvre"},{"id":2,"name":"Orsay"}]}`, 2},
		{"bare list", `[{"id":1,"name":"Louvre"}]`, 1},
		{"envelope without data", `{"code":200,"message":"ok"}`, 0},
		{"data is object", `{"code":200,"data":{"id":1}}`, 0},
		{"data is null", `{"code":200,"data":null}`, 0},
		{"not json", `<html>`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tt.body) //nolint:errcheck
			}))
			defer srv.Close()

			c := New(srv.URL, nil)
			got, err := c.ListDestinations(context.Background())
			if err != nil {
				t.Fatalf("ListDestinations() error: %v", err)
			}
			if got == nil {
				t.Fatal("ListDestinations() = nil, want non-nil slice")
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDetailDegradesToNil(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantNil bool
	}{
		{"envelope", `{"code":200,"data":{"id":4,"name":"Bistro"}}`, false},
		{"bare object", `{"id":4,"name":"Bistro"}`, false},
		{"data is list", `{"code":200,"data":[]}`, true},
		{"empty body", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tt.body) //nolint:errcheck
			}))
			defer srv.Close()

			c := New(srv.URL, nil)
			got, err := c.GetRestaurant(context.Background(), 4)
			if err != nil {
				t.Fatalf("GetRestaurant() error: %v", err)
			}
			if (got == nil) != tt.wantNil {
				t.Fatalf("GetRestaurant() = %+v, wantNil %v", got, tt.wantNil)
			}
			if got != nil && got.Name != "Bistro" {
				t.Errorf("Name = %q, want %q", got.Name, "Bistro")
			}
		})
	}
}

func TestCreateRoomBooking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/accommodation/room-bookings/" {
			http.NotFound(w, r)
			return
		}
		var req RoomBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"code": 201,
			"data": domain.RoomBooking{
				ID:           55,
				RoomTypeID:   req.RoomTypeID,
				UserID:       req.UserID,
				CheckInDate:  req.CheckInDate,
				CheckOutDate: req.CheckOutDate,
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	b, err := c.CreateRoomBooking(context.Background(), RoomBookingRequest{
		CheckInDate:     "2026-11-01",
		CheckOutDate:    "2026-11-03",
		RoomTypeID:      2,
		AccommodationID: 9,
		UserID:          12,
	})
	if err != nil {
		t.Fatalf("CreateRoomBooking() error: %v", err)
	}
	if b.ID != 55 || b.UserID != 12 {
		t.Errorf("booking = %+v, want ID 55 for user 12", b)
	}
}

func TestQueryParameters(t *testing.T) {
	tests := []struct {
		name      string
		call      func(*Client) error
		wantPath  string
		wantQuery string
	}{
		{
			name: "room types by accommodation",
			call: func(c *Client) error {
				_, err := c.ListAccommodationRoomTypes(context.Background(), 9)
				return err
			},
			wantPath:  "/accommodation/room-types/",
			wantQuery: "accommodation_id=9",
		},
		{
			name: "menus by restaurant",
			call: func(c *Client) error {
				_, err := c.ListMenus(context.Background(), 4)
				return err
			},
			wantPath:  "/restaurant/menus/",
			wantQuery: "restaurant=4",
		},
		{
			name: "venue bookings by event",
			call: func(c *Client) error {
				_, err := c.ListVenueBookings(context.Background(), 31)
				return err
			},
			wantPath:  "/event-organizers/venue-booking/",
			wantQuery: "event_id=31",
		},
		{
			name: "feedback by accommodation",
			call: func(c *Client) error {
				_, err := c.ListAccommodationFeedback(context.Background(), 9)
				return err
			},
			wantPath: "/accommodation/feedback-reviews/accommodation/9/",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotQuery string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
				fmt.Fprint(w, `{"code":200,"data":[]}`) //nolint:errcheck
			}))
			defer srv.Close()

			if err := tt.call(New(srv.URL, nil)); err != nil {
				t.Fatalf("call error: %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %q, want %q", gotPath, tt.wantPath)
			}
			if gotQuery != tt.wantQuery {
				t.Errorf("query = %q, want %q", gotQuery, tt.wantQuery)
			}
		})
	}
}

func TestCalculateVenuePrice_TopLevel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total_amount":"45.00"}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	p, err := c.CalculateVenuePrice(context.Background(), VenuePriceRequest{Event: 1, NumberOfTickets: 3})
	if err != nil {
		t.Fatalf("CalculateVenuePrice() error: %v", err)
	}
	if p == nil || p.TotalAmount != "45.00" {
		t.Errorf("price = %+v, want 45.00", p)
	}
}

func TestDelete_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/information-center/tour-bookings/8/" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	if err := c.DeleteTourBooking(context.Background(), 8); err != nil {
		t.Fatalf("DeleteTourBooking() error: %v", err)
	}
}

func TestResponseEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"code":200,"data":{"id":3},"message":"ok"}`) //nolint:errcheck
	}))
	defer srv.Close()

	resp, err := New(srv.URL, nil).Do(context.Background(), Request{Path: "/information-center/destinations/3/"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	env, err := resp.Envelope()
	if err != nil {
		t.Fatalf("Envelope() error: %v", err)
	}
	if env.Code != 200 || env.Message != "ok" || string(env.Data) != `{"id":3}` {
		t.Errorf("envelope = %+v", env)
	}

	if _, err := (&Response{Body: []byte("<html>")}).Envelope(); err == nil {
		t.Error("Envelope() on non-JSON body should fail")
	}
}

func TestEndpointRoutes(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		fmt.Fprint(w, `{"code":200,"data":{"id":5,"name":"Harbor Jazz Night"}}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	ctx := context.Background()
	if _, err := c.ListRoomTypes(ctx); err != nil {
		t.Fatalf("ListRoomTypes() error: %v", err)
	}
	if err := c.DeleteRoomType(ctx, 11); err != nil {
		t.Fatalf("DeleteRoomType() error: %v", err)
	}
	if err := c.DeleteFeedback(ctx, 12); err != nil {
		t.Fatalf("DeleteFeedback() error: %v", err)
	}
	ev, err := c.CreateEvent(ctx, CreateEventRequest{Name: "Harbor Jazz Night", Venue: "Pier 3", EventDate: "2026-06-01", EntryFee: "20.00", MaxParticipants: 80})
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}
	if ev == nil || ev.ID != 5 || ev.Name != "Harbor Jazz Night" {
		t.Errorf("CreateEvent() = %+v", ev)
	}
	if err := c.DeleteEvent(ctx, 5); err != nil {
		t.Fatalf("DeleteEvent() error: %v", err)
	}
	if tour, err := c.GetTour(ctx, 8); err != nil || tour == nil || tour.ID != 5 {
		t.Fatalf("GetTour() = %+v, %v", tour, err)
	}
	if menu, err := c.GetMenu(ctx, 61); err != nil || menu == nil || menu.ID != 5 {
		t.Fatalf("GetMenu() = %+v, %v", menu, err)
	}

	want := []string{
		"GET /accommodation/room-types/",
		"DELETE /accommodation/room-types/11/",
		"DELETE /accommodation/feedback-reviews/12/",
		"POST /event-organizers/event/",
		"DELETE /event-organizers/event/5/",
		"GET /information-center/tours/8/",
		"GET /restaurant/menus/61/",
	}
	if len(got) != len(want) {
		t.Fatalf("requests = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request %d = %q, want %q", i, got[i], want[i])
		}
	}
}
