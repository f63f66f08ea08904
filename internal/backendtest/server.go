// Package backendtest runs an in-process travel portal backend for tests. It
// speaks the {code, data} envelope and the detail/msg error bodies the real
// backend uses.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/go-chi/chi/v5"
)

// Secret signs the tokens the fake backend issues.
const Secret = "backendtest-secret"

// Account is a registered user.
type Account struct {
	ID       int64
	Name     string
	Email    string
	Password string
}

// Request is a call the server received.
type Request struct {
	Method        string
	Path          string
	Authorization string
	Body          map[string]any
}

type override struct {
	status int
	body   string
}

// Server is a fake backend. Use URL() as the client's base URL.
type Server struct {
	srv *httptest.Server

	mu          sync.Mutex
	accounts    map[string]*Account // by email
	tokens      map[string]int64    // token -> user id
	revoked     map[string]bool
	collections map[string][]map[string]any
	nextID      int64
	requests    []Request
	overrides   map[string]override // "METHOD path" -> canned reply

	// OmitLoginUserID drops user_id from token responses.
	OmitLoginUserID bool
	// TokenTTL sets the exp claim of issued tokens.
	TokenTTL time.Duration
}

// Collections served with list/detail/create/delete routes.
var Collections = []string{
	"/accommodation/accommodations/",
	"/accommodation/room-types/",
	"/accommodation/guest-services/",
	"/accommodation/room-bookings/",
	"/accommodation/feedback-reviews/",
	"/event-organizers/event/",
	"/event-organizers/event-promotion/",
	"/event-organizers/venue-booking/",
	"/tourism-info/event-notifications/",
	"/information-center/destinations/",
	"/information-center/tours/",
	"/information-center/tour-bookings/",
	"/information-center/event-notifications/",
	"/restaurant/restaurants/",
	"/restaurant/menus/",
	"/restaurant/online-orders/",
	"/restaurant/table-reservations/",
	"/local-transportation/transportation-provider/",
	"/local-transportation/traffic-update/",
	"/local-transportation/route-planning/",
	"/local-transportation/ride-booking/",
}

// bookings are private to the signed-in user and require a token.
var bookings = map[string]bool{
	"/accommodation/room-bookings/":       true,
	"/accommodation/feedback-reviews/":    true,
	"/event-organizers/venue-booking/":    true,
	"/information-center/tour-bookings/":  true,
	"/restaurant/online-orders/":          true,
	"/restaurant/table-reservations/":     true,
	"/local-transportation/ride-booking/": true,
}

// New starts a server and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		accounts:    make(map[string]*Account),
		tokens:      make(map[string]int64),
		revoked:     make(map[string]bool),
		collections: make(map[string][]map[string]any),
		overrides:   make(map[string]override),
		nextID:      100,
		TokenTTL:    time.Hour,
	}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the API base address.
func (s *Server) URL() string {
	return s.srv.URL + "/api"
}

// AddAccount registers a user and returns it.
func (s *Server) AddAccount(name, email, password string) *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a := &Account{ID: s.nextID, Name: name, Email: email, Password: password}
	s.accounts[email] = a
	return a
}

// IssueToken returns a valid token for the account.
func (s *Server) IssueToken(a *Account) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(a)
}

// Revoke makes the backend reject token with 401.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	s.revoked[token] = true
	s.mu.Unlock()
}

// Seed appends records to a collection. Records without an id get one.
func (s *Server) Seed(collection string, records ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if _, ok := r["id"]; !ok {
			s.nextID++
			r["id"] = s.nextID
		}
		s.collections[collection] = append(s.collections[collection], r)
	}
}

// Records returns a copy of a collection.
func (s *Server) Records(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.collections[collection]...)
}

// Reply makes method+path answer with a fixed status and raw body.
func (s *Server) Reply(method, path string, status int, body string) {
	s.mu.Lock()
	s.overrides[method+" "+path] = override{status: status, body: body}
	s.mu.Unlock()
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// CountRequests returns how many requests hit method+path.
func (s *Server) CountRequests(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) issueLocked(a *Account) string {
	claims := jwt.MapClaims{
		"user_id": a.ID,
		"exp":     time.Now().Add(s.TokenTTL).Unix(),
		"jti":     strconv.FormatInt(time.Now().UnixNano(), 36),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	if err != nil {
		panic(fmt.Sprintf("backendtest: sign token: %v", err))
	}
	s.tokens[tok] = a.ID
	return tok
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.canned)
	r.Route("/api", func(r chi.Router) {
		r.Post("/customUser/token/", s.handleToken)
		r.Post("/customUser/create/", s.handleCreateUser)
		r.With(s.requireAuth).Get("/customUser/me/", s.handleMe)
		r.Get("/blog", s.handleList("/blog"))
		for _, c := range Collections {
			r := r
			if bookings[c] {
				r = r.With(s.requireAuth)
			}
			r.Get(c, s.handleList(c))
			r.Post(c, s.handleCreate(c))
			r.Get(c+"{id}/", s.handleDetail(c))
			r.Delete(c+"{id}/", s.handleDelete(c))
		}
		r.Get("/accommodation/feedback-reviews/accommodation/{id}/", s.handleFeedbackFor)
		r.Post("/event-organizers/venue-booking/calculate-price/", s.handlePrice)
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil && r.ContentLength != 0 {
			json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck // best-effort capture
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          strings.TrimPrefix(r.URL.Path, "/api"),
			Authorization: r.Header.Get("Authorization"),
			Body:          body,
		})
		s.mu.Unlock()
		if body != nil {
			r = r.WithContext(withBody(r.Context(), body))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) canned(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		o, ok := s.overrides[r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api")]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(o.status)
		fmt.Fprint(w, o.body) //nolint:errcheck
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.userFor(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"detail": "Given token not valid for any token type",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) userFor(r *http.Request) (int64, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0, false
	}
	tok := strings.TrimPrefix(auth, "Bearer ")
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[tok]
	if !ok || s.revoked[tok] {
		return 0, false
	}
	return id, true
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	email, _ := body["email"].(string)       //nolint:errcheck
	password, _ := body["password"].(string) //nolint:errcheck

	s.mu.Lock()
	a, ok := s.accounts[email]
	if !ok || a.Password != password {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"detail": "No active account found with the given credentials",
		})
		return
	}
	tok := s.issueLocked(a)
	omit := s.OmitLoginUserID
	s.mu.Unlock()

	data := map[string]any{"access": tok, "refresh": "refresh-" + tok[len(tok)-8:]}
	if !omit {
		data["user_id"] = a.ID
	}
	writeJSON(w, http.StatusOK, map[string]any{"code": 200, "data": data})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	name, _ := body["name"].(string)         //nolint:errcheck
	email, _ := body["email"].(string)       //nolint:errcheck
	password, _ := body["password"].(string) //nolint:errcheck

	s.mu.Lock()
	_, exists := s.accounts[email]
	s.mu.Unlock()
	if exists {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"msg": map[string]any{"email": "user with this email already exists."},
		})
		return
	}
	a := s.AddAccount(name, email, password)
	writeJSON(w, http.StatusCreated, map[string]any{
		"code": 201,
		"data": map[string]any{"id": a.ID, "name": a.Name, "email": a.Email},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, _ := s.userFor(r)
	s.mu.Lock()
	var found *Account
	for _, a := range s.accounts {
		if a.ID == id {
			found = a
			break
		}
	}
	s.mu.Unlock()
	if found == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"code": 200,
		"data": map[string]any{"id": found.ID, "name": found.Name, "email": found.Email},
	})
}

func (s *Server) handleList(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := s.Records(collection)
		out := make([]map[string]any, 0, len(records))
		uid, authed := s.userFor(r)
		for _, rec := range records {
			if bookings[collection] && authed && !matchesUser(rec, uid) {
				continue
			}
			if !matchesQuery(rec, r) {
				continue
			}
			out = append(out, rec)
		}
		writeJSON(w, http.StatusOK, map[string]any{"code": 200, "data": out})
	}
}

func (s *Server) handleDetail(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := s.find(collection, chi.URLParam(r, "id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"code": 200, "data": rec})
	}
}

func (s *Server) handleCreate(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := bodyFrom(r.Context())
		if body == nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"msg": "invalid body"})
			return
		}
		rec := make(map[string]any, len(body)+1)
		for k, v := range body {
			rec[k] = v
		}
		s.Seed(collection, rec)
		writeJSON(w, http.StatusCreated, map[string]any{"code": 201, "data": rec})
	}
}

func (s *Server) handleDelete(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s.mu.Lock()
		defer s.mu.Unlock()
		recs := s.collections[collection]
		for i, rec := range recs {
			if idString(rec["id"]) == id {
				s.collections[collection] = append(recs[:i:i], recs[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found."})
	}
}

func (s *Server) handleFeedbackFor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var out []map[string]any
	for _, rec := range s.Records("/accommodation/feedback-reviews/") {
		if idString(rec["accommodation_id"]) == id {
			out = append(out, rec)
		}
	}
	if out == nil {
		out = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"code": 200, "data": out})
}

// handlePrice quotes entry_fee × tickets, answering at the top level.
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	ev, ok := s.find("/event-organizers/event/", idString(body["event"]))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Event not found"})
		return
	}
	fee, _ := strconv.ParseFloat(fmt.Sprint(ev["entry_fee"]), 64) //nolint:errcheck
	n, _ := body["number_of_tickets"].(float64)                  //nolint:errcheck
	writeJSON(w, http.StatusOK, map[string]any{"total_amount": strconv.FormatFloat(fee*n, 'f', 2, 64)})
}

func (s *Server) find(collection, id string) (map[string]any, bool) {
	for _, rec := range s.Records(collection) {
		if idString(rec["id"]) == id {
			return rec, true
		}
	}
	return nil, false
}

func matchesUser(rec map[string]any, uid int64) bool {
	for _, k := range []string{"user_id", "user"} {
		if v, ok := rec[k]; ok {
			return idString(v) == strconv.FormatInt(uid, 10)
		}
	}
	return true
}

func matchesQuery(rec map[string]any, r *http.Request) bool {
	q := r.URL.Query()
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, ok := rec[k]
		if !ok {
			continue
		}
		if idString(v) != q.Get(k) {
			return false
		}
	}
	return true
}

func idString(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	case string:
		return n
	default:
		return fmt.Sprint(v)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
