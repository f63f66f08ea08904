// Package session owns the signed-in state: the token, the user identifier
// and whether the token has been accepted by the backend. It is the token
// source for the API client and reacts to the client's session-expired
// notifications.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/naveenspark/tripdesk/pkg/client"
	"github.com/naveenspark/tripdesk/pkg/domain"
)

// MinPasswordLength is the shortest password the sign-in form accepts.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var (
	ErrInvalidEmail  = errors.New("please enter a valid email address")
	ErrShortPassword = fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	ErrNoToken       = errors.New("login response did not include a token")
	ErrNoUserID      = errors.New("user id not found")
	ErrNotAttached   = errors.New("session manager has no backend attached")
)

// Event reports a session transition.
type Event int

const (
	EventSignedIn Event = iota
	EventSignedOut
	// EventExpired means the backend rejected the token. Listeners should
	// send the user to sign-in.
	EventExpired
)

func (e Event) String() string {
	switch e {
	case EventSignedIn:
		return "signed_in"
	case EventSignedOut:
		return "signed_out"
	case EventExpired:
		return "expired"
	}
	return "unknown"
}

// State is a snapshot of the session.
type State struct {
	Authenticated bool
	Token         string
	UserID        string
}

// Backend is the subset of the API client the manager needs.
type Backend interface {
	ObtainToken(ctx context.Context, creds client.Credentials) (*domain.TokenPair, error)
	GetMe(ctx context.Context) (*domain.User, error)
	GetMeWithToken(ctx context.Context, token string) (*domain.User, error)
	OnSessionExpired(fn func()) (unsubscribe func())
}

// Manager is the single owner of session state. Without a token it is never
// authenticated and holds no user identifier.
type Manager struct {
	store  Store
	logger *slog.Logger

	mu            sync.Mutex
	backend       Backend
	detach        func()
	token         string
	userID        string
	authenticated bool
	nextSubID     int
	listeners     map[int]func(Event)
}

// NewManager creates a manager over store. Call Attach before Init or Login.
func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:     store,
		logger:    logger,
		listeners: make(map[int]func(Event)),
	}
}

// Attach connects the manager to the backend and subscribes to its
// session-expired notifications. Attaching again replaces the previous
// backend.
func (m *Manager) Attach(b Backend) {
	m.mu.Lock()
	prev := m.detach
	m.backend = b
	m.mu.Unlock()
	if prev != nil {
		prev()
	}
	detach := b.OnSessionExpired(m.Expire)
	m.mu.Lock()
	m.detach = detach
	m.mu.Unlock()
}

// Close stops listening to the backend.
func (m *Manager) Close() {
	m.mu.Lock()
	detach := m.detach
	m.detach = nil
	m.mu.Unlock()
	if detach != nil {
		detach()
	}
}

// Subscribe registers fn for session events. Events are delivered
// synchronously, never while the manager's lock is held.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.listeners[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Manager) emit(e Event) {
	m.mu.Lock()
	fns := make([]func(Event), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	m.logger.Debug("session event", slog.String("event", e.String()))
	for _, fn := range fns {
		fn(e)
	}
}

// Token returns the current token, or "" when signed out.
func (m *Manager) Token() string {
	return m.CurrentToken()
}

// CurrentToken returns the current token, or "" when signed out.
func (m *Manager) CurrentToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// UserID returns the signed-in user's identifier, or "".
func (m *Manager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID
}

// Authenticated reports whether the backend has accepted the token.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// State returns a snapshot of the session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{Authenticated: m.authenticated, Token: m.token, UserID: m.userID}
}

// TokenExpiry returns the token's exp claim when it has one. It does not
// verify the token.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	return tokenExpiry(m.CurrentToken())
}

func (m *Manager) backendOrErr() (Backend, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backend == nil {
		return nil, ErrNotAttached
	}
	return m.backend, nil
}

// Init restores the stored session and validates it against the profile
// endpoint. Any failure leaves the session signed out with storage cleared.
func (m *Manager) Init(ctx context.Context) error {
	b, err := m.backendOrErr()
	if err != nil {
		return err
	}
	stored, err := m.store.Load()
	if err != nil {
		m.logger.Warn("load session", slog.String("error", err.Error()))
	}
	if stored.Token == "" {
		m.reset()
		return nil
	}

	m.mu.Lock()
	m.token = stored.Token
	m.userID = ""
	m.authenticated = false
	m.mu.Unlock()

	user, err := b.GetMe(ctx)
	if err == nil && (user == nil || user.ID == 0) {
		err = ErrNoUserID
	}
	if err != nil {
		m.logger.Info("stored session rejected", slog.String("error", err.Error()))
		if m.clearIf(stored.Token) {
			m.emit(EventSignedOut)
		}
		return err
	}

	uid := strconv.FormatInt(user.ID, 10)
	m.mu.Lock()
	if m.token != stored.Token {
		// Expired or replaced while the profile call was in flight.
		m.mu.Unlock()
		return nil
	}
	m.userID = uid
	m.authenticated = true
	m.mu.Unlock()
	if err := m.store.SaveUserID(uid); err != nil {
		m.logger.Warn("save user id", slog.String("error", err.Error()))
	}
	m.emit(EventSignedIn)
	return nil
}

// Login exchanges credentials for a token, persists it and resolves the
// user identifier. When the token is accepted but the identifier cannot be
// resolved, the session stays authenticated without a user identifier and
// the returned error wraps ErrNoUserID.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}
	b, err := m.backendOrErr()
	if err != nil {
		return err
	}

	pair, err := b.ObtainToken(ctx, client.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	if pair == nil || pair.Access == "" {
		return ErrNoToken
	}
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clear previous session", slog.String("error", err.Error()))
	}
	if err := m.store.SaveToken(pair.Access); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	m.mu.Lock()
	m.token = pair.Access
	m.userID = ""
	m.authenticated = true
	m.mu.Unlock()
	m.logger.Info("signed in", slog.String("email", email))

	user, err := b.GetMeWithToken(ctx, pair.Access)
	if err != nil {
		m.logger.Warn("profile after login", slog.String("error", err.Error()))
		if m.holds(pair.Access) {
			m.emit(EventSignedIn)
		}
		return fmt.Errorf("%w: %w", ErrNoUserID, err)
	}
	var id int64
	if user != nil {
		id = user.ID
	}
	if id == 0 {
		id = pair.UserID
	}
	if id == 0 {
		m.emit(EventSignedIn)
		return ErrNoUserID
	}

	uid := strconv.FormatInt(id, 10)
	if err := m.store.SaveUserID(uid); err != nil {
		m.logger.Warn("save user id", slog.String("error", err.Error()))
	}
	m.mu.Lock()
	if m.token == pair.Access {
		m.userID = uid
	}
	m.mu.Unlock()
	m.emit(EventSignedIn)
	return nil
}

// Logout clears the session. It is safe to call when already signed out.
func (m *Manager) Logout() error {
	m.mu.Lock()
	had := m.token != ""
	m.token, m.userID, m.authenticated = "", "", false
	m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if had {
		m.emit(EventSignedOut)
	}
	return nil
}

// Expire clears the session after the backend rejected the token. Only the
// transition from signed in to signed out emits EventExpired, so repeated
// rejections produce a single redirect.
func (m *Manager) Expire() {
	m.mu.Lock()
	had := m.token != ""
	m.token, m.userID, m.authenticated = "", "", false
	m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clear expired session", slog.String("error", err.Error()))
	}
	if had {
		m.logger.Info("session expired")
		m.emit(EventExpired)
	}
}

func (m *Manager) holds(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token == token
}

// clearIf clears the session only if it still holds token.
func (m *Manager) clearIf(token string) bool {
	m.mu.Lock()
	if m.token != token {
		m.mu.Unlock()
		return false
	}
	m.token, m.userID, m.authenticated = "", "", false
	m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clear session", slog.String("error", err.Error()))
	}
	return true
}

func (m *Manager) reset() {
	m.mu.Lock()
	m.token, m.userID, m.authenticated = "", "", false
	m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clear session", slog.String("error", err.Error()))
	}
}

// ValidateCredentials checks the sign-in form before any request is made.
func ValidateCredentials(email, password string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrShortPassword
	}
	return nil
}
