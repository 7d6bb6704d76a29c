// Package session owns the console's authentication state: hydration from
// the keystore, the OTP login flow, logout, and the invalidation signal that
// keeps every observer of that state consistent.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"adminpro/console/internal/api"
	"adminpro/console/internal/config"
	"adminpro/console/internal/ids"
	"adminpro/console/internal/keystore"
	"adminpro/console/internal/models"
)

// AuthState is the in-memory session state. Authenticated is true iff User is
// non-nil; Loading is true only until the first hydration completes.
type AuthState struct {
	Authenticated bool
	User          *models.User
	Loading       bool
}

// Result is the discriminated outcome of the OTP flows. These never surface
// as panics or raw errors; the error text is ready for display.
type Result struct {
	Success bool
	Error   string
}

type LoginResult struct {
	Result
	Route string
}

const (
	msgInvalidMobile = "Invalid mobile number"
	msgInvalidRole   = "Invalid role"
)

type Store struct {
	keys *keystore.SessionKeys
	api  *api.Client
	cfg  *config.AppConfig
	log  zerolog.Logger

	mu    sync.RWMutex
	state AuthState

	subMu sync.Mutex
	subs  map[string]chan struct{}

	now func() time.Time
}

func NewStore(keys *keystore.SessionKeys, client *api.Client, cfg *config.AppConfig, logger zerolog.Logger) *Store {
	return &Store{
		keys:  keys,
		api:   client,
		cfg:   cfg,
		log:   logger.With().Str("component", "session").Logger(),
		state: AuthState{Loading: true},
		subs:  make(map[string]chan struct{}),
		now:   time.Now,
	}
}

// State returns a copy of the current auth state.
func (s *Store) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state
	if state.User != nil {
		u := *state.User
		state.User = &u
	}
	return state
}

func (s *Store) setState(state AuthState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// CheckAuth hydrates auth state from the keystore. An absent, expired or
// corrupt record yields an unauthenticated state; expired records are purged
// so the next reader sees them as absent.
func (s *Store) CheckAuth(ctx context.Context) error {
	record, err := s.keys.ReadRecord(ctx)
	if err != nil {
		s.setState(AuthState{})
		return fmt.Errorf("hydrate session: %w", err)
	}
	if record == nil {
		s.setState(AuthState{})
		return nil
	}

	if record.Expired(s.now(), s.cfg.Session.TTL) {
		if err := s.keys.ClearSession(ctx); err != nil {
			s.log.Warn().Err(err).Msg("purge expired session failed")
		}
		s.log.Debug().Msg("session expired during hydration")
		s.setState(AuthState{})
		return nil
	}

	user := record.User
	s.setState(AuthState{Authenticated: true, User: &user})
	return nil
}

// SendOTP requests a one-time password for the contact. Malformed contacts
// fail before any network call; this never touches auth state.
func (s *Store) SendOTP(ctx context.Context, contact string) Result {
	mobile, ok := parseContact(contact)
	if !ok {
		return Result{Error: msgInvalidMobile}
	}

	err := s.api.SendOTP(ctx, api.OTPRequest{
		CountryCode: s.cfg.API.CountryCode,
		MobileNo:    mobile,
	})
	if err != nil {
		return failure(err)
	}
	return Result{Success: true}
}

// Login verifies the OTP and, on success, persists the session record plus
// the mirrored token key and flips auth state. Users whose role maps to no
// landing area are rejected before anything is persisted or mutated, even
// though the OTP round trip succeeded.
func (s *Store) Login(ctx context.Context, contact, otp string) LoginResult {
	mobile, ok := parseContact(contact)
	if !ok {
		return LoginResult{Result: Result{Error: msgInvalidMobile}}
	}

	payload, err := s.api.VerifyOTP(ctx, api.VerifyOTPRequest{
		OTPRequest: api.OTPRequest{
			CountryCode: s.cfg.API.CountryCode,
			MobileNo:    mobile,
		},
		OTP: otp,
	})
	if err != nil {
		return LoginResult{Result: failure(err)}
	}

	user, token, err := normalizeLogin(payload, contact)
	if err != nil {
		s.log.Warn().Err(err).Msg("unusable verify-otp response")
		return LoginResult{Result: Result{Error: err.Error()}}
	}

	var route string
	switch user.RoleID {
	case models.RoleIDAdmin:
		route = models.RouteAdminHome
	case models.RoleIDInspector:
		route = models.RouteInspectorHome
	default:
		s.log.Warn().Int("role_id", user.RoleID).Msg("login rejected for unroutable role")
		return LoginResult{Result: Result{Error: msgInvalidRole}}
	}

	record := models.SessionRecord{
		User:      user,
		Token:     token,
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.keys.WriteRecord(ctx, record); err != nil {
		return LoginResult{Result: Result{Error: fmt.Sprintf("persist session: %v", err)}}
	}

	s.setState(AuthState{Authenticated: true, User: &user})
	s.log.Info().Str("user_id", user.ID).Int("role_id", user.RoleID).Msg("login succeeded")
	return LoginResult{Result: Result{Success: true}, Route: route}
}

// Logout clears both storage keys, then signals observers, then drops the
// in-memory state. Key deletion must come first: a listener woken by the
// signal reads the keystore and must see the session as absent.
func (s *Store) Logout(ctx context.Context) (string, error) {
	if err := s.keys.ClearSession(ctx); err != nil {
		return "", fmt.Errorf("clear session: %w", err)
	}
	s.publish()
	s.setState(AuthState{})
	s.log.Info().Msg("logged out")
	return models.RouteLogin, nil
}

// UpdateUser merges the patch into the current user and into the persisted
// record in place. Token and timestamp are preserved: a profile edit does not
// extend the session's validity window. No-op when unauthenticated.
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	s.mu.Lock()
	if !s.state.Authenticated || s.state.User == nil {
		s.mu.Unlock()
		return nil
	}
	user := *s.state.User
	patch.Apply(&user)
	s.state.User = &user
	s.mu.Unlock()

	record, err := s.keys.ReadRecord(ctx)
	if err != nil {
		return fmt.Errorf("update session record: %w", err)
	}
	if record == nil {
		return nil
	}
	record.User = user
	return s.keys.WriteRecord(ctx, *record)
}

// Subscribe registers for invalidation signals (logout or out-of-process key
// changes). The channel has a one-slot buffer; a slow consumer coalesces
// signals rather than blocking the store.
func (s *Store) Subscribe() (string, <-chan struct{}) {
	id := ids.New()
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	s.subs[id] = ch
	s.subMu.Unlock()
	return id, ch
}

func (s *Store) Unsubscribe(id string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) publish() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func parseContact(contact string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(contact), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// failure maps any transport or backend error to a displayable Result,
// preferring the structured backend message when one exists.
func failure(err error) Result {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return Result{Error: apiErr.Message}
	}
	return Result{Error: err.Error()}
}
