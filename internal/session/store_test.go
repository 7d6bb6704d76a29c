package session

import (
	"context"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"adminpro/console/internal/api"
	"adminpro/console/internal/config"
	"adminpro/console/internal/keystore"
	"adminpro/console/internal/models"
)

// fakeBackend is a minimal stand-in for the admin REST API.
type fakeBackend struct {
	srv *httptest.Server

	calls atomic.Int64

	sendOTPStatus int
	sendOTPBody   gin.H
	verifyStatus  int
	verifyBody    gin.H
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fb := &fakeBackend{
		sendOTPStatus: 200,
		sendOTPBody:   gin.H{"code": 200},
		verifyStatus:  200,
		verifyBody:    gin.H{"data": gin.H{"accessToken": "t", "roleId": 1, "id": "1", "name": "A", "email": "a@x.com"}},
	}

	router := gin.New()
	router.POST("/admin/auth/mobile/send-otp", func(c *gin.Context) {
		fb.calls.Add(1)
		c.JSON(fb.sendOTPStatus, fb.sendOTPBody)
	})
	router.POST("/admin/auth/mobile/verify-otp", func(c *gin.Context) {
		fb.calls.Add(1)
		c.JSON(fb.verifyStatus, fb.verifyBody)
	})

	fb.srv = httptest.NewServer(router)
	t.Cleanup(fb.srv.Close)
	return fb
}

func newTestStore(t *testing.T, backendURL string) (*Store, *keystore.Memory, *keystore.SessionKeys) {
	t.Helper()

	cfg := &config.AppConfig{
		API: config.APIConfig{
			BaseURL:     backendURL,
			Timeout:     5 * time.Second,
			CountryCode: 91,
		},
		Session: config.SessionConfig{TTL: 24 * time.Hour},
	}

	kr := keystore.NewMemory()
	keys := keystore.NewSessionKeys(kr)
	client := api.New(cfg.API, nil, zerolog.Nop())
	return NewStore(keys, client, cfg, zerolog.Nop()), kr, keys
}

func TestHydrationExpiryBoundary(t *testing.T) {
	fb := newFakeBackend(t)
	now := time.Now()
	ctx := context.Background()

	cases := []struct {
		name          string
		age           time.Duration
		authenticated bool
	}{
		{"fresh", time.Minute, true},
		{"one ms inside window", 24*time.Hour - time.Millisecond, true},
		{"exactly at ttl", 24 * time.Hour, false},
		{"past ttl", 25 * time.Hour, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, kr, keys := newTestStore(t, fb.srv.URL)
			store.now = func() time.Time { return now }

			require.NoError(t, keys.WriteRecord(ctx, models.SessionRecord{
				User:      models.User{ID: "u1", Email: "a@x.com", RoleID: 1},
				Token:     "t",
				Timestamp: now.Add(-tc.age).UnixMilli(),
			}))

			require.NoError(t, store.CheckAuth(ctx))
			state := store.State()
			require.False(t, state.Loading)
			require.Equal(t, tc.authenticated, state.Authenticated)

			if !tc.authenticated {
				require.Nil(t, state.User)
				_, err := kr.Get(ctx, keystore.KeySession)
				require.ErrorIs(t, err, keystore.ErrNotFound)
				_, err = kr.Get(ctx, keystore.KeyToken)
				require.ErrorIs(t, err, keystore.ErrNotFound)
			} else {
				require.NotNil(t, state.User)
				require.Equal(t, "u1", state.User.ID)
			}
		})
	}
}

func TestHydrationToleratesGarbage(t *testing.T) {
	fb := newFakeBackend(t)
	store, kr, _ := newTestStore(t, fb.srv.URL)
	ctx := context.Background()

	require.NoError(t, kr.Set(ctx, keystore.KeySession, []byte("garbage%%%")))

	require.NoError(t, store.CheckAuth(ctx))
	state := store.State()
	require.False(t, state.Authenticated)
	require.False(t, state.Loading)

	_, err := kr.Get(ctx, keystore.KeySession)
	require.ErrorIs(t, err, keystore.ErrNotFound)
}

func TestHydrationAbsentRecord(t *testing.T) {
	fb := newFakeBackend(t)
	store, _, _ := newTestStore(t, fb.srv.URL)

	require.True(t, store.State().Loading)
	require.NoError(t, store.CheckAuth(context.Background()))

	state := store.State()
	require.False(t, state.Loading)
	require.False(t, state.Authenticated)
	require.Nil(t, state.User)
}

func TestLoginRoundTrip(t *testing.T) {
	fb := newFakeBackend(t)
	store, kr, keys := newTestStore(t, fb.srv.URL)
	ctx := context.Background()

	result := store.Login(ctx, "9876543210", "123456")
	require.True(t, result.Success, result.Error)
	require.Equal(t, models.RouteAdminHome, result.Route)

	state := store.State()
	require.True(t, state.Authenticated)
	require.Equal(t, models.RoleIDAdmin, state.User.RoleID)
	require.Equal(t, "a@x.com", state.User.Email)

	record, err := keys.ReadRecord(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, *state.User, record.User)
	require.Equal(t, "t", record.Token)
	require.InDelta(t, time.Now().UnixMilli(), record.Timestamp, float64(5*time.Second/time.Millisecond))

	rawToken, err := kr.Get(ctx, keystore.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "t", string(rawToken))
}

func TestLoginNestedUserShape(t *testing.T) {
	fb := newFakeBackend(t)
	fb.verifyBody = gin.H{"data": gin.H{
		"accessToken": "nested-tok",
		"user":        gin.H{"id": 42, "name": "Ravi", "email": "ravi@x.com", "roleId": 2, "role": "Inspector"},
	}}
	store, _, keys := newTestStore(t, fb.srv.URL)

	result := store.Login(context.Background(), "9876543210", "123456")
	require.True(t, result.Success, result.Error)
	require.Equal(t, models.RouteInspectorHome, result.Route)

	state := store.State()
	require.Equal(t, "42", state.User.ID)
	require.Equal(t, "Inspector", state.User.Role)

	record, err := keys.ReadRecord(context.Background())
	require.NoError(t, err)
	require.Equal(t, "nested-tok", record.Token)
}

func TestLoginFlatMinimalShapeFallsBackToContact(t *testing.T) {
	fb := newFakeBackend(t)
	fb.verifyBody = gin.H{"data": gin.H{"accessToken": "tt", "roleId": 1}}
	store, _, _ := newTestStore(t, fb.srv.URL)

	result := store.Login(context.Background(), "9876543210", "123456")
	require.True(t, result.Success, result.Error)

	state := store.State()
	require.Equal(t, "9876543210", state.User.Email)
	require.Equal(t, "9876543210", state.User.Phone)
	require.Equal(t, "9876543210", state.User.ID)
}

func TestLoginRoleGate(t *testing.T) {
	fb := newFakeBackend(t)
	fb.verifyBody = gin.H{"data": gin.H{"accessToken": "t", "roleId": 99, "id": "1"}}
	store, kr, _ := newTestStore(t, fb.srv.URL)
	ctx := context.Background()

	result := store.Login(ctx, "9876543210", "123456")
	require.False(t, result.Success)
	require.Equal(t, "Invalid role", result.Error)
	require.Empty(t, result.Route)

	// business-rule rejection leaves no partial login behind
	require.False(t, store.State().Authenticated)
	_, err := kr.Get(ctx, keystore.KeySession)
	require.ErrorIs(t, err, keystore.ErrNotFound)
	_, err = kr.Get(ctx, keystore.KeyToken)
	require.ErrorIs(t, err, keystore.ErrNotFound)
}

func TestInvalidContactShortCircuits(t *testing.T) {
	fb := newFakeBackend(t)
	store, _, _ := newTestStore(t, fb.srv.URL)
	ctx := context.Background()

	for _, contact := range []string{"abc", "", "-42", "0", "98765x3210"} {
		result := store.SendOTP(ctx, contact)
		require.False(t, result.Success)
		require.Equal(t, "Invalid mobile number", result.Error)

		login := store.Login(ctx, contact, "000000")
		require.False(t, login.Success)
		require.Equal(t, "Invalid mobile number", login.Error)
	}

	require.Zero(t, fb.calls.Load(), "no network calls for invalid contacts")
}

func TestSendOTPSurfacesBackendMessage(t *testing.T) {
	fb := newFakeBackend(t)
	fb.sendOTPStatus = 429
	fb.sendOTPBody = gin.H{"errors": []gin.H{
		{"message": "too many requests"},
		{"message": "try again later"},
	}}
	store, _, _ := newTestStore(t, fb.srv.URL)

	result := store.SendOTP(context.Background(), "9876543210")
	require.False(t, result.Success)
	require.Equal(t, "too many requests; try again later", result.Error)
	require.False(t, store.State().Authenticated, "sendOTP never authenticates")
}

func TestSendOTPTransportFailure(t *testing.T) {
	store, _, _ := newTestStore(t, "http://127.0.0.1:1")

	result := store.SendOTP(context.Background(), "9876543210")
	require.False(t, result.Success)
	require.NotEmpty(t, result.Error)
}

func TestLogoutClearsKeysBeforeSignal(t *testing.T) {
	fb := newFakeBackend(t)
	store, kr, keys := newTestStore(t, fb.srv.URL)
	ctx := context.Background()

	require.NoError(t, keys.WriteRecord(ctx, models.SessionRecord{
		User:      models.User{ID: "u1", RoleID: 1},
		Token:     "t",
		Timestamp: time.Now().UnixMilli(),
	}))
	require.NoError(t, store.CheckAuth(ctx))
	require.True(t, store.State().Authenticated)

	id, signals := store.Subscribe()
	defer store.Unsubscribe(id)

	type observation struct {
		sessionGone bool
		tokenGone   bool
	}
	observed := make(chan observation, 1)
	go func() {
		<-signals
		var obs observation
		_, err := kr.Get(ctx, keystore.KeySession)
		obs.sessionGone = err != nil
		_, err = kr.Get(ctx, keystore.KeyToken)
		obs.tokenGone = err != nil
		observed <- obs
	}()

	route, err := store.Logout(ctx)
	require.NoError(t, err)
	require.Equal(t, models.RouteLogin, route)
	require.False(t, store.State().Authenticated)

	select {
	case obs := <-observed:
		require.True(t, obs.sessionGone, "listener observed session key after logout signal")
		require.True(t, obs.tokenGone, "listener observed token key after logout signal")
	case <-time.After(2 * time.Second):
		t.Fatal("logout signal never arrived")
	}
}

func TestUpdateUserMergesWithoutResettingExpiry(t *testing.T) {
	fb := newFakeBackend(t)
	store, _, keys := newTestStore(t, fb.srv.URL)
	ctx := context.Background()

	loginAt := time.Now().Add(-time.Hour).UnixMilli()
	require.NoError(t, keys.WriteRecord(ctx, models.SessionRecord{
		User:      models.User{ID: "u1", Name: "Old", Email: "old@x.com", RoleID: 1},
		Token:     "t",
		Timestamp: loginAt,
	}))
	require.NoError(t, store.CheckAuth(ctx))

	name := "New Name"
	require.NoError(t, store.UpdateUser(ctx, models.UserPatch{Name: &name}))

	state := store.State()
	require.Equal(t, "New Name", state.User.Name)
	require.Equal(t, "old@x.com", state.User.Email)

	record, err := keys.ReadRecord(ctx)
	require.NoError(t, err)
	require.Equal(t, "New Name", record.User.Name)
	require.Equal(t, "t", record.Token)
	require.Equal(t, loginAt, record.Timestamp, "profile edits do not extend the session window")
}

func TestUpdateUserNoOpWhenLoggedOut(t *testing.T) {
	fb := newFakeBackend(t)
	store, kr, _ := newTestStore(t, fb.srv.URL)
	ctx := context.Background()
	require.NoError(t, store.CheckAuth(ctx))

	name := "Nobody"
	require.NoError(t, store.UpdateUser(ctx, models.UserPatch{Name: &name}))
	require.False(t, store.State().Authenticated)
	_, err := kr.Get(ctx, keystore.KeySession)
	require.ErrorIs(t, err, keystore.ErrNotFound)
}
