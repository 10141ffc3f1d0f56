package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"salonmarket-backend/config"
	"salonmarket-backend/models"
	"salonmarket-backend/routes"
	"salonmarket-backend/utils"
)

// Monday 2 March 2026, 08:00 UTC.
var now = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	created chan models.Booking
}

func (n *recordingNotifier) NotifyBookingCreated(_ context.Context, b models.Booking) {
	n.created <- b
}

type testServer struct {
	router   *gin.Engine
	store    *memStore
	tokens   *utils.TokenService
	notifier *recordingNotifier
}

func newTestServer(t *testing.T, limiter *utils.RateLimiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := utils.NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}
	store := newMemStore()
	notifier := &recordingNotifier{created: make(chan models.Booking, 8)}

	router := routes.SetupRouter(routes.Deps{
		Config:         &config.Config{CORSOrigins: "http://localhost:3000"},
		Logger:         zap.NewNop(),
		Store:          store,
		Tokens:         tokens,
		Notifier:       notifier,
		BookingLimiter: limiter,
		Now:            func() time.Time { return now },
	})
	return &testServer{router: router, store: store, tokens: tokens, notifier: notifier}
}

func (s *testServer) tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := s.tokens.Generate(u.ID.String(), u.Role)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func hours(weekday time.Weekday, openAt, closeAt string) models.WorkingHours {
	o, err := models.ParseClockTime(openAt)
	if err != nil {
		panic(err)
	}
	c, err := models.ParseClockTime(closeAt)
	if err != nil {
		panic(err)
	}
	return models.WorkingHours{Weekday: int(weekday), OpenTime: o, CloseTime: c}
}

func hm(s string) models.ClockTime {
	c, err := models.ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}
