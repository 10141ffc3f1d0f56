package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}
	token, err := tokens.Generate("user-1", "client")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "client" {
		t.Fatalf("claims mismatch: got %+v", claims)
	}

	other, _ := NewTokenService("wrong-secret", time.Hour)
	if _, err := other.Verify(token); err == nil {
		t.Fatal("expected verification error with wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	tokens, _ := NewTokenService("test-secret", time.Hour)
	issued := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }
	token, err := tokens.Generate("user-1", "client")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	tokens.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := tokens.Verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens, _ := NewTokenService("test-secret", time.Hour)
	token, _ := tokens.Generate("user-1", "provider")

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextUserID), "role": CurrentRole(c)})
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"bearer", "Bearer " + token, http.StatusOK},
		{"raw", token, http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, w.Code)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pass1234")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPasswordHash("pass1234", hash) {
		t.Fatal("expected password to match")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"+14155552671", "+44 20 7946 0958", "(415) 555-2671"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	invalid := []string{"", "abc", "+0123", "+1234567890123456"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("expected third request to be limited")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("expected other client to be allowed")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-02")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %s", d.Weekday())
	}
	if _, err := ParseDate("2026-02-30"); err == nil {
		t.Fatal("expected invalid date to fail")
	}
}
