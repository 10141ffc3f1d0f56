package controllers_test

import (
	"net/http"
	"testing"

	"salonmarket-backend/models"
)

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func TestRegisterLoginAndMe(t *testing.T) {
	s := newTestServer(t, nil)

	register := map[string]string{
		"email":    "Ana@Example.com",
		"phone":    "+33 6 12 34 56 78",
		"name":     "Ana",
		"password": "correct-horse",
		"role":     "provider",
	}
	w := s.do(t, http.MethodPost, "/auth/register", "", register)
	expectStatus(t, w, http.StatusCreated)

	var created authResponse
	decode(t, w, &created)
	if created.Token == "" {
		t.Fatal("expected a token on registration")
	}
	if created.User.Email != "ana@example.com" || created.User.Role != models.RoleProvider {
		t.Fatalf("unexpected user %+v", created.User)
	}
	if created.User.Phone != "+33612345678" {
		t.Errorf("expected normalized phone, got %q", created.User.Phone)
	}

	w = s.do(t, http.MethodPost, "/auth/register", "", register)
	expectStatus(t, w, http.StatusConflict)

	w = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"identifier": "ANA@example.com", "password": "correct-horse"})
	expectStatus(t, w, http.StatusOK)
	var loggedIn authResponse
	decode(t, w, &loggedIn)
	if loggedIn.User.LastLogin == nil || !loggedIn.User.LastLogin.Equal(now) {
		t.Errorf("expected last login %s, got %v", now, loggedIn.User.LastLogin)
	}

	w = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"identifier": "+33 6 12 34 56 78", "password": "correct-horse"})
	expectStatus(t, w, http.StatusOK)

	w = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"identifier": "ana@example.com", "password": "wrong-password"})
	expectStatus(t, w, http.StatusUnauthorized)

	w = s.do(t, http.MethodGet, "/auth/me", loggedIn.Token, nil)
	expectStatus(t, w, http.StatusOK)
	var me struct {
		User models.User `json:"user"`
	}
	decode(t, w, &me)
	if me.User.ID != created.User.ID {
		t.Errorf("expected /auth/me to return %s, got %s", created.User.ID, me.User.ID)
	}

	w = s.do(t, http.MethodGet, "/auth/me", "", nil)
	expectStatus(t, w, http.StatusUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"bad phone", map[string]string{"email": "a@example.com", "phone": "abc", "name": "A", "password": "long-enough"}},
		{"short password", map[string]string{"email": "a@example.com", "phone": "+15550001111", "name": "A", "password": "short"}},
		{"admin role", map[string]string{"email": "a@example.com", "phone": "+15550001111", "name": "A", "password": "long-enough", "role": "admin"}},
		{"missing email", map[string]string{"phone": "+15550001111", "name": "A", "password": "long-enough"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/auth/register", "", tt.body)
			expectStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestRegisterDefaultsToClient(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "bo@example.com", "phone": "+15550002222", "name": "Bo", "password": "long-enough",
	})
	expectStatus(t, w, http.StatusCreated)
	var created authResponse
	decode(t, w, &created)
	if created.User.Role != models.RoleClient {
		t.Errorf("expected role client, got %q", created.User.Role)
	}
}
