package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"salonmarket-backend/models"
	"salonmarket-backend/utils"
)

func bookingFixture(t *testing.T, s *testServer) (owner, client *models.User, salon *models.Salon, service *models.Service) {
	t.Helper()
	owner = s.store.addUser(models.RoleProvider)
	client = s.store.addUser(models.RoleClient)
	salon = s.store.addSalon(owner.ID, hours(time.Monday, "09:00", "12:00"))
	service = s.store.addService(salon.ID, "Cut", "25", 30)
	return owner, client, salon, service
}

func TestCreateBooking(t *testing.T) {
	s := newTestServer(t, nil)
	_, client, salon, service := bookingFixture(t, s)
	token := s.tokenFor(t, client)

	book := func(date, start string) map[string]string {
		return map[string]string{"serviceId": service.ID.String(), "date": date, "startTime": start}
	}

	w := s.do(t, http.MethodPost, "/api/bookings", token, book("2026-03-09", "10:00"))
	expectStatus(t, w, http.StatusCreated)
	var created models.Booking
	decode(t, w, &created)
	if created.EndTime != hm("10:30") || created.Status != models.BookingConfirmed || created.ClientID != client.ID {
		t.Fatalf("unexpected booking %+v", created)
	}

	select {
	case notified := <-s.notifier.created:
		if notified.ID != created.ID {
			t.Errorf("expected notification for %s, got %s", created.ID, notified.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected the salon to be notified")
	}

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"same slot", book("2026-03-09", "10:00"), http.StatusConflict},
		{"overlapping", book("2026-03-09", "10:15"), http.StatusConflict},
		{"past closing", book("2026-03-09", "11:45"), http.StatusUnprocessableEntity},
		{"closed day", book("2026-03-10", "10:00"), http.StatusUnprocessableEntity},
		{"bad start", book("2026-03-09", "25:00"), http.StatusBadRequest},
		{"bad date", book("March 9", "10:00"), http.StatusBadRequest},
		{"past date", book("2026-02-23", "10:00"), http.StatusBadRequest},
		{"unknown service", map[string]string{"serviceId": "00000000-0000-0000-0000-000000000001", "date": "2026-03-09", "startTime": "10:00"}, http.StatusNotFound},
		{"adjacent", book("2026-03-09", "10:30"), http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/bookings", token, tt.body)
			expectStatus(t, w, tt.want)
		})
	}

	w = s.do(t, http.MethodGet, "/api/salons/"+salon.ID.String()+"/availability?date=2026-03-09&duration=30", token, nil)
	expectStatus(t, w, http.StatusOK)
	var got availabilityResponse
	decode(t, w, &got)
	for _, slot := range got.Slots {
		if slot.Start < hm("11:00") && slot.End > hm("10:00") {
			t.Errorf("slot %s-%s overlaps a booking", slot.Start, slot.End)
		}
	}

	w = s.do(t, http.MethodGet, "/api/bookings", token, nil)
	expectStatus(t, w, http.StatusOK)
	var mine []models.Booking
	decode(t, w, &mine)
	if len(mine) != 2 {
		t.Errorf("expected 2 bookings for the client, got %d", len(mine))
	}
}

func TestCancelBooking(t *testing.T) {
	s := newTestServer(t, nil)
	owner, client, salon, service := bookingFixture(t, s)
	stranger := s.store.addUser(models.RoleClient)
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	first := s.store.addBooking(salon.ID, service.ID, client.ID, monday, hm("09:00"), hm("09:30"))
	second := s.store.addBooking(salon.ID, service.ID, client.ID, monday, hm("10:00"), hm("10:30"))

	cancel := func(id, token string) int {
		return s.do(t, http.MethodPost, "/api/bookings/"+id+"/cancel", token, nil).Code
	}

	if code := cancel(first.ID.String(), s.tokenFor(t, stranger)); code != http.StatusForbidden {
		t.Errorf("stranger: expected 403, got %d", code)
	}
	if code := cancel(first.ID.String(), s.tokenFor(t, client)); code != http.StatusOK {
		t.Errorf("client: expected 200, got %d", code)
	}
	if code := cancel(first.ID.String(), s.tokenFor(t, client)); code != http.StatusConflict {
		t.Errorf("repeat: expected 409, got %d", code)
	}
	if code := cancel(second.ID.String(), s.tokenFor(t, owner)); code != http.StatusOK {
		t.Errorf("salon owner: expected 200, got %d", code)
	}
	if code := cancel("00000000-0000-0000-0000-000000000001", s.tokenFor(t, owner)); code != http.StatusNotFound {
		t.Errorf("unknown: expected 404, got %d", code)
	}
	if code := cancel("nope", s.tokenFor(t, owner)); code != http.StatusBadRequest {
		t.Errorf("malformed: expected 400, got %d", code)
	}

	// The freed time can be booked again.
	w := s.do(t, http.MethodPost, "/api/bookings", s.tokenFor(t, stranger),
		map[string]string{"serviceId": service.ID.String(), "date": "2026-03-09", "startTime": "09:00"})
	expectStatus(t, w, http.StatusCreated)
}

func TestCreateBookingIsRateLimited(t *testing.T) {
	s := newTestServer(t, utils.NewRateLimiter(1, 1))
	_, client, _, service := bookingFixture(t, s)
	token := s.tokenFor(t, client)
	body := map[string]string{"serviceId": service.ID.String(), "date": "2026-03-09", "startTime": "09:00"}

	expectStatus(t, s.do(t, http.MethodPost, "/api/bookings", token, body), http.StatusCreated)
	expectStatus(t, s.do(t, http.MethodPost, "/api/bookings", token, body), http.StatusTooManyRequests)
}
