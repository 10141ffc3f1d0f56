package controllers_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"salonmarket-backend/models"
	"salonmarket-backend/repository"
	"salonmarket-backend/services"
)

// memStore is an in-memory stand-in for *repository.Repository.
type memStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*models.User
	salons     map[uuid.UUID]*models.Salon
	schedules  map[uuid.UUID][]models.WorkingHours
	services   map[uuid.UUID]*models.Service
	promotions map[uuid.UUID]*models.Promotion
	bookings   map[uuid.UUID]*models.Booking
	cart       map[uuid.UUID]*models.CartItem
	favorites  map[uuid.UUID]*models.Favorite
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[uuid.UUID]*models.User),
		salons:     make(map[uuid.UUID]*models.Salon),
		schedules:  make(map[uuid.UUID][]models.WorkingHours),
		services:   make(map[uuid.UUID]*models.Service),
		promotions: make(map[uuid.UUID]*models.Promotion),
		bookings:   make(map[uuid.UUID]*models.Booking),
		cart:       make(map[uuid.UUID]*models.CartItem),
		favorites:  make(map[uuid.UUID]*models.Favorite),
	}
}

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrConflict
		}
	}
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memStore) FindUserByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == identifier || u.Phone == identifier {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (m *memStore) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (m *memStore) UpdateUserProfile(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Name = user.Name
	u.Phone = user.Phone
	return nil
}

func (m *memStore) CreateSalon(_ context.Context, salon *models.Salon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if salon.ID == uuid.Nil {
		salon.ID = uuid.New()
	}
	stored := *salon
	m.salons[salon.ID] = &stored
	return nil
}

func (m *memStore) GetSalon(_ context.Context, id uuid.UUID) (*models.Salon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.salons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *s
	return &found, nil
}

func (m *memStore) GetSchedule(_ context.Context, salonID uuid.UUID) ([]models.WorkingHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.WorkingHours(nil), m.schedules[salonID]...), nil
}

func (m *memStore) ReplaceSchedule(_ context.Context, salonID uuid.UUID, entries []models.WorkingHours) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.salons[salonID]; !ok {
		return repository.ErrNotFound
	}
	for i := range entries {
		entries[i].ID = uuid.New()
		entries[i].SalonID = salonID
	}
	m.schedules[salonID] = append([]models.WorkingHours(nil), entries...)
	return nil
}

func (m *memStore) CreateService(_ context.Context, service *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.salons[service.SalonID]; !ok {
		return repository.ErrNotFound
	}
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	stored := *service
	m.services[service.ID] = &stored
	return nil
}

func (m *memStore) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *s
	return &found, nil
}

func (m *memStore) ListServices(_ context.Context, salonID uuid.UUID) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []models.Service
	for _, s := range m.services {
		if s.SalonID == salonID {
			list = append(list, *s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (m *memStore) UpdateService(_ context.Context, service *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[service.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *service
	m.services[service.ID] = &stored
	return nil
}

func (m *memStore) DeleteService(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.services, id)
	return nil
}

func (m *memStore) ListPromotions(_ context.Context, serviceID uuid.UUID) ([]models.Promotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []models.Promotion
	for _, p := range m.promotions {
		if p.ServiceID == serviceID {
			list = append(list, *p)
		}
	}
	return list, nil
}

func (m *memStore) ListPromotionsFor(_ context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID][]models.Promotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		wanted[id] = true
	}
	grouped := make(map[uuid.UUID][]models.Promotion)
	for _, p := range m.promotions {
		if wanted[p.ServiceID] {
			grouped[p.ServiceID] = append(grouped[p.ServiceID], *p)
		}
	}
	return grouped, nil
}

func (m *memStore) CreatePromotion(_ context.Context, promotion *models.Promotion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[promotion.ServiceID]; !ok {
		return repository.ErrNotFound
	}
	if promotion.ID == uuid.Nil {
		promotion.ID = uuid.New()
	}
	stored := *promotion
	m.promotions[promotion.ID] = &stored
	return nil
}

func (m *memStore) GetPromotion(_ context.Context, id uuid.UUID) (*models.Promotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.promotions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *p
	return &found, nil
}

func (m *memStore) DeletePromotion(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.promotions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.promotions, id)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *memStore) ListBookings(_ context.Context, salonID uuid.UUID, date time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []models.Booking
	for _, b := range m.bookings {
		if b.SalonID == salonID && b.Status == models.BookingConfirmed && sameDay(time.Time(b.Date), date) {
			list = append(list, *b)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartTime < list[j].StartTime })
	return list, nil
}

func (m *memStore) ListClientBookings(_ context.Context, clientID uuid.UUID) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []models.Booking
	for _, b := range m.bookings {
		if b.ClientID == clientID {
			list = append(list, *b)
		}
	}
	return list, nil
}

func (m *memStore) ListUpcomingBookings(_ context.Context, salonID uuid.UUID, from time.Time, limit int) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []models.Booking
	for _, b := range m.bookings {
		if b.SalonID == salonID && b.Status == models.BookingConfirmed && !time.Time(b.Date).Before(from) {
			list = append(list, *b)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		di, dj := time.Time(list[i].Date), time.Time(list[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return list[i].StartTime < list[j].StartTime
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *memStore) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *b
	return &found, nil
}

func (m *memStore) CreateBooking(_ context.Context, b *models.Booking, durationMinutes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.salons[b.SalonID]; !ok {
		return repository.ErrNotFound
	}
	var existing []models.Booking
	for _, other := range m.bookings {
		if other.SalonID == b.SalonID && other.Status == models.BookingConfirmed {
			existing = append(existing, *other)
		}
	}
	inHours, free := services.Fits(m.schedules[b.SalonID], existing, time.Time(b.Date), b.StartTime, durationMinutes)
	if !inHours {
		return repository.ErrOutsideOpeningHours
	}
	if !free {
		return repository.ErrSlotTaken
	}
	b.ID = uuid.New()
	b.EndTime = b.StartTime.Add(durationMinutes)
	b.Status = models.BookingConfirmed
	stored := *b
	m.bookings[b.ID] = &stored
	return nil
}

func (m *memStore) CancelBooking(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != models.BookingConfirmed {
		return repository.ErrNotFound
	}
	b.Status = models.BookingCancelled
	b.CancelledAt = &at
	return nil
}

func (m *memStore) ListCart(_ context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []models.CartItem
	for _, item := range m.cart {
		if item.UserID == userID {
			line := *item
			if s, ok := m.services[item.ServiceID]; ok {
				line.Service = *s
			}
			list = append(list, line)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Service.Name < list[j].Service.Name })
	return list, nil
}

func (m *memStore) UpsertCartItem(_ context.Context, item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.cart {
		if existing.UserID == item.UserID && existing.ServiceID == item.ServiceID {
			existing.Quantity = item.Quantity
			item.ID = existing.ID
			return nil
		}
	}
	item.ID = uuid.New()
	stored := *item
	m.cart[item.ID] = &stored
	return nil
}

func (m *memStore) UpdateCartQuantity(_ context.Context, userID, itemID uuid.UUID, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.cart[itemID]
	if !ok || item.UserID != userID {
		return repository.ErrNotFound
	}
	item.Quantity = quantity
	return nil
}

func (m *memStore) DeleteCartItem(_ context.Context, userID, itemID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.cart[itemID]
	if !ok || item.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.cart, itemID)
	return nil
}

func (m *memStore) ListFavorites(_ context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []models.Favorite
	for _, f := range m.favorites {
		if f.UserID == userID {
			list = append(list, *f)
		}
	}
	return list, nil
}

func (m *memStore) AddFavorite(_ context.Context, favorite *models.Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.favorites {
		if f.UserID == favorite.UserID && f.SalonID == favorite.SalonID {
			return repository.ErrConflict
		}
	}
	favorite.ID = uuid.New()
	stored := *favorite
	m.favorites[favorite.ID] = &stored
	return nil
}

func (m *memStore) DeleteFavorite(_ context.Context, userID, favoriteID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.favorites[favoriteID]
	if !ok || f.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.favorites, favoriteID)
	return nil
}

// seed helpers

func (m *memStore) addUser(role string) *models.User {
	u := &models.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Name: "Test", Role: role, IsActive: true}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addSalon(owner uuid.UUID, hours ...models.WorkingHours) *models.Salon {
	s := &models.Salon{ID: uuid.New(), OwnerID: owner, Name: "Salon", IsActive: true}
	m.salons[s.ID] = s
	for i := range hours {
		hours[i].ID = uuid.New()
		hours[i].SalonID = s.ID
	}
	m.schedules[s.ID] = hours
	return s
}

func (m *memStore) addService(salonID uuid.UUID, name string, price string, duration int) *models.Service {
	s := &models.Service{ID: uuid.New(), SalonID: salonID, Name: name, Price: mustDecimal(price), Duration: duration, IsActive: true}
	m.services[s.ID] = s
	return s
}

func (m *memStore) addPromotion(serviceID uuid.UUID, pct int, start, end time.Time) *models.Promotion {
	p := &models.Promotion{ID: uuid.New(), ServiceID: serviceID, DiscountPercentage: pct, StartTime: start, EndTime: end}
	m.promotions[p.ID] = p
	return p
}

func (m *memStore) addBooking(salonID, serviceID, clientID uuid.UUID, date time.Time, start, end models.ClockTime) *models.Booking {
	b := &models.Booking{
		ID: uuid.New(), SalonID: salonID, ServiceID: serviceID, ClientID: clientID,
		Date: datatypes.Date(date), StartTime: start, EndTime: end, Status: models.BookingConfirmed,
	}
	m.bookings[b.ID] = b
	return b
}
