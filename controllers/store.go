package controllers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salonmarket-backend/models"
)

// The store interfaces below are the slices of *repository.Repository each controller needs.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateUserProfile(ctx context.Context, user *models.User) error
}

type CatalogStore interface {
	CreateSalon(ctx context.Context, salon *models.Salon) error
	GetSalon(ctx context.Context, id uuid.UUID) (*models.Salon, error)
	GetSchedule(ctx context.Context, salonID uuid.UUID) ([]models.WorkingHours, error)
	ReplaceSchedule(ctx context.Context, salonID uuid.UUID, entries []models.WorkingHours) error

	CreateService(ctx context.Context, service *models.Service) error
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ListServices(ctx context.Context, salonID uuid.UUID) ([]models.Service, error)
	UpdateService(ctx context.Context, service *models.Service) error
	DeleteService(ctx context.Context, id uuid.UUID) error

	ListPromotions(ctx context.Context, serviceID uuid.UUID) ([]models.Promotion, error)
	ListPromotionsFor(ctx context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID][]models.Promotion, error)
	CreatePromotion(ctx context.Context, promotion *models.Promotion) error
	GetPromotion(ctx context.Context, id uuid.UUID) (*models.Promotion, error)
	DeletePromotion(ctx context.Context, id uuid.UUID) error
}

type AvailabilityStore interface {
	GetSalon(ctx context.Context, id uuid.UUID) (*models.Salon, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	GetSchedule(ctx context.Context, salonID uuid.UUID) ([]models.WorkingHours, error)
	ListBookings(ctx context.Context, salonID uuid.UUID, date time.Time) ([]models.Booking, error)
}

type BookingStore interface {
	AvailabilityStore
	ListClientBookings(ctx context.Context, clientID uuid.UUID) ([]models.Booking, error)
	ListUpcomingBookings(ctx context.Context, salonID uuid.UUID, from time.Time, limit int) ([]models.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	CreateBooking(ctx context.Context, b *models.Booking, durationMinutes int) error
	CancelBooking(ctx context.Context, id uuid.UUID, at time.Time) error
}

type CartStore interface {
	GetSalon(ctx context.Context, id uuid.UUID) (*models.Salon, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ListPromotionsFor(ctx context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID][]models.Promotion, error)

	ListCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	UpsertCartItem(ctx context.Context, item *models.CartItem) error
	UpdateCartQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	DeleteCartItem(ctx context.Context, userID, itemID uuid.UUID) error

	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, favorite *models.Favorite) error
	DeleteFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error
}

// ResourceStore resolves ownership for the policy loaders.
type ResourceStore interface {
	GetSalon(ctx context.Context, id uuid.UUID) (*models.Salon, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	GetPromotion(ctx context.Context, id uuid.UUID) (*models.Promotion, error)
}

type DashboardStore interface {
	ListBookings(ctx context.Context, salonID uuid.UUID, date time.Time) ([]models.Booking, error)
	ListUpcomingBookings(ctx context.Context, salonID uuid.UUID, from time.Time, limit int) ([]models.Booking, error)
	ListServices(ctx context.Context, salonID uuid.UUID) ([]models.Service, error)
	ListPromotionsFor(ctx context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID][]models.Promotion, error)
}
