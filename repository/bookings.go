package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"salonmarket-backend/models"
	"salonmarket-backend/services"
)

// ListBookings returns the salon's confirmed bookings on date.
func (r *Repository) ListBookings(ctx context.Context, salonID uuid.UUID, date time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND date = ? AND status = ?", salonID, datatypes.Date(date), models.BookingConfirmed).
		Order("start_time").
		Find(&bookings).Error
	return bookings, err
}

func (r *Repository) ListClientBookings(ctx context.Context, clientID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date DESC, start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *Repository) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

// CreateBooking stores a confirmed booking of durationMinutes starting at b.StartTime.
// The salon row is locked for the duration of the check so two concurrent requests
// cannot both take the same free time.
func (r *Repository) CreateBooking(ctx context.Context, b *models.Booking, durationMinutes int) error {
	if err := services.ValidateDuration(durationMinutes); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var salon models.Salon
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&salon, "id = ?", b.SalonID).Error; err != nil {
			return translate(err)
		}

		var schedule []models.WorkingHours
		if err := tx.Where("salon_id = ?", b.SalonID).Find(&schedule).Error; err != nil {
			return err
		}

		var existing []models.Booking
		if err := tx.Where("salon_id = ? AND date = ? AND status = ?", b.SalonID, b.Date, models.BookingConfirmed).
			Find(&existing).Error; err != nil {
			return err
		}

		inHours, free := services.Fits(schedule, existing, time.Time(b.Date), b.StartTime, durationMinutes)
		if !inHours {
			return ErrOutsideOpeningHours
		}
		if !free {
			return ErrSlotTaken
		}

		b.EndTime = b.StartTime.Add(durationMinutes)
		b.Status = models.BookingConfirmed
		return tx.Create(b).Error
	})
}

func (r *Repository) CancelBooking(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingConfirmed).
		Updates(map[string]interface{}{
			"status":       models.BookingCancelled,
			"cancelled_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUpcomingBookings returns up to limit confirmed bookings of the salon from date on, soonest first.
func (r *Repository) ListUpcomingBookings(ctx context.Context, salonID uuid.UUID, from time.Time, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND date >= ? AND status = ?", salonID, datatypes.Date(from), models.BookingConfirmed).
		Order("date, start_time").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}
