package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"salonmarket-backend/models"
	"salonmarket-backend/services"
)

type bookingContactRow struct {
	BookingID   uuid.UUID
	SalonID     uuid.UUID
	ServiceID   uuid.UUID
	ClientID    uuid.UUID
	Date        time.Time
	StartTime   models.ClockTime
	EndTime     models.ClockTime
	UserID      uuid.UUID
	Phone       string
	SalonName   string
	ServiceName string
}

// ListBookingContactsOn returns each confirmed booking on date with its client's phone.
func (r *Repository) ListBookingContactsOn(ctx context.Context, date time.Time) ([]services.BookingContact, error) {
	var rows []bookingContactRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.id AS booking_id, b.salon_id, b.service_id, b.client_id, b.date,
		       b.start_time, b.end_time, u.id AS user_id, u.phone,
		       s.name AS salon_name, sv.name AS service_name
		FROM bookings b
		JOIN users u ON u.id = b.client_id AND u.deleted_at IS NULL
		JOIN salons s ON s.id = b.salon_id
		JOIN services sv ON sv.id = b.service_id
		WHERE b.date = ? AND b.status = ?
		ORDER BY b.start_time
	`, datatypes.Date(date), models.BookingConfirmed).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	contacts := make([]services.BookingContact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, services.BookingContact{
			Booking: models.Booking{
				ID:        row.BookingID,
				SalonID:   row.SalonID,
				ServiceID: row.ServiceID,
				ClientID:  row.ClientID,
				Date:      datatypes.Date(row.Date),
				StartTime: row.StartTime,
				EndTime:   row.EndTime,
				Status:    models.BookingConfirmed,
			},
			UserID:      row.UserID,
			Phone:       row.Phone,
			SalonName:   row.SalonName,
			ServiceName: row.ServiceName,
		})
	}
	return contacts, nil
}

// OwnerContact returns the phone of the owner of the booking's salon.
func (r *Repository) OwnerContact(ctx context.Context, booking models.Booking) (services.BookingContact, error) {
	var row bookingContactRow
	result := r.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id, COALESCE(NULLIF(s.phone, ''), u.phone) AS phone,
		       s.name AS salon_name, sv.name AS service_name
		FROM salons s
		JOIN users u ON u.id = s.owner_id
		JOIN services sv ON sv.id = ?
		WHERE s.id = ?
	`, booking.ServiceID, booking.SalonID).Scan(&row)
	if result.Error != nil {
		return services.BookingContact{}, result.Error
	}
	if result.RowsAffected == 0 {
		return services.BookingContact{}, ErrNotFound
	}
	return services.BookingContact{
		Booking:     booking,
		UserID:      row.UserID,
		Phone:       row.Phone,
		SalonName:   row.SalonName,
		ServiceName: row.ServiceName,
	}, nil
}

func (r *Repository) CreateNotificationLog(ctx context.Context, entry *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
