// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"salonmarket-backend/models"
)

const (
	NotificationReminder       = "reminder"
	NotificationBookingCreated = "booking_created"
)

// BookingContact is a booking joined with the names and phone number needed to message someone about it.
type BookingContact struct {
	Booking     models.Booking
	UserID      uuid.UUID
	Phone       string
	SalonName   string
	ServiceName string
}

type ReminderStore interface {
	ListBookingContactsOn(ctx context.Context, date time.Time) ([]BookingContact, error)
	OwnerContact(ctx context.Context, booking models.Booking) (BookingContact, error)
	CreateNotificationLog(ctx context.Context, entry *models.NotificationLog) error
}

type ReminderService struct {
	store    ReminderStore
	notifier Notifier
	logger   *zap.Logger
	spec     string
	cron     *cron.Cron
	now      func() time.Time
}

func NewReminderService(store ReminderStore, notifier Notifier, logger *zap.Logger, spec string) *ReminderService {
	if spec == "" {
		spec = "0 9 * * *"
	}
	return &ReminderService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		spec:     spec,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// StartScheduler registers the daily reminder job and starts the cron runner.
func (s *ReminderService) StartScheduler() error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		s.SendDailyReminders(ctx)
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.logger.Info("reminder scheduler started", zap.String("schedule", s.spec))
	return nil
}

// StopScheduler stops the cron runner and waits for a running job to finish.
func (s *ReminderService) StopScheduler() {
	<-s.cron.Stop().Done()
}

// SendDailyReminders messages every client with a confirmed booking tomorrow.
func (s *ReminderService) SendDailyReminders(ctx context.Context) int {
	s.logger.Info("starting daily reminder processing")

	tomorrow := s.now().UTC().AddDate(0, 0, 1)
	day := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)
	contacts, err := s.store.ListBookingContactsOn(ctx, day)
	if err != nil {
		s.logger.Error("failed to fetch bookings for reminders", zap.Error(err))
		return 0
	}

	sent := 0
	for _, contact := range contacts {
		message := fmt.Sprintf("Reminder: your %s appointment at %s is tomorrow at %s.",
			contact.ServiceName, contact.SalonName, contact.Booking.StartTime)
		if s.deliver(ctx, contact, NotificationReminder, message) {
			sent++
		}
	}

	s.logger.Info("daily reminder processing completed", zap.Int("bookings", len(contacts)), zap.Int("sent", sent))
	return sent
}

// NotifyBookingCreated tells the salon owner about a new booking. Failures are logged only.
func (s *ReminderService) NotifyBookingCreated(ctx context.Context, booking models.Booking) {
	contact, err := s.store.OwnerContact(ctx, booking)
	if err != nil {
		s.logger.Warn("failed to load salon owner for notification", zap.Error(err), zap.String("booking", booking.ID.String()))
		return
	}
	message := fmt.Sprintf("New booking: %s on %s at %s.",
		contact.ServiceName, time.Time(booking.Date).Format("2006-01-02"), booking.StartTime)
	s.deliver(ctx, contact, NotificationBookingCreated, message)
}

func (s *ReminderService) deliver(ctx context.Context, contact BookingContact, kind, message string) bool {
	status := "sent"
	errorMsg := ""
	channel, err := s.notifier.Send(ctx, contact.Phone, message)
	if err != nil {
		s.logger.Warn("failed to send message", zap.Error(err), zap.String("to", contact.Phone))
		status = "failed"
		errorMsg = err.Error()
	}

	entry := models.NotificationLog{
		BookingID:    contact.Booking.ID,
		UserID:       contact.UserID,
		Type:         kind,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       s.now(),
	}
	if err := s.store.CreateNotificationLog(ctx, &entry); err != nil {
		s.logger.Error("failed to log notification", zap.Error(err), zap.String("user", contact.UserID.String()))
	}
	return status == "sent"
}
