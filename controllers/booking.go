package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"salonmarket-backend/cache"
	"salonmarket-backend/models"
	"salonmarket-backend/policy"
	"salonmarket-backend/utils"
)

type CreateBookingInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	StartTime string    `json:"startTime" binding:"required"`
}

// BookingNotifier is told about every stored booking. Delivery problems stay with the notifier.
type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, booking models.Booking)
}

// bookingParty may cancel a booking: the client who made it, the salon owner, or an admin.
var bookingParty = policy.AnyOf(policy.IsResourceOwner{}, policy.Role(models.RoleAdmin))

type BookingController struct {
	store    BookingStore
	slots    *cache.SlotCache
	notifier BookingNotifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewBookingController(store BookingStore, slots *cache.SlotCache, notifier BookingNotifier, logger *zap.Logger, now func() time.Time) *BookingController {
	return &BookingController{store: store, slots: slots, notifier: notifier, logger: logger, now: now}
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	clientID, ok := currentUser(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	start, err := models.ParseClockTime(input.StartTime)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid startTime, expected HH:MM")
		return
	}
	if date.Before(utils.BeginningOfDay(bc.now().UTC())) {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot book a date in the past")
		return
	}

	ctx := c.Request.Context()
	service, err := bc.store.GetService(ctx, input.ServiceID)
	if err != nil {
		respondError(c, bc.logger, err, "Service not found", "load service")
		return
	}
	if !service.IsActive {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	booking := models.Booking{
		SalonID:   service.SalonID,
		ServiceID: service.ID,
		ClientID:  clientID,
		Date:      datatypes.Date(date),
		StartTime: start,
	}
	if err := bc.store.CreateBooking(ctx, &booking, service.Duration); err != nil {
		respondError(c, bc.logger, err, "Salon not found", "create booking")
		return
	}
	bc.slots.InvalidateDay(ctx, booking.SalonID, date)

	if bc.notifier != nil {
		go bc.notifier.NotifyBookingCreated(context.WithoutCancel(ctx), booking)
	}

	c.JSON(http.StatusCreated, booking)
}

func (bc *BookingController) ListBookings(c *gin.Context) {
	clientID, ok := currentUser(c)
	if !ok {
		return
	}

	bookings, err := bc.store.ListClientBookings(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, bc.logger, err, "", "retrieve bookings")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	c.JSON(http.StatusOK, bookings)
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	bookingID, ok := parseID(c, "id", "booking")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	booking, err := bc.store.GetBooking(ctx, bookingID)
	if err != nil {
		respondError(c, bc.logger, err, "Booking not found", "load booking")
		return
	}
	salon, err := bc.store.GetSalon(ctx, booking.SalonID)
	if err != nil {
		respondError(c, bc.logger, err, "Salon not found", "load salon")
		return
	}

	subject := policy.Subject{UserID: userID, Role: utils.CurrentRole(c)}
	if !bookingParty.Allow(subject, policy.Resource{ID: booking.ID, OwnerID: booking.ClientID}) &&
		!bookingParty.Allow(subject, policy.Resource{ID: booking.ID, OwnerID: salon.OwnerID}) {
		utils.RespondWithError(c, http.StatusForbidden, "You are not allowed to perform this action")
		return
	}

	if booking.Status == models.BookingCancelled {
		utils.RespondWithError(c, http.StatusConflict, "Booking is already cancelled")
		return
	}

	now := bc.now()
	if err := bc.store.CancelBooking(ctx, booking.ID, now); err != nil {
		respondError(c, bc.logger, err, "Booking not found", "cancel booking")
		return
	}
	bc.slots.InvalidateDay(ctx, booking.SalonID, time.Time(booking.Date))

	booking.Status = models.BookingCancelled
	booking.CancelledAt = &now
	c.JSON(http.StatusOK, booking)
}
