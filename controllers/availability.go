package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salonmarket-backend/cache"
	"salonmarket-backend/services"
	"salonmarket-backend/utils"
)

type AvailabilityController struct {
	store  AvailabilityStore
	calc   *services.SlotCalculator
	slots  *cache.SlotCache
	logger *zap.Logger
}

func NewAvailabilityController(store AvailabilityStore, calc *services.SlotCalculator, slots *cache.SlotCache, logger *zap.Logger) *AvailabilityController {
	return &AvailabilityController{store: store, calc: calc, slots: slots, logger: logger}
}

// GetAvailability lists free slots of a salon on ?date=YYYY-MM-DD. The slot length comes
// from ?duration=N minutes, or from the duration of ?service_id= when no duration is given.
func (ac *AvailabilityController) GetAvailability(c *gin.Context) {
	salonID, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}

	rawDate := c.Query("date")
	if rawDate == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "date is required")
		return
	}
	date, err := utils.ParseDate(rawDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	ctx := c.Request.Context()
	salon, err := ac.store.GetSalon(ctx, salonID)
	if err != nil {
		respondError(c, ac.logger, err, "Salon not found", "load salon")
		return
	}

	var duration int
	switch {
	case c.Query("duration") != "":
		duration, err = strconv.Atoi(c.Query("duration"))
		if err != nil || services.ValidateDuration(duration) != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "duration must be between 1 and 1440 minutes")
			return
		}
	case c.Query("service_id") != "":
		serviceID, err := uuid.Parse(c.Query("service_id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
			return
		}
		service, err := ac.store.GetService(ctx, serviceID)
		if err != nil {
			respondError(c, ac.logger, err, "Service not found", "load service")
			return
		}
		if service.SalonID != salon.ID {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
			return
		}
		duration = service.Duration
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "duration or service_id is required")
		return
	}

	cached, entry, hit := ac.slots.Get(ctx, salon.ID, date, duration)
	if hit {
		ac.respond(c, rawDate, duration, cached)
		return
	}

	schedule, err := ac.store.GetSchedule(ctx, salon.ID)
	if err != nil {
		respondError(c, ac.logger, err, "", "load working hours")
		return
	}
	bookings, err := ac.store.ListBookings(ctx, salon.ID, date)
	if err != nil {
		respondError(c, ac.logger, err, "", "load bookings")
		return
	}

	slots, err := ac.calc.ComputeSlots(schedule, bookings, date, duration)
	if err != nil {
		respondError(c, ac.logger, err, "", "compute availability")
		return
	}
	ac.slots.Set(ctx, entry, slots)

	ac.respond(c, rawDate, duration, slots)
}

func (ac *AvailabilityController) respond(c *gin.Context, date string, duration int, slots []services.Slot) {
	if slots == nil {
		slots = []services.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"duration": duration,
		"slots":    slots,
	})
}
