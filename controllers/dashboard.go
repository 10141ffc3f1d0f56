package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salonmarket-backend/models"
	"salonmarket-backend/services"
	"salonmarket-backend/utils"
)

const dashboardUpcomingLimit = 7

type DashboardOverview struct {
	TodayBookings    int               `json:"todayBookings"`
	TotalServices    int               `json:"totalServices"`
	ActivePromotions int               `json:"activePromotions"`
	UpcomingBookings []UpcomingBooking `json:"upcomingBookings"`
}

type UpcomingBooking struct {
	ID          uuid.UUID `json:"id"`
	ServiceName string    `json:"serviceName"`
	StartTime   string    `json:"startTime"`
	Date        string    `json:"date"` // e.g. "Today", "Tomorrow", "3 days"
}

type DashboardController struct {
	store  DashboardStore
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardController(store DashboardStore, logger *zap.Logger, now func() time.Time) *DashboardController {
	return &DashboardController{store: store, logger: logger, now: now}
}

// GetDashboardOverview summarises a salon for its owner: today's load, the next bookings
// and how many services currently run a promotion.
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	salonID, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	now := dc.now()
	today := utils.BeginningOfDay(now.UTC())

	todays, err := dc.store.ListBookings(ctx, salonID, today)
	if err != nil {
		respondError(c, dc.logger, err, "", "load bookings")
		return
	}
	upcoming, err := dc.store.ListUpcomingBookings(ctx, salonID, today, dashboardUpcomingLimit)
	if err != nil {
		respondError(c, dc.logger, err, "", "load bookings")
		return
	}
	list, err := dc.store.ListServices(ctx, salonID)
	if err != nil {
		respondError(c, dc.logger, err, "", "retrieve services")
		return
	}

	ids := make([]uuid.UUID, len(list))
	names := make(map[uuid.UUID]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
		names[s.ID] = s.Name
	}
	promotions, err := dc.store.ListPromotionsFor(ctx, ids)
	if err != nil {
		respondError(c, dc.logger, err, "", "retrieve promotions")
		return
	}

	overview := DashboardOverview{
		TodayBookings:    len(todays),
		TotalServices:    len(list),
		UpcomingBookings: make([]UpcomingBooking, 0, len(upcoming)),
	}
	for _, s := range list {
		if services.NewPromotionCatalog(promotions[s.ID], now).Active() != nil {
			overview.ActivePromotions++
		}
	}
	for _, b := range upcoming {
		overview.UpcomingBookings = append(overview.UpcomingBookings, UpcomingBooking{
			ID:          b.ID,
			ServiceName: names[b.ServiceID],
			StartTime:   b.StartTime.String(),
			Date:        relativeDay(today, b),
		})
	}

	c.JSON(http.StatusOK, overview)
}

func relativeDay(today time.Time, b models.Booking) string {
	switch days := utils.DaysBetween(today, time.Time(b.Date)); days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
