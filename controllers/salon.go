package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonmarket-backend/cache"
	"salonmarket-backend/models"
	"salonmarket-backend/services"
	"salonmarket-backend/utils"
)

type CreateSalonInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type WorkingHoursInput struct {
	Weekday   int              `json:"weekday" binding:"min=0,max=6"`
	OpenTime  models.ClockTime `json:"openTime"`
	CloseTime models.ClockTime `json:"closeTime"`
}

type ReplaceHoursInput struct {
	Hours []WorkingHoursInput `json:"hours" binding:"dive"`
}

// CatalogController manages salons, their weekly hours, services and promotions.
type CatalogController struct {
	store  CatalogStore
	slots  *cache.SlotCache
	logger *zap.Logger
	now    func() time.Time
}

func NewCatalogController(store CatalogStore, slots *cache.SlotCache, logger *zap.Logger, now func() time.Time) *CatalogController {
	return &CatalogController{store: store, slots: slots, logger: logger, now: now}
}

func (cc *CatalogController) CreateSalon(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	var input CreateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	phone := utils.NormalizePhone(input.Phone)
	if phone != "" && !utils.ValidatePhone(phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	salon := models.Salon{
		OwnerID:  ownerID,
		Name:     input.Name,
		Address:  input.Address,
		Phone:    phone,
		IsActive: true,
	}
	if err := cc.store.CreateSalon(c.Request.Context(), &salon); err != nil {
		respondError(c, cc.logger, err, "", "create salon")
		return
	}

	c.JSON(http.StatusCreated, salon)
}

func (cc *CatalogController) GetSalon(c *gin.Context) {
	salonID, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}

	salon, err := cc.store.GetSalon(c.Request.Context(), salonID)
	if err != nil {
		respondError(c, cc.logger, err, "Salon not found", "load salon")
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (cc *CatalogController) GetHours(c *gin.Context) {
	salonID, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}

	if _, err := cc.store.GetSalon(c.Request.Context(), salonID); err != nil {
		respondError(c, cc.logger, err, "Salon not found", "load salon")
		return
	}
	schedule, err := cc.store.GetSchedule(c.Request.Context(), salonID)
	if err != nil {
		respondError(c, cc.logger, err, "Salon not found", "load working hours")
		return
	}
	if schedule == nil {
		schedule = []models.WorkingHours{}
	}

	c.JSON(http.StatusOK, schedule)
}

// ReplaceHours swaps the whole weekly schedule. An empty list closes the salon every day.
func (cc *CatalogController) ReplaceHours(c *gin.Context) {
	salonID, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}

	var input ReplaceHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entries := make([]models.WorkingHours, 0, len(input.Hours))
	for _, h := range input.Hours {
		entries = append(entries, models.WorkingHours{
			SalonID:   salonID,
			Weekday:   h.Weekday,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
		})
	}
	if err := services.ValidateSchedule(entries); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := cc.store.ReplaceSchedule(c.Request.Context(), salonID, entries); err != nil {
		respondError(c, cc.logger, err, "Salon not found", "update working hours")
		return
	}
	cc.slots.InvalidateSalon(c.Request.Context(), salonID)

	c.JSON(http.StatusOK, entries)
}
