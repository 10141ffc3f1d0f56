package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"salonmarket-backend/models"
	"salonmarket-backend/services"
	"salonmarket-backend/utils"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Duration    int              `json:"duration" binding:"required,gt=0,max=1440"` // in minutes
	Category    string           `json:"category"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *int             `json:"duration"`
	Category    *string          `json:"category"`
	IsActive    *bool            `json:"isActive"`
}

type CreatePromotionInput struct {
	DiscountPercentage *int      `json:"discountPercentage" binding:"required,min=0,max=100"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
}

// ServiceView is a service together with its price at the time of the request.
type ServiceView struct {
	models.Service
	Pricing services.PriceQuote `json:"pricing"`
}

const (
	defaultUpcomingLimit   = 5
	defaultExpiredPageSize = 10
)

func (cc *CatalogController) CreateService(c *gin.Context) {
	salonID, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Price.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Price cannot be negative")
		return
	}

	service := models.Service{
		SalonID:     salonID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price.Round(2),
		Duration:    input.Duration,
		Category:    input.Category,
		IsActive:    true,
	}
	if service.Category == "" {
		service.Category = "General"
	}

	if err := cc.store.CreateService(c.Request.Context(), &service); err != nil {
		respondError(c, cc.logger, err, "Salon not found", "create service")
		return
	}

	c.JSON(http.StatusCreated, ServiceView{Service: service, Pricing: services.ResolvePrice(service, nil, cc.now())})
}

// ListServices returns the salon's services, each priced with its promotion active now.
func (cc *CatalogController) ListServices(c *gin.Context) {
	salonID, ok := parseID(c, "id", "salon")
	if !ok {
		return
	}

	if _, err := cc.store.GetSalon(c.Request.Context(), salonID); err != nil {
		respondError(c, cc.logger, err, "Salon not found", "load salon")
		return
	}
	list, err := cc.store.ListServices(c.Request.Context(), salonID)
	if err != nil {
		respondError(c, cc.logger, err, "", "retrieve services")
		return
	}

	ids := make([]uuid.UUID, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	promotions, err := cc.store.ListPromotionsFor(c.Request.Context(), ids)
	if err != nil {
		respondError(c, cc.logger, err, "", "retrieve promotions")
		return
	}

	now := cc.now()
	views := make([]ServiceView, 0, len(list))
	for _, s := range list {
		views = append(views, ServiceView{Service: s, Pricing: services.ResolvePrice(s, promotions[s.ID], now)})
	}

	c.JSON(http.StatusOK, views)
}

func (cc *CatalogController) GetService(c *gin.Context) {
	service, promotions, ok := cc.loadServiceWithPromotions(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ServiceView{Service: *service, Pricing: services.ResolvePrice(*service, promotions, cc.now())})
}

func (cc *CatalogController) UpdateService(c *gin.Context) {
	serviceID, ok := parseID(c, "id", "service")
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := cc.store.GetService(c.Request.Context(), serviceID)
	if err != nil {
		respondError(c, cc.logger, err, "Service not found", "load service")
		return
	}

	// Update fields if provided
	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Price cannot be negative")
			return
		}
		service.Price = input.Price.Round(2)
	}
	if input.Duration != nil {
		if err := services.ValidateDuration(*input.Duration); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Duration must be between 1 and 1440 minutes")
			return
		}
		service.Duration = *input.Duration
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := cc.store.UpdateService(c.Request.Context(), service); err != nil {
		respondError(c, cc.logger, err, "Service not found", "update service")
		return
	}
	if input.Duration != nil {
		cc.slots.InvalidateSalon(c.Request.Context(), service.SalonID)
	}

	c.JSON(http.StatusOK, service)
}

func (cc *CatalogController) DeleteService(c *gin.Context) {
	serviceID, ok := parseID(c, "id", "service")
	if !ok {
		return
	}

	if err := cc.store.DeleteService(c.Request.Context(), serviceID); err != nil {
		respondError(c, cc.logger, err, "Service not found", "delete service")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

func (cc *CatalogController) CreatePromotion(c *gin.Context) {
	serviceID, ok := parseID(c, "id", "service")
	if !ok {
		return
	}

	var input CreatePromotionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		utils.RespondWithError(c, http.StatusBadRequest, "startTime and endTime are required")
		return
	}
	if input.StartTime.After(input.EndTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "startTime must not be after endTime")
		return
	}

	promotion := models.Promotion{
		ServiceID:          serviceID,
		DiscountPercentage: *input.DiscountPercentage,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
	}
	if err := cc.store.CreatePromotion(c.Request.Context(), &promotion); err != nil {
		respondError(c, cc.logger, err, "Service not found", "create promotion")
		return
	}

	c.JSON(http.StatusCreated, promotion)
}

func (cc *CatalogController) DeletePromotion(c *gin.Context) {
	promotionID, ok := parseID(c, "id", "promotion")
	if !ok {
		return
	}

	if err := cc.store.DeletePromotion(c.Request.Context(), promotionID); err != nil {
		respondError(c, cc.logger, err, "Promotion not found", "delete promotion")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Promotion deleted successfully"})
}

// ListPromotions reports the service's promotions split into active, upcoming and a page of
// expired ones. Query: limit (upcoming, default 5), page (default 1), page_size (default 10).
func (cc *CatalogController) ListPromotions(c *gin.Context) {
	limit, ok := intQuery(c, "limit", defaultUpcomingLimit)
	if !ok {
		return
	}
	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := intQuery(c, "page_size", defaultExpiredPageSize)
	if !ok {
		return
	}

	_, promotions, ok := cc.loadServiceWithPromotions(c)
	if !ok {
		return
	}

	catalog := services.NewPromotionCatalog(promotions, cc.now())
	expired, err := catalog.Expired(page, pageSize)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active":   catalog.Active(),
		"upcoming": catalog.Upcoming(limit),
		"expired":  expired,
		"counts":   catalog.Counts(),
	})
}

// GetPrice resolves the service price at ?at= (RFC 3339), defaulting to now.
func (cc *CatalogController) GetPrice(c *gin.Context) {
	at := cc.now()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid at, expected RFC 3339")
			return
		}
		at = parsed
	}

	service, promotions, ok := cc.loadServiceWithPromotions(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, services.ResolvePrice(*service, promotions, at))
}

func (cc *CatalogController) loadServiceWithPromotions(c *gin.Context) (*models.Service, []models.Promotion, bool) {
	serviceID, ok := parseID(c, "id", "service")
	if !ok {
		return nil, nil, false
	}

	service, err := cc.store.GetService(c.Request.Context(), serviceID)
	if err != nil {
		respondError(c, cc.logger, err, "Service not found", "load service")
		return nil, nil, false
	}
	promotions, err := cc.store.ListPromotions(c.Request.Context(), serviceID)
	if err != nil {
		respondError(c, cc.logger, err, "", "retrieve promotions")
		return nil, nil, false
	}
	return service, promotions, true
}

func intQuery(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+key)
		return 0, false
	}
	return n, true
}
