package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"salonmarket-backend/models"
	"salonmarket-backend/services"
	"salonmarket-backend/utils"
)

type AddToCartInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type AddFavoriteInput struct {
	SalonID uuid.UUID `json:"salonId" binding:"required"`
}

// CartLine is a cart item priced at the time of the request.
type CartLine struct {
	ID        uuid.UUID           `json:"id"`
	Service   models.Service      `json:"service"`
	Quantity  int                 `json:"quantity"`
	Pricing   services.PriceQuote `json:"pricing"`
	LineTotal decimal.Decimal     `json:"lineTotal"`
}

type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartController serves the caller's own cart and favorites.
type CartController struct {
	store  CartStore
	logger *zap.Logger
	now    func() time.Time
}

func NewCartController(store CartStore, logger *zap.Logger, now func() time.Time) *CartController {
	return &CartController{store: store, logger: logger, now: now}
}

// GetCart prices every line with the promotion active now, so totals follow promotions
// that started or ended since the item was added.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	items, err := cc.store.ListCart(ctx, userID)
	if err != nil {
		respondError(c, cc.logger, err, "", "retrieve cart")
		return
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ServiceID
	}
	promotions, err := cc.store.ListPromotionsFor(ctx, ids)
	if err != nil {
		respondError(c, cc.logger, err, "", "retrieve promotions")
		return
	}

	now := cc.now()
	view := CartView{Items: make([]CartLine, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		quote := services.ResolvePrice(item.Service, promotions[item.ServiceID], now)
		line := CartLine{
			ID:        item.ID,
			Service:   item.Service,
			Quantity:  item.Quantity,
			Pricing:   quote,
			LineTotal: quote.FinalPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
		view.Total = view.Total.Add(line.LineTotal)
		view.Items = append(view.Items, line)
	}

	c.JSON(http.StatusOK, view)
}

// AddToCart puts a service in the cart, replacing the quantity when it is already there.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	service, err := cc.store.GetService(c.Request.Context(), input.ServiceID)
	if err != nil {
		respondError(c, cc.logger, err, "Service not found", "load service")
		return
	}
	if !service.IsActive {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	item := models.CartItem{
		UserID:    userID,
		ServiceID: service.ID,
		Quantity:  input.Quantity,
	}
	if err := cc.store.UpsertCartItem(c.Request.Context(), &item); err != nil {
		respondError(c, cc.logger, err, "Service not found", "add to cart")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (cc *CartController) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "id", "cart item")
	if !ok {
		return
	}

	var input UpdateCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := cc.store.UpdateCartQuantity(c.Request.Context(), userID, itemID, input.Quantity); err != nil {
		respondError(c, cc.logger, err, "Cart item not found", "update cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": itemID, "quantity": input.Quantity})
}

func (cc *CartController) RemoveCartItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "id", "cart item")
	if !ok {
		return
	}

	if err := cc.store.DeleteCartItem(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, cc.logger, err, "Cart item not found", "remove cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (cc *CartController) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	favorites, err := cc.store.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, cc.logger, err, "", "retrieve favorites")
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}

	c.JSON(http.StatusOK, favorites)
}

func (cc *CartController) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input AddFavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	salon, err := cc.store.GetSalon(c.Request.Context(), input.SalonID)
	if err != nil {
		respondError(c, cc.logger, err, "Salon not found", "load salon")
		return
	}

	favorite := models.Favorite{UserID: userID, SalonID: salon.ID}
	if err := cc.store.AddFavorite(c.Request.Context(), &favorite); err != nil {
		respondError(c, cc.logger, err, "Salon not found", "add favorite")
		return
	}
	favorite.Salon = *salon

	c.JSON(http.StatusCreated, favorite)
}

func (cc *CartController) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	favoriteID, ok := parseID(c, "id", "favorite")
	if !ok {
		return
	}

	if err := cc.store.DeleteFavorite(c.Request.Context(), userID, favoriteID); err != nil {
		respondError(c, cc.logger, err, "Favorite not found", "remove favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}
