package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonmarket-backend/utils"
)

type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// ProfileController serves /api/users/:id. Access is decided by the route's policy.
type ProfileController struct {
	store  UserStore
	logger *zap.Logger
}

func NewProfileController(store UserStore, logger *zap.Logger) *ProfileController {
	return &ProfileController{store: store, logger: logger}
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	user, err := pc.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, pc.logger, err, "User not found", "load user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	userID, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := pc.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, pc.logger, err, "User not found", "load user")
		return
	}

	if input.Name != nil {
		if *input.Name == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		user.Name = *input.Name
	}
	if input.Phone != nil {
		phone := utils.NormalizePhone(*input.Phone)
		if !utils.ValidatePhone(phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
			return
		}
		user.Phone = phone
	}

	if err := pc.store.UpdateUserProfile(c.Request.Context(), user); err != nil {
		respondError(c, pc.logger, err, "User not found", "update profile")
		return
	}

	c.JSON(http.StatusOK, user)
}
