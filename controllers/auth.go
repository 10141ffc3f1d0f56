package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonmarket-backend/models"
	"salonmarket-backend/repository"
	"salonmarket-backend/utils"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=client provider"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

type AuthController struct {
	store  UserStore
	tokens *utils.TokenService
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthController(store UserStore, tokens *utils.TokenService, logger *zap.Logger, now func() time.Time) *AuthController {
	return &AuthController{store: store, tokens: tokens, logger: logger, now: now}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	phone := utils.NormalizePhone(input.Phone)
	if !utils.ValidatePhone(phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Check if email or phone already exists
	for _, identifier := range []string{email, phone} {
		_, err := ac.store.FindUserByIdentifier(c.Request.Context(), identifier)
		if err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
			return
		}
		if !errors.Is(err, repository.ErrNotFound) {
			respondError(c, ac.logger, err, "", "look up user")
			return
		}
	}

	role := input.Role
	if role == "" {
		role = models.RoleClient
	}
	user := models.User{
		Email:    email,
		Phone:    phone,
		Name:     input.Name,
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     role,
		IsActive: true,
	}
	if err := ac.store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
			return
		}
		respondError(c, ac.logger, err, "", "create user")
		return
	}

	token, ok := ac.issueToken(c, &user)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    user,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)
	if strings.Contains(identifier, "@") {
		identifier = strings.ToLower(identifier)
	} else {
		identifier = utils.NormalizePhone(identifier)
	}

	user, err := ac.store.FindUserByIdentifier(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(c, ac.logger, err, "", "look up user")
		return
	}

	if !user.IsActive || !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, ok := ac.issueToken(c, user)
	if !ok {
		return
	}

	now := ac.now()
	if err := ac.store.TouchLastLogin(c.Request.Context(), user.ID, now); err != nil {
		ac.logger.Warn("failed to update last login", zap.Error(err), zap.String("user_id", user.ID.String()))
	} else {
		user.LastLogin = &now
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := ac.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
			return
		}
		respondError(c, ac.logger, err, "", "load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// issueToken signs a token for user and mirrors it into the token cookie.
func (ac *AuthController) issueToken(c *gin.Context, user *models.User) (string, bool) {
	token, err := ac.tokens.Generate(user.ID.String(), user.Role)
	if err != nil {
		ac.logger.Error("failed to generate token", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return "", false
	}

	c.SetCookie(
		"token",
		token,
		int(ac.tokens.Expiry().Seconds()),
		"/",
		"",
		true,
		true,
	)
	return token, true
}
