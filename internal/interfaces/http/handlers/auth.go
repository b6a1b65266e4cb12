package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-api/internal/pkg/auth"
)

// AuthHandler handles authentication and account endpoints
type AuthHandler struct {
	userService *user.Service
	config      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: user.NewService(db, cfg, auth.NewPasswordManager(cfg), auth.NewJWTManager(cfg)),
		config:      cfg,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, err := h.userService.Register(&req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusCreated, "User registered successfully", gin.H{
		"userId": userID,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.userService.Login(&req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"token": resp.Token,
		"user":  resp.User,
	})
}

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"user": profile,
	})
}

// UpdateProfile handles PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "Profile updated successfully", gin.H{
		"user": profile,
	})
}

// AddAddress handles POST /auth/addresses
func (h *AuthHandler) AddAddress(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	var req user.AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	addressID, err := h.userService.AddAddress(userID, &req)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusCreated, "Address added successfully", gin.H{
		"addressId": addressID,
	})
}

// GetAddresses handles GET /auth/addresses
func (h *AuthHandler) GetAddresses(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	addresses, err := h.userService.GetAddresses(userID)
	if err != nil {
		respondError(c, h.config, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"addresses": addresses,
	})
}
