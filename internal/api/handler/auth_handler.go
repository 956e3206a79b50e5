package handler

import (
	"errors"
	"net/http"
	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zerolog.Logger
}

func NewAuthHandler(as *service.AuthService, logger *zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: as, logger: logger}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var dto domain.LoginUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	authResponse, err := h.authService.Login(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.logger.Error().Err(err).Str("username", dto.Username).Msg("login failed")
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "auth": authResponse})
}
