package handler

import (
	"net/http"
	"smart_parking_booking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ParkingHandler struct {
	parkingService *service.ParkingService
	logger         *zerolog.Logger
}

func NewParkingHandler(ps *service.ParkingService, logger *zerolog.Logger) *ParkingHandler {
	return &ParkingHandler{parkingService: ps, logger: logger}
}

// GET /api/lots
func (h *ParkingHandler) ListLots(c *gin.Context) {
	lots, err := h.parkingService.ListLots(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "lots": lots})
}

// GET /api/slots
func (h *ParkingHandler) ListSlots(c *gin.Context) {
	slots, err := h.parkingService.ListSlots(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots})
}
