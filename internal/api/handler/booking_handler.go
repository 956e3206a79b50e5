package handler

import (
	"net/http"
	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type BookingHandler struct {
	bookingService *service.BookingService
	logger         *zerolog.Logger
}

func NewBookingHandler(bs *service.BookingService, logger *zerolog.Logger) *BookingHandler {
	return &BookingHandler{bookingService: bs, logger: logger}
}

// POST /api/book
func (h *BookingHandler) Book(c *gin.Context) {
	var dto domain.BookingRequestDTO
	if err := bindOptionalJSON(c, &dto); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.bookingService.Book(c.Request.Context(), dto)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"booking":    result.Booking,
		"directions": result.Directions,
		"message":    result.Message,
	})
}

// GET /api/booking/:bookingId
func (h *BookingHandler) GetBooking(c *gin.Context) {
	result, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"booking":    result.Booking,
		"directions": result.Directions,
	})
}

// GET /api/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListBookings(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings, "count": len(bookings)})
}

// POST /api/release
func (h *BookingHandler) Release(c *gin.Context) {
	var dto domain.ReleaseRequestDTO
	if err := bindOptionalJSON(c, &dto); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.bookingService.Release(c.Request.Context(), dto)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": result.Message, "booking": result.Booking})
}
