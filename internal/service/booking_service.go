package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/events"
	"smart_parking_booking/internal/metrics"
	"smart_parking_booking/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/guregu/null.v4"
)

const publishTimeout = 5 * time.Second

// maxBookingHours giữ hours * time.Hour trong phạm vi int64.
const maxBookingHours = math.MaxInt64 / int64(time.Hour)

type BookingService struct {
	store     repository.Store
	publisher events.Publisher
	logger    *zerolog.Logger

	now   func() time.Time
	newID func() (string, error)
}

func NewBookingService(store repository.Store, publisher events.Publisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		newID:     newBookingID,
	}
}

// newBookingID trả về "BK-" + UUIDv7: phần đầu theo thời gian, phần còn lại ngẫu nhiên.
func newBookingID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return "BK-" + id.String(), nil
}

func (s *BookingService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func validateBookingRequest(req domain.BookingRequestDTO) error {
	if req.SlotID == "" || req.LotName == "" || req.VehicleNumber == "" || req.Hours == 0 {
		return newError(ErrValidation, "Missing required fields: slotId, lotName, vehicleNumber, hours", nil)
	}
	if req.Hours < 0 {
		return newError(ErrValidation, "Hours must be a positive integer", nil)
	}
	if int64(req.Hours) > maxBookingHours {
		return newError(ErrValidation, fmt.Sprintf("Hours must not exceed %d", maxBookingHours), nil)
	}
	if req.Rate != nil && *req.Rate < 0 {
		return newError(ErrValidation, "Rate must not be negative", nil)
	}
	return nil
}

// Book reserves an available slot. The availability check, the slot update and
// the booking insert commit together or not at all.
func (s *BookingService) Book(ctx context.Context, req domain.BookingRequestDTO) (*domain.BookingResult, error) {
	if err := validateBookingRequest(req); err != nil {
		metrics.IncBooking(resultLabel(err))
		return nil, err
	}

	bookingID, err := s.newID()
	if err != nil {
		return nil, s.failBooking(newError(ErrStore, "Failed to create booking", err), req.SlotID)
	}
	bookingTime := s.timestamp()

	var booking *domain.Booking
	err = s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		slot, err := repos.Slots.FindByID(ctx, req.SlotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newError(ErrNotFound, fmt.Sprintf("Slot %s not found", req.SlotID), err)
			}
			return newError(ErrStore, "Database error", err)
		}
		if !slot.IsAvailable() {
			return newError(ErrConflict, fmt.Sprintf("Slot %s is already booked", slot.ID), nil)
		}

		b := &domain.Booking{
			BookingID:     bookingID,
			SlotID:        slot.ID,
			LotID:         req.LotID,
			LotName:       req.LotName,
			SlotType:      domain.SlotType(req.SlotType),
			VehicleNumber: req.VehicleNumber,
			Hours:         req.Hours,
			Rate:          slot.Rate,
			Status:        domain.BookingConfirmed,
			BookingTime:   bookingTime,
			ExpiryTime:    bookingTime.Add(time.Duration(req.Hours) * time.Hour),
		}
		if b.LotID == "" {
			b.LotID = slot.LotID
		}
		if b.SlotType == "" {
			b.SlotType = slot.Type
		}
		if req.Rate != nil {
			b.Rate = *req.Rate
		}
		b.TotalCost = b.Rate * float64(b.Hours)

		if err := repos.Slots.Occupy(ctx, slot.ID, req.VehicleNumber); err != nil {
			if errors.Is(err, repository.ErrSlotUnavailable) {
				return newError(ErrConflict, fmt.Sprintf("Slot %s is already booked", slot.ID), err)
			}
			return newError(ErrStore, "Failed to create booking", err)
		}
		if err := repos.Bookings.Create(ctx, b); err != nil {
			if errors.Is(err, repository.ErrDuplicateEntry) {
				return newError(ErrRetryable, "Booking reference collision, please retry", err)
			}
			return newError(ErrStore, "Failed to create booking", err)
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, s.failBooking(err, req.SlotID)
	}

	metrics.IncBooking("success")
	metrics.AddBookedHours(string(booking.SlotType), booking.Hours)
	s.logger.Info().
		Str("bookingId", booking.BookingID).
		Str("slotId", booking.SlotID).
		Str("vehicle", booking.VehicleNumber).
		Int("hours", booking.Hours).
		Float64("totalCost", booking.TotalCost).
		Msg("slot booked")

	s.publish(ctx, domain.SlotEvent{
		Type:          domain.SlotEventBooked,
		SlotID:        booking.SlotID,
		LotID:         booking.LotID,
		LotName:       booking.LotName,
		Status:        domain.SlotOccupied,
		BookingID:     booking.BookingID,
		VehicleNumber: booking.VehicleNumber,
		Timestamp:     booking.BookingTime,
	})

	return &domain.BookingResult{
		Booking:    booking,
		Directions: GenerateDirections(booking.SlotID, booking.LotName, string(booking.SlotType)),
		Message:    fmt.Sprintf("Booking confirmed! Slot %s is reserved for %d hour(s).", booking.SlotID, booking.Hours),
	}, nil
}

func (s *BookingService) failBooking(err error, slotID string) error {
	svcErr := asServiceError(err, "Failed to create booking")
	metrics.IncBooking(resultLabel(svcErr))
	s.logFailure(svcErr).Str("slotId", slotID).Msg("booking failed")
	return svcErr
}

// Release frees the slot held by a confirmed booking, selected either by
// booking id or by the latest booking on a slot.
func (s *BookingService) Release(ctx context.Context, req domain.ReleaseRequestDTO) (*domain.ReleaseResult, error) {
	switch {
	case req.SlotID == "" && req.BookingID == "":
		err := newError(ErrValidation, "Either slotId or bookingId is required", nil)
		metrics.IncRelease(resultLabel(err))
		return nil, err
	case req.SlotID != "" && req.BookingID != "":
		err := newError(ErrValidation, "Provide either slotId or bookingId, not both", nil)
		metrics.IncRelease(resultLabel(err))
		return nil, err
	}

	releasedAt := s.timestamp()
	var booking *domain.Booking
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		var (
			b   *domain.Booking
			err error
		)
		if req.BookingID != "" {
			b, err = repos.Bookings.FindByID(ctx, req.BookingID)
		} else {
			b, err = repos.Bookings.FindLatestBySlotID(ctx, req.SlotID)
		}
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newError(ErrNotFound, "Booking not found", err)
			}
			return newError(ErrStore, "Database error", err)
		}
		// Booking đã released được coi như không tồn tại.
		if b.Status != domain.BookingConfirmed {
			return newError(ErrNotFound, "Booking not found", nil)
		}

		if err := repos.Bookings.MarkReleased(ctx, b.BookingID, releasedAt); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newError(ErrNotFound, "Booking not found", err)
			}
			return newError(ErrStore, "Failed to release booking", err)
		}
		if err := repos.Slots.Vacate(ctx, b.SlotID); err != nil {
			return newError(ErrStore, "Failed to release booking", err)
		}

		b.Status = domain.BookingReleased
		b.ReleasedAt = null.TimeFrom(releasedAt)
		booking = b
		return nil
	})
	if err != nil {
		svcErr := asServiceError(err, "Failed to release booking")
		metrics.IncRelease(resultLabel(svcErr))
		s.logFailure(svcErr).Str("slotId", req.SlotID).Str("bookingId", req.BookingID).Msg("release failed")
		return nil, svcErr
	}

	metrics.IncRelease("success")
	s.logger.Info().Str("bookingId", booking.BookingID).Str("slotId", booking.SlotID).Msg("slot released")

	s.publish(ctx, domain.SlotEvent{
		Type:      domain.SlotEventReleased,
		SlotID:    booking.SlotID,
		LotID:     booking.LotID,
		LotName:   booking.LotName,
		Status:    domain.SlotAvailable,
		BookingID: booking.BookingID,
		Timestamp: releasedAt,
	})

	return &domain.ReleaseResult{
		Booking: booking,
		Message: fmt.Sprintf("Slot %s has been released", booking.SlotID),
	}, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.BookingResult, error) {
	booking, err := s.store.Repos().Bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "Booking not found", err)
		}
		s.logger.Error().Err(err).Str("bookingId", bookingID).Msg("loading booking failed")
		return nil, newError(ErrStore, "Database error", err)
	}
	return &domain.BookingResult{
		Booking:    booking,
		Directions: GenerateDirections(booking.SlotID, booking.LotName, string(booking.SlotType)),
	}, nil
}

// ListBookings returns every booking, newest first.
func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.store.Repos().Bookings.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing bookings failed")
		return nil, newError(ErrStore, "Database error", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

// publish gửi event sau khi commit. Lỗi chỉ được ghi log, trạng thái đã lưu không bị hoàn tác.
func (s *BookingService) publish(ctx context.Context, event domain.SlotEvent) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).
			Str("type", string(event.Type)).
			Str("slotId", event.SlotID).
			Msg("publishing slot event failed")
	}
}

func (s *BookingService) logFailure(err *Error) *zerolog.Event {
	switch err.Kind {
	case ErrStore, ErrRetryable:
		return s.logger.Error().Err(err)
	default:
		return s.logger.Debug().Str("reason", err.Message)
	}
}

// asServiceError classifies err, treating anything unclassified (e.g. a failed commit) as a store failure.
func asServiceError(err error, message string) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return newError(ErrStore, message, err)
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrRetryable):
		return "retryable"
	default:
		return "error"
	}
}
