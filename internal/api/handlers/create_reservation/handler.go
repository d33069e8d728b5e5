package create_reservation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	"github.com/m04kA/SMC-TattooStudio/internal/api/middleware"
	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations"
	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
)

const (
	msgMissingStaffID      = "не удалось определить сотрудника"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные записи"
	msgInvalidArtist       = "мастер не найден или не является мастером"
	msgDepositExceedsTotal = "депозит не может превышать полную стоимость"
)

type Handler struct {
	service  ReservationService
	notifier Notifier
	logger   Logger
}

// NewHandler создает handler. notifier == nil отключает уведомление о новой записи.
func NewHandler(service ReservationService, notifier Notifier, logger Logger) *Handler {
	return &Handler{
		service:  service,
		notifier: notifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing staff ID")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	var req models.CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrDepositExceedsTotal):
			h.logger.Warn("POST /reservations - Deposit exceeds total: total=%.2f, deposit=%.2f", req.TotalPrice, req.DepositPaid)
			handlers.RespondBadRequest(w, msgDepositExceedsTotal)

		case errors.Is(err, reservations.ErrInvalidArtist):
			h.logger.Warn("POST /reservations - Invalid artist: %v", err)
			handlers.RespondBadRequest(w, msgInvalidArtist)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%s, number=%d, staff_id=%s", result.ID, result.Number, staffID)

	if h.notifier != nil {
		if id, err := uuid.Parse(result.ID); err == nil {
			h.notifier.NotifyAsync(id)
		}
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
