package update_reservation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	"github.com/m04kA/SMC-TattooStudio/internal/api/middleware"
	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations"
	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
)

const (
	msgMissingStaffID       = "не удалось определить сотрудника"
	msgInvalidReservationID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgEmptyUpdate          = "нет полей для обновления"
	msgInvalidInput         = "некорректные данные записи"
	msgInvalidArtist        = "мастер не найден или не является мастером"
	msgDepositExceedsTotal  = "депозит не может превышать полную стоимость"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing staff ID")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrEmptyUpdate):
			h.logger.Warn("PATCH /reservations/{id} - Empty update: reservation_id=%s", id)
			handlers.RespondBadRequest(w, msgEmptyUpdate)

		case errors.Is(err, reservations.ErrDepositExceedsTotal):
			h.logger.Warn("PATCH /reservations/{id} - Deposit exceeds total: reservation_id=%s", id)
			handlers.RespondBadRequest(w, msgDepositExceedsTotal)

		case errors.Is(err, reservations.ErrInvalidArtist):
			h.logger.Warn("PATCH /reservations/{id} - Invalid artist: reservation_id=%s, %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidArtist)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: reservation_id=%s, %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: reservation_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated: reservation_id=%s, staff_id=%s", id, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
