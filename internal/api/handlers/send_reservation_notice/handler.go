package send_reservation_notice

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	notifyReservation "github.com/m04kA/SMC-TattooStudio/internal/usecase/notify_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgInvalidChannel       = "неизвестный канал, ожидается telegram или whatsapp"
	msgNoRecipient          = "получатель не указан и не настроен"
	msgRelayFailed          = "не удалось отправить уведомление"
)

type Handler struct {
	useCase NotifyReservationUseCase
	logger  Logger
}

func NewHandler(useCase NotifyReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{id}/notify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/notify - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Тело необязательно: без него используются канал и получатель по умолчанию
	var req SendNoticeRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /reservations/{id}/notify - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, notifyReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/notify - Reservation not found: reservation_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, notifyReservation.ErrInvalidChannel):
			h.logger.Warn("POST /reservations/{id}/notify - Invalid channel: %q", req.Channel)
			handlers.RespondBadRequest(w, msgInvalidChannel)

		case errors.Is(err, notifyReservation.ErrNoRecipient):
			h.logger.Warn("POST /reservations/{id}/notify - No recipient: reservation_id=%s", id)
			handlers.RespondBadRequest(w, msgNoRecipient)

		case errors.Is(err, notifyReservation.ErrRelayFailed):
			h.logger.Warn("POST /reservations/{id}/notify - Relay failed: reservation_id=%s, error=%v", id, err)
			handlers.RespondError(w, http.StatusBadGateway, msgRelayFailed)

		default:
			h.logger.Error("POST /reservations/{id}/notify - Failed to send notice: reservation_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/notify - Notice sent: reservation_id=%s, channel=%s, message_id=%s",
		id, result.Channel, result.MessageID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
