package update_email

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	"github.com/m04kA/SMC-TattooStudio/internal/service/emails"
	"github.com/m04kA/SMC-TattooStudio/internal/service/emails/models"
)

const (
	msgInvalidEmailID     = "некорректный ID письма"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNothingToUpdate    = "нужно указать isRead или isArchived"
	msgNotFound           = "письмо не найдено"
)

type Handler struct {
	service EmailService
	logger  Logger
}

func NewHandler(service EmailService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/emails/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("PATCH /emails/{id} - Invalid email ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmailID)
		return
	}

	var req models.UpdateFlagsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /emails/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateFlags(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, emails.ErrInvalidInput):
			h.logger.Warn("PATCH /emails/{id} - Nothing to update: email_id=%s", id)
			handlers.RespondBadRequest(w, msgNothingToUpdate)

		case errors.Is(err, emails.ErrEmailNotFound):
			h.logger.Warn("PATCH /emails/{id} - Email not found: email_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /emails/{id} - Failed to update email: email_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /emails/{id} - Email updated: email_id=%s, is_read=%t, is_archived=%t",
		id, result.IsRead, result.IsArchived)
	handlers.RespondJSON(w, http.StatusOK, result)
}
