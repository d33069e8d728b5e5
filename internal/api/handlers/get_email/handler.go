package get_email

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	"github.com/m04kA/SMC-TattooStudio/internal/service/emails"
)

const (
	msgInvalidEmailID = "некорректный ID письма"
	msgNotFound       = "письмо не найдено"
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

// Handle GET /api/v1/emails/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("GET /emails/{id} - Invalid email ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmailID)
		return
	}

	result, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, emails.ErrEmailNotFound) {
			h.logger.Warn("GET /emails/{id} - Email not found: email_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /emails/{id} - Failed to get email: email_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /emails/{id} - Email retrieved: email_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
