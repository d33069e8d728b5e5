package list_emails

import (
	"net/http"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
)

const (
	msgInvalidQuery = "некорректные параметры запроса"
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

// Handle GET /api/v1/emails?archived=&unread=&limit=&offset=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /emails - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /emails - Failed to list emails: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /emails - Emails listed: count=%d", len(result.Emails))
	handlers.RespondJSON(w, http.StatusOK, result)
}
