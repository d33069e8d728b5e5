package list_reservations

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

const (
	msgQueryTooLong = "поисковый запрос длиннее %d символов"
	msgInvalidQuery = "некорректные параметры запроса: from/to ожидаются в формате YYYY-MM-DD, refresh - true/false"
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

// Handle GET /api/v1/reservations?q=&from=&to=&refresh=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	params, err := parseQuery(r.URL.Query())
	if errors.Is(err, errQueryTooLong) {
		h.logger.Warn("GET /reservations - Search query too long: max=%d", domain.MaxSearchLength)
		handlers.RespondBadRequest(w, fmt.Sprintf(msgQueryTooLong, domain.MaxSearchLength))
		return
	}
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Ручное обновление: полная перезагрузка локального состояния из БД
	if params.refresh {
		if err := h.service.Load(r.Context()); err != nil {
			h.logger.Error("GET /reservations - Failed to refresh reservations: error=%v", err)
			handlers.RespondInternalError(w)
			return
		}
	}

	result, err := h.service.List(r.Context(), params.request)
	if err != nil {
		h.logger.Error("GET /reservations - Failed to list reservations: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations - Reservations listed: count=%d, query=%q, refresh=%t",
		len(result.Reservations), params.request.Query, params.refresh)
	handlers.RespondJSON(w, http.StatusOK, result)
}
