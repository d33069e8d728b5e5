package get_analytics

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	reservationAnalytics "github.com/m04kA/SMC-TattooStudio/internal/usecase/reservation_analytics"
)

const (
	msgInvalidPeriod = "некорректный период, ожидается today, yesterday, week или month"
)

type Handler struct {
	useCase AnalyticsUseCase
	logger  Logger
}

func NewHandler(useCase AnalyticsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/analytics?period=today|yesterday|week|month
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	period := reservationAnalytics.Period(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("period"))))

	result, err := h.useCase.Execute(r.Context(), &reservationAnalytics.Request{Period: period})
	if err != nil {
		if errors.Is(err, reservationAnalytics.ErrInvalidPeriod) {
			h.logger.Warn("GET /analytics - Invalid period: %q", period)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /analytics - Failed to compute analytics: period=%s, error=%v", period, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /analytics - Analytics computed: period=%s, count=%d", result.Period, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}
