package send_daily_summary

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	dailySummary "github.com/m04kA/SMC-TattooStudio/internal/usecase/daily_summary"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры сводки"
	msgNoRecipient        = "получатель не указан и не настроен"
	msgRelayFailed        = "не удалось отправить сводку"
)

type Handler struct {
	useCase DailySummaryUseCase
	logger  Logger
}

func NewHandler(useCase DailySummaryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/notifications/daily-summary
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SendSummaryRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /notifications/daily-summary - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /notifications/daily-summary - Invalid date: %q", req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, dailySummary.ErrInvalidInput):
			h.logger.Warn("POST /notifications/daily-summary - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, dailySummary.ErrNoRecipient):
			h.logger.Warn("POST /notifications/daily-summary - No recipient: channel=%q", req.Channel)
			handlers.RespondBadRequest(w, msgNoRecipient)

		case errors.Is(err, dailySummary.ErrRelayFailed):
			h.logger.Warn("POST /notifications/daily-summary - Relay failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgRelayFailed)

		default:
			h.logger.Error("POST /notifications/daily-summary - Failed to build summary: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /notifications/daily-summary - Summary done: date=%s, count=%d, sent=%t",
		result.Date, result.Count, result.Sent)
	handlers.RespondJSON(w, http.StatusOK, result)
}
