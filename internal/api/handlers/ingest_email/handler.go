package ingest_email

import (
	"crypto/subtle"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	ingestEmail "github.com/m04kA/SMC-TattooStudio/internal/usecase/ingest_email"
)

const (
	secretHeader    = "X-Webhook-Secret"
	messageIDHeader = "Message-Id"

	msgInvalidSecret  = "неверный секрет вебхука"
	msgInvalidPayload = "некорректное тело вебхука"
	msgMissingSender  = "не указан отправитель"
	msgStoreFailed    = "не удалось сохранить письмо"
)

type Handler struct {
	useCase      IngestEmailUseCase
	secret       string
	maxBodyBytes int64
	logger       Logger
}

// NewHandler создает handler вебхука. Пустой secret отключает проверку заголовка.
func NewHandler(useCase IngestEmailUseCase, secret string, maxBodyBytes int64, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		secret:       secret,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Handle POST /api/v1/webhooks/email
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		got := r.Header.Get(secretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			h.logger.Warn("POST /webhooks/email - Invalid webhook secret from %s", r.RemoteAddr)
			handlers.RespondJSON(w, http.StatusUnauthorized, WebhookResponse{Error: msgInvalidSecret})
			return
		}
	}

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	req, err := h.parse(r)
	if err != nil {
		h.logger.Warn("POST /webhooks/email - Invalid payload: %v", err)
		handlers.RespondJSON(w, http.StatusBadRequest, WebhookResponse{Error: msgInvalidPayload})
		return
	}

	if req.MessageID == "" {
		req.MessageID = strings.TrimSpace(r.Header.Get(messageIDHeader))
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ingestEmail.ErrMissingSender):
			h.logger.Warn("POST /webhooks/email - Missing sender")
			handlers.RespondJSON(w, http.StatusBadRequest, WebhookResponse{Error: msgMissingSender})

		default:
			h.logger.Error("POST /webhooks/email - Failed to store email: from=%s, error=%v", req.From, err)
			handlers.RespondJSON(w, http.StatusInternalServerError, WebhookResponse{Error: msgStoreFailed})
		}
		return
	}

	h.logger.Info("POST /webhooks/email - Email accepted: email_id=%s, duplicate=%t, attachments=%d",
		result.EmailID, result.Duplicate, result.Attachments)
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{
		Success:   true,
		EmailID:   result.EmailID,
		Duplicate: result.Duplicate,
	})
}

// parse выбирает разбор по Content-Type: JSON, urlencoded или multipart форма
func (h *Handler) parse(r *http.Request) (*ingestEmail.Request, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = "application/json"
	}

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.formMemory()); err != nil {
			return nil, err
		}
		return ingestEmail.FromForm(r.PostForm)

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return ingestEmail.FromForm(r.PostForm)

	default:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		return ingestEmail.FromJSON(body)
	}
}

func (h *Handler) formMemory() int64 {
	if h.maxBodyBytes > 0 {
		return h.maxBodyBytes
	}
	return 32 << 20
}
