package ingest_email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	emailRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/email"
)

// UseCase сохраняет входящее письмо из почтового вебхука
type UseCase struct {
	emailRepo    EmailRepository
	txManager    TransactionManager
	metrics      IngestMetrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	emailRepo EmailRepository,
	txManager TransactionManager,
	metrics IngestMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		emailRepo:    emailRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute сохраняет письмо и его вложения в одной транзакции.
// Повторная доставка того же message_id возвращает уже сохраненное письмо с Duplicate=true.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || strings.TrimSpace(req.From) == "" {
		uc.observe(OutcomeInvalid)
		uc.logger.Warn("IngestEmail: rejected payload without sender")
		return nil, ErrMissingSender
	}

	now := uc.timeProvider.Now().UTC()

	messageID := strings.TrimSpace(req.MessageID)
	if messageID == "" {
		messageID = fmt.Sprintf("%s-%d", strings.TrimSpace(req.From), now.UnixMilli())
	}

	if existing, ok, err := uc.findExisting(ctx, messageID); err != nil {
		uc.observe(OutcomeFailed)
		return nil, err
	} else if ok {
		return existing, nil
	}

	email := &domain.Email{
		MessageID:   messageID,
		Direction:   domain.DirectionInbound,
		FromAddress: strings.TrimSpace(req.From),
		ToAddress:   strings.TrimSpace(req.To),
		Subject:     req.Subject,
		BodyText:    req.Text,
		BodyHTML:    req.HTML,
		ReceivedAt:  now,
	}

	var stored *domain.Email
	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		created, err := uc.emailRepo.Create(ctx, email)
		if err != nil {
			return err
		}

		for _, a := range req.Attachments {
			_, err := uc.emailRepo.CreateAttachment(ctx, &domain.EmailAttachment{
				EmailID:     created.ID,
				Filename:    a.Filename,
				ContentType: a.ContentType,
				SizeBytes:   a.Size,
				StoragePath: a.URL,
			})
			if err != nil {
				return fmt.Errorf("attachment %q: %w", a.Filename, err)
			}
		}

		stored = created
		return nil
	})
	if err != nil {
		// Параллельная доставка того же письма успела раньше
		if errors.Is(err, emailRepo.ErrDuplicateMessageID) {
			if existing, ok, findErr := uc.findExisting(ctx, messageID); findErr == nil && ok {
				return existing, nil
			}
		}
		uc.observe(OutcomeFailed)
		uc.logger.Error("IngestEmail: failed to store message_id=%s from=%s: %v", messageID, email.FromAddress, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.observe(OutcomeStored)
	uc.logger.Info("IngestEmail: stored email=%s message_id=%s from=%s attachments=%d",
		stored.ID, messageID, stored.FromAddress, len(req.Attachments))

	return &Response{
		EmailID:     stored.ID.String(),
		MessageID:   messageID,
		Attachments: len(req.Attachments),
	}, nil
}

func (uc *UseCase) findExisting(ctx context.Context, messageID string) (*Response, bool, error) {
	existing, err := uc.emailRepo.GetByMessageID(ctx, messageID)
	if err != nil {
		if errors.Is(err, emailRepo.ErrEmailNotFound) {
			return nil, false, nil
		}
		uc.logger.Error("IngestEmail: failed to look up message_id=%s: %v", messageID, err)
		return nil, false, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.observe(OutcomeDuplicate)
	uc.logger.Info("IngestEmail: duplicate delivery message_id=%s, email=%s", messageID, existing.ID)

	return &Response{
		EmailID:     existing.ID.String(),
		MessageID:   messageID,
		Attachments: len(existing.Attachments),
		Duplicate:   true,
	}, true, nil
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncEmailIngested(outcome)
	}
}
