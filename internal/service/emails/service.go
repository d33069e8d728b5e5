package emails

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	emailRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/email"
	"github.com/m04kA/SMC-TattooStudio/internal/service/emails/models"
)

// Service сервис входящей почты студии
type Service struct {
	emailRepo EmailRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса писем
func NewService(emailRepo EmailRepository, logger Logger) *Service {
	return &Service{
		emailRepo: emailRepo,
		logger:    logger,
	}
}

// List возвращает письма, новые первыми
func (s *Service) List(ctx context.Context, req *models.ListEmailsRequest) (*models.EmailListResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = domain.DefaultEmailPage
	}
	if limit > domain.MaxEmailPage {
		limit = domain.MaxEmailPage
	}

	s.logger.Info("List: fetching emails archived=%v unread_only=%t limit=%d offset=%d", req.Archived, req.UnreadOnly, limit, req.Offset)

	list, err := s.emailRepo.List(ctx, domain.EmailFilter{
		Archived:   req.Archived,
		UnreadOnly: req.UnreadOnly,
		Limit:      limit,
		Offset:     req.Offset,
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.EmailListResponse{Emails: make([]models.EmailResponse, 0, len(list))}
	for _, e := range list {
		resp.Emails = append(resp.Emails, models.FromDomainEmail(e, false))
	}

	return resp, nil
}

// Get возвращает письмо с телом и вложениями
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.EmailResponse, error) {
	s.logger.Info("Get: fetching email id=%s", id)

	e, err := s.emailRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, emailRepo.ErrEmailNotFound) {
			s.logger.Warn("Get: email id=%s not found", id)
			return nil, ErrEmailNotFound
		}
		s.logger.Error("Get: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainEmail(e, true)
	return &resp, nil
}

// UpdateFlags меняет флаги прочтения и архивации и возвращает обновленное письмо
func (s *Service) UpdateFlags(ctx context.Context, id uuid.UUID, req *models.UpdateFlagsRequest) (*models.EmailResponse, error) {
	patch := domain.EmailFlagsPatch{IsRead: req.IsRead, IsArchived: req.IsArchived}
	if patch.IsEmpty() {
		s.logger.Warn("UpdateFlags: empty patch for email id=%s", id)
		return nil, fmt.Errorf("%w: isRead or isArchived is required", ErrInvalidInput)
	}

	s.logger.Info("UpdateFlags: email id=%s is_read=%v is_archived=%v", id, req.IsRead, req.IsArchived)

	if err := s.emailRepo.UpdateFlags(ctx, id, patch); err != nil {
		if errors.Is(err, emailRepo.ErrEmailNotFound) {
			s.logger.Warn("UpdateFlags: email id=%s not found", id)
			return nil, ErrEmailNotFound
		}
		s.logger.Error("UpdateFlags: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateFlags - repository error: %v", ErrInternal, err)
	}

	return s.Get(ctx, id)
}
