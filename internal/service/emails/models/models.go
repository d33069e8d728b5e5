package models

import (
	"time"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

// ListEmailsRequest фильтр списка писем
type ListEmailsRequest struct {
	Archived   *bool
	UnreadOnly bool
	Limit      uint64
	Offset     uint64
}

// UpdateFlagsRequest частичное обновление флагов письма
type UpdateFlagsRequest struct {
	IsRead     *bool `json:"isRead,omitempty"`
	IsArchived *bool `json:"isArchived,omitempty"`
}

// AttachmentResponse метаданные вложения
type AttachmentResponse struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"size"`
	URL         string `json:"url"`
}

// EmailResponse письмо
type EmailResponse struct {
	ID          string               `json:"id"`
	MessageID   string               `json:"messageId"`
	Direction   string               `json:"direction"`
	From        string               `json:"from"`
	To          string               `json:"to"`
	Subject     string               `json:"subject"`
	Text        string               `json:"text,omitempty"`
	HTML        string               `json:"html,omitempty"`
	IsRead      bool                 `json:"isRead"`
	IsArchived  bool                 `json:"isArchived"`
	ReceivedAt  time.Time            `json:"receivedAt"`
	Attachments []AttachmentResponse `json:"attachments,omitempty"`
}

// EmailListResponse список писем (без тел)
type EmailListResponse struct {
	Emails []EmailResponse `json:"emails"`
}

// FromDomainEmail конвертирует письмо. withBody=false отбрасывает тела для списков.
func FromDomainEmail(e *domain.Email, withBody bool) EmailResponse {
	resp := EmailResponse{
		ID:         e.ID.String(),
		MessageID:  e.MessageID,
		Direction:  string(e.Direction),
		From:       e.FromAddress,
		To:         e.ToAddress,
		Subject:    e.Subject,
		IsRead:     e.IsRead,
		IsArchived: e.IsArchived,
		ReceivedAt: e.ReceivedAt,
	}

	if withBody {
		resp.Text = e.BodyText
		resp.HTML = e.BodyHTML
	}

	for _, a := range e.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:          a.ID.String(),
			Filename:    a.Filename,
			ContentType: a.ContentType,
			SizeBytes:   a.SizeBytes,
			URL:         a.StoragePath,
		})
	}

	return resp
}
