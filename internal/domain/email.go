package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmailDirection направление письма
type EmailDirection string

const (
	DirectionInbound  EmailDirection = "inbound"
	DirectionOutbound EmailDirection = "outbound"
)

// IsValid проверяет допустимость направления
func (d EmailDirection) IsValid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// Email входящее или исходящее письмо
type Email struct {
	ID          uuid.UUID
	MessageID   string // уникален
	Direction   EmailDirection
	FromAddress string
	ToAddress   string
	Subject     string
	BodyText    string
	BodyHTML    string
	IsRead      bool
	IsArchived  bool
	ReceivedAt  time.Time
	CreatedAt   time.Time

	Attachments []EmailAttachment
}

// EmailAttachment метаданные вложения. Сам файл лежит во внешнем хранилище.
type EmailAttachment struct {
	ID          uuid.UUID
	EmailID     uuid.UUID
	Filename    string
	ContentType string
	SizeBytes   int64
	StoragePath string
	CreatedAt   time.Time
}

// EmailFilter фильтр списка писем
type EmailFilter struct {
	Archived   *bool
	UnreadOnly bool
	Limit      uint64
	Offset     uint64
}

// EmailFlagsPatch частичное обновление флагов письма
type EmailFlagsPatch struct {
	IsRead     *bool
	IsArchived *bool
}

// IsEmpty true, если ни один флаг не меняется
func (p EmailFlagsPatch) IsEmpty() bool {
	return p.IsRead == nil && p.IsArchived == nil
}
