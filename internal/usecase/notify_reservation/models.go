package notify_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

// Settings параметры уведомлений студии
type Settings struct {
	StudioName     string
	CurrencySymbol string
	DefaultChannel domain.Channel
	Recipients     map[domain.Channel]string // получатель по умолчанию для каждого канала
	AsyncTimeout   time.Duration             // ограничение для отправки после создания записи
}

// Request запрос на отправку уведомления о записи
type Request struct {
	ReservationID uuid.UUID
	Channel       string // пусто - канал по умолчанию
	To            string // пусто - получатель из настроек
}

// Response результат отправки
type Response struct {
	Channel   string `json:"channel"`
	To        string `json:"to"`
	MessageID string `json:"messageId"`
}
