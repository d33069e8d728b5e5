package send_reservation_notice

import (
	"github.com/google/uuid"

	notifyReservation "github.com/m04kA/SMC-TattooStudio/internal/usecase/notify_reservation"
)

// SendNoticeRequest HTTP request model. Оба поля необязательны.
type SendNoticeRequest struct {
	Channel string `json:"channel,omitempty"` // telegram | whatsapp
	To      string `json:"to,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SendNoticeRequest) ToUseCaseRequest(id uuid.UUID) *notifyReservation.Request {
	return &notifyReservation.Request{
		ReservationID: id,
		Channel:       r.Channel,
		To:            r.To,
	}
}
