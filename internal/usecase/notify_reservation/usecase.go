package notify_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/integrations/chatrelay"
	reservationsService "github.com/m04kA/SMC-TattooStudio/internal/service/reservations"
)

// UseCase форматирует запись и отправляет ее через чат-релей.
// Одна попытка, без повторов, очереди и сохранения неудачных отправок.
type UseCase struct {
	source   ReservationSource
	relay    RelayClient
	metrics  NotificationMetrics
	settings Settings
	logger   Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(source ReservationSource, relay RelayClient, metrics NotificationMetrics, settings Settings, logger Logger) *UseCase {
	if settings.DefaultChannel == "" {
		settings.DefaultChannel = domain.ChannelTelegram
	}
	return &UseCase{
		source:   source,
		relay:    relay,
		metrics:  metrics,
		settings: settings,
		logger:   logger,
	}
}

// Execute отправляет уведомление синхронно, ошибка релея возвращается вызывающему
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	channel := uc.settings.DefaultChannel
	if req.Channel != "" {
		channel = domain.Channel(strings.ToLower(strings.TrimSpace(req.Channel)))
	}
	if !channel.IsValid() {
		uc.logger.Warn("NotifyReservation: invalid channel=%s", req.Channel)
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, req.Channel)
	}

	to := strings.TrimSpace(req.To)
	if to == "" {
		to = uc.settings.Recipients[channel]
	}
	if to == "" {
		uc.logger.Warn("NotifyReservation: no recipient for channel=%s", channel)
		return nil, fmt.Errorf("%w: %s", ErrNoRecipient, channel)
	}

	uc.logger.Info("NotifyReservation: reservation=%s channel=%s to=%s", req.ReservationID, channel, to)

	res, err := uc.source.Reservation(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationsService.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("NotifyReservation: failed to load reservation=%s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	msg := chatrelay.Message{
		To:      to,
		Message: FormatMessage(res, uc.source.StaffName(res.ArtistID), uc.settings.StudioName, uc.settings.CurrencySymbol),
		Images:  res.DesignImages,
	}

	result, err := uc.relay.Send(ctx, channel, msg)
	uc.observe(channel, err == nil)
	if err != nil {
		uc.logger.Error("NotifyReservation: relay failed for reservation=%s channel=%s: %v", req.ReservationID, channel, err)
		return nil, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	uc.logger.Info("NotifyReservation: sent reservation=%s number=%d message_id=%s", res.ID, res.Number, result.MessageID)
	return &Response{Channel: string(channel), To: to, MessageID: result.MessageID}, nil
}

// NotifyAsync отправка после создания записи: в отдельной горутине,
// на отвязанном от запроса контексте. Ошибка только логируется.
func (uc *UseCase) NotifyAsync(id uuid.UUID) {
	go func() {
		ctx := context.Background()
		if uc.settings.AsyncTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, uc.settings.AsyncTimeout)
			defer cancel()
		}

		if _, err := uc.Execute(ctx, &Request{ReservationID: id}); err != nil {
			uc.logger.Warn("NotifyAsync: notice for reservation=%s lost: %v", id, err)
		}
	}()
}

func (uc *UseCase) observe(channel domain.Channel, success bool) {
	if uc.metrics != nil {
		uc.metrics.IncNotification(string(channel), success)
	}
}
