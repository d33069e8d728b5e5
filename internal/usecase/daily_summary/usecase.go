package daily_summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/integrations/chatrelay"
)

// UseCase сводка сеансов на день с отправкой через чат-релей
type UseCase struct {
	reservationRepo ReservationRepository
	staffRepo       StaffRepository
	relay           RelayClient
	metrics         NotificationMetrics
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	reservationRepo ReservationRepository,
	staffRepo StaffRepository,
	relay RelayClient,
	metrics NotificationMetrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.DefaultChannel == "" {
		settings.DefaultChannel = domain.ChannelTelegram
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		staffRepo:       staffRepo,
		relay:           relay,
		metrics:         metrics,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute собирает сводку и, если это не пробный запуск, отправляет ее
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	date := uc.today()
	if req.Date != nil {
		date = time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
	}

	channel := uc.settings.DefaultChannel
	if req.Channel != "" {
		channel = domain.Channel(strings.ToLower(strings.TrimSpace(req.Channel)))
	}
	if !channel.IsValid() {
		uc.logger.Warn("DailySummary: invalid channel=%s", req.Channel)
		return nil, fmt.Errorf("%w: invalid channel %q", ErrInvalidInput, req.Channel)
	}

	to := strings.TrimSpace(req.To)
	if to == "" {
		to = uc.settings.Recipients[channel]
	}
	if to == "" && !req.DryRun {
		uc.logger.Warn("DailySummary: no recipient for channel=%s", channel)
		return nil, fmt.Errorf("%w: %s", ErrNoRecipient, channel)
	}

	uc.logger.Info("DailySummary: date=%s channel=%s dry_run=%t", date.Format(domain.DateFormat), channel, req.DryRun)

	list, err := uc.reservationRepo.ListByAppointmentDate(ctx, date)
	if err != nil {
		uc.logger.Error("DailySummary: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: ListByAppointmentDate: %v", ErrInternal, err)
	}

	artists, err := uc.artistNames(ctx)
	if err != nil {
		// сводка без имен мастеров лучше, чем никакой
		uc.logger.Warn("DailySummary: failed to load staff names: %v", err)
	}

	summary := Summarize(list)
	resp := &Response{
		Date:            date.Format(domain.DateFormat),
		Count:           summary.Count,
		ExpectedRevenue: summary.ExpectedRevenue,
		Outstanding:     summary.Outstanding,
		Message:         FormatSummary(date, list, artists, uc.settings.StudioName, uc.settings.CurrencySymbol),
		Channel:         string(channel),
		To:              to,
	}

	if req.DryRun {
		return resp, nil
	}

	result, err := uc.relay.Send(ctx, channel, chatrelay.Message{To: to, Message: resp.Message})
	uc.observe(channel, err == nil)
	if err != nil {
		uc.logger.Error("DailySummary: relay failed for date=%s: %v", resp.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	resp.MessageID = result.MessageID
	resp.Sent = true

	uc.logger.Info("DailySummary: sent date=%s count=%d message_id=%s", resp.Date, resp.Count, resp.MessageID)
	return resp, nil
}

// today календарная дата "сегодня" в часовом поясе студии
func (uc *UseCase) today() time.Time {
	local := uc.timeProvider.Now().In(uc.settings.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func (uc *UseCase) observe(channel domain.Channel, success bool) {
	if uc.metrics != nil {
		uc.metrics.IncNotification(string(channel), success)
	}
}

func (uc *UseCase) artistNames(ctx context.Context) (map[uuid.UUID]string, error) {
	staff, err := uc.staffRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(staff))
	for _, member := range staff {
		names[member.ID] = member.FullName
	}
	return names, nil
}
