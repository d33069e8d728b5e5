package reservation_analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
)

// UseCase агрегаты по записям за период. Период считается по дате создания записи,
// а не по дате сеанса, границы дней по полуночи в часовом поясе студии.
type UseCase struct {
	source       ReservationSource
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(source ReservationSource, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		source:       source,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute считает агрегаты за период
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	period := req.Period
	if period == "" {
		period = PeriodToday
	}

	start, end, err := Bounds(period, uc.timeProvider.Now(), uc.location)
	if err != nil {
		uc.logger.Warn("Analytics: %v", err)
		return nil, err
	}

	uc.logger.Info("Analytics: period=%s start=%s end=%s", period, start.Format(time.RFC3339), end.Format(time.RFC3339))

	all, err := uc.source.Reservations(ctx)
	if err != nil {
		uc.logger.Error("Analytics: failed to read reservations: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	selected := make([]*domain.Reservation, 0)
	for _, r := range all {
		if InPeriod(r.CreatedAt, start, end) {
			selected = append(selected, r)
		}
	}

	resp := Aggregate(selected, uc.source.StaffName)
	resp.Period = period
	resp.Start = start
	resp.End = end

	uc.logger.Info("Analytics: period=%s count=%d revenue=%.2f", period, resp.Count, resp.Revenue)
	return resp, nil
}

// Bounds возвращает полуинтервал [start, end) периода относительно now в зоне loc
func Bounds(period Period, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	tomorrow := today.AddDate(0, 0, 1)

	switch period {
	case PeriodToday:
		return today, tomorrow, nil
	case PeriodYesterday:
		return today.AddDate(0, 0, -1), today, nil
	case PeriodWeek:
		return today.AddDate(0, 0, -6), tomorrow, nil
	case PeriodMonth:
		return today.AddDate(0, 0, -29), tomorrow, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
}

// InPeriod проверяет t ∈ [start, end)
func InPeriod(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// Aggregate считает суммы по записям. Средний чек равен 0 для пустого набора.
// artistName подставляет имя мастера в записи ответа, может быть nil.
func Aggregate(list []*domain.Reservation, artistName func(id *uuid.UUID) *string) *Response {
	resp := &Response{
		Count:        len(list),
		Reservations: make([]models.ReservationResponse, 0, len(list)),
	}

	for _, r := range list {
		resp.Revenue += r.TotalPrice
		resp.Deposits += r.DepositPaid
		if r.HasBothPaymentFlags() {
			resp.FullyPaid++
		}
		var name *string
		if artistName != nil {
			name = artistName(r.ArtistID)
		}
		resp.Reservations = append(resp.Reservations, *models.FromDomainReservation(r, name))
	}

	resp.NotFullyPaid = resp.Count - resp.FullyPaid
	if resp.Count > 0 {
		resp.AverageTicket = resp.Revenue / float64(resp.Count)
	}

	return resp
}
