package daily_summary

import (
	"context"
	"time"
)

// NextRun ближайший момент после now, когда в часовом поясе loc наступает hour:00
func NextRun(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}
	return next
}

// RunDaily отправляет сводку каждый день в hour:00 по времени студии до отмены ctx.
// Ошибка отправки логируется, следующая попытка - на следующий день.
func (uc *UseCase) RunDaily(ctx context.Context, hour int) {
	for {
		next := NextRun(uc.timeProvider.Now(), hour, uc.settings.Location)
		uc.logger.Info("DailySummary: next scheduled run at %s", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			uc.logger.Info("DailySummary: scheduler stopped")
			return
		case <-timer.C:
		}

		if _, err := uc.Execute(ctx, &Request{}); err != nil {
			uc.logger.Error("DailySummary: scheduled run failed: %v", err)
		}
	}
}
