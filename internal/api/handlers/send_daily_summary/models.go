package send_daily_summary

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	dailySummary "github.com/m04kA/SMC-TattooStudio/internal/usecase/daily_summary"
)

// SendSummaryRequest HTTP request model. Все поля необязательны.
type SendSummaryRequest struct {
	Date    string `json:"date,omitempty"` // "2026-03-14", пусто - сегодня
	Channel string `json:"channel,omitempty"`
	To      string `json:"to,omitempty"`
	DryRun  bool   `json:"dryRun,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SendSummaryRequest) ToUseCaseRequest() (*dailySummary.Request, error) {
	req := &dailySummary.Request{
		Channel: r.Channel,
		To:      r.To,
		DryRun:  r.DryRun,
	}

	if s := strings.TrimSpace(r.Date); s != "" {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
