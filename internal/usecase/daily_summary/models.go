package daily_summary

import (
	"time"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

// Settings параметры сводки
type Settings struct {
	StudioName     string
	CurrencySymbol string
	DefaultChannel domain.Channel
	Recipients     map[domain.Channel]string
	Location       *time.Location
}

// Request запрос на сводку
type Request struct {
	Date    *time.Time // nil - сегодня в часовом поясе студии
	Channel string
	To      string
	DryRun  bool // только собрать текст, не отправлять
}

// Response итог сводки
type Response struct {
	Date            string  `json:"date"`
	Count           int     `json:"count"`
	ExpectedRevenue float64 `json:"expectedRevenue"`
	Outstanding     float64 `json:"outstanding"`
	Message         string  `json:"message"`
	Channel         string  `json:"channel,omitempty"`
	To              string  `json:"to,omitempty"`
	MessageID       string  `json:"messageId,omitempty"`
	Sent            bool    `json:"sent"`
}
