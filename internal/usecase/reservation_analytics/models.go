package reservation_analytics

import (
	"time"

	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
)

// Period период аналитики
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"  // последние 7 дней, включая сегодня
	PeriodMonth     Period = "month" // последние 30 дней, включая сегодня
)

// Request запрос аналитики
type Request struct {
	Period Period
}

// Response агрегаты по записям, созданным в периоде [Start, End)
type Response struct {
	Period        Period                       `json:"period"`
	Start         time.Time                    `json:"start"`
	End           time.Time                    `json:"end"`
	Count         int                          `json:"count"`
	Revenue       float64                      `json:"revenue"`
	Deposits      float64                      `json:"deposits"`
	AverageTicket float64                      `json:"averageTicket"`
	FullyPaid     int                          `json:"fullyPaid"`
	NotFullyPaid  int                          `json:"notFullyPaid"`
	Reservations  []models.ReservationResponse `json:"reservations"`
}
