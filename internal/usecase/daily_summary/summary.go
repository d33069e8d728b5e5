package daily_summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

// Summary агрегаты по записям одного дня
type Summary struct {
	Count           int
	ExpectedRevenue float64
	Outstanding     float64
}

// Summarize считает ожидаемую выручку и непогашенный остаток.
// Полностью оплаченные записи остатка не имеют.
func Summarize(list []*domain.Reservation) Summary {
	var s Summary
	s.Count = len(list)
	for _, r := range list {
		s.ExpectedRevenue += r.TotalPrice
		if r.PaymentStatus() != domain.PaymentFullyPaid {
			s.Outstanding += r.Remaining()
		}
	}
	return s
}

// FormatSummary текст сводки, по строке на сеанс
func FormatSummary(date time.Time, list []*domain.Reservation, artists map[uuid.UUID]string, studioName, currency string) string {
	s := Summarize(list)

	var b strings.Builder
	header := "Appointments for " + date.Format(domain.DisplayDateFormat)
	if studioName != "" {
		header = studioName + ": " + header
	}
	b.WriteString(header)

	if s.Count == 0 {
		b.WriteString("\nNo appointments.")
		return b.String()
	}

	fmt.Fprintf(&b, "\n%d appointment(s), expected %s, outstanding %s",
		s.Count, domain.FormatMoney(s.ExpectedRevenue, currency), domain.FormatMoney(s.Outstanding, currency))

	for _, r := range list {
		fmt.Fprintf(&b, "\n%s #%d %s", r.AppointmentTime.String(), r.Number, r.FullName())
		if r.ArtistID != nil {
			if name, ok := artists[*r.ArtistID]; ok {
				fmt.Fprintf(&b, " (%s)", name)
			}
		}
		fmt.Fprintf(&b, " - %s", r.PaymentStatus())
		if r.PaymentStatus() != domain.PaymentFullyPaid {
			fmt.Fprintf(&b, ", remaining %s", domain.FormatMoney(r.Remaining(), currency))
		}
	}

	return b.String()
}
