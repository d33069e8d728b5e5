package notify_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

// FormatMessage собирает текст уведомления о записи.
// Суммы выводятся с двумя знаками, дата в формате ДД/ММ/ГГГГ.
func FormatMessage(r *domain.Reservation, artistName *string, studioName, currency string) string {
	var b strings.Builder

	if studioName != "" {
		fmt.Fprintf(&b, "%s\n", studioName)
	}
	fmt.Fprintf(&b, "Reservation #%d\n", r.Number)
	fmt.Fprintf(&b, "Client: %s\n", r.FullName())
	fmt.Fprintf(&b, "Phone: %s\n", r.Phone)
	fmt.Fprintf(&b, "Date: %s at %s\n", r.AppointmentDate.Format(domain.DisplayDateFormat), r.AppointmentTime.String())
	if artistName != nil && *artistName != "" {
		fmt.Fprintf(&b, "Artist: %s\n", *artistName)
	}
	fmt.Fprintf(&b, "Total: %s\n", domain.FormatMoney(r.TotalPrice, currency))
	fmt.Fprintf(&b, "Deposit: %s\n", domain.FormatMoney(r.DepositPaid, currency))
	fmt.Fprintf(&b, "Remaining: %s\n", domain.FormatMoney(r.Remaining(), currency))
	fmt.Fprintf(&b, "Status: %s", r.PaymentStatus())
	if r.Notes != nil && strings.TrimSpace(*r.Notes) != "" {
		fmt.Fprintf(&b, "\nNotes: %s", strings.TrimSpace(*r.Notes))
	}

	return b.String()
}
