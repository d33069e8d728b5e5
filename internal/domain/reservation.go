package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/pkg/types"
)

// PaymentStatus статус оплаты записи (вычисляется, не хранится)
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "Pending"
	PaymentDepositPaid PaymentStatus = "Deposit Paid"
	PaymentFullyPaid   PaymentStatus = "Fully Paid"
)

// Reservation запись клиента на сеанс
type Reservation struct {
	ID              uuid.UUID
	Number          int64 // человекочитаемый номер, назначается БД
	FirstName       string
	LastName        string
	Phone           string
	AppointmentDate time.Time // значима только календарная дата
	AppointmentTime types.TimeString
	TotalPrice      float64
	DepositPaid     float64 // сумма внесенного депозита

	IsDepositPaid bool
	IsRestPaid    bool
	IsPaid        bool // устаревший общий флаг оплаты

	ArtistID     *uuid.UUID
	Notes        *string
	DesignImages []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName имя и фамилия клиента
func (r *Reservation) FullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// Remaining остаток к оплате. Округление только при выводе.
func (r *Reservation) Remaining() float64 {
	return r.TotalPrice - r.DepositPaid
}

// HasBothPaymentFlags true, если оплачены и депозит, и остаток
func (r *Reservation) HasBothPaymentFlags() bool {
	return r.IsDepositPaid && r.IsRestPaid
}

// PaymentStatus статус оплаты для отображения
func (r *Reservation) PaymentStatus() PaymentStatus {
	switch {
	case r.HasBothPaymentFlags() || r.IsPaid:
		return PaymentFullyPaid
	case r.IsDepositPaid:
		return PaymentDepositPaid
	default:
		return PaymentPending
	}
}

// Clone глубокая копия записи
func (r *Reservation) Clone() *Reservation {
	if r == nil {
		return nil
	}
	c := *r
	if r.ArtistID != nil {
		id := *r.ArtistID
		c.ArtistID = &id
	}
	if r.Notes != nil {
		n := *r.Notes
		c.Notes = &n
	}
	if r.DesignImages != nil {
		c.DesignImages = append([]string(nil), r.DesignImages...)
	}
	return &c
}

// ReservationPatch частичное обновление записи: nil означает "не менять".
// Для ArtistID и Notes отдельные флаги Clear* позволяют сбросить значение в NULL.
type ReservationPatch struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	AppointmentDate *time.Time
	AppointmentTime *types.TimeString
	TotalPrice      *float64
	DepositPaid     *float64
	IsDepositPaid   *bool
	IsRestPaid      *bool
	IsPaid          *bool
	ArtistID        *uuid.UUID
	ClearArtist     bool
	Notes           *string
	ClearNotes      bool
	DesignImages    *[]string
}

// IsEmpty true, если патч ничего не меняет
func (p *ReservationPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Columns изменяемые колонки и их новые значения
func (p *ReservationPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.AppointmentDate != nil {
		cols["appointment_date"] = p.AppointmentDate.Format(DateFormat)
	}
	if p.AppointmentTime != nil {
		cols["appointment_time"] = *p.AppointmentTime
	}
	if p.TotalPrice != nil {
		cols["total_price"] = *p.TotalPrice
	}
	if p.DepositPaid != nil {
		cols["deposit_paid"] = *p.DepositPaid
	}
	if p.IsDepositPaid != nil {
		cols["is_deposit_paid"] = *p.IsDepositPaid
	}
	if p.IsRestPaid != nil {
		cols["is_rest_paid"] = *p.IsRestPaid
	}
	if p.IsPaid != nil {
		cols["is_paid"] = *p.IsPaid
	}
	if p.ClearArtist {
		cols["artist_id"] = nil
	} else if p.ArtistID != nil {
		cols["artist_id"] = *p.ArtistID
	}
	if p.ClearNotes {
		cols["notes"] = nil
	} else if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	if p.DesignImages != nil {
		cols["design_images"] = *p.DesignImages
	}
	return cols
}

// ApplyTo переносит изменения патча в запись
func (p *ReservationPatch) ApplyTo(r *Reservation) {
	if p.FirstName != nil {
		r.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		r.LastName = *p.LastName
	}
	if p.Phone != nil {
		r.Phone = *p.Phone
	}
	if p.AppointmentDate != nil {
		r.AppointmentDate = *p.AppointmentDate
	}
	if p.AppointmentTime != nil {
		r.AppointmentTime = *p.AppointmentTime
	}
	if p.TotalPrice != nil {
		r.TotalPrice = *p.TotalPrice
	}
	if p.DepositPaid != nil {
		r.DepositPaid = *p.DepositPaid
	}
	if p.IsDepositPaid != nil {
		r.IsDepositPaid = *p.IsDepositPaid
	}
	if p.IsRestPaid != nil {
		r.IsRestPaid = *p.IsRestPaid
	}
	if p.IsPaid != nil {
		r.IsPaid = *p.IsPaid
	}
	if p.ClearArtist {
		r.ArtistID = nil
	} else if p.ArtistID != nil {
		id := *p.ArtistID
		r.ArtistID = &id
	}
	if p.ClearNotes {
		r.Notes = nil
	} else if p.Notes != nil {
		n := *p.Notes
		r.Notes = &n
	}
	if p.DesignImages != nil {
		r.DesignImages = append([]string(nil), (*p.DesignImages)...)
	}
}
