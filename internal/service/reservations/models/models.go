package models

import (
	"time"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

// Request модели

// CreateReservationRequest запрос на создание записи
type CreateReservationRequest struct {
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Phone           string   `json:"phone"`
	AppointmentDate string   `json:"appointmentDate"` // "2026-03-14"
	AppointmentTime string   `json:"appointmentTime"` // "14:30"
	TotalPrice      float64  `json:"totalPrice"`
	DepositPaid     float64  `json:"depositPaid"`
	IsDepositPaid   bool     `json:"isDepositPaid"`
	IsRestPaid      bool     `json:"isRestPaid"`
	IsPaid          bool     `json:"isPaid"`
	ArtistID        *string  `json:"artistId,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	DesignImages    []string `json:"designImages,omitempty"`
}

// UpdateReservationRequest частичное обновление: nil поля не меняются
type UpdateReservationRequest struct {
	FirstName       *string   `json:"firstName,omitempty"`
	LastName        *string   `json:"lastName,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	AppointmentDate *string   `json:"appointmentDate,omitempty"`
	AppointmentTime *string   `json:"appointmentTime,omitempty"`
	TotalPrice      *float64  `json:"totalPrice,omitempty"`
	DepositPaid     *float64  `json:"depositPaid,omitempty"`
	IsDepositPaid   *bool     `json:"isDepositPaid,omitempty"`
	IsRestPaid      *bool     `json:"isRestPaid,omitempty"`
	IsPaid          *bool     `json:"isPaid,omitempty"`
	ArtistID        *string   `json:"artistId,omitempty"`
	ClearArtist     bool      `json:"clearArtist,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	ClearNotes      bool      `json:"clearNotes,omitempty"`
	DesignImages    *[]string `json:"designImages,omitempty"`
}

// ListReservationsRequest фильтр списка записей
type ListReservationsRequest struct {
	Query string
	From  *time.Time
	To    *time.Time
}

// Response модели

// ReservationResponse ответ с данными записи
type ReservationResponse struct {
	ID              string   `json:"id"`
	Number          int64    `json:"number"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Phone           string   `json:"phone"`
	AppointmentDate string   `json:"appointmentDate"`
	AppointmentTime string   `json:"appointmentTime"`
	TotalPrice      float64  `json:"totalPrice"`
	DepositPaid     float64  `json:"depositPaid"`
	Remaining       float64  `json:"remaining"`
	IsDepositPaid   bool     `json:"isDepositPaid"`
	IsRestPaid      bool     `json:"isRestPaid"`
	IsPaid          bool     `json:"isPaid"`
	PaymentStatus   string   `json:"paymentStatus"`
	ArtistID        *string  `json:"artistId,omitempty"`
	ArtistName      *string  `json:"artistName,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	DesignImages    []string `json:"designImages"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком записей
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// StaffResponse сотрудник без секретных полей
type StaffResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StaffListResponse ответ со списком сотрудников
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO.
// artistName подставляется вызывающим, если мастер известен.
func FromDomainReservation(r *domain.Reservation, artistName *string) *ReservationResponse {
	if r == nil {
		return nil
	}

	images := r.DesignImages
	if images == nil {
		images = []string{}
	}

	resp := &ReservationResponse{
		ID:              r.ID.String(),
		Number:          r.Number,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Phone:           r.Phone,
		AppointmentDate: r.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: r.AppointmentTime.String(),
		TotalPrice:      r.TotalPrice,
		DepositPaid:     r.DepositPaid,
		Remaining:       r.Remaining(),
		IsDepositPaid:   r.IsDepositPaid,
		IsRestPaid:      r.IsRestPaid,
		IsPaid:          r.IsPaid,
		PaymentStatus:   string(r.PaymentStatus()),
		ArtistName:      artistName,
		Notes:           r.Notes,
		DesignImages:    images,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.ArtistID != nil {
		id := r.ArtistID.String()
		resp.ArtistID = &id
	}

	return resp
}

// FromDomainStaff конвертирует сотрудника в DTO
func FromDomainStaff(s *domain.Staff) StaffResponse {
	permissions := s.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return StaffResponse{
		ID:          s.ID.String(),
		Email:       s.Email,
		FullName:    s.FullName,
		Role:        string(s.Role),
		Permissions: permissions,
		CreatedAt:   s.CreatedAt,
	}
}
