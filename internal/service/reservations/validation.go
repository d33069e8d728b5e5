package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	staffRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/staff"
	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
	"github.com/m04kA/SMC-TattooStudio/pkg/types"
)

// buildReservation проверяет запрос на создание и собирает domain модель
func buildReservation(req *models.CreateReservationRequest) (*domain.Reservation, error) {
	firstName, err := requiredText("firstName", req.FirstName, domain.MaxNameLength)
	if err != nil {
		return nil, err
	}
	lastName, err := requiredText("lastName", req.LastName, domain.MaxNameLength)
	if err != nil {
		return nil, err
	}
	phone, err := requiredText("phone", req.Phone, domain.MaxPhoneLength)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	at, err := parseTime(req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		FirstName:       firstName,
		LastName:        lastName,
		Phone:           phone,
		AppointmentDate: date,
		AppointmentTime: at,
		TotalPrice:      req.TotalPrice,
		DepositPaid:     req.DepositPaid,
		IsDepositPaid:   req.IsDepositPaid,
		IsRestPaid:      req.IsRestPaid,
		IsPaid:          req.IsPaid,
		DesignImages:    req.DesignImages,
	}

	if req.ArtistID != nil && strings.TrimSpace(*req.ArtistID) != "" {
		id, err := parseArtistID(*req.ArtistID)
		if err != nil {
			return nil, err
		}
		res.ArtistID = &id
	}

	if req.Notes != nil {
		if err := validateNotes(*req.Notes); err != nil {
			return nil, err
		}
		notes := *req.Notes
		res.Notes = &notes
	}

	if err := validateReservation(res); err != nil {
		return nil, err
	}

	return res, nil
}

// buildPatch проверяет поля запроса на обновление и собирает патч
func buildPatch(req *models.UpdateReservationRequest) (*domain.ReservationPatch, error) {
	patch := &domain.ReservationPatch{
		TotalPrice:    req.TotalPrice,
		DepositPaid:   req.DepositPaid,
		IsDepositPaid: req.IsDepositPaid,
		IsRestPaid:    req.IsRestPaid,
		IsPaid:        req.IsPaid,
		ClearArtist:   req.ClearArtist,
		ClearNotes:    req.ClearNotes,
		DesignImages:  req.DesignImages,
	}

	if req.FirstName != nil {
		v, err := requiredText("firstName", *req.FirstName, domain.MaxNameLength)
		if err != nil {
			return nil, err
		}
		patch.FirstName = &v
	}
	if req.LastName != nil {
		v, err := requiredText("lastName", *req.LastName, domain.MaxNameLength)
		if err != nil {
			return nil, err
		}
		patch.LastName = &v
	}
	if req.Phone != nil {
		v, err := requiredText("phone", *req.Phone, domain.MaxPhoneLength)
		if err != nil {
			return nil, err
		}
		patch.Phone = &v
	}
	if req.AppointmentDate != nil {
		d, err := parseDate(*req.AppointmentDate)
		if err != nil {
			return nil, err
		}
		patch.AppointmentDate = &d
	}
	if req.AppointmentTime != nil {
		t, err := parseTime(*req.AppointmentTime)
		if err != nil {
			return nil, err
		}
		patch.AppointmentTime = &t
	}
	if req.ArtistID != nil && !req.ClearArtist {
		id, err := parseArtistID(*req.ArtistID)
		if err != nil {
			return nil, err
		}
		patch.ArtistID = &id
	}
	if req.Notes != nil && !req.ClearNotes {
		if err := validateNotes(*req.Notes); err != nil {
			return nil, err
		}
		patch.Notes = req.Notes
	}

	if patch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	return patch, nil
}

// validateReservation проверки, которые зависят от нескольких полей сразу
func validateReservation(r *domain.Reservation) error {
	if r.TotalPrice < 0 {
		return fmt.Errorf("%w: totalPrice must not be negative", ErrInvalidInput)
	}
	if r.DepositPaid < 0 {
		return fmt.Errorf("%w: depositPaid must not be negative", ErrInvalidInput)
	}
	if r.DepositPaid > r.TotalPrice {
		return fmt.Errorf("%w: deposit %.2f > total %.2f", ErrDepositExceedsTotal, r.DepositPaid, r.TotalPrice)
	}
	if len(r.DesignImages) > domain.MaxDesignImages {
		return fmt.Errorf("%w: too many design images (max %d)", ErrInvalidInput, domain.MaxDesignImages)
	}
	for _, img := range r.DesignImages {
		if strings.TrimSpace(img) == "" {
			return fmt.Errorf("%w: design image reference must not be empty", ErrInvalidInput)
		}
	}
	return nil
}

// checkArtist проверяет, что ссылка указывает на сотрудника с ролью мастера
func (s *Service) checkArtist(ctx context.Context, id uuid.UUID) error {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return fmt.Errorf("%w: staff %s not found", ErrInvalidArtist, id)
		}
		return fmt.Errorf("%w: checkArtist - repository error: %v", ErrInternal, err)
	}
	if !member.IsArtist() {
		return fmt.Errorf("%w: staff %s has role %s", ErrInvalidArtist, id, member.Role)
	}
	return nil
}

func requiredText(field, value string, maxLen int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if len([]rune(v)) > maxLen {
		return "", fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidInput, field, maxLen)
	}
	return v, nil
}

func validateNotes(notes string) error {
	if len([]rune(notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: appointmentDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	return d, nil
}

func parseTime(s string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		return types.TimeString{}, fmt.Errorf("%w: appointmentTime must be HH:MM", ErrInvalidInput)
	}
	return t, nil
}

func parseArtistID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: artistId is not a valid UUID", ErrInvalidInput)
	}
	return id, nil
}
