package reservations

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
)

// Service единый источник записей и сотрудников в памяти,
// синхронизированный с БД. Создается при старте и передается явно.
//
// Запись в БД выполняется вне блокировки, согласование локального состояния под ней.
// Конкурентные обновления одной записи не проверяются: выигрывает последний.
type Service struct {
	reservationRepo ReservationRepository
	staffRepo       StaffRepository
	txManager       TransactionManager
	logger          Logger

	mu           sync.RWMutex
	loaded       bool
	reservations []*domain.Reservation // новые первыми
	staff        []*domain.Staff       // по алфавиту
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	reservationRepo ReservationRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		staffRepo:       staffRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Load полностью перечитывает записи и сотрудников из БД и заменяет локальное состояние
func (s *Service) Load(ctx context.Context) error {
	s.logger.Info("Load: fetching reservations and staff")

	var (
		reservations []*domain.Reservation
		staff        []*domain.Staff
	)

	// Записи и сотрудники читаются одним снимком
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		reservations, err = s.reservationRepo.List(ctx)
		if err != nil {
			s.logger.Error("Load: failed to fetch reservations: %v", err)
			return fmt.Errorf("%w: Load - reservations: %v", ErrInternal, err)
		}

		staff, err = s.staffRepo.List(ctx)
		if err != nil {
			s.logger.Error("Load: failed to fetch staff: %v", err)
			return fmt.Errorf("%w: Load - staff: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInternal) {
			s.logger.Error("Load: read transaction failed: %v", err)
			return fmt.Errorf("%w: Load - transaction: %v", ErrInternal, err)
		}
		return err
	}

	s.mu.Lock()
	s.reservations = reservations
	s.staff = staff
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("Load: loaded %d reservations, %d staff", len(reservations), len(staff))
	return nil
}

// Close сбрасывает локальное состояние. Следующее обращение снова загрузит данные.
func (s *Service) Close() {
	s.mu.Lock()
	s.reservations = nil
	s.staff = nil
	s.loaded = false
	s.mu.Unlock()

	s.logger.Info("Close: in-memory state dropped")
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded {
		return nil
	}
	return s.Load(ctx)
}

// List возвращает записи из памяти, отфильтрованные поиском и диапазоном дат
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	filter := domain.ReservationFilter{Query: req.Query, From: req.From, To: req.To}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := domain.FilterReservations(s.reservations, filter)
	resp := &models.ReservationListResponse{
		Reservations: make([]models.ReservationResponse, 0, len(matched)),
	}
	for _, r := range matched {
		resp.Reservations = append(resp.Reservations, *models.FromDomainReservation(r, s.artistNameLocked(r.ArtistID)))
	}

	return resp, nil
}

// Reservations копия текущего списка записей (новые первыми)
func (s *Service) Reservations(ctx context.Context) ([]*domain.Reservation, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Reservation, len(s.reservations))
	for i, r := range s.reservations {
		result[i] = r.Clone()
	}
	return result, nil
}

// Get возвращает запись из памяти
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ReservationResponse, error) {
	res, err := s.Reservation(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.FromDomainReservation(res, s.artistNameLocked(res.ArtistID)), nil
}

// Reservation возвращает копию domain модели записи
func (s *Service) Reservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexLocked(id); idx >= 0 {
		return s.reservations[idx].Clone(), nil
	}

	s.logger.Warn("Reservation: id=%s not found", id)
	return nil, ErrReservationNotFound
}

// ListStaff возвращает сотрудников из памяти
func (s *Service) ListStaff(ctx context.Context) (*models.StaffListResponse, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := &models.StaffListResponse{Staff: make([]models.StaffResponse, 0, len(s.staff))}
	for _, member := range s.staff {
		resp.Staff = append(resp.Staff, models.FromDomainStaff(member))
	}
	return resp, nil
}

// StaffName имя сотрудника по ID, если он известен
func (s *Service) StaffName(id *uuid.UUID) *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artistNameLocked(id)
}

// Create проверяет и сохраняет запись, затем добавляет ее в начало локального списка.
// Повторный вызов с тем же телом создаст вторую запись.
func (s *Service) Create(ctx context.Context, req *models.CreateReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Create: creating reservation for %s %s on %s %s", req.FirstName, req.LastName, req.AppointmentDate, req.AppointmentTime)

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	res, err := buildReservation(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if res.ArtistID != nil {
		if err := s.checkArtist(ctx, *res.ArtistID); err != nil {
			s.logger.Warn("Create: artist check failed: %v", err)
			return nil, err
		}
	}

	created, err := s.reservationRepo.Create(ctx, res)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrConstraintViolation) {
			s.logger.Warn("Create: rejected by database constraint: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.mu.Lock()
	// Параллельный Load мог уже подтянуть эту запись из БД
	if s.indexLocked(created.ID) < 0 {
		s.reservations = append([]*domain.Reservation{created}, s.reservations...)
	}
	resp := models.FromDomainReservation(created, s.artistNameLocked(created.ArtistID))
	s.mu.Unlock()

	s.logger.Info("Create: created reservation id=%s number=%d", created.ID, created.Number)
	return resp, nil
}

// Update записывает только переданные поля и сливает их в локальную запись без перечитывания
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Update: updating reservation id=%s", id)

	patch, err := buildPatch(req)
	if err != nil {
		s.logger.Warn("Update: invalid request for id=%s: %v", id, err)
		return nil, err
	}

	current, err := s.Reservation(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := current.Clone()
	patch.ApplyTo(merged)
	if err := validateReservation(merged); err != nil {
		s.logger.Warn("Update: validation failed for id=%s: %v", id, err)
		return nil, err
	}

	if patch.ArtistID != nil {
		if err := s.checkArtist(ctx, *patch.ArtistID); err != nil {
			s.logger.Warn("Update: artist check failed for id=%s: %v", id, err)
			return nil, err
		}
	}

	updatedAt, err := s.reservationRepo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("Update: reservation id=%s no longer exists", id)
			s.removeLocal(id)
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrConstraintViolation):
			s.logger.Warn("Update: rejected by database constraint for id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			s.logger.Error("Update: repository error for id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Запись могла быть удалена параллельно, тогда отдаем результат слияния без сохранения в памяти
	if idx := s.indexLocked(id); idx >= 0 {
		patch.ApplyTo(s.reservations[idx])
		s.reservations[idx].UpdatedAt = updatedAt
		merged = s.reservations[idx].Clone()
	} else {
		merged.UpdatedAt = updatedAt
	}

	s.logger.Info("Update: updated reservation id=%s", id)
	return models.FromDomainReservation(merged, s.artistNameLocked(merged.ArtistID)), nil
}

// Delete удаляет запись в БД, затем из памяти. Операция необратима.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: deleting reservation id=%s", id)

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%s not found", id)
			s.removeLocal(id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.removeLocal(id)

	s.logger.Info("Delete: deleted reservation id=%s", id)
	return nil
}

func (s *Service) removeLocal(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(id); idx >= 0 {
		s.reservations = append(s.reservations[:idx:idx], s.reservations[idx+1:]...)
	}
}

func (s *Service) indexLocked(id uuid.UUID) int {
	for i, r := range s.reservations {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) artistNameLocked(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	for _, member := range s.staff {
		if member.ID == *id {
			name := member.FullName
			return &name
		}
	}
	return nil
}
