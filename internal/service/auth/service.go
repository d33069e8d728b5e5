package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	staffRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/staff"
	"github.com/m04kA/SMC-TattooStudio/internal/service/auth/models"
)

// Claims полезная нагрузка токена сотрудника
type Claims struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Service вход сотрудников и проверка HS256 токенов
type Service struct {
	staffRepo StaffRepository
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
	logger    Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(staffRepo StaffRepository, secret string, ttl time.Duration, logger Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		secret:    []byte(secret),
		ttl:       ttl,
		now:       time.Now,
		logger:    logger,
	}
}

// Login проверяет пароль и выдает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	s.logger.Info("Login: attempt for email=%s", email)

	member, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if member.PasswordHash == "" || !checkPassword(member.PasswordHash, req.Password) {
		s.logger.Warn("Login: wrong password for staff id=%s", member.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.Issue(member)
	if err != nil {
		s.logger.Error("Login: failed to sign token for staff id=%s: %v", member.ID, err)
		return nil, err
	}

	permissions := member.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	s.logger.Info("Login: staff id=%s role=%s logged in", member.ID, member.Role)
	return &models.LoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		StaffID:     member.ID.String(),
		FullName:    member.FullName,
		Role:        string(member.Role),
		Permissions: permissions,
	}, nil
}

// Issue подписывает токен для сотрудника
func (s *Service) Issue(member *domain.Staff) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		Role:        string(member.Role),
		Permissions: member.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   member.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: Issue - sign token: %v", ErrInternal, err)
	}
	return signed, expiresAt, nil
}

// ParseToken проверяет подпись и срок действия токена
func (s *Service) ParseToken(raw string) (*domain.Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	staffID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a staff id", ErrInvalidToken)
	}

	role := domain.StaffRole(claims.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return &domain.Principal{
		StaffID:     staffID,
		Role:        role,
		Permissions: claims.Permissions,
	}, nil
}
