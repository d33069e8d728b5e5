package domain

import (
	"time"

	"github.com/google/uuid"
)

// StaffRole роль сотрудника студии
type StaffRole string

const (
	RoleAdmin     StaffRole = "admin"
	RoleManager   StaffRole = "manager"
	RoleArtist    StaffRole = "artist"
	RoleReception StaffRole = "reception"
)

// Permission именованная возможность сотрудника
type Permission string

const (
	PermissionReservations Permission = "reservations"
	PermissionStaff        Permission = "staff"
	PermissionEconomics    Permission = "economics"
	PermissionEmails       Permission = "emails"
)

// Staff сотрудник студии
type Staff struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	Role         StaffRole
	Permissions  []string
	PasswordHash string
	CreatedAt    time.Time
}

// IsValid проверяет, что роль известна
func (r StaffRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleArtist, RoleReception:
		return true
	}
	return false
}

// HasPermission единственная точка проверки прав.
// Администратор обладает всеми правами независимо от явного списка.
func HasPermission(role StaffRole, permissions []string, p Permission) bool {
	if role == RoleAdmin {
		return true
	}
	for _, granted := range permissions {
		if Permission(granted) == p {
			return true
		}
	}
	return false
}

// Can проверка прав конкретного сотрудника
func (s *Staff) Can(p Permission) bool {
	return HasPermission(s.Role, s.Permissions, p)
}

// IsArtist true, если сотрудника можно назначать на запись
func (s *Staff) IsArtist() bool {
	return s.Role == RoleArtist
}

// Principal аутентифицированный сотрудник, извлеченный из токена
type Principal struct {
	StaffID     uuid.UUID
	Role        StaffRole
	Permissions []string
}

// Can проверка прав аутентифицированного сотрудника
func (p *Principal) Can(perm Permission) bool {
	return HasPermission(p.Role, p.Permissions, perm)
}
