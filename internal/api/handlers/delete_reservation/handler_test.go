package delete_reservation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TattooStudio/internal/api/middleware"
	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations"
	"github.com/m04kA/SMC-TattooStudio/pkg/logger"
)

type fakeService struct{ err error }

func (f fakeService) Delete(ctx context.Context, id uuid.UUID) error { return f.err }

type recordingLogger struct{ infos []string }

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}
func (l *recordingLogger) Warn(format string, v ...interface{})  {}
func (l *recordingLogger) Error(format string, v ...interface{}) {}

var staffID = uuid.New()

func remove(id string, principal *domain.Principal) *http.Request {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/"+id, nil), map[string]string{"id": id})
	if principal == nil {
		return req
	}
	return req.WithContext(middleware.WithPrincipal(req.Context(), principal))
}

func TestHandle(t *testing.T) {
	cases := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{"deleted", uuid.NewString(), nil, http.StatusNoContent},
		{"missing", uuid.NewString(), reservations.ErrReservationNotFound, http.StatusNotFound},
		{"failure", uuid.NewString(), errors.New("boom"), http.StatusInternalServerError},
		{"bad id", "7", nil, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(fakeService{err: tc.err}, logger.NewNop())
			req := remove(tc.id, &domain.Principal{StaffID: staffID, Role: domain.RoleAdmin})
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandle_LogsAuthor(t *testing.T) {
	log := &recordingLogger{}
	h := NewHandler(fakeService{}, log)
	rec := httptest.NewRecorder()

	h.Handle(rec, remove(uuid.NewString(), &domain.Principal{StaffID: staffID, Role: domain.RoleAdmin}))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, log.infos, 1)
	assert.Contains(t, log.infos[0], "staff_id="+staffID.String())
}

func TestHandle_MissingStaff(t *testing.T) {
	h := NewHandler(fakeService{}, logger.NewNop())
	rec := httptest.NewRecorder()

	h.Handle(rec, remove(uuid.NewString(), nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
