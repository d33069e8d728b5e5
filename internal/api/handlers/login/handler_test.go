package login

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TattooStudio/internal/service/auth"
	"github.com/m04kA/SMC-TattooStudio/internal/service/auth/models"
	"github.com/m04kA/SMC-TattooStudio/pkg/logger"
)

type fakeAuth struct{ err error }

func (f fakeAuth) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{Token: "jwt", StaffID: "s-1", Role: "admin"}, nil
}

func TestHandle(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"ok", `{"email":"a@b.c","password":"secret123"}`, nil, http.StatusOK},
		{"bad credentials", `{"email":"a@b.c","password":"nope"}`, auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"empty fields", `{"email":""}`, auth.ErrInvalidInput, http.StatusBadRequest},
		{"broken body", `{"email"`, nil, http.StatusBadRequest},
		{"failure", `{"email":"a@b.c","password":"x"}`, errors.New("db"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(fakeAuth{err: tc.err}, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tc.body)))

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"token":"jwt"`)
			}
		})
	}
}
