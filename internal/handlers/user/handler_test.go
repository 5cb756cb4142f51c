package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shareit/infras/otel/mocks"
	"shareit/internal/domains/user/model/dto"
	"shareit/internal/handlers/user"
	"shareit/permissions"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	id      int64
	created dto.CreateUserRequest
	patch   dto.UpdateUserRequest
	err     error
}

func (f *fakeUsers) Create(_ context.Context, req dto.CreateUserRequest) (dto.UserResponse, error) {
	f.created = req

	return dto.UserResponse{ID: 1, Name: req.Name, Email: req.Email}, f.err
}

func (f *fakeUsers) GetAll(context.Context) ([]dto.UserResponse, error) {
	return []dto.UserResponse{{ID: 1, Name: "Ann", Email: "ann@mail.com"}}, f.err
}

func (f *fakeUsers) Get(_ context.Context, id int64) (dto.UserResponse, error) {
	f.id = id

	return dto.UserResponse{ID: id, Name: "Ann", Email: "ann@mail.com"}, f.err
}

func (f *fakeUsers) Update(_ context.Context, req dto.UpdateUserRequest, id int64) (dto.UserResponse, error) {
	f.patch, f.id = req, id

	return dto.UserResponse{ID: id, Name: "Anna", Email: "ann@mail.com"}, f.err
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	f.id = id

	return f.err
}

func serve(svc *fakeUsers, method, target, body string, withCaller bool) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Use(middleware.NewIdentityMiddleware(mocks.NewOtel(), permissions.Get()).Identify)

	handler := user.New(svc, mocks.NewOtel())
	handler.Router(router)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if withCaller {
		req.Header.Set(constant.RequestHeaderSharerUserID, "1")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CreateUser(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "created without caller header", body: `{"name":"Ann","email":"ann@mail.com"}`, wantCode: http.StatusOK, wantBody: `{"id":1,"name":"Ann","email":"ann@mail.com"}`},
		{name: "invalid email", body: `{"name":"Ann","email":"ann-mail.com"}`, wantCode: http.StatusBadRequest, wantBody: `{"error":"email must be a valid email address"}`},
		{name: "missing name", body: `{"email":"ann@mail.com"}`, wantCode: http.StatusBadRequest, wantBody: `{"error":"name is required"}`},
		{name: "duplicate email", body: `{"name":"Ann","email":"ann@mail.com"}`, err: failure.Conflict("email already exists"), wantCode: http.StatusConflict, wantBody: `{"error":"email already exists"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUsers{err: tt.err}, http.MethodPost, "/users", tt.body, false)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_GetUsers(t *testing.T) {
	t.Run("listed", func(t *testing.T) {
		rec := serve(&fakeUsers{}, http.MethodGet, "/users", "", true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":1,"name":"Ann","email":"ann@mail.com"}]`, rec.Body.String())
	})

	t.Run("caller required", func(t *testing.T) {
		rec := serve(&fakeUsers{}, http.MethodGet, "/users", "", false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeUsers{}

		rec := serve(svc, http.MethodGet, "/users/5", "", true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(5), svc.id)
	})

	t.Run("not found", func(t *testing.T) {
		rec := serve(&fakeUsers{err: failure.NotFound("user not found")}, http.MethodGet, "/users/5", "", true)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"user not found"}`, rec.Body.String())
	})

	t.Run("zero id", func(t *testing.T) {
		rec := serve(&fakeUsers{}, http.MethodGet, "/users/0", "", true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_UpdateUser(t *testing.T) {
	t.Run("name only", func(t *testing.T) {
		svc := &fakeUsers{}

		rec := serve(svc, http.MethodPatch, "/users/1", `{"name":"Anna"}`, true)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.patch.Name)
		assert.Equal(t, "Anna", *svc.patch.Name)
		assert.Nil(t, svc.patch.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := serve(&fakeUsers{}, http.MethodPatch, "/users/1", `{"email":"nope"}`, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_DeleteUser(t *testing.T) {
	svc := &fakeUsers{}

	rec := serve(svc, http.MethodDelete, "/users/3", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.id)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, rec.Body.String())
}
