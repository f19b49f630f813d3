package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"realagent/internal/errors"
	"realagent/internal/model"
	"realagent/internal/service"
)

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("created user carries no password field", func(t *testing.T) {
		created := &model.User{
			UserID:    1,
			Name:      "Jane",
			Email:     "jane@x.com",
			Role:      model.RoleAgent,
			CreatedAt: time.Now(),
			IsActive:  true,
		}
		mockSvc := new(MockUserService)
		mockSvc.On("CreateUser", mock.Anything, service.CreateUserInput{
			Name:     "Jane",
			Email:    "jane@x.com",
			Role:     model.RoleAgent,
			Password: "secret1",
		}).Return(created, nil)

		e := newEcho()
		body := `{"name":"Jane","email":"jane@x.com","role":"Agent","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := NewUserHandler(mockSvc)
		assert.NoError(t, h.CreateUser(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
		assert.Contains(t, rec.Body.String(), `"email":"jane@x.com"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("all violations are reported together", func(t *testing.T) {
		mockSvc := new(MockUserService)

		e := newEcho()
		body := `{"name":"J","email":"not-an-email","role":"Coach"}`
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := NewUserHandler(mockSvc)
		assert.NoError(t, h.CreateUser(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp errors.ValidationErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_ERROR", resp.Code)
		assert.Len(t, resp.Fields, 4) // name, email, role, password all violated
		mockSvc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email maps to 409", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("CreateUser", mock.Anything, mock.Anything).Return(nil, errors.ErrDuplicateEmail)

		e := newEcho()
		body := `{"name":"Jane","email":"taken@x.com","role":"Agent","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := NewUserHandler(mockSvc)
		assert.NoError(t, h.CreateUser(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "DUPLICATE_EMAIL")
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Run("unknown id maps to 404", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("GetUser", mock.Anything, uint(42)).Return(nil, errors.ErrUserNotFound)

		e := newEcho()
		req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/users/:id")
		c.SetParamNames("id")
		c.SetParamValues("42")

		h := NewUserHandler(mockSvc)
		assert.NoError(t, h.GetUser(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "USER_NOT_FOUND")
	})
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("offset and limit are passed through", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("ListUsers", mock.Anything, 10, 5).Return([]model.User{}, nil)

		e := newEcho()
		req := httptest.NewRequest(http.MethodGet, "/users?offset=10&limit=5", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := NewUserHandler(mockSvc)
		assert.NoError(t, h.ListUsers(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing query params default to zero", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("ListUsers", mock.Anything, 0, 0).Return([]model.User{}, nil)

		e := newEcho()
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := NewUserHandler(mockSvc)
		assert.NoError(t, h.ListUsers(c))
		mockSvc.AssertExpectations(t)
	})
}

func TestUserHandler_ListUsersByRole(t *testing.T) {
	t.Run("invalid role maps to 422", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("ListUsersByRole", mock.Anything, "Coach").Return(nil, errors.ErrInvalidRole)

		e := newEcho()
		req := httptest.NewRequest(http.MethodGet, "/users/role/Coach", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/users/role/:role")
		c.SetParamNames("role")
		c.SetParamValues("Coach")

		h := NewUserHandler(mockSvc)
		assert.NoError(t, h.ListUsersByRole(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_ROLE")
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("successful delete returns a message body", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("DeleteUser", mock.Anything, uint(5)).Return(nil)

		e := newEcho()
		req := httptest.NewRequest(http.MethodDelete, "/users/5", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/users/:id")
		c.SetParamNames("id")
		c.SetParamValues("5")

		h := NewUserHandler(mockSvc)
		assert.NoError(t, h.DeleteUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "User deleted successfully")
	})

	t.Run("second delete reports 404", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("DeleteUser", mock.Anything, uint(5)).Return(errors.ErrUserNotFound)

		e := newEcho()
		req := httptest.NewRequest(http.MethodDelete, "/users/5", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/users/:id")
		c.SetParamNames("id")
		c.SetParamValues("5")

		h := NewUserHandler(mockSvc)
		assert.NoError(t, h.DeleteUser(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
