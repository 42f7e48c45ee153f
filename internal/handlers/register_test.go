package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/testutils"
)

func TestRegisterHandlerServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*testutils.MockUserStorage)
		expectedStatus int
		checkBody      func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "успешная регистрация",
			body: `{"username":"testuser","password":"securepass"}`,
			setupMocks: func(us *testutils.MockUserStorage) {
				us.On("CreateUser", mock.Anything, "testuser", mock.AnythingOfType("string")).Return(int64(1), nil)
				us.On("CreateVerification", mock.Anything, mock.AnythingOfType("uuid.UUID"), int64(1)).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Contains(t, resp["activation_link"], "http://127.0.0.1:8080/api/register/activate-user/")
			},
		},
		{
			name:           "пустой username",
			body:           `{"username":"","password":"securepass"}`,
			setupMocks:     func(us *testutils.MockUserStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "короткий пароль",
			body:           `{"username":"testuser","password":"short"}`,
			setupMocks:     func(us *testutils.MockUserStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "имя пользователя занято",
			body: `{"username":"testuser","password":"securepass"}`,
			setupMocks: func(us *testutils.MockUserStorage) {
				us.On("CreateUser", mock.Anything, "testuser", mock.AnythingOfType("string")).Return(int64(0), models.ErrUsernameTaken)
			},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"User with this username already exists"}`, w.Body.String())
			},
		},
		{
			name: "внутренняя ошибка",
			body: `{"username":"testuser","password":"securepass"}`,
			setupMocks: func(us *testutils.MockUserStorage) {
				us.On("CreateUser", mock.Anything, "testuser", mock.AnythingOfType("string")).Return(int64(0), errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "неверный формат запроса",
			body:           `invalid json`,
			setupMocks:     func(us *testutils.MockUserStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := &testutils.MockUserStorage{}
			tt.setupMocks(us)

			handler := NewRegisterHandler(us, "http://127.0.0.1:8080")

			req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkBody != nil {
				tt.checkBody(t, w)
			}
		})
	}
}
