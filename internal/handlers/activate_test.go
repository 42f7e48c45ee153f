package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/testutils"
)

func newActivateRequest(link string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/register/activate-user/"+link, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("link", link)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestActivateHandlerSuccess(t *testing.T) {
	us := &testutils.MockUserStorage{}
	ts := &testutils.MockTokenStore{}
	link := uuid.New()

	us.On("GetVerification", mock.Anything, link).Return(int64(1), nil)
	us.On("SetUserActivity", mock.Anything, int64(1), true).Return(nil)
	ts.On("Save", mock.Anything, mock.AnythingOfType("string"), int64(1), mock.AnythingOfType("time.Duration")).Return(nil)

	handler := NewActivateHandler(us, ts, "supersecretkey")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newActivateRequest(link.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Logged in successfully", resp["message"])
	assert.NotEmpty(t, resp["token"])
	us.AssertExpectations(t)
}

func TestActivateHandlerUnknownLink(t *testing.T) {
	us := &testutils.MockUserStorage{}
	ts := &testutils.MockTokenStore{}
	link := uuid.New()

	us.On("GetVerification", mock.Anything, link).Return(int64(0), models.ErrVerificationNotFound)

	handler := NewActivateHandler(us, ts, "supersecretkey")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newActivateRequest(link.String()))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"It seems you have proceeded the wrong link :("}`, w.Body.String())
	us.AssertNotCalled(t, "SetUserActivity", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivateHandlerMalformedLink(t *testing.T) {
	us := &testutils.MockUserStorage{}
	ts := &testutils.MockTokenStore{}

	handler := NewActivateHandler(us, ts, "supersecretkey")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newActivateRequest("not-a-uuid"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	us.AssertNotCalled(t, "GetVerification", mock.Anything, mock.Anything)
}
