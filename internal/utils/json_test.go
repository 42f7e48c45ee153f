package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteJSONError(w, http.StatusNotFound, "The user was not found")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"The user was not found"}`, w.Body.String())
}

func TestWriteJSONMessage(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteJSONMessage(w, http.StatusCreated, "The payment was completed successfully, the bill was created")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"The payment was completed successfully, the bill was created"}`, w.Body.String())
}
