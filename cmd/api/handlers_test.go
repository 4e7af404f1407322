package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheck(t *testing.T) {
	app := NewTestApplication(nil, t)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/healthcheck", nil)
	app.healthcheck(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
		Version     string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "available", body.Status)
	assert.Equal(t, "production", body.Environment)
	assert.Equal(t, version, body.Version)
}

func TestGetMoviesRejectsUnknownSort(t *testing.T) {
	app := NewTestApplication(nil, t)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/movies?sort=qr_token", nil)
	app.getMovies(recorder, request)

	// Bad query input must never reach the storage layer, where an unknown
	// sort column panics.
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}
