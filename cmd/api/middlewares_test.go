package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinehall/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func nextHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithActor(actor *models.Profile) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	return request.WithContext(context.WithValue(request.Context(), CtxKeyActor, actor))
}

func TestRequireAuthenticated(t *testing.T) {
	app := NewTestApplication(nil, t)
	t.Run("authenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestWithActor(&models.Profile{ID: 1, UserID: 7, Role: "user"})
		app.requireAuthenticated(nextHandler()).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestWithActor(nil)
		app.requireAuthenticated(nextHandler()).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	app := NewTestApplication(nil, t)
	t.Run("admin", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestWithActor(&models.Profile{ID: 1, UserID: 7, Role: models.RoleAdmin})
		app.requireAdmin(nextHandler()).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("regular user", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestWithActor(&models.Profile{ID: 1, UserID: 7, Role: "user"})
		app.requireAdmin(nextHandler()).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestWithActor(nil)
		app.requireAdmin(nextHandler()).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRecoverer(t *testing.T) {
	app := NewTestApplication(nil, t)
	t.Run("error panic", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(errors.New("boom"))
		})
		app.Recoverer(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
	t.Run("non-error panic", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})
		app.Recoverer(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	app := NewTestApplication(nil, t)
	t.Run("not a bearer token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Basic abc123")
		app.Authenticate(nextHandler()).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("garbage token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer not-a-jwt")
		app.Authenticate(nextHandler()).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
	t.Run("no header proceeds as anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		seen := &models.Profile{ID: 99}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = actorFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
		app.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Nil(t, seen)
	})
}
