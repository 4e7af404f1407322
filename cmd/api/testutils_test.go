package main

import (
	"io"
	"log/slog"
	"testing"

	"cinehall/proj/internal/config"
	"cinehall/proj/internal/services"
)

func NewTestApplication(cfg *config.Config, t *testing.T) *Application {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{AppSecret: "test-secret"}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewApplication(cfg, log, &services.Services{})
}
