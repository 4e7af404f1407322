package main

import (
	"net/http"

	"github.com/go-chi/render"
)

func (app *Application) healthcheck(w http.ResponseWriter, r *http.Request) {
	environment := "production"
	if app.cfg.Debug {
		environment = "development"
	}
	render.JSON(w, r, struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
		Version     string `json:"version"`
	}{
		Status:      "available",
		Environment: environment,
		Version:     version,
	})
}
