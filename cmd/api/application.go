package main

import (
	"log/slog"
	"reflect"
	"time"

	"cinehall/proj/internal/config"
	libvalidator "cinehall/proj/internal/lib/validator"
	"cinehall/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	services     *services.Services
	validator    *govalidator.Validate
	queryDecoder *schema.Decoder
}

func NewApplication(cfg *config.Config, log *slog.Logger, services *services.Services) *Application {
	validator := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := validator.RegisterValidation("reservationstatus", libvalidator.ValidateReservationStatus); err != nil {
		panic(err)
	}
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	queryDecoder.RegisterConverter(time.Time{}, func(value string) reflect.Value {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(t)
	})
	app := &Application{
		cfg:          cfg,
		log:          log,
		validator:    validator,
		queryDecoder: queryDecoder,
		services:     services,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
	return app
}
