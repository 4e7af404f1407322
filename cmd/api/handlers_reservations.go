package main

import (
	"errors"
	"net/http"
	"strconv"

	"cinehall/proj/internal/domain/fields"
	"cinehall/proj/internal/domain/filters"
	libvalidator "cinehall/proj/internal/lib/validator"
	"cinehall/proj/internal/services/reservations"
)

var reservationSortSafelist = []string{"id", "reserved_at", "status"}

type createReservationInput struct {
	ScreeningID int64   `json:"screening_id" validate:"required,gt=0"`
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
	SeatLabel   *string `json:"seat_label" validate:"omitempty,max=10"`
}

func (app *Application) createReservation(w http.ResponseWriter, r *http.Request) {
	var input createReservationInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := libvalidator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	actor := actorFromContext(r.Context())
	reservation, err := app.services.Reservations.Create(r.Context(), actor, reservations.CreateReservationParams{
		ScreeningID: input.ScreeningID,
		UserID:      input.UserID,
		SeatLabel:   input.SeatLabel,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrDuplicateReservation):
			app.Http.Conflict(w, r, err.Error())
		case errors.Is(err, reservations.ErrScreeningNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, reservations.ErrAccessDenied):
			app.Http.Forbidden(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"reservation": reservation}, "Reservation successfully created")
}

func (app *Application) getReservation(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	actor := actorFromContext(r.Context())
	reservation, err := app.services.Reservations.Get(r.Context(), actor, id)
	if err != nil {
		app.reservationError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reservation": reservation}, "")
}

type listReservationsInput struct {
	ScreeningID int64  `schema:"screening_id" validate:"omitempty,gt=0"`
	UserID      int64  `schema:"user_id" validate:"omitempty,gt=0"`
	Status      string `schema:"status" validate:"omitempty,reservationstatus"`
	filters.Filters
}

func (app *Application) getReservations(w http.ResponseWriter, r *http.Request) {
	var input listReservationsInput
	if err := app.readQuery(r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := libvalidator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	if input.Sort == "" {
		input.Sort = "-reserved_at"
	}
	input.SortSafelist = reservationSortSafelist
	if !input.SortIsSafe() {
		app.Http.UnprocessableEntity(w, r, map[string]string{"sort": "unknown sort value"})
		return
	}
	actor := actorFromContext(r.Context())
	reservationList, total, err := app.services.Reservations.List(
		r.Context(),
		actor,
		input.ScreeningID,
		input.UserID,
		fields.ReservationStatus(input.Status),
		input.Filters,
	)
	if err != nil {
		app.reservationError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reservations": reservationList, "total_records": total}, "")
}

type updateReservationInput struct {
	Status    *string `json:"status" validate:"omitempty,reservationstatus"`
	SeatLabel *string `json:"seat_label" validate:"omitempty,max=10"`
}

func (app *Application) updateReservation(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	var input updateReservationInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := libvalidator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	params := reservations.UpdateReservationParams{SeatLabel: input.SeatLabel}
	if input.Status != nil {
		status := fields.ReservationStatus(*input.Status)
		params.Status = &status
	}
	actor := actorFromContext(r.Context())
	reservation, err := app.services.Reservations.Update(r.Context(), actor, id, params)
	if err != nil {
		app.reservationError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reservation": reservation}, "Reservation successfully updated")
}

func (app *Application) deleteReservation(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	actor := actorFromContext(r.Context())
	if err := app.services.Reservations.Delete(r.Context(), actor, id); err != nil {
		app.reservationError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Reservation successfully deleted")
}

func (app *Application) getReservationQRCode(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	actor := actorFromContext(r.Context())
	png, err := app.services.Reservations.QRCodePNG(r.Context(), actor, id)
	if err != nil {
		app.reservationError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}

func (app *Application) reservationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reservations.ErrReservationNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, reservations.ErrAccessDenied):
		app.Http.Forbidden(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
