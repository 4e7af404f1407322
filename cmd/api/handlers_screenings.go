package main

import (
	"errors"
	"net/http"
	"time"

	"cinehall/proj/internal/domain/filters"
	libvalidator "cinehall/proj/internal/lib/validator"
	"cinehall/proj/internal/services/screenings"
	"cinehall/proj/internal/services/stats"
)

var screeningSortSafelist = []string{"id", "starts_at", "auditorium", "capacity"}

type createScreeningInput struct {
	MovieID    int64      `json:"movie_id" validate:"required,gt=0"`
	StartsAt   time.Time  `json:"starts_at" validate:"required"`
	EndsAt     *time.Time `json:"ends_at" validate:"omitempty"`
	Auditorium string     `json:"auditorium" validate:"required,max=100"`
	Capacity   int32      `json:"capacity" validate:"required,gt=0"`
	Notes      *string    `json:"notes" validate:"omitempty,max=2000"`
}

func (app *Application) createScreening(w http.ResponseWriter, r *http.Request) {
	var input createScreeningInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := libvalidator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	screening, err := app.services.Screenings.Create(r.Context(), screenings.CreateScreeningParams{
		MovieID:    input.MovieID,
		StartsAt:   input.StartsAt,
		EndsAt:     input.EndsAt,
		Auditorium: input.Auditorium,
		Capacity:   input.Capacity,
		Notes:      input.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, screenings.ErrInvalidTimeRange):
			app.Http.UnprocessableEntity(w, r, map[string]string{"ends_at": err.Error()})
		case errors.Is(err, screenings.ErrMovieNotFound):
			app.Http.NotFound(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"screening": screening}, "Screening successfully created")
}

func (app *Application) getScreening(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	screening, err := app.services.Screenings.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, screenings.ErrScreeningNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"screening": screening}, "")
}

type listScreeningsInput struct {
	MovieID int64      `schema:"movie_id" validate:"omitempty,gt=0"`
	From    *time.Time `schema:"from"`
	To      *time.Time `schema:"to"`
	filters.Filters
}

func (app *Application) getScreenings(w http.ResponseWriter, r *http.Request) {
	var input listScreeningsInput
	if err := app.readQuery(r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := libvalidator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	if input.Sort == "" {
		input.Sort = "starts_at"
	}
	input.SortSafelist = screeningSortSafelist
	if !input.SortIsSafe() {
		app.Http.UnprocessableEntity(w, r, map[string]string{"sort": "unknown sort value"})
		return
	}
	screeningList, total, err := app.services.Screenings.List(r.Context(), input.MovieID, input.From, input.To, input.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"screenings": screeningList, "total_records": total}, "")
}

type updateScreeningInput struct {
	StartsAt   *time.Time `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
	Auditorium *string    `json:"auditorium" validate:"omitempty,max=100"`
	Capacity   *int32     `json:"capacity" validate:"omitempty,gt=0"`
	Notes      *string    `json:"notes" validate:"omitempty,max=2000"`
}

func (app *Application) updateScreening(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	var input updateScreeningInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := libvalidator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	screening, err := app.services.Screenings.Update(r.Context(), id, screenings.UpdateScreeningParams{
		StartsAt:   input.StartsAt,
		EndsAt:     input.EndsAt,
		Auditorium: input.Auditorium,
		Capacity:   input.Capacity,
		Notes:      input.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, screenings.ErrScreeningNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, screenings.ErrInvalidTimeRange):
			app.Http.UnprocessableEntity(w, r, map[string]string{"ends_at": err.Error()})
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"screening": screening}, "Screening successfully updated")
}

func (app *Application) deleteScreening(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	if err := app.services.Screenings.Delete(r.Context(), id); err != nil {
		if errors.Is(err, screenings.ErrScreeningNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Screening successfully deleted")
}

func (app *Application) getScreeningStats(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	screeningStats, err := app.services.Stats.ForScreening(r.Context(), id)
	if err != nil {
		if errors.Is(err, stats.ErrScreeningNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"stats": screeningStats}, "")
}

func (app *Application) getScreeningStatsList(w http.ResponseWriter, r *http.Request) {
	statsList, err := app.services.Stats.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"stats": statsList}, "")
}

func (app *Application) getScreeningAttendance(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	logs, err := app.services.Attendance.ListForScreening(r.Context(), id)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"attendance_logs": logs}, "")
}
