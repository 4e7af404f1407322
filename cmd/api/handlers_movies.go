package main

import (
	"errors"
	"net/http"

	"cinehall/proj/internal/domain/filters"
	libvalidator "cinehall/proj/internal/lib/validator"
	"cinehall/proj/internal/services/movies"
)

var movieSortSafelist = []string{"id", "title", "created_at"}

type createMovieInput struct {
	Title           string  `json:"title" validate:"required,max=500"`
	Synopsis        *string `json:"synopsis" validate:"omitempty,max=5000"`
	DurationMinutes *int32  `json:"duration_minutes" validate:"omitempty,gt=0"`
	Rating          *string `json:"rating" validate:"omitempty,max=20"`
	PosterURL       *string `json:"poster_url" validate:"omitempty,url"`
	IsActive        *bool   `json:"is_active"`
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var input createMovieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := libvalidator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	movie, err := app.services.Movies.Create(r.Context(), movies.CreateMovieParams{
		Title:           input.Title,
		Synopsis:        input.Synopsis,
		DurationMinutes: input.DurationMinutes,
		Rating:          input.Rating,
		PosterURL:       input.PosterURL,
		IsActive:        isActive,
	})
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"movie": movie}, "Movie successfully created")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

type listMoviesInput struct {
	Title      string `schema:"title"`
	ActiveOnly bool   `schema:"active_only"`
	filters.Filters
}

func (app *Application) getMovies(w http.ResponseWriter, r *http.Request) {
	var input listMoviesInput
	if err := app.readQuery(r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := libvalidator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	if input.Sort == "" {
		input.Sort = "id"
	}
	input.SortSafelist = movieSortSafelist
	if !input.SortIsSafe() {
		app.Http.UnprocessableEntity(w, r, map[string]string{"sort": "unknown sort value"})
		return
	}
	movieList, total, err := app.services.Movies.List(r.Context(), input.Title, input.ActiveOnly, input.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": movieList, "total_records": total}, "")
}

type updateMovieInput struct {
	Title           *string `json:"title" validate:"omitempty,max=500"`
	Synopsis        *string `json:"synopsis" validate:"omitempty,max=5000"`
	DurationMinutes *int32  `json:"duration_minutes" validate:"omitempty,gt=0"`
	Rating          *string `json:"rating" validate:"omitempty,max=20"`
	PosterURL       *string `json:"poster_url" validate:"omitempty,url"`
	IsActive        *bool   `json:"is_active"`
}

func (app *Application) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	var input updateMovieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := libvalidator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	movie, err := app.services.Movies.Update(r.Context(), id, movies.UpdateMovieParams{
		Title:           input.Title,
		Synopsis:        input.Synopsis,
		DurationMinutes: input.DurationMinutes,
		Rating:          input.Rating,
		PosterURL:       input.PosterURL,
		IsActive:        input.IsActive,
	})
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "Movie successfully updated")
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, extracted := app.extractIDParam(w, r)
	if !extracted {
		return
	}
	if err := app.services.Movies.Delete(r.Context(), id); err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Movie successfully deleted")
}
