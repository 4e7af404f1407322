package screenings

import "errors"

var (
	ErrScreeningNotFound = errors.New("screening not found")
	ErrMovieNotFound     = errors.New("movie for this screening not found")
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
)
