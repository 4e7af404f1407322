package main

import (
	"net/http"
)

type scanInput struct {
	Token string `json:"token"`
}

// scanAttendance forwards a scanned QR token to the validation routine.
// Every expected outcome (unauthorized scanner, bad token, duplicate scan)
// is a 200 with the structured result; only backend faults become 500s.
func (app *Application) scanAttendance(w http.ResponseWriter, r *http.Request) {
	var input scanInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	var scannerID *int64
	if actor := actorFromContext(r.Context()); actor != nil {
		scannerID = &actor.UserID
	}
	result, err := app.services.Attendance.ValidateQR(r.Context(), input.Token, scannerID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"validation": result}, result.Message)
}
