package http

import (
	"net/http"
	"net/url"

	"workday/internal/screens"
)

func (s *Server) handleToggleAttendance(w http.ResponseWriter, r *http.Request) {
	if errResp := ParseFormOrFail(r); errResp != nil {
		errResp.Write(w)
		return
	}
	day := formValue(r.PostForm, "date")
	clientID, err := parsePositive(formValue(r.PostForm, "client_id"))
	if err != nil {
		BadRequestError("Invalid client").Write(w)
		return
	}
	present := formBool(r.PostForm, "present")

	res, view, err := s.screens.Attendance.Toggle(r.Context(), day, clientID, present)
	logAction(r, screens.ScreenAttendance, "toggle", "present", present)
	target := "/attendance"
	if day != "" {
		target += "?date=" + url.QueryEscape(day)
	}
	s.respond(w, r, res, err, screens.ScreenAttendance, view, target)
}
