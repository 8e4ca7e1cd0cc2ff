package http

import (
	"net/http"

	"workday/internal/screens"
)

func (s *Server) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	if errResp := ParseFormOrFail(r); errResp != nil {
		errResp.Write(w)
		return
	}
	res, view, err := s.screens.Expenses.Save(r.Context(), entryForm(r.PostForm))
	logAction(r, screens.ScreenExpenses, "save")
	s.respond(w, r, res, err, screens.ScreenExpenses, view, "/expenses")
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		NotFoundError("Entry not found").Write(w)
		return
	}
	res, view, err := s.screens.Expenses.Delete(r.Context(), id)
	s.respond(w, r, res, err, screens.ScreenExpenses, view, "/expenses")
}
