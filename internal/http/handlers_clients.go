package http

import (
	"fmt"
	"net/http"

	"workday/internal/screens"
)

func (s *Server) handleAddClient(w http.ResponseWriter, r *http.Request) {
	if errResp := ParseFormOrFail(r); errResp != nil {
		errResp.Write(w)
		return
	}
	res, view, err := s.screens.Clients.Add(r.Context(), clientForm(r.PostForm))
	logAction(r, screens.ScreenClients, "add")
	s.respond(w, r, res, err, screens.ScreenClients, view, "/clients")
}

func (s *Server) handleSaveClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		NotFoundError("Client not found").Write(w)
		return
	}
	if errResp := ParseFormOrFail(r); errResp != nil {
		errResp.Write(w)
		return
	}
	res, view, err := s.screens.Detail.Save(r.Context(), id, clientForm(r.PostForm))
	s.respond(w, r, res, err, screens.ScreenClientDetail, view, clientPath(id))
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		NotFoundError("Client not found").Write(w)
		return
	}
	res, err := s.screens.Detail.Delete(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	level := NotificationSuccess
	if !res.OK() {
		level = NotificationError
	}
	RedirectWithNotice("/clients", level, res.Message).Write(w)
}

func (s *Server) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		NotFoundError("Client not found").Write(w)
		return
	}
	if errResp := ParseFormOrFail(r); errResp != nil {
		errResp.Write(w)
		return
	}
	res, view, err := s.screens.Detail.AddPayment(r.Context(), id, paymentForm(r.PostForm))
	s.respond(w, r, res, err, screens.ScreenClientDetail, view, clientPath(id))
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		NotFoundError("Client not found").Write(w)
		return
	}
	pid, err := pathID(r, "pid")
	if err != nil {
		NotFoundError("Payment not found").Write(w)
		return
	}
	res, view, err := s.screens.Detail.DeletePayment(r.Context(), id, pid)
	s.respond(w, r, res, err, screens.ScreenClientDetail, view, clientPath(id))
}

func clientPath(id int64) string {
	return fmt.Sprintf("/clients/%d", id)
}
