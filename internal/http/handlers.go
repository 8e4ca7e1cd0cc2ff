package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	applog "workday/internal/log"
	"workday/internal/screens"
)

// handleHealth reports liveness plus a database ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	httpStatus := http.StatusOK
	checks := map[string]interface{}{}

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.db == nil {
		checks["database"] = "not_configured"
	} else if err := s.db.Ping(ctx); err != nil {
		checks["database"] = "failed: " + err.Error()
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	checks["security"] = s.security.snapshot()
	checks["rate_limiter"] = map[string]int{"active_clients": s.rateLimiter.activeClients()}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"checks":    checks,
	})
}

// handleScreen renders a screen through the navigator, reading its params
// from the path and query string.
func (s *Server) handleScreen(screen screens.Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		params := screens.Params{
			Date:   q.Get("date"),
			Search: sanitizeInput(q.Get("q")),
		}
		if screen == screens.ScreenClientDetail {
			id, err := pathID(r, "id")
			if err != nil {
				NotFoundError("Client not found").Write(w)
				return
			}
			params.ClientID = id
		}
		if v := q.Get("edit"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				params.EntryID = id
			}
		}

		view, err := s.nav.Go(r.Context(), screen, params)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		n := noticeFromQuery(q)
		status := http.StatusOK
		if !view.Result.OK() {
			n = &notice{Level: NotificationError, Message: view.Result.Message}
			status = http.StatusUnprocessableEntity
		}
		s.render(w, r, status, screen, view.Data, n)
	}
}

// handleGoTo maps a screen name to its page. Client detail has no page
// without a client id, so it is answered like an unknown screen.
func (s *Server) handleGoTo(w http.ResponseWriter, r *http.Request) {
	name := screens.Screen(r.PathValue("name"))
	path, ok := screenPath(name)
	if !ok || !s.nav.Has(name) {
		NotFoundError("Unknown screen").Write(w)
		return
	}
	RedirectWithNotice(path, NotificationInfo, "").Write(w)
}

func screenPath(name screens.Screen) (string, bool) {
	switch name {
	case screens.ScreenHome:
		return "/", true
	case screens.ScreenClients:
		return "/clients", true
	case screens.ScreenAttendance:
		return "/attendance", true
	case screens.ScreenExpenses:
		return "/expenses", true
	case screens.ScreenReport:
		return "/report", true
	default:
		return "", false
	}
}

func logAction(r *http.Request, screen screens.Screen, op string, args ...any) {
	fields := append([]any{applog.FieldScreen, screen, applog.FieldOperation, op}, args...)
	applog.FromContext(r.Context()).DebugContext(r.Context(), "Screen action", fields...)
}
