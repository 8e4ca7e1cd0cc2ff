package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"workday/internal/core"
	applog "workday/internal/log"
	"workday/internal/screens"
	appweb "workday/web"
)

// Pinger is the database liveness check used by /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Logger *applog.Logger
	// PostLimit caps form posts per client per minute. Zero means 120.
	PostLimit int
}

type Server struct {
	http.Server
	templates   *template.Template
	screens     *screens.Screens
	nav         *screens.Navigator
	db          Pinger
	logger      *applog.Logger
	rateLimiter *rateLimiter
	security    *securityMetrics
	started     time.Time

	shutdownOnce sync.Once
}

// notice is the one-line outcome banner shown at the top of a page.
type notice struct {
	Level   NotificationType
	Message string
}

// page is the data every template receives.
type page struct {
	Screen screens.Screen
	Title  string
	Notice *notice
	Today  string
	Data   any
}

var screenTitles = map[screens.Screen]string{
	screens.ScreenHome:         "Home",
	screens.ScreenClients:      "Clients",
	screens.ScreenClientDetail: "Client",
	screens.ScreenAttendance:   "Attendance",
	screens.ScreenExpenses:     "Expenses & income",
	screens.ScreenReport:       "Report",
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, sc *screens.Screens, db Pinger, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)
	limit := opts.PostLimit
	if limit <= 0 {
		limit = 120
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           applog.Middleware(logger)(mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
		screens:     sc,
		nav:         screens.NewNavigator(sc),
		db:          db,
		logger:      logger,
		rateLimiter: newRateLimiter(limit, time.Minute),
		security:    &securityMetrics{},
		started:     time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /{$}", s.guard(s.handleScreen(screens.ScreenHome)))
	mux.HandleFunc("GET /screens/{name}", s.guard(s.handleGoTo))

	mux.HandleFunc("GET /clients", s.guard(s.handleScreen(screens.ScreenClients)))
	mux.HandleFunc("POST /clients", s.guard(s.handleAddClient))
	mux.HandleFunc("GET /clients/{id}", s.guard(s.handleScreen(screens.ScreenClientDetail)))
	mux.HandleFunc("POST /clients/{id}", s.guard(s.handleSaveClient))
	mux.HandleFunc("POST /clients/{id}/delete", s.guard(s.handleDeleteClient))
	mux.HandleFunc("POST /clients/{id}/payments", s.guard(s.handleAddPayment))
	mux.HandleFunc("POST /clients/{id}/payments/{pid}/delete", s.guard(s.handleDeletePayment))

	mux.HandleFunc("GET /attendance", s.guard(s.handleScreen(screens.ScreenAttendance)))
	mux.HandleFunc("POST /attendance", s.guard(s.handleToggleAttendance))

	mux.HandleFunc("GET /expenses", s.guard(s.handleScreen(screens.ScreenExpenses)))
	mux.HandleFunc("POST /expenses", s.guard(s.handleSaveEntry))
	mux.HandleFunc("POST /expenses/{id}/delete", s.guard(s.handleDeleteEntry))

	mux.HandleFunc("GET /report", s.guard(s.handleScreen(screens.ScreenReport)))
	mux.HandleFunc("GET /report/export.csv", s.guard(s.handleDownloadCSV))
	mux.HandleFunc("GET /report/export.xlsx", s.guard(s.handleDownloadXLSX))
	mux.HandleFunc("POST /report/export", s.guard(s.handleExportReport))

	return s
}

// Shutdown gracefully shuts down the server and the rate limiter cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// guard adds security headers, rejects probe-looking paths, and rate limits
// form posts.
func (s *Server) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractClientIP(r)
		if isSuspicious(r, s.security) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request rejected",
				applog.FieldClientIP, clientIP,
				applog.FieldPath, r.URL.Path)
			NotFoundError("Not found").Write(w)
			return
		}
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.security) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldPath, r.URL.Path)
			TooManyRequestsError("60").Write(w)
			return
		}
		setSecurityHeaders(w)
		next(w, r)
	}
}

// render executes the screen's template inside a page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, screen screens.Screen, data any, n *notice) {
	if s.templates == nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		InternalServerError("templates not loaded").Write(w)
		return
	}
	name := string(screen) + ".html"
	p := page{
		Screen: screen,
		Title:  screenTitles[screen],
		Notice: n,
		Today:  core.Today().String(),
		Data:   data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, p); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			applog.FieldError, err,
			"template", name)
	}
}

// fail answers a load or write error: 404 for missing rows, 500 otherwise.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger := applog.FromContext(r.Context())
	if errors.Is(err, core.ErrNotFound) {
		logger.InfoContext(r.Context(), "Not found", applog.FieldError, err)
		NotFoundError("Not found").Write(w)
		return
	}
	ref := applog.RequestID(r.Context())
	if ref == "" {
		ref = generateRequestID()
	}
	logger.ErrorContext(r.Context(), "Request failed",
		applog.FieldError, err,
		"ref", ref)
	InternalServerError(fmt.Sprintf("Something went wrong (ref %s)", ref)).Write(w)
}

// respond finishes a form post: redirect with a success notice, re-render
// with 422 on validation failure, or fail on error.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, res screens.Result, err error, screen screens.Screen, data any, target string) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !res.OK() && res.Err.Kind == core.KindNotFound && screen == screens.ScreenClientDetail {
		NotFoundError(res.Message).Write(w)
		return
	}
	if !res.OK() {
		applog.FromContext(r.Context()).InfoContext(r.Context(), "Input rejected",
			applog.FieldScreen, screen,
			applog.FieldKind, res.Err.Kind,
			"field", res.Err.Field)
		s.render(w, r, http.StatusUnprocessableEntity, screen, data, &notice{Level: NotificationError, Message: res.Message})
		return
	}
	RedirectWithNotice(target, NotificationSuccess, res.Message).Write(w)
}
