package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string

	// UploadsDir is served under /uploads to admins; empty disables it
	UploadsDir string

	// Metrics is mounted at /metrics when set
	Metrics http.Handler
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	punchHandler PunchHandler,
	attendanceHandler AttendanceHandler,
	justificationHandler JustificationHandler,
	reportHandler ReportHandler,
	dailyNoteHandler DailyNoteHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/tracking-modes", punchHandler.ListTrackingModes)

			r.Route("/punches", func(r chi.Router) {
				r.Post("/", punchHandler.Punch)
				r.With(middleware.AdminOnly).Get("/", punchHandler.List)
				r.Get("/next", punchHandler.Next)
				r.Get("/my", punchHandler.ListMine)
			})

			r.Route("/daily-notes", func(r chi.Router) {
				r.Get("/", dailyNoteHandler.Get)
				r.Put("/", dailyNoteHandler.Save)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/summary", attendanceHandler.Summary)
				r.Get("/calendar", attendanceHandler.Calendar)
				r.Get("/day-status", attendanceHandler.DayStatus)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/justifications", func(r chi.Router) {
					r.Get("/", justificationHandler.List)
					r.Post("/", justificationHandler.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", justificationHandler.Get)
						r.Put("/", justificationHandler.Update)
						r.Delete("/", justificationHandler.Delete)
						r.Get("/attachment", justificationHandler.DownloadAttachment)
					})
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/hours", reportHandler.Hours)
					r.Get("/overview", reportHandler.Overview)
				})
			})
		})

		if opts.UploadsDir != "" {
			r.With(middleware.AdminOnly).Handle("/uploads/*",
				http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
		}
	})

	return r
}
