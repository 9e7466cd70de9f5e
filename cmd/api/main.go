package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/config"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	appHTTP "github.com/cmlabs-hris/punchclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/punchclock-backend-go/internal/service/attendance"
	dailyNoteService "github.com/cmlabs-hris/punchclock-backend-go/internal/service/dailynote"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/service/file"
	justificationService "github.com/cmlabs-hris/punchclock-backend-go/internal/service/justification"
	punchService "github.com/cmlabs-hris/punchclock-backend-go/internal/service/punch"
	reportService "github.com/cmlabs-hris/punchclock-backend-go/internal/service/report"
)

const appName = "punchclock"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})).With(
		slog.String("app", appName),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		applied, err := postgresql.Migrate(ctx, db)
		if err != nil {
			log.Fatal("Error applying migrations: ", err)
		}
		slog.Info("Migrations applied", "count", len(applied), "names", applied)
	}

	location := cfg.Location()
	registry := tracking.Default()
	appMetrics := metrics.NewWithRuntime()

	transactor := postgresql.NewTransactor(db)
	punchRepo := postgresql.NewPunchEventRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	justificationRepo := postgresql.NewJustificationRepository(db)
	dailyNoteRepo := postgresql.NewDailyNoteRepository(db)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage types: ", cfg.Storage.Type)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage)

	punchSvc := punchService.NewPunchService(
		transactor,
		punchRepo,
		projectRepo,
		registry,
		cfg.Tracking.DefaultMode,
		location,
		appMetrics,
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		punchRepo,
		justificationRepo,
		employeeRepo,
		registry,
		location,
		appMetrics,
	)
	justificationSvc := justificationService.NewJustificationService(
		transactor,
		justificationRepo,
		employeeRepo,
		fileService,
		location,
	)
	reportSvc := reportService.NewReportService(punchRepo, employeeRepo, attendanceSvc, location)
	dailyNoteSvc := dailyNoteService.NewDailyNoteService(dailyNoteRepo, projectRepo, location)

	scheduler := cron.NewScheduler(cron.JobRunObserver(appMetrics))
	cron.NewTrackingJobs(projectRepo, appMetrics).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AppName:        appName,
			Version:        cfg.App.Version,
			Env:            cfg.App.Env,
			LogLevel:       cfg.Level(),
			AllowedOrigins: cfg.App.FrontendURL,
			UploadsDir:     cfg.Storage.BasePath,
			Metrics:        appMetrics.Handler(),
		},
		JWTService,
		appHTTP.NewPunchHandler(punchSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewJustificationHandler(justificationSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewDailyNoteHandler(dailyNoteSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", location.String(), "default_mode", cfg.Tracking.DefaultMode.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
