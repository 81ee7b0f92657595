package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unrolled/secure"

	"hrm/internal/domain/activity"
	"hrm/internal/domain/announcements"
	"hrm/internal/domain/attendance"
	"hrm/internal/domain/auth"
	"hrm/internal/domain/core"
	"hrm/internal/domain/leave"
	"hrm/internal/domain/payroll"
	"hrm/internal/platform/config"
	"hrm/internal/platform/db"
	activityhandler "hrm/internal/transport/http/handlers/activity"
	announcementshandler "hrm/internal/transport/http/handlers/announcements"
	attendancehandler "hrm/internal/transport/http/handlers/attendance"
	authhandler "hrm/internal/transport/http/handlers/auth"
	employeeshandler "hrm/internal/transport/http/handlers/employees"
	leavehandler "hrm/internal/transport/http/handlers/leave"
	payrollhandler "hrm/internal/transport/http/handlers/payroll"
	profilehandler "hrm/internal/transport/http/handlers/profile"
	"hrm/internal/transport/http/middleware"
)

type App struct {
	Config   config.Config
	DB       *pgxpool.Pool
	Router   http.Handler
	Recorder *activity.Recorder
}

// New connects the database, runs startup migrations and seeding, and wires
// the full route tree. The returned App owns the pool and the activity
// recorder; call Close when done.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	coreStore := core.NewStore(pool)
	leaveSvc := leave.NewService(pool)
	payrollSvc := payroll.NewService(pool)
	announcementsSvc := announcements.NewService(pool)
	attendanceSvc := attendance.NewService(pool)
	activitySvc := activity.NewService(pool)
	recorder := activity.NewRecorder(activitySvc, cfg.ActivityBuffer)

	app := &App{Config: cfg, DB: pool, Recorder: recorder}
	app.Router = app.routes(coreStore, leaveSvc, payrollSvc, announcementsSvc, attendanceSvc, activitySvc)
	return app, nil
}

func (a *App) routes(
	coreStore *core.Store,
	leaveSvc *leave.Service,
	payrollSvc *payroll.Service,
	announcementsSvc *announcements.Service,
	attendanceSvc *attendance.Service,
	activitySvc *activity.Service,
) http.Handler {
	cfg := a.Config

	secureMW := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "same-origin",
		IsDevelopment:      !cfg.IsProduction(),
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recover)
	router.Use(secureMW.Handler)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	authHandler := authhandler.NewHandler(coreStore, coreStore, cfg.JWTSecret, cfg.TokenTTL, cfg.IsProduction())
	profileHandler := profilehandler.NewHandler(coreStore, filepath.Join(cfg.FrontendDir, "uploads"))
	employeesHandler := employeeshandler.NewHandler(coreStore)
	leaveHandler := leavehandler.NewHandler(leaveSvc, coreStore)
	payrollHandler := payrollhandler.NewHandler(payrollSvc)
	announcementsHandler := announcementshandler.NewHandler(announcementsSvc)
	attendanceHandler := attendancehandler.NewHandler(attendanceSvc, cfg.CronAPIKey)
	activityHandler := activityhandler.NewHandler(activitySvc)

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Audit(a.Recorder))

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(cfg.LoginRatePerMinute, time.Minute))
			r.Post("/auth/login", authHandler.HandleLogin)
		})
		r.Post("/auth/register/{role}", authHandler.HandleRegister)
		r.Post("/auth/logout", authHandler.HandleLogout)

		r.Route("/hr", func(r chi.Router) {
			r.Use(middleware.RequireRoles(auth.RoleHR))
			r.Get("/profile", profileHandler.HandleGet)
			r.Patch("/profile", profileHandler.HandleUpdate)
			r.Get("/activity-logs", activityHandler.HandleList)
		})

		r.Route("/manager", func(r chi.Router) {
			r.Use(middleware.RequireRoles(auth.RoleManager))
			r.Get("/profile", profileHandler.HandleGet)
			r.Patch("/profile", profileHandler.HandleUpdate)
			r.Get("/leave-requests", leaveHandler.HandleTeamRequests)
			r.Put("/leave-requests", leaveHandler.HandleManagerResolve)
			r.Get("/team", employeesHandler.HandleTeam)
			r.Post("/team", employeesHandler.HandleAddTeamMember)
			r.Delete("/team/{employeeId}", employeesHandler.HandleRemoveTeamMember)
		})

		r.Route("/employee", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(auth.RoleEmployee))
				r.Get("/profile", profileHandler.HandleGet)
				r.Patch("/profile", profileHandler.HandleUpdate)
				r.Post("/attendance/clock-in", attendanceHandler.HandleClockIn)
				r.Post("/attendance/clock-out", attendanceHandler.HandleClockOut)
				r.Get("/attendance", attendanceHandler.HandleHistory)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(auth.RoleHR, auth.RoleManager))
				r.Get("/profile/all", employeesHandler.HandleList)
				r.Get("/profile/{id}", employeesHandler.HandleGet)
			})
			r.With(middleware.RequireRoles(auth.RoleHR, auth.RoleManager)).Put("/status", employeesHandler.HandleUpdateStatus)
			// Authorization is key-or-HR, decided inside the handler.
			r.Post("/attendance/auto-clock-out", attendanceHandler.HandleAutoClockOut)
		})

		r.Route("/leave", func(r chi.Router) {
			r.With(middleware.RequireRoles(auth.RoleEmployee)).Post("/", leaveHandler.HandleCreate)
			r.With(middleware.RequireRoles(auth.RoleEmployee, auth.RoleManager, auth.RoleHR)).Get("/", leaveHandler.HandleList)
			r.With(middleware.RequireRoles(auth.RoleEmployee, auth.RoleManager, auth.RoleHR)).Get("/{id}", leaveHandler.HandleGet)
			r.With(middleware.RequireRoles(auth.RoleManager, auth.RoleHR)).Put("/{id}", leaveHandler.HandleResolve)
			r.With(middleware.RequireRoles(auth.RoleEmployee)).Delete("/{id}", leaveHandler.HandleDelete)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.With(middleware.RequireRoles(auth.RoleHR)).Post("/", payrollHandler.HandleCreate)
			r.With(middleware.RequireRoles(auth.RoleHR, auth.RoleEmployee)).Get("/", payrollHandler.HandleList)
			r.With(middleware.RequireRoles(auth.RoleHR)).Patch("/{id}", payrollHandler.HandleUpdate)
			r.With(middleware.RequireRoles(auth.RoleHR, auth.RoleEmployee)).Get("/{id}/payslip", payrollHandler.HandlePayslip)
		})

		r.Route("/announcements", func(r chi.Router) {
			r.With(middleware.RequireRoles(auth.RoleHR, auth.RoleManager)).Post("/", announcementsHandler.HandleCreate)
			r.With(middleware.RequireRoles(auth.RoleEmployee, auth.RoleManager, auth.RoleHR)).Get("/", announcementsHandler.HandleList)
		})
	})

	spa := spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"}
	for _, role := range []auth.Role{auth.RoleHR, auth.RoleManager, auth.RoleEmployee} {
		router.With(middleware.RoleGate(role), middleware.PageView(a.Recorder)).Handle(role.HomePath()+"/*", spa)
		router.With(middleware.RoleGate(role), middleware.PageView(a.Recorder)).Handle(role.HomePath(), spa)
	}
	router.Mount("/", spa)

	return router
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.Config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) Close() {
	a.Recorder.Close()
	a.DB.Close()
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean(r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
}
