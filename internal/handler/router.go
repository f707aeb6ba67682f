package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-management-api/internal/metrics"
	"github.com/BuzzLyutic/task-management-api/internal/middleware"
	"github.com/BuzzLyutic/task-management-api/internal/service"
	"github.com/BuzzLyutic/task-management-api/pkg/respond"
)

// Pinger - проверка доступности БД для /health (pgxpool.Pool подходит)
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Auth        *service.AuthService
	Tasks       *service.TaskService
	DB          Pinger
	AuthLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

// NewRouter собирает таблицу маршрутов сервиса
func NewRouter(d RouterDeps) http.Handler {
	authHandler := NewAuthHandler(d.Auth, d.Logger)
	taskHandler := NewTaskHandler(d.Tasks, d.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.PeerAddr)
	r.Use(chimw.RealIP)
	r.Use(metrics.Instrument)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Recoverer(d.Logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", health(d.DB))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		if d.AuthLimiter != nil {
			r.Use(d.AuthLimiter.Handler)
		}
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Auth, func(w http.ResponseWriter, r *http.Request, err error) {
			handleErrors(d.Logger, w, r, err)
		}))
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{id}", taskHandler.Get)
		r.Patch("/{id}/status", taskHandler.UpdateStatus)
		r.Delete("/{id}", taskHandler.Delete)
	})

	return r
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				respond.Error(w, r, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
