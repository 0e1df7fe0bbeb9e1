package main

import (
	"database/sql"
	"net/http"

	"github.com/crucial707/course-api/internal/auth"
	"github.com/crucial707/course-api/internal/config"
	"github.com/crucial707/course-api/internal/handlers"
	"github.com/crucial707/course-api/internal/middleware"
	"github.com/crucial707/course-api/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(database)
	courseRepo := repo.NewCourseRepo(database)

	authenticator := auth.NewAuthenticator(userRepo, courseRepo)
	requireAuth := middleware.BasicAuth(authenticator)
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	limitBody := chimw.RequestSize(maxBody)

	errs := handlers.ErrorHandler{LogErrors: cfg.EnableGlobalErrorLogging}
	userHandler := &handlers.UserHandler{Repo: userRepo, Hasher: auth.NewHasher(cfg.BcryptCost)}
	courseHandler := &handlers.CourseHandler{Repo: courseRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog(nil))
	r.Use(middleware.Prometheus)
	r.Use(middleware.Recoverer)
	r.Use(chimw.SetHeader("X-Content-Type-Options", "nosniff"))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"Location"},
			MaxAge:         86400,
		}).Handler)
	}

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	r.Get("/", handlers.Welcome)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Users
		r.With(requireAuth).Get("/users", errs.Wrap(userHandler.GetCurrentUser))
		r.With(limitBody).Post("/users", errs.Wrap(userHandler.CreateUser))

		// Courses
		r.Get("/courses", errs.Wrap(courseHandler.ListCourses))
		r.Get("/courses/{id}", errs.Wrap(courseHandler.GetCourse))
		r.With(limitBody, requireAuth).Post("/courses", errs.Wrap(courseHandler.CreateCourse))
		r.With(limitBody, requireAuth).Put("/courses/{id}", errs.Wrap(courseHandler.UpdateCourse))
		r.With(requireAuth).Delete("/courses/{id}", errs.Wrap(courseHandler.DeleteCourse))
	})

	return r
}
