package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/sufield/taskhub/internal/app"
	"github.com/sufield/taskhub/internal/httpmw"
)

// Server is the HTTP surface of the task service.
type Server struct {
	server *http.Server
	router chi.Router
	log    *logrus.Logger
}

// NewServer builds the router and wires the handlers. The /register and
// /login endpoints are public; everything else requires a bearer token.
func NewServer(addr string, auth *app.AuthService, tasks *app.TaskService, log *logrus.Logger) *Server {
	authH := NewAuthHandler(auth, log)
	taskH := NewTaskHandler(tasks, log)

	r := chi.NewRouter()
	r.Use(httpmw.RequestID)
	r.Use(httpmw.Logging(log))

	r.Post("/register", authH.Register)
	r.Post("/login", authH.Login)

	r.Group(func(r chi.Router) {
		r.Use(authH.RequireAuth)

		r.Post("/logout", authH.Logout)
		r.Get("/users", authH.ListUsers)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskH.List)
			r.Post("/", taskH.Create)
			r.Get("/{id}", taskH.Get)
			r.Put("/{id}", taskH.Update)
			r.Delete("/{id}", taskH.Delete)
			r.Post("/{id}/assign", taskH.Assign)
			r.Patch("/{id}/complete", taskH.ToggleComplete)
		})
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{server: server, router: r, log: log}
}

// Start begins serving and blocks until the listener fails or the
// server is stopped.
func (s *Server) Start() error {
	s.log.WithField("addr", s.server.Addr).Info("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down, letting in-flight requests
// finish within the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
