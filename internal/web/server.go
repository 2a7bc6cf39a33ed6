package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger reports persistence liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

func NewServer(addr string, handlers *Handlers, db Pinger, log *slog.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", handlers.Register)
	mux.HandleFunc("POST /api/auth/login", handlers.Login)

	mux.HandleFunc("POST /api/games", handlers.requireAuth(handlers.CreateGame))
	mux.HandleFunc("POST /api/games/{id}/join", handlers.requireAuth(handlers.JoinGame))
	mux.HandleFunc("POST /api/games/{id}/start", handlers.requireAuth(handlers.StartGame))
	mux.HandleFunc("POST /api/games/{id}/turn", handlers.requireAuth(handlers.MakeTurn))
	mux.HandleFunc("GET /api/games/{id}", handlers.requireAuth(handlers.GetGame))
	mux.HandleFunc("GET /api/games", handlers.requireAuth(handlers.ListGames))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			log.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		log: log,
	}
}

func (s *Server) Run() error {
	s.log.Info("web server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
