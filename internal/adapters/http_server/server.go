package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct {
	mux     *chi.Mux
	service string
}

// New builds a router with the shared middleware chain. service labels the
// metrics and logs of this process (villa, reservation, user, otp, media).
func New(service string) *Server {
	m := chi.NewRouter()

	// middlewares must precede all route registrations
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(15 * time.Second))
	m.Use(Metrics(service))
	m.Use(Logger(log.Logger, service))

	return &Server{mux: m, service: service}
}

func (s *Server) Mux() http.Handler { return s.mux }

func (s *Server) Router() chi.Router { return s.mux }

// Mount attaches an extra handler (e.g. /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

// MountRoot serves the conventional service banner at /.
func (s *Server) MountRoot(name string) {
	s.mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": name})
	})
}
