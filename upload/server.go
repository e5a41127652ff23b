package upload

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Server is the upload proxy's HTTP surface. uploader may be nil when
// storage configuration is missing; the handler then answers every
// upload with the configuration error rather than the process refusing
// to start.
type Server struct {
	router   *mux.Router
	uploader Uploader
	log      zerolog.Logger
}

// ServerOption modifies a Server at construction time.
type ServerOption func(*Server)

func WithServerLogger(l zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.log = l
	}
}

func NewServer(uploader Uploader, options ...ServerOption) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		uploader: uploader,
		log:      log.Logger,
	}
	for _, opt := range options {
		opt(s)
	}
	s.initRoutes()
	return s
}

func (s *Server) initRoutes() {
	s.router.Handle("/api/upload", http.HandlerFunc(s.handleUpload)).Methods(http.MethodPost)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	s.router.Use(s.requestMetrics)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
