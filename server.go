package metroassist

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// Server exposes the assistant operations over HTTP for the
// conversational layer.
type Server struct {
	assistant *Assistant
	httpSrv   *http.Server
	log       zerolog.Logger
}

// NewServer builds the HTTP server. The assistant must be fully
// constructed (feed loaded) before requests are served; constructing the
// server after the load is the readiness barrier.
func NewServer(a *Assistant, port int, log zerolog.Logger) *Server {
	s := &Server{assistant: a, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/journey", s.handleJourney)
	mux.HandleFunc("/api/routes", s.handleRoutes)
	mux.HandleFunc("/api/fare", s.handleFare)
	mux.HandleFunc("/api/schedule", s.handleSchedule)
	mux.HandleFunc("/api/stations", s.handleStations)
	mux.HandleFunc("/api/stations/details", s.handleStationDetails)
	mux.HandleFunc("/api/stations/nearby", s.handleStationsNearby)

	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal().Err(err).Msg("server error")
		}
	}()
	s.log.Info().Str("addr", s.httpSrv.Addr).Msg("server listening")
}

// WaitForShutdown blocks until SIGINT/SIGTERM, then drains the server.
func (s *Server) WaitForShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	s.log.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.log.Error().Err(err).Msg("server shutdown error")
		return
	}
	s.log.Info().Msg("server shut down")
}
