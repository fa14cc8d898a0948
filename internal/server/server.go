package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mielsense/nowplaying/internal/nowplaying"
)

// Config holds server configuration
type Config struct {
	Addr           string        // Listen address, e.g. ":8080"
	Title          string        // Page heading
	PollInterval   time.Duration // How often to look for changes for websocket clients
	AllowedOrigins []string      // Websocket origins to accept (empty allows any)
}

// Server serves the now-playing page, its JSON API and a websocket feed.
type Server struct {
	config     Config
	loader     nowplaying.Loader
	hub        *Hub
	poller     *nowplaying.Poller
	router     *mux.Router
	upgrader   websocket.Upgrader
	httpServer *http.Server
	logger     zerolog.Logger
}

// New creates a new, fully configured Server.
func New(cfg Config, loader nowplaying.Loader, logger zerolog.Logger) *Server {
	s := &Server{
		config: cfg,
		loader: loader,
		hub:    NewHub(logger),
		poller: nowplaying.NewPoller(loader, cfg.PollInterval, logger),
		logger: logger.With().Str("component", "server").Logger(),
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestID, s.accessLog)

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/api/now-playing", s.handleNowPlaying).Methods(http.MethodGet)
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/ws", s.handleWebsocket).Methods(http.MethodGet)

	return router
}

// Run starts the HTTP server, the poller and the hub, and blocks until
// ctx is cancelled and the server has shut down.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	updates := make(chan nowplaying.Update, 1)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.poller.Run(ctx, updates); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error().Err(err).Msg("Poller error")
		}
	}()

	go func() {
		defer wg.Done()
		s.forward(ctx, updates)
	}()

	go func() {
		<-ctx.Done()
		s.logger.Info().Msg("Shutdown signal received, stopping http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
		}
		s.hub.Close()
	}()

	s.logger.Info().Str("addr", s.config.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	wg.Wait()
	return nil
}

// forward broadcasts poller updates to websocket clients.
func (s *Server) forward(ctx context.Context, updates <-chan nowplaying.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			payload, err := json.Marshal(update.Result)
			if err != nil {
				s.logger.Error().Err(err).Msg("Failed to encode update")
				continue
			}
			s.hub.Broadcast(payload)
		}
	}
}

// checkOrigin accepts any origin unless an allow list is configured.
func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.config.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}
