package api

import (
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"tv-alert-relay/cache"
	"tv-alert-relay/card"
	"tv-alert-relay/config"
	"tv-alert-relay/database"
	"tv-alert-relay/notifications"
	"tv-alert-relay/realtime"
)

// Server handles HTTP API requests
type Server struct {
	cfg        *config.Config
	composer   *notifications.Composer
	dispatcher *notifications.Dispatcher
	entries    cache.EntryCache
	broker     *realtime.Broker
	wsFeed     *realtime.WSFeed
	renderer   *card.Renderer
	repo       *database.AlertRepository // nil when persistence is disabled
}

// NewServer creates a new API server instance
func NewServer(cfg *config.Config, composer *notifications.Composer, dispatcher *notifications.Dispatcher,
	entries cache.EntryCache, broker *realtime.Broker, renderer *card.Renderer, repo *database.AlertRepository) *Server {
	return &Server{
		cfg:        cfg,
		composer:   composer,
		dispatcher: dispatcher,
		entries:    entries,
		broker:     broker,
		wsFeed:     realtime.NewWSFeed(broker),
		renderer:   renderer,
		repo:       repo,
	}
}

// Handler builds the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Alert ingestion
	mux.HandleFunc("POST /api/webhook", s.handleWebhook)
	mux.HandleFunc("GET /api/webhook", s.handleWebhookInfo)

	// Trade card rendering
	mux.HandleFunc("GET /api/card-image", s.handleCardImage)

	// Live event feeds
	mux.Handle("GET /api/events", s.broker) // SSE Endpoint
	mux.Handle("GET /api/events/ws", s.wsFeed)

	// History (requires persistence)
	mux.HandleFunc("GET /api/alerts", s.handleGetAlerts)
	mux.HandleFunc("GET /api/deliveries", s.handleGetDeliveries)

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.corsMiddleware(s.loggingMiddleware(mux))
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API Server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}
