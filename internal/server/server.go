package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"infoScope/internal/info"
	"infoScope/internal/metrics"
	"infoScope/internal/model"
)

// InfoService is the set of fetches the API exposes.
type InfoService interface {
	FetchPoolTransactions(ctx context.Context, address string) ([]model.Transaction, error)
	FetchPoolsForToken(ctx context.Context, address string) ([]string, error)
	CurrentNativePrices(ctx context.Context) (model.PriceSnapshot, error)
	FetchPoolChartData(ctx context.Context, address string) ([]model.ChartEntry, error)
	FetchTokenChartData(ctx context.Context, address string) ([]model.ChartEntry, error)
	FetchProtocolChartData(ctx context.Context) ([]model.ChartEntry, error)
}

// envelope mirrors the { data, error } result every fetch produces.
type envelope struct {
	Data  interface{} `json:"data"`
	Error bool        `json:"error"`
}

type failure struct {
	Error bool `json:"error"`
}

// Server serves info view-models over HTTP.
type Server struct {
	service InfoService
	metrics *metrics.Metrics
	logger  *zap.Logger
	mux     *http.ServeMux
	server  *http.Server
}

// New creates a Server with all routes registered.
func New(addr string, service InfoService, m *metrics.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	s := &Server{
		service: service,
		metrics: m,
		logger:  logger,
		mux:     mux,
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.handle("GET /pools/{address}/transactions", s.handlePoolTransactions)
	s.handle("GET /pools/{address}/chart", s.handlePoolChart)
	s.handle("GET /tokens/{address}/pools", s.handleTokenPools)
	s.handle("GET /tokens/{address}/chart", s.handleTokenChart)
	s.handle("GET /protocol/chart", s.handleProtocolChart)
	s.handle("GET /prices/native", s.handleNativePrices)
	s.handle("GET /health", s.handleHealth)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) int

func (s *Server) handle(pattern string, fn handlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		code := fn(w, r)
		if s.metrics != nil {
			s.metrics.HTTPRequests.WithLabelValues(pattern, strconv.Itoa(code)).Inc()
		}
	})
}

func (s *Server) handlePoolTransactions(w http.ResponseWriter, r *http.Request) int {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return http.StatusBadRequest
	}
	txs, err := s.service.FetchPoolTransactions(r.Context(), address)
	return s.respond(w, txs, err)
}

func (s *Server) handlePoolChart(w http.ResponseWriter, r *http.Request) int {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return http.StatusBadRequest
	}
	entries, err := s.service.FetchPoolChartData(r.Context(), address)
	return s.respond(w, entries, err)
}

func (s *Server) handleTokenPools(w http.ResponseWriter, r *http.Request) int {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return http.StatusBadRequest
	}
	pools, err := s.service.FetchPoolsForToken(r.Context(), address)
	return s.respond(w, pools, err)
}

func (s *Server) handleTokenChart(w http.ResponseWriter, r *http.Request) int {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return http.StatusBadRequest
	}
	entries, err := s.service.FetchTokenChartData(r.Context(), address)
	return s.respond(w, entries, err)
}

func (s *Server) handleProtocolChart(w http.ResponseWriter, r *http.Request) int {
	entries, err := s.service.FetchProtocolChartData(r.Context())
	return s.respond(w, entries, err)
}

func (s *Server) handleNativePrices(w http.ResponseWriter, r *http.Request) int {
	snap, err := s.service.CurrentNativePrices(r.Context())
	return s.respond(w, snap, err)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) int {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return http.StatusOK
}

func (s *Server) pathAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	address, err := info.ParseAddress(r.PathValue("address"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, failure{Error: true})
		return "", false
	}
	return address, true
}

func (s *Server) respond(w http.ResponseWriter, data interface{}, err error) int {
	if err != nil {
		code := http.StatusBadGateway
		if !errors.Is(err, info.ErrRequestFailed) {
			code = http.StatusInternalServerError
			s.logger.Error("unexpected service error", zap.Error(err))
		}
		s.writeJSON(w, code, failure{Error: true})
		return code
	}
	s.writeJSON(w, http.StatusOK, envelope{Data: data})
	return http.StatusOK
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("encode response", zap.Error(err))
	}
}
