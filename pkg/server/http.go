package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/David200308/crypto-price-mcp-server/pkg/logging"
	"github.com/David200308/crypto-price-mcp-server/pkg/metrics"
	"github.com/David200308/crypto-price-mcp-server/pkg/version"
)

// APIResponse is the JSON envelope used by every HTTP endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HTTP mirrors the MCP tools for plain HTTP clients.
type HTTP struct {
	addr   string
	engine Engine
	logger *logging.Logger
	router chi.Router
	server *http.Server
}

// NewHTTP builds the HTTP API server.
func NewHTTP(addr string, engine Engine, logger *logging.Logger) *HTTP {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	s := &HTTP{
		addr:   addr,
		engine: engine,
		logger: logger,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router, used directly in tests.
func (s *HTTP) Router() chi.Router {
	return s.router
}

// Start serves until Stop is called or the listener fails.
func (s *HTTP) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("Starting HTTP server", "addr", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *HTTP) Stop(ctx context.Context) error {
	if s.server != nil {
		s.logger.Info("Stopping HTTP server")
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *HTTP) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/price/{symbol}", s.handlePrice)
		r.Get("/prices", s.handlePrices)
		r.Get("/exchanges", s.handleExchanges)
	})

	return r
}

func (s *HTTP) handleHealth(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	defer func() {
		metrics.RecordHTTPRequest("/health", "200", time.Since(start))
	}()

	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]string{
			"status":  "ok",
			"version": version.Version,
		},
	})
}

func (s *HTTP) handlePrice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "200"
	defer func() {
		metrics.RecordHTTPRequest("/v1/price", status, time.Since(start))
	}()

	chainID, err := queryChainID(r)
	if err != nil {
		status = "400"
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.engine.GetPrice(r.Context(), chi.URLParam(r, "symbol"), chainID)
	if err != nil {
		status = "400"
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: res})
}

func (s *HTTP) handlePrices(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "200"
	defer func() {
		metrics.RecordHTTPRequest("/v1/prices", status, time.Since(start))
	}()

	symbols := splitSymbols(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		status = "400"
		s.writeError(w, http.StatusBadRequest, ErrBadSymbols.Error())
		return
	}
	chainID, err := queryChainID(r)
	if err != nil {
		status = "400"
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.engine.GetPrices(r.Context(), symbols, chainID)
	if err != nil {
		status = "400"
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: results})
}

func (s *HTTP) handleExchanges(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	defer func() {
		metrics.RecordHTTPRequest("/v1/exchanges", "200", time.Since(start))
	}()

	type exchangeInfo struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	adapters := s.engine.Adapters()
	list := make([]exchangeInfo, len(adapters))
	for i, a := range adapters {
		list[i] = exchangeInfo{Name: a.Name(), Category: string(a.Category())}
	}

	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: list})
}

func (s *HTTP) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (s *HTTP) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, APIResponse{Success: false, Error: msg})
}

// queryChainID parses the optional chain_id query parameter.
func queryChainID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("chain_id")
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadChainID, raw)
	}
	return id, nil
}

// splitSymbols parses the comma-separated symbols query parameter,
// dropping empty elements.
func splitSymbols(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
