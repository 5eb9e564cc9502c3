// internal/api/api.go

// Package api turns JSON requests into calls against the gateway. The
// handlers never block on hardware: reads come from the cache, writes
// only enqueue, status is assembled from in-memory state.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/BKVdevi/halow-jet-webconsole/internal/status"
	"github.com/BKVdevi/halow-jet-webconsole/internal/sysinfo"
)

// Gateway is the slice of the gateway the handlers use.
type Gateway interface {
	ReadRegisters(addr uint16, quantity int) []uint16
	WriteRegister(addr, value uint16)
	Snapshot() status.Snapshot
}

// SystemSource reports host health for the console root endpoint.
type SystemSource interface {
	Snapshot() sysinfo.Snapshot
}

// Limits are the per-endpoint validation bounds, injected from config
// rather than hard-coded in handlers.
type Limits struct {
	MaxQuantity  int
	ChannelCount int
	ChannelMin   int
	ChannelMax   int
}

// Server holds the handler dependencies.
type Server struct {
	gw     Gateway
	sys    SystemSource
	limits Limits
	logger *log.Logger
}

func New(gw Gateway, sys SystemSource, limits Limits, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{gw: gw, sys: sys, limits: limits, logger: logger}
}

// Register installs all routes on the mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /get_data", s.handleGetData)
	mux.HandleFunc("POST /send_data", s.handleSendData)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /get_chanel", s.handleGetChannels)
	mux.HandleFunc("POST /set_chanel", s.handleSetChannel)
	mux.HandleFunc("GET /set_chanel/{chanel}/{data}", s.handleSetChannelURL)
	mux.HandleFunc("GET /{$}", s.handleSystemData)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// ---- shared helpers ----

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("api: encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, map[string]string{
		"status":  "error",
		"message": msg,
	})
}

// Channel endpoints interpret register values as signed 16-bit two's
// complement; the raw register endpoints never do. The mapping is kept
// explicit here so no handler converts implicitly.

func toSigned(u uint16) int   { return int(int16(u)) }
func toUnsigned(v int) uint16 { return uint16(int16(v)) }
