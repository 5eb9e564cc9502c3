// internal/api/handlers.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ---- register endpoints (raw unsigned values) ----

type readRequest struct {
	Address  *int `json:"address"`
	Quantity *int `json:"quantity"`
}

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	var req readRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Address == nil || req.Quantity == nil {
		s.writeError(w, http.StatusBadRequest, "missing address or quantity parameter")
		return
	}

	addr, qty := *req.Address, *req.Quantity
	if addr < 0 || addr > 65535 {
		s.writeError(w, http.StatusBadRequest, "address must be 0-65535")
		return
	}
	if qty < 1 || qty > s.limits.MaxQuantity {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("quantity must be 1-%d", s.limits.MaxQuantity))
		return
	}
	if addr+qty-1 > 65535 {
		s.writeError(w, http.StatusBadRequest, "range exceeds address space")
		return
	}

	regs := s.gw.ReadRegisters(uint16(addr), qty)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"address":   addr,
		"quantity":  qty,
		"registers": regs,
	})
}

type writeRequest struct {
	Address *int `json:"address"`
	Value   *int `json:"value"`
}

func (s *Server) handleSendData(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Address == nil || req.Value == nil {
		s.writeError(w, http.StatusBadRequest, "missing address or value parameter")
		return
	}

	addr, value := *req.Address, *req.Value
	if addr < 0 || addr > 65535 {
		s.writeError(w, http.StatusBadRequest, "address must be 0-65535")
		return
	}
	if value < 0 || value > 65535 {
		s.writeError(w, http.StatusBadRequest, "value must be 0-65535")
		return
	}

	// Acknowledgement only: the task is queued, not confirmed. A read of
	// the same address keeps returning the old cached value until a poll
	// observes the change.
	s.gw.WriteRegister(uint16(addr), uint16(value))

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"address": addr,
		"value":   value,
		"queued":  true,
	})
}

// ---- status ----

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.gw.Snapshot()

	connState := "disconnected"
	if snap.PortOpen {
		connState = "connected"
	}

	body := map[string]any{
		"status":                "success",
		"modbus_status":         snap.Link.String(),
		"connection_state":      connState,
		"avg_response_time_ms":  snap.AvgLatencyMs,
		"last_10_packets_count": snap.LatencyCount,
		"error_logs":            snap.ErrorLogs,
		"error_log_count":       len(snap.ErrorLogs),
		"queue_depth":           snap.QueueDepth,
		"cache_size":            snap.CacheSize,
		"timestamp":             time.Now().Format(time.RFC3339),
	}
	if snap.Window != nil {
		body["polling_window"] = map[string]uint16{
			"start": snap.Window.Start,
			"end":   snap.Window.End,
		}
	} else {
		body["polling_window"] = nil
	}

	s.writeJSON(w, http.StatusOK, body)
}

// ---- channel endpoints (signed 16-bit view) ----

// handleGetChannels reads the channel block from cache and reports each
// register as a signed two's-complement value.
func (s *Server) handleGetChannels(w http.ResponseWriter, r *http.Request) {
	regs := s.gw.ReadRegisters(0, s.limits.ChannelCount)

	body := make(map[string]int, len(regs))
	for i, v := range regs {
		body[fmt.Sprintf("chanel_%d", i)] = toSigned(v)
	}
	s.writeJSON(w, http.StatusOK, body)
}

type channelRequest struct {
	Chanel *int `json:"chanel"`
	Data   *int `json:"data"`
}

func (s *Server) handleSetChannel(w http.ResponseWriter, r *http.Request) {
	var req channelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Chanel == nil || req.Data == nil {
		s.writeError(w, http.StatusBadRequest, "missing 'chanel' or 'data' field")
		return
	}
	s.setChannel(w, *req.Chanel, *req.Data)
}

func (s *Server) handleSetChannelURL(w http.ResponseWriter, r *http.Request) {
	channel, err := strconv.Atoi(r.PathValue("chanel"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "chanel must be an integer")
		return
	}
	data, err := strconv.Atoi(r.PathValue("data"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "data must be an integer")
		return
	}
	s.setChannel(w, channel, data)
}

// setChannel validates against the configured channel limits and queues
// the write. The signed value is carried on the wire as its unsigned
// two's-complement image.
func (s *Server) setChannel(w http.ResponseWriter, channel, data int) {
	if channel < 0 || channel >= s.limits.ChannelCount {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("channel must be between 0 and %d", s.limits.ChannelCount-1))
		return
	}
	if data < s.limits.ChannelMin || data > s.limits.ChannelMax {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("data must be between %d and %d", s.limits.ChannelMin, s.limits.ChannelMax))
		return
	}

	s.gw.WriteRegister(uint16(channel), toUnsigned(data))

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("Channel %d write request queued", channel),
		"chanel":  channel,
		"data":    data,
	})
}

// ---- system data ----

func (s *Server) handleSystemData(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.sys.Snapshot())
}
