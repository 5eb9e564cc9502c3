// internal/api/api_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BKVdevi/halow-jet-webconsole/internal/status"
	"github.com/BKVdevi/halow-jet-webconsole/internal/sysinfo"
)

// ---- fakes ----

type touchCall struct {
	addr uint16
	qty  int
}

type writeCall struct {
	addr  uint16
	value uint16
}

type fakeGateway struct {
	regs    map[uint16]uint16
	touches []touchCall
	writes  []writeCall
	snap    status.Snapshot
}

func (f *fakeGateway) ReadRegisters(addr uint16, quantity int) []uint16 {
	f.touches = append(f.touches, touchCall{addr: addr, qty: quantity})
	out := make([]uint16, quantity)
	for i := range out {
		out[i] = f.regs[addr+uint16(i)]
	}
	return out
}

func (f *fakeGateway) WriteRegister(addr, value uint16) {
	f.writes = append(f.writes, writeCall{addr: addr, value: value})
}

func (f *fakeGateway) Snapshot() status.Snapshot { return f.snap }

type fakeSystem struct {
	snap sysinfo.Snapshot
}

func (f *fakeSystem) Snapshot() sysinfo.Snapshot { return f.snap }

func testServer(gw *fakeGateway) *httptest.Server {
	limits := Limits{
		MaxQuantity:  1000,
		ChannelCount: 16,
		ChannelMin:   -100,
		ChannelMax:   100,
	}
	mux := http.NewServeMux()
	New(gw, &fakeSystem{}, limits, nil).Register(mux)
	return httptest.NewServer(mux)
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

// ---- tests ----

func TestGetData_ServesFromCacheAndTouches(t *testing.T) {
	gw := &fakeGateway{regs: map[uint16]uint16{10: 1, 11: 2}}
	srv := testServer(gw)
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/get_data", `{"address":10,"quantity":2}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}

	regs := body["registers"].([]any)
	if len(regs) != 2 || regs[0].(float64) != 1 || regs[1].(float64) != 2 {
		t.Fatalf("registers = %v, want [1 2]", regs)
	}
	if len(gw.touches) != 1 || gw.touches[0] != (touchCall{addr: 10, qty: 2}) {
		t.Fatalf("touches = %v", gw.touches)
	}
}

func TestGetData_Validation(t *testing.T) {
	gw := &fakeGateway{}
	srv := testServer(gw)
	defer srv.Close()

	cases := []string{
		`{"quantity":2}`,                 // missing address
		`{"address":0}`,                  // missing quantity
		`{"address":0,"quantity":0}`,     // quantity too small
		`{"address":0,"quantity":1001}`,  // beyond configured limit
		`{"address":65535,"quantity":2}`, // overflows address space
		`{"address":-1,"quantity":1}`,    // negative address
		`not json`,                       // malformed body
	}
	for _, c := range cases {
		resp, _ := postJSON(t, srv.URL+"/get_data", c)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", c, resp.StatusCode)
		}
	}
	if len(gw.touches) != 0 {
		t.Fatalf("invalid requests touched the tracker: %v", gw.touches)
	}
}

func TestSendData_QueuesWrite(t *testing.T) {
	gw := &fakeGateway{}
	srv := testServer(gw)
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/send_data", `{"address":7,"value":65535}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if len(gw.writes) != 1 || gw.writes[0] != (writeCall{addr: 7, value: 65535}) {
		t.Fatalf("writes = %v", gw.writes)
	}

	if resp, _ := postJSON(t, srv.URL+"/send_data", `{"address":7,"value":65536}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatal("value 65536 accepted")
	}
}

func TestStatus_ReportsSnapshot(t *testing.T) {
	gw := &fakeGateway{
		snap: status.Snapshot{
			Link:         status.TransportError,
			PortOpen:     true,
			AvgLatencyMs: 12.5,
			LatencyCount: 10,
			ErrorLogs:    []string{"[ts] boom"},
			QueueDepth:   3,
			CacheSize:    8,
			Window:       &status.Window{Start: 0, End: 15},
		},
	}
	srv := testServer(gw)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	if body["modbus_status"] != "mb-offline" {
		t.Fatalf("modbus_status = %v", body["modbus_status"])
	}
	if body["connection_state"] != "connected" {
		t.Fatalf("connection_state = %v", body["connection_state"])
	}
	if body["error_log_count"].(float64) != 1 {
		t.Fatalf("error_log_count = %v", body["error_log_count"])
	}
	if body["queue_depth"].(float64) != 3 {
		t.Fatalf("queue_depth = %v", body["queue_depth"])
	}
	win := body["polling_window"].(map[string]any)
	if win["start"].(float64) != 0 || win["end"].(float64) != 15 {
		t.Fatalf("polling_window = %v", win)
	}
}

func TestChannels_SignedMapping(t *testing.T) {
	// 0xFF9C is -100 in two's complement.
	gw := &fakeGateway{regs: map[uint16]uint16{0: 0xFF9C, 1: 100}}
	srv := testServer(gw)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/get_chanel")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["chanel_0"] != -100 {
		t.Fatalf("chanel_0 = %v, want -100", body["chanel_0"])
	}
	if body["chanel_1"] != 100 {
		t.Fatalf("chanel_1 = %v, want 100", body["chanel_1"])
	}
	if len(body) != 16 {
		t.Fatalf("reported %d channels, want 16", len(body))
	}
}

func TestSetChannel_NegativeValueEncoded(t *testing.T) {
	gw := &fakeGateway{}
	srv := testServer(gw)
	defer srv.Close()

	resp, _ := postJSON(t, srv.URL+"/set_chanel", `{"chanel":3,"data":-100}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(gw.writes) != 1 || gw.writes[0] != (writeCall{addr: 3, value: 0xFF9C}) {
		t.Fatalf("writes = %v, want addr=3 value=0xFF9C", gw.writes)
	}
}

func TestSetChannel_Limits(t *testing.T) {
	gw := &fakeGateway{}
	srv := testServer(gw)
	defer srv.Close()

	for _, c := range []string{
		`{"chanel":16,"data":0}`,
		`{"chanel":-1,"data":0}`,
		`{"chanel":0,"data":101}`,
		`{"chanel":0,"data":-101}`,
	} {
		if resp, _ := postJSON(t, srv.URL+"/set_chanel", c); resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q accepted", c)
		}
	}
	if len(gw.writes) != 0 {
		t.Fatalf("out-of-range requests queued writes: %v", gw.writes)
	}
}

func TestSetChannel_URLVariant(t *testing.T) {
	gw := &fakeGateway{}
	srv := testServer(gw)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/set_chanel/5/42")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(gw.writes) != 1 || gw.writes[0] != (writeCall{addr: 5, value: 42}) {
		t.Fatalf("writes = %v", gw.writes)
	}
}

func TestRoot_SystemData(t *testing.T) {
	gw := &fakeGateway{}
	limits := Limits{MaxQuantity: 10, ChannelCount: 1, ChannelMin: -1, ChannelMax: 1}
	sys := &fakeSystem{snap: sysinfo.Snapshot{CPUPercent: 42.5, LastUpdate: "12:00:00"}}

	mux := http.NewServeMux()
	New(gw, sys, limits, nil).Register(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["cpu_percent"].(float64) != 42.5 {
		t.Fatalf("cpu_percent = %v", body["cpu_percent"])
	}
}
