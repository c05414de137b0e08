// Package sim implements a firmware simulator: the GL.iNet JSON-RPC
// convention served over HTTP, backed by a scenario that tests and
// local development can shape.
package sim

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glinet-go/glinet/internal/logger"
	"github.com/glinet-go/glinet/rpc"
)

const challengeSalt = "bq2j4p8g"

// JSON-RPC protocol codes, distinct from the firmware error table.
const (
	codeParseError    = -32700
	codeInvalidParams = -32602
)

// Options tunes the simulator.
type Options struct {
	Logger      logger.Logger
	Jitter      bool
	Seed        int64
	MetricsPath string
}

type handlerFunc func(args map[string]interface{}) (interface{}, *rpc.RPCError)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// rpcResponse carries result pre-marshalled so that empty lists
// survive; omitempty on interface{} would drop the "[]" the ping and
// tailscale contracts rely on.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpc.RPCError   `json:"error,omitempty"`
}

// Server serves the JSON-RPC surface of a simulated router: challenge
// and login (a uuid sid, no hash verification) plus namespaced calls
// dispatched against the scenario.
type Server struct {
	scenario *Scenario
	log      logger.Logger
	jitter   bool

	rngMu sync.Mutex
	rng   *rand.Rand

	sessionsMu sync.Mutex
	sessions   map[string]time.Time

	registry *prometheus.Registry
	requests *prometheus.CounterVec

	dispatch map[string]handlerFunc
	failures map[string]Failure
	handler  http.Handler
}

// New builds a simulator around scenario.
func New(scenario *Scenario, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.Default
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Server{
		scenario: scenario,
		log:      opts.Logger,
		jitter:   opts.Jitter,
		rng:      rand.New(rand.NewSource(seed)),
		sessions: make(map[string]time.Time),
		registry: prometheus.NewRegistry(),
		failures: make(map[string]Failure),
	}

	s.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glinetsim",
			Name:      "rpc_requests_total",
			Help:      "RPC requests served, by method and outcome",
		},
		[]string{"method", "outcome"},
	)
	s.registry.MustRegister(s.requests, collectors.NewGoCollector())

	for _, failure := range scenario.Failures {
		s.failures[failure.Namespace+"."+failure.Method] = failure
	}
	s.initializeDispatch()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/rpc", s.handleRPC)
	r.Method(http.MethodGet, opts.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.handler = r

	return s
}

// Handler returns the HTTP surface: POST /rpc plus the metrics
// endpoint.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) initializeDispatch() {
	s.dispatch = map[string]handlerFunc{
		"system.get_info":               s.systemInfo,
		"system.get_status":             s.systemStatus,
		"system.get_load":               s.systemLoad,
		"system.reboot":                 s.reboot,
		"kmwan.get_config":              s.mwanConfig,
		"kmwan.get_status":              s.mwanStatus,
		"modem.get_status":              s.modemStatus,
		"modem.get_info":                s.modemInfo,
		"modem.get_cells_info":          s.modemCells,
		"macclone.get_mac":              s.macInfo,
		"clients.get_list":              s.clientList,
		"lan.get_static_bind_list":      s.staticLeases,
		"wifi.get_config":               s.wifiConfig,
		"diag.ping":                     s.ping,
		"edgerouter.get_status":         s.internetStatus,
		"tailscale.get_status":          s.tailscaleStatus,
		"wg-client.get_status":          s.wireguardStatus,
		"wg-client.get_all_config_list": s.wireguardConfigList,
	}
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.count("invalid", "error")
		s.writeError(w, nil, rpc.NewRPCError(codeParseError, "Parse error"))
		return
	}

	switch req.Method {
	case "challenge":
		s.count("challenge", "ok")
		s.writeResult(w, req.ID, map[string]interface{}{
			"alg":   1,
			"salt":  challengeSalt,
			"nonce": s.nonce(),
		})
	case "login":
		sid := uuid.NewString()
		s.addSession(sid)
		s.count("login", "ok")
		s.log.Infof("session %s opened", sid)
		s.writeResult(w, req.ID, map[string]interface{}{"sid": sid})
	case "call":
		s.handleCall(w, req)
	default:
		s.count(req.Method, "error")
		s.writeError(w, req.ID, rpc.NewRPCError(rpc.CodeMethodNotFound, ""))
	}
}

func (s *Server) handleCall(w http.ResponseWriter, req rpcRequest) {
	var params []json.RawMessage
	if err := json.Unmarshal(req.Params, &params); err != nil || len(params) < 3 {
		s.count("call", "error")
		s.writeError(w, req.ID, rpc.NewRPCError(codeInvalidParams, "Invalid params"))
		return
	}

	var sid, namespace, method string
	if json.Unmarshal(params[0], &sid) != nil ||
		json.Unmarshal(params[1], &namespace) != nil ||
		json.Unmarshal(params[2], &method) != nil {
		s.count("call", "error")
		s.writeError(w, req.ID, rpc.NewRPCError(codeInvalidParams, "Invalid params"))
		return
	}
	var args map[string]interface{}
	if len(params) > 3 {
		_ = json.Unmarshal(params[3], &args)
	}

	key := namespace + "." + method
	s.log.Debugf("call %s", key)

	if !s.sessionActive(sid) {
		s.count(key, "error")
		s.writeError(w, req.ID, rpc.NewRPCError(rpc.CodeInvalidSession, ""))
		return
	}
	if failure, ok := s.failures[key]; ok {
		s.count(key, "error")
		s.writeError(w, req.ID, rpc.NewRPCError(failure.Code, failure.Message))
		return
	}

	handler, ok := s.dispatch[key]
	if !ok {
		s.count(key, "error")
		s.writeError(w, req.ID, rpc.NewRPCError(rpc.CodeMethodNotFound, ""))
		return
	}

	result, rpcErr := handler(args)
	if rpcErr != nil {
		s.count(key, "error")
		s.writeError(w, req.ID, rpcErr)
		return
	}
	s.count(key, "ok")
	s.writeResult(w, req.ID, result)
}

func (s *Server) addSession(sid string) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	s.sessions[sid] = time.Now()
}

func (s *Server) sessionActive(sid string) bool {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	_, ok := s.sessions[sid]
	return ok
}

func (s *Server) nonce() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return fmt.Sprintf("%08x", s.rng.Uint32())
}

func (s *Server) jitterInt(spread int) int {
	if !s.jitter || spread <= 0 {
		return 0
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(2*spread+1) - spread
}

func (s *Server) jitterFloat(spread float64) float64 {
	if !s.jitter {
		return 0
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return (s.rng.Float64()*2 - 1) * spread
}

func (s *Server) count(method, outcome string) {
	s.requests.WithLabelValues(method, outcome).Inc()
}

func (s *Server) writeResult(w http.ResponseWriter, id json.RawMessage, result interface{}) {
	raw, err := json.Marshal(result)
	if err != nil {
		s.log.Errorf("marshal result: %v", err)
		raw = json.RawMessage(`null`)
	}
	s.write(w, rpcResponse{JSONRPC: "2.0", ID: id, Result: raw})
}

func (s *Server) writeError(w http.ResponseWriter, id json.RawMessage, rpcErr *rpc.RPCError) {
	s.write(w, rpcResponse{JSONRPC: "2.0", ID: id, Error: rpcErr})
}

func (s *Server) write(w http.ResponseWriter, resp rpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Errorf("write response: %v", err)
	}
}
