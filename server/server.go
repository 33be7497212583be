package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Hunter79-stack/opencrabs/a2a"
	"github.com/Hunter79-stack/opencrabs/logging"
)

const (
	defaultBind = "127.0.0.1"
	defaultPort = 18789

	shutdownGrace = 5 * time.Second
)

// Dispatcher routes a decoded JSON-RPC request to its method handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, req a2a.Request) a2a.Response
}

// Options configures the Gateway.
type Options struct {
	// Bind is the address to listen on. Defaults to 127.0.0.1.
	Bind string

	// Port is the port to listen on. Defaults to 18789.
	Port int

	// Card is the agent card served at /.well-known/agent.json. Defaults
	// to NewAgentCard(Bind, Port).
	Card *a2a.AgentCard

	// Version is reported by the health endpoint.
	Version string

	// Logger is the logger to use. Defaults to the package default logger.
	Logger logging.Logger
}

// Gateway is the A2A HTTP server. It serves agent card discovery, the
// JSON-RPC endpoint and a health probe, delegating method semantics to
// the Dispatcher.
type Gateway struct {
	dispatcher Dispatcher
	card       a2a.AgentCard
	version    string
	addr       string
	logger     logging.Logger
}

// New creates a Gateway around the given dispatcher.
func New(dispatcher Dispatcher, optFns ...func(o *Options)) *Gateway {
	opts := Options{
		Bind:    defaultBind,
		Port:    defaultPort,
		Version: "0.1.0",
		Logger:  logging.NewDefaultSlogLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	card := opts.Card
	if card == nil {
		c := NewAgentCard(opts.Bind, opts.Port, func(o *CardOptions) {
			o.Version = opts.Version
		})
		card = &c
	}

	return &Gateway{
		dispatcher: dispatcher,
		card:       *card,
		version:    opts.Version,
		addr:       fmt.Sprintf("%s:%d", opts.Bind, opts.Port),
		logger:     opts.Logger,
	}
}

// Addr returns the address the gateway listens on.
func (g *Gateway) Addr() string {
	return g.addr
}

// Routes returns the gateway's HTTP handler.
func (g *Gateway) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/agent.json", g.handleAgentCard)
	mux.HandleFunc("POST /a2a/v1", g.handleJSONRPC)
	mux.HandleFunc("GET /a2a/health", g.handleHealth)
	return mux
}

// Start listens on the configured address and serves until ctx is
// canceled, then shuts down gracefully.
func (g *Gateway) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", g.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", g.addr, err)
	}

	srv := &http.Server{
		Handler:     g.Routes(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.logger.Info("gateway starting",
		"addr", g.addr,
		"agentCard", fmt.Sprintf("http://%s/.well-known/agent.json", g.addr),
		"jsonrpc", fmt.Sprintf("http://%s/a2a/v1", g.addr),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown gateway: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve gateway: %w", err)
	}
}

func (g *Gateway) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	g.writeJSON(w, http.StatusOK, g.card)
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	g.writeJSON(w, http.StatusOK, map[string]string{
		"status":          "ok",
		"version":         g.version,
		"protocol":        "A2A",
		"protocolVersion": "1.0",
		"provider":        "OpenCrabs Community",
	})
}

// handleJSONRPC decodes the envelope, validates the protocol version and
// delegates to the dispatcher. JSON-RPC failures travel in the response
// body with HTTP 200; only undecodable bodies differ, and even those get
// a well-formed parse-error envelope.
func (g *Gateway) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var req a2a.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.writeJSON(w, http.StatusOK, a2a.NewErrorResponse(nil, a2a.ErrorCodeParseError, "invalid JSON payload"))
		return
	}

	if req.JSONRPC != a2a.Version {
		g.writeJSON(w, http.StatusOK, a2a.NewErrorResponse(req.ID, a2a.ErrorCodeInvalidRequest, "invalid JSON-RPC version, expected 2.0"))
		return
	}

	resp := g.dispatcher.Dispatch(r.Context(), req)
	g.writeJSON(w, http.StatusOK, resp)
}

func (g *Gateway) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.logger.Error("write response", "error", err)
	}
}
