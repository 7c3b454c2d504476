// Package server exposes the key manager over JSON-RPC.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/server/rpc"
	"github.com/arcana-network/keygen/telemetry"
)

type ServerService struct {
	server   *http.Server
	listener net.Listener
}

// New builds the HTTP server. /rpc serves the JSON-RPC methods; /metrics is
// added when gatherer is non-nil.
func New(addr string, managers *rpc.Managers, gatherer prometheus.Gatherer) (*ServerService, error) {
	router, err := setUpRouter(managers, gatherer)
	if err != nil {
		return nil, err
	}
	return &ServerService{
		server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
	}, nil
}

func (s *ServerService) Handler() http.Handler {
	return s.server.Handler
}

// Start binds the listen address and serves in the background. A bind failure
// is returned to the caller.
func (s *ServerService) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		common.LogOperationError(common.SERVER_COMPONENT_NAME, "Start", err)
		return err
	}
	s.listener = ln
	go startServer(s.server, ln)
	log.WithField("Address", ln.Addr().String()).Info("Server service running.")
	return nil
}

// Addr is the bound address once Start succeeded, the configured one before.
func (s *ServerService) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

func startServer(server *http.Server, ln net.Listener) {
	err := server.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		common.LogOperationError(common.SERVER_COMPONENT_NAME, "Serve", err)
	}
}

func (s *ServerService) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func setUpRouter(managers *rpc.Managers, gatherer prometheus.Gatherer) (http.Handler, error) {
	mr, err := rpc.SetUpJRPCHandler(managers)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter().StrictSlash(true)

	router.Handle("/rpc", parseBodyMiddleware(augmentRequestMiddleware(loggingMiddleware(mr))))

	if gatherer != nil {
		router.Handle("/metrics", telemetry.Handler(gatherer)).Methods(http.MethodGet)
	}

	handler := cors.Default().Handler(router)
	return handler, nil
}
