// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type ServerConfig struct {
	ReadTimeout       time.Duration `json:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout"`
	AllowedOrigins    []string      `json:"allowedOrigins"`
}

func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ShutdownTimeout:   10 * time.Second,
		AllowedOrigins:    []string{"*"},
	}
}

// Route binds [Handler] to the exact path [Endpoint].
type Route struct {
	Endpoint string
	Handler  http.Handler
}

// Server serves a fixed set of routes behind CORS and gzip.
type Server struct {
	log      logging.Logger
	cfg      ServerConfig
	listener net.Listener
	srv      *http.Server
}

func NewServer(log logging.Logger, listener net.Listener, cfg ServerConfig, routes ...Route) *Server {
	router := mux.NewRouter()
	for _, r := range routes {
		router.Handle(r.Endpoint, r.Handler)
		log.Info("added route",
			zap.String("endpoint", r.Endpoint),
			zap.Stringer("addr", listener.Addr()),
		)
	}
	handler := gziphandler.GzipHandler(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(router))

	return &Server{
		log:      log,
		cfg:      cfg,
		listener: listener,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
}

func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Dispatch blocks until the server is shut down.
func (s *Server) Dispatch() error {
	if err := s.srv.Serve(s.listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains open requests for up to ShutdownTimeout and then closes
// whatever is left.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	if err != nil {
		s.log.Warn("forcing server close", zap.Error(err))
		_ = s.srv.Close()
	}
	return err
}
