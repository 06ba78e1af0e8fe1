// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chrysalis-labs/chrysalis/config"
	"github.com/chrysalis-labs/chrysalis/host"
	"github.com/chrysalis-labs/chrysalis/rpc"
)

const metricsEndpoint = "/metrics"

func newServeCmd(s *simulator) *cobra.Command {
	var planPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over JSON-RPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.serve(cmd, planPath)
		},
	}
	cmd.Flags().StringVar(&planPath, "plan", "", "plan to run before serving, requires a manual clock")
	return cmd
}

func (s *simulator) serve(cmd *cobra.Command, planPath string) error {
	ctx := cmd.Context()

	var (
		clock  host.Clock = host.SystemClock{}
		manual *host.ManualClock
	)
	if s.cfg.Clock == config.ManualClock {
		manual = host.NewManualClock(s.cfg.StartTime)
		clock = manual
	}

	registry := prometheus.NewRegistry()
	h, storeMetrics, err := s.newHost(ctx, registry, clock)
	if err != nil {
		return err
	}
	defer h.Close()

	if len(planPath) > 0 {
		if manual == nil {
			return ErrManualClockRequired
		}
		plan, err := readPlan(cmd.InOrStdin(), planPath)
		if err != nil {
			return err
		}
		if err := newPlanRunner(s.log, h, manual, s.keys, cmd.OutOrStdout()).Run(ctx, plan); err != nil {
			return err
		}
	}

	handler, err := rpc.NewHandler(s.log, s.tracer, h)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", s.cfg.RPCAddr)
	if err != nil {
		return err
	}
	server := rpc.NewServer(s.log, listener, s.cfg.Server, rpc.Route{
		Endpoint: rpc.JSONRPCEndpoint,
		Handler:  handler,
	})

	metricsListener, err := net.Listen("tcp", s.cfg.MetricsAddr)
	if err != nil {
		_ = listener.Close()
		return err
	}
	metricsServer := rpc.NewServer(s.log, metricsListener, s.cfg.Server, rpc.Route{
		Endpoint: metricsEndpoint,
		Handler:  promhttp.HandlerFor(prometheus.Gatherers{registry, storeMetrics}, promhttp.HandlerOpts{}),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("serving json-rpc", zap.Stringer("addr", server.Addr()))
		return server.Dispatch()
	})
	g.Go(func() error {
		s.log.Info("serving metrics", zap.Stringer("addr", metricsServer.Addr()))
		return metricsServer.Dispatch()
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down")
		return errors.Join(server.Shutdown(), metricsServer.Shutdown())
	})
	return g.Wait()
}
