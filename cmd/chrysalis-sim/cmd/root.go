// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrysalis-labs/chrysalis/config"
	"github.com/chrysalis-labs/chrysalis/contracts/chrysalis"
	"github.com/chrysalis-labs/chrysalis/contracts/token"
	"github.com/chrysalis-labs/chrysalis/host"
	"github.com/chrysalis-labs/chrysalis/pebble"
	"github.com/chrysalis-labs/chrysalis/runtime"
	"github.com/chrysalis-labs/chrysalis/state"
	"github.com/chrysalis-labs/chrysalis/utils"

	ctrace "github.com/chrysalis-labs/chrysalis/trace"
)

const (
	dbFolder   = "db"
	logsFolder = "logs"
	keysFolder = "keys"
)

type simulator struct {
	configPath string
	dataDir    string
	logLevel   string
	inMemory   bool
	console    bool

	cfg    *config.Config
	log    logging.Logger
	tracer trace.Tracer
	keys   *keyStore
}

func NewRootCmd() *cobra.Command {
	s := &simulator{}
	cmd := &cobra.Command{
		Use:   "chrysalis-sim",
		Short: "Chrysalis staking ledger simulator",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			s.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cobra.EnablePrefixMatching = true
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	flags := cmd.PersistentFlags()
	flags.StringVar(&s.configPath, "config", "", "path to a JSON config file")
	flags.StringVar(&s.dataDir, "data-dir", "", "directory holding the ledger, keys and logs")
	flags.StringVar(&s.logLevel, "log-level", "", "log level")
	flags.BoolVar(&s.inMemory, "in-memory", false, "keep the ledger in memory")
	flags.BoolVar(&s.console, "log-console", false, "mirror logs to stderr")

	cmd.AddCommand(
		newRunCmd(s),
		newServeCmd(s),
		newKeyCmd(s),
	)
	return cmd
}

// init loads the config and applies flag overrides.
func (s *simulator) init(cmd *cobra.Command) error {
	var b []byte
	if len(s.configPath) > 0 {
		var err error
		b, err = os.ReadFile(s.configPath)
		if err != nil {
			return err
		}
	}
	cfg, err := config.New(b)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = s.dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = s.logLevel
	}
	if flags.Changed("in-memory") {
		cfg.InMemory = s.inMemory
	}
	if err := cfg.Verify(); err != nil {
		return err
	}
	s.cfg = cfg

	logDir, err := utils.InitSubDirectory(cfg.DataDir, logsFolder)
	if err != nil {
		return err
	}
	s.log = newLogger(logConfig{
		Name:      cmd.Name(),
		Directory: logDir,
		Level:     cfg.GetLogLevel(),
		Console:   s.console,
	})
	s.tracer, err = ctrace.New(cfg.GetTraceConfig())
	if err != nil {
		return err
	}
	keyDir, err := utils.InitSubDirectory(cfg.DataDir, keysFolder)
	if err != nil {
		return err
	}
	s.keys = newKeyStore(keyDir)

	s.log.Info("simulator initialized",
		zap.String("dataDir", cfg.DataDir),
		zap.Bool("inMemory", cfg.InMemory),
		zap.String("logLevel", cfg.LogLevel),
	)
	return nil
}

func (s *simulator) close() {
	if s.tracer != nil {
		if err := s.tracer.Close(); err != nil {
			s.log.Warn("failed to close tracer", zap.Error(err))
		}
	}
	if s.log != nil {
		s.log.Stop()
	}
}

// newHost opens the configured ledger. The returned gatherer exposes the
// store's own metrics when it has any.
func (s *simulator) newHost(ctx context.Context, registerer prometheus.Registerer, clock host.Clock) (*host.Host, prometheus.Gatherer, error) {
	rt, err := runtime.NewRuntime(s.cfg.Runtime, s.log, s.tracer, registerer)
	if err != nil {
		return nil, nil, err
	}
	if err := errors.Join(
		rt.Register(token.New()),
		rt.Register(chrysalis.New()),
	); err != nil {
		return nil, nil, err
	}

	var (
		db       state.Database
		gatherer prometheus.Gatherer = prometheus.NewRegistry()
	)
	if s.cfg.InMemory {
		db = state.NewMemoryDatabase()
	} else {
		dbPath, err := utils.InitSubDirectory(s.cfg.DataDir, dbFolder)
		if err != nil {
			return nil, nil, err
		}
		pdb, registry, err := pebble.New(dbPath, s.cfg.Pebble)
		if err != nil {
			return nil, nil, err
		}
		db, gatherer = pdb, registry
	}

	h, err := host.New(ctx, s.log, s.tracer, registerer, rt, db, clock)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return h, gatherer, nil
}
