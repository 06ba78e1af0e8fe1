// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/chrysalis-labs/chrysalis/consts"
	"github.com/chrysalis-labs/chrysalis/pebble"
	"github.com/chrysalis-labs/chrysalis/rpc"
	"github.com/chrysalis-labs/chrysalis/runtime"
	"github.com/chrysalis-labs/chrysalis/trace"
)

const (
	SystemClock = "system"
	ManualClock = "manual"

	defaultRPCAddr     = "127.0.0.1:9650"
	defaultMetricsAddr = "127.0.0.1:9651"
	defaultDataDir     = ".chrysalis"
)

type Config struct {
	LogLevel string `json:"logLevel"`
	// Directory holding the ledger and logs. Ignored for the ledger when
	// InMemory is set.
	DataDir  string `json:"dataDir"`
	InMemory bool   `json:"inMemory"`

	RPCAddr     string           `json:"rpcAddr"`
	MetricsAddr string           `json:"metricsAddr"`
	Server      rpc.ServerConfig `json:"server"`

	TraceConfig trace.Config   `json:"traceConfig"`
	Runtime     runtime.Config `json:"runtime"`
	Pebble      pebble.Config  `json:"pebble"`

	// Clock is [SystemClock] or [ManualClock]. A manual clock starts at
	// StartTime and only moves through simulator steps.
	Clock     string `json:"clock"`
	StartTime uint64 `json:"startTime"`
}

func NewDefault() *Config {
	return &Config{
		LogLevel:    logging.Info.String(),
		DataDir:     defaultDataDir,
		RPCAddr:     defaultRPCAddr,
		MetricsAddr: defaultMetricsAddr,
		Server:      rpc.NewDefaultServerConfig(),
		TraceConfig: trace.Config{
			Enabled:         false,
			TraceSampleRate: 1,
			Endpoint:        trace.DefaultEndpoint,
			AppName:         consts.Name,
		},
		Runtime: runtime.NewDefaultConfig(),
		Pebble:  pebble.NewDefaultConfig(),
		Clock:   SystemClock,
	}
}

// New parses [b] over the defaults. Empty input yields the defaults.
func New(b []byte) (*Config, error) {
	c := NewDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Verify() error {
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
	}
	if c.Clock != SystemClock && c.Clock != ManualClock {
		return fmt.Errorf("%w: %q", ErrInvalidClock, c.Clock)
	}
	if !c.InMemory && len(c.DataDir) == 0 {
		return ErrMissingDataDir
	}
	return nil
}

func (c *Config) GetLogLevel() logging.Level {
	// checked by Verify
	level, _ := logging.ToLevel(c.LogLevel)
	return level
}

func (c *Config) GetTraceConfig() *trace.Config {
	return &c.TraceConfig
}
