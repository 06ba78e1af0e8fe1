// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package trace builds the span tracer shared by the host, the runtime and
// the JSON-RPC service. Spans are exported to a zipkin collector when
// enabled.
package trace

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	DefaultEndpoint = "http://localhost:9411/api/v2/spans"

	exportTimeout = 10 * time.Second
	// must exceed exportTimeout so a pending batch can flush
	shutdownTimeout = 15 * time.Second
)

var (
	_ trace.Tracer = (*exporter)(nil)
	_ trace.Tracer = discard{}
)

type Config struct {
	Enabled bool `json:"enabled"`

	// Fraction of traces sampled, clamped to [0, 1].
	TraceSampleRate float64 `json:"traceSampleRate"`

	// Zipkin collector URL. Empty uses DefaultEndpoint.
	Endpoint string `json:"endpoint"`

	AppName string `json:"appName"`
	Agent   string `json:"agent"`
	Version string `json:"version"`
}

func (c *Config) endpoint() string {
	if c.Endpoint == "" {
		return DefaultEndpoint
	}
	return c.Endpoint
}

func (c *Config) sampler() sdktrace.Sampler {
	switch {
	case c.TraceSampleRate >= 1:
		return sdktrace.AlwaysSample()
	case c.TraceSampleRate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(c.TraceSampleRate)
	}
}

// New returns a zipkin-backed tracer, or a tracer that drops every span
// when [config] is disabled.
func New(config *Config) (trace.Tracer, error) {
	if !config.Enabled {
		return discard{Tracer: oteltrace.NewNoopTracerProvider().Tracer(config.AppName)}, nil
	}

	zk, err := zipkin.New(config.endpoint())
	if err != nil {
		return nil, err
	}
	service := config.Agent
	if service == "" {
		service = config.AppName
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(zk, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithSampler(config.sampler()),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(service),
			attribute.String("version", config.Version),
		)),
	)
	return &exporter{
		Tracer:   provider.Tracer(config.AppName),
		provider: provider,
	}, nil
}

// Noop returns a tracer that records nothing.
func Noop() trace.Tracer {
	return discard{Tracer: oteltrace.NewNoopTracerProvider().Tracer("")}
}

type exporter struct {
	oteltrace.Tracer
	provider *sdktrace.TracerProvider
}

func (e *exporter) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.provider.Shutdown(ctx)
}

type discard struct {
	oteltrace.Tracer
}

func (discard) Close() error { return nil }
