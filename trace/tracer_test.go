// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{Enabled: false, AppName: "chrysalis"})
	require.NoError(err)
	_, span := tracer.Start(context.Background(), "test")
	require.False(span.SpanContext().IsValid())
	span.End()
	require.NoError(tracer.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 1,
		AppName:         "chrysalis",
		Agent:           "test",
	})
	require.NoError(err)
	_, span := tracer.Start(context.Background(), "test")
	require.True(span.SpanContext().IsValid())
	span.End()
	// No collector is listening; only shutdown is exercised.
	_ = tracer.Close()
}

func TestSampler(t *testing.T) {
	require := require.New(t)

	require.Equal(sdktrace.AlwaysSample().Description(), (&Config{TraceSampleRate: 2}).sampler().Description())
	require.Equal(sdktrace.NeverSample().Description(), (&Config{TraceSampleRate: -1}).sampler().Description())
	require.Equal(sdktrace.TraceIDRatioBased(0.5).Description(), (&Config{TraceSampleRate: 0.5}).sampler().Description())
	require.Equal(DefaultEndpoint, (&Config{}).endpoint())
}
