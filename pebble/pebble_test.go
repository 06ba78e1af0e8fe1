// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/cockroachdb/pebble"
	"github.com/stretchr/testify/require"
)

func randBytes() []byte {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

func TestApplyAndReopen(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	db, registry, err := New(dir, NewDefaultConfig())
	require.NoError(err)
	require.NotNil(registry)

	key := randBytes()
	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{
		string(key): maybe.Some([]byte("value")),
		"gone":      maybe.Some([]byte("soon")),
	}))
	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{
		"gone": maybe.Nothing[[]byte](),
	}))
	require.NoError(db.Close())

	db, _, err = New(dir, NewDefaultConfig())
	require.NoError(err)
	v, err := db.GetValue(ctx, key)
	require.NoError(err)
	require.Equal([]byte("value"), v)
	_, err = db.GetValue(ctx, []byte("gone"))
	require.ErrorIs(err, database.ErrNotFound)
	require.NoError(db.Close())
}

func TestMetrics(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	db, registry, err := New(t.TempDir(), NewDefaultConfig())
	require.NoError(err)
	defer db.Close()

	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{"k": maybe.Some([]byte("v"))}))
	_, err = db.GetValue(ctx, []byte("k"))
	require.NoError(err)

	families, err := registry.Gather()
	require.NoError(err)
	byName := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			switch {
			case m.Counter != nil:
				byName[f.GetName()] = m.Counter.GetValue()
			case m.Summary != nil:
				byName[f.GetName()] = float64(m.Summary.GetSampleCount())
			}
		}
	}
	require.Equal(1.0, byName["pebble_batch_writes"])
	require.Equal(1.0, byName["pebble_batch_latency"])
	require.Equal(1.0, byName["pebble_read_latency"])

	db.metrics.sample(&pebble.Metrics{})
	require.Len(db.metrics.gauges, len(sampled))
}

func BenchmarkApply(b *testing.B) {
	ctx := context.Background()
	db, _, err := New(b.TempDir(), NewDefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	changes := make(map[string]maybe.Maybe[[]byte], 1_000)
	for i := 0; i < 1_000; i++ {
		changes[string(randBytes())] = maybe.Some(randBytes())
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := db.Apply(ctx, changes); err != nil {
			b.Fatal(err)
		}
	}
}
