// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/stretchr/testify/require"
)

func TestMemoryDatabaseApply(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := NewMemoryDatabase()

	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{
		"a": maybe.Some([]byte("1")),
		"b": maybe.Some([]byte("2")),
	}))
	v, err := db.GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)

	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{
		"a": maybe.Nothing[[]byte](),
	}))
	_, err = db.GetValue(ctx, []byte("a"))
	require.ErrorIs(err, database.ErrNotFound)

	v, err = db.GetValue(ctx, []byte("b"))
	require.NoError(err)
	require.Equal([]byte("2"), v)
	require.NoError(db.Close())
}

type mapState map[string][]byte

func (m mapState) GetValue(_ context.Context, key []byte) ([]byte, error) {
	v, ok := m[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (m mapState) Insert(_ context.Context, key []byte, value []byte) error {
	m[string(key)] = value
	return nil
}

func (m mapState) Remove(_ context.Context, key []byte) error {
	delete(m, string(key))
	return nil
}

func TestPrefixed(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	inner := mapState{}

	a := NewPrefixedMutable([]byte{0x1}, inner)
	b := NewPrefixedMutable([]byte{0x2}, inner)
	require.NoError(a.Insert(ctx, []byte("k"), []byte("a")))
	require.NoError(b.Insert(ctx, []byte("k"), []byte("b")))

	v, err := a.GetValue(ctx, []byte("k"))
	require.NoError(err)
	require.Equal([]byte("a"), v)
	require.Equal([]byte("b"), inner["\x02k"])

	ro := NewPrefixedImmutable([]byte{0x2}, inner)
	v, err = ro.GetValue(ctx, []byte("k"))
	require.NoError(err)
	require.Equal([]byte("b"), v)

	require.NoError(a.Remove(ctx, []byte("k")))
	_, err = a.GetValue(ctx, []byte("k"))
	require.ErrorIs(err, database.ErrNotFound)
}
