// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "context"

var (
	_ Immutable = (*prefixedImmutable)(nil)
	_ Mutable   = (*prefixedMutable)(nil)
)

// PrefixKey returns [prefix] || [key] in a new slice.
func PrefixKey(prefix []byte, key []byte) (k []byte) {
	k = make([]byte, len(prefix)+len(key))
	copy(k, prefix)
	copy(k[len(prefix):], key)
	return
}

type prefixedImmutable struct {
	inner  Immutable
	prefix []byte
}

// NewPrefixedImmutable scopes every read of [inner] under [prefix].
func NewPrefixedImmutable(prefix []byte, inner Immutable) Immutable {
	return &prefixedImmutable{inner: inner, prefix: prefix}
}

func (s *prefixedImmutable) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	return s.inner.GetValue(ctx, PrefixKey(s.prefix, key))
}

type prefixedMutable struct {
	inner  Mutable
	prefix []byte
}

// NewPrefixedMutable scopes every read and write of [inner] under [prefix].
// [prefix] must be unique so the resulting state space stays isolated from
// other state spaces in [inner].
func NewPrefixedMutable(prefix []byte, inner Mutable) Mutable {
	return &prefixedMutable{inner: inner, prefix: prefix}
}

func (s *prefixedMutable) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	return s.inner.GetValue(ctx, PrefixKey(s.prefix, key))
}

func (s *prefixedMutable) Insert(ctx context.Context, key []byte, value []byte) error {
	return s.inner.Insert(ctx, PrefixKey(s.prefix, key), value)
}

func (s *prefixedMutable) Remove(ctx context.Context, key []byte) error {
	return s.inner.Remove(ctx, PrefixKey(s.prefix, key))
}
