// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"

	"github.com/chrysalis-labs/chrysalis/state"
)

var _ state.Mutable = (*readOnlyState)(nil)

type readOnlyState struct {
	inner state.Immutable
}

func (r readOnlyState) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	return r.inner.GetValue(ctx, key)
}

func (readOnlyState) Insert(context.Context, []byte, []byte) error {
	return ErrReadOnly
}

func (readOnlyState) Remove(context.Context, []byte) error {
	return ErrReadOnly
}
