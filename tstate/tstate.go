// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"errors"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/chrysalis-labs/chrysalis/state"
)

// TState accumulates the changes of committed views on top of a read-only
// base. Nothing reaches the base until the caller applies [Export].
type TState struct {
	l    sync.RWMutex
	base state.Immutable

	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState reading through to [base].
func New(base state.Immutable) *TState {
	return &TState{
		base:        base,
		changedKeys: make(map[string]maybe.Maybe[[]byte]),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

func (ts *TState) getBaseValue(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := ts.base.GetValue(ctx, []byte(key))
	switch {
	case err == nil:
		return v, true, nil
	case errors.Is(err, database.ErrNotFound):
		return nil, false, nil
	default:
		return nil, false, err
	}
}

// OpIndex returns the number of operations committed into ts.
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// PendingChanges returns the number of keys changed in ts.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// Export returns every change committed into ts, ready for
// [state.Database.Apply]. ts must not be used afterwards.
func (ts *TState) Export(ctx context.Context, t trace.Tracer) map[string]maybe.Maybe[[]byte] {
	_, span := t.Start(ctx, "TState.Export")
	defer span.End()

	ts.l.Lock()
	defer ts.l.Unlock()

	changes := ts.changedKeys
	ts.changedKeys = nil
	return changes
}
