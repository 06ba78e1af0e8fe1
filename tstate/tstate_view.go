// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/chrysalis-labs/chrysalis/state"
)

const journalSize = 8

var _ state.Mutable = (*TStateView)(nil)

// undo restores one key to what the view held before a write. [pending]
// is false when the view had not touched the key yet.
type undo struct {
	key     string
	prev    maybe.Maybe[[]byte]
	pending bool
}

// TStateView is the working set of a single transaction. Every write is
// journaled so a call can roll back to any earlier OpIndex.
type TStateView struct {
	ts        *TState
	pending   map[string]maybe.Maybe[[]byte]
	journal   []undo
	committed bool
}

func (ts *TState) NewView() *TStateView {
	return &TStateView{
		ts:      ts,
		pending: make(map[string]maybe.Maybe[[]byte]),
		journal: make([]undo, 0, journalSize),
	}
}

// OpIndex is the number of journaled writes. It is the restore point
// handed to Rollback.
func (v *TStateView) OpIndex() int {
	return len(v.journal)
}

// Rollback undoes every write made after [restorePoint], newest first.
func (v *TStateView) Rollback(_ context.Context, restorePoint int) {
	for i := len(v.journal) - 1; i >= restorePoint; i-- {
		u := v.journal[i]
		if u.pending {
			v.pending[u.key] = u.prev
		} else {
			delete(v.pending, u.key)
		}
	}
	v.journal = v.journal[:restorePoint]
}

// GetValue reads [key] through the view, the parent [TState] and then the
// base database. A missing key returns [database.ErrNotFound].
func (v *TStateView) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	value, exists, err := v.read(ctx, string(key))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrNotFound
	}
	return value, nil
}

func (v *TStateView) read(ctx context.Context, key string) ([]byte, bool, error) {
	if m, ok := v.pending[key]; ok {
		return m.Value(), m.HasValue(), nil
	}
	if value, changed, exists := v.ts.getChangedValue(ctx, key); changed {
		return value, exists, nil
	}
	return v.ts.getBaseValue(ctx, key)
}

func (v *TStateView) write(key string, m maybe.Maybe[[]byte]) {
	prev, ok := v.pending[key]
	v.journal = append(v.journal, undo{key: key, prev: prev, pending: ok})
	v.pending[key] = m
}

// Insert sets [key] to [value]. The view takes ownership of [value].
func (v *TStateView) Insert(_ context.Context, key []byte, value []byte) error {
	if v.committed {
		return ErrViewCommitted
	}
	v.write(string(key), maybe.Some(value))
	return nil
}

// Remove deletes [key]. Removing a missing key is a no-op.
func (v *TStateView) Remove(ctx context.Context, key []byte) error {
	if v.committed {
		return ErrViewCommitted
	}
	k := string(key)
	_, exists, err := v.read(ctx, k)
	if err != nil || !exists {
		return err
	}
	v.write(k, maybe.Nothing[[]byte]())
	return nil
}

func (v *TStateView) PendingChanges() int {
	return len(v.pending)
}

// Commit moves the view's changes into the parent [TState]. The view cannot
// be written to afterwards.
func (v *TStateView) Commit() {
	v.ts.l.Lock()
	defer v.ts.l.Unlock()

	for k, m := range v.pending {
		v.ts.changedKeys[k] = m
	}
	v.ts.ops += len(v.journal)
	v.committed = true
}
