// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/maybe"
)

var _ Database = (*KVDatabase)(nil)

// KVDatabase adapts an avalanchego key/value database to [Database].
type KVDatabase struct {
	db database.Database
}

func NewKVDatabase(db database.Database) *KVDatabase {
	return &KVDatabase{db: db}
}

// NewMemoryDatabase returns a [Database] backed by memdb. Nothing is
// persisted when it is closed.
func NewMemoryDatabase() *KVDatabase {
	return NewKVDatabase(memdb.New())
}

func (d *KVDatabase) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return d.db.Get(key)
}

func (d *KVDatabase) Apply(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	batch := d.db.NewBatch()
	for k, v := range changes {
		if v.IsNothing() {
			if err := batch.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := batch.Put([]byte(k), v.Value()); err != nil {
			return err
		}
	}
	return batch.Write()
}

func (d *KVDatabase) Close() error {
	return d.db.Close()
}
