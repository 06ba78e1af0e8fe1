// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/chrysalis-labs/chrysalis/auth"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/runtime"
	"github.com/chrysalis-labs/chrysalis/state"
	"github.com/chrysalis-labs/chrysalis/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Receipt is the outcome of a committed transaction.
type Receipt struct {
	TxID      ids.ID          `json:"txId"`
	Height    uint64          `json:"height"`
	Timestamp uint64          `json:"timestamp"`
	Result    codec.Bytes     `json:"result"`
	Events    []runtime.Event `json:"events"`
}

// Host is a single-writer ledger. Each executed transaction gets its own
// height; a failed transaction commits nothing.
type Host struct {
	l sync.RWMutex

	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics

	rt    *runtime.Runtime
	db    state.Database
	clock Clock

	height    atomic.Uint64
	timestamp atomic.Uint64
}

// New resumes the ledger stored in [db].
func New(
	ctx context.Context,
	log logging.Logger,
	tracer trace.Tracer,
	registerer prometheus.Registerer,
	rt *runtime.Runtime,
	db state.Database,
	clock Clock,
) (*Host, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	h := &Host{
		log:     log,
		tracer:  tracer,
		metrics: m,
		rt:      rt,
		db:      db,
		clock:   clock,
	}
	height, err := loadUint64(ctx, db, heightKey)
	if err != nil {
		return nil, err
	}
	timestamp, err := loadUint64(ctx, db, timestampKey)
	if err != nil {
		return nil, err
	}
	h.height.Store(height)
	h.timestamp.Store(timestamp)
	log.Info("loaded ledger",
		zap.Uint64("height", height),
		zap.Uint64("timestamp", timestamp),
	)
	return h, nil
}

func loadUint64(ctx context.Context, db state.Immutable, key []byte) (uint64, error) {
	v, err := db.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return unpackUint64(v)
}

// Height is the number of committed transactions.
func (h *Host) Height() uint64 {
	return h.height.Load()
}

// Timestamp is the time of the last committed transaction.
func (h *Host) Timestamp() uint64 {
	return h.timestamp.Load()
}

func (h *Host) Runtime() *runtime.Runtime {
	return h.rt
}

// ContractOf returns the implementation deployed at [addr].
func (h *Host) ContractOf(ctx context.Context, addr codec.Address) (runtime.ContractID, error) {
	h.l.RLock()
	defer h.l.RUnlock()

	view := tstate.New(h.db).NewView()
	return h.rt.Manager(view).GetAccountContract(ctx, addr)
}

// Deploy creates an instance of [contractID] and persists it.
func (h *Host) Deploy(ctx context.Context, contractID runtime.ContractID, salt []byte) (codec.Address, error) {
	ctx, span := h.tracer.Start(ctx, "Host.Deploy")
	defer span.End()

	h.l.Lock()
	defer h.l.Unlock()

	ts := tstate.New(h.db)
	view := ts.NewView()
	addr, err := h.rt.Deploy(ctx, view, contractID, salt)
	if err != nil {
		return codec.EmptyAddress, err
	}
	view.Commit()
	if err := h.db.Apply(ctx, ts.Export(ctx, h.tracer)); err != nil {
		return codec.EmptyAddress, err
	}
	h.log.Info("deployed contract",
		zap.String("contractID", string(contractID)),
		zap.Stringer("address", addr),
	)
	return addr, nil
}

func (h *Host) reject(stage string, err error) error {
	h.metrics.txsRejected.WithLabelValues(stage).Inc()
	return err
}

// Execute runs [tx] against the ledger. Either every effect of the call is
// committed together with the new height or nothing is.
func (h *Host) Execute(ctx context.Context, tx *auth.Tx) (*Receipt, error) {
	ctx, span := h.tracer.Start(ctx, "Host.Execute", oteltrace.WithAttributes(
		attribute.String("contract", tx.Action.Contract.String()),
		attribute.String("function", tx.Action.Function),
	))
	defer span.End()

	txID, err := tx.ID()
	if err != nil {
		return nil, h.reject("decode", err)
	}
	signers, err := tx.Verify()
	if err != nil {
		return nil, h.reject("auth", err)
	}

	h.l.Lock()
	defer h.l.Unlock()

	now := h.clock.Now()
	if last := h.timestamp.Load(); now < last {
		return nil, h.reject("time", fmt.Errorf("%w: %d < %d", ErrTimestampRegression, now, last))
	}
	if tx.Expiry != 0 && tx.Expiry < now {
		return nil, h.reject("time", fmt.Errorf("%w: expiry=%d now=%d", ErrExpired, tx.Expiry, now))
	}
	if _, err := h.db.GetValue(ctx, txKey(txID)); err == nil {
		return nil, h.reject("duplicate", fmt.Errorf("%w: %s", ErrDuplicateTx, txID))
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	start := time.Now()
	height := h.height.Load() + 1
	ts := tstate.New(h.db)
	view := ts.NewView()
	events := []runtime.Event{}
	result, err := h.rt.WithDefaults(runtime.CallInfo{
		State:     view,
		Actor:     tx.Actor(),
		Height:    height,
		Timestamp: now,
		ActionID:  txID,
		Events:    &events,
	}).CallContract(ctx, &runtime.CallInfo{
		Contract:     tx.Action.Contract,
		FunctionName: tx.Action.Function,
		Params:       tx.Action.Params,
		Authorized:   signers,
	})
	h.metrics.execution.Observe(time.Since(start).Seconds())
	if err != nil {
		h.log.Debug("tx failed",
			zap.Stringer("txID", txID),
			zap.Stringer("contract", tx.Action.Contract),
			zap.String("function", tx.Action.Function),
			zap.Error(err),
		)
		return nil, h.reject("execute", err)
	}

	if err := view.Insert(ctx, heightKey, packUint64(height)); err != nil {
		return nil, err
	}
	if err := view.Insert(ctx, timestampKey, packUint64(now)); err != nil {
		return nil, err
	}
	if err := view.Insert(ctx, txKey(txID), packUint64(height)); err != nil {
		return nil, err
	}
	view.Commit()
	changes := ts.Export(ctx, h.tracer)
	if err := h.db.Apply(ctx, changes); err != nil {
		return nil, err
	}
	h.height.Store(height)
	h.timestamp.Store(now)
	h.metrics.txsAccepted.Inc()
	h.metrics.stateWrites.Add(float64(len(changes)))

	h.log.Debug("tx committed",
		zap.Stringer("txID", txID),
		zap.Uint64("height", height),
		zap.Int("events", len(events)),
	)
	return &Receipt{
		TxID:      txID,
		Height:    height,
		Timestamp: now,
		Result:    result,
		Events:    events,
	}, nil
}

// Simulate calls a read-only export against the current ledger. Nothing it
// does is kept.
func (h *Host) Simulate(ctx context.Context, contract codec.Address, function string, params []byte) ([]byte, error) {
	ctx, span := h.tracer.Start(ctx, "Host.Simulate", oteltrace.WithAttributes(
		attribute.String("contract", contract.String()),
		attribute.String("function", function),
	))
	defer span.End()

	h.l.RLock()
	defer h.l.RUnlock()

	h.metrics.simulations.Inc()
	now := h.clock.Now()
	if last := h.timestamp.Load(); now < last {
		now = last
	}
	view := tstate.New(h.db).NewView()
	return h.rt.WithDefaults(runtime.CallInfo{
		State:     view,
		Height:    h.height.Load(),
		Timestamp: now,
		ReadOnly:  true,
	}).CallContract(ctx, &runtime.CallInfo{
		Contract:     contract,
		FunctionName: function,
		Params:       params,
	})
}

// Close closes the underlying database.
func (h *Host) Close() error {
	h.l.Lock()
	defer h.l.Unlock()

	return h.db.Close()
}
