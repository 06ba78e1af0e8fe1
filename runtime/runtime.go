// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/chrysalis-labs/chrysalis/codec"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// contractSpacePrefix isolates contract accounts inside the state handed to
// the runtime.
var contractSpacePrefix = []byte{0x0}

// Runtime executes native contracts.
type Runtime struct {
	cfg     Config
	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics

	contracts map[ContractID]*Contract
}

func NewRuntime(
	cfg Config,
	log logging.Logger,
	tracer trace.Tracer,
	registerer prometheus.Registerer,
) (*Runtime, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	if cfg.MaxCallDepth <= 0 {
		cfg.MaxCallDepth = defaultMaxCallDepth
	}
	return &Runtime{
		cfg:       cfg,
		log:       log,
		tracer:    tracer,
		metrics:   m,
		contracts: make(map[ContractID]*Contract),
	}, nil
}

// Register makes [contract] deployable.
func (r *Runtime) Register(contract *Contract) error {
	if len(contract.id) == 0 {
		return ErrInvalidContractID
	}
	if _, ok := r.contracts[contract.id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateContract, contract.id)
	}
	r.contracts[contract.id] = contract
	return nil
}

// Contracts returns the sorted registered implementation IDs.
func (r *Runtime) Contracts() []ContractID {
	contractIDs := maps.Keys(r.contracts)
	sort.Slice(contractIDs, func(i, j int) bool { return contractIDs[i] < contractIDs[j] })
	return contractIDs
}

func (r *Runtime) Contract(id ContractID) (*Contract, bool) {
	c, ok := r.contracts[id]
	return c, ok
}

func (r *Runtime) WithDefaults(callInfo CallInfo) CallContext {
	return CallContext{r: r, defaultCallInfo: callInfo}
}

// Manager returns the account manager over [s].
func (r *Runtime) Manager(s State) *ContractStateManager {
	return NewContractStateManager(s, contractSpacePrefix)
}

// Deploy creates a new instance of [contractID].
func (r *Runtime) Deploy(ctx context.Context, s State, contractID ContractID, salt []byte) (codec.Address, error) {
	if _, ok := r.contracts[contractID]; !ok {
		return codec.EmptyAddress, fmt.Errorf("%w: %s", ErrUnknownContract, contractID)
	}
	addr, err := r.Manager(s).NewAccountWithContract(ctx, contractID, salt)
	if err != nil {
		return codec.EmptyAddress, err
	}
	r.log.Debug("deployed contract",
		zap.String("contractID", string(contractID)),
		zap.Stringer("address", addr),
	)
	return addr, nil
}

// CallContract runs [callInfo.FunctionName] on [callInfo.Contract]. When the
// call fails every state change and event it produced is reverted.
func (r *Runtime) CallContract(ctx context.Context, callInfo *CallInfo) (result []byte, err error) {
	ctx, span := r.tracer.Start(ctx, "Runtime.CallContract", oteltrace.WithAttributes(
		attribute.String("contract", callInfo.Contract.String()),
		attribute.String("function", callInfo.FunctionName),
		attribute.Int("depth", callInfo.Depth()),
	))
	defer span.End()

	if callInfo.State == nil {
		return nil, fmt.Errorf("%w: no state", ErrInvalidParams)
	}
	manager := r.Manager(callInfo.State)
	contractID, err := manager.GetAccountContract(ctx, callInfo.Contract)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnknownContract, callInfo.Contract, err)
	}
	contract, ok := r.contracts[contractID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContract, contractID)
	}
	export, ok := contract.Lookup(callInfo.FunctionName)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownFunction, contractID, callInfo.FunctionName)
	}
	if callInfo.ReadOnly && !export.ReadOnly {
		r.metrics.denied.WithLabelValues("readonly").Inc()
		return nil, fmt.Errorf("%w: %s.%s", ErrReadOnly, contractID, callInfo.FunctionName)
	}
	if callInfo.Depth() >= r.cfg.MaxCallDepth {
		r.metrics.denied.WithLabelValues("depth").Inc()
		return nil, ErrCallDepthExceeded
	}
	if !r.cfg.AllowReentrancy && slices.Contains(callInfo.callStack, callInfo.Contract) {
		r.metrics.denied.WithLabelValues("reentrancy").Inc()
		return nil, fmt.Errorf("%w: %s", ErrReentrancy, callInfo.Contract)
	}

	readOnly := callInfo.ReadOnly || export.ReadOnly
	contractState := manager.GetContractState(callInfo.Contract)
	if readOnly {
		contractState = readOnlyState{inner: contractState}
	}

	restorePoint := callInfo.State.OpIndex()
	eventsLen := 0
	if callInfo.Events != nil {
		eventsLen = len(*callInfo.Events)
	}
	r.metrics.calls.WithLabelValues(string(contractID), callInfo.FunctionName).Inc()

	result, err = export.Fn(&Context{
		ctx:      ctx,
		r:        r,
		info:     callInfo,
		state:    contractState,
		readOnly: readOnly,
	}, callInfo.Params)
	if err != nil {
		callInfo.State.Rollback(ctx, restorePoint)
		if callInfo.Events != nil {
			*callInfo.Events = (*callInfo.Events)[:eventsLen]
		}
		r.metrics.failures.WithLabelValues(string(contractID), callInfo.FunctionName).Inc()
		r.metrics.rollbacks.Inc()
		r.log.Debug("contract call failed",
			zap.String("contractID", string(contractID)),
			zap.Stringer("contract", callInfo.Contract),
			zap.String("function", callInfo.FunctionName),
			zap.Int("depth", callInfo.Depth()),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}
