// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package runtimetest runs contracts against an in-memory ledger for tests.
package runtimetest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/runtime"
	"github.com/chrysalis-labs/chrysalis/state"
	"github.com/chrysalis-labs/chrysalis/trace"
	"github.com/chrysalis-labs/chrysalis/tstate"
)

// Env is a single open transaction view shared by every call made through
// it. Failed calls are rolled back by the runtime; successful ones stay.
type Env struct {
	Runtime   *runtime.Runtime
	State     *tstate.TStateView
	Events    []runtime.Event
	Height    uint64
	Timestamp uint64
}

func New(t testing.TB, contracts ...*runtime.Contract) *Env {
	require := require.New(t)
	rt, err := runtime.NewRuntime(runtime.NewDefaultConfig(), logging.NoLog{}, trace.Noop(), prometheus.NewRegistry())
	require.NoError(err)
	for _, c := range contracts {
		require.NoError(rt.Register(c))
	}
	return &Env{
		Runtime:   rt,
		State:     tstate.New(state.NewMemoryDatabase()).NewView(),
		Height:    1,
		Timestamp: 1,
	}
}

// NewAddress returns a random non-contract principal.
func NewAddress() codec.Address {
	return codec.CreateAddress(0, ids.GenerateTestID())
}

func (e *Env) Deploy(t testing.TB, id runtime.ContractID, salt string) codec.Address {
	addr, err := e.Runtime.Deploy(context.Background(), e.State, id, []byte(salt))
	require.NoError(t, err)
	return addr
}

// Advance moves ledger time forward.
func (e *Env) Advance(seconds uint64) {
	e.Timestamp += seconds
}

func (e *Env) callContext(signers []codec.Address) runtime.CallContext {
	actor := codec.EmptyAddress
	if len(signers) > 0 {
		actor = signers[0]
	}
	return e.Runtime.WithDefaults(runtime.CallInfo{
		State:     e.State,
		Actor:     actor,
		Height:    e.Height,
		Timestamp: e.Timestamp,
		Events:    &e.Events,
	}).WithAuthorized(signers...)
}

// Call invokes [function] as if signed by [signer].
func (e *Env) Call(signer codec.Address, contract codec.Address, function string, params ...any) ([]byte, error) {
	return e.CallSigned([]codec.Address{signer}, contract, function, params...)
}

// CallSigned invokes [function] with every address in [signers] authorized.
func (e *Env) CallSigned(signers []codec.Address, contract codec.Address, function string, params ...any) ([]byte, error) {
	b, err := runtime.SerializeParams(params...)
	if err != nil {
		return nil, err
	}
	return e.callContext(signers).CallContract(context.Background(), &runtime.CallInfo{
		Contract:     contract,
		FunctionName: function,
		Params:       b,
	})
}

// View invokes [function] read-only with nobody authorized.
func (e *Env) View(contract codec.Address, function string, params ...any) ([]byte, error) {
	b, err := runtime.SerializeParams(params...)
	if err != nil {
		return nil, err
	}
	return e.callContext(nil).WithReadOnly(true).CallContract(context.Background(), &runtime.CallInfo{
		Contract:     contract,
		FunctionName: function,
		Params:       b,
	})
}

// MustView decodes the result of [View].
func MustView[U any](t testing.TB, e *Env, contract codec.Address, function string, params ...any) U {
	b, err := e.View(contract, function, params...)
	require.NoError(t, err)
	v, err := runtime.Deserialize[U](b)
	require.NoError(t, err)
	return v
}
