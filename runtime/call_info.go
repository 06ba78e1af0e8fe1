// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/state"
)

// State is the journalled state a call runs against. A failed call rolls
// back to the op index it started from.
type State interface {
	state.Mutable

	OpIndex() int
	Rollback(ctx context.Context, restorePoint int)
}

type CallInfo struct {
	// the state that the contract will run against
	State State

	// the address that originated the initial contract call
	Actor codec.Address

	// the contract being called
	Contract codec.Address

	// the name of the function within the contract that is being called
	FunctionName string

	Params []byte

	// the height of the block the call executes in
	Height uint64

	// the ledger timestamp of the call
	Timestamp uint64

	// the transaction that started the call
	ActionID ids.ID

	// principals that signed the transaction
	Authorized set.Set[codec.Address]

	// forbids state changes for this call and everything it calls
	ReadOnly bool

	// collects events across the whole call tree
	Events *[]Event

	callStack []codec.Address
}

// Depth is the number of contract frames below this call.
func (c *CallInfo) Depth() int {
	return len(c.callStack)
}

type CallContext struct {
	r               *Runtime
	defaultCallInfo CallInfo
}

func (c CallContext) createCallInfo(callInfo *CallInfo) *CallInfo {
	newCallInfo := *callInfo
	if newCallInfo.State == nil {
		newCallInfo.State = c.defaultCallInfo.State
	}
	if newCallInfo.Actor == codec.EmptyAddress {
		newCallInfo.Actor = c.defaultCallInfo.Actor
	}
	if newCallInfo.Contract == codec.EmptyAddress {
		newCallInfo.Contract = c.defaultCallInfo.Contract
	}
	if len(newCallInfo.FunctionName) == 0 {
		newCallInfo.FunctionName = c.defaultCallInfo.FunctionName
	}
	if newCallInfo.Params == nil {
		newCallInfo.Params = c.defaultCallInfo.Params
	}
	if newCallInfo.Height == 0 {
		newCallInfo.Height = c.defaultCallInfo.Height
	}
	if newCallInfo.Timestamp == 0 {
		newCallInfo.Timestamp = c.defaultCallInfo.Timestamp
	}
	if newCallInfo.ActionID == ids.Empty {
		newCallInfo.ActionID = c.defaultCallInfo.ActionID
	}
	if newCallInfo.Authorized == nil {
		newCallInfo.Authorized = c.defaultCallInfo.Authorized
	}
	if !newCallInfo.ReadOnly {
		newCallInfo.ReadOnly = c.defaultCallInfo.ReadOnly
	}
	if newCallInfo.Events == nil {
		newCallInfo.Events = c.defaultCallInfo.Events
	}
	return &newCallInfo
}

func (c CallContext) CallContract(ctx context.Context, info *CallInfo) ([]byte, error) {
	return c.r.CallContract(ctx, c.createCallInfo(info))
}

func (c CallContext) WithStateManager(s State) CallContext {
	c.defaultCallInfo.State = s
	return c
}

func (c CallContext) WithActor(address codec.Address) CallContext {
	c.defaultCallInfo.Actor = address
	return c
}

func (c CallContext) WithFunction(s string) CallContext {
	c.defaultCallInfo.FunctionName = s
	return c
}

func (c CallContext) WithContract(address codec.Address) CallContext {
	c.defaultCallInfo.Contract = address
	return c
}

func (c CallContext) WithParams(bytes []byte) CallContext {
	c.defaultCallInfo.Params = bytes
	return c
}

func (c CallContext) WithHeight(height uint64) CallContext {
	c.defaultCallInfo.Height = height
	return c
}

func (c CallContext) WithTimestamp(ts uint64) CallContext {
	c.defaultCallInfo.Timestamp = ts
	return c
}

func (c CallContext) WithActionID(actionID ids.ID) CallContext {
	c.defaultCallInfo.ActionID = actionID
	return c
}

func (c CallContext) WithAuthorized(principals ...codec.Address) CallContext {
	c.defaultCallInfo.Authorized = set.Of(principals...)
	return c
}

func (c CallContext) WithReadOnly(readOnly bool) CallContext {
	c.defaultCallInfo.ReadOnly = readOnly
	return c
}

func (c CallContext) WithEvents(events *[]Event) CallContext {
	c.defaultCallInfo.Events = events
	return c
}
