// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"fmt"
	"slices"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/state"
)

// Context is what a running export sees of the ledger.
type Context struct {
	ctx      context.Context
	r        *Runtime
	info     *CallInfo
	state    state.Mutable
	readOnly bool
}

// Ctx returns the context of the enclosing call.
func (c *Context) Ctx() context.Context {
	return c.ctx
}

// State returns the state space of the running contract.
func (c *Context) State() state.Mutable {
	return c.state
}

// Address returns the address of the running contract.
func (c *Context) Address() codec.Address {
	return c.info.Contract
}

// Actor returns the immediate caller: the first signer for an entry call or
// the calling contract for a nested call.
func (c *Context) Actor() codec.Address {
	return c.info.Actor
}

func (c *Context) Timestamp() uint64 {
	return c.info.Timestamp
}

func (c *Context) Height() uint64 {
	return c.info.Height
}

func (c *Context) ActionID() ids.ID {
	return c.info.ActionID
}

func (c *Context) ReadOnly() bool {
	return c.readOnly
}

func (c *Context) Log() logging.Logger {
	return c.r.log
}

// RequireAuth fails unless [principal] signed the transaction or is the
// contract making this call. The empty address is never authorized.
func (c *Context) RequireAuth(principal codec.Address) error {
	if principal == codec.EmptyAddress {
		return fmt.Errorf("%w: empty address", ErrUnauthorized)
	}
	if principal == c.info.Actor || c.info.Authorized.Contains(principal) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnauthorized, principal)
}

// Emit records an event for the transaction receipt.
func (c *Context) Emit(name string, data any) error {
	if c.readOnly {
		return ErrReadOnly
	}
	b, err := serialize(data)
	if err != nil {
		return err
	}
	if c.info.Events != nil {
		*c.info.Events = append(*c.info.Events, Event{
			Contract: c.info.Contract,
			Name:     name,
			Data:     b,
		})
	}
	return nil
}

// Call invokes [function] on [contract] with this contract as the actor.
// [params] is encoded with [Serialize].
func (c *Context) Call(contract codec.Address, function string, params any) ([]byte, error) {
	b, err := serialize(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	next := *c.info
	next.Actor = c.info.Contract
	next.Contract = contract
	next.FunctionName = function
	next.Params = b
	next.ReadOnly = c.readOnly
	next.callStack = append(slices.Clone(c.info.callStack), c.info.Contract)
	return c.r.CallContract(c.ctx, &next)
}

// Call invokes [function] on [contract] and decodes its result.
func Call[U any](c *Context, contract codec.Address, function string, params any) (U, error) {
	var zero U
	b, err := c.Call(contract, function, params)
	if err != nil {
		return zero, err
	}
	return Deserialize[U](b)
}
