// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chrysalis

import (
	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/contracts/token"
	"github.com/chrysalis-labs/chrysalis/runtime"
)

var _ TokenClient = (*runtimeTokenClient)(nil)

// TokenClient is the part of a token contract staking depends on.
type TokenClient interface {
	Balance(holder codec.Address) (amount.U128, error)
	Transfer(from codec.Address, to codec.Address, amt amount.U128) error
	Mint(to codec.Address, amt amount.U128) error
	Burn(from codec.Address, amt amount.U128) error
}

// TokenClientFactory binds a [TokenClient] to the token at [addr] for the
// call running in [c].
type TokenClientFactory func(c *runtime.Context, addr codec.Address) TokenClient

// NewTokenClient calls [token] contracts through the runtime. Calls are made
// with the staking contract as the actor.
func NewTokenClient(c *runtime.Context, addr codec.Address) TokenClient {
	return &runtimeTokenClient{c: c, addr: addr}
}

type runtimeTokenClient struct {
	c    *runtime.Context
	addr codec.Address
}

func (t *runtimeTokenClient) Balance(holder codec.Address) (amount.U128, error) {
	return runtime.Call[amount.U128](t.c, t.addr, "balance", holder)
}

func (t *runtimeTokenClient) Transfer(from codec.Address, to codec.Address, amt amount.U128) error {
	_, err := t.c.Call(t.addr, "transfer", token.TransferArgs{From: from, To: to, Amount: amt})
	return err
}

func (t *runtimeTokenClient) Mint(to codec.Address, amt amount.U128) error {
	_, err := t.c.Call(t.addr, "mint", token.MintArgs{To: to, Amount: amt})
	return err
}

func (t *runtimeTokenClient) Burn(from codec.Address, amt amount.U128) error {
	_, err := t.c.Call(t.addr, "burn", token.BurnArgs{From: from, Amount: amt})
	return err
}
