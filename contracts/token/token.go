// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package token is a fungible token contract. Balances are 128-bit amounts;
// the admin mints and holders move or burn their own balance.
package token

import (
	"errors"
	"fmt"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/runtime"
)

const (
	ContractID runtime.ContractID = "token"

	MaxNameLen   = 64
	MaxSymbolLen = 16
)

type Metadata struct {
	Admin    codec.Address `json:"admin"`
	Name     string        `json:"name"`
	Symbol   string        `json:"symbol"`
	Decimals uint8         `json:"decimals"`
}

type InitializeArgs struct {
	Admin    codec.Address
	Name     string
	Symbol   string
	Decimals uint8
}

type TransferArgs struct {
	From   codec.Address
	To     codec.Address
	Amount amount.U128
}

type MintArgs struct {
	To     codec.Address
	Amount amount.U128
}

type BurnArgs struct {
	From   codec.Address
	Amount amount.U128
}

// TransferEvent is emitted by transfer, mint (empty From) and burn (empty To).
type TransferEvent struct {
	From   codec.Address
	To     codec.Address
	Amount amount.U128
}

// New returns the token implementation.
func New() *runtime.Contract {
	return runtime.NewContract(ContractID).
		Export("initialize", runtime.FnNoOutput(initialize)).
		Export("transfer", runtime.FnNoOutput(transfer)).
		Export("mint", runtime.FnNoOutput(mint)).
		Export("burn", runtime.FnNoOutput(burn)).
		Export("set_admin", runtime.FnNoOutput(setAdmin)).
		ExportReadOnly("balance", runtime.Fn(balance)).
		ExportReadOnly("total_supply", runtime.FnNoInput(totalSupply)).
		ExportReadOnly("metadata", runtime.FnNoInput(metadata))
}

func initialize(c *runtime.Context, args InitializeArgs) error {
	if err := c.RequireAuth(args.Admin); err != nil {
		return err
	}
	_, err := getMetadata(c.Ctx(), c.State())
	switch {
	case err == nil:
		return ErrAlreadyInitialized
	case !errors.Is(err, ErrNotInitialized):
		return err
	}
	if len(args.Name) == 0 || len(args.Name) > MaxNameLen || len(args.Symbol) == 0 || len(args.Symbol) > MaxSymbolLen {
		return ErrInvalidMetadata
	}
	return setMetadata(c.Ctx(), c.State(), &Metadata{
		Admin:    args.Admin,
		Name:     args.Name,
		Symbol:   args.Symbol,
		Decimals: args.Decimals,
	})
}

func checkAmount(a amount.U128) error {
	if a.IsZero() || !a.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, a)
	}
	return nil
}

func transfer(c *runtime.Context, args TransferArgs) error {
	if err := c.RequireAuth(args.From); err != nil {
		return err
	}
	if err := checkAmount(args.Amount); err != nil {
		return err
	}
	ctx, s := c.Ctx(), c.State()
	if _, err := getMetadata(ctx, s); err != nil {
		return err
	}
	fromBal, err := getBalance(ctx, s, args.From)
	if err != nil {
		return err
	}
	fromBal, err = fromBal.Sub(args.Amount)
	if err != nil {
		return fmt.Errorf("%w: %s has less than %s", ErrInsufficientBalance, args.From, args.Amount)
	}
	if err := setBalance(ctx, s, args.From, fromBal); err != nil {
		return err
	}
	toBal, err := getBalance(ctx, s, args.To)
	if err != nil {
		return err
	}
	toBal, err = toBal.Add(args.Amount)
	if err != nil {
		return err
	}
	if err := setBalance(ctx, s, args.To, toBal); err != nil {
		return err
	}
	return c.Emit("transfer", TransferEvent(args))
}

func mint(c *runtime.Context, args MintArgs) error {
	if err := checkAmount(args.Amount); err != nil {
		return err
	}
	ctx, s := c.Ctx(), c.State()
	m, err := getMetadata(ctx, s)
	if err != nil {
		return err
	}
	if err := c.RequireAuth(m.Admin); err != nil {
		return err
	}
	supply, err := getAmount(ctx, s, totalSupplyKey)
	if err != nil {
		return err
	}
	supply, err = supply.Add(args.Amount)
	if err != nil {
		return err
	}
	bal, err := getBalance(ctx, s, args.To)
	if err != nil {
		return err
	}
	// cannot overflow: bal <= supply
	bal, _ = bal.Add(args.Amount)
	if err := setAmount(ctx, s, totalSupplyKey, supply); err != nil {
		return err
	}
	if err := setBalance(ctx, s, args.To, bal); err != nil {
		return err
	}
	return c.Emit("mint", TransferEvent{To: args.To, Amount: args.Amount})
}

func burn(c *runtime.Context, args BurnArgs) error {
	if err := c.RequireAuth(args.From); err != nil {
		return err
	}
	if err := checkAmount(args.Amount); err != nil {
		return err
	}
	ctx, s := c.Ctx(), c.State()
	if _, err := getMetadata(ctx, s); err != nil {
		return err
	}
	bal, err := getBalance(ctx, s, args.From)
	if err != nil {
		return err
	}
	bal, err = bal.Sub(args.Amount)
	if err != nil {
		return fmt.Errorf("%w: %s has less than %s", ErrInsufficientBalance, args.From, args.Amount)
	}
	supply, err := getAmount(ctx, s, totalSupplyKey)
	if err != nil {
		return err
	}
	supply, err = supply.Sub(args.Amount)
	if err != nil {
		return err
	}
	if err := setBalance(ctx, s, args.From, bal); err != nil {
		return err
	}
	if err := setAmount(ctx, s, totalSupplyKey, supply); err != nil {
		return err
	}
	return c.Emit("burn", TransferEvent{From: args.From, Amount: args.Amount})
}

func setAdmin(c *runtime.Context, newAdmin codec.Address) error {
	ctx, s := c.Ctx(), c.State()
	m, err := getMetadata(ctx, s)
	if err != nil {
		return err
	}
	if err := c.RequireAuth(m.Admin); err != nil {
		return err
	}
	m.Admin = newAdmin
	return setMetadata(ctx, s, m)
}

func balance(c *runtime.Context, holder codec.Address) (amount.U128, error) {
	return getBalance(c.Ctx(), c.State(), holder)
}

func totalSupply(c *runtime.Context) (amount.U128, error) {
	return getAmount(c.Ctx(), c.State(), totalSupplyKey)
}

func metadata(c *runtime.Context) (Metadata, error) {
	m, err := getMetadata(c.Ctx(), c.State())
	if err != nil {
		return Metadata{}, err
	}
	return *m, nil
}
