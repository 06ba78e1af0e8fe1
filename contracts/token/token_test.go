// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/runtime"
	"github.com/chrysalis-labs/chrysalis/runtime/runtimetest"
)

func newToken(t *testing.T) (*runtimetest.Env, codec.Address, codec.Address) {
	require := require.New(t)
	env := runtimetest.New(t, New())
	tok := env.Deploy(t, ContractID, "tok")
	admin := runtimetest.NewAddress()
	_, err := env.Call(admin, tok, "initialize", InitializeArgs{
		Admin:    admin,
		Name:     "Staked Ether",
		Symbol:   "stETH",
		Decimals: 7,
	})
	require.NoError(err)
	return env, tok, admin
}

func balanceOf(t *testing.T, env *runtimetest.Env, tok codec.Address, holder codec.Address) amount.U128 {
	return runtimetest.MustView[amount.U128](t, env, tok, "balance", holder)
}

func TestInitialize(t *testing.T) {
	require := require.New(t)
	env, tok, admin := newToken(t)

	m := runtimetest.MustView[Metadata](t, env, tok, "metadata")
	require.Equal(Metadata{Admin: admin, Name: "Staked Ether", Symbol: "stETH", Decimals: 7}, m)

	_, err := env.Call(admin, tok, "initialize", InitializeArgs{Admin: admin, Name: "x", Symbol: "x"})
	require.ErrorIs(err, ErrAlreadyInitialized)

	other := env.Deploy(t, ContractID, "other")
	stranger := runtimetest.NewAddress()
	_, err = env.Call(stranger, other, "initialize", InitializeArgs{Admin: admin, Name: "x", Symbol: "x"})
	require.ErrorIs(err, runtime.ErrUnauthorized)
	_, err = env.Call(admin, other, "initialize", InitializeArgs{Admin: admin, Symbol: "x"})
	require.ErrorIs(err, ErrInvalidMetadata)

	_, err = env.View(other, "metadata")
	require.ErrorIs(err, ErrNotInitialized)
}

func TestMintTransferBurn(t *testing.T) {
	require := require.New(t)
	env, tok, admin := newToken(t)
	alice := runtimetest.NewAddress()
	bob := runtimetest.NewAddress()

	_, err := env.Call(admin, tok, "mint", MintArgs{To: alice, Amount: amount.FromUint64(100)})
	require.NoError(err)
	_, err = env.Call(alice, tok, "mint", MintArgs{To: alice, Amount: amount.FromUint64(100)})
	require.ErrorIs(err, runtime.ErrUnauthorized)

	_, err = env.Call(alice, tok, "transfer", TransferArgs{From: alice, To: bob, Amount: amount.FromUint64(30)})
	require.NoError(err)
	require.Equal(amount.FromUint64(70), balanceOf(t, env, tok, alice))
	require.Equal(amount.FromUint64(30), balanceOf(t, env, tok, bob))

	// bob cannot spend alice's balance
	_, err = env.Call(bob, tok, "transfer", TransferArgs{From: alice, To: bob, Amount: amount.FromUint64(1)})
	require.ErrorIs(err, runtime.ErrUnauthorized)

	_, err = env.Call(alice, tok, "transfer", TransferArgs{From: alice, To: bob, Amount: amount.FromUint64(71)})
	require.ErrorIs(err, ErrInsufficientBalance)
	_, err = env.Call(alice, tok, "transfer", TransferArgs{From: alice, To: bob, Amount: amount.Zero})
	require.ErrorIs(err, ErrInvalidAmount)

	// self transfer keeps the balance
	_, err = env.Call(alice, tok, "transfer", TransferArgs{From: alice, To: alice, Amount: amount.FromUint64(70)})
	require.NoError(err)
	require.Equal(amount.FromUint64(70), balanceOf(t, env, tok, alice))

	_, err = env.Call(bob, tok, "burn", BurnArgs{From: bob, Amount: amount.FromUint64(10)})
	require.NoError(err)
	_, err = env.Call(bob, tok, "burn", BurnArgs{From: bob, Amount: amount.FromUint64(21)})
	require.ErrorIs(err, ErrInsufficientBalance)

	require.Equal(amount.FromUint64(20), balanceOf(t, env, tok, bob))
	require.Equal(amount.FromUint64(90), runtimetest.MustView[amount.U128](t, env, tok, "total_supply"))

	names := make([]string, 0, len(env.Events))
	for _, e := range env.Events {
		names = append(names, e.Name)
	}
	require.Equal([]string{"mint", "transfer", "transfer", "burn"}, names)
}

func TestMintOverflow(t *testing.T) {
	require := require.New(t)
	env, tok, admin := newToken(t)
	alice := runtimetest.NewAddress()

	_, err := env.Call(admin, tok, "mint", MintArgs{To: alice, Amount: amount.Max})
	require.NoError(err)
	_, err = env.Call(admin, tok, "mint", MintArgs{To: alice, Amount: amount.FromUint64(1)})
	require.ErrorIs(err, amount.ErrOverflow)
	require.Equal(amount.Max, balanceOf(t, env, tok, alice))
}

func TestSetAdmin(t *testing.T) {
	require := require.New(t)
	env, tok, admin := newToken(t)
	next := runtimetest.NewAddress()

	_, err := env.Call(next, tok, "set_admin", next)
	require.ErrorIs(err, runtime.ErrUnauthorized)
	_, err = env.Call(admin, tok, "set_admin", next)
	require.NoError(err)

	_, err = env.Call(admin, tok, "mint", MintArgs{To: admin, Amount: amount.FromUint64(1)})
	require.ErrorIs(err, runtime.ErrUnauthorized)
	_, err = env.Call(next, tok, "mint", MintArgs{To: admin, Amount: amount.FromUint64(1)})
	require.NoError(err)
}

func TestReadOnlyExports(t *testing.T) {
	require := require.New(t)
	env, tok, _ := newToken(t)

	_, err := env.View(tok, "mint", MintArgs{To: runtimetest.NewAddress(), Amount: amount.FromUint64(1)})
	require.ErrorIs(err, runtime.ErrReadOnly)
}
