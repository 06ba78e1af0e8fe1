// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chrysalis

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/contracts/token"
	"github.com/chrysalis-labs/chrysalis/runtime/runtimetest"
)

const aliceFunds = 10_000

func u(v uint64) amount.U128 {
	return amount.FromUint64(v)
}

type fixture struct {
	t   *testing.T
	env *runtimetest.Env

	admin codec.Address
	alice codec.Address
	bob   codec.Address

	staked codec.Address
	reward codec.Address
	pool   codec.Address
}

// newFixture deploys two tokens and an initialized pool. Alice holds
// [aliceFunds] staked tokens. In mint mode the pool administers the reward
// token.
func newFixture(t *testing.T, issuance Issuance) *fixture {
	require := require.New(t)
	env := runtimetest.New(t, token.New(), New())
	f := &fixture{
		t:      t,
		env:    env,
		admin:  runtimetest.NewAddress(),
		alice:  runtimetest.NewAddress(),
		bob:    runtimetest.NewAddress(),
		staked: env.Deploy(t, token.ContractID, "staked"),
		reward: env.Deploy(t, token.ContractID, "reward"),
		pool:   env.Deploy(t, ContractID, "pool"),
	}
	for tok, symbol := range map[codec.Address]string{f.staked: "XLM", f.reward: "stXLM"} {
		_, err := env.Call(f.admin, tok, "initialize", token.InitializeArgs{
			Admin:    f.admin,
			Name:     symbol,
			Symbol:   symbol,
			Decimals: 7,
		})
		require.NoError(err)
	}
	_, err := env.Call(f.admin, f.staked, "mint", token.MintArgs{To: f.alice, Amount: u(aliceFunds)})
	require.NoError(err)
	if issuance == IssuanceMint {
		_, err = env.Call(f.admin, f.reward, "set_admin", f.pool)
		require.NoError(err)
	}
	_, err = env.Call(f.admin, f.pool, "initialize", InitializeArgs{
		Admin:       f.admin,
		StakedToken: f.staked,
		RewardToken: f.reward,
		Issuance:    issuance,
	})
	require.NoError(err)
	return f
}

func (f *fixture) stake(user codec.Address, amt uint64) error {
	_, err := f.env.Call(user, f.pool, "stake", AmountArgs{User: user, Amount: u(amt)})
	return err
}

func (f *fixture) unstake(user codec.Address, amt uint64) error {
	_, err := f.env.Call(user, f.pool, "unstake", AmountArgs{User: user, Amount: u(amt)})
	return err
}

func (f *fixture) claim(user codec.Address, rate uint32) (amount.U128, error) {
	b, err := f.env.Call(user, f.pool, "claim", ClaimArgs{User: user, Rate: rate})
	if err != nil {
		return amount.Zero, err
	}
	return deserializeAmount(b)
}

func (f *fixture) preview(user codec.Address, rate uint32) amount.U128 {
	return runtimetest.MustView[amount.U128](f.t, f.env, f.pool, "preview_claim", ClaimArgs{User: user, Rate: rate})
}

func (f *fixture) getStake(user codec.Address) amount.U128 {
	return runtimetest.MustView[amount.U128](f.t, f.env, f.pool, "get_stake", user)
}

func (f *fixture) position(user codec.Address) Position {
	return runtimetest.MustView[Position](f.t, f.env, f.pool, "get_position", user)
}

func (f *fixture) totalStaked() amount.U128 {
	return runtimetest.MustView[amount.U128](f.t, f.env, f.pool, "total_staked")
}

func (f *fixture) balance(tok codec.Address, holder codec.Address) amount.U128 {
	return runtimetest.MustView[amount.U128](f.t, f.env, tok, "balance", holder)
}

func (f *fixture) supply(tok codec.Address) amount.U128 {
	return runtimetest.MustView[amount.U128](f.t, f.env, tok, "total_supply")
}

// eventNames lists the events emitted by [contracts], in order.
func (f *fixture) eventNames(contracts ...codec.Address) []string {
	names := []string{}
	for _, e := range f.env.Events {
		if slices.Contains(contracts, e.Contract) {
			names = append(names, e.Name)
		}
	}
	return names
}
