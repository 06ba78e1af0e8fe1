// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/near/borsh-go"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/consts"
	"github.com/chrysalis-labs/chrysalis/state"
)

const (
	metadataPrefix    = 0x0
	balancePrefix     = 0x1
	totalSupplyPrefix = 0x2
)

var (
	metadataKey    = []byte{metadataPrefix}
	totalSupplyKey = []byte{totalSupplyPrefix}
)

// [balancePrefix] + [address]
func balanceKey(addr codec.Address) (k []byte) {
	k = make([]byte, 0, 1+codec.AddressLen)
	k = append(k, balancePrefix)
	k = append(k, addr[:]...)
	return
}

func getMetadata(ctx context.Context, s state.Immutable) (*Metadata, error) {
	v, err := s.GetValue(ctx, metadataKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, err
	}
	m := new(Metadata)
	if err := borsh.Deserialize(m, v); err != nil {
		return nil, err
	}
	return m, nil
}

func setMetadata(ctx context.Context, s state.Mutable, m *Metadata) error {
	v, err := borsh.Serialize(*m)
	if err != nil {
		return err
	}
	return s.Insert(ctx, metadataKey, v)
}

func getAmount(ctx context.Context, s state.Immutable, key []byte) (amount.U128, error) {
	v, err := s.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return amount.Zero, nil
	}
	if err != nil {
		return amount.Zero, err
	}
	if len(v) != consts.Uint128Len {
		return amount.Zero, codec.ErrInvalidSize
	}
	var a amount.U128
	copy(a[:], v)
	return a, nil
}

func setAmount(ctx context.Context, s state.Mutable, key []byte, a amount.U128) error {
	return s.Insert(ctx, key, a[:])
}

func getBalance(ctx context.Context, s state.Immutable, addr codec.Address) (amount.U128, error) {
	return getAmount(ctx, s, balanceKey(addr))
}

func setBalance(ctx context.Context, s state.Mutable, addr codec.Address, a amount.U128) error {
	return setAmount(ctx, s, balanceKey(addr), a)
}
