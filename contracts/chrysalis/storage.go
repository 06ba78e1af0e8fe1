// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chrysalis

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
	configPrefix      = 0x0
	positionPrefix    = 0x1
	totalStakedPrefix = 0x2
)

var (
	configKey      = []byte{configPrefix}
	totalStakedKey = []byte{totalStakedPrefix}
)

// [positionPrefix] + [user]
func positionKey(user codec.Address) (k []byte) {
	k = make([]byte, 0, 1+codec.AddressLen)
	k = append(k, positionPrefix)
	k = append(k, user[:]...)
	return
}

func getConfig(ctx context.Context, s state.Immutable) (*Config, error) {
	v, err := s.GetValue(ctx, configKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, err
	}
	cfg := new(Config)
	if err := borsh.Deserialize(cfg, v); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setConfig(ctx context.Context, s state.Mutable, cfg *Config) error {
	v, err := borsh.Serialize(*cfg)
	if err != nil {
		return err
	}
	return s.Insert(ctx, configKey, v)
}

// getPosition returns the zero position for users that never staked.
func getPosition(ctx context.Context, s state.Immutable, user codec.Address) (Position, error) {
	v, err := s.GetValue(ctx, positionKey(user))
	if errors.Is(err, database.ErrNotFound) {
		return Position{}, nil
	}
	if err != nil {
		return Position{}, err
	}
	var p Position
	if err := borsh.Deserialize(&p, v); err != nil {
		return Position{}, err
	}
	return p, nil
}

func setPosition(ctx context.Context, s state.Mutable, user codec.Address, p Position) error {
	v, err := borsh.Serialize(p)
	if err != nil {
		return err
	}
	return s.Insert(ctx, positionKey(user), v)
}

func getTotalStaked(ctx context.Context, s state.Immutable) (amount.U128, error) {
	v, err := s.GetValue(ctx, totalStakedKey)
	if errors.Is(err, database.ErrNotFound) {
		return amount.Zero, nil
	}
	if err != nil {
		return amount.Zero, err
	}
	if len(v) != consts.Uint128Len {
		return amount.Zero, codec.ErrInvalidSize
	}
	var total amount.U128
	copy(total[:], v)
	return total, nil
}

func setTotalStaked(ctx context.Context, s state.Mutable, total amount.U128) error {
	return s.Insert(ctx, totalStakedKey, total[:])
}
