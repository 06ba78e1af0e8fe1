// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chrysalis

import (
	"fmt"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/codec"
)

// Issuance decides where derivative and reward tokens come from. It is fixed
// at initialization.
type Issuance uint8

const (
	// IssuanceMint mints derivative tokens on stake, burns them on unstake
	// and mints rewards.
	IssuanceMint Issuance = iota
	// IssuanceCustodial pays derivative tokens and rewards out of the
	// contract's own reward token balance.
	IssuanceCustodial
)

func (i Issuance) Valid() bool {
	return i == IssuanceMint || i == IssuanceCustodial
}

func (i Issuance) String() string {
	switch i {
	case IssuanceMint:
		return "mint"
	case IssuanceCustodial:
		return "custodial"
	default:
		return fmt.Sprintf("issuance(%d)", uint8(i))
	}
}

func ParseIssuance(s string) (Issuance, error) {
	switch s {
	case "mint":
		return IssuanceMint, nil
	case "custodial":
		return IssuanceCustodial, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidIssuance, s)
	}
}

func (i Issuance) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, ErrInvalidIssuance
	}
	return []byte(i.String()), nil
}

func (i *Issuance) UnmarshalText(text []byte) error {
	parsed, err := ParseIssuance(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

type Config struct {
	Admin       codec.Address `json:"admin"`
	StakedToken codec.Address `json:"stakedToken"`
	RewardToken codec.Address `json:"rewardToken"`
	Issuance    Issuance      `json:"issuance"`
}

// Position is a user's stake. LastUpdate is the ledger time rewards were
// last accrued from.
type Position struct {
	Amount     amount.U128 `json:"amount"`
	LastUpdate uint64      `json:"lastUpdate"`
}

type InitializeArgs struct {
	Admin       codec.Address
	StakedToken codec.Address
	RewardToken codec.Address
	Issuance    Issuance
}

// AmountArgs are the arguments of stake, unstake and fund_rewards.
type AmountArgs struct {
	User   codec.Address
	Amount amount.U128
}

type ClaimArgs struct {
	User codec.Address
	// in basis points
	Rate uint32
}

type StakeEvent struct {
	User   codec.Address
	Amount amount.U128
	// position amount after the change
	Staked amount.U128
}

type ClaimEvent struct {
	User       codec.Address
	Reward     amount.U128
	LastUpdate uint64
}

type FundEvent struct {
	From   codec.Address
	Amount amount.U128
}
