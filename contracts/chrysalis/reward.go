// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chrysalis

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/chrysalis-labs/chrysalis/amount"
)

var rewardDenominator = uint256.NewInt(BasisPoints * RewardPeriod)

// Elapsed is the accrual time between [lastUpdate] and [now]. A clock that
// has not moved past [lastUpdate] accrues nothing.
func Elapsed(now uint64, lastUpdate uint64) uint64 {
	if now <= lastUpdate {
		return 0
	}
	return now - lastUpdate
}

// Reward returns floor(staked * rate * elapsed / (BasisPoints * RewardPeriod)).
// The product is computed at 512 bits so it never wraps.
func Reward(staked amount.U128, rate uint32, elapsed uint64) (amount.U128, error) {
	if rate > MaxRate {
		return amount.Zero, fmt.Errorf("%w: %d > %d", ErrInvalidRate, rate, MaxRate)
	}
	if staked.IsZero() || rate == 0 || elapsed == 0 {
		return amount.Zero, nil
	}
	scale := new(uint256.Int).Mul(uint256.NewInt(uint64(rate)), uint256.NewInt(elapsed))
	reward, overflow := new(uint256.Int).MulDivOverflow(staked.Int(), scale, rewardDenominator)
	if overflow {
		return amount.Zero, ErrOverflow
	}
	return amount.FromInt(reward)
}
