// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chrysalis

import "github.com/chrysalis-labs/chrysalis/runtime"

const (
	ContractID runtime.ContractID = "chrysalis"

	// BasisPoints is a rate of 100%.
	BasisPoints = 10_000
	// MaxRate caps the rate accepted by claim and preview_claim.
	MaxRate = BasisPoints
	// RewardPeriod is the number of seconds over which a stake earns its
	// rate once.
	RewardPeriod = 1_000_000
)
