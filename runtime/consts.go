// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

const (
	// ContractTypeID is the address type byte of every contract instance.
	ContractTypeID uint8 = 1

	defaultMaxCallDepth = 8
)
