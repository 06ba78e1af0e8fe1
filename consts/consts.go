// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen    = 1
	BoolLen    = 1
	Uint32Len  = 4
	Uint64Len  = 8
	Uint128Len = 16
	IDLen      = 32
	MaxUint32  = ^uint32(0)
	MaxUint64  = ^uint64(0)

	// Name is used as the JSON-RPC service name, the bech32 human readable
	// part of addresses and the metrics namespace.
	Name = "chrysalis"
	HRP  = "chrys"
)
