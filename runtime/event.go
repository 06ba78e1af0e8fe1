// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "github.com/chrysalis-labs/chrysalis/codec"

// Event is emitted by a contract and returned with the transaction result.
// Events of calls that fail are dropped with the state changes.
type Event struct {
	Contract codec.Address `json:"contract"`
	Name     string        `json:"name"`
	Data     codec.Bytes   `json:"data"`
}
