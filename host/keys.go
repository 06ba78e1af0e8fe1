// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/chrysalis-labs/chrysalis/consts"
)

// The runtime owns the 0x0 prefix of the ledger.
const (
	metadataPrefix = 0x1
	txPrefix       = 0x2
)

var (
	heightKey    = []byte{metadataPrefix, 0x0}
	timestampKey = []byte{metadataPrefix, 0x1}
)

func txKey(txID ids.ID) (k []byte) {
	k = make([]byte, 0, 1+ids.IDLen)
	k = append(k, txPrefix)
	k = append(k, txID[:]...)
	return
}

func packUint64(v uint64) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, consts.Uint64Len), v)
}

func unpackUint64(b []byte) (uint64, error) {
	if len(b) != consts.Uint64Len {
		return 0, ErrCorruptMetadata
	}
	return binary.BigEndian.Uint64(b), nil
}
