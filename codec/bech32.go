// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	fromBits = 8
	toBits   = 5
)

// Bech32 returns the human readable form of [a] under [hrp].
func Bech32(hrp string, a Address) (string, error) {
	p, err := bech32.ConvertBits(a[:], fromBits, toBits, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, p)
}

// MustBech32 is used for logging and output where [a] is always valid.
func MustBech32(hrp string, a Address) string {
	s, err := Bech32(hrp, a)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseBech32 decodes [s] and checks it was produced under [hrp].
func ParseBech32(hrp string, s string) (Address, error) {
	phrp, p, err := bech32.Decode(s)
	if err != nil {
		return EmptyAddress, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if phrp != hrp {
		return EmptyAddress, ErrWrongHRP
	}
	b, err := bech32.ConvertBits(p, toBits, fromBits, false)
	if err != nil {
		return EmptyAddress, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(b) != AddressLen {
		return EmptyAddress, ErrInvalidSize
	}
	return Address(b), nil
}
