// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package amount implements 128-bit token amounts. Amounts are unsigned on
// the wire but capped at 2^127-1 so they stay inside the signed 128-bit range
// token contracts on other ledgers use.
package amount

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/chrysalis-labs/chrysalis/consts"
)

var (
	ErrOverflow  = errors.New("amount overflow")
	ErrUnderflow = errors.New("amount underflow")
	ErrInvalid   = errors.New("invalid amount")

	// maxInt is 2^127-1
	maxInt = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 127), 1)

	Zero = U128{}
	Max  = MustFromInt(maxInt)
)

// U128 is the little-endian wire form of an amount. It serializes with borsh
// as 16 raw bytes.
type U128 [consts.Uint128Len]byte

func FromUint64(v uint64) U128 {
	var u U128
	for i := 0; i < consts.Uint64Len; i++ {
		u[i] = byte(v >> (8 * i))
	}
	return u
}

// FromInt converts [x], failing if it does not fit below [Max].
func FromInt(x *uint256.Int) (U128, error) {
	if x.Gt(maxInt) {
		return Zero, ErrOverflow
	}
	be := x.Bytes32()
	var u U128
	for i := 0; i < consts.Uint128Len; i++ {
		u[i] = be[len(be)-1-i]
	}
	return u, nil
}

func MustFromInt(x *uint256.Int) U128 {
	u, err := FromInt(x)
	if err != nil {
		panic(err)
	}
	return u
}

// Parse reads a base 10 amount.
func Parse(s string) (U128, error) {
	x, err := uint256.FromDecimal(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return FromInt(x)
}

// Int returns a fresh uint256 holding u.
func (u U128) Int() *uint256.Int {
	var be [consts.Uint128Len]byte
	for i := 0; i < consts.Uint128Len; i++ {
		be[i] = u[consts.Uint128Len-1-i]
	}
	return new(uint256.Int).SetBytes(be[:])
}

func (u U128) IsZero() bool {
	return u == Zero
}

// Valid reports whether u is at most [Max].
func (u U128) Valid() bool {
	return u[consts.Uint128Len-1]&0x80 == 0
}

func (u U128) Cmp(v U128) int {
	return u.Int().Cmp(v.Int())
}

func (u U128) Add(v U128) (U128, error) {
	sum, overflow := new(uint256.Int).AddOverflow(u.Int(), v.Int())
	if overflow {
		return Zero, ErrOverflow
	}
	return FromInt(sum)
}

func (u U128) Sub(v U128) (U128, error) {
	diff, underflow := new(uint256.Int).SubOverflow(u.Int(), v.Int())
	if underflow {
		return Zero, ErrUnderflow
	}
	return FromInt(diff)
}

// Uint64 returns the low 64 bits and whether u fits in them.
func (u U128) Uint64() (uint64, bool) {
	x := u.Int()
	return x.Uint64(), x.IsUint64()
}

func (u U128) String() string {
	return u.Int().Dec()
}

// MarshalText returns the decimal form of u.
func (u U128) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *U128) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
