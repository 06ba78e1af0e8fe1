// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/chrysalis-labs/chrysalis/consts"
)

const AddressLen = 1 + consts.IDLen

// Address is a 33 byte identifier: a type byte followed by a 32 byte id.
// Keys and contract instances share the address space and are told apart
// by the type byte.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	var a Address
	a[0] = typeID
	copy(a[1:], id[:])
	return a
}

func (a Address) TypeID() uint8 {
	return a[0]
}

func (a Address) Empty() bool {
	return a == EmptyAddress
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses either the hex or the bech32 form of an address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := ParseAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress accepts a 0x-prefixed (or bare) hex address or a bech32
// address carrying [consts.HRP].
func ParseAddress(s string) (Address, error) {
	if strings.HasPrefix(s, consts.HRP+"1") {
		return ParseBech32(consts.HRP, s)
	}
	b, err := LoadHex(s, AddressLen)
	if err != nil {
		return EmptyAddress, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return Address(b), nil
}
