// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"strings"
)

// AnySize disables the length check in LoadHex.
const AnySize = -1

func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// LoadHex decodes [s], with or without a 0x prefix, and checks that it
// holds exactly [size] bytes unless [size] is AnySize.
func LoadHex(s string, size int) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, err
	}
	if size != AnySize && len(b) != size {
		return nil, ErrInvalidSize
	}
	return b, nil
}

// Bytes is a byte slice that encodes as hex in JSON and YAML.
type Bytes []byte

func (b Bytes) String() string { return ToHex(b) }

func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(ToHex(b)), nil
}

func (b *Bytes) UnmarshalText(text []byte) error {
	decoded, err := LoadHex(string(text), AnySize)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
