// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type pair struct {
	A uint64
	B string
}

func TestSerializeParamsDecodesAsStruct(t *testing.T) {
	require := require.New(t)

	b, err := SerializeParams(uint64(9), "nine")
	require.NoError(err)
	p, err := Deserialize[pair](b)
	require.NoError(err)
	require.Equal(pair{A: 9, B: "nine"}, p)

	b, err = SerializeParams()
	require.NoError(err)
	require.Empty(b)
}

func TestRawBytesPassThrough(t *testing.T) {
	require := require.New(t)

	raw := RawBytes{1, 2, 3}
	b, err := Serialize(raw)
	require.NoError(err)
	require.Equal([]byte{1, 2, 3}, b)

	out, err := Deserialize[RawBytes](b)
	require.NoError(err)
	require.Equal(raw, out)
}
