// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/state"
	"github.com/chrysalis-labs/chrysalis/tstate"
)

func TestContractStateManager(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	view := tstate.New(state.NewMemoryDatabase()).NewView()
	m := NewContractStateManager(view, []byte{0x9})

	_, err := m.GetAccountContract(ctx, codec.CreateAddress(ContractTypeID, ids.GenerateTestID()))
	require.ErrorIs(err, ErrUnknownAccount)

	_, err = m.NewAccountWithContract(ctx, "", nil)
	require.ErrorIs(err, ErrInvalidContractID)

	a, err := m.NewAccountWithContract(ctx, "token", []byte("salt"))
	require.NoError(err)
	require.True(IsContract(a))
	id, err := m.GetAccountContract(ctx, a)
	require.NoError(err)
	require.Equal(ContractID("token"), id)

	_, err = m.NewAccountWithContract(ctx, "token", []byte("salt"))
	require.ErrorIs(err, ErrAccountExists)

	// account state is isolated from account metadata and other accounts
	b, err := m.NewAccountWithContract(ctx, "token", []byte("other"))
	require.NoError(err)
	require.NoError(m.GetContractState(a).Insert(ctx, []byte("k"), []byte("a")))
	_, err = m.GetContractState(b).GetValue(ctx, []byte("k"))
	require.Error(err)
	v, err := m.GetContractState(a).GetValue(ctx, []byte("k"))
	require.NoError(err)
	require.Equal([]byte("a"), v)
}
