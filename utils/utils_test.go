// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestToID(t *testing.T) {
	require := require.New(t)
	a := ToID([]byte("a"))
	require.Equal(a, ToID([]byte("a")))
	require.NotEqual(a, ToID([]byte("b")))
	require.NotEqual(ids.Empty, a)
}

func TestSaveLoadBytes(t *testing.T) {
	require := require.New(t)
	filename := filepath.Join(t.TempDir(), "SaveBytes")

	id := ids.GenerateTestID()
	require.NoError(SaveBytes(filename, id[:]))
	require.FileExists(filename)

	b, err := LoadBytes(filename, ids.IDLen)
	require.NoError(err)
	require.Equal(id[:], b)

	_, err = LoadBytes(filename, 5)
	require.ErrorIs(err, ErrInvalidSize)

	_, err = LoadBytes(filepath.Join(t.TempDir(), "missing"), ids.IDLen)
	require.ErrorIs(err, os.ErrNotExist)
}

func TestInitSubDirectory(t *testing.T) {
	require := require.New(t)
	p, err := InitSubDirectory(t.TempDir(), "db")
	require.NoError(err)
	require.DirExists(p)
}
