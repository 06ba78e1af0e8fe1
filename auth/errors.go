// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"errors"

	"github.com/chrysalis-labs/chrysalis/crypto/ed25519"
)

var (
	ErrNoSigners        = errors.New("no signers")
	ErrDuplicateSigner  = errors.New("duplicate signer")
	ErrInvalidSignature = ed25519.ErrInvalidSignature
	ErrInvalidTx        = errors.New("invalid tx")
	ErrEmptyFunction    = errors.New("empty function name")
)
