// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"errors"

	"github.com/chrysalis-labs/chrysalis/auth"
)

var (
	ErrInvalidSignature    = auth.ErrInvalidSignature
	ErrNoSigners           = auth.ErrNoSigners
	ErrExpired             = errors.New("tx expired")
	ErrDuplicateTx         = errors.New("duplicate tx")
	ErrTimestampRegression = errors.New("timestamp regression")
	ErrCorruptMetadata     = errors.New("corrupt metadata")
)
