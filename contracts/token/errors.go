// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import "errors"

var (
	ErrAlreadyInitialized  = errors.New("token already initialized")
	ErrNotInitialized      = errors.New("token not initialized")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidMetadata     = errors.New("invalid metadata")
)
