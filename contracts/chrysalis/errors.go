// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chrysalis

import (
	"errors"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/runtime"
)

var (
	ErrInsufficientBalance       = errors.New("insufficient balance")
	ErrInsufficientStake         = errors.New("insufficient stake")
	ErrNotInitialized            = errors.New("not initialized")
	ErrAlreadyInitialized        = errors.New("already initialized")
	ErrUnauthorized              = runtime.ErrUnauthorized
	ErrInvalidAmount             = errors.New("invalid amount")
	ErrInvalidRate               = errors.New("invalid rate")
	ErrInvalidAddress            = errors.New("invalid address")
	ErrInvalidIssuance           = errors.New("invalid issuance mode")
	ErrExternalCallFailed        = errors.New("external call failed")
	ErrInsufficientRewardReserve = errors.New("insufficient reward reserve")
	ErrWrongIssuanceMode         = errors.New("wrong issuance mode")
	ErrOverflow                  = amount.ErrOverflow
)
