// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "errors"

var (
	ErrUnknownContract    = errors.New("unknown contract")
	ErrUnknownAccount     = errors.New("unknown account")
	ErrAccountExists      = errors.New("account already exists")
	ErrDuplicateContract  = errors.New("contract already registered")
	ErrUnknownFunction    = errors.New("unknown function")
	ErrReentrancy         = errors.New("reentrant call")
	ErrCallDepthExceeded  = errors.New("call depth exceeded")
	ErrReadOnly           = errors.New("state change in read-only call")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidParams      = errors.New("invalid params")
	ErrInvalidContractID  = errors.New("invalid contract id")
	ErrNotContractAddress = errors.New("not a contract address")
)
