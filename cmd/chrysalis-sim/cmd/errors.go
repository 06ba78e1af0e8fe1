// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInvalidPlan           = errors.New("invalid plan")
	ErrInvalidStep           = errors.New("invalid step")
	ErrInvalidEndpoint       = errors.New("invalid endpoint")
	ErrInvalidMethod         = errors.New("invalid method")
	ErrInvalidParamType      = errors.New("invalid param type")
	ErrFailedParamTypeCast   = errors.New("failed to cast param type")
	ErrInvalidConfigFormat   = errors.New("invalid config format")
	ErrNamedKeyNotFound      = errors.New("named key not found")
	ErrNamedContractNotFound = errors.New("named contract not found")
	ErrDuplicateContractName = errors.New("duplicate contract name")
	ErrInvalidOperator       = errors.New("invalid operator")
	ErrAssertionFailed       = errors.New("assertion failed")
	ErrExpectedFailure       = errors.New("expected step to fail")
	ErrNotNumeric            = errors.New("result is not numeric")
	ErrManualClockRequired   = errors.New("plan requires the manual clock")
)
