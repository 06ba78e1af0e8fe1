// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidClock    = errors.New("invalid clock")
	ErrMissingDataDir  = errors.New("missing data directory")
)
