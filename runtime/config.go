// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

type Config struct {
	// Maximum number of nested contract calls, the entry call included.
	MaxCallDepth int `json:"maxCallDepth"`
	// Allows a contract already on the call stack to be called again.
	AllowReentrancy bool `json:"allowReentrancy"`
}

func NewDefaultConfig() Config {
	return Config{
		MaxCallDepth:    defaultMaxCallDepth,
		AllowReentrancy: false,
	}
}
