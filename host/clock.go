// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"time"

	"go.uber.org/atomic"
)

var (
	_ Clock = SystemClock{}
	_ Clock = (*ManualClock)(nil)
)

// Clock is the source of ledger time, in unix seconds.
type Clock interface {
	Now() uint64
}

type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// ManualClock only moves when told to. Simulations and tests use it to
// control accrual periods.
type ManualClock struct {
	now atomic.Uint64
}

func NewManualClock(start uint64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(start)
	return c
}

func (c *ManualClock) Now() uint64 {
	return c.now.Load()
}

func (c *ManualClock) Set(ts uint64) {
	c.now.Store(ts)
}

// Advance moves the clock forward by [seconds] and returns the new time.
func (c *ManualClock) Advance(seconds uint64) uint64 {
	return c.now.Add(seconds)
}
