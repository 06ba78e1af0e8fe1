// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// ContractID names a contract implementation. Many accounts (instances) can
// share one implementation; each instance has its own state space.
type ContractID string

// Function is the raw form of an export: borsh encoded params in, borsh
// encoded result out.
type Function func(*Context, []byte) ([]byte, error)

type Export struct {
	Fn Function
	// Read-only exports cannot write state, emit events or call mutating
	// exports.
	ReadOnly bool
}

// Contract is a native contract implementation.
type Contract struct {
	id      ContractID
	exports map[string]Export
}

func NewContract(id ContractID) *Contract {
	return &Contract{id: id, exports: make(map[string]Export)}
}

func (c *Contract) ID() ContractID {
	return c.id
}

// Export registers a state changing function.
func (c *Contract) Export(name string, fn Function) *Contract {
	c.exports[name] = Export{Fn: fn}
	return c
}

// ExportReadOnly registers a function that only reads state.
func (c *Contract) ExportReadOnly(name string, fn Function) *Contract {
	c.exports[name] = Export{Fn: fn, ReadOnly: true}
	return c
}

func (c *Contract) Lookup(name string) (Export, bool) {
	e, ok := c.exports[name]
	return e, ok
}

// Functions returns the sorted export names.
func (c *Contract) Functions() []string {
	names := maps.Keys(c.exports)
	sort.Strings(names)
	return names
}

// Fn adapts a typed function to a [Function].
func Fn[T any, U any](f func(*Context, T) (U, error)) Function {
	return func(c *Context, params []byte) ([]byte, error) {
		args, err := deserialize[T](params)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
		out, err := f(c, *args)
		if err != nil {
			return nil, err
		}
		return serialize(out)
	}
}

// FnNoOutput adapts a typed function without a result.
func FnNoOutput[T any](f func(*Context, T) error) Function {
	return func(c *Context, params []byte) ([]byte, error) {
		args, err := deserialize[T](params)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
		return nil, f(c, *args)
	}
}

// FnNoInput adapts a typed function without arguments.
func FnNoInput[U any](f func(*Context) (U, error)) Function {
	return func(c *Context, _ []byte) ([]byte, error) {
		out, err := f(c)
		if err != nil {
			return nil, err
		}
		return serialize(out)
	}
}
