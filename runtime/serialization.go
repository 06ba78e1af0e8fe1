// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"fmt"

	"github.com/near/borsh-go"
)

type customSerialize interface {
	customSerialize() ([]byte, error)
}

type customDeserialize[T any] interface {
	customDeserialize([]byte) (*T, error)
}

func deserialize[T any](data []byte) (*T, error) {
	result := new(T)
	var err error
	switch t := any(*result).(type) {
	case customDeserialize[T]:
		return t.customDeserialize(data)
	default:
		err = borsh.Deserialize(result, data)
	}
	return result, err
}

func serialize[T any](value T) ([]byte, error) {
	switch t := any(value).(type) {
	case nil:
		return nil, nil
	case customSerialize:
		return t.customSerialize()
	default:
		return borsh.Serialize(value)
	}
}

// Serialize encodes [value] the way exports receive and return values.
func Serialize[T any](value T) ([]byte, error) {
	return serialize(value)
}

// Deserialize decodes a value produced by [Serialize] or an export.
func Deserialize[T any](data []byte) (T, error) {
	v, err := deserialize[T](data)
	if err != nil {
		var zero T
		return zero, err
	}
	return *v, nil
}

// SerializeParams concatenates the encoding of each value. The result
// decodes as a struct whose fields are [values] in order.
func SerializeParams(values ...any) ([]byte, error) {
	var b []byte
	for i, v := range values {
		vb, err := serialize(v)
		if err != nil {
			return nil, fmt.Errorf("%w: param %d: %w", ErrInvalidParams, i, err)
		}
		b = append(b, vb...)
	}
	return b, nil
}

/// Contains some common types that cross the call boundary

// RawBytes is passed through without any encoding.
type RawBytes []byte

func (r RawBytes) customSerialize() ([]byte, error) {
	return r, nil
}

func (RawBytes) customDeserialize(data []byte) (*RawBytes, error) {
	rawData := RawBytes(data)
	return &rawData, nil
}

// Unit is the input of exports that take no arguments.
type Unit struct{}
