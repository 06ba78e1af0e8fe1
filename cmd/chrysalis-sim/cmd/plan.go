// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/holiman/uint256"
	"gopkg.in/yaml.v2"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/contracts/chrysalis"
	"github.com/chrysalis-labs/chrysalis/contracts/token"
	"github.com/chrysalis-labs/chrysalis/runtime"
)

type Plan struct {
	// The name of the plan.
	Name string `json:"name" yaml:"name"`
	// A description of the plan.
	Description string `json:"description" yaml:"description"`
	// Steps to perform during simulation.
	Steps []Step `json:"steps" yaml:"steps"`
}

type Step struct {
	// Description of the step.
	Description string `json:"description" yaml:"description"`
	// The API endpoint to call. (required)
	Endpoint Endpoint `json:"endpoint" yaml:"endpoint"`
	// The contract function, contract id or clock operation.
	Method string `json:"method" yaml:"method"`
	// Named key signing an execute step.
	Caller string `json:"caller,omitempty" yaml:"caller,omitempty"`
	// Additional named keys co-signing an execute step.
	Signers []string `json:"signers,omitempty" yaml:"signers,omitempty"`
	// Named deployment the step calls.
	Contract string `json:"contract,omitempty" yaml:"contract,omitempty"`
	// Name bound by key and deploy steps.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// The parameters to pass to the method.
	Params []Parameter `json:"params,omitempty" yaml:"params,omitempty"`
	// How to decode the result.
	Returns Type `json:"returns,omitempty" yaml:"returns,omitempty"`
	// Define required assertions against this step.
	Require *Require `json:"require,omitempty" yaml:"require,omitempty"`
}

type Endpoint string

const (
	// Create or load a named key.
	KeyEndpoint Endpoint = "key"
	// Deploy a contract instance and bind it to a name.
	DeployEndpoint Endpoint = "deploy"
	// Sign and execute a state changing call.
	ExecuteEndpoint Endpoint = "execute"
	// Make a read-only call and return the result.
	ReadOnlyEndpoint Endpoint = "readonly"
	// Move the ledger clock.
	ClockEndpoint Endpoint = "clock"
)

const (
	ClockAdvance = "advance"
	ClockSet     = "set"
)

type Parameter struct {
	// The optional name of the parameter. This is only used for readability.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// The type of the parameter. (required)
	Type Type `json:"type" yaml:"type"`
	// The value of the parameter. (required)
	Value interface{} `json:"value" yaml:"value"`
}

type Type string

const (
	Address  Type = "address"
	Key      Type = "key"
	Contract Type = "contract"
	Uint128  Type = "u128"
	Uint64   Type = "u64"
	Uint32   Type = "u32"
	Uint8    Type = "u8"
	String   Type = "string"
	Bool     Type = "bool"
	Issuance Type = "issuance"
	// Result only types.
	PositionType Type = "position"
	ConfigType   Type = "config"
	MetadataType Type = "metadata"
)

type Require struct {
	// Assertion against the numeric result of the step.
	Result *ResultAssertion `json:"result,omitempty" yaml:"result,omitempty"`
	// When set the step must fail with an error containing this text.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type ResultAssertion struct {
	// The operator to use for the assertion.
	Operator Operator `json:"operator" yaml:"operator"`
	// The value to compare against, in decimal.
	Value string `json:"value" yaml:"value"`
}

type Operator string

const (
	NumericGt Operator = ">"
	NumericLt Operator = "<"
	NumericGe Operator = ">="
	NumericLe Operator = "<="
	NumericEq Operator = "=="
	NumericNe Operator = "!="
)

type Response struct {
	// The index of the step that generated this response.
	ID int `json:"id"`
	// The result of the step.
	Result *Result `json:"result,omitempty"`
	// The error message if available.
	Error string `json:"error,omitempty"`
}

type Result struct {
	TxID      string      `json:"txId,omitempty"`
	Height    uint64      `json:"height,omitempty"`
	Timestamp uint64      `json:"timestamp,omitempty"`
	Response  interface{} `json:"response,omitempty"`
	Events    []string    `json:"events,omitempty"`
	Msg       string      `json:"msg,omitempty"`
}

func (r *Response) Print(w io.Writer) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func unmarshalPlan(b []byte) (*Plan, error) {
	var p Plan
	switch {
	case json.Valid(b):
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, err
		}
	case isYAML(b):
		if err := yaml.Unmarshal(b, &p); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidConfigFormat
	}
	return &p, nil
}

func isYAML(b []byte) bool {
	var y map[string]interface{}
	return yaml.Unmarshal(b, &y) == nil
}

// Verify checks every step has what its endpoint needs.
func (p *Plan) Verify() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	for i, step := range p.Steps {
		if err := step.verify(); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}
	return nil
}

func (s *Step) verify() error {
	switch s.Endpoint {
	case KeyEndpoint:
		if len(s.Name) == 0 {
			return fmt.Errorf("%w: key step requires a name", ErrInvalidStep)
		}
	case DeployEndpoint:
		if len(s.Method) == 0 || len(s.Name) == 0 {
			return fmt.Errorf("%w: deploy step requires a contract id method and a name", ErrInvalidStep)
		}
	case ExecuteEndpoint:
		if len(s.Caller) == 0 {
			return fmt.Errorf("%w: execute step requires a caller", ErrInvalidStep)
		}
		fallthrough
	case ReadOnlyEndpoint:
		if len(s.Contract) == 0 || len(s.Method) == 0 {
			return fmt.Errorf("%w: call step requires a contract and a method", ErrInvalidStep)
		}
	case ClockEndpoint:
		if s.Method != ClockAdvance && s.Method != ClockSet {
			return fmt.Errorf("%w: %q", ErrInvalidMethod, s.Method)
		}
		if len(s.Params) != 1 || s.Params[0].Type != Uint64 {
			return fmt.Errorf("%w: clock step takes one u64", ErrInvalidParamType)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, s.Endpoint)
	}
	if s.Require != nil && s.Require.Result != nil {
		if _, err := parseOperator(s.Require.Result.Operator); err != nil {
			return err
		}
	}
	return nil
}

func parseOperator(op Operator) (Operator, error) {
	switch op {
	case NumericGt, NumericLt, NumericGe, NumericLe, NumericEq, NumericNe:
		return op, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOperator, op)
	}
}

// validateAssertion compares [actual] against the assertion value.
func validateAssertion(actual *uint256.Int, assertion *ResultAssertion) (bool, error) {
	op, err := parseOperator(assertion.Operator)
	if err != nil {
		return false, err
	}
	value, err := uint256.FromDecimal(assertion.Value)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %w", ErrFailedParamTypeCast, assertion.Value, err)
	}

	cmp := actual.Cmp(value)
	switch op {
	case NumericGt:
		return cmp > 0, nil
	case NumericLt:
		return cmp < 0, nil
	case NumericGe:
		return cmp >= 0, nil
	case NumericLe:
		return cmp <= 0, nil
	case NumericEq:
		return cmp == 0, nil
	default:
		return cmp != 0, nil
	}
}

// toUint64 accepts the numeric forms json and yaml decode to, and decimal
// strings.
func toUint64(v interface{}) (uint64, error) {
	switch v := v.(type) {
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%w: negative value %d", ErrFailedParamTypeCast, v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("%w: negative value %d", ErrFailedParamTypeCast, v)
		}
		return uint64(v), nil
	case uint64:
		return v, nil
	case float64:
		if v < 0 || v != math.Trunc(v) || v >= math.MaxUint64 {
			return 0, fmt.Errorf("%w: %v is not a u64", ErrFailedParamTypeCast, v)
		}
		return uint64(v), nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrFailedParamTypeCast, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrFailedParamTypeCast, v)
	}
}

func toUintN(v interface{}, limit uint64) (uint64, error) {
	n, err := toUint64(v)
	if err != nil {
		return 0, err
	}
	if n > limit {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrFailedParamTypeCast, n, limit)
	}
	return n, nil
}

func toU128(v interface{}) (amount.U128, error) {
	if s, ok := v.(string); ok {
		u, err := amount.Parse(s)
		if err != nil {
			return amount.U128{}, fmt.Errorf("%w: %w", ErrFailedParamTypeCast, err)
		}
		return u, nil
	}
	n, err := toUint64(v)
	if err != nil {
		return amount.U128{}, err
	}
	return amount.FromUint64(n), nil
}

func toString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T is not a string", ErrFailedParamTypeCast, v)
	}
	return s, nil
}

// resolver maps plan names to addresses.
type resolver interface {
	keyAddress(name string) (codec.Address, error)
	contractAddress(name string) (codec.Address, error)
}

// convertParam returns the typed value a contract export decodes.
func convertParam(r resolver, p Parameter) (interface{}, error) {
	switch p.Type {
	case Address:
		s, err := toString(p.Value)
		if err != nil {
			return nil, err
		}
		return codec.ParseAddress(s)
	case Key:
		s, err := toString(p.Value)
		if err != nil {
			return nil, err
		}
		return r.keyAddress(s)
	case Contract:
		s, err := toString(p.Value)
		if err != nil {
			return nil, err
		}
		return r.contractAddress(s)
	case Uint128:
		return toU128(p.Value)
	case Uint64:
		return toUint64(p.Value)
	case Uint32:
		n, err := toUintN(p.Value, math.MaxUint32)
		return uint32(n), err
	case Uint8:
		n, err := toUintN(p.Value, math.MaxUint8)
		return uint8(n), err
	case String:
		return toString(p.Value)
	case Bool:
		b, ok := p.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not a bool", ErrFailedParamTypeCast, p.Value)
		}
		return b, nil
	case Issuance:
		s, err := toString(p.Value)
		if err != nil {
			return nil, err
		}
		return chrysalis.ParseIssuance(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidParamType, p.Type)
	}
}

func convertParams(r resolver, params []Parameter) ([]byte, error) {
	values := make([]interface{}, 0, len(params))
	for i, p := range params {
		v, err := convertParam(r, p)
		if err != nil {
			return nil, fmt.Errorf("param %d (%s): %w", i, p.Name, err)
		}
		values = append(values, v)
	}
	return runtime.SerializeParams(values...)
}

// decodeResult decodes [b] as [t]. Unknown or empty types return the raw
// bytes.
func decodeResult(t Type, b []byte) (interface{}, error) {
	switch t {
	case Uint128:
		return runtime.Deserialize[amount.U128](b)
	case Uint64:
		return runtime.Deserialize[uint64](b)
	case Uint32:
		return runtime.Deserialize[uint32](b)
	case Uint8:
		return runtime.Deserialize[uint8](b)
	case Bool:
		return runtime.Deserialize[bool](b)
	case String:
		return runtime.Deserialize[string](b)
	case Address, Key, Contract:
		return runtime.Deserialize[codec.Address](b)
	case Issuance:
		return runtime.Deserialize[chrysalis.Issuance](b)
	case PositionType:
		return runtime.Deserialize[chrysalis.Position](b)
	case ConfigType:
		return runtime.Deserialize[chrysalis.Config](b)
	case MetadataType:
		return runtime.Deserialize[token.Metadata](b)
	case "":
		if len(b) == 0 {
			return nil, nil
		}
		return codec.Bytes(b), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidParamType, t)
	}
}

// numeric returns the value assertions compare against.
func numeric(v interface{}) (*uint256.Int, error) {
	switch v := v.(type) {
	case amount.U128:
		return v.Int(), nil
	case uint64:
		return uint256.NewInt(v), nil
	case uint32:
		return uint256.NewInt(uint64(v)), nil
	case uint8:
		return uint256.NewInt(uint64(v)), nil
	case bool:
		if v {
			return uint256.NewInt(1), nil
		}
		return uint256.NewInt(0), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}
