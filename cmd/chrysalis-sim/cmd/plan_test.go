// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/contracts/chrysalis"
	"github.com/chrysalis-labs/chrysalis/runtime"
)

func TestValidateAssertion(t *testing.T) {
	tests := []struct {
		name      string
		actual    uint64
		assertion ResultAssertion
		expected  bool
		wantErr   error
	}{
		{"IsGreaterThan", 5, ResultAssertion{Operator: NumericGt, Value: "3"}, true, nil},
		{"IsNotGreaterThan", 5, ResultAssertion{Operator: NumericGt, Value: "10"}, false, nil},
		{"IsLessThan", 5, ResultAssertion{Operator: NumericLt, Value: "10"}, true, nil},
		{"IsNotLessThan", 5, ResultAssertion{Operator: NumericLt, Value: "2"}, false, nil},
		{"IsEqualTo", 5, ResultAssertion{Operator: NumericEq, Value: "5"}, true, nil},
		{"IsNotEqual", 5, ResultAssertion{Operator: NumericNe, Value: "3"}, true, nil},
		{"IsGreaterThanOrEqualToSame", 5, ResultAssertion{Operator: NumericGe, Value: "5"}, true, nil},
		{"IsLessThanOrEqualToSmaller", 5, ResultAssertion{Operator: NumericLe, Value: "1"}, false, nil},
		{"UnknownOperator", 5, ResultAssertion{Operator: "~", Value: "1"}, false, ErrInvalidOperator},
		{"ParseNothingFails", 5, ResultAssertion{Operator: NumericEq}, false, ErrFailedParamTypeCast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			result, err := validateAssertion(uint256.NewInt(tt.actual), &tt.assertion)
			require.ErrorIs(err, tt.wantErr)
			require.Equal(tt.expected, result)
		})
	}
}

func TestUnmarshalPlan(t *testing.T) {
	require := require.New(t)

	yamlPlan := []byte(`
name: yaml
steps:
  - endpoint: key
    name: alice
  - endpoint: clock
    method: advance
    params:
      - type: u64
        value: 10
`)
	p, err := unmarshalPlan(yamlPlan)
	require.NoError(err)
	require.Equal("yaml", p.Name)
	require.Len(p.Steps, 2)
	require.Equal(KeyEndpoint, p.Steps[0].Endpoint)
	require.NoError(p.Verify())

	jsonPlan := []byte(`{"name":"json","steps":[{"endpoint":"readonly","contract":"pool","method":"get_stake","returns":"u128","params":[{"type":"u128","value":"7"}],"require":{"result":{"operator":">=","value":"1"}}}]}`)
	p, err = unmarshalPlan(jsonPlan)
	require.NoError(err)
	require.Equal("json", p.Name)
	require.Equal(Uint128, p.Steps[0].Returns)
	require.Equal(NumericGe, p.Steps[0].Require.Result.Operator)
	require.NoError(p.Verify())

	_, err = unmarshalPlan([]byte("\t:::"))
	require.ErrorIs(err, ErrInvalidConfigFormat)
}

func TestVerifyPlan(t *testing.T) {
	tests := []struct {
		name string
		step Step
		err  error
	}{
		{"UnknownEndpoint", Step{Endpoint: "teleport"}, ErrInvalidEndpoint},
		{"KeyWithoutName", Step{Endpoint: KeyEndpoint}, ErrInvalidStep},
		{"DeployWithoutName", Step{Endpoint: DeployEndpoint, Method: "token"}, ErrInvalidStep},
		{"ExecuteWithoutCaller", Step{Endpoint: ExecuteEndpoint, Contract: "pool", Method: "stake"}, ErrInvalidStep},
		{"ReadOnlyWithoutMethod", Step{Endpoint: ReadOnlyEndpoint, Contract: "pool"}, ErrInvalidStep},
		{"ClockUnknownMethod", Step{Endpoint: ClockEndpoint, Method: "rewind", Params: []Parameter{{Type: Uint64, Value: 1}}}, ErrInvalidMethod},
		{"ClockWithoutParam", Step{Endpoint: ClockEndpoint, Method: ClockAdvance}, ErrInvalidParamType},
		{"BadOperator", Step{Endpoint: KeyEndpoint, Name: "a", Require: &Require{Result: &ResultAssertion{Operator: "=~"}}}, ErrInvalidOperator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Plan{Steps: []Step{tt.step}}).Verify()
			require.ErrorIs(t, err, ErrInvalidStep)
			require.ErrorIs(t, err, tt.err)
		})
	}

	require.ErrorIs(t, (&Plan{}).Verify(), ErrInvalidPlan)
}

type staticResolver map[string]codec.Address

func (s staticResolver) keyAddress(name string) (codec.Address, error) {
	if addr, ok := s[name]; ok {
		return addr, nil
	}
	return codec.EmptyAddress, ErrNamedKeyNotFound
}

func (s staticResolver) contractAddress(name string) (codec.Address, error) {
	if addr, ok := s[name]; ok {
		return addr, nil
	}
	return codec.EmptyAddress, ErrNamedContractNotFound
}

func TestConvertParams(t *testing.T) {
	require := require.New(t)
	alice := codec.CreateAddress(0, [32]byte{1})
	pool := codec.CreateAddress(runtime.ContractTypeID, [32]byte{2})
	r := staticResolver{"alice": alice, "pool": pool}

	b, err := convertParams(r, []Parameter{
		{Type: Key, Value: "alice"},
		{Type: Contract, Value: "pool"},
		{Type: Contract, Value: "pool"},
		{Type: Issuance, Value: "custodial"},
	})
	require.NoError(err)
	args, err := runtime.Deserialize[chrysalis.InitializeArgs](b)
	require.NoError(err)
	require.Equal(alice, args.Admin)
	require.Equal(pool, args.StakedToken)
	require.Equal(pool, args.RewardToken)
	require.Equal(chrysalis.IssuanceCustodial, args.Issuance)

	b, err = convertParams(r, []Parameter{
		{Type: Address, Value: alice.String()},
		{Type: Uint128, Value: "170141183460469231731687303715884105727"},
	})
	require.NoError(err)
	amountArgs, err := runtime.Deserialize[chrysalis.AmountArgs](b)
	require.NoError(err)
	require.Equal(alice, amountArgs.User)
	require.Equal("170141183460469231731687303715884105727", amountArgs.Amount.String())

	// amounts stop at 2^127-1
	_, err = convertParams(r, []Parameter{{Type: Uint128, Value: "340282366920938463463374607431768211455"}})
	require.ErrorIs(err, ErrFailedParamTypeCast)

	// json numbers arrive as float64, yaml numbers as int
	b, err = convertParams(r, []Parameter{
		{Type: Key, Value: "alice"},
		{Type: Uint32, Value: float64(500)},
	})
	require.NoError(err)
	claim, err := runtime.Deserialize[chrysalis.ClaimArgs](b)
	require.NoError(err)
	require.Equal(uint32(500), claim.Rate)

	_, err = convertParams(r, []Parameter{{Type: Uint8, Value: 256}})
	require.ErrorIs(err, ErrFailedParamTypeCast)
	_, err = convertParams(r, []Parameter{{Type: Uint64, Value: -1}})
	require.ErrorIs(err, ErrFailedParamTypeCast)
	_, err = convertParams(r, []Parameter{{Type: Uint64, Value: 1.5}})
	require.ErrorIs(err, ErrFailedParamTypeCast)
	_, err = convertParams(r, []Parameter{{Type: Key, Value: "bob"}})
	require.ErrorIs(err, ErrNamedKeyNotFound)
	_, err = convertParams(r, []Parameter{{Type: Bool, Value: "yes"}})
	require.ErrorIs(err, ErrFailedParamTypeCast)
	_, err = convertParams(r, []Parameter{{Type: PositionType, Value: 1}})
	require.ErrorIs(err, ErrInvalidParamType)
}

func TestDecodeResult(t *testing.T) {
	require := require.New(t)

	b, err := runtime.Serialize(amount.FromUint64(50))
	require.NoError(err)
	v, err := decodeResult(Uint128, b)
	require.NoError(err)
	n, err := numeric(v)
	require.NoError(err)
	require.Equal(uint64(50), n.Uint64())

	b, err = runtime.Serialize(chrysalis.Position{Amount: amount.FromUint64(3), LastUpdate: 9})
	require.NoError(err)
	v, err = decodeResult(PositionType, b)
	require.NoError(err)
	require.Equal(chrysalis.Position{Amount: amount.FromUint64(3), LastUpdate: 9}, v)
	_, err = numeric(v)
	require.ErrorIs(err, ErrNotNumeric)

	v, err = decodeResult("", nil)
	require.NoError(err)
	require.Nil(v)
	v, err = decodeResult("", []byte{1, 2})
	require.NoError(err)
	require.Equal(codec.Bytes{1, 2}, v)
}
