// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrysalis-labs/chrysalis/auth"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/host"
	"github.com/chrysalis-labs/chrysalis/runtime"
)

var _ resolver = (*planRunner)(nil)

func newRunCmd(s *simulator) *cobra.Command {
	return &cobra.Command{
		Use:   "run [path]",
		Short: "Run a simulation plan, use - to read it from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			clock := host.NewManualClock(s.cfg.StartTime)
			h, _, err := s.newHost(cmd.Context(), prometheus.NewRegistry(), clock)
			if err != nil {
				return err
			}
			defer h.Close()

			return newPlanRunner(s.log, h, clock, s.keys, cmd.OutOrStdout()).Run(cmd.Context(), plan)
		},
	}
}

func readPlan(stdin io.Reader, path string) (*Plan, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	plan, err := unmarshalPlan(b)
	if err != nil {
		return nil, err
	}
	return plan, plan.Verify()
}

// planRunner executes plan steps against a host it owns the clock of.
type planRunner struct {
	log   logging.Logger
	host  *host.Host
	clock *host.ManualClock
	keys  *keyStore
	out   io.Writer

	contracts map[string]codec.Address
	nonce     uint64
}

func newPlanRunner(
	log logging.Logger,
	h *host.Host,
	clock *host.ManualClock,
	keys *keyStore,
	out io.Writer,
) *planRunner {
	// a reopened ledger may be ahead of the configured start time
	if ts := h.Timestamp(); clock.Now() < ts {
		clock.Set(ts)
	}
	return &planRunner{
		log:       log,
		host:      h,
		clock:     clock,
		keys:      keys,
		out:       out,
		contracts: make(map[string]codec.Address),
		// distinct across runs against the same ledger
		nonce: uint64(time.Now().UnixNano()),
	}
}

// Run prints one response per step. It stops at the first step whose
// requirements are not met.
func (r *planRunner) Run(ctx context.Context, plan *Plan) error {
	r.log.Info("simulation",
		zap.String("plan", plan.Name),
		zap.Int("steps", len(plan.Steps)),
	)
	for i := range plan.Steps {
		step := &plan.Steps[i]
		r.log.Info("simulation",
			zap.Int("step", i),
			zap.String("description", step.Description),
			zap.String("endpoint", string(step.Endpoint)),
			zap.String("method", step.Method),
		)

		resp := &Response{ID: i}
		result, stepErr := r.step(ctx, step)
		if stepErr != nil {
			resp.Error = stepErr.Error()
		} else {
			resp.Result = result
		}
		if err := resp.Print(r.out); err != nil {
			return err
		}
		if err := checkRequire(step.Require, result, stepErr); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func checkRequire(req *Require, result *Result, stepErr error) error {
	if req == nil {
		// without requirements a failed step is reported but not fatal
		return nil
	}
	if len(req.Error) > 0 {
		if stepErr == nil {
			return fmt.Errorf("%w: %q", ErrExpectedFailure, req.Error)
		}
		if !strings.Contains(stepErr.Error(), req.Error) {
			return fmt.Errorf("%w: error %q does not contain %q", ErrAssertionFailed, stepErr, req.Error)
		}
		return nil
	}
	if stepErr != nil {
		return stepErr
	}
	if req.Result == nil {
		return nil
	}
	actual, err := numeric(result.Response)
	if err != nil {
		return err
	}
	ok, err := validateAssertion(actual, req.Result)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %s %s", ErrAssertionFailed, actual.Dec(), req.Result.Operator, req.Result.Value)
	}
	return nil
}

func (r *planRunner) step(ctx context.Context, step *Step) (*Result, error) {
	switch step.Endpoint {
	case KeyEndpoint:
		return r.key(step)
	case DeployEndpoint:
		return r.deploy(ctx, step)
	case ExecuteEndpoint:
		return r.execute(ctx, step)
	case ReadOnlyEndpoint:
		return r.readonly(ctx, step)
	case ClockEndpoint:
		return r.moveClock(step)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, step.Endpoint)
	}
}

func (r *planRunner) key(step *Step) (*Result, error) {
	key, created, err := r.keys.Create(step.Name)
	if err != nil {
		return nil, err
	}
	msg := "loaded named key"
	if created {
		msg = "created named key"
	}
	return &Result{Response: key.Address(), Msg: msg}, nil
}

func (r *planRunner) deploy(ctx context.Context, step *Step) (*Result, error) {
	if _, ok := r.contracts[step.Name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateContractName, step.Name)
	}
	salt := []byte(step.Name)
	if len(step.Params) > 0 {
		s, err := toString(step.Params[0].Value)
		if err != nil {
			return nil, err
		}
		salt = []byte(s)
	}
	addr, err := r.host.Deploy(ctx, runtime.ContractID(step.Method), salt)
	if err != nil {
		return nil, err
	}
	r.contracts[step.Name] = addr
	return &Result{Response: addr, Msg: fmt.Sprintf("deployed %s as %s", step.Method, step.Name)}, nil
}

func (r *planRunner) execute(ctx context.Context, step *Step) (*Result, error) {
	contract, err := r.contractAddress(step.Contract)
	if err != nil {
		return nil, err
	}
	params, err := convertParams(r, step.Params)
	if err != nil {
		return nil, err
	}
	signers := make([]*auth.ED25519Factory, 0, 1+len(step.Signers))
	for _, name := range append([]string{step.Caller}, step.Signers...) {
		key, err := r.keys.Load(name)
		if err != nil {
			return nil, err
		}
		signers = append(signers, key)
	}

	r.nonce++
	tx := auth.NewTx(auth.Action{Contract: contract, Function: step.Method, Params: params}, 0, r.nonce)
	if err := tx.Sign(signers...); err != nil {
		return nil, err
	}
	receipt, err := r.host.Execute(ctx, tx)
	if err != nil {
		return nil, err
	}
	response, err := decodeResult(step.Returns, receipt.Result)
	if err != nil {
		return nil, err
	}
	events := make([]string, 0, len(receipt.Events))
	for _, e := range receipt.Events {
		events = append(events, e.Name)
	}
	return &Result{
		TxID:      receipt.TxID.String(),
		Height:    receipt.Height,
		Timestamp: receipt.Timestamp,
		Response:  response,
		Events:    events,
	}, nil
}

func (r *planRunner) readonly(ctx context.Context, step *Step) (*Result, error) {
	contract, err := r.contractAddress(step.Contract)
	if err != nil {
		return nil, err
	}
	params, err := convertParams(r, step.Params)
	if err != nil {
		return nil, err
	}
	b, err := r.host.Simulate(ctx, contract, step.Method, params)
	if err != nil {
		return nil, err
	}
	response, err := decodeResult(step.Returns, b)
	if err != nil {
		return nil, err
	}
	return &Result{
		Height:    r.host.Height(),
		Timestamp: r.clock.Now(),
		Response:  response,
	}, nil
}

func (r *planRunner) moveClock(step *Step) (*Result, error) {
	n, err := toUint64(step.Params[0].Value)
	if err != nil {
		return nil, err
	}
	var now uint64
	switch step.Method {
	case ClockAdvance:
		now = r.clock.Advance(n)
	case ClockSet:
		if n < r.host.Timestamp() {
			return nil, fmt.Errorf("%w: %d < %d", host.ErrTimestampRegression, n, r.host.Timestamp())
		}
		r.clock.Set(n)
		now = n
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, step.Method)
	}
	return &Result{Timestamp: now, Response: now}, nil
}

func (r *planRunner) keyAddress(name string) (codec.Address, error) {
	key, err := r.keys.Load(name)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return key.Address(), nil
}

func (r *planRunner) contractAddress(name string) (codec.Address, error) {
	if addr, ok := r.contracts[name]; ok {
		return addr, nil
	}
	// contracts deployed by an earlier run are referenced by address
	if addr, err := codec.ParseAddress(name); err == nil {
		return addr, nil
	}
	return codec.EmptyAddress, fmt.Errorf("%w: %s", ErrNamedContractNotFound, name)
}
