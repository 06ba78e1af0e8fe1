// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/rpc/v2"
	"go.uber.org/zap"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/auth"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/contracts/chrysalis"
	"github.com/chrysalis-labs/chrysalis/host"
	"github.com/chrysalis-labs/chrysalis/runtime"
)

var _ Ledger = (*host.Host)(nil)

// Ledger is what the API serves.
type Ledger interface {
	Execute(ctx context.Context, tx *auth.Tx) (*host.Receipt, error)
	Simulate(ctx context.Context, contract codec.Address, function string, params []byte) ([]byte, error)
	Height() uint64
	Timestamp() uint64
}

type JSONRPCServer struct {
	log    logging.Logger
	tracer trace.Tracer
	ledger Ledger
}

func NewJSONRPCServer(log logging.Logger, tracer trace.Tracer, ledger Ledger) *JSONRPCServer {
	return &JSONRPCServer{log: log, tracer: tracer, ledger: ledger}
}

// NewHandler serves [ledger] as the [Name] JSON-RPC service.
func NewHandler(log logging.Logger, tracer trace.Tracer, ledger Ledger) (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	return server, server.RegisterService(NewJSONRPCServer(log, tracer, ledger), Name)
}

// simulate calls a read-only export and decodes its result into [out].
func simulate[T any](ctx context.Context, l Ledger, contract codec.Address, function string, out *T, params ...any) error {
	b, err := runtime.SerializeParams(params...)
	if err != nil {
		return err
	}
	res, err := l.Simulate(ctx, contract, function, b)
	if err != nil {
		return err
	}
	v, err := runtime.Deserialize[T](res)
	if err != nil {
		return err
	}
	*out = v
	return nil
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

type HeightReply struct {
	Height    uint64 `json:"height"`
	Timestamp uint64 `json:"timestamp"`
}

func (j *JSONRPCServer) Height(_ *http.Request, _ *struct{}, reply *HeightReply) error {
	reply.Height = j.ledger.Height()
	reply.Timestamp = j.ledger.Timestamp()
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

type SubmitTxReply struct {
	Receipt *host.Receipt `json:"receipt"`
}

func (j *JSONRPCServer) SubmitTx(req *http.Request, args *SubmitTxArgs, reply *SubmitTxReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	if len(args.Tx) == 0 {
		return ErrEmptyTx
	}
	tx, err := auth.UnmarshalTx(args.Tx)
	if err != nil {
		return err
	}
	receipt, err := j.ledger.Execute(ctx, tx)
	if err != nil {
		j.log.Debug("rejected tx",
			zap.Stringer("contract", tx.Action.Contract),
			zap.String("function", tx.Action.Function),
			zap.Error(err),
		)
		return err
	}
	reply.Receipt = receipt
	return nil
}

type UserArgs struct {
	Contract codec.Address `json:"contract"`
	User     codec.Address `json:"user"`
}

type AmountReply struct {
	Amount amount.U128 `json:"amount"`
}

func (j *JSONRPCServer) GetStake(req *http.Request, args *UserArgs, reply *AmountReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetStake")
	defer span.End()

	return simulate(ctx, j.ledger, args.Contract, "get_stake", &reply.Amount, args.User)
}

type PreviewClaimArgs struct {
	Contract codec.Address `json:"contract"`
	User     codec.Address `json:"user"`
	Rate     uint32        `json:"rate"`
}

func (j *JSONRPCServer) PreviewClaim(req *http.Request, args *PreviewClaimArgs, reply *AmountReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.PreviewClaim")
	defer span.End()

	return simulate(ctx, j.ledger, args.Contract, "preview_claim", &reply.Amount, chrysalis.ClaimArgs{
		User: args.User,
		Rate: args.Rate,
	})
}

type PositionReply struct {
	Position chrysalis.Position `json:"position"`
}

func (j *JSONRPCServer) Position(req *http.Request, args *UserArgs, reply *PositionReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Position")
	defer span.End()

	return simulate(ctx, j.ledger, args.Contract, "get_position", &reply.Position, args.User)
}

type ContractArgs struct {
	Contract codec.Address `json:"contract"`
}

type ConfigReply struct {
	Config chrysalis.Config `json:"config"`
}

func (j *JSONRPCServer) Config(req *http.Request, args *ContractArgs, reply *ConfigReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Config")
	defer span.End()

	return simulate(ctx, j.ledger, args.Contract, "get_config", &reply.Config)
}

type BalanceArgs struct {
	Token  codec.Address `json:"token"`
	Holder codec.Address `json:"holder"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *AmountReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Balance")
	defer span.End()

	return simulate(ctx, j.ledger, args.Token, "balance", &reply.Amount, args.Holder)
}
