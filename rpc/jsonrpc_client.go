// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/auth"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/contracts/chrysalis"
	"github.com/chrysalis-labs/chrysalis/host"

	avarpc "github.com/ava-labs/avalanchego/utils/rpc"
)

type JSONRPCClient struct {
	requester avarpc.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	return &JSONRPCClient{requester: avarpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		Name+".ping",
		struct{}{},
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) Height(ctx context.Context) (uint64, uint64, error) {
	resp := new(HeightReply)
	err := cli.requester.SendRequest(ctx,
		Name+".height",
		struct{}{},
		resp,
	)
	return resp.Height, resp.Timestamp, err
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, tx *auth.Tx) (*host.Receipt, error) {
	b, err := tx.Bytes()
	if err != nil {
		return nil, err
	}
	resp := new(SubmitTxReply)
	err = cli.requester.SendRequest(ctx,
		Name+".submitTx",
		&SubmitTxArgs{Tx: b},
		resp,
	)
	return resp.Receipt, err
}

func (cli *JSONRPCClient) GetStake(ctx context.Context, contract codec.Address, user codec.Address) (amount.U128, error) {
	resp := new(AmountReply)
	err := cli.requester.SendRequest(ctx,
		Name+".getStake",
		&UserArgs{Contract: contract, User: user},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) PreviewClaim(ctx context.Context, contract codec.Address, user codec.Address, rate uint32) (amount.U128, error) {
	resp := new(AmountReply)
	err := cli.requester.SendRequest(ctx,
		Name+".previewClaim",
		&PreviewClaimArgs{Contract: contract, User: user, Rate: rate},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) Position(ctx context.Context, contract codec.Address, user codec.Address) (chrysalis.Position, error) {
	resp := new(PositionReply)
	err := cli.requester.SendRequest(ctx,
		Name+".position",
		&UserArgs{Contract: contract, User: user},
		resp,
	)
	return resp.Position, err
}

func (cli *JSONRPCClient) Config(ctx context.Context, contract codec.Address) (chrysalis.Config, error) {
	resp := new(ConfigReply)
	err := cli.requester.SendRequest(ctx,
		Name+".config",
		&ContractArgs{Contract: contract},
		resp,
	)
	return resp.Config, err
}

func (cli *JSONRPCClient) Balance(ctx context.Context, token codec.Address, holder codec.Address) (amount.U128, error) {
	resp := new(AmountReply)
	err := cli.requester.SendRequest(ctx,
		Name+".balance",
		&BalanceArgs{Token: token, Holder: holder},
		resp,
	)
	return resp.Amount, err
}
