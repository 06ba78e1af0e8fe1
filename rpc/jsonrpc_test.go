// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/auth"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/contracts/chrysalis"
	"github.com/chrysalis-labs/chrysalis/contracts/token"
	"github.com/chrysalis-labs/chrysalis/crypto/ed25519"
	"github.com/chrysalis-labs/chrysalis/host"
	"github.com/chrysalis-labs/chrysalis/rpc"
	"github.com/chrysalis-labs/chrysalis/runtime"
	"github.com/chrysalis-labs/chrysalis/state"
	"github.com/chrysalis-labs/chrysalis/trace"
)

type testServer struct {
	host   *host.Host
	clock  *host.ManualClock
	client *rpc.JSONRPCClient
}

func newTestServer(t *testing.T) *testServer {
	require := require.New(t)

	rt, err := runtime.NewRuntime(runtime.NewDefaultConfig(), logging.NoLog{}, trace.Noop(), prometheus.NewRegistry())
	require.NoError(err)
	require.NoError(rt.Register(token.New()))
	require.NoError(rt.Register(chrysalis.New()))

	clock := host.NewManualClock(1_000)
	h, err := host.New(context.Background(), logging.NoLog{}, trace.Noop(), prometheus.NewRegistry(), rt, state.NewMemoryDatabase(), clock)
	require.NoError(err)

	handler, err := rpc.NewHandler(logging.NoLog{}, trace.Noop(), h)
	require.NoError(err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	cfg := rpc.NewDefaultServerConfig()
	cfg.ShutdownTimeout = time.Second
	server := rpc.NewServer(logging.NoLog{}, listener, cfg, rpc.Route{
		Endpoint: rpc.JSONRPCEndpoint,
		Handler:  handler,
	})
	go func() {
		_ = server.Dispatch()
	}()
	t.Cleanup(func() {
		require.NoError(server.Shutdown())
		require.NoError(h.Close())
	})

	return &testServer{
		host:   h,
		clock:  clock,
		client: rpc.NewJSONRPCClient("http://" + listener.Addr().String()),
	}
}

func newKey(t *testing.T) *auth.ED25519Factory {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return auth.NewED25519Factory(priv)
}

func TestPingAndHeight(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	s := newTestServer(t)

	ok, err := s.client.Ping(ctx)
	require.NoError(err)
	require.True(ok)

	height, timestamp, err := s.client.Height(ctx)
	require.NoError(err)
	require.Zero(height)
	require.Zero(timestamp)
}

func TestStakeOverRPC(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	s := newTestServer(t)
	admin := newKey(t)
	alice := newKey(t)

	staked, err := s.host.Deploy(ctx, token.ContractID, []byte("staked"))
	require.NoError(err)
	reward, err := s.host.Deploy(ctx, token.ContractID, []byte("reward"))
	require.NoError(err)
	pool, err := s.host.Deploy(ctx, chrysalis.ContractID, []byte("pool"))
	require.NoError(err)

	nonce := uint64(0)
	submit := func(key *auth.ED25519Factory, contract codec.Address, function string, values ...any) (*host.Receipt, error) {
		nonce++
		b, err := runtime.SerializeParams(values...)
		require.NoError(err)
		tx := auth.NewTx(auth.Action{Contract: contract, Function: function, Params: b}, 0, nonce)
		require.NoError(tx.Sign(key))
		return s.client.SubmitTx(ctx, tx)
	}

	for _, tok := range []codec.Address{staked, reward} {
		_, err = submit(admin, tok, "initialize", token.InitializeArgs{Admin: admin.Address(), Name: "T", Symbol: "T"})
		require.NoError(err)
	}
	_, err = submit(admin, staked, "mint", token.MintArgs{To: alice.Address(), Amount: amount.FromUint64(1000)})
	require.NoError(err)
	_, err = submit(admin, reward, "set_admin", pool)
	require.NoError(err)
	_, err = submit(admin, pool, "initialize", chrysalis.InitializeArgs{
		Admin: admin.Address(), StakedToken: staked, RewardToken: reward, Issuance: chrysalis.IssuanceMint,
	})
	require.NoError(err)

	cfg, err := s.client.Config(ctx, pool)
	require.NoError(err)
	require.Equal(chrysalis.IssuanceMint, cfg.Issuance)
	require.Equal(staked, cfg.StakedToken)

	r, err := submit(alice, pool, "stake", chrysalis.AmountArgs{User: alice.Address(), Amount: amount.FromUint64(1000)})
	require.NoError(err)
	require.Equal(uint64(6), r.Height)
	require.NotEmpty(r.Events)

	stake, err := s.client.GetStake(ctx, pool, alice.Address())
	require.NoError(err)
	require.Equal(amount.FromUint64(1000), stake)

	pos, err := s.client.Position(ctx, pool, alice.Address())
	require.NoError(err)
	require.Equal(uint64(1_000), pos.LastUpdate)

	bal, err := s.client.Balance(ctx, staked, alice.Address())
	require.NoError(err)
	require.True(bal.IsZero())

	s.clock.Advance(chrysalis.RewardPeriod)
	preview, err := s.client.PreviewClaim(ctx, pool, alice.Address(), 500)
	require.NoError(err)
	require.Equal(amount.FromUint64(50), preview)

	// previews do not move the clock
	again, err := s.client.PreviewClaim(ctx, pool, alice.Address(), 500)
	require.NoError(err)
	require.Equal(preview, again)

	_, err = submit(alice, pool, "unstake", chrysalis.AmountArgs{User: alice.Address(), Amount: amount.FromUint64(1001)})
	require.ErrorContains(err, chrysalis.ErrInsufficientStake.Error())

	height, timestamp, err := s.client.Height(ctx)
	require.NoError(err)
	require.Equal(uint64(6), height)
	require.Equal(uint64(1_000), timestamp)
}

func TestSubmitRejectsEmptyTx(t *testing.T) {
	s := newTestServer(t)
	_, err := s.client.SubmitTx(context.Background(), &auth.Tx{})
	require.Error(t, err)
}
