// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chrysalis is a staking contract. Users lock a staked token, receive
// a derivative token one for one and claim rewards that accrue linearly with
// time at a caller supplied rate.
//
// Every mutating entry point authorizes the user first, validates, then
// writes its own state and only then calls token contracts. A failed token
// call fails the whole entry point and the runtime reverts its writes.
package chrysalis

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chrysalis-labs/chrysalis/amount"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/runtime"
)

type Option func(*staking)

// WithTokenClient replaces how token contracts are reached.
func WithTokenClient(f TokenClientFactory) Option {
	return func(s *staking) {
		s.tokens = f
	}
}

type staking struct {
	tokens TokenClientFactory
}

// New returns the staking implementation.
func New(opts ...Option) *runtime.Contract {
	s := &staking{tokens: NewTokenClient}
	for _, o := range opts {
		o(s)
	}
	return runtime.NewContract(ContractID).
		Export("initialize", runtime.FnNoOutput(s.initialize)).
		Export("stake", runtime.FnNoOutput(s.stake)).
		Export("unstake", runtime.FnNoOutput(s.unstake)).
		Export("claim", runtime.Fn(s.claim)).
		Export("fund_rewards", runtime.FnNoOutput(s.fundRewards)).
		ExportReadOnly("preview_claim", runtime.Fn(s.previewClaim)).
		ExportReadOnly("get_stake", runtime.Fn(s.getStake)).
		ExportReadOnly("get_position", runtime.Fn(s.getPosition)).
		ExportReadOnly("get_config", runtime.FnNoInput(s.getConfig)).
		ExportReadOnly("total_staked", runtime.FnNoInput(s.totalStaked)).
		ExportReadOnly("reward_reserve", runtime.FnNoInput(s.rewardReserve))
}

func external(token codec.Address, op string, err error) error {
	return fmt.Errorf("%w: %s on %s: %w", ErrExternalCallFailed, op, token, err)
}

func checkAmount(a amount.U128) error {
	if a.IsZero() || !a.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, a)
	}
	return nil
}

func (*staking) initialize(c *runtime.Context, args InitializeArgs) error {
	if err := c.RequireAuth(args.Admin); err != nil {
		return err
	}
	switch {
	case !runtime.IsContract(args.StakedToken):
		return fmt.Errorf("%w: staked token %s", ErrInvalidAddress, args.StakedToken)
	case !runtime.IsContract(args.RewardToken):
		return fmt.Errorf("%w: reward token %s", ErrInvalidAddress, args.RewardToken)
	case args.StakedToken == args.RewardToken:
		return fmt.Errorf("%w: staked and reward token are both %s", ErrInvalidAddress, args.StakedToken)
	case args.StakedToken == c.Address() || args.RewardToken == c.Address():
		return fmt.Errorf("%w: token is the staking contract", ErrInvalidAddress)
	}
	if !args.Issuance.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidIssuance, args.Issuance)
	}
	_, err := getConfig(c.Ctx(), c.State())
	switch {
	case err == nil:
		return ErrAlreadyInitialized
	case !errors.Is(err, ErrNotInitialized):
		return err
	}
	if err := setConfig(c.Ctx(), c.State(), &Config{
		Admin:       args.Admin,
		StakedToken: args.StakedToken,
		RewardToken: args.RewardToken,
		Issuance:    args.Issuance,
	}); err != nil {
		return err
	}
	c.Log().Debug("initialized staking",
		zap.Stringer("contract", c.Address()),
		zap.Stringer("stakedToken", args.StakedToken),
		zap.Stringer("rewardToken", args.RewardToken),
		zap.Stringer("issuance", args.Issuance),
	)
	return nil
}

func (s *staking) stake(c *runtime.Context, args AmountArgs) error {
	if err := c.RequireAuth(args.User); err != nil {
		return err
	}
	if err := checkAmount(args.Amount); err != nil {
		return err
	}
	ctx, st := c.Ctx(), c.State()
	cfg, err := getConfig(ctx, st)
	if err != nil {
		return err
	}
	staked := s.tokens(c, cfg.StakedToken)
	reward := s.tokens(c, cfg.RewardToken)

	bal, err := staked.Balance(args.User)
	if err != nil {
		return external(cfg.StakedToken, "balance", err)
	}
	if bal.Cmp(args.Amount) < 0 {
		return fmt.Errorf("%w: %s < %s", ErrInsufficientBalance, bal, args.Amount)
	}

	pos, err := getPosition(ctx, st, args.User)
	if err != nil {
		return err
	}
	if pos.Amount, err = pos.Amount.Add(args.Amount); err != nil {
		return err
	}
	pos.LastUpdate = c.Timestamp()
	total, err := getTotalStaked(ctx, st)
	if err != nil {
		return err
	}
	if total, err = total.Add(args.Amount); err != nil {
		return err
	}
	if err := setPosition(ctx, st, args.User, pos); err != nil {
		return err
	}
	if err := setTotalStaked(ctx, st, total); err != nil {
		return err
	}

	if err := staked.Transfer(args.User, c.Address(), args.Amount); err != nil {
		return external(cfg.StakedToken, "transfer", err)
	}
	switch cfg.Issuance {
	case IssuanceMint:
		if err := reward.Mint(args.User, args.Amount); err != nil {
			return external(cfg.RewardToken, "mint", err)
		}
	case IssuanceCustodial:
		if err := reward.Transfer(c.Address(), args.User, args.Amount); err != nil {
			return external(cfg.RewardToken, "transfer", err)
		}
	}
	return c.Emit("stake", StakeEvent{User: args.User, Amount: args.Amount, Staked: pos.Amount})
}

func (s *staking) unstake(c *runtime.Context, args AmountArgs) error {
	if err := c.RequireAuth(args.User); err != nil {
		return err
	}
	if err := checkAmount(args.Amount); err != nil {
		return err
	}
	ctx, st := c.Ctx(), c.State()
	cfg, err := getConfig(ctx, st)
	if err != nil {
		return err
	}
	pos, err := getPosition(ctx, st, args.User)
	if err != nil {
		return err
	}
	remaining, err := pos.Amount.Sub(args.Amount)
	if err != nil {
		return fmt.Errorf("%w: %s < %s", ErrInsufficientStake, pos.Amount, args.Amount)
	}
	total, err := getTotalStaked(ctx, st)
	if err != nil {
		return err
	}
	if total, err = total.Sub(args.Amount); err != nil {
		return err
	}
	// the accrual clock keeps running for what is left
	pos.Amount = remaining
	if err := setPosition(ctx, st, args.User, pos); err != nil {
		return err
	}
	if err := setTotalStaked(ctx, st, total); err != nil {
		return err
	}

	staked := s.tokens(c, cfg.StakedToken)
	reward := s.tokens(c, cfg.RewardToken)
	switch cfg.Issuance {
	case IssuanceMint:
		if err := reward.Burn(args.User, args.Amount); err != nil {
			return external(cfg.RewardToken, "burn", err)
		}
	case IssuanceCustodial:
		if err := reward.Transfer(args.User, c.Address(), args.Amount); err != nil {
			return external(cfg.RewardToken, "transfer", err)
		}
	}
	if err := staked.Transfer(c.Address(), args.User, args.Amount); err != nil {
		return external(cfg.StakedToken, "transfer", err)
	}
	return c.Emit("unstake", StakeEvent{User: args.User, Amount: args.Amount, Staked: pos.Amount})
}

// accrued returns the position of [user] and the reward it has earned by the
// time of the call.
func accrued(c *runtime.Context, user codec.Address, rate uint32) (Position, amount.U128, error) {
	pos, err := getPosition(c.Ctx(), c.State(), user)
	if err != nil {
		return Position{}, amount.Zero, err
	}
	reward, err := Reward(pos.Amount, rate, Elapsed(c.Timestamp(), pos.LastUpdate))
	if err != nil {
		return Position{}, amount.Zero, err
	}
	return pos, reward, nil
}

func (s *staking) claim(c *runtime.Context, args ClaimArgs) (amount.U128, error) {
	if err := c.RequireAuth(args.User); err != nil {
		return amount.Zero, err
	}
	if args.Rate > MaxRate {
		return amount.Zero, fmt.Errorf("%w: %d > %d", ErrInvalidRate, args.Rate, MaxRate)
	}
	ctx, st := c.Ctx(), c.State()
	cfg, err := getConfig(ctx, st)
	if err != nil {
		return amount.Zero, err
	}
	pos, reward, err := accrued(c, args.User, args.Rate)
	if err != nil {
		return amount.Zero, err
	}
	// checkpoint even when nothing accrued so the same interval is never
	// paid twice
	if now := c.Timestamp(); now > pos.LastUpdate {
		pos.LastUpdate = now
	}
	if err := setPosition(ctx, st, args.User, pos); err != nil {
		return amount.Zero, err
	}

	if !reward.IsZero() {
		rewardToken := s.tokens(c, cfg.RewardToken)
		switch cfg.Issuance {
		case IssuanceMint:
			if err := rewardToken.Mint(args.User, reward); err != nil {
				return amount.Zero, external(cfg.RewardToken, "mint", err)
			}
		case IssuanceCustodial:
			reserve, err := rewardToken.Balance(c.Address())
			if err != nil {
				return amount.Zero, external(cfg.RewardToken, "balance", err)
			}
			if reserve.Cmp(reward) < 0 {
				return amount.Zero, fmt.Errorf("%w: %s < %s", ErrInsufficientRewardReserve, reserve, reward)
			}
			if err := rewardToken.Transfer(c.Address(), args.User, reward); err != nil {
				return amount.Zero, external(cfg.RewardToken, "transfer", err)
			}
		}
	}
	if err := c.Emit("claim", ClaimEvent{User: args.User, Reward: reward, LastUpdate: pos.LastUpdate}); err != nil {
		return amount.Zero, err
	}
	return reward, nil
}

func (*staking) previewClaim(c *runtime.Context, args ClaimArgs) (amount.U128, error) {
	if _, err := getConfig(c.Ctx(), c.State()); err != nil {
		return amount.Zero, err
	}
	_, reward, err := accrued(c, args.User, args.Rate)
	return reward, err
}

func (s *staking) fundRewards(c *runtime.Context, args AmountArgs) error {
	if err := c.RequireAuth(args.User); err != nil {
		return err
	}
	if err := checkAmount(args.Amount); err != nil {
		return err
	}
	cfg, err := getConfig(c.Ctx(), c.State())
	if err != nil {
		return err
	}
	if cfg.Issuance != IssuanceCustodial {
		return fmt.Errorf("%w: rewards are minted", ErrWrongIssuanceMode)
	}
	if err := s.tokens(c, cfg.RewardToken).Transfer(args.User, c.Address(), args.Amount); err != nil {
		return external(cfg.RewardToken, "transfer", err)
	}
	return c.Emit("fund", FundEvent{From: args.User, Amount: args.Amount})
}

func (*staking) getStake(c *runtime.Context, user codec.Address) (amount.U128, error) {
	pos, err := getPosition(c.Ctx(), c.State(), user)
	return pos.Amount, err
}

func (*staking) getPosition(c *runtime.Context, user codec.Address) (Position, error) {
	return getPosition(c.Ctx(), c.State(), user)
}

func (*staking) getConfig(c *runtime.Context) (Config, error) {
	cfg, err := getConfig(c.Ctx(), c.State())
	if err != nil {
		return Config{}, err
	}
	return *cfg, nil
}

func (*staking) totalStaked(c *runtime.Context) (amount.U128, error) {
	return getTotalStaked(c.Ctx(), c.State())
}

func (s *staking) rewardReserve(c *runtime.Context) (amount.U128, error) {
	cfg, err := getConfig(c.Ctx(), c.State())
	if err != nil {
		return amount.Zero, err
	}
	reserve, err := s.tokens(c, cfg.RewardToken).Balance(c.Address())
	if err != nil {
		return amount.Zero, external(cfg.RewardToken, "balance", err)
	}
	return reserve, nil
}
