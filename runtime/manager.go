// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/state"
	"github.com/chrysalis-labs/chrysalis/utils"
)

var contractKeyBytes = []byte("contract")

const (
	// Associated data for an account, such as the contractID
	accountDataPrefix = 0x0
	// State space associated with an account
	accountStatePrefix = 0x1
)

// ContractStateManager is responsible for managing all state keys associated
// with contract accounts.
type ContractStateManager struct {
	db state.Mutable
}

// NewContractStateManager returns a new ContractStateManager instance.
// [prefix] must be unique to ensure the contract state space
// remains isolated from other state spaces in [db].
func NewContractStateManager(db state.Mutable, prefix []byte) *ContractStateManager {
	return &ContractStateManager{db: state.NewPrefixedMutable(prefix, db)}
}

// GetContractState returns a mutable state instance associated with [account].
func (p *ContractStateManager) GetContractState(account codec.Address) state.Mutable {
	return state.NewPrefixedMutable(accountStateKey(account), p.db)
}

// GetAccountContract returns the implementation bound to [account].
func (p *ContractStateManager) GetAccountContract(ctx context.Context, account codec.Address) (ContractID, error) {
	v, err := p.db.GetValue(ctx, accountDataKey(account, contractKeyBytes))
	if errors.Is(err, database.ErrNotFound) {
		return "", ErrUnknownAccount
	}
	if err != nil {
		return "", err
	}
	return ContractID(v), nil
}

// NewAccountWithContract creates a new account bound to [contractID]. The
// address is derived from [contractID] and [accountCreationData], so the same
// pair can only be deployed once.
func (p *ContractStateManager) NewAccountWithContract(
	ctx context.Context,
	contractID ContractID,
	accountCreationData []byte,
) (codec.Address, error) {
	if len(contractID) == 0 {
		return codec.EmptyAddress, ErrInvalidContractID
	}
	seed := make([]byte, 0, len(contractID)+len(accountCreationData))
	seed = append(seed, contractID...)
	seed = append(seed, accountCreationData...)
	account := codec.CreateAddress(ContractTypeID, utils.ToID(seed))

	_, err := p.GetAccountContract(ctx, account)
	switch {
	case err == nil:
		return codec.EmptyAddress, ErrAccountExists
	case !errors.Is(err, ErrUnknownAccount):
		return codec.EmptyAddress, err
	}
	return account, p.SetAccountContract(ctx, account, contractID)
}

func (p *ContractStateManager) SetAccountContract(ctx context.Context, account codec.Address, contractID ContractID) error {
	return p.db.Insert(ctx, accountDataKey(account, contractKeyBytes), []byte(contractID))
}

// accountDataKey is account + accountDataPrefix + key
func accountDataKey(account codec.Address, key []byte) (k []byte) {
	k = make([]byte, 0, codec.AddressLen+1+len(key))
	k = append(k, account[:]...)
	k = append(k, accountDataPrefix)
	k = append(k, key...)
	return
}

// accountStateKey is account + accountStatePrefix
func accountStateKey(account codec.Address) (k []byte) {
	k = make([]byte, 0, codec.AddressLen+1)
	k = append(k, account[:]...)
	k = append(k, accountStatePrefix)
	return
}

// IsContract reports whether [addr] carries the contract type byte.
func IsContract(addr codec.Address) bool {
	return addr.TypeID() == ContractTypeID
}
