// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/near/borsh-go"

	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/crypto/ed25519"
	"github.com/chrysalis-labs/chrysalis/utils"
)

// Action is a single contract call.
type Action struct {
	Contract codec.Address `json:"contract"`
	Function string        `json:"function"`
	Params   codec.Bytes   `json:"params"`
}

// Tx is a signed contract call. Every signer becomes an authorized principal
// for the duration of the call; the first signer is the caller.
type Tx struct {
	Action Action `json:"action"`
	// Unix seconds after which the host refuses the tx. Zero never expires.
	Expiry uint64 `json:"expiry"`
	// Distinguishes otherwise identical calls.
	Nonce uint64 `json:"nonce"`

	Auth []ED25519 `json:"auth"`

	id ids.ID `borsh_skip:"true"`
}

type unsignedTx struct {
	Action Action
	Expiry uint64
	Nonce  uint64
}

func NewTx(action Action, expiry uint64, nonce uint64) *Tx {
	return &Tx{Action: action, Expiry: expiry, Nonce: nonce}
}

// Digest is the message every signer signs.
func (t *Tx) Digest() ([]byte, error) {
	return borsh.Serialize(unsignedTx{Action: t.Action, Expiry: t.Expiry, Nonce: t.Nonce})
}

// Sign appends one signature per factory.
func (t *Tx) Sign(factories ...*ED25519Factory) error {
	digest, err := t.Digest()
	if err != nil {
		return err
	}
	for _, f := range factories {
		t.Auth = append(t.Auth, f.Sign(digest))
	}
	t.id = ids.Empty
	return nil
}

// ID hashes the unsigned payload, so two signatures over the same call share
// an ID.
func (t *Tx) ID() (ids.ID, error) {
	if t.id != ids.Empty {
		return t.id, nil
	}
	digest, err := t.Digest()
	if err != nil {
		return ids.Empty, err
	}
	t.id = utils.ToID(digest)
	return t.id, nil
}

// Actor returns the first signer.
func (t *Tx) Actor() codec.Address {
	if len(t.Auth) == 0 {
		return codec.EmptyAddress
	}
	return t.Auth[0].Address()
}

// Verify checks every signature and returns the set of principals the
// transaction authorizes.
func (t *Tx) Verify() (set.Set[codec.Address], error) {
	if len(t.Auth) == 0 {
		return nil, ErrNoSigners
	}
	if len(t.Action.Function) == 0 {
		return nil, ErrEmptyFunction
	}
	digest, err := t.Digest()
	if err != nil {
		return nil, err
	}
	signers := set.NewSet[codec.Address](len(t.Auth))
	pubs := make([]ed25519.PublicKey, len(t.Auth))
	sigs := make([]ed25519.Signature, len(t.Auth))
	for i, a := range t.Auth {
		addr := a.Address()
		if signers.Contains(addr) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSigner, addr)
		}
		signers.Add(addr)
		pubs[i], sigs[i] = a.Signer, a.Signature
	}
	if err := ed25519.VerifyAll(digest, pubs, sigs); err != nil {
		return nil, err
	}
	return signers, nil
}

func (t *Tx) Bytes() ([]byte, error) {
	return borsh.Serialize(*t)
}

func UnmarshalTx(b []byte) (*Tx, error) {
	tx := new(Tx)
	if err := borsh.Deserialize(tx, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTx, err)
	}
	return tx, nil
}
