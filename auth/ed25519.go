// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/crypto/ed25519"
	"github.com/chrysalis-labs/chrysalis/utils"
)

// ED25519 is a single signature over a transaction digest.
type ED25519 struct {
	Signer    ed25519.PublicKey `json:"signer"`
	Signature ed25519.Signature `json:"signature"`
}

func (d *ED25519) Address() codec.Address {
	return NewED25519Address(d.Signer)
}

func (d *ED25519) Verify(msg []byte) error {
	if !ed25519.Verify(msg, d.Signer, d.Signature) {
		return ErrInvalidSignature
	}
	return nil
}

// ED25519Factory signs transactions with a single private key.
type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

func (d *ED25519Factory) Sign(msg []byte) ED25519 {
	return ED25519{Signer: d.priv.PublicKey(), Signature: ed25519.Sign(msg, d.priv)}
}

func (d *ED25519Factory) Address() codec.Address {
	return NewED25519Address(d.priv.PublicKey())
}

func NewED25519Address(pk ed25519.PublicKey) codec.Address {
	return codec.CreateAddress(ED25519ID, utils.ToID(pk[:]))
}
