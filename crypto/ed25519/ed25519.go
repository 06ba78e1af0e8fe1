// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ed25519 signs transaction digests and verifies them under ZIP-215
// (https://zips.z.cash/zip-0215), which accepts non-canonical point
// encodings produced by other ed25519 implementations and makes single and
// batch verification agree.
package ed25519

import (
	"crypto/ed25519"

	"github.com/hdevalence/ed25519consensus"

	"github.com/chrysalis-labs/chrysalis/codec"
)

const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	SignatureLen  = ed25519.SignatureSize

	// A private key is seed|publicKey.
	seedLen = ed25519.SeedSize

	// Below this many signatures, verifying one at a time is cheaper.
	MinBatchSize = 4
)

type (
	PublicKey  [PublicKeyLen]byte
	PrivateKey [PrivateKeyLen]byte
	Signature  [SignatureLen]byte
)

var (
	EmptyPublicKey  PublicKey
	EmptyPrivateKey PrivateKey
)

func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k), nil
}

func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[seedLen:])
}

func (p PrivateKey) ToHex() string {
	return codec.ToHex(p[:])
}

// HexToPrivateKey loads a key written with [PrivateKey.ToHex].
func HexToPrivateKey(s string) (PrivateKey, error) {
	b, err := codec.LoadHex(s, PrivateKeyLen)
	if err != nil {
		return EmptyPrivateKey, ErrInvalidPrivateKey
	}
	return PrivateKey(b), nil
}

func Sign(msg []byte, p PrivateKey) Signature {
	return Signature(ed25519.Sign(p[:], msg))
}

func Verify(msg []byte, p PublicKey, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}

// VerifyAll checks that every signer signed [msg]. Sets of at least
// [MinBatchSize] signatures are checked in one batch.
func VerifyAll(msg []byte, signers []PublicKey, sigs []Signature) error {
	if len(signers) != len(sigs) {
		return ErrSignatureCount
	}
	if len(signers) < MinBatchSize {
		for i := range signers {
			if !Verify(msg, signers[i], sigs[i]) {
				return ErrInvalidSignature
			}
		}
		return nil
	}
	bv := ed25519consensus.NewPreallocatedBatchVerifier(len(signers))
	for i := range signers {
		bv.Add(signers[i][:], msg, sigs[i][:])
	}
	if !bv.Verify() {
		return ErrInvalidSignature
	}
	return nil
}
