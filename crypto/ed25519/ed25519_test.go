// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	oed25519 "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

// seed 0x01..0x20
var testPrivateKey = func() PrivateKey {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	return PrivateKey(ed25519.NewKeyFromSeed(seed))
}()

func TestGeneratePrivateKey(t *testing.T) {
	require := require.New(t)

	seen := map[PrivateKey]struct{}{}
	for i := 0; i < 10; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(err)
		require.NotEqual(EmptyPrivateKey, priv)
		require.NotEqual(EmptyPublicKey, priv.PublicKey())
		require.NotContains(seen, priv)
		seen[priv] = struct{}{}
	}
}

func TestPublicKeyMatchesStdlib(t *testing.T) {
	require := require.New(t)

	std := ed25519.PrivateKey(testPrivateKey[:]).Public().(ed25519.PublicKey)
	pk := testPrivateKey.PublicKey()
	require.Equal([]byte(std), pk[:])

	msg := []byte("stake 1000")
	sig := Sign(msg, testPrivateKey)
	require.Equal(ed25519.Sign(testPrivateKey[:], msg), sig[:])
}

func TestVerify(t *testing.T) {
	require := require.New(t)
	msg := []byte("claim")
	sig := Sign(msg, testPrivateKey)

	require.True(Verify(msg, testPrivateKey.PublicKey(), sig))
	require.False(Verify([]byte("unstake"), testPrivateKey.PublicKey(), sig))

	other, err := GeneratePrivateKey()
	require.NoError(err)
	require.False(Verify(msg, other.PublicKey(), sig))
}

func signAll(t *testing.T, msg []byte, n int) ([]PublicKey, []Signature) {
	pubs := make([]PublicKey, n)
	sigs := make([]Signature, n)
	for i := 0; i < n; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(t, err)
		pubs[i] = priv.PublicKey()
		sigs[i] = Sign(msg, priv)
	}
	return pubs, sigs
}

func TestVerifyAll(t *testing.T) {
	msg := make([]byte, 128)
	_, err := rand.Read(msg)
	require.NoError(t, err)

	tests := []struct {
		name    string
		signers int
		tamper  int
		err     error
	}{
		{"Single", 1, -1, nil},
		{"BelowBatch", MinBatchSize - 1, -1, nil},
		{"Batch", 64, -1, nil},
		{"SingleTampered", 1, 0, ErrInvalidSignature},
		{"BatchTampered", 64, 10, ErrInvalidSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pubs, sigs := signAll(t, msg, tt.signers)
			if tt.tamper >= 0 {
				sigs[tt.tamper][0]++
			}
			require.ErrorIs(t, VerifyAll(msg, pubs, sigs), tt.err)
		})
	}

	pubs, sigs := signAll(t, msg, 2)
	require.ErrorIs(t, VerifyAll(msg, pubs, sigs[:1]), ErrSignatureCount)
}

func TestHexRoundTrip(t *testing.T) {
	require := require.New(t)
	priv, err := HexToPrivateKey(testPrivateKey.ToHex())
	require.NoError(err)
	require.Equal(testPrivateKey, priv)

	_, err = HexToPrivateKey("0x0102")
	require.ErrorIs(err, ErrInvalidPrivateKey)
}

// Signatures accepted under ZIP-215 here must be accepted by other ZIP-215
// verifiers and vice versa.
func TestZIP215Compatibility(t *testing.T) {
	require := require.New(t)
	msg := []byte("reward")

	pub, priv, err := oed25519.GenerateKey(nil)
	require.NoError(err)
	sig := oed25519.Sign(priv, msg)
	require.True(Verify(msg, PublicKey(pub), Signature(sig)))

	ours := Sign(msg, testPrivateKey)
	pk := testPrivateKey.PublicKey()
	require.True(oed25519.VerifyWithOptions(pk[:], msg, ours[:], &oed25519.Options{
		Verify: oed25519.VerifyOptionsZIP_215,
	}))
}
