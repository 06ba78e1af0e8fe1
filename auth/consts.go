// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

// Address type IDs. Contract instances use their own type ID, assigned by
// the runtime.
const (
	ED25519ID uint8 = 0

	ED25519Key = "ed25519"
)
