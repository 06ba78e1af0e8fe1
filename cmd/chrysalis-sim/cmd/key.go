// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrysalis-labs/chrysalis/auth"
	"github.com/chrysalis-labs/chrysalis/codec"
	"github.com/chrysalis-labs/chrysalis/consts"
	"github.com/chrysalis-labs/chrysalis/crypto/ed25519"
	"github.com/chrysalis-labs/chrysalis/utils"
)

const keyExtension = ".pk"

// keyStore keeps named ed25519 keys, one file per key.
type keyStore struct {
	dir string
}

func newKeyStore(dir string) *keyStore {
	return &keyStore{dir: dir}
}

func (k *keyStore) path(name string) string {
	return filepath.Join(k.dir, name+keyExtension)
}

// Load returns the key stored under [name].
func (k *keyStore) Load(name string) (*auth.ED25519Factory, error) {
	b, err := utils.LoadBytes(k.path(name), ed25519.PrivateKeyLen)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNamedKeyNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return auth.NewED25519Factory(ed25519.PrivateKey(b)), nil
}

// Create returns the key stored under [name], generating it first if it
// does not exist yet.
func (k *keyStore) Create(name string) (*auth.ED25519Factory, bool, error) {
	if len(name) == 0 || strings.ContainsAny(name, `/\`) {
		return nil, false, fmt.Errorf("%w: invalid key name %q", ErrInvalidStep, name)
	}
	key, err := k.Load(name)
	if err == nil {
		return key, false, nil
	}
	if !errors.Is(err, ErrNamedKeyNotFound) {
		return nil, false, err
	}
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, false, err
	}
	if err := utils.SaveBytes(k.path(name), priv[:]); err != nil {
		return nil, false, err
	}
	return auth.NewED25519Factory(priv), true, nil
}

type namedKey struct {
	Name    string
	Address codec.Address
}

// List returns every stored key sorted by name.
func (k *keyStore) List() ([]namedKey, error) {
	entries, err := os.ReadDir(k.dir)
	if err != nil {
		return nil, err
	}
	keys := make([]namedKey, 0, len(entries))
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), keyExtension)
		if entry.IsDir() || !ok {
			continue
		}
		key, err := k.Load(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, namedKey{Name: name, Address: key.Address()})
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Name < keys[j].Name
	})
	return keys, nil
}

func newKeyCmd(s *simulator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage named keys",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create [name]",
			Short: "Create a named ed25519 key",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				key, created, err := s.keys.Create(args[0])
				if err != nil {
					return err
				}
				if created {
					s.log.Debug("created key", zap.String("name", args[0]))
					utils.Outf("{{green}}created key:{{/}} %s %s\n", args[0], codec.MustBech32(consts.HRP, key.Address()))
				} else {
					utils.Outf("{{yellow}}key exists:{{/}} %s %s\n", args[0], codec.MustBech32(consts.HRP, key.Address()))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List named keys",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				keys, err := s.keys.List()
				if err != nil {
					return err
				}
				for _, k := range keys {
					utils.Outf("{{cyan}}%s{{/}} %s %s\n", k.Name, codec.MustBech32(consts.HRP, k.Address), k.Address)
				}
				return nil
			},
		},
	)
	return cmd
}
