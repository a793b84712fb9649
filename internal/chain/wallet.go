/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/reppo-ai/reppo-cli/internal/config"
)

// ErrNoPrivateKey carries the instructive message for a missing signing key.
var ErrNoPrivateKey = errors.New("Private key not found. Set REPPO_PRIVATE_KEY or create ~/.config/reppo/private_key")

// Wallet is the signing identity plus the network client handle. It is
// constructed once at command entry and threaded into every gateway; no two
// concurrent logical wallets exist in one run.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
	client  *ethclient.Client
}

// NewWallet derives the wallet from the private-key credential and dials the
// configured RPC endpoint.
func NewWallet(store *config.Store) (*Wallet, error) {
	pk := store.LoadKey(config.KeyPrivateKey)
	if pk == "" {
		return nil, ErrNoPrivateKey
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(pk, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	client, err := ethclient.Dial(store.RPCURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}
	return &Wallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainID: big.NewInt(ChainID),
		client:  client,
	}, nil
}

// AddressFromKey derives the wallet address without dialing the network.
// Used by status reporting when only the identity is needed.
func AddressFromKey(pk string) (common.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(pk), "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid private key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

func (w *Wallet) Address() common.Address {
	return w.address
}

// AddressHex returns the EIP-55 checksummed address string. Satisfies
// auth.Signer together with SignMessage.
func (w *Wallet) AddressHex() string {
	return w.address.Hex()
}

func (w *Wallet) ChainID() *big.Int {
	return new(big.Int).Set(w.chainID)
}

func (w *Wallet) Client() *ethclient.Client {
	return w.client
}

// SignMessage produces the hex-encoded EIP-191 personal signature of msg.
func (w *Wallet) SignMessage(msg []byte) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(msg), w.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	// Shift the recovery id into the 27/28 range expected by eth_sign
	// verifiers.
	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// TransactOpts returns signing options bound to the wallet key and chain id.
func (w *Wallet) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(w.key, w.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}
