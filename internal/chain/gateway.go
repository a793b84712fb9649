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
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/reppo-ai/reppo-cli/utils"
)

var transferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// Gateway wraps read/write calls to the pod contract and ERC-20 tokens.
// Reads are retried with bounded backoff; transaction submissions never are.
type Gateway struct {
	wallet *Wallet
	pod    *bind.BoundContract
}

func NewGateway(wallet *Wallet) *Gateway {
	client := wallet.Client()
	return &Gateway{
		wallet: wallet,
		pod:    bind.NewBoundContract(PodContract, PodABI, client, client, client),
	}
}

func (g *Gateway) Wallet() *Wallet {
	return g.wallet
}

func (g *Gateway) erc20(token common.Address) *bind.BoundContract {
	client := g.wallet.Client()
	return bind.NewBoundContract(token, ERC20ABI, client, client, client)
}

// PublishingFee reads the current pod publishing fee in REPPO base units.
func (g *Gateway) PublishingFee(ctx context.Context) (*big.Int, error) {
	return utils.WithRetry(ctx, "publishingFee", func() (*big.Int, error) {
		var out []interface{}
		if err := g.pod.Call(&bind.CallOpts{Context: ctx}, &out, "publishingFee"); err != nil {
			return nil, err
		}
		return out[0].(*big.Int), nil
	})
}

// TokenBalance reads the REPPO balance of an address.
func (g *Gateway) TokenBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	return g.ERC20Balance(ctx, ReppoToken, addr)
}

// ERC20Balance reads any ERC-20 balance of an address.
func (g *Gateway) ERC20Balance(ctx context.Context, token, addr common.Address) (*big.Int, error) {
	contract := g.erc20(token)
	return utils.WithRetry(ctx, "balanceOf", func() (*big.Int, error) {
		var out []interface{}
		if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", addr); err != nil {
			return nil, err
		}
		return out[0].(*big.Int), nil
	})
}

// EthBalance reads the native ETH balance of an address.
func (g *Gateway) EthBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	return utils.WithRetry(ctx, "ethBalance", func() (*big.Int, error) {
		return g.wallet.Client().BalanceAt(ctx, addr, nil)
	})
}

// Allowance reads the ERC-20 allowance granted by owner to spender.
func (g *Gateway) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	contract := g.erc20(token)
	return utils.WithRetry(ctx, "allowance", func() (*big.Int, error) {
		var out []interface{}
		if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "allowance", owner, spender); err != nil {
			return nil, err
		}
		return out[0].(*big.Int), nil
	})
}

// ApproveERC20 submits an approval and blocks until its receipt confirms. A
// reverted receipt is a hard failure, never retried.
func (g *Gateway) ApproveERC20(ctx context.Context, token, spender common.Address, amount *big.Int) error {
	opts, err := g.wallet.TransactOpts(ctx)
	if err != nil {
		return err
	}
	tx, err := g.erc20(token).Transact(opts, "approve", spender, amount)
	if err != nil {
		return fmt.Errorf("failed to submit approval: %w", err)
	}
	utils.Progressf("  Approve tx: %s\n", tx.Hash())

	receipt, err := g.WaitMined(ctx, tx)
	if err != nil {
		return err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return fmt.Errorf("approval transaction reverted: %s", tx.Hash())
	}
	utils.Progressf("  Approved\n")
	return nil
}

// EstimateMintGas estimates the total gas cost of a mint in wei. Estimation
// is advisory only: any failure yields zero instead of an error.
func (g *Gateway) EstimateMintGas(ctx context.Context) *big.Int {
	data, err := PodABI.Pack("mintPod", g.wallet.Address(), uint8(EmissionShare))
	if err != nil {
		return new(big.Int)
	}
	to := PodContract
	gas, err := g.wallet.Client().EstimateGas(ctx, ethereum.CallMsg{
		From: g.wallet.Address(),
		To:   &to,
		Data: data,
	})
	if err != nil {
		return new(big.Int)
	}
	price, err := g.wallet.Client().SuggestGasPrice(ctx)
	if err != nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(gas), price)
}

// WaitMined blocks until the transaction receipt is available, bounded by
// the receipt timeout. The submitted transaction is not retracted on
// timeout; it may still confirm after the command has reported failure.
func (g *Gateway) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, utils.TxReceiptTimeout)
	defer cancel()
	receipt, err := bind.WaitMined(waitCtx, g.wallet.Client(), tx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("timed out waiting for transaction %s", tx.Hash())
		}
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", tx.Hash(), err)
	}
	return receipt, nil
}

// MintParams controls the pod mint sequence.
type MintParams struct {
	SkipApprove bool
	DryRun      bool
}

// MintResult is the outcome of an on-chain pod creation. PodID is present
// only when the receipt carried a matching transfer event; its absence is
// not an error.
type MintResult struct {
	TxHash  common.Hash
	Receipt *types.Receipt
	PodID   *big.Int
}

// MintPod orchestrates the pod mint: fee read, balance and allowance checks,
// approval when needed, gas affordability check, then the mint itself. In
// dry-run mode all reads still happen but no transaction is issued and a
// zero transaction hash sentinel is returned.
func (g *Gateway) MintPod(ctx context.Context, params MintParams) (*MintResult, error) {
	addr := g.wallet.Address()

	fee, err := g.PublishingFee(ctx)
	if err != nil {
		return nil, err
	}
	utils.Progressf("Publishing fee: %s REPPO\n", utils.FormatUnits(fee, utils.ReppoDecimals))

	if fee.Sign() > 0 && !params.SkipApprove {
		balance, err := g.TokenBalance(ctx, addr)
		if err != nil {
			return nil, err
		}
		utils.Progressf("REPPO balance: %s\n", utils.FormatUnits(balance, utils.ReppoDecimals))
		if balance.Cmp(fee) < 0 {
			return nil, fmt.Errorf("Insufficient REPPO balance. Need %s, have %s",
				utils.FormatUnits(fee, utils.ReppoDecimals), utils.FormatUnits(balance, utils.ReppoDecimals))
		}

		allowance, err := g.Allowance(ctx, ReppoToken, addr, PodContract)
		if err != nil {
			return nil, err
		}
		if allowance.Cmp(fee) < 0 {
			if params.DryRun {
				utils.Progressf("[dry-run] Would approve %s REPPO spend\n", utils.FormatUnits(fee, utils.ReppoDecimals))
			} else {
				utils.Progressf("Approving REPPO spend...\n")
				if err := g.ApproveERC20(ctx, ReppoToken, PodContract, fee); err != nil {
					return nil, err
				}
			}
		} else {
			utils.Progressf("Already approved\n")
		}
	}

	ethBalance, err := g.EthBalance(ctx, addr)
	if err != nil {
		return nil, err
	}
	estimatedGas := g.EstimateMintGas(ctx)
	if estimatedGas.Sign() > 0 && ethBalance.Cmp(estimatedGas) < 0 {
		return nil, fmt.Errorf("Insufficient ETH for gas. Estimated cost: %s ETH, balance: %s ETH",
			utils.FormatUnits(estimatedGas, utils.EthDecimals), utils.FormatUnits(ethBalance, utils.EthDecimals))
	}

	if params.DryRun {
		utils.Progressf("[dry-run] Would mint pod on Base\n")
		if estimatedGas.Sign() > 0 {
			utils.Progressf("[dry-run] Estimated gas cost: %s ETH\n", utils.FormatUnits(estimatedGas, utils.EthDecimals))
		}
		return &MintResult{TxHash: common.Hash{}, Receipt: &types.Receipt{}}, nil
	}

	utils.Progressf("Minting pod on Base...\n")
	opts, err := g.wallet.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := g.pod.Transact(opts, "mintPod", addr, uint8(EmissionShare))
	if err != nil {
		return nil, fmt.Errorf("failed to submit mint: %w", err)
	}
	utils.Progressf("  Mint tx: %s\n", tx.Hash())

	receipt, err := g.WaitMined(ctx, tx)
	if err != nil {
		return nil, err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("mint transaction reverted: %s", tx.Hash())
	}

	podID := ExtractPodID(receipt)
	if podID != nil {
		utils.Progressf("  Pod minted! Block: %d, Pod ID: %s\n", receipt.BlockNumber, podID)
	} else {
		utils.Progressf("  Pod minted! Block: %d\n", receipt.BlockNumber)
	}
	return &MintResult{TxHash: tx.Hash(), Receipt: receipt, PodID: podID}, nil
}

// BurnPod burns a previously minted pod and blocks for confirmation.
func (g *Gateway) BurnPod(ctx context.Context, podID *big.Int) (common.Hash, error) {
	opts, err := g.wallet.TransactOpts(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	tx, err := g.pod.Transact(opts, "burnPod", podID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to submit burn: %w", err)
	}
	receipt, err := g.WaitMined(ctx, tx)
	if err != nil {
		return common.Hash{}, err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return common.Hash{}, fmt.Errorf("burn transaction reverted: %s", tx.Hash())
	}
	return tx.Hash(), nil
}

// ExtractPodID scans receipt logs for a transfer-style event and returns the
// token id of the first match, or nil when none is present.
func ExtractPodID(receipt *types.Receipt) *big.Int {
	for _, entry := range receipt.Logs {
		if len(entry.Topics) == 4 && entry.Topics[0] == transferTopic {
			return new(big.Int).SetBytes(entry.Topics[3].Bytes())
		}
	}
	return nil
}
