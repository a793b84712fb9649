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

package swap

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/reppo-ai/reppo-cli/internal/chain"
	"github.com/reppo-ai/reppo-cli/utils"
)

// Gateway acquires REPPO with USDC through the Uniswap V3 router/quoter
// pair.
type Gateway struct {
	chain  *chain.Gateway
	quoter *bind.BoundContract
	router *bind.BoundContract
}

func NewGateway(wallet *chain.Wallet) *Gateway {
	client := wallet.Client()
	return &Gateway{
		chain:  chain.NewGateway(wallet),
		quoter: bind.NewBoundContract(chain.UniswapQuoter, chain.QuoterABI, client, client, client),
		router: bind.NewBoundContract(chain.UniswapRouter, chain.RouterABI, client, client, client),
	}
}

// quoteExactOutputSingleParams mirrors the QuoterV2 tuple.
type quoteExactOutputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Amount            *big.Int
	Fee               *big.Int
	SqrtPriceLimitX96 *big.Int
}

// exactOutputSingleParams mirrors the SwapRouter02 tuple.
type exactOutputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	AmountOut         *big.Int
	AmountInMaximum   *big.Int
	SqrtPriceLimitX96 *big.Int
}

// Quote simulates the quoter call and returns the USDC cost of acquiring
// amountOut REPPO through the fixed-fee pool.
func (g *Gateway) Quote(ctx context.Context, amountOut *big.Int) (*big.Int, error) {
	return utils.WithRetry(ctx, "quoteExactOutputSingle", func() (*big.Int, error) {
		var out []interface{}
		err := g.quoter.Call(&bind.CallOpts{Context: ctx}, &out, "quoteExactOutputSingle", quoteExactOutputSingleParams{
			TokenIn:           chain.USDCToken,
			TokenOut:          chain.ReppoToken,
			Amount:            amountOut,
			Fee:               big.NewInt(chain.PoolFee),
			SqrtPriceLimitX96: new(big.Int),
		})
		if err != nil {
			return nil, err
		}
		return out[0].(*big.Int), nil
	})
}

// MaxAmountIn applies the slippage tolerance to a quoted input amount using
// integer basis-point arithmetic.
func MaxAmountIn(quoted *big.Int, slippage float64) *big.Int {
	bps := big.NewInt(int64(math.Round(slippage * 100)))
	extra := new(big.Int).Mul(quoted, bps)
	extra.Div(extra, big.NewInt(10000))
	return new(big.Int).Add(quoted, extra)
}

// BuyParams controls a token purchase.
type BuyParams struct {
	// Amount of REPPO to acquire, in base units.
	Amount *big.Int
	// Slippage tolerance in percent.
	Slippage float64
	DryRun   bool
}

// Result reports a completed swap. AmountIn is the slippage-bounded maximum
// passed to the router, not necessarily what the router debited; the router
// enforces the ceiling but may spend less.
type Result struct {
	TxHash    common.Hash
	AmountIn  *big.Int
	AmountOut *big.Int
}

// Buy runs quote, balance check, approval, and swap in order. Dry-run stops
// after the balance check and returns nil with no mutation issued.
func (g *Gateway) Buy(ctx context.Context, params BuyParams) (*Result, error) {
	wallet := g.chain.Wallet()
	addr := wallet.Address()

	utils.Progressf("Quoting %s REPPO...\n", utils.FormatUnits(params.Amount, utils.ReppoDecimals))
	quoted, err := g.Quote(ctx, params.Amount)
	if err != nil {
		return nil, err
	}
	amountInMaximum := MaxAmountIn(quoted, params.Slippage)
	utils.Progressf("  Estimated cost: %s USDC\n", utils.FormatUnits(quoted, utils.USDCDecimals))
	utils.Progressf("  Max cost (%g%% slippage): %s USDC\n", params.Slippage, utils.FormatUnits(amountInMaximum, utils.USDCDecimals))

	usdcBalance, err := g.chain.ERC20Balance(ctx, chain.USDCToken, addr)
	if err != nil {
		return nil, err
	}
	utils.Progressf("  USDC balance: %s\n", utils.FormatUnits(usdcBalance, utils.USDCDecimals))
	if usdcBalance.Cmp(amountInMaximum) < 0 {
		return nil, fmt.Errorf("Insufficient USDC balance. Need %s, have %s",
			utils.FormatUnits(amountInMaximum, utils.USDCDecimals), utils.FormatUnits(usdcBalance, utils.USDCDecimals))
	}

	if params.DryRun {
		utils.Progressf("[dry-run] Would swap up to %s USDC for %s REPPO\n",
			utils.FormatUnits(amountInMaximum, utils.USDCDecimals), utils.FormatUnits(params.Amount, utils.ReppoDecimals))
		return nil, nil
	}

	allowance, err := g.chain.Allowance(ctx, chain.USDCToken, addr, chain.UniswapRouter)
	if err != nil {
		return nil, err
	}
	if allowance.Cmp(amountInMaximum) < 0 {
		utils.Progressf("Approving USDC spend...\n")
		if err := g.chain.ApproveERC20(ctx, chain.USDCToken, chain.UniswapRouter, amountInMaximum); err != nil {
			return nil, err
		}
	} else {
		utils.Progressf("Already approved\n")
	}

	utils.Progressf("Swapping USDC for REPPO...\n")
	opts, err := wallet.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := g.router.Transact(opts, "exactOutputSingle", exactOutputSingleParams{
		TokenIn:           chain.USDCToken,
		TokenOut:          chain.ReppoToken,
		Fee:               big.NewInt(chain.PoolFee),
		Recipient:         addr,
		AmountOut:         params.Amount,
		AmountInMaximum:   amountInMaximum,
		SqrtPriceLimitX96: new(big.Int),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit swap: %w", err)
	}
	utils.Progressf("  Swap tx: %s\n", tx.Hash())

	receipt, err := g.chain.WaitMined(ctx, tx)
	if err != nil {
		return nil, err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("swap transaction reverted: %s", tx.Hash())
	}
	utils.Progressf("  Swap complete! Block: %d\n", receipt.BlockNumber)

	return &Result{TxHash: tx.Hash(), AmountIn: amountInMaximum, AmountOut: params.Amount}, nil
}
