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

package cmd

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reppo-ai/reppo-cli/internal/chain"
	"github.com/reppo-ai/reppo-cli/internal/config"
	"github.com/reppo-ai/reppo-cli/internal/swap"
	"github.com/reppo-ai/reppo-cli/utils"
)

const (
	BuyCmdLiteral = "buy"
	BuyCmdExample = `# Buy 100 REPPO with up to 1% slippage
reppo buy --amount 100

# Quote only, no transaction
reppo buy --amount 100 --slippage 0.5 --dry-run`
)

var (
	buyAmount   string
	buySlippage string
	buyDryRun   bool
)

var buyCmd = &cobra.Command{
	Use:     BuyCmdLiteral,
	Short:   "Buy REPPO tokens with USDC via Uniswap",
	Long:    "Quotes the USDC cost of the requested REPPO amount, approves the router when needed, and executes the swap.",
	Example: BuyCmdExample,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBuyCommand(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(buyCmd)
	buyCmd.Flags().StringVar(&buyAmount, utils.FlagAmount, "", "Amount of REPPO to buy")
	buyCmd.Flags().StringVar(&buySlippage, utils.FlagSlippage, "1", "Slippage tolerance in percent")
	buyCmd.Flags().BoolVar(&buyDryRun, utils.FlagDryRun, false, "Simulate without executing")
	buyCmd.MarkFlagRequired(utils.FlagAmount)
}

// parseBuyArgs validates the amount and slippage before any network call.
func parseBuyArgs(amountArg, slippageArg string) (*big.Int, float64, error) {
	amount, err := utils.ParseUnits(amountArg, utils.ReppoDecimals)
	if err != nil || amount.Sign() <= 0 {
		return nil, 0, errors.New("Amount must be greater than 0")
	}

	slippage := 1.0
	if slippageArg != "" {
		slippage, err = strconv.ParseFloat(slippageArg, 64)
		if err != nil || math.IsNaN(slippage) || math.IsInf(slippage, 0) || slippage < 0 || slippage > 100 {
			return nil, 0, errors.New("Slippage must be a number between 0 and 100")
		}
	}
	return amount, slippage, nil
}

func runBuyCommand(cmd *cobra.Command) error {
	amount, slippage, err := parseBuyArgs(buyAmount, buySlippage)
	if err != nil {
		return err
	}

	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	wallet, err := chain.NewWallet(store)
	if err != nil {
		return err
	}

	result, err := swap.NewGateway(wallet).Buy(cmd.Context(), swap.BuyParams{
		Amount:   amount,
		Slippage: slippage,
		DryRun:   buyDryRun,
	})
	if err != nil {
		return err
	}

	if buyDryRun {
		if utils.IsJSONMode() {
			utils.OutputResult(map[string]interface{}{
				"dryRun":      true,
				"amountReppo": utils.FormatUnits(amount, utils.ReppoDecimals),
				"slippage":    slippage,
			})
		}
		return nil
	}
	if result == nil {
		return nil
	}

	if utils.IsJSONMode() {
		utils.OutputResult(map[string]interface{}{
			"txHash":    result.TxHash.Hex(),
			"amountIn":  utils.FormatUnits(result.AmountIn, utils.USDCDecimals),
			"amountOut": utils.FormatUnits(result.AmountOut, utils.ReppoDecimals),
			"txUrl":     fmt.Sprintf(utils.BasescanTxURLFormat, result.TxHash.Hex()),
		})
	} else {
		fmt.Println("\nSwap complete!")
		fmt.Printf("  USDC spent: %s\n", utils.FormatUnits(result.AmountIn, utils.USDCDecimals))
		fmt.Printf("  REPPO received: %s\n", utils.FormatUnits(result.AmountOut, utils.ReppoDecimals))
		fmt.Printf("  Tx: "+utils.BasescanTxURLFormat+"\n", result.TxHash.Hex())
	}
	return nil
}
