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
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/reppo-ai/reppo-cli/internal/chain"
	"github.com/reppo-ai/reppo-cli/internal/config"
	"github.com/reppo-ai/reppo-cli/utils"
)

const BalanceCmdLiteral = "balance"

var balanceCmd = &cobra.Command{
	Use:   BalanceCmdLiteral,
	Short: "Show wallet balances (ETH, REPPO, USDC)",
	Long:  "Reads the wallet's ETH, REPPO, and USDC balances from Base.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBalanceCommand(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalanceCommand(cmd *cobra.Command) error {
	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	wallet, err := chain.NewWallet(store)
	if err != nil {
		return err
	}
	gateway := chain.NewGateway(wallet)
	addr := wallet.Address()

	// The three balance reads are independent and read-only, so they run
	// concurrently.
	var ethBalance, reppoBalance, usdcBalance *big.Int
	group, ctx := errgroup.WithContext(cmd.Context())
	group.Go(func() (err error) {
		ethBalance, err = gateway.EthBalance(ctx, addr)
		return err
	})
	group.Go(func() (err error) {
		reppoBalance, err = gateway.TokenBalance(ctx, addr)
		return err
	})
	group.Go(func() (err error) {
		usdcBalance, err = gateway.ERC20Balance(ctx, chain.USDCToken, addr)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	if utils.IsJSONMode() {
		utils.OutputResult(map[string]interface{}{
			"address": wallet.AddressHex(),
			"eth": map[string]string{
				"raw":       ethBalance.String(),
				"formatted": utils.FormatUnits(ethBalance, utils.EthDecimals),
			},
			"reppo": map[string]string{
				"raw":       reppoBalance.String(),
				"formatted": utils.FormatUnits(reppoBalance, utils.ReppoDecimals),
			},
			"usdc": map[string]string{
				"raw":       usdcBalance.String(),
				"formatted": utils.FormatUnits(usdcBalance, utils.USDCDecimals),
			},
		})
	} else {
		fmt.Printf("Wallet: %s\n", wallet.AddressHex())
		fmt.Printf("  ETH:   %s\n", utils.FormatUnits(ethBalance, utils.EthDecimals))
		fmt.Printf("  REPPO: %s\n", utils.FormatUnits(reppoBalance, utils.ReppoDecimals))
		fmt.Printf("  USDC:  %s\n", utils.FormatUnits(usdcBalance, utils.USDCDecimals))
	}
	return nil
}
