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

	"github.com/spf13/cobra"

	"github.com/reppo-ai/reppo-cli/internal/chain"
	"github.com/reppo-ai/reppo-cli/internal/config"
	"github.com/reppo-ai/reppo-cli/utils"
)

const FeeCmdLiteral = "fee"

var feeCmd = &cobra.Command{
	Use:   FeeCmdLiteral,
	Short: "Check current publishing fee",
	Long:  "Reads the current pod publishing fee from the pod contract.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFeeCommand(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(feeCmd)
}

func runFeeCommand(cmd *cobra.Command) error {
	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	wallet, err := chain.NewWallet(store)
	if err != nil {
		return err
	}
	fee, err := chain.NewGateway(wallet).PublishingFee(cmd.Context())
	if err != nil {
		return err
	}

	if utils.IsJSONMode() {
		utils.OutputResult(map[string]interface{}{
			"fee":          fee.String(),
			"feeFormatted": utils.FormatUnits(fee, utils.ReppoDecimals),
			"decimals":     utils.ReppoDecimals,
			"symbol":       "REPPO",
		})
	} else {
		fmt.Printf("Publishing fee: %s REPPO\n", utils.FormatUnits(fee, utils.ReppoDecimals))
		if fee.Sign() == 0 {
			fmt.Println("No fee required!")
		}
	}
	return nil
}
