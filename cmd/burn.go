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
	"math/big"

	"github.com/spf13/cobra"

	"github.com/reppo-ai/reppo-cli/internal/chain"
	"github.com/reppo-ai/reppo-cli/internal/config"
	"github.com/reppo-ai/reppo-cli/utils"
)

const (
	BurnCmdLiteral = "burn"
	BurnCmdExample = `# Burn a previously minted pod
reppo burn --pod-id 42`
)

var (
	burnPodID  string
	burnDryRun bool
)

var burnCmd = &cobra.Command{
	Use:     BurnCmdLiteral,
	Short:   "Burn a previously minted pod",
	Long:    "Burns the given pod on Base. The pod must be owned by the configured wallet.",
	Example: BurnCmdExample,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBurnCommand(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(burnCmd)
	burnCmd.Flags().StringVar(&burnPodID, utils.FlagPodID, "", "ID of the pod to burn")
	burnCmd.Flags().BoolVar(&burnDryRun, utils.FlagDryRun, false, "Simulate without sending transactions")
	burnCmd.MarkFlagRequired(utils.FlagPodID)
}

// parseBurnArgs validates the pod id before any network call.
func parseBurnArgs(podIDArg string) (*big.Int, error) {
	podID, ok := new(big.Int).SetString(podIDArg, 10)
	if !ok || podID.Sign() < 0 {
		return nil, errors.New("Pod ID must be a non-negative integer")
	}
	return podID, nil
}

func runBurnCommand(cmd *cobra.Command) error {
	podID, err := parseBurnArgs(burnPodID)
	if err != nil {
		return err
	}

	if burnDryRun {
		if utils.IsJSONMode() {
			utils.OutputResult(map[string]interface{}{"dryRun": true, "podId": podID.String()})
		} else {
			fmt.Printf("[dry-run] Would burn pod %s\n", podID)
		}
		return nil
	}

	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	wallet, err := chain.NewWallet(store)
	if err != nil {
		return err
	}

	utils.Progressf("Burning pod %s...\n", podID)
	txHash, err := chain.NewGateway(wallet).BurnPod(cmd.Context(), podID)
	if err != nil {
		return err
	}

	if utils.IsJSONMode() {
		utils.OutputResult(map[string]interface{}{
			"txHash": txHash.Hex(),
			"podId":  podID.String(),
			"txUrl":  fmt.Sprintf(utils.BasescanTxURLFormat, txHash.Hex()),
		})
	} else {
		fmt.Println("\nPod burned!")
		fmt.Printf("  Tx: "+utils.BasescanTxURLFormat+"\n", txHash.Hex())
	}
	return nil
}
