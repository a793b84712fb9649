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

	"github.com/reppo-ai/reppo-cli/internal/auth"
	"github.com/reppo-ai/reppo-cli/internal/chain"
	"github.com/reppo-ai/reppo-cli/internal/config"
	"github.com/reppo-ai/reppo-cli/internal/reppo"
	"github.com/reppo-ai/reppo-cli/utils"
)

const (
	MintCmdLiteral = "mint"
	MintCmdExample = `# Mint a pod for an existing Moltbook post
reppo mint --title "Dataset drop" --url https://moltbook.com/post/abc123

# Simulate the mint
reppo mint --title "Dataset drop" --url https://moltbook.com/post/abc123 --dry-run`
)

var (
	mintTitle       string
	mintURL         string
	mintDescription string
	mintImageURL    string
	mintSkipApprove bool
	mintDryRun      bool
)

var mintCmd = &cobra.Command{
	Use:     MintCmdLiteral,
	Short:   "Mint a pod on-chain and submit metadata to Reppo",
	Long:    "Mints a pod on Base (approving the publishing fee when needed) and registers its metadata with the Reppo API.",
	Example: MintCmdExample,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMintCommand(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(mintCmd)
	mintCmd.Flags().StringVar(&mintTitle, utils.FlagTitle, "", "Content title (3-50 chars)")
	mintCmd.Flags().StringVar(&mintURL, utils.FlagURL, "", "Content URL (e.g. Moltbook post URL)")
	mintCmd.Flags().StringVar(&mintDescription, utils.FlagDescription, "", "Short description (10-200 chars)")
	mintCmd.Flags().StringVar(&mintImageURL, utils.FlagImageURL, "", "Image URL for the pod")
	mintCmd.Flags().BoolVar(&mintSkipApprove, utils.FlagSkipApprove, false, "Skip ERC20 approval step")
	mintCmd.Flags().BoolVar(&mintDryRun, utils.FlagDryRun, false, "Simulate without sending transactions")
	mintCmd.MarkFlagRequired(utils.FlagTitle)
	mintCmd.MarkFlagRequired(utils.FlagURL)
}

func runMintCommand(cmd *cobra.Command) error {
	if err := utils.ValidateTitle(mintTitle); err != nil {
		return err
	}
	if mintDescription != "" {
		if err := utils.ValidateDescription(mintDescription); err != nil {
			return err
		}
	}

	if mintDryRun {
		if utils.IsJSONMode() {
			utils.OutputResult(map[string]interface{}{"dryRun": true, "title": mintTitle, "url": mintURL})
		} else {
			fmt.Println("[dry-run] Would mint pod and submit metadata")
			fmt.Printf("  Title: %s\n", mintTitle)
			fmt.Printf("  URL: %s\n", mintURL)
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
	gateway := chain.NewGateway(wallet)

	mint, err := gateway.MintPod(cmd.Context(), chain.MintParams{SkipApprove: mintSkipApprove})
	if err != nil {
		return err
	}

	registry := reppo.NewClient(auth.NewManager(auth.NewFileSessionStore(store), wallet))
	metadata, err := registry.SubmitMetadata(cmd.Context(), reppo.MetadataParams{
		TxHash:      mint.TxHash.Hex(),
		Title:       mintTitle,
		Description: mintDescription,
		URL:         mintURL,
		ImageURL:    mintImageURL,
	})
	if err != nil {
		return err
	}

	if utils.IsJSONMode() {
		var podID interface{}
		if mint.PodID != nil {
			podID = mint.PodID.String()
		}
		utils.OutputResult(map[string]interface{}{
			"txHash":   mint.TxHash.Hex(),
			"podId":    podID,
			"txUrl":    fmt.Sprintf(utils.BasescanTxURLFormat, mint.TxHash.Hex()),
			"metadata": metadata,
		})
	} else {
		fmt.Println("\nPod published!")
		fmt.Printf("  Tx: "+utils.BasescanTxURLFormat+"\n", mint.TxHash.Hex())
		if mint.PodID != nil {
			fmt.Printf("  Pod ID: %s\n", mint.PodID)
		}
	}
	return nil
}
