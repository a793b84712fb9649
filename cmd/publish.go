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
	"github.com/reppo-ai/reppo-cli/internal/moltbook"
	"github.com/reppo-ai/reppo-cli/internal/reppo"
	"github.com/reppo-ai/reppo-cli/utils"
)

const (
	PublishCmdLiteral = "publish"
	PublishCmdExample = `# Full flow: post to Moltbook, mint the pod, register metadata
reppo publish --title "Dataset drop" --body "Fresh crawl of DEX liquidity events"

# Inspect the plan without touching anything
reppo publish --title "Dataset drop" --body "..." --dry-run --json`
)

var (
	publishTitle       string
	publishBody        string
	publishDescription string
	publishSubmolt     string
	publishImageURL    string
	publishSkipApprove bool
	publishDryRun      bool
)

var publishCmd = &cobra.Command{
	Use:     PublishCmdLiteral,
	Short:   "Full flow: post to Moltbook + mint pod + submit metadata",
	Long:    "Posts content to Moltbook, mints the pod on Base, and registers metadata with the Reppo API, feeding each step's output into the next.",
	Example: PublishCmdExample,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPublishCommand(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVar(&publishTitle, utils.FlagTitle, "", "Content title (3-50 chars)")
	publishCmd.Flags().StringVar(&publishBody, utils.FlagBody, "", "Content body (markdown)")
	publishCmd.Flags().StringVar(&publishDescription, utils.FlagDescription, "", "Short description (10-200 chars)")
	publishCmd.Flags().StringVar(&publishSubmolt, utils.FlagSubmolt, "", "Target submolt")
	publishCmd.Flags().StringVar(&publishImageURL, utils.FlagImageURL, "", "Image URL for the pod")
	publishCmd.Flags().BoolVar(&publishSkipApprove, utils.FlagSkipApprove, false, "Skip ERC20 approval step")
	publishCmd.Flags().BoolVar(&publishDryRun, utils.FlagDryRun, false, "Simulate without making changes")
	publishCmd.MarkFlagRequired(utils.FlagTitle)
	publishCmd.MarkFlagRequired(utils.FlagBody)
}

// publishStep is one entry of the dry-run plan.
type publishStep struct {
	Action  string `json:"action"`
	Submolt string `json:"submolt,omitempty"`
	Skip    *bool  `json:"skip,omitempty"`
}

// publishPlan narrates the four orchestrated steps in execution order.
func publishPlan(submolt string, skipApprove bool) []publishStep {
	return []publishStep{
		{Action: "post", Submolt: submolt},
		{Action: "approve", Skip: &skipApprove},
		{Action: "mint"},
		{Action: "submitMetadata"},
	}
}

// defaultDescription falls back to the first 200 characters of the body when
// no explicit description is given.
func defaultDescription(description, body string) string {
	if description != "" {
		return description
	}
	runes := []rune(body)
	if len(runes) > 200 {
		return string(runes[:200])
	}
	return body
}

func runPublishCommand(cmd *cobra.Command) error {
	if err := utils.ValidateTitle(publishTitle); err != nil {
		return err
	}
	if err := utils.ValidateBody(publishBody); err != nil {
		return err
	}
	if publishDescription != "" {
		if err := utils.ValidateDescription(publishDescription); err != nil {
			return err
		}
	}

	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	submolt := resolveSubmolt(store, publishSubmolt)

	if publishDryRun {
		if utils.IsJSONMode() {
			utils.OutputResult(map[string]interface{}{
				"dryRun": true,
				"steps":  publishPlan(submolt, publishSkipApprove),
			})
		} else {
			fmt.Println("[dry-run] Full publish simulation:")
			fmt.Printf("  1. Would post to Moltbook (m/%s)\n", submolt)
			if publishSkipApprove {
				fmt.Println("  2. Would approve REPPO spend (skipped)")
			} else {
				fmt.Println("  2. Would approve REPPO spend")
			}
			fmt.Println("  3. Would mint pod on Base")
			fmt.Println("  4. Would submit metadata to Reppo")
		}
		return nil
	}

	// Step 1: post to Moltbook.
	poster, err := moltbook.NewClient(store)
	if err != nil {
		return err
	}
	post, err := poster.CreatePost(cmd.Context(), publishTitle, publishBody, submolt)
	if err != nil {
		return err
	}

	// Step 2: mint the pod on-chain.
	wallet, err := chain.NewWallet(store)
	if err != nil {
		return err
	}
	gateway := chain.NewGateway(wallet)
	mint, err := gateway.MintPod(cmd.Context(), chain.MintParams{SkipApprove: publishSkipApprove})
	if err != nil {
		return err
	}

	// Step 3: register metadata, linking the post URL and the mint tx.
	registry := reppo.NewClient(auth.NewManager(auth.NewFileSessionStore(store), wallet))
	metadata, err := registry.SubmitMetadata(cmd.Context(), reppo.MetadataParams{
		TxHash:      mint.TxHash.Hex(),
		Title:       publishTitle,
		Description: defaultDescription(publishDescription, publishBody),
		URL:         post.URL,
		ImageURL:    publishImageURL,
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
			"moltbook": post,
			"txHash":   mint.TxHash.Hex(),
			"podId":    podID,
			"txUrl":    fmt.Sprintf(utils.BasescanTxURLFormat, mint.TxHash.Hex()),
			"metadata": metadata,
		})
	} else {
		fmt.Println("\nPublish complete!")
		fmt.Printf("  Moltbook: %s\n", post.URL)
		fmt.Printf("  Tx: "+utils.BasescanTxURLFormat+"\n", mint.TxHash.Hex())
		if mint.PodID != nil {
			fmt.Printf("  Pod ID: %s\n", mint.PodID)
		}
	}
	return nil
}
