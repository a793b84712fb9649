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

	"github.com/reppo-ai/reppo-cli/internal/config"
	"github.com/reppo-ai/reppo-cli/internal/moltbook"
	"github.com/reppo-ai/reppo-cli/utils"
)

const (
	PostCmdLiteral = "post"
	PostCmdExample = `# Post content to the default submolt
reppo post --title "Dataset drop" --body "Fresh crawl of DEX liquidity events"

# Post to a specific submolt without making changes
reppo post --title "Dataset drop" --body "..." --submolt datatrading --dry-run`
)

var (
	postTitle   string
	postBody    string
	postSubmolt string
	postDryRun  bool
)

var postCmd = &cobra.Command{
	Use:     PostCmdLiteral,
	Short:   "Post content to Moltbook",
	Long:    "Posts the given title and body to Moltbook without touching the chain.",
	Example: PostCmdExample,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPostCommand(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.Flags().StringVar(&postTitle, utils.FlagTitle, "", "Content title (3-50 chars)")
	postCmd.Flags().StringVar(&postBody, utils.FlagBody, "", "Content body (markdown)")
	postCmd.Flags().StringVar(&postSubmolt, utils.FlagSubmolt, "", "Target submolt")
	postCmd.Flags().BoolVar(&postDryRun, utils.FlagDryRun, false, "Simulate without making changes")
	postCmd.MarkFlagRequired(utils.FlagTitle)
	postCmd.MarkFlagRequired(utils.FlagBody)
}

func runPostCommand(cmd *cobra.Command) error {
	if err := utils.ValidateTitle(postTitle); err != nil {
		return err
	}
	if err := utils.ValidateBody(postBody); err != nil {
		return err
	}

	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	submolt := resolveSubmolt(store, postSubmolt)

	if postDryRun {
		if utils.IsJSONMode() {
			utils.OutputResult(map[string]interface{}{"dryRun": true, "submolt": submolt})
		} else {
			fmt.Printf("[dry-run] Would post to Moltbook (m/%s)\n", submolt)
		}
		return nil
	}

	client, err := moltbook.NewClient(store)
	if err != nil {
		return err
	}
	result, err := client.CreatePost(cmd.Context(), postTitle, postBody, submolt)
	if err != nil {
		return err
	}
	utils.OutputResult(result)
	return nil
}

// resolveSubmolt falls back to the configured default when no submolt is
// passed on the command line.
func resolveSubmolt(store *config.Store, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return store.DefaultSubmolt()
}
