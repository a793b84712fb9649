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
	"os"

	"github.com/spf13/cobra"

	"github.com/reppo-ai/reppo-cli/utils"
)

var rootCmd = &cobra.Command{
	Use:   utils.CliName,
	Short: "reppo is a cli tool to publish AI agent training intentions to Reppo",
	Long:  "reppo posts content to Moltbook, mints pods on Base, and registers pod metadata with the Reppo API.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		jsonOut, _ := cmd.Flags().GetBool(utils.FlagJSON)
		utils.SetJSONMode(jsonOut)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().Bool(utils.FlagJSON, false, "Output results as JSON (for programmatic use)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Oops. An error occurred while executing %s: %v\n", utils.CliName, err)
		os.Exit(1)
	}
}

// exitWithError prints the single-line failure message and terminates with a
// non-zero code. No partial state is rolled back: a confirmed approval ahead
// of a failed mint stays in place for the next attempt.
func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
