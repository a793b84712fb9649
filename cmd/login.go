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
	"github.com/reppo-ai/reppo-cli/utils"
)

const LoginCmdLiteral = "login"

var loginCmd = &cobra.Command{
	Use:   LoginCmdLiteral,
	Short: "Authenticate with Reppo via wallet signature",
	Long:  "Establishes a Privy session by signing a challenge with the wallet key. Reuses or refreshes an existing session when possible.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLoginCommand(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLoginCommand(cmd *cobra.Command) error {
	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	wallet, err := chain.NewWallet(store)
	if err != nil {
		return err
	}

	session, err := auth.NewManager(auth.NewFileSessionStore(store), wallet).Login(cmd.Context())
	if err != nil {
		return err
	}

	if utils.IsJSONMode() {
		var userID interface{}
		if session.UserID != "" {
			userID = session.UserID
		}
		utils.OutputResult(map[string]interface{}{
			"userId":      userID,
			"sessionFile": store.SessionPath(),
		})
	} else {
		fmt.Println("Privy session active")
		if session.UserID != "" {
			fmt.Printf("  User: %s\n", session.UserID)
		}
		fmt.Printf("  Session: %s\n", store.SessionPath())
	}
	return nil
}
