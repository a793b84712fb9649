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

const InitCmdLiteral = "init"

var initCmd = &cobra.Command{
	Use:   InitCmdLiteral,
	Short: "Interactive setup: wallet key, Moltbook key, login",
	Long:  "Prompts for the wallet private key and Moltbook API key, stores them under the config directory, and establishes an authentication session.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInitCommand(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// promptCredential prompts for one credential with masked input, asking before
// overwriting an existing value. Returns false when the existing value was
// kept.
func promptCredential(store *config.Store, name config.KeyName, label string) (bool, error) {
	if store.LoadKey(name) != "" {
		overwrite, err := utils.PromptConfirm(fmt.Sprintf("%s already configured. Overwrite? (y/N): ", label))
		if err != nil {
			return false, err
		}
		if !overwrite {
			return false, nil
		}
	}
	value, err := utils.PromptSecret(fmt.Sprintf("Enter %s: ", label))
	if err != nil {
		return false, err
	}
	if value == "" {
		fmt.Printf("Skipped %s (empty input)\n", label)
		return false, nil
	}
	if err := store.SaveKey(name, value); err != nil {
		return false, err
	}
	return true, nil
}

func runInitCommand(cmd *cobra.Command) error {
	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	if err := store.EnsureDir(); err != nil {
		return err
	}

	fmt.Println("Reppo CLI setup")
	fmt.Printf("Config directory: %s\n\n", store.Dir())

	if _, err := promptCredential(store, config.KeyPrivateKey, "wallet private key"); err != nil {
		return err
	}
	if _, err := promptCredential(store, config.KeyMoltbookKey, "Moltbook API key"); err != nil {
		return err
	}

	pk := store.LoadKey(config.KeyPrivateKey)
	if pk == "" {
		fmt.Println("\nSkipping auth and wallet check (no private key configured)")
		fmt.Println("\nSetup complete. Run \"reppo status\" to verify configuration.")
		return nil
	}

	// Auth and wallet reporting are best effort: a failed login or an
	// unreachable RPC endpoint does not undo the saved credentials.
	var session *auth.Session
	wallet, err := chain.NewWallet(store)
	if err != nil {
		fmt.Printf("\n  Could not fetch wallet info: %v\n", err)
	} else {
		fmt.Println("\nAuthenticating with Reppo...")
		session, err = auth.NewManager(auth.NewFileSessionStore(store), wallet).Login(cmd.Context())
		if err != nil {
			fmt.Printf("  Auth failed: %v\n", err)
		}

		fmt.Printf("\nWallet: %s\n", wallet.AddressHex())
		figures, err := fetchWalletFigures(cmd.Context(), chain.NewGateway(wallet), wallet.Address())
		if err != nil {
			fmt.Printf("  Could not fetch wallet info: %v\n", err)
		} else {
			printWalletSummary(figures)
			if figures.CanPublish() {
				fmt.Println("\n  Ready to publish!")
			} else {
				fmt.Println("\n  WARNING: Insufficient REPPO for publishing")
			}
		}
	}

	if utils.IsJSONMode() {
		var userID interface{}
		if session != nil && session.UserID != "" {
			userID = session.UserID
		}
		result := map[string]interface{}{
			"userId":    userID,
			"configDir": store.Dir(),
		}
		if wallet != nil {
			result["address"] = wallet.AddressHex()
		}
		utils.OutputResult(result)
	} else {
		fmt.Println("\nSetup complete. Run \"reppo status\" to verify configuration.")
	}
	return nil
}
