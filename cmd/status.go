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
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/reppo-ai/reppo-cli/internal/auth"
	"github.com/reppo-ai/reppo-cli/internal/chain"
	"github.com/reppo-ai/reppo-cli/internal/config"
	"github.com/reppo-ai/reppo-cli/utils"
)

const StatusCmdLiteral = "status"

var statusCmd = &cobra.Command{
	Use:   StatusCmdLiteral,
	Short: "Show configuration, session, and wallet status",
	Long:  "Reports which credentials are configured, the authentication session state, and the wallet's on-chain readiness to publish.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runStatusCommand(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// sessionState classifies the persisted session for display.
func sessionState(session *auth.Session) string {
	switch {
	case session == nil:
		return "none"
	case session.Expired:
		return "expired"
	default:
		return "active"
	}
}

// walletFigures are the on-chain readiness numbers shown by status and init.
type walletFigures struct {
	Eth   *big.Int
	Reppo *big.Int
	Fee   *big.Int
}

func (f *walletFigures) CanPublish() bool {
	return f.Fee.Sign() == 0 || f.Reppo.Cmp(f.Fee) >= 0
}

// fetchWalletFigures runs the three independent read-only queries
// concurrently.
func fetchWalletFigures(ctx context.Context, gateway *chain.Gateway, addr common.Address) (*walletFigures, error) {
	var f walletFigures
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		f.Eth, err = gateway.EthBalance(ctx, addr)
		return err
	})
	group.Go(func() (err error) {
		f.Reppo, err = gateway.TokenBalance(ctx, addr)
		return err
	})
	group.Go(func() (err error) {
		f.Fee, err = gateway.PublishingFee(ctx)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &f, nil
}

// walletFields builds the machine-readable wallet section: raw base-unit
// amounts as decimal strings alongside their formatted counterparts.
func walletFields(address string, f *walletFigures, chainErr error) map[string]interface{} {
	w := map[string]interface{}{"address": address}
	if chainErr != nil {
		w["error"] = chainErr.Error()
		return w
	}
	if f == nil {
		return w
	}
	w["ethBalance"] = f.Eth.String()
	w["ethBalanceFormatted"] = utils.FormatUnits(f.Eth, utils.EthDecimals)
	w["reppoBalance"] = f.Reppo.String()
	w["reppoBalanceFormatted"] = utils.FormatUnits(f.Reppo, utils.ReppoDecimals)
	w["publishingFee"] = f.Fee.String()
	w["publishingFeeFormatted"] = utils.FormatUnits(f.Fee, utils.ReppoDecimals)
	w["canPublish"] = f.CanPublish()
	return w
}

// printWalletSummary renders the three balance lines shared by status and
// init.
func printWalletSummary(f *walletFigures) {
	fmt.Printf("  ETH balance:    %s ETH\n", utils.FormatUnits(f.Eth, utils.EthDecimals))
	fmt.Printf("  REPPO balance:  %s REPPO\n", utils.FormatUnits(f.Reppo, utils.ReppoDecimals))
	fmt.Printf("  Publishing fee: %s REPPO\n", utils.FormatUnits(f.Fee, utils.ReppoDecimals))
}

func runStatusCommand(cmd *cobra.Command) error {
	store, err := config.DefaultStore()
	if err != nil {
		return err
	}

	privateKey := store.LoadKey(config.KeyPrivateKey)
	moltbookKey := store.LoadKey(config.KeyMoltbookKey)
	session := auth.LoadSession(auth.NewFileSessionStore(store))

	var address string
	if privateKey != "" {
		if addr, err := chain.AddressFromKey(privateKey); err == nil {
			address = addr.Hex()
		}
	}

	// On-chain readiness is best effort. A missing key or an unreachable RPC
	// endpoint still leaves the local sections worth reporting.
	var (
		figures  *walletFigures
		chainErr error
	)
	if address != "" {
		var wallet *chain.Wallet
		wallet, chainErr = chain.NewWallet(store)
		if chainErr == nil {
			figures, chainErr = fetchWalletFigures(cmd.Context(), chain.NewGateway(wallet), wallet.Address())
		}
	}

	if utils.IsJSONMode() {
		var userID interface{}
		if session != nil && session.UserID != "" {
			userID = session.UserID
		}
		result := map[string]interface{}{
			"auth": map[string]interface{}{
				"privateKey":   privateKey != "",
				"moltbookKey":  moltbookKey != "",
				"privySession": sessionState(session),
				"privyUserId":  userID,
			},
			"config": map[string]interface{}{
				"chainId":     chain.ChainID,
				"podContract": chain.PodContract.Hex(),
				"reppoToken":  chain.ReppoToken.Hex(),
				"rpcUrl":      store.RPCURL(),
				"configDir":   store.Dir(),
			},
		}
		if address != "" {
			result["wallet"] = walletFields(address, figures, chainErr)
		}
		utils.OutputResult(result)
	} else {
		fmt.Println("Auth Status:")
		fmt.Printf("  Private key:      %s\n", presence(privateKey != ""))
		fmt.Printf("  Moltbook API key: %s\n", presence(moltbookKey != ""))
		switch sessionState(session) {
		case "active":
			user := "unknown"
			if session.UserID != "" {
				user = session.UserID
			}
			fmt.Printf("  Privy session:    active (user: %s)\n", user)
		case "expired":
			fmt.Println("  Privy session:    expired (will auto-refresh on next request)")
		default:
			fmt.Println("  Privy session:    not logged in (run: reppo login)")
		}
		if address != "" {
			fmt.Printf("\nWallet: %s\n", address)
			if chainErr != nil {
				fmt.Printf("  Could not fetch on-chain data: %v\n", chainErr)
			} else {
				printWalletSummary(figures)
				if figures.CanPublish() {
					fmt.Println("  Ready to publish")
				} else {
					fmt.Println("  WARNING: Insufficient REPPO for publishing!")
				}
			}
		}
		fmt.Println("\nConfig:")
		fmt.Printf("  Chain:        Base (%d)\n", chain.ChainID)
		fmt.Printf("  Pod contract: %s\n", chain.PodContract.Hex())
		fmt.Printf("  REPPO token:  %s\n", chain.ReppoToken.Hex())
		fmt.Printf("  RPC:          %s\n", store.RPCURL())
		fmt.Printf("  Config dir:   %s\n", store.Dir())
	}
	return nil
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing"
}
