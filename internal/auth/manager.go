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

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/reppo-ai/reppo-cli/utils"
)

// Signer proves ownership of the wallet key for the SIWE challenge.
type Signer interface {
	// AddressHex returns the EIP-55 checksummed wallet address.
	AddressHex() string
	// SignMessage returns the hex-encoded EIP-191 personal signature of msg.
	SignMessage(msg []byte) (string, error)
}

// Manager maintains the cached, persisted Privy session, refreshing or
// re-authenticating as needed.
type Manager struct {
	sessions   SessionStore
	signer     Signer
	httpClient *http.Client
	baseURL    string
}

func NewManager(sessions SessionStore, signer Signer) *Manager {
	return &Manager{
		sessions:   sessions,
		signer:     signer,
		httpClient: utils.NewHTTPClient(),
		baseURL:    utils.PrivyAPIBaseURL,
	}
}

func (m *Manager) headers(extra map[string]string) map[string]string {
	h := map[string]string{
		"privy-app-id": utils.PrivyAppID,
		"privy-client": utils.PrivyClientVersion,
	}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

// Login returns an active session: the cached one when still valid, a
// refreshed one when the cached session carries a refresh token, and a full
// SIWE login otherwise. Every successful login or refresh is persisted.
func (m *Manager) Login(ctx context.Context) (*Session, error) {
	session := LoadSession(m.sessions)
	if session != nil && !session.Expired {
		return session, nil
	}
	if session != nil && session.Expired && session.RefreshToken != "" {
		if refreshed := m.refresh(ctx, session); refreshed != nil {
			return refreshed, nil
		}
	}
	return m.siweLogin(ctx)
}

// AuthHeader returns the bearer header for authenticated registry calls,
// logging in first when necessary.
func (m *Manager) AuthHeader(ctx context.Context) (map[string]string, error) {
	session, err := m.Login(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{"Authorization": "Bearer " + session.Token}, nil
}

// refresh exchanges the stored refresh token for a new session. Any failure
// is swallowed; the caller falls back to a full SIWE login.
func (m *Manager) refresh(ctx context.Context, session *Session) *Session {
	utils.Progressf("Refreshing Privy session...\n")
	var resp struct {
		Token            string `json:"token"`
		PrivyAccessToken string `json:"privy_access_token"`
		RefreshToken     string `json:"refresh_token"`
	}
	err := utils.FetchJSON(ctx, m.httpClient, http.MethodPost, m.baseURL+"/api/v1/sessions",
		m.headers(map[string]string{"Authorization": "Bearer " + session.Token}),
		map[string]string{"refresh_token": session.RefreshToken}, &resp)
	if err != nil {
		utils.Progressf("Refresh failed: %v\n", err)
		return nil
	}

	refreshed := &Session{
		Token:            orElse(resp.Token, session.Token),
		PrivyAccessToken: orElse(resp.PrivyAccessToken, session.PrivyAccessToken),
		RefreshToken:     orElse(resp.RefreshToken, session.RefreshToken),
		UserID:           session.UserID,
	}
	if err := m.save(refreshed); err != nil {
		utils.Progressf("Refresh failed: %v\n", err)
		return nil
	}
	utils.Progressf("Session refreshed\n")
	return refreshed
}

// siweLogin runs the full challenge/response: nonce, deterministic message,
// personal signature, authenticate.
func (m *Manager) siweLogin(ctx context.Context) (*Session, error) {
	address := m.signer.AddressHex()
	utils.Progressf("Logging into Reppo via Privy (wallet: %s)...\n", address)

	var initResp struct {
		Nonce string `json:"nonce"`
	}
	err := utils.FetchJSON(ctx, m.httpClient, http.MethodPost, m.baseURL+"/api/v1/siwe/init",
		m.headers(nil), map[string]string{"address": address}, &initResp)
	if err != nil {
		return nil, fmt.Errorf("SIWE init failed: %w", err)
	}

	message := buildSIWEMessage(address, initResp.Nonce, time.Now().UTC())
	signature, err := m.signer.SignMessage([]byte(message))
	if err != nil {
		return nil, fmt.Errorf("failed to sign SIWE message: %w", err)
	}

	var authResp struct {
		Token            string `json:"token"`
		PrivyAccessToken string `json:"privy_access_token"`
		RefreshToken     string `json:"refresh_token"`
		User             struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	err = utils.FetchJSON(ctx, m.httpClient, http.MethodPost, m.baseURL+"/api/v1/siwe/authenticate",
		m.headers(nil), map[string]interface{}{
			"message":          message,
			"signature":        signature,
			"chainId":          "eip155:1",
			"walletClientType": "unknown",
			"connectorType":    "injected",
			"mode":             "login-or-sign-up",
		}, &authResp)
	if err != nil {
		return nil, fmt.Errorf("SIWE authenticate failed: %w", err)
	}

	session := &Session{
		Token:            authResp.Token,
		PrivyAccessToken: authResp.PrivyAccessToken,
		RefreshToken:     authResp.RefreshToken,
		UserID:           authResp.User.ID,
	}
	if err := m.save(session); err != nil {
		return nil, err
	}
	utils.Progressf("Logged in as %s\n", orElse(session.UserID, "unknown"))
	return session, nil
}

func (m *Manager) save(session *Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return m.sessions.Save(data)
}

// buildSIWEMessage builds the deterministic sign-in challenge. The chain id
// is fixed to 1 regardless of the chain transactions run on; the auth
// provider registers wallets under mainnet and rejects other ids.
func buildSIWEMessage(address, nonce string, issuedAt time.Time) string {
	const (
		domain  = "reppo.ai"
		uri     = "https://reppo.ai"
		version = "1"
		chainID = 1
	)
	return strings.Join([]string{
		fmt.Sprintf("%s wants you to sign in with your Ethereum account:", domain),
		address,
		"",
		"By signing, you are proving you own this wallet and logging in. This does not initiate a transaction or cost any fees.",
		"",
		fmt.Sprintf("URI: %s", uri),
		fmt.Sprintf("Version: %s", version),
		fmt.Sprintf("Chain ID: %d", chainID),
		fmt.Sprintf("Nonce: %s", nonce),
		fmt.Sprintf("Issued At: %s", issuedAt.Format(time.RFC3339)),
	}, "\n")
}

func orElse(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
