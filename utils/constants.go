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

package utils

import "time"

const CliName = "reppo"

// Configuration
const (
	ConfigDirName = ".config/reppo"
	SettingsFile  = "settings.yaml"
	SessionFile   = "session.json"
)

// Remote services
const (
	ReppoAPIBaseURL    = "https://reppo.ai/api/v1"
	PrivyAPIBaseURL    = "https://auth.privy.io"
	PrivyAppID         = "cm6oljano016v9x3xsd1xw36p"
	PrivyClientVersion = "react-auth:3.13.1"
	MoltbookAPIBaseURL = "https://moltbook.com/api"

	// URL templates
	MoltbookPostURLFormat = "https://moltbook.com/post/%s"
	BasescanTxURLFormat   = "https://basescan.org/tx/%s"
)

const DefaultSubmolt = "datatrading"

// Environment Variables
const (
	EnvPrivateKey  = "REPPO_PRIVATE_KEY"
	EnvMoltbookKey = "MOLTBOOK_API_KEY"
	EnvReppoAPIKey = "REPPO_API_KEY"
	EnvRPCURL      = "REPPO_RPC_URL"
)

// Timeouts and retry policy
const (
	HTTPTimeout      = 30 * time.Second
	TxReceiptTimeout = 2 * time.Minute
	MaxRetryAttempts = 3
	RetryBaseDelay   = time.Second
)

// Token decimals
const (
	EthDecimals   = 18
	ReppoDecimals = 18
	USDCDecimals  = 6
)
