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

package reppo

import (
	"context"
	"net/http"

	"github.com/reppo-ai/reppo-cli/internal/auth"
	"github.com/reppo-ai/reppo-cli/utils"
)

// Client registers pod metadata with the Reppo API, authenticated through
// the Privy session manager.
type Client struct {
	baseURL    string
	auth       *auth.Manager
	httpClient *http.Client
}

func NewClient(manager *auth.Manager) *Client {
	return &Client{
		baseURL:    utils.ReppoAPIBaseURL,
		auth:       manager,
		httpClient: utils.NewHTTPClient(),
	}
}

// MetadataParams describe the pod record submitted after a mint.
type MetadataParams struct {
	TxHash      string
	Title       string
	Description string
	URL         string
	ImageURL    string
}

// SubmitMetadata performs the metadata registration. The registry treats the
// transaction hash as the idempotency key, so the call is safe to retry.
func (c *Client) SubmitMetadata(ctx context.Context, params MetadataParams) (map[string]interface{}, error) {
	headers, err := c.auth.AuthHeader(ctx)
	if err != nil {
		return nil, err
	}

	description := params.Description
	if description == "" {
		description = params.Title
	}
	payload := map[string]interface{}{
		"txHash":         params.TxHash,
		"verifyTx":       params.TxHash,
		"podName":        params.Title,
		"podDescription": description,
		"url":            params.URL,
		"subnet":         "AGENTS",
		"platform":       "moltbook",
		"category":       "AGENTS",
	}
	if params.ImageURL != "" {
		payload["imageURL"] = params.ImageURL
	}

	utils.Progressf("Submitting metadata to Reppo...\n")
	result, err := utils.WithRetry(ctx, "submitMetadata", func() (map[string]interface{}, error) {
		var resp map[string]interface{}
		if err := utils.FetchJSON(ctx, c.httpClient, http.MethodPost, c.baseURL+"/pods", headers, payload, &resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	utils.Progressf("Metadata submitted\n")
	return result, nil
}
