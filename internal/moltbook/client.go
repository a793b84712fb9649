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

package moltbook

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/reppo-ai/reppo-cli/internal/config"
	"github.com/reppo-ai/reppo-cli/utils"
)

// ErrNoAPIKey carries the instructive message for a missing posting key.
var ErrNoAPIKey = errors.New("Moltbook API key not found. Set MOLTBOOK_API_KEY or create ~/.config/reppo/moltbook_key")

// Client posts content to the Moltbook API with a static API key. Moltbook
// auth is independent of the Privy session.
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
}

func NewClient(store *config.Store) (*Client, error) {
	key := store.LoadKey(config.KeyMoltbookKey)
	if key == "" {
		return nil, ErrNoAPIKey
	}
	return &Client{
		baseURL:    utils.MoltbookAPIBaseURL,
		key:        key,
		httpClient: utils.NewHTTPClient(),
	}, nil
}

// Post is a created Moltbook post with its canonical URL.
type Post struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreatePost publishes content to the given submolt and returns the post id
// and canonical URL, constructing the URL from the id when the service omits
// it.
func (c *Client) CreatePost(ctx context.Context, title, body, submolt string) (*Post, error) {
	utils.Progressf("Posting to Moltbook (m/%s)...\n", submolt)

	payload := map[string]string{"title": title, "body": body}
	if submolt != "" {
		payload["submolt"] = submolt
	}

	var resp struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	err := utils.FetchJSON(ctx, c.httpClient, http.MethodPost, c.baseURL+"/posts",
		map[string]string{"Authorization": "Bearer " + c.key}, payload, &resp)
	if err != nil {
		return nil, err
	}

	url := resp.URL
	if url == "" {
		url = fmt.Sprintf(utils.MoltbookPostURLFormat, resp.ID)
	}
	utils.Progressf("Posted to Moltbook: %s\n", url)
	return &Post{ID: resp.ID, URL: url}, nil
}
