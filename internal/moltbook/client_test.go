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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reppo-ai/reppo-cli/internal/config"
	"github.com/reppo-ai/reppo-cli/utils"
)

func testClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, key: "mb-key", httpClient: utils.NewHTTPClient()}
}

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv(utils.EnvMoltbookKey, "")
	_, err := NewClient(config.NewStore(t.TempDir()))
	assert.ErrorIs(t, err, ErrNoAPIKey)

	t.Setenv(utils.EnvMoltbookKey, "mb-key")
	client, err := NewClient(config.NewStore(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "mb-key", client.key)
}

func TestCreatePost(t *testing.T) {
	var payload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "Bearer mb-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]string{"id": "abc123", "url": "https://moltbook.com/post/abc123"})
	}))
	defer server.Close()

	post, err := testClient(server.URL).CreatePost(context.Background(), "A title", "Body text", "datatrading")
	require.NoError(t, err)
	assert.Equal(t, "abc123", post.ID)
	assert.Equal(t, "https://moltbook.com/post/abc123", post.URL)
	assert.Equal(t, "A title", payload["title"])
	assert.Equal(t, "Body text", payload["body"])
	assert.Equal(t, "datatrading", payload["submolt"])
}

func TestCreatePostBuildsURLFromID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "xyz789"})
	}))
	defer server.Close()

	post, err := testClient(server.URL).CreatePost(context.Background(), "A title", "Body text", "")
	require.NoError(t, err)
	assert.Equal(t, "https://moltbook.com/post/xyz789", post.URL)
}

func TestCreatePostSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreatePost(context.Background(), "A title", "Body text", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}
