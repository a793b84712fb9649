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

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reppo-ai/reppo-cli/utils"
)

func TestLoadKeyEnvOverridesFile(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.SaveKey(KeyPrivateKey, "from-file"))

	t.Setenv(utils.EnvPrivateKey, "from-env")
	assert.Equal(t, "from-env", store.LoadKey(KeyPrivateKey))

	t.Setenv(utils.EnvPrivateKey, "")
	assert.Equal(t, "from-file", store.LoadKey(KeyPrivateKey))
}

func TestLoadKeyMissingIsEmpty(t *testing.T) {
	store := NewStore(t.TempDir())
	t.Setenv(utils.EnvMoltbookKey, "")
	assert.Empty(t, store.LoadKey(KeyMoltbookKey))
}

func TestSaveKeyTrimsAndRestrictsPermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.SaveKey(KeyMoltbookKey, "  secret-value  \n"))

	path := filepath.Join(dir, string(KeyMoltbookKey))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-value\n", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	t.Setenv(utils.EnvMoltbookKey, "")
	assert.Equal(t, "secret-value", store.LoadKey(KeyMoltbookKey))
}

func TestSettingsRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	settings, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Empty(t, settings.RPCURL)

	require.NoError(t, store.SaveSettings(&Settings{RPCURL: "https://base.example", Submolt: "research"}))
	settings, err = store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "https://base.example", settings.RPCURL)
	assert.Equal(t, "research", settings.Submolt)
}

func TestRPCURLResolutionOrder(t *testing.T) {
	store := NewStore(t.TempDir())

	t.Setenv(utils.EnvRPCURL, "")
	assert.Equal(t, DefaultRPCURL, store.RPCURL())

	require.NoError(t, store.SaveSettings(&Settings{RPCURL: "https://settings.example"}))
	assert.Equal(t, "https://settings.example", store.RPCURL())

	t.Setenv(utils.EnvRPCURL, "https://env.example")
	assert.Equal(t, "https://env.example", store.RPCURL())
}

func TestDefaultSubmolt(t *testing.T) {
	store := NewStore(t.TempDir())
	assert.Equal(t, utils.DefaultSubmolt, store.DefaultSubmolt())

	require.NoError(t, store.SaveSettings(&Settings{Submolt: "research"}))
	assert.Equal(t, "research", store.DefaultSubmolt())
}

func TestSessionPath(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	assert.Equal(t, filepath.Join(dir, utils.SessionFile), store.SessionPath())
}
