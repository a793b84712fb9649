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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reppo-ai/reppo-cli/utils"
)

// KeyName identifies a stored credential. The credential file under the
// config directory carries the same name.
type KeyName string

const (
	KeyPrivateKey  KeyName = "private_key"
	KeyMoltbookKey KeyName = "moltbook_key"
	KeyAPIKey      KeyName = "api_key"
)

// envMap maps credential names to their environment variable overrides.
var envMap = map[KeyName]string{
	KeyPrivateKey:  utils.EnvPrivateKey,
	KeyMoltbookKey: utils.EnvMoltbookKey,
	KeyAPIKey:      utils.EnvReppoAPIKey,
}

// DefaultRPCURL is the public Base endpoint used when no override is
// configured.
const DefaultRPCURL = "https://mainnet.base.org"

// Settings holds the non-secret configuration persisted as YAML.
type Settings struct {
	RPCURL  string `yaml:"rpcUrl,omitempty"`
	Submolt string `yaml:"submolt,omitempty"`
}

// Store reads and writes credentials and settings rooted at a single
// directory. Commands use DefaultStore; tests construct one over a temp dir.
// It is the sole point of contact with persisted secrets.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStore returns a store rooted at ~/.config/reppo.
func DefaultStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewStore(filepath.Join(homeDir, filepath.FromSlash(utils.ConfigDirName))), nil
}

func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir creates the config directory with owner-only permissions.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// LoadKey resolves a credential: environment variable override first, then
// the credential file. A missing credential is not an error; the empty
// string is returned and callers decide whether absence is fatal.
func (s *Store) LoadKey(name KeyName) string {
	if envVar, ok := envMap[name]; ok {
		if v := os.Getenv(envVar); v != "" {
			return strings.TrimSpace(v)
		}
	}
	data, err := os.ReadFile(filepath.Join(s.dir, string(name)))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveKey writes a credential file with owner read/write permissions only.
func (s *Store) SaveKey(name KeyName, value string) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	path := filepath.Join(s.dir, string(name))
	if err := os.WriteFile(path, []byte(strings.TrimSpace(value)+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	return nil
}

// WriteSecureFile writes an arbitrary file under the config directory with
// owner-only permissions. Used for the persisted session.
func (s *Store) WriteSecureFile(name string, data []byte) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// LoadSettings reads the YAML settings file. A missing file yields zero-value
// settings.
func (s *Store) LoadSettings() (*Settings, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, utils.SettingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return &settings, nil
}

// SaveSettings writes the YAML settings file.
func (s *Store) SaveSettings(settings *Settings) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, utils.SettingsFile), data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// RPCURL resolves the RPC endpoint: environment variable, then settings
// file, then the public Base endpoint.
func (s *Store) RPCURL() string {
	if v := os.Getenv(utils.EnvRPCURL); v != "" {
		return strings.TrimSpace(v)
	}
	if settings, err := s.LoadSettings(); err == nil && settings.RPCURL != "" {
		return settings.RPCURL
	}
	return DefaultRPCURL
}

// DefaultSubmolt resolves the target submolt when none is passed on the
// command line.
func (s *Store) DefaultSubmolt() string {
	if settings, err := s.LoadSettings(); err == nil && settings.Submolt != "" {
		return settings.Submolt
	}
	return utils.DefaultSubmolt
}

// SessionPath is where the authentication session is persisted.
func (s *Store) SessionPath() string {
	return filepath.Join(s.dir, utils.SessionFile)
}
