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
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/reppo-ai/reppo-cli/internal/config"
	"github.com/reppo-ai/reppo-cli/utils"
)

// ExpiryLeeway is how close to expiry a token may be before the session is
// treated as needing a refresh.
const ExpiryLeeway = 60 * time.Second

// Session is a signed-in Privy session. Expired is derived on load, never
// persisted.
type Session struct {
	Token            string `json:"token"`
	PrivyAccessToken string `json:"privyAccessToken,omitempty"`
	RefreshToken     string `json:"refreshToken,omitempty"`
	UserID           string `json:"userId,omitempty"`
	Expired          bool   `json:"-"`
}

// SessionStore persists the raw session document. The file-backed store is
// used by commands; tests substitute an in-memory one.
type SessionStore interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileSessionStore keeps the session as JSON under the config directory with
// owner-only permissions.
type FileSessionStore struct {
	store *config.Store
}

func NewFileSessionStore(store *config.Store) *FileSessionStore {
	return &FileSessionStore{store: store}
}

func (f *FileSessionStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.store.SessionPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}

func (f *FileSessionStore) Save(data []byte) error {
	return f.store.WriteSecureFile(utils.SessionFile, data)
}

// MemorySessionStore is an in-memory SessionStore for tests.
type MemorySessionStore struct {
	Data []byte
}

func (m *MemorySessionStore) Load() ([]byte, error) {
	return m.Data, nil
}

func (m *MemorySessionStore) Save(data []byte) error {
	m.Data = append([]byte(nil), data...)
	return nil
}

// LoadSession reads and classifies the persisted session. A session is usable
// as-is only when its token decodes and expires more than ExpiryLeeway from
// now. A stale token with a refresh token yields an expired session; anything
// else (missing file, corrupt JSON, malformed token) yields nil. Load
// failures are never surfaced as errors: callers needing auth simply trigger
// a fresh login.
func LoadSession(store SessionStore) *Session {
	data, err := store.Load()
	if err != nil || len(data) == 0 {
		return nil
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil
	}
	if session.Token != "" {
		if exp, ok := tokenExpiry(session.Token); ok && time.Until(exp) > ExpiryLeeway {
			return &session
		}
	}
	if session.RefreshToken != "" {
		session.Expired = true
		return &session
	}
	return nil
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature. Verification belongs to the auth provider; locally the claim is
// only used to decide whether a refresh is due.
func tokenExpiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
