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

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	var waits []time.Duration

	got, err := retryWithBase(context.Background(), 2*time.Millisecond, 3, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}, func(err error, wait time.Duration) {
		waits = append(waits, wait)
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
	// Delays double from the base on each failure.
	require.Len(t, waits, 2)
	assert.Equal(t, 2*time.Millisecond, waits[0])
	assert.Equal(t, 4*time.Millisecond, waits[1])
}

func TestRetryExhaustionReturnsLastError(t *testing.T) {
	calls := 0
	lastErr := errors.New("still down")

	_, err := retryWithBase(context.Background(), time.Millisecond, 3, func() (int, error) {
		calls++
		return 0, lastErr
	}, func(error, time.Duration) {})

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, lastErr)
}

func TestRetryFirstAttemptSuccessSkipsBackoff(t *testing.T) {
	calls := 0
	notified := 0

	got, err := retryWithBase(context.Background(), time.Hour, 3, func() (int, error) {
		calls++
		return 42, nil
	}, func(error, time.Duration) { notified++ })

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
	assert.Zero(t, notified)
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := retryWithBase(ctx, time.Minute, 3, func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("transient")
	}, func(error, time.Duration) {})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
