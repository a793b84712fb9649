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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		decimals int
		want     string
		wantErr  bool
	}{
		{name: "whole amount", input: "1", decimals: 18, want: "1000000000000000000"},
		{name: "fractional amount", input: "1.5", decimals: 18, want: "1500000000000000000"},
		{name: "six decimals", input: "0.25", decimals: 6, want: "250000"},
		{name: "zero", input: "0", decimals: 18, want: "0"},
		{name: "full precision", input: "0.000000000000000001", decimals: 18, want: "1"},
		{name: "negative", input: "-2", decimals: 6, want: "-2000000"},
		{name: "surrounding whitespace", input: " 3 ", decimals: 6, want: "3000000"},
		{name: "bare fraction", input: ".5", decimals: 6, want: "500000"},
		{name: "beyond float64 precision", input: "123456789012345678901.123456789012345678", decimals: 18, want: "123456789012345678901123456789012345678"},
		{name: "too many decimal places", input: "1.1234567", decimals: 6, wantErr: true},
		{name: "not a number", input: "abc", decimals: 18, wantErr: true},
		{name: "empty", input: "", decimals: 18, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.input, tt.decimals)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	big18 := func(s string) *big.Int {
		v, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)
		return v
	}

	tests := []struct {
		name     string
		input    *big.Int
		decimals int
		want     string
	}{
		{name: "whole amount", input: big18("1000000000000000000"), decimals: 18, want: "1"},
		{name: "fractional amount", input: big18("1500000000000000000"), decimals: 18, want: "1.5"},
		{name: "trailing zeros trimmed", input: big18("1200000"), decimals: 6, want: "1.2"},
		{name: "below one", input: big18("1"), decimals: 18, want: "0.000000000000000001"},
		{name: "zero", input: big.NewInt(0), decimals: 18, want: "0"},
		{name: "nil", input: nil, decimals: 18, want: "0"},
		{name: "negative", input: big18("-2500000"), decimals: 6, want: "-2.5"},
		{name: "beyond float64 precision", input: big18("123456789012345678901123456789012345678"), decimals: 18, want: "123456789012345678901.123456789012345678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUnits(tt.input, tt.decimals))
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"1", "0.5", "1234.000001", "999999999999.123456"} {
		v, err := ParseUnits(s, 6)
		require.NoError(t, err)
		assert.Equal(t, s, FormatUnits(v, 6))
	}
}
