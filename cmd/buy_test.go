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

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuyArgs(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		slippage     string
		wantAmount   string
		wantSlippage float64
		wantErr      string
	}{
		{name: "whole amount default slippage", amount: "100", slippage: "", wantAmount: "100000000000000000000", wantSlippage: 1},
		{name: "fractional amount", amount: "0.5", slippage: "2", wantAmount: "500000000000000000", wantSlippage: 2},
		{name: "zero amount", amount: "0", slippage: "1", wantErr: "Amount must be greater than 0"},
		{name: "negative amount", amount: "-5", slippage: "1", wantErr: "Amount must be greater than 0"},
		{name: "garbage amount", amount: "lots", slippage: "1", wantErr: "Amount must be greater than 0"},
		{name: "slippage not a number", amount: "1", slippage: "abc", wantErr: "Slippage must be a number between 0 and 100"},
		{name: "slippage negative", amount: "1", slippage: "-1", wantErr: "Slippage must be a number between 0 and 100"},
		{name: "slippage above range", amount: "1", slippage: "101", wantErr: "Slippage must be a number between 0 and 100"},
		{name: "slippage boundary low", amount: "1", slippage: "0", wantSlippage: 0, wantAmount: "1000000000000000000"},
		{name: "slippage boundary high", amount: "1", slippage: "100", wantSlippage: 100, wantAmount: "1000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, slippage, err := parseBuyArgs(tt.amount, tt.slippage)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, amount.String())
			assert.Equal(t, tt.wantSlippage, slippage)
		})
	}
}
