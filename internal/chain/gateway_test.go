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

package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transferLog(tokenID int64) *types.Log {
	return &types.Log{
		Address: PodContract,
		Topics: []common.Hash{
			transferTopic,
			common.Hash{}, // from: zero address on mint
			common.BytesToHash(common.HexToAddress("0x01").Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
	}
}

func TestExtractPodID(t *testing.T) {
	receipt := &types.Receipt{Logs: []*types.Log{transferLog(42)}}
	podID := ExtractPodID(receipt)
	require.NotNil(t, podID)
	assert.Equal(t, int64(42), podID.Int64())
}

func TestExtractPodIDSkipsUnrelatedLogs(t *testing.T) {
	erc20Transfer := &types.Log{
		Address: ReppoToken,
		// ERC-20 transfers carry the amount in data, so only 3 topics.
		Topics: []common.Hash{
			transferTopic,
			common.BytesToHash(common.HexToAddress("0x01").Bytes()),
			common.BytesToHash(common.HexToAddress("0x02").Bytes()),
		},
	}
	otherEvent := &types.Log{
		Topics: []common.Hash{common.HexToHash("0xdead"), {}, {}, common.BigToHash(big.NewInt(7))},
	}

	receipt := &types.Receipt{Logs: []*types.Log{erc20Transfer, otherEvent, transferLog(9)}}
	podID := ExtractPodID(receipt)
	require.NotNil(t, podID)
	assert.Equal(t, int64(9), podID.Int64())
}

func TestExtractPodIDNoMatch(t *testing.T) {
	assert.Nil(t, ExtractPodID(&types.Receipt{}))
}

func TestContractABIsParse(t *testing.T) {
	for _, method := range []string{"mintPod", "publishingFee", "burnPod"} {
		_, ok := PodABI.Methods[method]
		assert.True(t, ok, "pod ABI missing %s", method)
	}
	for _, method := range []string{"approve", "balanceOf", "allowance"} {
		_, ok := ERC20ABI.Methods[method]
		assert.True(t, ok, "erc20 ABI missing %s", method)
	}
	_, ok := QuoterABI.Methods["quoteExactOutputSingle"]
	assert.True(t, ok)
	_, ok = RouterABI.Methods["exactOutputSingle"]
	assert.True(t, ok)
}
