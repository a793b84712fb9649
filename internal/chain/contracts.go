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
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Deployed contracts on Base.
var (
	PodContract   = common.HexToAddress("0xcfF0511089D0Fbe92E1788E4aFFF3E7930b3D47c")
	ReppoToken    = common.HexToAddress("0xFf8104251E7761163faC3211eF5583FB3F8583d6")
	USDCToken     = common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913")
	UniswapRouter = common.HexToAddress("0x2626664c2603336E57B271c5C0b26F421741e481")
	UniswapQuoter = common.HexToAddress("0x3d4e44Eb1374240CE5F1B871ab261CD16335B76a")
)

const (
	// ChainID is Base.
	ChainID = 8453
	// EmissionShare is the emission share percentage minted into every pod.
	EmissionShare = 50
	// PoolFee is the USDC/REPPO Uniswap V3 fee tier (0.3% in hundredths of
	// a bip).
	PoolFee = 3000
)

const podABIJSON = `[
  {"type":"function","name":"mintPod","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"emissionSharePercent","type":"uint8"}],"outputs":[{"name":"podId","type":"uint256"}]},
  {"type":"function","name":"publishingFee","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"burnPod","stateMutability":"nonpayable","inputs":[{"name":"podId","type":"uint256"}],"outputs":[]},
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true}]}
]`

const erc20ABIJSON = `[
  {"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const quoterABIJSON = `[
  {"type":"function","name":"quoteExactOutputSingle","stateMutability":"nonpayable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"tokenIn","type":"address"},
     {"name":"tokenOut","type":"address"},
     {"name":"amount","type":"uint256"},
     {"name":"fee","type":"uint24"},
     {"name":"sqrtPriceLimitX96","type":"uint160"}]}],
   "outputs":[
     {"name":"amountIn","type":"uint256"},
     {"name":"sqrtPriceX96After","type":"uint160"},
     {"name":"initializedTicksCrossed","type":"uint32"},
     {"name":"gasEstimate","type":"uint256"}]}
]`

const routerABIJSON = `[
  {"type":"function","name":"exactOutputSingle","stateMutability":"payable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"tokenIn","type":"address"},
     {"name":"tokenOut","type":"address"},
     {"name":"fee","type":"uint24"},
     {"name":"recipient","type":"address"},
     {"name":"amountOut","type":"uint256"},
     {"name":"amountInMaximum","type":"uint256"},
     {"name":"sqrtPriceLimitX96","type":"uint160"}]}],
   "outputs":[{"name":"amountIn","type":"uint256"}]}
]`

var (
	PodABI    = mustABI(podABIJSON)
	ERC20ABI  = mustABI(erc20ABIJSON)
	QuoterABI = mustABI(quoterABIJSON)
	RouterABI = mustABI(routerABIJSON)
)

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
