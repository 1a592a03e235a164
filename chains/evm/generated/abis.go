// Package generated holds the contract ABI definitions the library packs
// calls against.
package generated

// ERC20ABI covers the token functions used for bridging and balance reads.
const ERC20ABI = `[
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`

// VaultABI covers the yield-bearing vault a hub asset is wrapped into.
const VaultABI = `[
	{"inputs":[{"name":"assets","type":"uint256"},{"name":"receiver","type":"address"}],"name":"deposit","outputs":[{"name":"shares","type":"uint256"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"assets","type":"uint256"},{"name":"receiver","type":"address"},{"name":"owner","type":"address"}],"name":"withdraw","outputs":[{"name":"shares","type":"uint256"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"shares","type":"uint256"},{"name":"receiver","type":"address"},{"name":"owner","type":"address"}],"name":"redeem","outputs":[{"name":"assets","type":"uint256"}],"stateMutability":"nonpayable","type":"function"}
]`

// AssetManagerABI covers the cross-chain transfer entrypoint used on the
// unwrap path when the final recipient lives on another chain.
const AssetManagerABI = `[
	{"inputs":[{"name":"token","type":"address"},{"name":"to","type":"bytes"},{"name":"amount","type":"uint256"},{"name":"dstChainId","type":"uint256"}],"name":"transfer","outputs":[],"stateMutability":"payable","type":"function"}
]`

// WalletFactoryABI covers the deterministic hub wallet factory read.
const WalletFactoryABI = `[
	{"inputs":[{"name":"salt","type":"bytes32"}],"name":"getDeployedAddress","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

// SettlementABI covers the hub settlement contract. The intent tuple field
// order and types are fixed and must match the contract exactly.
const SettlementABI = `[
	{"inputs":[{"components":[
		{"name":"intentId","type":"uint256"},
		{"name":"creator","type":"address"},
		{"name":"inputToken","type":"address"},
		{"name":"outputToken","type":"address"},
		{"name":"inputAmount","type":"uint256"},
		{"name":"minOutputAmount","type":"uint256"},
		{"name":"deadline","type":"uint256"},
		{"name":"allowPartialFill","type":"bool"},
		{"name":"srcChain","type":"uint256"},
		{"name":"dstChain","type":"uint256"},
		{"name":"srcAddress","type":"bytes"},
		{"name":"dstAddress","type":"bytes"},
		{"name":"solver","type":"address"},
		{"name":"data","type":"bytes"}],
		"name":"intent","type":"tuple"}],
		"name":"createIntent","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"components":[
		{"name":"intentId","type":"uint256"},
		{"name":"creator","type":"address"},
		{"name":"inputToken","type":"address"},
		{"name":"outputToken","type":"address"},
		{"name":"inputAmount","type":"uint256"},
		{"name":"minOutputAmount","type":"uint256"},
		{"name":"deadline","type":"uint256"},
		{"name":"allowPartialFill","type":"bool"},
		{"name":"srcChain","type":"uint256"},
		{"name":"dstChain","type":"uint256"},
		{"name":"srcAddress","type":"bytes"},
		{"name":"dstAddress","type":"bytes"},
		{"name":"solver","type":"address"},
		{"name":"data","type":"bytes"}],
		"name":"intent","type":"tuple"}],
		"name":"cancelIntent","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"components":[
		{"name":"intentId","type":"uint256"},
		{"name":"creator","type":"address"},
		{"name":"inputToken","type":"address"},
		{"name":"outputToken","type":"address"},
		{"name":"inputAmount","type":"uint256"},
		{"name":"minOutputAmount","type":"uint256"},
		{"name":"deadline","type":"uint256"},
		{"name":"allowPartialFill","type":"bool"},
		{"name":"srcChain","type":"uint256"},
		{"name":"dstChain","type":"uint256"},
		{"name":"srcAddress","type":"bytes"},
		{"name":"dstAddress","type":"bytes"},
		{"name":"solver","type":"address"},
		{"name":"data","type":"bytes"}],
		"name":"intent","type":"tuple"},
		{"name":"inputAmount","type":"uint256"},
		{"name":"outputAmount","type":"uint256"},
		{"name":"externalFillId","type":"bytes32"}],
		"name":"fillIntent","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"intentHash","type":"bytes32"}],
		"name":"getIntent","outputs":[
		{"name":"exists","type":"bool"},
		{"name":"cancelled","type":"bool"},
		{"name":"remainingInput","type":"uint256"},
		{"name":"receivedOutput","type":"uint256"},
		{"name":"creator","type":"address"}],
		"stateMutability":"view","type":"function"}
]`

// Multicall3ABI covers call batching on chains that deploy the aggregator.
const Multicall3ABI = `[
	{"inputs":[{"components":[
		{"name":"target","type":"address"},
		{"name":"allowFailure","type":"bool"},
		{"name":"value","type":"uint256"},
		{"name":"callData","type":"bytes"}],
		"name":"calls","type":"tuple[]"}],
		"name":"aggregate3Value","outputs":[{"components":[
		{"name":"success","type":"bool"},
		{"name":"returnData","type":"bytes"}],
		"name":"returnData","type":"tuple[]"}],
		"stateMutability":"payable","type":"function"}
]`
