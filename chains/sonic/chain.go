// Package sonic provides the hub-native spoke provider. The hub chain is
// EVM-compatible, so transaction mechanics delegate to the evm package; this
// package pins the configuration to the hub relay chain id and exposes the
// read path used for settlement-contract queries and hub wallet derivation.
package sonic

import (
	"context"
	"math/big"

	"github.com/Crosslane/intent-lib/chains/evm"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Provider is the hub chain provider. It carries the full spoke capability
// set plus a contract read path for hub state queries.
type Provider struct {
	types.SpokeProvider

	client *ethclient.Client
	config *types.ChainConfig
	logger *logrus.Logger
}

// NewSonicProvider creates the hub provider from the given configuration.
// The configuration must describe the hub chain and carry a settlement
// contract address.
//
// Parameters:
// - ctx: the context for managing the construction.
// - config: the configuration for the hub chain.
// - logger: the logger for logging purposes.
//
// Returns:
// - types.SpokeProvider: the constructed hub provider.
// - error: an error if the configuration is invalid or the RPC dial fails.
func NewSonicProvider(ctx context.Context, config *types.ChainConfig, logger *logrus.Logger) (types.SpokeProvider, error) {
	if !config.IsHub() {
		return nil, errors.Wrapf(commonerrors.ErrInvalidConfig,
			"chain %s is not the hub (relay chain id %d)", config.Name, config.RelayChainID)
	}

	if config.Contracts.Settlement == "" {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "settlement contract address is required")
	}

	inner, err := evm.NewEvmProvider(ctx, config, logger)
	if err != nil {
		return nil, err
	}

	client, err := ethclient.Dial(config.RpcUrl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to hub RPC")
	}

	return &Provider{
		SpokeProvider: inner,
		client:        client,
		config:        config,
		logger:        logger,
	}, nil
}

// EnsureAllowance surfaces the inner provider's allowance capability, which
// interface embedding would otherwise hide.
func (p *Provider) EnsureAllowance(ctx context.Context, token, spender string, amount *big.Int) error {
	if ensurer, ok := p.SpokeProvider.(types.AllowanceProvider); ok {
		return ensurer.EnsureAllowance(ctx, token, spender, amount)
	}
	return commonerrors.ErrNotImplemented
}

// CallContract executes a read-only contract call against the hub.
func (p *Provider) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return p.client.CallContract(ctx, msg, blockNumber)
}

// SettlementAddress returns the hub settlement contract address.
func (p *Provider) SettlementAddress() string {
	return p.config.Contracts.Settlement
}

// WalletFactoryAddress returns the hub wallet factory contract address.
func (p *Provider) WalletFactoryAddress() string {
	return p.config.Contracts.WalletFactory
}
