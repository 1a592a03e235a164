// Package settlement orchestrates the full intent lifecycle: building,
// submitting on the source chain, relaying to the hub and tracking the
// outcome, plus deposit and withdraw flows over the bridge call builders.
package settlement

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"github.com/Crosslane/intent-lib/assetregistry"
	"github.com/Crosslane/intent-lib/bridge"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/Crosslane/intent-lib/hubwallet"
	"github.com/Crosslane/intent-lib/metrics"
	"github.com/Crosslane/intent-lib/relay"
	"github.com/Crosslane/intent-lib/solver"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// defaultRelayTimeout bounds how long a single settlement waits for the
// relay to execute a packet before giving up with an unknown outcome.
const defaultRelayTimeout = 10 * time.Minute

// EventSink receives settlement lifecycle events. Implementations must not
// block: events are emitted synchronously on the settling goroutine.
type EventSink func(event types.SettlementEvent)

// Config carries the collaborators the settlement service is built from.
//
// Fields:
// - HubConfig: the hub chain configuration; Settlement and WalletFactory contracts are required.
// - HubCaller: the read-only contract caller for the hub chain.
// - Registry: the asset registry for spoke-to-hub token resolution.
// - Bridge: the wrap/unwrap call builder.
// - Relay: the relay network client.
// - Solver: the solver backend client; nil disables solver notifications.
// - FeeConfig: the partner fee configuration; nil means no fee.
// - RelayTimeout: the wall-clock budget for one relay wait; 0 means the default.
// - Events: the lifecycle event sink; nil discards events.
type Config struct {
	HubConfig    *types.ChainConfig
	HubCaller    hubwallet.ContractCaller
	Registry     *assetregistry.Registry
	Bridge       *bridge.Service
	Relay        *relay.Client
	Solver       *solver.Client
	FeeConfig    types.PartnerFee
	RelayTimeout time.Duration
	Events       EventSink
}

// Service runs intent settlements. Independent intents may settle
// concurrently; state transitions within one intent are strictly
// sequential.
type Service struct {
	hubConfig    *types.ChainConfig
	hubCaller    hubwallet.ContractCaller
	registry     *assetregistry.Registry
	bridge       *bridge.Service
	relay        *relay.Client
	solver       *solver.Client
	feeConfig    types.PartnerFee
	wallets      *hubwallet.Cache
	relayTimeout time.Duration
	events       EventSink
	logger       *logrus.Logger
}

// NewService creates a settlement service from the given configuration.
//
// Returns:
// - *Service: the constructed service.
// - error: an error if a required collaborator is missing.
func NewService(cfg Config, logger *logrus.Logger) (*Service, error) {
	if cfg.HubConfig == nil || !cfg.HubConfig.IsHub() {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "hub chain configuration required")
	}
	if cfg.HubConfig.Contracts.Settlement == "" || cfg.HubConfig.Contracts.WalletFactory == "" {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "hub settlement and wallet factory contracts required")
	}
	if cfg.HubCaller == nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "hub contract caller required")
	}
	if cfg.Registry == nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "asset registry required")
	}
	if cfg.Relay == nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "relay client required")
	}

	relayTimeout := cfg.RelayTimeout
	if relayTimeout == 0 {
		relayTimeout = defaultRelayTimeout
	}

	factory := common.HexToAddress(cfg.HubConfig.Contracts.WalletFactory)

	return &Service{
		hubConfig:    cfg.HubConfig,
		hubCaller:    cfg.HubCaller,
		registry:     cfg.Registry,
		bridge:       cfg.Bridge,
		relay:        cfg.Relay,
		solver:       cfg.Solver,
		feeConfig:    cfg.FeeConfig,
		wallets:      hubwallet.NewCache(factory, cfg.HubCaller),
		relayTimeout: relayTimeout,
		events:       cfg.Events,
		logger:       logger,
	}, nil
}

// IntentRecord tracks one intent through its lifecycle. Records are owned by
// a single settlement call and carry no shared mutable state.
type IntentRecord struct {
	Intent    *types.Intent
	State     types.IntentState
	FeeAmount *big.Int
	TxHash    string
	Packet    *types.PacketData
	Result    *types.TxResult
}

// transition moves the record to the next state, emitting a lifecycle event.
// Invalid transitions indicate a service bug and surface as InvalidState.
func (s *Service) transition(rec *IntentRecord, to types.IntentState, err error) error {
	if !types.CanTransition(rec.State, to) {
		return errors.Wrapf(commonerrors.ErrInvalidState, "cannot move %s from %s to %s",
			rec.Intent.IntentID, rec.State, to)
	}

	from := rec.State
	rec.State = to

	s.logger.WithFields(logrus.Fields{
		"intentID": rec.Intent.IntentID.String(),
		"from":     from,
		"to":       to,
	}).Debug("Intent state transition")

	if s.events != nil {
		s.events(types.SettlementEvent{
			IntentID: rec.Intent.IntentID.String(),
			From:     from,
			To:       to,
			TxHash:   rec.TxHash,
			Err:      err,
		})
	}

	// EXECUTED is an outcome even though a later cancellation may follow.
	if to == types.StateExecuted || to.Terminal() {
		metrics.SettlementOutcomes.WithLabelValues(
			strconv.FormatUint(rec.Intent.SrcChain, 10),
			string(to),
		).Inc()
	}

	return nil
}

// hubWallet derives the hub wallet address custodying the spoke user's value.
func (s *Service) hubWallet(ctx context.Context, relayChainID uint64, spokeAddress []byte) (string, error) {
	addr, err := s.wallets.Get(ctx, relayChainID, spokeAddress)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive hub wallet")
	}
	return addr.Hex(), nil
}

// checkProvider verifies the given provider actually serves the intent's
// source chain.
func checkProvider(provider types.SpokeProvider, srcChain uint64) error {
	if provider == nil {
		return errors.Wrap(commonerrors.ErrInvalidSpokeProvider, "provider is nil")
	}
	if provider.Config().RelayChainID != srcChain {
		return errors.Wrapf(commonerrors.ErrInvalidSpokeProvider,
			"provider serves relay chain %d, intent source is %d",
			provider.Config().RelayChainID, srcChain)
	}
	return nil
}

// submitTarget selects the contract the packed intent call is sent to: the
// settlement contract when submitting on the hub itself, otherwise the
// spoke's relay connection contract.
func submitTarget(config *types.ChainConfig) (string, error) {
	if config.IsHub() {
		return config.Contracts.Settlement, nil
	}
	if config.Contracts.Connection == "" {
		return "", errors.Wrapf(commonerrors.ErrInvalidConfig,
			"chain %s has no connection contract", config.Name)
	}
	return config.Contracts.Connection, nil
}
