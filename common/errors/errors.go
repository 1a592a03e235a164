package errors

import "github.com/pkg/errors"

var (
	// ErrInvalidAmount indicates a local validation failure on an amount;
	// never sent over the network.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidParams indicates malformed intent parameters.
	ErrInvalidParams = errors.New("invalid params")
	// ErrInvalidFee indicates a partner fee configuration above the basis
	// point cap. Rejected, never clamped.
	ErrInvalidFee = errors.New("invalid partner fee")
	// ErrHubAssetNotFound indicates a configuration gap in the asset
	// registry; not retryable.
	ErrHubAssetNotFound = errors.New("hub asset not found")
	// ErrAllowanceCheckFailed indicates a spoke-chain read failure during
	// pre-bridging allowance checks; the single step may be retried.
	ErrAllowanceCheckFailed = errors.New("allowance check failed")
	// ErrApprovalFailed indicates a spoke-chain approval write failure;
	// the single step may be retried.
	ErrApprovalFailed = errors.New("approval failed")
	// ErrSubmitTxFailed indicates the relay backend rejected or was
	// unreachable for the submit call; retryable with the same tx hash.
	ErrSubmitTxFailed = errors.New("relay submit failed")
	// ErrRelayTimeout indicates the wait deadline elapsed with no terminal
	// packet. The outcome is unknown; reconcile out-of-band before resubmitting.
	ErrRelayTimeout = errors.New("relay wait timed out")
	// ErrInvalidSpokeProvider indicates the supplied provider's chain family
	// cannot address the intent's chains; programmer error, not retryable.
	ErrInvalidSpokeProvider = errors.New("invalid spoke provider")
	// ErrIntentNotFound indicates the intent does not exist (or is no longer
	// open) on the hub settlement contract.
	ErrIntentNotFound = errors.New("intent not found on hub")
	// ErrInvalidState indicates an illegal settlement state transition.
	ErrInvalidState = errors.New("invalid settlement state transition")

	// ErrInvalidAddress indicates an address that cannot be encoded or
	// decoded for its chain family.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrChainNotFound indicates the relay chain id is not registered.
	ErrChainNotFound = errors.New("chain not found")
	// ErrChainExists indicates a chain is already present in the registry.
	ErrChainExists = errors.New("chain already exists in registry")
	// ErrInvalidConfig indicates an invalid chain configuration.
	ErrInvalidConfig = errors.New("invalid chain configuration")
	// ErrInvalidChainFamily indicates an unsupported chain family.
	ErrInvalidChainFamily = errors.New("invalid chain family")
	// ErrFactoryNotProvided indicates a registry built without a factory.
	ErrFactoryNotProvided = errors.New("chain factory not provided")
	// ErrNotImplemented indicates a capability the provider does not carry.
	ErrNotImplemented = errors.New("functionality not implemented")
	// ErrDatabaseConnect indicates a failure connecting to the config database.
	ErrDatabaseConnect = errors.New("failed to connect to database")
)
