// Package relay implements the HTTP client for the off-chain relay network:
// submitting observed spoke transactions and waiting for the cross-chain
// delivery packet to reach a terminal status.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/Crosslane/intent-lib/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// defaultPollInterval is the fixed interval between packet status polls.
	defaultPollInterval = 3 * time.Second
	// requestTimeout bounds one HTTP round trip to the relay backend.
	requestTimeout = 15 * time.Second
)

// Client talks to the relay backend over HTTP/JSON.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	pollInterval time.Duration
	logger       *logrus.Logger
}

// NewClient creates a relay client for the given backend endpoint.
//
// Parameters:
// - endpoint: the relay backend URL.
// - logger: the logger for logging events.
//
// Returns:
// - *Client: the relay client.
func NewClient(endpoint string, logger *logrus.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: requestTimeout},
		endpoint:     endpoint,
		pollInterval: defaultPollInterval,
		logger:       logger,
	}
}

// WithPollInterval overrides the packet status poll interval. Intended for
// tests; the production interval stays sub-5-second.
func (c *Client) WithPollInterval(interval time.Duration) *Client {
	c.pollInterval = interval
	return c
}

// relayRequest is the request envelope of the relay backend API.
type relayRequest struct {
	Action string      `json:"action"`
	Params relayParams `json:"params"`
}

type relayParams struct {
	ChainID uint64                 `json:"chain_id"`
	TxHash  string                 `json:"tx_hash"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// submitResponse is the relay backend's answer to a submit action.
type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// packetResponse is the relay backend's answer to a get_packet action.
type packetResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Packet  *types.PacketData `json:"packet"`
}

// Submit registers a spoke transaction hash with the relay backend. It
// performs exactly one HTTP request and does not retry: retry policy belongs
// to the caller, and the backend treats duplicate submissions of the same tx
// hash as a no-op, so retrying with the same hash is idempotent.
//
// Parameters:
// - ctx: the context for managing the request.
// - relayChainID: the relay chain id the transaction was sent on.
// - txHash: the spoke transaction hash.
// - data: optional opaque instructions forwarded to the relay network.
//
// Returns:
// - error: ErrSubmitTxFailed carrying the raw response on a non-success
//   status or malformed body.
func (c *Client) Submit(ctx context.Context, relayChainID uint64, txHash string, data map[string]interface{}) error {
	body, status, err := c.post(ctx, relayRequest{
		Action: "submit",
		Params: relayParams{ChainID: relayChainID, TxHash: txHash, Data: data},
	})
	if err != nil {
		metrics.RelaySubmits.WithLabelValues(chainLabel(relayChainID), "error").Inc()
		return errors.Wrap(commonerrors.ErrSubmitTxFailed, err.Error())
	}
	if status != http.StatusOK {
		metrics.RelaySubmits.WithLabelValues(chainLabel(relayChainID), "rejected").Inc()
		return errors.Wrapf(commonerrors.ErrSubmitTxFailed, "status %d: %s", status, string(body))
	}

	var resp submitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.RelaySubmits.WithLabelValues(chainLabel(relayChainID), "malformed").Inc()
		return errors.Wrapf(commonerrors.ErrSubmitTxFailed, "malformed body %q: %v", string(body), err)
	}
	if !resp.Success {
		metrics.RelaySubmits.WithLabelValues(chainLabel(relayChainID), "rejected").Inc()
		return errors.Wrapf(commonerrors.ErrSubmitTxFailed, "relay rejected submit: %s", resp.Message)
	}

	metrics.RelaySubmits.WithLabelValues(chainLabel(relayChainID), "ok").Inc()
	c.logger.WithFields(logrus.Fields{
		"chainId": relayChainID,
		"txHash":  txHash,
	}).Debug("Relay submit accepted")

	return nil
}

// GetPacket fetches the delivery packet for a spoke transaction.
//
// Returns:
// - *types.PacketData: the packet, nil if the relay has not created one yet.
// - error: a transport or decode error.
func (c *Client) GetPacket(ctx context.Context, relayChainID uint64, txHash string) (*types.PacketData, error) {
	body, status, err := c.post(ctx, relayRequest{
		Action: "get_packet",
		Params: relayParams{ChainID: relayChainID, TxHash: txHash},
	})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.Errorf("get_packet status %d: %s", status, string(body))
	}

	var resp packetResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrapf(err, "malformed get_packet body %q", string(body))
	}
	if !resp.Success || resp.Packet == nil {
		// The relay has not observed the transaction yet.
		return nil, nil
	}
	return resp.Packet, nil
}

// WaitUntilExecuted polls the relay backend until the packet for the given
// transaction reaches a terminal status or the timeout elapses.
//
// A failed terminal packet is an expected outcome the caller must branch on:
// it is returned as a value with a nil error. Exceeding the deadline returns
// ErrRelayTimeout, which means "unknown outcome" and is distinct from a
// failed status ("relay confirms it did not execute"). Transient network
// errors and 5xx responses do not terminate the wait early.
//
// Parameters:
// - ctx: the context for managing the wait.
// - relayChainID: the relay chain id the transaction was sent on.
// - txHash: the spoke transaction hash.
// - timeout: the hard wall-clock deadline for the wait.
//
// Returns:
// - *types.PacketData: the terminal packet (executed or failed).
// - error: ErrRelayTimeout past the deadline, or the context error.
func (c *Client) WaitUntilExecuted(ctx context.Context, relayChainID uint64, txHash string, timeout time.Duration) (*types.PacketData, error) {
	start := time.Now()
	deadline := start.Add(timeout)
	label := chainLabel(relayChainID)

	defer func() {
		metrics.RelayWaitDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	for {
		packet, err := c.GetPacket(ctx, relayChainID, txHash)
		switch {
		case err != nil:
			// Transient: keep polling until the deadline.
			metrics.RelayPolls.WithLabelValues(label, "error").Inc()
			c.logger.WithFields(logrus.Fields{
				"chainId": relayChainID,
				"txHash":  txHash,
			}).WithError(err).Warn("Relay poll failed, will retry")
		case packet == nil:
			metrics.RelayPolls.WithLabelValues(label, "missing").Inc()
		default:
			metrics.RelayPolls.WithLabelValues(label, string(packet.Status)).Inc()
			if packet.Status.Terminal() {
				return packet, nil
			}
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, errors.Wrapf(commonerrors.ErrRelayTimeout,
				"no terminal packet for tx %s after %s", txHash, timeout)
		}

		// Shorten the last sleep so the final poll lands on the deadline
		// instead of giving up one interval early.
		wait := c.pollInterval
		if remaining < wait {
			wait = remaining
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// post sends one request envelope and returns the raw body and status code.
func (c *Client) post(ctx context.Context, reqBody relayRequest) ([]byte, int, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to marshal relay request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to build relay request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, "relay request failed")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WithError(closeErr).Warn("Failed to close relay response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrap(err, "failed to read relay response body")
	}
	return body, resp.StatusCode, nil
}

func chainLabel(relayChainID uint64) string {
	return strconv.FormatUint(relayChainID, 10)
}
