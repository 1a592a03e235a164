// Package solver implements the HTTP client for the solver backend: quoting
// swaps, notifying post-execution and polling fill status.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// requestTimeout bounds one HTTP round trip to the solver backend.
const requestTimeout = 15 * time.Second

// Client talks to the solver backend over HTTP/JSON.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *logrus.Logger
}

// NewClient creates a solver client for the given backend endpoint.
func NewClient(endpoint string, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		endpoint:   endpoint,
		logger:     logger,
	}
}

// QuoteRequest is the body of a quote request.
type QuoteRequest struct {
	TokenSrc             string `json:"token_src"`
	TokenSrcBlockchainID uint64 `json:"token_src_blockchain_id"`
	TokenDst             string `json:"token_dst"`
	TokenDstBlockchainID uint64 `json:"token_dst_blockchain_id"`
	Amount               string `json:"amount"`
	QuoteType            string `json:"quote_type"`
}

type quoteResponse struct {
	QuotedAmount string       `json:"quoted_amount"`
	Detail       *errorDetail `json:"detail"`
}

type errorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type executeRequest struct {
	IntentTxHash string `json:"intent_tx_hash"`
}

type executeResponse struct {
	Answer     string `json:"answer"`
	IntentHash string `json:"intent_hash"`
}

type statusResponse struct {
	Status     int    `json:"status"`
	IntentHash string `json:"intent_hash"`
}

// Quote asks the solver for the expected output amount of a swap.
//
// Returns:
// - *big.Int: the quoted amount in hub base units.
// - error: the solver's error detail or a transport error.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) (*big.Int, error) {
	body, err := c.post(ctx, "/quote", req)
	if err != nil {
		return nil, err
	}

	var resp quoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrapf(err, "malformed quote body %q", string(body))
	}
	if resp.Detail != nil {
		return nil, errors.Errorf("solver quote error %d: %s", resp.Detail.Code, resp.Detail.Message)
	}

	quoted, ok := new(big.Int).SetString(resp.QuotedAmount, 10)
	if !ok {
		return nil, errors.Errorf("solver returned non-numeric quote %q", resp.QuotedAmount)
	}
	return quoted, nil
}

// Execute notifies the solver that the intent creation transaction has been
// relayed and is ready to fill.
//
// Returns:
// - string: the solver's intent hash acknowledgement.
// - error: an error if the solver did not answer OK.
func (c *Client) Execute(ctx context.Context, intentTxHash string) (string, error) {
	body, err := c.post(ctx, "/execute", executeRequest{IntentTxHash: intentTxHash})
	if err != nil {
		return "", err
	}

	var resp executeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errors.Wrapf(err, "malformed execute body %q", string(body))
	}
	if resp.Answer != "OK" {
		return "", errors.Errorf("solver execute answered %q", resp.Answer)
	}

	c.logger.WithField("intentHash", resp.IntentHash).Debug("Solver accepted execute")
	return resp.IntentHash, nil
}

// Status polls the solver's fill status for the intent transaction.
//
// Returns:
// - int: the solver status code.
// - error: a transport or decode error.
func (c *Client) Status(ctx context.Context, intentTxHash string) (int, error) {
	body, err := c.post(ctx, "/status", executeRequest{IntentTxHash: intentTxHash})
	if err != nil {
		return 0, err
	}

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, errors.Wrapf(err, "malformed status body %q", string(body))
	}
	return resp.Status, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody interface{}) ([]byte, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal solver request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build solver request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "solver request failed")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WithError(closeErr).Warn("Failed to close solver response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read solver response body")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnprocessableEntity {
		return nil, errors.Errorf("solver status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
