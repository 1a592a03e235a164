package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTxHash = "0xabc123"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewClient(server.URL, logger).WithPollInterval(5 * time.Millisecond)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func decodeRequest(t *testing.T, r *http.Request) relayRequest {
	t.Helper()
	var req relayRequest
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	return req
}

func TestSubmit(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			req := decodeRequest(t, r)
			assert.Equal(t, "submit", req.Action)
			assert.Equal(t, types.RelayIDEthereum, req.Params.ChainID)
			assert.Equal(t, testTxHash, req.Params.TxHash)
			writeJSON(t, w, submitResponse{Success: true})
		})

		err := client.Submit(context.Background(), types.RelayIDEthereum, testTxHash, nil)
		assert.NoError(t, err)
	})

	t.Run("non-200 status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "backend down", http.StatusServiceUnavailable)
		})

		err := client.Submit(context.Background(), types.RelayIDEthereum, testTxHash, nil)
		assert.ErrorIs(t, err, commonerrors.ErrSubmitTxFailed)
	})

	t.Run("success false", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, submitResponse{Success: false, Message: "unknown chain"})
		})

		err := client.Submit(context.Background(), types.RelayIDEthereum, testTxHash, nil)
		require.ErrorIs(t, err, commonerrors.ErrSubmitTxFailed)
		assert.Contains(t, err.Error(), "unknown chain")
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		})

		err := client.Submit(context.Background(), types.RelayIDEthereum, testTxHash, nil)
		assert.ErrorIs(t, err, commonerrors.ErrSubmitTxFailed)
	})

	t.Run("resubmitting one tx hash is idempotent", func(t *testing.T) {
		var requests int64
		seen := make(map[string]struct{})
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			req := decodeRequest(t, r)
			atomic.AddInt64(&requests, 1)
			// The backend keys submissions by tx hash: a duplicate creates no
			// second entry and still answers success.
			seen[req.Params.TxHash] = struct{}{}
			writeJSON(t, w, submitResponse{Success: true})
		})

		require.NoError(t, client.Submit(context.Background(), types.RelayIDEthereum, testTxHash, nil))
		require.NoError(t, client.Submit(context.Background(), types.RelayIDEthereum, testTxHash, nil))

		assert.EqualValues(t, 2, atomic.LoadInt64(&requests))
		assert.Len(t, seen, 1)
	})

	t.Run("data forwarded", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			req := decodeRequest(t, r)
			assert.Equal(t, "fill", req.Params.Data["mode"])
			writeJSON(t, w, submitResponse{Success: true})
		})

		err := client.Submit(context.Background(), types.RelayIDEthereum, testTxHash,
			map[string]interface{}{"mode": "fill"})
		assert.NoError(t, err)
	})
}

func TestGetPacket(t *testing.T) {
	t.Run("unobserved transaction yields nil, nil", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, packetResponse{Success: false, Message: "not found"})
		})

		packet, err := client.GetPacket(context.Background(), types.RelayIDEthereum, testTxHash)
		require.NoError(t, err)
		assert.Nil(t, packet)
	})

	t.Run("observed packet returned", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, packetResponse{Success: true, Packet: &types.PacketData{
				SrcChainID: types.RelayIDEthereum,
				DstChainID: types.HubRelayID,
				SrcTxHash:  testTxHash,
				Status:     types.PacketPending,
			}})
		})

		packet, err := client.GetPacket(context.Background(), types.RelayIDEthereum, testTxHash)
		require.NoError(t, err)
		require.NotNil(t, packet)
		assert.Equal(t, types.PacketPending, packet.Status)
	})
}

func TestWaitUntilExecuted(t *testing.T) {
	t.Run("pending then executed", func(t *testing.T) {
		var polls int64
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			status := types.PacketPending
			if atomic.AddInt64(&polls, 1) >= 3 {
				status = types.PacketExecuted
			}
			writeJSON(t, w, packetResponse{Success: true, Packet: &types.PacketData{
				SrcTxHash: testTxHash,
				Status:    status,
			}})
		})

		packet, err := client.WaitUntilExecuted(context.Background(), types.RelayIDEthereum, testTxHash, time.Second)
		require.NoError(t, err)
		assert.Equal(t, types.PacketExecuted, packet.Status)
		assert.EqualValues(t, 3, atomic.LoadInt64(&polls))
	})

	t.Run("failed packet is a value, not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, packetResponse{Success: true, Packet: &types.PacketData{
				SrcTxHash: testTxHash,
				Status:    types.PacketFailed,
			}})
		})

		packet, err := client.WaitUntilExecuted(context.Background(), types.RelayIDEthereum, testTxHash, time.Second)
		require.NoError(t, err)
		assert.Equal(t, types.PacketFailed, packet.Status)
	})

	t.Run("pending forever times out", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, packetResponse{Success: true, Packet: &types.PacketData{
				SrcTxHash: testTxHash,
				Status:    types.PacketPending,
			}})
		})

		_, err := client.WaitUntilExecuted(context.Background(), types.RelayIDEthereum, testTxHash, 30*time.Millisecond)
		assert.ErrorIs(t, err, commonerrors.ErrRelayTimeout)
	})

	t.Run("timeout fires at the deadline, not before", func(t *testing.T) {
		var polls int64
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&polls, 1)
			writeJSON(t, w, packetResponse{Success: true, Packet: &types.PacketData{
				SrcTxHash: testTxHash,
				Status:    types.PacketPending,
			}})
		}).WithPollInterval(40 * time.Millisecond)

		// The poll interval does not divide the timeout: the wait must still
		// run the full 100ms and poll once more at the deadline rather than
		// giving up 20ms early.
		start := time.Now()
		_, err := client.WaitUntilExecuted(context.Background(), types.RelayIDEthereum, testTxHash, 100*time.Millisecond)
		elapsed := time.Since(start)

		require.ErrorIs(t, err, commonerrors.ErrRelayTimeout)
		assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
		assert.GreaterOrEqual(t, atomic.LoadInt64(&polls), int64(3))
	})

	t.Run("transient server errors do not end the wait", func(t *testing.T) {
		var polls int64
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt64(&polls, 1) < 3 {
				http.Error(w, "flaky", http.StatusInternalServerError)
				return
			}
			writeJSON(t, w, packetResponse{Success: true, Packet: &types.PacketData{
				SrcTxHash: testTxHash,
				Status:    types.PacketExecuted,
			}})
		})

		packet, err := client.WaitUntilExecuted(context.Background(), types.RelayIDEthereum, testTxHash, time.Second)
		require.NoError(t, err)
		assert.Equal(t, types.PacketExecuted, packet.Status)
	})

	t.Run("cancelled context stops the wait", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, packetResponse{Success: true, Packet: &types.PacketData{
				SrcTxHash: testTxHash,
				Status:    types.PacketPending,
			}})
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.WaitUntilExecuted(ctx, types.RelayIDEthereum, testTxHash, time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
