package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"banking-ledger/config"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.GatewayConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, zerolog.Nop())
}

func TestClient_ConfirmDeposit_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/confirm/deposit", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "4829105736", req["account_number"])
		assert.Equal(t, "500", req["amount"])

		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"success":   true,
			"reference": "GW-REF-001",
			"message":   "approved",
		})
	})

	result, err := client.ConfirmDeposit(context.Background(), "4829105736", decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "GW-REF-001", result.Reference)
}

func TestClient_ConfirmWithdrawal_Declined(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/confirm/withdrawal", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"success": false,
			"message": "withdrawal not permitted",
		})
	})

	result, err := client.ConfirmWithdrawal(context.Background(), "4829105736", decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "withdrawal not permitted", result.Message)
}

func TestClient_ConfirmTransfer_SendsBothAccounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/confirm/transfer", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1111111111", req["from_account_number"])
		assert.Equal(t, "2222222222", req["to_account_number"])

		json.NewEncoder(w).Encode(map[string]any{"success": true, "reference": "GW-REF-002"}) //nolint:errcheck
	})

	result, err := client.ConfirmTransfer(context.Background(), "1111111111", "2222222222", decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestClient_Confirm_Non200IsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	result, err := client.ConfirmDeposit(context.Background(), "4829105736", decimal.NewFromInt(10))
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_Confirm_Unreachable(t *testing.T) {
	client := NewClient(config.GatewayConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 500 * time.Millisecond,
	}, zerolog.Nop())

	result, err := client.ConfirmDeposit(context.Background(), "4829105736", decimal.NewFromInt(10))
	assert.Error(t, err)
	assert.Nil(t, result)
}
