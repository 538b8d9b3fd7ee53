package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"banking-ledger/config"
	"banking-ledger/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Client implements ports.PaymentGateway against the confirmation provider's
// HTTP API. Amounts travel as strings to keep exact decimal values on the wire.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a gateway client from config.
func NewClient(cfg config.GatewayConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log.With().Str("component", "payment_gateway").Logger(),
	}
}

type confirmRequest struct {
	AccountNumber     string `json:"account_number,omitempty"`
	FromAccountNumber string `json:"from_account_number,omitempty"`
	ToAccountNumber   string `json:"to_account_number,omitempty"`
	Amount            string `json:"amount"`
}

// ConfirmDeposit asks the provider to confirm a deposit.
func (c *Client) ConfirmDeposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*ports.PaymentResult, error) {
	return c.confirm(ctx, "/confirm/deposit", confirmRequest{
		AccountNumber: accountNumber,
		Amount:        amount.String(),
	})
}

// ConfirmWithdrawal asks the provider to confirm a withdrawal.
func (c *Client) ConfirmWithdrawal(ctx context.Context, accountNumber string, amount decimal.Decimal) (*ports.PaymentResult, error) {
	return c.confirm(ctx, "/confirm/withdrawal", confirmRequest{
		AccountNumber: accountNumber,
		Amount:        amount.String(),
	})
}

// ConfirmTransfer asks the provider to confirm an inter-account transfer.
func (c *Client) ConfirmTransfer(ctx context.Context, fromAccountNumber, toAccountNumber string, amount decimal.Decimal) (*ports.PaymentResult, error) {
	return c.confirm(ctx, "/confirm/transfer", confirmRequest{
		FromAccountNumber: fromAccountNumber,
		ToAccountNumber:   toAccountNumber,
		Amount:            amount.String(),
	})
}

func (c *Client) confirm(ctx context.Context, path string, payload confirmRequest) (*ports.PaymentResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal confirmation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build confirmation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, string(raw))
	}

	var result ports.PaymentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode confirmation response: %w", err)
	}

	c.log.Debug().
		Str("path", path).
		Bool("success", result.Success).
		Str("reference", result.Reference).
		Msg("payment confirmation completed")

	return &result, nil
}
