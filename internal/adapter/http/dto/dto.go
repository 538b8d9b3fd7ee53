package dto

import (
	"time"

	"banking-ledger/internal/core/domain"
	"banking-ledger/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Monetary amounts travel as strings so values like "0.10" survive the wire
// without binary floating point damage.

// CreateAccountRequest is the request body for account creation.
type CreateAccountRequest struct {
	HolderName     string `json:"holder_name" binding:"required,max=150"`
	InitialDeposit string `json:"initial_deposit" binding:"omitempty,money"`
}

// DepositRequest is the request body for a deposit.
type DepositRequest struct {
	AccountNumber string `json:"account_number" binding:"required,account_number"`
	Amount        string `json:"amount" binding:"required,money"`
	Description   string `json:"description" binding:"omitempty,max=255"`
}

// WithdrawRequest is the request body for a withdrawal.
type WithdrawRequest struct {
	AccountNumber string `json:"account_number" binding:"required,account_number"`
	Amount        string `json:"amount" binding:"required,money"`
	Description   string `json:"description" binding:"omitempty,max=255"`
}

// TransferRequest is the request body for an inter-account transfer.
type TransferRequest struct {
	FromAccountNumber string `json:"from_account_number" binding:"required,account_number"`
	ToAccountNumber   string `json:"to_account_number" binding:"required,account_number"`
	Amount            string `json:"amount" binding:"required,money"`
	Description       string `json:"description" binding:"omitempty,max=255"`
}

// AccountResponse is the response body for account reads.
type AccountResponse struct {
	ID            string `json:"id"`
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
	Balance       string `json:"balance"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// TransactionResponse is the response body for a single ledger entry.
type TransactionResponse struct {
	ID           string `json:"id"`
	AccountID    string `json:"account_id"`
	Amount       string `json:"amount"`
	Type         string `json:"type"`
	Description  string `json:"description,omitempty"`
	BalanceAfter string `json:"balance_after"`
	CreatedAt    string `json:"created_at"`
}

// TransferResponse pairs the debit and credit entries of a transfer.
type TransferResponse struct {
	Debit  TransactionResponse `json:"debit"`
	Credit TransactionResponse `json:"credit"`
}

// AccountSnapshotResponse tags an account read with its source.
type AccountSnapshotResponse struct {
	Account AccountResponse `json:"account"`
	Source  string          `json:"source"`
}

// HistoryResponse tags a transaction list with its source.
type HistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Source       string                `json:"source"`
}

// FromAccount converts a domain account to its response shape.
func FromAccount(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID.String(),
		AccountNumber: a.AccountNumber,
		HolderName:    a.HolderName,
		Balance:       a.Balance.String(),
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromTransaction converts a domain transaction to its response shape.
func FromTransaction(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID.String(),
		AccountID:    t.AccountID.String(),
		Amount:       t.Amount.String(),
		Type:         string(t.Type),
		Description:  t.Description,
		BalanceAfter: t.BalanceAfter.String(),
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}

// FromTransactions converts a slice preserving order.
func FromTransactions(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, FromTransaction(&txns[i]))
	}
	return out
}

// FromHistory converts a tagged service result.
func FromHistory(r *ports.HistoryResult) HistoryResponse {
	return HistoryResponse{
		Transactions: FromTransactions(r.Transactions),
		Source:       string(r.Source),
	}
}

// Amount parses a validated money string. The empty string is zero so
// optional amounts (initial_deposit) fall back cleanly.
func Amount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
