package ports

import (
	"context"
	"time"

	"banking-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentResult is the payment provider's answer to a confirmation call.
type PaymentResult struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// PaymentGateway is the external confirmation step. Every ledger mutation
// requires a successful confirmation before any store access. The returned
// reference is logged for reconciliation.
type PaymentGateway interface {
	ConfirmDeposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*PaymentResult, error)
	ConfirmWithdrawal(ctx context.Context, accountNumber string, amount decimal.Decimal) (*PaymentResult, error)
	ConfirmTransfer(ctx context.Context, fromAccountNumber, toAccountNumber string, amount decimal.Decimal) (*PaymentResult, error)
}

// SnapshotCache is the read-through cache for account snapshots and
// transaction history. Get returns nil, nil on a miss.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// --- Service Ports (Business Logic) ---

// LedgerService defines the balance-mutating ledger operations.
type LedgerService interface {
	CreateAccount(ctx context.Context, req CreateAccountRequest) (*domain.Account, error)
	Deposit(ctx context.Context, req DepositRequest) (*domain.Transaction, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (*domain.Transaction, error)
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
}

// CreateAccountRequest holds validated input for account creation.
type CreateAccountRequest struct {
	HolderName     string
	InitialDeposit decimal.Decimal
}

// DepositRequest holds validated input for a deposit.
type DepositRequest struct {
	AccountNumber string
	Amount        decimal.Decimal
	Description   string
}

// WithdrawRequest holds validated input for a withdrawal.
type WithdrawRequest struct {
	AccountNumber string
	Amount        decimal.Decimal
	Description   string
}

// TransferRequest holds validated input for an inter-account transfer.
type TransferRequest struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
	Description       string
}

// TransferResult pairs the two ledger entries a transfer appends.
type TransferResult struct {
	Debit  *domain.Transaction
	Credit *domain.Transaction
}

// ResultSource tags where a read-path result came from.
type ResultSource string

const (
	SourceCache    ResultSource = "cache"
	SourceDatabase ResultSource = "database"
)

// StatementService defines the cached read paths.
type StatementService interface {
	GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountSnapshot, error)
	GetTransactionHistory(ctx context.Context, accountID uuid.UUID) (*HistoryResult, error)
	GetMonthlyStatement(ctx context.Context, accountID uuid.UUID, year int, month time.Month) (*HistoryResult, error)
}

// AccountSnapshot is an account read tagged with its source.
type AccountSnapshot struct {
	Account *domain.Account `json:"account"`
	Source  ResultSource    `json:"source"`
}

// HistoryResult is a transaction list tagged with its source.
type HistoryResult struct {
	Transactions []domain.Transaction `json:"transactions"`
	Source       ResultSource         `json:"source"`
}
