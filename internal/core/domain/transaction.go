package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of money movement.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
)

// IsDebit returns true for types that move money out of the account.
func (t TransactionType) IsDebit() bool {
	return t == TransactionTypeWithdrawal || t == TransactionTypeTransferOut
}

// Transaction is an immutable ledger entry. Amount is signed: debits are
// negative, credits positive, so replaying entries in timestamp order and
// summing amounts reproduces every BalanceAfter snapshot.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    uuid.UUID       `json:"account_id"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type"`
	Description  string          `json:"description,omitempty"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	IsDeleted    bool            `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SignedAmount applies the type's direction to a positive magnitude.
func SignedAmount(t TransactionType, magnitude decimal.Decimal) decimal.Decimal {
	if t.IsDebit() {
		return magnitude.Neg()
	}
	return magnitude
}
