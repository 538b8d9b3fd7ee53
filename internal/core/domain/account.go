package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Persistence-level conflicts surfaced by the account repository so the
// service layer can distinguish which unique constraint fired.
var (
	ErrDuplicateAccountNumber = errors.New("account number already exists")
	ErrDuplicateHolderName    = errors.New("holder name already exists")
)

// Account is a customer ledger account. Balance is never set directly by a
// caller; it is derived by applying signed transaction amounts.
type Account struct {
	ID            uuid.UUID       `json:"id"`
	AccountNumber string          `json:"account_number"`
	HolderName    string          `json:"holder_name"`
	Balance       decimal.Decimal `json:"balance"`
	IsDeleted     bool            `json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// HasFunds reports whether the account can cover a withdrawal of amount.
func (a *Account) HasFunds(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
