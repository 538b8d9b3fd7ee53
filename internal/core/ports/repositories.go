package ports

import (
	"context"
	"time"

	"banking-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for accounts.
// Methods accepting pgx.Tx run inside a unit of work; the ForUpdate variant
// takes a row lock so balance mutations serialize per account.
type AccountRepository interface {
	Create(ctx context.Context, tx pgx.Tx, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	GetByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error)
	HolderNameExists(ctx context.Context, holderName string) (bool, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, balance decimal.Decimal) error
}

// TransactionRepository defines persistence for ledger entries. Entries are
// append-only: there is no update or physical delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)
	ListByAccountMonth(ctx context.Context, accountID uuid.UUID, year int, month time.Month) ([]domain.Transaction, error)
}

// DBTransactor provides database transaction management. One transaction is
// the unit of work for a top-level ledger operation.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
