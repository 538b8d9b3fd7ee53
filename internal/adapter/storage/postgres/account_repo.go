package postgres

import (
	"context"
	"errors"
	"fmt"

	"banking-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const uniqueViolationCode = "23505"

// Partial unique indexes on non-deleted rows; see migrations/001_init.sql.
const (
	constraintAccountNumber = "uq_accounts_account_number"
	constraintHolderName    = "uq_accounts_holder_name"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts a new account within a unit of work. Unique violations are
// mapped to domain errors so callers can retry a colliding account number or
// fail holder-name duplicates as validation.
func (r *AccountRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	query := `INSERT INTO accounts (id, account_number, holder_name, balance, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		a.ID, a.AccountNumber, a.HolderName, a.Balance,
		a.IsDeleted, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			switch pgErr.ConstraintName {
			case constraintAccountNumber:
				return domain.ErrDuplicateAccountNumber
			case constraintHolderName:
				return domain.ErrDuplicateHolderName
			}
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID fetches a non-deleted account by its UUID (without locking).
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, account_number, holder_name, balance, is_deleted, created_at, updated_at
		FROM accounts WHERE id = $1 AND is_deleted = FALSE`

	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByNumber fetches a non-deleted account by its external account number
// (non-locking read).
func (r *AccountRepo) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT id, account_number, holder_name, balance, is_deleted, created_at, updated_at
		FROM accounts WHERE account_number = $1 AND is_deleted = FALSE`

	return scanAccount(r.pool.QueryRow(ctx, query, accountNumber))
}

// GetByNumberForUpdate fetches an account by account number with pessimistic
// locking. This MUST be called within a transaction.
func (r *AccountRepo) GetByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error) {
	query := `SELECT id, account_number, holder_name, balance, is_deleted, created_at, updated_at
		FROM accounts WHERE account_number = $1 AND is_deleted = FALSE FOR UPDATE`

	return scanAccount(tx.QueryRow(ctx, query, accountNumber))
}

// HolderNameExists reports whether a non-deleted account already uses the
// holder name, case-insensitively. This is the fast-fail check; the partial
// unique index is the real guard.
func (r *AccountRepo) HolderNameExists(ctx context.Context, holderName string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(holder_name) = LOWER($1) AND is_deleted = FALSE)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, holderName).Scan(&exists); err != nil {
		return false, fmt.Errorf("check holder name: %w", err)
	}
	return exists, nil
}

// UpdateBalance writes a new balance within a transaction.
func (r *AccountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE accounts SET balance = $1, updated_at = NOW() WHERE id = $2 AND is_deleted = FALSE`

	tag, err := tx.Exec(ctx, query, balance, accountID)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", accountID)
	}
	return nil
}

// scanAccount is a helper to scan a single row into an Account.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(
		&a.ID, &a.AccountNumber, &a.HolderName, &a.Balance,
		&a.IsDeleted, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}
