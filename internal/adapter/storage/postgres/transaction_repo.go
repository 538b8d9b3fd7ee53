package postgres

import (
	"context"
	"fmt"
	"time"

	"banking-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a ledger entry within a unit of work.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, account_id, amount, transaction_type, description, balance_after, is_deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	tag, err := tx.Exec(ctx, query,
		t.ID, t.AccountID, t.Amount, t.Type,
		t.Description, t.BalanceAfter, t.IsDeleted, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert transaction: no rows affected")
	}
	return nil
}

// ListByAccount fetches all non-deleted entries for an account, newest first.
func (r *TransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT id, account_id, amount, transaction_type, description, balance_after, is_deleted, created_at
		FROM transactions WHERE account_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListByAccountMonth fetches the entries of an exact year/month, oldest first.
func (r *TransactionRepo) ListByAccountMonth(ctx context.Context, accountID uuid.UUID, year int, month time.Month) ([]domain.Transaction, error) {
	query := `SELECT id, account_id, amount, transaction_type, description, balance_after, is_deleted, created_at
		FROM transactions WHERE account_id = $1 AND is_deleted = FALSE
		AND EXTRACT(YEAR FROM created_at) = $2 AND EXTRACT(MONTH FROM created_at) = $3
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, accountID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("list monthly statement: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.AccountID, &t.Amount, &t.Type,
			&t.Description, &t.BalanceAfter, &t.IsDeleted, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}
