package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"banking-ledger/internal/core/domain"
	"banking-ledger/internal/core/ports"
	"banking-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	maxHolderNameLen = 150

	// Description stamped on the transaction seeded by a positive opening balance.
	seedDepositDescription = "Initial deposit on account creation"

	// Account number collisions restart the whole unit of work; the aborted
	// transaction cannot be reused.
	maxAccountNumberAttempts = 5
)

// LedgerServiceImpl implements ports.LedgerService.
type LedgerServiceImpl struct {
	accountRepo ports.AccountRepository
	txRepo      ports.TransactionRepository
	gateway     ports.PaymentGateway
	cache       ports.SnapshotCache
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	accountRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
	gateway ports.PaymentGateway,
	cache ports.SnapshotCache,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		gateway:     gateway,
		cache:       cache,
		transactor:  transactor,
		log:         log,
	}
}

// CreateAccount opens a new account, seeding a DEPOSIT entry when the opening
// balance is positive. All validation failures are aggregated and returned
// before any unit of work is opened.
func (s *LedgerServiceImpl) CreateAccount(ctx context.Context, req ports.CreateAccountRequest) (*domain.Account, error) {
	holderName := strings.TrimSpace(req.HolderName)

	var violations []string
	if holderName == "" {
		violations = append(violations, "Holder name is required")
	}
	if len(holderName) > maxHolderNameLen {
		violations = append(violations, fmt.Sprintf("Holder name must not exceed %d characters", maxHolderNameLen))
	}
	if req.InitialDeposit.IsNegative() {
		violations = append(violations, "Initial deposit cannot be negative")
	}
	if len(violations) > 0 {
		return nil, apperror.ErrValidation(violations...)
	}

	// Fast-fail on duplicate names. The partial unique index is the real
	// guard; a race here surfaces as ErrDuplicateHolderName on insert.
	exists, err := s.accountRepo.HolderNameExists(ctx, holderName)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check holder name: %w", err))
	}
	if exists {
		return nil, apperror.Validation("Holder name is already in use")
	}

	for attempt := 1; attempt <= maxAccountNumberAttempts; attempt++ {
		account, err := s.createAccountAttempt(ctx, holderName, req.InitialDeposit)
		if err == nil {
			s.log.Info().
				Str("account_id", account.ID.String()).
				Str("account_number", account.AccountNumber).
				Int("attempt", attempt).
				Msg("account created")
			return account, nil
		}
		if errors.Is(err, domain.ErrDuplicateAccountNumber) {
			s.log.Warn().Int("attempt", attempt).Msg("account number collision, retrying")
			continue
		}
		if errors.Is(err, domain.ErrDuplicateHolderName) {
			return nil, apperror.Validation("Holder name is already in use")
		}
		return nil, apperror.InternalError(err)
	}

	return nil, apperror.InternalError(fmt.Errorf("account number generation exhausted after %d attempts", maxAccountNumberAttempts))
}

// createAccountAttempt runs one full unit of work: insert the account and,
// when the opening balance is positive, its seed deposit entry.
func (s *LedgerServiceImpl) createAccountAttempt(ctx context.Context, holderName string, initialDeposit decimal.Decimal) (*domain.Account, error) {
	number, err := domain.GenerateAccountNumber()
	if err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	account := &domain.Account{
		ID:            uuid.New(),
		AccountNumber: number,
		HolderName:    holderName,
		Balance:       initialDeposit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.accountRepo.Create(ctx, dbTx, account); err != nil {
		return nil, err
	}

	if initialDeposit.IsPositive() {
		seed := &domain.Transaction{
			ID:           uuid.New(),
			AccountID:    account.ID,
			Amount:       initialDeposit,
			Type:         domain.TransactionTypeDeposit,
			Description:  seedDepositDescription,
			BalanceAfter: initialDeposit,
			CreatedAt:    now,
		}
		if err := s.txRepo.Create(ctx, dbTx, seed); err != nil {
			return nil, fmt.Errorf("create seed deposit: %w", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return account, nil
}

// Deposit credits an account. The gateway confirmation runs before any store
// access; a declined or unreachable gateway leaves the ledger untouched.
func (s *LedgerServiceImpl) Deposit(ctx context.Context, req ports.DepositRequest) (*domain.Transaction, error) {
	if err := validateMutation(req.AccountNumber, req.Amount); err != nil {
		return nil, err
	}

	result, err := s.gateway.ConfirmDeposit(ctx, req.AccountNumber, req.Amount)
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(err)
	}
	if !result.Success {
		return nil, apperror.ErrGatewayDeclined(result.Message)
	}
	s.log.Info().
		Str("reference", result.Reference).
		Str("account_number", req.AccountNumber).
		Msg("deposit confirmed by gateway")

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByNumberForUpdate(ctx, dbTx, req.AccountNumber)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	newBalance := account.Balance.Add(req.Amount)
	txn, err := s.appendEntry(ctx, dbTx, account, domain.TransactionTypeDeposit, req.Amount, req.Description, newBalance)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.invalidateAccountCaches(ctx, account.ID)
	return txn, nil
}

// Withdraw debits an account. Sufficiency is checked on the locked row, so a
// concurrent mutation committed between confirmation and lock acquisition is
// always observed.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, req ports.WithdrawRequest) (*domain.Transaction, error) {
	if err := validateMutation(req.AccountNumber, req.Amount); err != nil {
		return nil, err
	}

	result, err := s.gateway.ConfirmWithdrawal(ctx, req.AccountNumber, req.Amount)
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(err)
	}
	if !result.Success {
		return nil, apperror.ErrGatewayDeclined(result.Message)
	}
	s.log.Info().
		Str("reference", result.Reference).
		Str("account_number", req.AccountNumber).
		Msg("withdrawal confirmed by gateway")

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByNumberForUpdate(ctx, dbTx, req.AccountNumber)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}
	if !account.HasFunds(req.Amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	newBalance := account.Balance.Sub(req.Amount)
	txn, err := s.appendEntry(ctx, dbTx, account, domain.TransactionTypeWithdrawal, req.Amount, req.Description, newBalance)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.invalidateAccountCaches(ctx, account.ID)
	return txn, nil
}

// Transfer atomically moves money between two accounts. Both rows are locked
// in account-number order to avoid deadlocks between opposing transfers.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	var violations []string
	if !req.Amount.IsPositive() {
		violations = append(violations, "Amount must be greater than zero")
	}
	if !domain.ValidAccountNumber(req.FromAccountNumber) {
		violations = append(violations, "Source account number is invalid")
	}
	if !domain.ValidAccountNumber(req.ToAccountNumber) {
		violations = append(violations, "Destination account number is invalid")
	}
	if req.FromAccountNumber == req.ToAccountNumber {
		violations = append(violations, "Source and destination accounts must differ")
	}
	if len(violations) > 0 {
		return nil, apperror.ErrValidation(violations...)
	}

	result, err := s.gateway.ConfirmTransfer(ctx, req.FromAccountNumber, req.ToAccountNumber, req.Amount)
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(err)
	}
	if !result.Success {
		return nil, apperror.ErrGatewayDeclined(result.Message)
	}
	s.log.Info().
		Str("reference", result.Reference).
		Str("from", req.FromAccountNumber).
		Str("to", req.ToAccountNumber).
		Msg("transfer confirmed by gateway")

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock in account-number order regardless of transfer direction.
	first, second := req.FromAccountNumber, req.ToAccountNumber
	if second < first {
		first, second = second, first
	}

	locked := make(map[string]*domain.Account, 2)
	for _, number := range []string{first, second} {
		account, err := s.accountRepo.GetByNumberForUpdate(ctx, dbTx, number)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
		}
		if account == nil {
			return nil, apperror.ErrAccountNotFound()
		}
		locked[number] = account
	}
	from, to := locked[req.FromAccountNumber], locked[req.ToAccountNumber]

	if !from.HasFunds(req.Amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	debit, err := s.appendEntry(ctx, dbTx, from, domain.TransactionTypeTransferOut, req.Amount, req.Description, from.Balance.Sub(req.Amount))
	if err != nil {
		return nil, err
	}
	credit, err := s.appendEntry(ctx, dbTx, to, domain.TransactionTypeTransferIn, req.Amount, req.Description, to.Balance.Add(req.Amount))
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.invalidateAccountCaches(ctx, from.ID)
	s.invalidateAccountCaches(ctx, to.ID)
	return &ports.TransferResult{Debit: debit, Credit: credit}, nil
}

// appendEntry updates the locked account's balance and writes the matching
// ledger entry. The stored amount carries the type's sign; BalanceAfter is
// the post-mutation snapshot.
func (s *LedgerServiceImpl) appendEntry(
	ctx context.Context,
	dbTx pgx.Tx,
	account *domain.Account,
	txType domain.TransactionType,
	amount decimal.Decimal,
	description string,
	newBalance decimal.Decimal,
) (*domain.Transaction, error) {
	if err := s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	txn := &domain.Transaction{
		ID:           uuid.New(),
		AccountID:    account.ID,
		Amount:       domain.SignedAmount(txType, amount),
		Type:         txType,
		Description:  description,
		BalanceAfter: newBalance,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}
	return txn, nil
}

func validateMutation(accountNumber string, amount decimal.Decimal) error {
	var violations []string
	if !amount.IsPositive() {
		violations = append(violations, "Amount must be greater than zero")
	}
	if !domain.ValidAccountNumber(accountNumber) {
		violations = append(violations, "Account number is invalid")
	}
	if len(violations) > 0 {
		return apperror.ErrValidation(violations...)
	}
	return nil
}

// invalidateAccountCaches drops the account snapshot and history entries.
// Best-effort: a failed invalidation is logged, never surfaced, since every
// entry also carries an absolute TTL.
func (s *LedgerServiceImpl) invalidateAccountCaches(ctx context.Context, accountID uuid.UUID) {
	for _, key := range []string{domain.AccountCacheKey(accountID), domain.HistoryCacheKey(accountID)} {
		if err := s.cache.Remove(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
		}
	}
}
