package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"banking-ledger/internal/core/domain"
	"banking-ledger/internal/core/ports"
	"banking-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StatementServiceImpl implements ports.StatementService as a read-through
// cache over the transaction store. Cache failures degrade to direct store
// reads and are only logged.
type StatementServiceImpl struct {
	accountRepo ports.AccountRepository
	txRepo      ports.TransactionRepository
	cache       ports.SnapshotCache
	cacheTTL    time.Duration
	log         zerolog.Logger
}

// NewStatementService creates a new StatementServiceImpl.
func NewStatementService(
	accountRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
	cache ports.SnapshotCache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *StatementServiceImpl {
	return &StatementServiceImpl{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		log:         log,
	}
}

// GetAccount returns an account snapshot, served from cache when possible.
func (s *StatementServiceImpl) GetAccount(ctx context.Context, accountID uuid.UUID) (*ports.AccountSnapshot, error) {
	key := domain.AccountCacheKey(accountID)

	if cached := s.cacheGet(ctx, key); cached != nil {
		var account domain.Account
		if err := json.Unmarshal(cached, &account); err == nil {
			return &ports.AccountSnapshot{Account: &account, Source: ports.SourceCache}, nil
		}
		s.log.Warn().Str("key", key).Msg("corrupt cache entry, falling through to store")
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	s.cachePut(ctx, key, account)
	return &ports.AccountSnapshot{Account: account, Source: ports.SourceDatabase}, nil
}

// GetTransactionHistory returns the full ledger history, newest first.
func (s *StatementServiceImpl) GetTransactionHistory(ctx context.Context, accountID uuid.UUID) (*ports.HistoryResult, error) {
	key := domain.HistoryCacheKey(accountID)

	if cached := s.cacheGet(ctx, key); cached != nil {
		var txns []domain.Transaction
		if err := json.Unmarshal(cached, &txns); err == nil {
			return &ports.HistoryResult{Transactions: txns, Source: ports.SourceCache}, nil
		}
		s.log.Warn().Str("key", key).Msg("corrupt cache entry, falling through to store")
	}

	if err := s.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}

	txns, err := s.txRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}

	s.cachePut(ctx, key, txns)
	return &ports.HistoryResult{Transactions: txns, Source: ports.SourceDatabase}, nil
}

// GetMonthlyStatement returns one calendar month of entries, oldest first.
// Statement entries are never invalidated by writes; they age out on TTL.
func (s *StatementServiceImpl) GetMonthlyStatement(ctx context.Context, accountID uuid.UUID, year int, month time.Month) (*ports.HistoryResult, error) {
	if month < time.January || month > time.December {
		return nil, apperror.Validation("Month must be between 1 and 12")
	}
	if year < 1 {
		return nil, apperror.Validation("Year is invalid")
	}

	key := domain.StatementCacheKey(accountID, year, month)

	if cached := s.cacheGet(ctx, key); cached != nil {
		var txns []domain.Transaction
		if err := json.Unmarshal(cached, &txns); err == nil {
			return &ports.HistoryResult{Transactions: txns, Source: ports.SourceCache}, nil
		}
		s.log.Warn().Str("key", key).Msg("corrupt cache entry, falling through to store")
	}

	if err := s.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}

	txns, err := s.txRepo.ListByAccountMonth(ctx, accountID, year, month)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list monthly statement: %w", err))
	}

	s.cachePut(ctx, key, txns)
	return &ports.HistoryResult{Transactions: txns, Source: ports.SourceDatabase}, nil
}

func (s *StatementServiceImpl) requireAccount(ctx context.Context, accountID uuid.UUID) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if account == nil {
		return apperror.ErrAccountNotFound()
	}
	return nil
}

func (s *StatementServiceImpl) cacheGet(ctx context.Context, key string) []byte {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling through to store")
		return nil
	}
	return cached
}

func (s *StatementServiceImpl) cachePut(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
