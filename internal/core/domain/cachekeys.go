package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Cache keys are deterministic in the query parameters so every read path
// resolves to exactly one cache entry.

// AccountCacheKey builds the cache key for an account snapshot.
func AccountCacheKey(accountID uuid.UUID) string {
	return "account:" + accountID.String()
}

// HistoryCacheKey builds the cache key for an account's full history.
func HistoryCacheKey(accountID uuid.UUID) string {
	return "history:" + accountID.String()
}

// StatementCacheKey builds the cache key for a monthly statement.
func StatementCacheKey(accountID uuid.UUID, year int, month time.Month) string {
	return fmt.Sprintf("statement:%s:%04d:%02d", accountID.String(), year, int(month))
}
