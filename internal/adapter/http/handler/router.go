package handler

import (
	"banking-ledger/internal/adapter/http/middleware"
	redisStore "banking-ledger/internal/adapter/storage/redis"
	"banking-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	StatementSvc   ports.StatementService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	accountHandler := NewAccountHandler(deps.LedgerSvc, deps.StatementSvc)
	accounts := v1.Group("/accounts")
	{
		accounts.POST("", rl("accounts_create"), accountHandler.CreateAccount)
		accounts.POST("/deposit", rl("mutations"), accountHandler.Deposit)
		accounts.POST("/withdraw", rl("mutations"), accountHandler.Withdraw)
		accounts.POST("/transfer", rl("mutations"), accountHandler.Transfer)
		accounts.GET("/:id", rl("queries"), accountHandler.GetAccount)
	}

	transactionHandler := NewTransactionHandler(deps.StatementSvc)
	transactions := v1.Group("/transactions")
	{
		transactions.GET("/history/:accountId", rl("queries"), transactionHandler.GetHistory)
		transactions.GET("/monthly-statement/:accountId/:year/:month", rl("queries"), transactionHandler.GetMonthlyStatement)
	}

	return r
}
