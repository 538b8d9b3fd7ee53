package handler

import (
	"strconv"
	"time"

	"banking-ledger/internal/adapter/http/dto"
	"banking-ledger/internal/core/ports"
	"banking-ledger/pkg/apperror"
	"banking-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles transaction read endpoints.
type TransactionHandler struct {
	statementSvc ports.StatementService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(statementSvc ports.StatementService) *TransactionHandler {
	return &TransactionHandler{statementSvc: statementSvc}
}

// GetHistory handles GET /api/v1/transactions/history/:accountId.
func (h *TransactionHandler) GetHistory(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		response.Error(c, apperror.Validation("Account id must be a UUID"))
		return
	}

	result, err := h.statementSvc.GetTransactionHistory(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromHistory(result))
}

// GetMonthlyStatement handles GET /api/v1/transactions/monthly-statement/:accountId/:year/:month.
func (h *TransactionHandler) GetMonthlyStatement(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		response.Error(c, apperror.Validation("Account id must be a UUID"))
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.Error(c, apperror.Validation("Year must be a number"))
		return
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		response.Error(c, apperror.Validation("Month must be a number"))
		return
	}

	result, err := h.statementSvc.GetMonthlyStatement(c.Request.Context(), accountID, year, time.Month(month))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromHistory(result))
}
