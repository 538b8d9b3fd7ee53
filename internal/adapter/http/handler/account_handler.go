package handler

import (
	"fmt"

	"banking-ledger/internal/adapter/http/dto"
	"banking-ledger/internal/core/ports"
	"banking-ledger/pkg/apperror"
	"banking-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler handles account endpoints.
type AccountHandler struct {
	ledgerSvc    ports.LedgerService
	statementSvc ports.StatementService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledgerSvc ports.LedgerService, statementSvc ports.StatementService) *AccountHandler {
	return &AccountHandler{ledgerSvc: ledgerSvc, statementSvc: statementSvc}
}

// CreateAccount handles POST /api/v1/accounts.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	account, err := h.ledgerSvc.CreateAccount(c.Request.Context(), ports.CreateAccountRequest{
		HolderName:     req.HolderName,
		InitialDeposit: dto.Amount(req.InitialDeposit),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	message := fmt.Sprintf("Account created successfully. Account Number: %s", account.AccountNumber)
	response.Created(c, dto.FromAccount(account), message)
}

// GetAccount handles GET /api/v1/accounts/:id.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("Account id must be a UUID"))
		return
	}

	snapshot, err := h.statementSvc.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AccountSnapshotResponse{
		Account: dto.FromAccount(snapshot.Account),
		Source:  string(snapshot.Source),
	})
}

// Deposit handles POST /api/v1/accounts/deposit.
func (h *AccountHandler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.ledgerSvc.Deposit(c.Request.Context(), ports.DepositRequest{
		AccountNumber: req.AccountNumber,
		Amount:        dto.Amount(req.Amount),
		Description:   req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromTransaction(txn))
}

// Withdraw handles POST /api/v1/accounts/withdraw.
func (h *AccountHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.ledgerSvc.Withdraw(c.Request.Context(), ports.WithdrawRequest{
		AccountNumber: req.AccountNumber,
		Amount:        dto.Amount(req.Amount),
		Description:   req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromTransaction(txn))
}

// Transfer handles POST /api/v1/accounts/transfer.
func (h *AccountHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.ledgerSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		FromAccountNumber: req.FromAccountNumber,
		ToAccountNumber:   req.ToAccountNumber,
		Amount:            dto.Amount(req.Amount),
		Description:       req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransferResponse{
		Debit:  dto.FromTransaction(result.Debit),
		Credit: dto.FromTransaction(result.Credit),
	})
}
