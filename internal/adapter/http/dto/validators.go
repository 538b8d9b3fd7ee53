package dto

import (
	"banking-ledger/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("money", validateMoney)
		_ = v.RegisterValidation("account_number", validateAccountNumber)
	}
}

// validateMoney accepts decimal strings with at most two fraction digits.
// Sign and magnitude rules stay in the service layer.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.Exponent() >= -2
}

// validateAccountNumber accepts generated 10-digit account numbers.
func validateAccountNumber(fl validator.FieldLevel) bool {
	return domain.ValidAccountNumber(fl.Field().String())
}
