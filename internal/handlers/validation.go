package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
)

// RegisterValidators adds the ledger's binding rules to gin's validator:
// dpositive (decimal.Decimal greater than zero) and paymethod (a known payment method).
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("dpositive", positiveDecimal); err != nil {
		return fmt.Errorf("register dpositive: %w", err)
	}
	if err := v.RegisterValidation("paymethod", knownPaymentMethod); err != nil {
		return fmt.Errorf("register paymethod: %w", err)
	}
	return nil
}

func positiveDecimal(fl validator.FieldLevel) bool {
	switch d := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return d.IsPositive()
	case *decimal.Decimal:
		return d != nil && d.IsPositive()
	}
	return false
}

func knownPaymentMethod(fl validator.FieldLevel) bool {
	return domain.PaymentMethod(fl.Field().String()).IsValid()
}
