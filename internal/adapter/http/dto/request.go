package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/wealthledger/internal/usecase"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the validate tags of a request.
func Validate(req any) error {
	return validate.Struct(req)
}

// CashOperationRequest is the body of the single-account cash operations.
type CashOperationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty" validate:"max=500"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CashOperationRequest) ToUseCaseInput(userID, accountID string) usecase.CashOperationInput {
	return usecase.CashOperationInput{
		UserID:      userID,
		AccountID:   accountID,
		Amount:      r.Amount,
		Description: r.Description,
		Metadata:    r.Metadata,
	}
}

// TransferRequest represents a request to move cash between two accounts.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id" validate:"required"`
	ToAccountID   string          `json:"to_account_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	Description   string          `json:"description,omitempty" validate:"max=500"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(userID string) usecase.TransferInput {
	return usecase.TransferInput{
		UserID:        userID,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		ExchangeRate:  r.ExchangeRate,
		Description:   r.Description,
		Metadata:      r.Metadata,
	}
}
