package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTicketType_TotalFor(t *testing.T) {
	ticket := TicketType{Price: decimal.RequireFromString("50.00")}
	assert.True(t, decimal.RequireFromString("250.00").Equal(ticket.TotalFor(5)))

	ticket.Price = decimal.RequireFromString("19.99")
	assert.Equal(t, "59.97", ticket.TotalFor(3).StringFixed(2))
}

func TestTicketCategory_Valid(t *testing.T) {
	assert.True(t, TicketCategoryStandard.Valid())
	assert.True(t, TicketCategoryEarlyBird.Valid())
	assert.False(t, TicketCategory("balcony").Valid())
}

func TestValidationError_IsInvalidRequest(t *testing.T) {
	err := Invalid("quantity", "must be positive")
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.Equal(t, "quantity: must be positive", err.Error())

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "quantity", vErr.Field)
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(ErrInsufficientInventory))
	assert.True(t, IsDomainError(fmt.Errorf("%w: busy", ErrTransactionAborted)))
	assert.True(t, IsDomainError(Invalid("ticket", "unknown")))
	assert.False(t, IsDomainError(errors.New("connection reset by peer")))
	assert.False(t, IsDomainError(nil))
}

func TestPrincipal_Authenticated(t *testing.T) {
	assert.False(t, Anonymous().Authenticated())
	assert.True(t, Principal{UserID: 7}.Authenticated())
}
