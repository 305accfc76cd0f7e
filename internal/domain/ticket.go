package domain

import "github.com/shopspring/decimal"

type TicketCategory string

const (
	TicketCategoryStandard  TicketCategory = "standard"
	TicketCategoryVIP       TicketCategory = "vip"
	TicketCategoryEarlyBird TicketCategory = "early bird"
)

func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryStandard, TicketCategoryVIP, TicketCategoryEarlyBird:
		return true
	}
	return false
}

// TicketType is a purchasable admission category of an event. Available is the
// single source of truth for remaining inventory and always stays within
// [0, Quantity].
type TicketType struct {
	ID        int64           `json:"id"`
	EventID   int64           `json:"event_id"`
	Category  TicketCategory  `json:"type"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Available int             `json:"available_quantity"`
}

// TotalFor prices quantity units at the ticket's current price, rounded to cents.
func (t TicketType) TotalFor(quantity int) decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
