package notify

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/mail"
)

func ComposeConfirmation(c *domain.OrderConfirmation) mail.Message {
	var body strings.Builder
	fmt.Fprintf(&body, "Hello, %s!\n\n", c.PurchaserName)
	fmt.Fprintf(&body, "Your order for the event %q has been successfully created.\n", c.EventName)
	fmt.Fprintf(&body, "Number of tickets: %d\n", c.Quantity)
	fmt.Fprintf(&body, "Total price: %s\n\n", c.TotalPrice.StringFixed(2))
	body.WriteString("Thank you for your purchase!")

	return mail.Message{
		To:      c.PurchaserEmail,
		Subject: fmt.Sprintf("Order Confirmation #%d", c.OrderID),
		Body:    body.String(),
	}
}
