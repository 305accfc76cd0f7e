// Package access decides whether a principal may act on a resource.
package access

import (
	"github.com/Domenick1991/ticketing/internal/domain"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Kind string

const (
	KindVenue  Kind = "venue"
	KindEvent  Kind = "event"
	KindTicket Kind = "ticket"
	KindOrder  Kind = "order"
	KindUser   Kind = "user"
)

// Resource identifies what is being acted on. OwnerID is the event organizer
// for events and tickets and the purchaser for orders; zero when the action
// creates the resource or lists a collection.
type Resource struct {
	Kind    Kind
	OwnerID int64
}

func Venue() Resource { return Resource{Kind: KindVenue} }

func Event(organizerID int64) Resource { return Resource{Kind: KindEvent, OwnerID: organizerID} }

func Ticket(organizerID int64) Resource { return Resource{Kind: KindTicket, OwnerID: organizerID} }

func Order(purchaserID int64) Resource { return Resource{Kind: KindOrder, OwnerID: purchaserID} }

func Users() Resource { return Resource{Kind: KindUser} }

// Authorize returns nil when the action is allowed, otherwise one of
// domain.ErrUnauthorized, ErrForbidden, ErrNotFound or ErrMethodNotAllowed.
func Authorize(p domain.Principal, action Action, res Resource) error {
	switch res.Kind {
	case KindVenue:
		if action == ActionRead {
			return nil
		}
		return requireAuthenticated(p)

	case KindEvent:
		switch action {
		case ActionRead:
			return nil
		case ActionCreate:
			return requireAuthenticated(p)
		}
		return requireOwner(p, res.OwnerID, false)

	case KindTicket:
		if action == ActionRead {
			return nil
		}
		return requireOwner(p, res.OwnerID, true)

	case KindOrder:
		return authorizeOrder(p, action, res)

	case KindUser:
		if action == ActionCreate {
			return nil
		}
		if err := requireAuthenticated(p); err != nil {
			return err
		}
		if !p.IsAdmin {
			return domain.ErrForbidden
		}
		return nil
	}
	return domain.ErrForbidden
}

// Orders are immutable: no principal can update or delete one. Reads by
// anyone other than the purchaser look like a missing order.
func authorizeOrder(p domain.Principal, action Action, res Resource) error {
	switch action {
	case ActionUpdate, ActionDelete:
		return domain.ErrMethodNotAllowed
	case ActionCreate:
		return requireAuthenticated(p)
	case ActionRead:
		if err := requireAuthenticated(p); err != nil {
			return err
		}
		if res.OwnerID != 0 && res.OwnerID != p.UserID {
			return domain.ErrNotFound
		}
		return nil
	}
	return domain.ErrMethodNotAllowed
}

func requireAuthenticated(p domain.Principal) error {
	if !p.Authenticated() {
		return domain.ErrUnauthorized
	}
	return nil
}

func requireOwner(p domain.Principal, ownerID int64, adminAllowed bool) error {
	if err := requireAuthenticated(p); err != nil {
		return err
	}
	if p.UserID == ownerID {
		return nil
	}
	if adminAllowed && p.IsAdmin {
		return nil
	}
	return domain.ErrForbidden
}
