package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPrice marks a base price the engine refuses to work with.
	ErrInvalidPrice = errors.New("invalid base price")

	// ErrInvalidConfig marks a pricing configuration rejected at update time.
	ErrInvalidConfig = errors.New("invalid pricing config")
)

// MalformedOfferError is a per-offer failure at the annotation boundary.
// The batch continues; the offer is skipped and logged.
type MalformedOfferError struct {
	OfferID string
	Reason  string
}

func (e *MalformedOfferError) Error() string {
	return fmt.Sprintf("malformed offer %q: %s", e.OfferID, e.Reason)
}
