package booking

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type BookingType string

const (
	BookingTypeFlight BookingType = "flight"
	BookingTypeHotel  BookingType = "hotel"
)

const StatusConfirmed = "confirmed"

// Booking is a confirmed reservation: the supplier's reference plus the
// resold price actually charged.
type Booking struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	ClientID          int64           `json:"client_id"`
	Type              BookingType     `json:"type"`
	Reference         string          `json:"reference"`
	ProviderReference string          `json:"provider_reference"`
	Status            string          `json:"status"`
	BasePrice         decimal.Decimal `json:"base_price"`
	ServiceFee        decimal.Decimal `json:"service_fee"`
	Commission        decimal.Decimal `json:"commission"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	Currency          string          `json:"currency"`
	Details           json.RawMessage `json:"details,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// BookRequest is the POST /book body: which product kind, and the
// supplier-shaped order payload assembled by the client.
type BookRequest struct {
	Type    BookingType     `json:"type" binding:"required,oneof=flight hotel"`
	Details json.RawMessage `json:"details" binding:"required"`
}
