package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"travel/internal/pricing"
	"travel/pkg/amadeus"
	"travel/pkg/idgen"
	"travel/pkg/logger"

	"github.com/shopspring/decimal"
)

// ErrSupplierBooking marks an upstream booking failure; nothing is persisted.
var ErrSupplierBooking = errors.New("supplier booking failed")

// SupplierBooker is the upstream booking surface of the travel supplier.
type SupplierBooker interface {
	CreateFlightOrder(ctx context.Context, details json.RawMessage) (*amadeus.BookingConfirmation, error)
	CreateHotelBooking(ctx context.Context, details json.RawMessage) (*amadeus.BookingConfirmation, error)
}

// SettingsProvider yields the booking agent's pricing configuration.
type SettingsProvider interface {
	GetOrCreate(ctx context.Context, userID int64) (pricing.PricingConfig, error)
}

type Service struct {
	store    Store
	supplier SupplierBooker
	settings SettingsProvider
	idgen    idgen.Generator
	logger   logger.Client
}

func NewService(store Store, supplier SupplierBooker, settings SettingsProvider,
	idgen idgen.Generator, logger logger.Client) *Service {
	return &Service{
		store:    store,
		supplier: supplier,
		settings: settings,
		idgen:    idgen,
		logger:   logger,
	}
}

// Create books with the supplier, reprices the confirmed base price with the
// agent's configuration, and persists the result. The supplier confirmation
// is authoritative for the base price, not the search-time quote.
func (s *Service) Create(ctx context.Context, userID, clientID int64, req BookRequest) (*Booking, error) {
	var (
		confirmation *amadeus.BookingConfirmation
		err          error
	)
	if req.Type == BookingTypeFlight {
		confirmation, err = s.supplier.CreateFlightOrder(ctx, req.Details)
	} else {
		confirmation, err = s.supplier.CreateHotelBooking(ctx, req.Details)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSupplierBooking, err)
	}

	basePrice, err := decimal.NewFromString(confirmation.Price.Total)
	if err != nil {
		return nil, fmt.Errorf("%w: non-numeric confirmed price %q", ErrSupplierBooking, confirmation.Price.Total)
	}

	config, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	breakdown, err := pricing.ComputeBreakdown(basePrice, config)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		ID:                s.idgen.GenerateID(),
		UserID:            userID,
		ClientID:          clientID,
		Type:              req.Type,
		Reference:         "BK-" + s.idgen.GenerateStringID(),
		ProviderReference: confirmation.ID,
		Status:            StatusConfirmed,
		BasePrice:         breakdown.BasePrice,
		ServiceFee:        breakdown.ServiceFee,
		Commission:        breakdown.Commission,
		TotalPrice:        breakdown.TotalPrice,
		Currency:          confirmation.Price.Currency,
		Details:           req.Details,
		CreatedAt:         time.Now(),
	}

	if err := s.store.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		logger.Field{Key: "reference", Value: booking.Reference},
		logger.Field{Key: "provider_reference", Value: booking.ProviderReference},
		logger.Field{Key: "total_price", Value: booking.TotalPrice.String()},
	)
	return booking, nil
}

func (s *Service) List(ctx context.Context, userID, clientID int64) ([]Booking, error) {
	return s.store.ListByOwner(ctx, userID, clientID)
}
