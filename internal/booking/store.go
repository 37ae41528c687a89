package booking

import (
	"context"
	"fmt"
	"travel/pkg/db"
)

type Store interface {
	Create(ctx context.Context, b *Booking) error
	ListByOwner(ctx context.Context, userID, clientID int64) ([]Booking, error)
}

type sqlStore struct {
	db db.SQLExecutor
}

func NewStore(executor db.SQLExecutor) Store {
	return &sqlStore{db: executor}
}

func (s *sqlStore) Create(ctx context.Context, b *Booking) error {
	query := `INSERT INTO travel_bookings
		(id, user_id, client_id, booking_type, booking_reference, provider_reference, status,
		 base_price, service_fee, commission, total_price, currency, booking_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := s.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.ClientID, string(b.Type), b.Reference, b.ProviderReference, b.Status,
		b.BasePrice, b.ServiceFee, b.Commission, b.TotalPrice, b.Currency, []byte(b.Details),
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (s *sqlStore) ListByOwner(ctx context.Context, userID, clientID int64) ([]Booking, error) {
	query := `SELECT id, user_id, client_id, booking_type, booking_reference, provider_reference, status,
			base_price, service_fee, commission, total_price, currency, booking_details, created_at
		FROM travel_bookings
		WHERE user_id = $1 AND client_id = $2
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var (
			b         Booking
			bookingTy string
			details   []byte
		)
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.ClientID, &bookingTy, &b.Reference, &b.ProviderReference, &b.Status,
			&b.BasePrice, &b.ServiceFee, &b.Commission, &b.TotalPrice, &b.Currency, &details, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.Type = BookingType(bookingTy)
		b.Details = details
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}
