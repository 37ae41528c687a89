package search

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"travel/pkg/db"
)

var ErrNotFound = errors.New("search not found")

const dateLayout = "2006-01-02"

// Store persists search requests, scoped to (user, client).
type Store interface {
	Create(ctx context.Context, s *Search) error
	GetByID(ctx context.Context, id, userID, clientID int64) (*Search, error)
}

type sqlStore struct {
	db db.SQLExecutor
}

func NewStore(executor db.SQLExecutor) Store {
	return &sqlStore{db: executor}
}

func (s *sqlStore) Create(ctx context.Context, search *Search) error {
	query := `INSERT INTO travel_searches
		(id, user_id, client_id, type, from_location, to_location, departure_date, return_date, adults, children, rooms, with_pets)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.ExecContext(ctx, query,
		search.ID, search.UserID, search.ClientID, string(search.Type),
		search.FromLocation, search.ToLocation, search.DepartureDate, search.ReturnDate,
		search.Adults, search.Children, search.Rooms, search.WithPets,
	)
	if err != nil {
		return fmt.Errorf("failed to insert search: %w", err)
	}
	return nil
}

func (s *sqlStore) GetByID(ctx context.Context, id, userID, clientID int64) (*Search, error) {
	query := `SELECT id, user_id, client_id, type, from_location, to_location, departure_date, return_date, adults, children, rooms, with_pets, created_at
		FROM travel_searches
		WHERE id = $1 AND user_id = $2 AND client_id = $3`

	var (
		search     Search
		searchTy   string
		departure  time.Time
		returnDate sql.NullTime
	)
	row := s.db.QueryRowContext(ctx, query, id, userID, clientID)
	err := row.Scan(
		&search.ID, &search.UserID, &search.ClientID, &searchTy,
		&search.FromLocation, &search.ToLocation, &departure, &returnDate,
		&search.Adults, &search.Children, &search.Rooms, &search.WithPets, &search.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load search: %w", err)
	}

	search.Type = SearchType(searchTy)
	search.DepartureDate = departure.Format(dateLayout)
	if returnDate.Valid {
		formatted := returnDate.Time.Format(dateLayout)
		search.ReturnDate = &formatted
	}
	return &search, nil
}
