package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"travel/pkg/db"
)

// Favorite is one saved offer, keyed by the supplier's identifier for it.
type Favorite struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	ClientID   int64           `json:"client_id"`
	Type       string          `json:"type"`
	ProviderID string          `json:"provider_id"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Store interface {
	Insert(ctx context.Context, f *Favorite) error
	Delete(ctx context.Context, userID, clientID int64, favType, providerID string) (bool, error)
	ListByOwner(ctx context.Context, userID, clientID int64) ([]Favorite, error)
}

type sqlStore struct {
	db db.SQLExecutor
}

func NewStore(executor db.SQLExecutor) Store {
	return &sqlStore{db: executor}
}

func (s *sqlStore) Insert(ctx context.Context, f *Favorite) error {
	query := `INSERT INTO travel_favorites (id, user_id, client_id, type, provider_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query, f.ID, f.UserID, f.ClientID, f.Type, f.ProviderID, []byte(f.Details))
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

// Delete removes a favorite and reports whether a row existed.
func (s *sqlStore) Delete(ctx context.Context, userID, clientID int64, favType, providerID string) (bool, error) {
	query := `DELETE FROM travel_favorites
		WHERE user_id = $1 AND client_id = $2 AND type = $3 AND provider_id = $4`

	result, err := s.db.ExecContext(ctx, query, userID, clientID, favType, providerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (s *sqlStore) ListByOwner(ctx context.Context, userID, clientID int64) ([]Favorite, error) {
	query := `SELECT id, user_id, client_id, type, provider_id, details, created_at
		FROM travel_favorites
		WHERE user_id = $1 AND client_id = $2
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var (
			f       Favorite
			details []byte
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.ClientID, &f.Type, &f.ProviderID, &details, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.Details = details
		favorites = append(favorites, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return favorites, nil
}
