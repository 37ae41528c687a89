package settings

import (
	"context"
	"fmt"
	"travel/internal/pricing"
	"travel/pkg/db"
)

// Store persists per-agent pricing configuration. A row is created lazily
// with defaults on first access and never deleted.
type Store interface {
	GetOrCreate(ctx context.Context, userID int64) (pricing.PricingConfig, error)
	Update(ctx context.Context, userID int64, cfg pricing.PricingConfig) (pricing.PricingConfig, error)
}

type sqlStore struct {
	db db.SQLExecutor
}

func NewStore(executor db.SQLExecutor) Store {
	return &sqlStore{db: executor}
}

func (s *sqlStore) GetOrCreate(ctx context.Context, userID int64) (pricing.PricingConfig, error) {
	defaults := pricing.DefaultConfig()

	// First access inserts the defaults; on conflict the no-op update lets
	// RETURNING yield the stored row, so a concurrently created row wins
	// over the in-memory defaults.
	query := `INSERT INTO travel_settings (user_id, commission_type, commission_value, service_fee)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING commission_type, commission_value, service_fee`

	var (
		cfg            pricing.PricingConfig
		commissionType string
	)
	err := s.db.QueryRowContext(ctx, query,
		userID, string(defaults.CommissionType), defaults.CommissionValue, defaults.ServiceFee).
		Scan(&commissionType, &cfg.CommissionValue, &cfg.ServiceFee)
	if err != nil {
		return pricing.PricingConfig{}, fmt.Errorf("failed to load settings: %w", err)
	}

	cfg.CommissionType = pricing.CommissionType(commissionType)
	return cfg, nil
}

func (s *sqlStore) Update(ctx context.Context, userID int64, cfg pricing.PricingConfig) (pricing.PricingConfig, error) {
	// Invalid configurations are rejected here and never reach the pricing path.
	if err := pricing.ValidateConfig(cfg); err != nil {
		return pricing.PricingConfig{}, err
	}

	query := `INSERT INTO travel_settings (user_id, commission_type, commission_value, service_fee)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			commission_type = EXCLUDED.commission_type,
			commission_value = EXCLUDED.commission_value,
			service_fee = EXCLUDED.service_fee,
			updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, userID, string(cfg.CommissionType), cfg.CommissionValue, cfg.ServiceFee); err != nil {
		return pricing.PricingConfig{}, fmt.Errorf("failed to update settings: %w", err)
	}

	return cfg, nil
}
