package repository

import (
	"context"
	"fmt"

	"github.com/aiagenz/donate/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DonationRepository handles database operations for recorded donations.
type DonationRepository struct {
	db *pgxpool.Pool
}

// NewDonationRepository creates a new DonationRepository.
func NewDonationRepository(db *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{db: db}
}

// Create inserts a donation record.
func (r *DonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	query := `
		INSERT INTO donations (id, user_id, form_id, provider, duration, amount, provider_ref, email_enc, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		d.ID, d.UserID, d.FormID, d.Provider, d.Duration, d.Amount, d.ProviderRef, d.Email, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

// ListByUser returns a user's donations, newest first.
func (r *DonationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Donation, error) {
	query := `
		SELECT id, user_id, form_id, provider, duration, amount, provider_ref, email_enc, created_at
		FROM donations WHERE user_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	var donations []*domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.FormID, &d.Provider, &d.Duration,
			&d.Amount, &d.ProviderRef, &d.Email, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}

// Ping reports whether the database is reachable.
func (r *DonationRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
