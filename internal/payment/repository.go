package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists processed payment outcomes. Only masked data ever
// reaches it. There is no update or delete: a stored payment is immutable.
type Repository interface {
	Add(ctx context.Context, p Payment) error
	Get(ctx context.Context, id string) (Payment, error)
}

// PostgresRepository stores payments in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add inserts a payment record.
func (r *PostgresRepository) Add(ctx context.Context, p Payment) error {
	paymentID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO payments (id, status, card_number_last_four, expiry_month, expiry_year, currency, amount)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		paymentID, p.Status, p.CardNumberLastFour, p.ExpiryMonth, p.ExpiryYear, p.Currency, p.Amount)
	return err
}

// Get fetches a payment by identifier. A malformed identifier can never match
// a stored payment, so it reports ErrNotFound rather than a parse error.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Payment, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return Payment{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, status, card_number_last_four, expiry_month, expiry_year, currency, amount
        FROM payments WHERE id = $1`, paymentID)
	var (
		p     Payment
		idVal uuid.UUID
	)
	if err := row.Scan(&idVal, &p.Status, &p.CardNumberLastFour, &p.ExpiryMonth, &p.ExpiryYear, &p.Currency, &p.Amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	p.ID = idVal.String()
	return p, nil
}
