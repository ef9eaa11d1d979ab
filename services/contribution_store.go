package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"birthdayFundAPI/internal/contribution"
)

// ContributionStore owns the ordered sequence of confirmed contributions.
type ContributionStore interface {
	Append(ctx context.Context, c contribution.Contribution) error
	List(ctx context.Context) ([]contribution.Contribution, error)
	TotalCents(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// MemoryStore keeps contributions for the lifetime of the process. It is safe for
// concurrent use but only within one instance; run several instances against
// PostgresStore instead.
type MemoryStore struct {
	mu            sync.RWMutex
	contributions []contribution.Contribution
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(ctx context.Context, c contribution.Contribution) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.contributions = append(m.contributions, c)
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]contribution.Contribution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]contribution.Contribution, len(m.contributions))
	copy(out, m.contributions)
	return out, nil
}

func (m *MemoryStore) TotalCents(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return contribution.SumCents(m.contributions)
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

const contributionsSchema = `
	CREATE TABLE IF NOT EXISTS contributions (
		seq            BIGSERIAL PRIMARY KEY,
		id             UUID NOT NULL UNIQUE,
		name           TEXT NOT NULL,
		amount_cents   BIGINT NOT NULL CHECK (amount_cents > 0),
		payment_method TEXT NOT NULL DEFAULT '',
		payment_ref    TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL
	)
`

// PostgresStore persists contributions; each Append is a single INSERT so concurrent
// instances never lose a contribution.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, contributionsSchema); err != nil {
		return fmt.Errorf("failed to create contributions table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, c contribution.Contribution) error {
	query := `
		INSERT INTO contributions (id, name, amount_cents, payment_method, payment_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.Exec(ctx, query,
		c.ID,
		c.Name,
		c.AmountCents,
		c.PaymentMethod,
		c.PaymentRef,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contribution: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]contribution.Contribution, error) {
	query := `
		SELECT id, name, amount_cents, payment_method, payment_ref, created_at
		FROM contributions
		ORDER BY seq
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions: %w", err)
	}
	defer rows.Close()

	var out []contribution.Contribution
	for rows.Next() {
		var c contribution.Contribution
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.AmountCents,
			&c.PaymentMethod,
			&c.PaymentRef,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) TotalCents(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0)::BIGINT FROM contributions`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum contributions: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
