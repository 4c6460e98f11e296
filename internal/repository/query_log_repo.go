package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"autovest/internal/domain"
)

type QueryLogRepository interface {
	Create(ctx context.Context, entry domain.QueryLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.QueryLog, error)
}

type PgQueryLogRepository struct {
	pool *pgxpool.Pool
}

func NewPgQueryLogRepository(pool *pgxpool.Pool) *PgQueryLogRepository {
	return &PgQueryLogRepository{pool: pool}
}

func (r *PgQueryLogRepository) Create(ctx context.Context, entry domain.QueryLog) error {
	const query = `
		INSERT INTO query_logs (id, query, answer, used_fallback, matched_fact_count,
			risk_table_included, projection_included, subject, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var subject interface{}
	if entry.Subject != "" {
		subject = entry.Subject
	}

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Query,
		entry.Answer,
		entry.UsedFallback,
		entry.MatchedFactCount,
		entry.RiskTableIncluded,
		entry.ProjectionIncluded,
		subject,
		entry.CreatedAt,
	)
	return err
}

func (r *PgQueryLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.QueryLog, error) {
	const query = `
		SELECT id, query, answer, used_fallback, matched_fact_count,
			risk_table_included, projection_included, subject, created_at
		FROM query_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.QueryLog
	for rows.Next() {
		var e domain.QueryLog
		var subject *string

		err = rows.Scan(
			&e.ID,
			&e.Query,
			&e.Answer,
			&e.UsedFallback,
			&e.MatchedFactCount,
			&e.RiskTableIncluded,
			&e.ProjectionIncluded,
			&subject,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if subject != nil {
			e.Subject = *subject
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
