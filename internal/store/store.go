package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store executes the SQL read and write paths over the usage database.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// UsageEvent mirrors a row of the usage_events table.
type UsageEvent struct {
	ID         uuid.UUID
	UserID     string
	OccurredAt time.Time
	Tokens     int64
	Activity   string
}

// UsageQueryParams filters usage rows by owner and inclusive timestamp range.
// TruncUnit is the date_trunc unit applied to occurred_at ("day", "week",
// "month"); truncation happens in UTC.
type UsageQueryParams struct {
	UserID    string
	Start     time.Time
	End       time.Time
	TruncUnit string
}

// SeriesRow is one time bucket with its summed token count.
type SeriesRow struct {
	Period      time.Time
	TotalTokens int64
}

// BreakdownRow is one (bucket, activity) pair with its summed token count.
type BreakdownRow struct {
	Period   time.Time
	Activity string
	Tokens   int64
}

const usageSeriesSQL = `
SELECT date_trunc($1, occurred_at AT TIME ZONE 'UTC')::date AS period,
       SUM(tokens)::bigint AS total_tokens
FROM usage_events
WHERE user_id = $2
  AND occurred_at >= $3
  AND occurred_at <= $4
GROUP BY period
ORDER BY period ASC`

// UsageSeries returns per-bucket token totals for one user, ascending by
// bucket start. Buckets without rows are absent from the result.
func (s *Store) UsageSeries(ctx context.Context, params UsageQueryParams) ([]SeriesRow, error) {
	rows, err := s.pool.Query(ctx, usageSeriesSQL, params.TruncUnit, params.UserID, params.Start, params.End)
	if err != nil {
		return nil, fmt.Errorf("query usage series: %w", err)
	}
	defer rows.Close()

	var series []SeriesRow
	for rows.Next() {
		var row SeriesRow
		if err := rows.Scan(&row.Period, &row.TotalTokens); err != nil {
			return nil, fmt.Errorf("scan usage series row: %w", err)
		}
		series = append(series, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage series: %w", err)
	}
	return series, nil
}

const usageBreakdownSQL = `
SELECT date_trunc($1, occurred_at AT TIME ZONE 'UTC')::date AS period,
       activity,
       SUM(tokens)::bigint AS tokens
FROM usage_events
WHERE user_id = $2
  AND occurred_at >= $3
  AND occurred_at <= $4
GROUP BY period, activity
ORDER BY period ASC, activity ASC`

// UsageBreakdown returns per-bucket, per-activity token totals for one user
// over the same filtered set as UsageSeries.
func (s *Store) UsageBreakdown(ctx context.Context, params UsageQueryParams) ([]BreakdownRow, error) {
	rows, err := s.pool.Query(ctx, usageBreakdownSQL, params.TruncUnit, params.UserID, params.Start, params.End)
	if err != nil {
		return nil, fmt.Errorf("query usage breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []BreakdownRow
	for rows.Next() {
		var row BreakdownRow
		if err := rows.Scan(&row.Period, &row.Activity, &row.Tokens); err != nil {
			return nil, fmt.Errorf("scan usage breakdown row: %w", err)
		}
		breakdown = append(breakdown, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage breakdown: %w", err)
	}
	return breakdown, nil
}

const insertUsageEventSQL = `
INSERT INTO usage_events (user_id, occurred_at, tokens, activity)
VALUES ($1, $2, $3, $4)
RETURNING id`

// InsertUsageEvent records a single usage event and returns its id. Ingestion
// proper lives outside this service; this write path backs seeding and tests.
func (s *Store) InsertUsageEvent(ctx context.Context, event UsageEvent) (uuid.UUID, error) {
	if event.Tokens < 0 {
		return uuid.Nil, errors.New("tokens must be >= 0")
	}
	var id pgtype.UUID
	err := s.pool.QueryRow(ctx, insertUsageEventSQL,
		event.UserID, event.OccurredAt, event.Tokens, event.Activity,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert usage event: %w", err)
	}
	return uuidFromPg(id)
}

func uuidFromPg(id pgtype.UUID) (uuid.UUID, error) {
	if !id.Valid {
		return uuid.Nil, errors.New("invalid uuid")
	}
	return uuid.FromBytes(id.Bytes[:])
}
