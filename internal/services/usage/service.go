package usage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kmorten/usage_dashboard/backend/internal/store"
	"github.com/kmorten/usage_dashboard/backend/internal/timeutil"
)

var (
	ErrInvalidGranularity = errors.New("invalid timeframe")
	ErrInvalidRange       = timeutil.ErrInvalidRange
	ErrDataAccess         = errors.New("usage store unavailable")
)

// Granularity selects the bucket width for aggregation. Buckets are computed
// in UTC; weeks start Monday (ISO) and months start on the 1st. These
// conventions are fixed, not configurable.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity maps the wire timeframe value onto a Granularity. An empty
// value defaults to daily; anything unrecognized is ErrInvalidGranularity.
func ParseGranularity(value string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "daily":
		return GranularityDaily, nil
	case "weekly":
		return GranularityWeekly, nil
	case "monthly":
		return GranularityMonthly, nil
	default:
		return "", ErrInvalidGranularity
	}
}

// TruncUnit returns the SQL date_trunc unit for the granularity.
func (g Granularity) TruncUnit() string {
	switch g {
	case GranularityWeekly:
		return "week"
	case GranularityMonthly:
		return "month"
	default:
		return "day"
	}
}

// Queries is the narrow read surface the aggregator needs from the store.
type Queries interface {
	UsageSeries(ctx context.Context, params store.UsageQueryParams) ([]store.SeriesRow, error)
	UsageBreakdown(ctx context.Context, params store.UsageQueryParams) ([]store.BreakdownRow, error)
}

// QueryObserver receives timing for each aggregate query pair. Optional.
type QueryObserver interface {
	RecordUsageQuery(granularity string, duration time.Duration)
}

// Service computes per-user token usage series and activity breakdowns.
type Service struct {
	queries  Queries
	observer QueryObserver
}

func NewService(queries Queries, observer QueryObserver) *Service {
	return &Service{queries: queries, observer: observer}
}

// Request scopes an aggregation to one user over an inclusive date range.
// UserID always comes from the verified caller, never from request input.
type Request struct {
	UserID      string
	Range       timeutil.Range
	Granularity Granularity
}

// SeriesPoint is one bucket in the usage series, keyed by the bucket's start
// date.
type SeriesPoint struct {
	Period      string `json:"period"`
	TotalTokens int64  `json:"total_tokens"`
}

// Result carries the bucketed series plus the per-bucket activity breakdown.
// Series is ascending by period; Breakdowns holds entries only for periods
// present in Series, and within each period the activity sums add up to that
// period's total.
type Result struct {
	Series     []SeriesPoint               `json:"data"`
	Breakdowns map[string]map[string]int64 `json:"breakdowns"`
}

// Aggregate runs the two grouped sums over the identical filtered event set
// and shapes the response. Buckets with no events are absent from the result.
func (s *Service) Aggregate(ctx context.Context, req Request) (Result, error) {
	if s == nil || s.queries == nil {
		return Result{}, errors.New("usage service not initialized")
	}
	granularity, err := ParseGranularity(string(req.Granularity))
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(req.UserID) == "" {
		return Result{}, errors.New("scope user id required")
	}

	params := store.UsageQueryParams{
		UserID:    req.UserID,
		Start:     req.Range.Start(),
		End:       req.Range.End(),
		TruncUnit: granularity.TruncUnit(),
	}

	started := time.Now()
	seriesRows, err := s.queries.UsageSeries(ctx, params)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDataAccess, err)
	}
	breakdownRows, err := s.queries.UsageBreakdown(ctx, params)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDataAccess, err)
	}
	if s.observer != nil {
		s.observer.RecordUsageQuery(string(granularity), time.Since(started))
	}

	result := Result{
		Series:     make([]SeriesPoint, 0, len(seriesRows)),
		Breakdowns: make(map[string]map[string]int64, len(seriesRows)),
	}
	buckets := make(map[string]struct{}, len(seriesRows))
	for _, row := range seriesRows {
		period := timeutil.FormatDate(row.Period)
		result.Series = append(result.Series, SeriesPoint{
			Period:      period,
			TotalTokens: row.TotalTokens,
		})
		buckets[period] = struct{}{}
	}

	// Both queries read the same filtered set, so every breakdown bucket has
	// a series entry; skip anything else rather than invent a bucket.
	for _, row := range breakdownRows {
		period := timeutil.FormatDate(row.Period)
		if _, ok := buckets[period]; !ok {
			continue
		}
		activities := result.Breakdowns[period]
		if activities == nil {
			activities = make(map[string]int64)
			result.Breakdowns[period] = activities
		}
		activities[row.Activity] += row.Tokens
	}

	return result, nil
}
