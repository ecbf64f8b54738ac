package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/kmorten/usage_dashboard/backend/internal/auth"
	"github.com/kmorten/usage_dashboard/backend/internal/config"
	"github.com/kmorten/usage_dashboard/backend/internal/limits"
	"github.com/kmorten/usage_dashboard/backend/internal/observability"
	auditservice "github.com/kmorten/usage_dashboard/backend/internal/services/audit"
	usageservice "github.com/kmorten/usage_dashboard/backend/internal/services/usage"
	"github.com/kmorten/usage_dashboard/backend/internal/store"
)

// Container aggregates runtime dependencies for handlers and services.
type Container struct {
	Config        *config.Config
	DBPool        *pgxpool.Pool
	Redis         *redis.Client
	Store         *store.Store
	Tokens        *auth.TokenManager
	Usage         *usageservice.Service
	Audit         *auditservice.Service
	RateLimiter   *limits.RateLimiter
	Observability *observability.Provider
}

// NewContainer builds a dependency container from the provided primitives.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if pool == nil {
		return nil, fmt.Errorf("db pool is required")
	}
	if redisClient == nil {
		return nil, fmt.Errorf("redis client is required")
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	obsProvider, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("setup observability: %w", err)
	}

	st := store.New(pool)

	container := &Container{
		Config:        cfg,
		DBPool:        pool,
		Redis:         redisClient,
		Store:         st,
		Tokens:        tokens,
		Usage:         usageservice.NewService(st, obsProvider),
		RateLimiter:   limits.NewRateLimiter(redisClient, cfg.RateLimits.RequestsPerMinute),
		Observability: obsProvider,
	}
	if cfg.Audit.Enabled {
		container.Audit = auditservice.NewService(st)
	}

	return container, nil
}
