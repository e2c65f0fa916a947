// Package rediscache decorates company settings repositories with a
// cache-aside layer in Redis. Settings change rarely and are read on every
// e-Way Bill and HRA calculation.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gstkit/internal/config"
	"gstkit/internal/domain"
	"gstkit/internal/port"
)

const keyPrefix = "gstkit:"

// Cache reads and writes JSON values under a common prefix. Redis failures
// are logged and treated as misses so the backing store stays authoritative.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    *zap.Logger
}

// NewClient connects to the configured Redis. It returns a nil client when no
// address is configured.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (redis.UniversalClient, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

// New creates a Cache. A nil client disables caching.
func New(client redis.UniversalClient, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{client: client, ttl: ttl, log: log}
}

func (c *Cache) get(ctx context.Context, key string, dst any) bool {
	if c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, v any) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the cached settings of a company.
func (c *Cache) Invalidate(ctx context.Context, company string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keyPrefix+gstAccountsKey(company), keyPrefix+payrollComponentsKey(company)).Err()
}

func gstAccountsKey(company string) string {
	return fmt.Sprintf("gst_accounts:%s", company)
}

func payrollComponentsKey(company string) string {
	return fmt.Sprintf("payroll_components:%s", company)
}

type gstSettings struct {
	next  port.GSTSettingsRepository
	cache *Cache
}

// NewGSTSettingsRepo caches ListAccounts of next.
func NewGSTSettingsRepo(next port.GSTSettingsRepository, cache *Cache) port.GSTSettingsRepository {
	return &gstSettings{next: next, cache: cache}
}

func (r *gstSettings) ListAccounts(ctx context.Context, company string) ([]domain.GSTAccount, error) {
	var accounts []domain.GSTAccount
	if r.cache.get(ctx, gstAccountsKey(company), &accounts) {
		return accounts, nil
	}
	accounts, err := r.next.ListAccounts(ctx, company)
	if err != nil {
		return nil, err
	}
	r.cache.set(ctx, gstAccountsKey(company), accounts)
	return accounts, nil
}

type payroll struct {
	port.PayrollRepository
	cache *Cache
}

// NewPayrollRepo caches GetComponents of next; other methods pass through.
func NewPayrollRepo(next port.PayrollRepository, cache *Cache) port.PayrollRepository {
	return &payroll{PayrollRepository: next, cache: cache}
}

func (r *payroll) GetComponents(ctx context.Context, company string) (*domain.PayrollComponents, error) {
	var c domain.PayrollComponents
	if r.cache.get(ctx, payrollComponentsKey(company), &c) {
		return &c, nil
	}
	got, err := r.PayrollRepository.GetComponents(ctx, company)
	if err != nil {
		return nil, err
	}
	r.cache.set(ctx, payrollComponentsKey(company), got)
	return got, nil
}
