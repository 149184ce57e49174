package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trivest/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps Redis with JSON marshalling and the key scheme
// used across the application. A cache miss is never an error for
// callers; they fall through to the database.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Account caching

func (s *CacheService) AccountKey(phone string) string {
	return s.GenerateKey("account", "phone", phone)
}

func (s *CacheService) CacheAccount(ctx context.Context, account *models.Account) error {
	if account == nil {
		return fmt.Errorf("cannot cache nil account")
	}
	return s.Set(ctx, s.AccountKey(account.Phone), account)
}

func (s *CacheService) GetAccount(ctx context.Context, phone string) (*models.Account, bool) {
	var account models.Account
	found, err := s.Get(ctx, s.AccountKey(phone), &account)
	if err != nil || !found {
		return nil, false
	}
	return &account, true
}

func (s *CacheService) InvalidateAccount(ctx context.Context, phone string) {
	_ = s.Delete(ctx, s.AccountKey(phone))
}

// Plan caching

const plansKey = "plans:active"

func (s *CacheService) CachePlans(ctx context.Context, plans []models.Plan) error {
	return s.SetWithTTL(ctx, plansKey, plans, 5*time.Minute)
}

func (s *CacheService) GetPlans(ctx context.Context) ([]models.Plan, bool) {
	var plans []models.Plan
	found, err := s.Get(ctx, plansKey, &plans)
	if err != nil || !found {
		return nil, false
	}
	return plans, true
}

func (s *CacheService) InvalidatePlans(ctx context.Context) {
	_ = s.Delete(ctx, plansKey)
}
