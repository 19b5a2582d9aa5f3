package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"estates/internal/models"

	"github.com/redis/go-redis/v9"
)

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

// Base operations

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

// Get loads a cached value into dest. The bool reports a cache hit.
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

// GenerateKey builds the canonical cache key for an entity lookup.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	keys := []string{
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	}
	for _, key := range keys {
		if err := s.Set(ctx, key, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	hit, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, redis.Nil
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, user *models.User) error {
	return s.Delete(ctx,
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	)
}

// Tenant caching

func (s *CacheService) CacheTenant(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return errors.New("cannot cache nil tenant")
	}
	return s.Set(ctx, s.GenerateKey("tenant", "id", tenant.ID), tenant)
}

func (s *CacheService) GetTenant(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	hit, err := s.Get(ctx, s.GenerateKey("tenant", "id", id), &tenant)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, redis.Nil
	}
	return &tenant, nil
}

func (s *CacheService) InvalidateTenant(ctx context.Context, id uint) error {
	return s.Delete(ctx, s.GenerateKey("tenant", "id", id))
}

// Maintenance

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
