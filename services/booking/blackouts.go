package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusvenue/models"
	"campusvenue/services/scheduling"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const blackoutCacheKey = "blackouts:all"

// RedisBlackoutCache stores the whole blackout list as one JSON value.
type RedisBlackoutCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBlackoutCache(client *redis.Client, ttl time.Duration) BlackoutCache {
	return &RedisBlackoutCache{client: client, ttl: ttl}
}

func (c *RedisBlackoutCache) Get(ctx context.Context) ([]models.BlackoutDate, bool, error) {
	val, err := c.client.Get(ctx, blackoutCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var blackouts []models.BlackoutDate
	if err := json.Unmarshal(val, &blackouts); err != nil {
		return nil, false, fmt.Errorf("corrupt blackout cache entry: %w", err)
	}
	return blackouts, true, nil
}

func (c *RedisBlackoutCache) Set(ctx context.Context, blackouts []models.BlackoutDate) error {
	data, err := json.Marshal(blackouts)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, blackoutCacheKey, data, c.ttl).Err()
}

func (c *RedisBlackoutCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, blackoutCacheKey).Err()
}

// ListBlackouts serves from the cache when it can and repopulates it on a miss.
func (s *DefaultBookingService) ListBlackouts(ctx context.Context) ([]models.BlackoutDate, error) {
	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx)
		if err != nil {
			s.logger().Warn("blackout cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	blackouts, err := s.Blackouts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blackout dates: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, blackouts); err != nil {
			s.logger().Warn("blackout cache write failed", zap.Error(err))
		}
	}
	return blackouts, nil
}

func (s *DefaultBookingService) blackoutSet(ctx context.Context) (scheduling.BlackoutSet, error) {
	blackouts, err := s.ListBlackouts(ctx)
	if err != nil {
		return nil, err
	}
	set := scheduling.NewBlackoutSet()
	for _, b := range blackouts {
		set.Add(b.Date)
	}
	return set, nil
}

func (s *DefaultBookingService) invalidateBlackouts(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.logger().Warn("blackout cache invalidation failed", zap.Error(err))
	}
}

// AddBlackout stores the date in canonical form so membership tests match
// however the date was typed.
func (s *DefaultBookingService) AddBlackout(ctx context.Context, req models.BlackoutRequest) (*models.BlackoutDate, error) {
	day, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	blackout := models.BlackoutDate{
		Date:      day.String(),
		Reason:    strings.TrimSpace(req.Reason),
		CreatedAt: s.now(),
	}
	if err := s.Blackouts.Upsert(ctx, blackout); err != nil {
		return nil, fmt.Errorf("failed to save blackout date: %w", err)
	}
	s.invalidateBlackouts(ctx)
	s.logger().Info("blackout date added", zap.String("date", blackout.Date), zap.String("reason", blackout.Reason))
	return &blackout, nil
}

func (s *DefaultBookingService) RemoveBlackout(ctx context.Context, dateText string) error {
	day, err := scheduling.ParseDate(dateText)
	if err != nil {
		return err
	}
	if err := s.Blackouts.Delete(ctx, day.String()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBlackoutNotFound
		}
		return fmt.Errorf("failed to remove blackout date: %w", err)
	}
	s.invalidateBlackouts(ctx)
	s.logger().Info("blackout date removed", zap.String("date", day.String()))
	return nil
}
