package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/frankieli/casino_engine/internal/modules/lottery/domain"
)

const overrideKey = "lottery_override"

// ResultRepository implements domain.ResultRepository using Redis
type ResultRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewResultRepository creates a new Redis result repository
func NewResultRepository(rdb *redis.Client) *ResultRepository {
	return &ResultRepository{
		rdb: rdb,
		ttl: 24 * time.Hour,
	}
}

// ClaimSettlement writes the calculating marker with SETNX; exactly one
// caller across all instances gets true.
func (r *ResultRepository) ClaimSettlement(ctx context.Context, roundID string) (bool, error) {
	key := fmt.Sprintf("lottery_claim:%s", roundID)
	return r.rdb.SetNX(ctx, key, "1", r.ttl).Result()
}

// SaveResult stores the settled result
func (r *ResultRepository) SaveResult(ctx context.Context, result *domain.GameRound) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("lottery_result:%s", result.RoundID)
	return r.rdb.Set(ctx, key, data, r.ttl).Err()
}

// GetResult returns the settled result
func (r *ResultRepository) GetResult(ctx context.Context, roundID string) (*domain.GameRound, error) {
	key := fmt.Sprintf("lottery_result:%s", roundID)
	data, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrRoundNotSettled
	}
	if err != nil {
		return nil, err
	}

	var result domain.GameRound
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetOverride forces the next settled round's digit
func (r *ResultRepository) SetOverride(ctx context.Context, digit int) error {
	return r.rdb.Set(ctx, overrideKey, digit, 0).Err()
}

// PopOverride atomically consumes the forced digit, if set
func (r *ResultRepository) PopOverride(ctx context.Context) (int, bool, error) {
	data, err := r.rdb.GetDel(ctx, overrideKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	digit, err := strconv.Atoi(data)
	if err != nil {
		return 0, false, fmt.Errorf("malformed lottery override %q: %w", data, err)
	}
	return digit, true, nil
}
