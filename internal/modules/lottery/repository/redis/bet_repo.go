// Package redis provides Redis-backed lottery repositories.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/frankieli/casino_engine/internal/modules/lottery/domain"
)

// BetRepository implements domain.BetRepository using Redis
type BetRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBetRepository creates a new Redis bet repository
func NewBetRepository(rdb *redis.Client) *BetRepository {
	return &BetRepository{
		rdb: rdb,
		ttl: 24 * time.Hour, // keep round data for a day
	}
}

func closedKey(roundID string) string {
	return fmt.Sprintf("lottery_closed:%s", roundID)
}

// SaveBet saves a bet. The write is guarded by a WATCH on the round's close
// marker: a settler closing the round mid-save aborts the transaction, so no
// bet can land after the settler's read and quietly miss evaluation.
func (r *BetRepository) SaveBet(ctx context.Context, bet *domain.Bet) error {
	data, err := json.Marshal(bet)
	if err != nil {
		return err
	}

	err = r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		if _, err := tx.Get(ctx, closedKey(bet.RoundID)).Result(); err == nil {
			return domain.ErrRoundClosed
		} else if err != redis.Nil {
			return err
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			// Bet data lives in a per-round hash keyed by bet ID.
			dataKey := fmt.Sprintf("lottery_bets:%s", bet.RoundID)
			pipe.HSet(ctx, dataKey, bet.BetID, data)
			pipe.Expire(ctx, dataKey, r.ttl)

			// Per-user index so a player can read back their own staged bets.
			indexKey := fmt.Sprintf("lottery_user_bets:%s:%d", bet.RoundID, bet.UserID)
			pipe.RPush(ctx, indexKey, bet.BetID)
			pipe.Expire(ctx, indexKey, r.ttl)
			return nil
		})
		return err
	}, closedKey(bet.RoundID))

	if err == redis.TxFailedErr {
		// The only writer of the close marker is the settler.
		return domain.ErrRoundClosed
	}
	return err
}

// CloseRound stops bet intake for the round
func (r *BetRepository) CloseRound(ctx context.Context, roundID string) error {
	return r.rdb.Set(ctx, closedKey(roundID), "1", r.ttl).Err()
}

// GetBets retrieves all bets for a round
func (r *BetRepository) GetBets(ctx context.Context, roundID string) ([]*domain.Bet, error) {
	dataKey := fmt.Sprintf("lottery_bets:%s", roundID)
	dataMap, err := r.rdb.HGetAll(ctx, dataKey).Result()
	if err != nil {
		return nil, err
	}

	bets := make([]*domain.Bet, 0, len(dataMap))
	for _, data := range dataMap {
		var bet domain.Bet
		if err := json.Unmarshal([]byte(data), &bet); err != nil {
			continue
		}
		bets = append(bets, &bet)
	}
	return bets, nil
}

// GetUserBets retrieves all bets for a user in a round
func (r *BetRepository) GetUserBets(ctx context.Context, roundID string, userID int64) ([]*domain.Bet, error) {
	indexKey := fmt.Sprintf("lottery_user_bets:%s:%d", roundID, userID)
	betIDs, err := r.rdb.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(betIDs) == 0 {
		return []*domain.Bet{}, nil
	}

	dataKey := fmt.Sprintf("lottery_bets:%s", roundID)
	dataList, err := r.rdb.HMGet(ctx, dataKey, betIDs...).Result()
	if err != nil {
		return nil, err
	}

	bets := make([]*domain.Bet, 0, len(dataList))
	for _, data := range dataList {
		if data == nil {
			continue
		}
		if strData, ok := data.(string); ok {
			var bet domain.Bet
			if err := json.Unmarshal([]byte(strData), &bet); err != nil {
				continue
			}
			bets = append(bets, &bet)
		}
	}
	return bets, nil
}

// ClearBets clears all bets for a round
func (r *BetRepository) ClearBets(ctx context.Context, roundID string) error {
	// Per-user indexes expire via TTL; deleting them all needs a scan.
	return r.rdb.Del(ctx, fmt.Sprintf("lottery_bets:%s", roundID)).Err()
}
