package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// leaderboardKey is the sorted set holding each member's best round score.
const leaderboardKey = "mathematico_leaderboard"

// LeaderboardEntry is one row of the best-score ranking.
type LeaderboardEntry struct {
	Member string `json:"member"`
	Score  int    `json:"score"`
}

// SubmitScore records a finished round score for member, keeping only the
// member's best score (ZADD GT never lowers an existing entry).
func SubmitScore(ctx context.Context, member string, score int) error {
	err := Rdb.ZAddGT(ctx, leaderboardKey, redis.Z{
		Score:  float64(score),
		Member: member,
	}).Err()
	if err != nil {
		return fmt.Errorf("zadd leaderboard: %w", err)
	}
	return nil
}

// TopScores returns the best n entries, highest first.
func TopScores(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	zs, err := Rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange leaderboard: %w", err)
	}
	entries := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		entries = append(entries, LeaderboardEntry{
			Member: member,
			Score:  int(z.Score),
		})
	}
	return entries, nil
}
