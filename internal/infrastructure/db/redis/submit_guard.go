package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmitGuard rejects repeated form submissions within a window.
// Key format: lawbot:submit:<session_id>:<form>:<fingerprint>
type SubmitGuard struct {
	client *redis.Client
	window time.Duration
}

func NewSubmitGuard(client *redis.Client, window time.Duration) *SubmitGuard {
	return &SubmitGuard{client: client, window: window}
}

// First records the submission and reports whether it is the first one seen
// inside the window.
func (g *SubmitGuard) First(ctx context.Context, sessionID, form, fingerprint string) (bool, error) {
	key := fmt.Sprintf("lawbot:submit:%s:%s:%s", sessionID, form, fingerprint)
	ok, err := g.client.SetNX(ctx, key, "1", g.window).Result()
	if err != nil {
		return false, fmt.Errorf("submit guard: %w", err)
	}
	return ok, nil
}
