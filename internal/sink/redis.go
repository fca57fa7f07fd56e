package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ehealth-bench/datagen/internal/pipeline"
	"github.com/ehealth-bench/datagen/pkg/config"
	"github.com/ehealth-bench/datagen/pkg/redis"
)

// Redis loads posting lists as sets (<prefix><keyword>) and the statistics
// snapshot as JSON, so a harness can fetch per-keyword result sets without
// parsing the full index file. A previous run under the same prefix is
// flushed first.
type Redis struct {
	client *redis.Client
	cfg    config.RedisConfig
}

// NewRedis creates the Redis sink on an existing client.
func NewRedis(client *redis.Client, cfg config.RedisConfig) *Redis {
	return &Redis{client: client, cfg: cfg}
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Write(ctx context.Context, res *pipeline.Result) error {
	if _, err := r.client.FlushByPattern(ctx, r.cfg.KeyPrefix+"*"); err != nil {
		return fmt.Errorf("flushing previous run: %w", err)
	}

	for _, kw := range res.Index.Keywords() {
		members := make([]interface{}, 0, len(res.Index[kw]))
		for _, docID := range res.Index[kw] {
			members = append(members, docID)
		}
		if err := r.client.SAdd(ctx, r.cfg.KeyPrefix+kw, members...); err != nil {
			return fmt.Errorf("loading posting list %q: %w", kw, err)
		}
	}

	snapshot, err := json.Marshal(res.Statistics)
	if err != nil {
		return fmt.Errorf("marshaling statistics: %w", err)
	}
	if err := r.client.Set(ctx, "dataset:statistics", snapshot, 0); err != nil {
		return fmt.Errorf("storing statistics: %w", err)
	}
	if err := r.client.Set(ctx, "dataset:run_id", res.RunID, 0); err != nil {
		return fmt.Errorf("storing run id: %w", err)
	}
	return nil
}
