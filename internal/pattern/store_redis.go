package pattern

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "taskproof/pkg/domain-errors"
)

// RedisStore persists patterns as Redis hashes with a per-category set
// index. The reinforcement update runs as a Lua script so the read-modify-
// write of usage_count and success_rate is atomic on the server, never a
// blind overwrite from a stale read.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func patternKey(id string) string {
	return "pattern:" + id
}

func categoryKey(category string) string {
	return "patterns:category:" + category
}

// reinforceScript recomputes the running mean server-side. KEYS[1] is the
// pattern hash, ARGV[1] the incoming score in [0,1]. Returns the new usage
// count and the new success rate as a string to preserve precision.
var reinforceScript = redis.NewScript(`
local count = tonumber(redis.call('HGET', KEYS[1], 'usage_count'))
if not count then
  return redis.error_reply('pattern missing')
end
local rate = tonumber(redis.call('HGET', KEYS[1], 'success_rate')) or 0
local score = tonumber(ARGV[1])
local newCount = count + 1
local newRate = (rate * count + score) / newCount
redis.call('HSET', KEYS[1], 'usage_count', newCount, 'success_rate', tostring(newRate))
return {newCount, tostring(newRate)}
`)

func (s *RedisStore) ListByCategory(ctx context.Context, category string) ([]*EvidencePattern, error) {
	ids, err := s.client.SMembers(ctx, categoryKey(category)).Result()
	if err != nil {
		return nil, fmt.Errorf("list pattern ids for %q: %w", category, err)
	}

	out := make([]*EvidencePattern, 0, len(ids))
	for _, id := range ids {
		fields, err := s.client.HGetAll(ctx, patternKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("load pattern %s: %w", id, err)
		}
		if len(fields) == 0 {
			// Index entry without a hash; skip rather than fail the lookup.
			continue
		}
		p, err := patternFromFields(fields)
		if err != nil {
			return nil, fmt.Errorf("decode pattern %s: %w", id, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *RedisStore) Create(ctx context.Context, p *EvidencePattern) error {
	rules, err := json.Marshal(p.Rules)
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}
	examples, err := json.Marshal(p.Examples)
	if err != nil {
		return fmt.Errorf("marshal examples: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, patternKey(p.ID), map[string]any{
		"id":            p.ID,
		"task_category": p.TaskCategory,
		"rules":         string(rules),
		"confidence":    p.Confidence,
		"examples":      string(examples),
		"usage_count":   p.UsageCount,
		"success_rate":  p.SuccessRate,
		"created_at":    p.CreatedAt.Format(time.RFC3339Nano),
	})
	pipe.SAdd(ctx, categoryKey(p.TaskCategory), p.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create pattern %s: %w", p.ID, err)
	}
	return nil
}

func (s *RedisStore) Reinforce(ctx context.Context, patternID string, score float64) (int, float64, error) {
	res, err := reinforceScript.Run(ctx, s.client, []string{patternKey(patternID)}, score).Result()
	if err != nil {
		if err.Error() == "pattern missing" {
			return 0, 0, dErrors.New(dErrors.CodeNotFound, "pattern not found")
		}
		return 0, 0, fmt.Errorf("reinforce pattern %s: %w", patternID, err)
	}

	parts, ok := res.([]interface{})
	if !ok || len(parts) != 2 {
		return 0, 0, fmt.Errorf("reinforce pattern %s: unexpected script reply %v", patternID, res)
	}

	count, ok := parts[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("reinforce pattern %s: unexpected count reply %v", patternID, parts[0])
	}
	rateStr, ok := parts[1].(string)
	if !ok {
		return 0, 0, fmt.Errorf("reinforce pattern %s: unexpected rate reply %v", patternID, parts[1])
	}
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("reinforce pattern %s: parse rate: %w", patternID, err)
	}

	return int(count), rate, nil
}

func patternFromFields(fields map[string]string) (*EvidencePattern, error) {
	p := &EvidencePattern{
		ID:           fields["id"],
		TaskCategory: fields["task_category"],
	}

	if v := fields["rules"]; v != "" {
		if err := json.Unmarshal([]byte(v), &p.Rules); err != nil {
			return nil, fmt.Errorf("rules: %w", err)
		}
	}
	if v := fields["examples"]; v != "" {
		if err := json.Unmarshal([]byte(v), &p.Examples); err != nil {
			return nil, fmt.Errorf("examples: %w", err)
		}
	}

	var err error
	if v := fields["confidence"]; v != "" {
		if p.Confidence, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("confidence: %w", err)
		}
	}
	if v := fields["usage_count"]; v != "" {
		if p.UsageCount, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("usage_count: %w", err)
		}
	}
	if v := fields["success_rate"]; v != "" {
		if p.SuccessRate, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("success_rate: %w", err)
		}
	}
	if v := fields["created_at"]; v != "" {
		if p.CreatedAt, err = time.Parse(time.RFC3339Nano, v); err != nil {
			return nil, fmt.Errorf("created_at: %w", err)
		}
	}

	return p, nil
}
