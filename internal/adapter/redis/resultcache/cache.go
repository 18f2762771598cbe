package resultcache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/blake2b"

	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	"github.com/Mihailob5017/codegames/internal/core/ports/secondary"
	"github.com/Mihailob5017/codegames/internal/domain"
)

const (
	resultKeyPrefix = "grading:result:"
	defaultTTL      = 10 * time.Minute
)

var _ secondary.ResultCache = (*ResultCache)(nil)

// ResultCache keeps grading results in Redis keyed by problem, language and a
// digest of the source code together with the test cases it was graded against
type ResultCache struct {
	redisClient *redis.Client
	logger      primary.Logger
	ttl         time.Duration
}

func NewResultCache(redisClient *redis.Client, logger primary.Logger, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ResultCache{
		redisClient: redisClient,
		logger:      logger,
		ttl:         ttl,
	}
}

// Key is the Redis key for a (problem, language, code) triple. The digest also
// covers every test case field that affects grading, so editing a problem's
// cases never serves a result graded against the old ones.
func Key(problemID string, language domain.Language, code string, cases []*domain.TestCase) string {
	h, _ := blake2b.New256(nil)
	writeField(h, code)
	for _, tc := range cases {
		writeField(h, tc.ID.String())
		writeField(h, tc.Input)
		writeField(h, tc.ExpectedOutput)
		writeField(h, strconv.FormatBool(tc.IsHidden))
		writeField(h, strconv.Itoa(tc.TimeLimitMs()))
	}
	return fmt.Sprintf("%s%s:%s:%s", resultKeyPrefix, problemID, language, hex.EncodeToString(h.Sum(nil)))
}

// writeField length-prefixes s so adjacent fields cannot run into each other
func writeField(w io.Writer, s string) {
	_, _ = fmt.Fprintf(w, "%d:%s", len(s), s)
}

func (c *ResultCache) GetResult(ctx context.Context, problemID string, language domain.Language, code string, cases []*domain.TestCase) (*domain.GradingResult, error) {
	data, err := c.redisClient.Get(ctx, Key(problemID, language, code, cases)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached result: %w", err)
	}

	var result domain.GradingResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}
	return &result, nil
}

func (c *ResultCache) SaveResult(ctx context.Context, problemID string, language domain.Language, code string, cases []*domain.TestCase, result *domain.GradingResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	key := Key(problemID, language, code, cases)
	if err := c.redisClient.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}
	c.logger.Debug("Cached grading result", "key", key, "ttl", c.ttl)
	return nil
}
