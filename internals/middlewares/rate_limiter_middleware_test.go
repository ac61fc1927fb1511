package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship_backend/internals/constants"
	helper "internship_backend/internals/helpers"
)

const uid = "7d4f3c2e-0000-4000-8000-000000000001"

// windowStore runs the submission window script against an in-process map.
type windowStore struct {
	mu     sync.Mutex
	ttl    map[string]int64
	hits   map[string]int64
	keys   []string
	broken bool
}

var _ redis.Scripter = (*windowStore)(nil)

func newWindowStore() *windowStore {
	return &windowStore{ttl: map[string]int64{}, hits: map[string]int64{}}
}

func (s *windowStore) run(ctx context.Context, keys []string, args ...interface{}) *redis.Cmd {
	cmd := redis.NewCmd(ctx)
	if s.broken {
		cmd.SetErr(errors.New("dial tcp 127.0.0.1:6379: connect: connection refused"))
		return cmd
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := keys[0]
	s.keys = append(s.keys, k)
	s.hits[k]++
	if s.hits[k] == 1 {
		s.ttl[k] = args[0].(int64)
	}
	cmd.SetVal([]interface{}{s.hits[k], s.ttl[k]})
	return cmd
}

func (s *windowStore) Eval(ctx context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return s.run(ctx, keys, args...)
}

func (s *windowStore) EvalSha(ctx context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return s.run(ctx, keys, args...)
}

func (s *windowStore) EvalRO(ctx context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return s.run(ctx, keys, args...)
}

func (s *windowStore) EvalShaRO(ctx context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return s.run(ctx, keys, args...)
}

func (s *windowStore) ScriptExists(ctx context.Context, _ ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceCmd(ctx)
}

func (s *windowStore) ScriptLoad(ctx context.Context, _ string) *redis.StringCmd {
	return redis.NewStringCmd(ctx)
}

func limitedApp(userID string, rl *RedisLimiter) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID)
		return c.Next()
	})
	g := app.Group("/api/u/feedback", SubmissionRateLimiter(rl, 2, time.Minute))
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }
	g.Post("/:stage/intern", ok)
	g.Get("/:stage/intern", ok)
	return app
}

func hit(t *testing.T, app *fiber.App, method string, stage constants.Stage) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, "/api/u/feedback/"+string(stage)+"/intern", nil), -1)
	require.NoError(t, err)
	return resp
}

func TestSubmissionRateLimiterInMemory(t *testing.T) {
	app := limitedApp(uid, nil)

	assert.Equal(t, fiber.StatusNoContent, hit(t, app, http.MethodPost, constants.StageInitial).StatusCode)
	assert.Equal(t, fiber.StatusNoContent, hit(t, app, http.MethodPost, constants.StageInitial).StatusCode)
	assert.Equal(t, fiber.StatusTooManyRequests, hit(t, app, http.MethodPost, constants.StageInitial).StatusCode)

	// other stages keep their own budget
	assert.Equal(t, fiber.StatusNoContent, hit(t, app, http.MethodPost, constants.StageFinal).StatusCode)

	// reads are never throttled
	assert.Equal(t, fiber.StatusNoContent, hit(t, app, http.MethodGet, constants.StageInitial).StatusCode)
}

func TestSubmissionRateLimiterRedis(t *testing.T) {
	store := newWindowStore()
	app := limitedApp(uid, newScriptLimiter(store, "test:"))

	first := hit(t, app, http.MethodPost, constants.StageMidpoint)
	assert.Equal(t, fiber.StatusNoContent, first.StatusCode)
	assert.Equal(t, "2", first.Header.Get(headerRateLimit))
	assert.Equal(t, "1", first.Header.Get(headerRateRemaining))
	assert.Equal(t, "60", first.Header.Get(headerRateReset))

	assert.Equal(t, fiber.StatusNoContent, hit(t, app, http.MethodPost, constants.StageMidpoint).StatusCode)

	third := hit(t, app, http.MethodPost, constants.StageMidpoint)
	assert.Equal(t, fiber.StatusTooManyRequests, third.StatusCode)
	assert.Equal(t, "0", third.Header.Get(headerRateRemaining))
	assert.Equal(t, "60", third.Header.Get(fiber.HeaderRetryAfter))

	assert.Equal(t, fiber.StatusNoContent, hit(t, app, http.MethodPost, constants.StageFinal).StatusCode)
	assert.Equal(t, fiber.StatusNoContent, hit(t, app, http.MethodGet, constants.StageMidpoint).StatusCode)

	assert.Equal(t, []string{
		"test:midpoint:" + uid,
		"test:midpoint:" + uid,
		"test:midpoint:" + uid,
		"test:final:" + uid,
	}, store.keys)
}

func TestSubmissionRateLimiterRedisFailsOpen(t *testing.T) {
	store := newWindowStore()
	store.broken = true
	app := limitedApp(uid, newScriptLimiter(store, "test:"))

	for i := 0; i < 5; i++ {
		assert.Equal(t, fiber.StatusNoContent, hit(t, app, http.MethodPost, constants.StageInitial).StatusCode)
	}
}

func TestRedisLimiterWithoutClientAllows(t *testing.T) {
	var rl *RedisLimiter
	assert.Nil(t, NewRedisLimiter(nil))
	assert.True(t, rl.Hit(context.Background(), "initial:x", 1, time.Minute).Allowed)
}

func TestStageOf(t *testing.T) {
	cases := map[string]constants.Stage{
		"/api/u/feedback/initial/mentor/alice": constants.StageInitial,
		"/api/u/feedback/midpoint/intern":      constants.StageMidpoint,
		"/api/u/feedback/final/intern":         constants.StageFinal,
		"/api/u/feedback/weekly/intern":        "any",
		"/api/u/dashboard":                     "any",
	}
	for path, want := range cases {
		assert.Equal(t, want, stageOf(path), path)
	}
}
