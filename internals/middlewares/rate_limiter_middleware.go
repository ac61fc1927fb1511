package middlewares

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"

	"internship_backend/internals/constants"
	helper "internship_backend/internals/helpers"
)

// Global limiter: every API request, per IP.
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	})
}

// Returns {hits in window, ms until the window resets}.
const submitWindowScript = `
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {hits, ttl}
`

const submitKeyPrefix = "internship:feedback_submit:"

// Same names fiber's limiter uses.
const (
	headerRateLimit     = "X-RateLimit-Limit"
	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateReset     = "X-RateLimit-Reset"
)

// RedisLimiter keeps submission windows in Redis so every instance of the
// service shares one budget per user and stage.
type RedisLimiter struct {
	rdb    redis.Scripter
	script *redis.Script
	prefix string
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return newScriptLimiter(client, submitKeyPrefix)
}

func newScriptLimiter(rdb redis.Scripter, prefix string) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, script: redis.NewScript(submitWindowScript), prefix: prefix}
}

// Window is the outcome of one hit against a submission budget.
type Window struct {
	Limit     int
	Remaining int
	ResetIn   time.Duration
	Allowed   bool
}

// Hit counts one submission for key. Redis errors fail open.
func (l *RedisLimiter) Hit(ctx context.Context, key string, limit int, window time.Duration) Window {
	open := Window{Limit: limit, Remaining: limit, ResetIn: window, Allowed: true}
	if l == nil || l.rdb == nil || key == "" || limit <= 0 || window <= 0 {
		return open
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	res, err := l.script.Run(ctx, l.rdb, []string{l.prefix + key}, ttl, limit).Int64Slice()
	if err != nil || len(res) != 2 {
		return open
	}

	hits := int(res[0])
	w := Window{
		Limit:     limit,
		Remaining: limit - hits,
		ResetIn:   time.Duration(res[1]) * time.Millisecond,
		Allowed:   hits <= limit,
	}
	if w.Remaining < 0 {
		w.Remaining = 0
	}
	return w
}

// submitKey is "<stage>:<user>", falling back to the client IP for anonymous
// callers. Paths outside a known stage share the "any" bucket.
func submitKey(c *fiber.Ctx) string {
	who, _ := c.Locals(helper.LocUserID).(string)
	if who == "" {
		who = c.IP()
	}
	return string(stageOf(c.Path())) + ":" + who
}

func stageOf(path string) constants.Stage {
	_, rest, ok := strings.Cut(path, "/feedback/")
	if !ok {
		return "any"
	}
	seg, _, _ := strings.Cut(rest, "/")
	for _, st := range constants.Stages {
		if string(st) == seg {
			return st
		}
	}
	return "any"
}

func setWindowHeaders(c *fiber.Ctx, w Window) {
	reset := int(w.ResetIn.Round(time.Second) / time.Second)
	c.Set(headerRateLimit, strconv.Itoa(w.Limit))
	c.Set(headerRateRemaining, strconv.Itoa(w.Remaining))
	c.Set(headerRateReset, strconv.Itoa(reset))
	if !w.Allowed {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(reset))
	}
}

// SubmissionRateLimiter throttles feedback submissions per user and stage. With
// a Redis limiter the budget is shared across instances; otherwise fiber's
// in-memory limiter is used.
func SubmissionRateLimiter(rl *RedisLimiter, max int, window time.Duration) fiber.Handler {
	tooMany := func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusTooManyRequests, "Too many submissions. Please wait a moment.")
	}

	if rl == nil {
		return limiter.New(limiter.Config{
			Max:          max,
			Expiration:   window,
			KeyGenerator: submitKey,
			Next: func(c *fiber.Ctx) bool {
				return c.Method() != fiber.MethodPost
			},
			LimitReached: tooMany,
		})
	}

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		w := rl.Hit(c.UserContext(), submitKey(c), max, window)
		setWindowHeaders(c, w)
		if !w.Allowed {
			return tooMany(c)
		}
		return c.Next()
	}
}
