package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"internship_backend/internals/configs"
	database "internship_backend/internals/databases"
	"internship_backend/internals/helpers/applog"
	"internship_backend/internals/middlewares"
	routes "internship_backend/internals/route"
)

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before serving")
	return cmd
}

// NewApp builds the fiber app with its middleware chain and routes.
func NewApp(db *gorm.DB, rl *middlewares.RedisLimiter) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(requestID())

	middlewares.SetupMiddlewares(app)
	routes.SetupRoutes(app, db, rl)
	return app
}

func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		// keep in line with the database statement_timeout
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// connectRedis returns nil when REDIS_URL is unset or unreachable.
func connectRedis(ctx context.Context) *redis.Client {
	if configs.RedisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(configs.RedisURL)
	if err != nil {
		applog.Warn().Add(applog.Component("redis")).Add(applog.Err(err)).Msg("invalid REDIS_URL, using in-memory limiter")
		return nil
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		applog.Warn().Add(applog.Component("redis")).Add(applog.Err(err)).Msg("redis unreachable, using in-memory limiter")
		_ = client.Close()
		return nil
	}
	return client
}

func runServe(ctx context.Context, migrate bool) error {
	db, err := database.ConnectDB(configs.PostgresDSN())
	if err != nil {
		return err
	}
	defer database.Close(db)
	database.TunePool(db)

	if migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	rdb := connectRedis(ctx)
	if rdb != nil {
		defer rdb.Close()
	}

	app := NewApp(db, middlewares.NewRedisLimiter(rdb))
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	errCh := make(chan error, 1)
	go func() {
		applog.Info().Add(applog.Component("server")).Add(applog.Str("port", configs.Port)).Msg("listening")
		errCh <- app.Listen("0.0.0.0:" + configs.Port)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Info().Add(applog.Component("server")).Msg("shutting down")
	return app.ShutdownWithContext(shutdownCtx)
}
