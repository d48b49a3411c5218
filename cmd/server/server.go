package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmtable/sheet-api/internal/auth"
	"github.com/dmtable/sheet-api/internal/config"
	"github.com/dmtable/sheet-api/internal/handlers/apiv1"
	orchestrator "github.com/dmtable/sheet-api/internal/orchestrators/sheet"
	"github.com/dmtable/sheet-api/internal/pkg/idgen"
	"github.com/dmtable/sheet-api/internal/redis"
	"github.com/dmtable/sheet-api/internal/repositories/character"
	"github.com/dmtable/sheet-api/internal/repositories/template"
	"github.com/dmtable/sheet-api/internal/repositories/user"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the sheet API HTTP server with all configured services.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	setupLogging(cfg.LogLevel)

	redisClient, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	if err := redisClient.Ping(cmd.Context()).Err(); err != nil {
		return err
	}

	charRepo, err := character.NewRedis(&character.RedisConfig{Client: redisClient})
	if err != nil {
		return err
	}
	tmplRepo, err := template.NewRedis(&template.RedisConfig{Client: redisClient})
	if err != nil {
		return err
	}
	userRepo, err := user.NewRedis(&user.RedisConfig{Client: redisClient})
	if err != nil {
		return err
	}

	orch, err := orchestrator.New(&orchestrator.Config{
		CharacterRepo: charRepo,
		TemplateRepo:  tmplRepo,
		UserRepo:      userRepo,
		DMUserIDs:     cfg.DMUserIDs,
	})
	if err != nil {
		return err
	}

	handler, err := apiv1.New(&apiv1.Config{Service: orch})
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(apiv1.RequestID(idgen.NewUUID("req")))
	api.Use(apiv1.AccessLog())
	api.Use(auth.Middleware(auth.Config{
		BotToken: cfg.BotToken,
		Disabled: cfg.AuthDisabled,
		Resolver: orch,
	}))
	handler.Register(api)

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", cfg.Address(), "auth_disabled", cfg.AuthDisabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})))
}
