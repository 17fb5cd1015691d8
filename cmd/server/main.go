package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/koopa0/knights-arena/internal/config"
	"github.com/koopa0/knights-arena/internal/game"
	"github.com/koopa0/knights-arena/internal/server"
	"github.com/koopa0/knights-arena/internal/storage"
	"github.com/koopa0/knights-arena/internal/storage/migrations"
	"github.com/koopa0/knights-arena/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置檔案路徑")
	flag.Parse()

	// 載入配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 設定日誌
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, "", false); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Default()

	ctx := context.Background()

	// 連接 Redis（可選，排行榜鏡像）
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("無法連接 Redis，排行榜退回 PostgreSQL", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// 連接 PostgreSQL（可選，成績持久化）
	var pgPool *pgxpool.Pool
	if cfg.Postgres.Enabled {
		pgConfig, err := pgxpool.ParseConfig(cfg.PostgresDSN())
		if err != nil {
			log.Error("解析 PostgreSQL 配置失敗", "error", err)
			os.Exit(1)
		}
		pgConfig.MaxConns = cfg.Postgres.MaxConns
		pgConfig.MinConns = cfg.Postgres.MinConns

		pgPool, err = pgxpool.NewWithConfig(ctx, pgConfig)
		if err != nil {
			log.Error("連接 PostgreSQL 失敗", "error", err)
			os.Exit(1)
		}
		defer pgPool.Close()

		// 執行資料庫遷移
		migrator, err := migrations.New(cfg.MigrationURL(), log)
		if err != nil {
			log.Error("創建遷移管理器失敗", "error", err)
			os.Exit(1)
		}
		if err := migrator.Up(); err != nil {
			log.Error("執行遷移失敗", "error", err)
			os.Exit(1)
		}
		if err := migrator.Close(); err != nil {
			log.Warn("關閉遷移管理器失敗", "error", err)
		}
	}

	// 組裝：註冊表 -> Hub -> 引擎 -> HTTP 處理器
	registry := game.NewRegistry(log)
	hub := server.NewHub(registry, log)

	var store *storage.Store
	var results game.ResultStore
	var leaderboard server.LeaderboardSource
	if pgPool != nil {
		store = storage.NewStore(pgPool, redisClient, log)
		results = store
		leaderboard = store
	}

	engine := game.NewEngine(cfg.Game, registry, hub, results, log)
	hub.Bind(engine)

	handler := server.NewHandler(registry, hub, leaderboard, log)

	// 設定 HTTP 伺服器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// 啟動伺服器
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("starting server",
			slog.Int("port", cfg.Server.Port),
			slog.Bool("postgres", pgPool != nil),
			slog.Bool("redis", redisClient != nil))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}

	case sig := <-shutdown:
		log.Info("shutdown signal received", "signal", sig.String())

		// 給予 30 秒時間完成當前請求
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// 先斷所有 WebSocket 連接，再關 HTTP 伺服器
		hub.Stop()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown server", "error", err)
			if closeErr := srv.Close(); closeErr != nil {
				log.Error("failed to force close server", "error", closeErr)
			}
		}
	}

	log.Info("server stopped")
}
