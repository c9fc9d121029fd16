// Package app 组装一个 surface 进程：配置 → 日志 → DB → 缓存 → 服务 → 限流器 → 路由 → HTTP。
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"

	"storefront-gateway/internal/core/cache"
	"storefront-gateway/internal/core/config"
	"storefront-gateway/internal/core/database"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/server"
	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/ratelimit"
	"storefront-gateway/internal/repo"
	"storefront-gateway/internal/service"
	"storefront-gateway/internal/surface"
	"storefront-gateway/internal/transport/http/handler"
	"storefront-gateway/internal/transport/http/router"
)

const shutdownGrace = 10 * time.Second

type App struct {
	Name    surface.Name
	Engine  *gin.Engine
	Server  *http.Server
	Limiter *ratelimit.Limiter

	log   *zap.Logger
	db    *gorm.DB
	cache *cache.Cache
}

// Run 进程入口：阻塞到 SIGINT/SIGTERM，然后优雅关闭
func Run(name surface.Name) error {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	var log *zap.Logger
	var flush func()
	if cfg.Log.File != "" {
		log, flush = logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Filename:   cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
	} else {
		log, flush = logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	defer flush()
	log = log.With(zap.String("surface", string(name)))

	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := New(ctx, cfg, name, log)
	if err != nil {
		log.Error("bootstrap failed", zap.Error(err))
		return err
	}
	defer a.Close()

	log.Info(string(name)+" api starting", zap.String("addr", a.Server.Addr))
	return server.Serve(ctx, a.Server, log, shutdownGrace)
}

// New 构建全部依赖；限流器的清理协程随 ctx 结束
func New(ctx context.Context, cfg *config.Config, name surface.Name, log *zap.Logger) (*App, error) {
	surf, err := surface.ByName(name)
	if err != nil {
		return nil, err
	}
	listen := cfg.App.External
	if name == surface.NameInternal {
		listen = cfg.App.Internal
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                log,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	a := &App{Name: name, log: log, db: db}

	if cfg.DB.AutoMigrate {
		if err := repo.Migrate(db); err != nil {
			a.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		log.Info("automigrate done")
	}

	store := repo.NewStore(db)
	pages := domain.PageLimits{Default: cfg.Pagination.DefaultLimit, Max: cfg.Pagination.MaxLimit}

	var popts []service.ProductOption
	if cfg.Redis.Addr != "" {
		a.cache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := a.cache.Ping(pctx); err != nil {
			// 缓存不可用时读请求直接回源，不阻止启动
			log.Warn("redis unreachable, product reads go to the store", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancel()
		popts = append(popts, service.WithCache(a.cache, time.Duration(cfg.Redis.ProductTTLSec)*time.Second))
	}

	svc := handler.Services{
		Users:    service.NewUserService(store, pages),
		Products: service.NewProductService(store, pages, popts...),
		Orders:   service.NewOrderService(store, pages),
	}

	a.Limiter = ratelimit.New(ratelimit.WithCleanupEvery(time.Duration(cfg.RateLimit.CleanupEverySec) * time.Second))
	a.Limiter.StartJanitor(ctx)

	a.Engine, err = router.New(router.Deps{
		Log:        log,
		Surface:    surf,
		Handlers:   handler.New(name, svc),
		Limiter:    a.Limiter,
		StoreSlots: semaphore.NewWeighted(int64(cfg.Store.MaxConcurrent)),
		Options: router.Options{
			CORSOrigin:     cfg.App.CORSOrigin,
			TrustedProxies: cfg.App.TrustedProxies,
			MaxBodyBytes:   cfg.Store.MaxBodyBytes,
			RequestTimeout: time.Duration(cfg.Store.RequestTimeoutSec) * time.Second,
			GlobalRPS:      cfg.RateLimit.GlobalRPS,
			GlobalBurst:    cfg.RateLimit.GlobalBurst,
		},
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build router: %w", err)
	}

	a.Server = server.BuildServer(server.Addr(listen.Host, listen.Port), a.Engine,
		listen.ReadTimeout(), listen.WriteTimeout(), listen.IdleTimeout())
	if el, err := logger.ToStdLogger(log, zapcore.WarnLevel); err == nil {
		a.Server.ErrorLog = el
	}
	return a, nil
}

// Close 释放 DB 与 redis 连接
func (a *App) Close() {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Warn("close resources", zap.Error(err))
	}
}
