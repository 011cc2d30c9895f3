// Package app 提供应用程序的初始化和生命周期管理.
package app

import (
	contextPkg "context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appcache "github.com/portafy/portafy/pkg/cache"
	"github.com/portafy/portafy/pkg/configs"
	"github.com/portafy/portafy/pkg/internal/jobs"
	"github.com/portafy/portafy/pkg/internal/router"
	"github.com/portafy/portafy/pkg/internal/storage"
	"github.com/portafy/portafy/pkg/internal/store"
	"github.com/portafy/portafy/pkg/internal/vault"
	"github.com/portafy/portafy/pkg/log"
	"github.com/portafy/portafy/pkg/metrics"
	"github.com/portafy/portafy/pkg/middleware"
	"github.com/portafy/portafy/pkg/scheduler"
	"github.com/portafy/portafy/pkg/tracing"
)

// App 聚合 HTTP 引擎与各子系统的生命周期.
type App struct {
	Engine *gin.Engine

	config   *configs.AppConfig
	storage  *storage.Manager
	sessions *vault.Manager
	sched    *scheduler.Scheduler
}

// NewApp 按配置初始化全部子系统并装配路由.
func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	log.Init()

	// 初始化追踪
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	remote := store.NewRemote(manager.GetDBClient(), manager.GetS3Client(), config.S3.BucketName)
	if err := remote.AutoMigrate(); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	sessions := vault.NewManager(remote, manager.GetKVClient(), manager.GetMQClient())

	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager, sessions); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	sched.Start()

	if !config.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.StorageMiddleware(manager),
		middleware.SessionMiddleware(sessions),
		middleware.SchedulerMiddleware(sched),
	)

	registerRoutes(engine, config, manager)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine:   engine,
		config:   config,
		storage:  manager,
		sessions: sessions,
		sched:    sched,
	}
}

// registerRoutes 装配公开路由与受保护的 API 路由.
func registerRoutes(engine *gin.Engine, config *configs.AppConfig, manager *storage.Manager) {
	// 公开路由：分享链接解析与整体存活检查
	router.RegisterPublicRoutes(engine)
	router.RegisterSwaggerRoute(engine)

	base := engine.Group("/api/v1")
	router.RegisterHealthCheckRoute(base)
	router.RegisterSchedulerRoutes(base)

	api := base.Group("")
	api.Use(middleware.AuthMiddleware(config.Auth))

	if config.RateLimit.Enabled {
		api.Use(middleware.RateLimitMiddleware(config.RateLimit))
	}

	if config.CircuitBreaker.Enabled {
		api.Use(middleware.CircuitBreakerMiddleware(config.CircuitBreaker))
	}

	if kvc := manager.GetKVClient(); kvc != nil {
		api.Use(middleware.CacheMiddleware(middleware.DefaultCacheConfig(appcache.NewCache(kvc))))
	}

	router.RegisterAPIRoutes(api)
}

// Run 启动 HTTP 服务并阻塞至收到退出信号，随后优雅关停各子系统.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:           a.Engine,
		ReadHeaderTimeout: time.Duration(a.config.Server.Timeout) * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Logger().Info().Str("addr", srv.Addr).Msg("http server started")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(contextPkg.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Logger().Info().Msg("shutting down")

	return a.shutdown(srv)
}

// shutdown 依次关停 HTTP 服务、调度器、会话与存储连接.
func (a *App) shutdown(srv *http.Server) error {
	timeout := time.Duration(a.config.Server.Timeout) * time.Second
	ctx, cancel := contextPkg.WithTimeout(contextPkg.Background(), timeout)

	defer cancel()

	var errs []error

	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	// 回收站为写穿模型，此处仅回收空闲会话并发布会话结束事件
	if n := a.sessions.EvictIdle(); n > 0 {
		log.Logger().Info().Int("evicted", n).Msg("sessions evicted on shutdown")
	}

	if err := a.sched.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("scheduler shutdown: %w", err))
	}

	if err := tracing.ShutdownTracer(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
	}

	if err := a.storage.Close(); err != nil {
		errs = append(errs, fmt.Errorf("storage close: %w", err))
	}

	return errors.Join(errs...)
}
