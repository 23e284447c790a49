package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/eduhub/backend/api/handler"
	"github.com/eduhub/backend/internal/config"
	"github.com/eduhub/backend/internal/infrastructure/buffer"
	"github.com/eduhub/backend/internal/infrastructure/gemini"
	"github.com/eduhub/backend/internal/infrastructure/monitor"
	pgInfra "github.com/eduhub/backend/internal/infrastructure/postgres"
	redisInfra "github.com/eduhub/backend/internal/infrastructure/redis"
	"github.com/eduhub/backend/internal/middleware"
	"github.com/eduhub/backend/internal/router"
	"github.com/eduhub/backend/internal/services"
	"github.com/eduhub/backend/internal/services/lifecycle"
	"github.com/eduhub/backend/pkg/httpcontext"
	"github.com/eduhub/backend/pkg/logger"
	"github.com/eduhub/backend/repository/postgres"
	redisRepo "github.com/eduhub/backend/repository/redis"
	advisorUC "github.com/eduhub/backend/usecase/advisor"
	dashUC "github.com/eduhub/backend/usecase/dashboard"
	focusUC "github.com/eduhub/backend/usecase/focus"
	medUC "github.com/eduhub/backend/usecase/medication"
	moodUC "github.com/eduhub/backend/usecase/mood"
	streakUC "github.com/eduhub/backend/usecase/streak"
	todoUC "github.com/eduhub/backend/usecase/todo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	loc := cfg.Location()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskRepo := postgres.NewTaskRepository(pool)
	moodRepo := postgres.NewMoodRepository(pool)
	medRepo := postgres.NewMedicationRepository(pool)
	focusRepo := postgres.NewFocusRepository(pool)
	streakRepo := postgres.NewStreakRepository(pool)
	chatRepo := redisRepo.NewChatHistoryRepository(redisClient, cfg.Redis.ChatTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		taskRepo,
		moodRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	todoUseCase := todoUC.New(taskRepo, bufferBridge, loc, zapLogger)
	dashUseCase := dashUC.New(taskRepo, loc, zapLogger)
	streakUseCase := streakUC.New(streakRepo, loc, zapLogger)
	moodUseCase := moodUC.New(moodRepo, bufferBridge, zapLogger)
	medUseCase := medUC.New(medRepo, zapLogger)

	focusUseCase := focusUC.New(focusRepo, loc, zapLogger)
	manager.Register("focus_timers", focusUseCase.Shutdown)

	advisorGateway := gemini.NewClient(cfg.Advisor, zapLogger)
	advisorUseCase := advisorUC.New(advisorGateway, taskRepo, moodRepo, focusRepo, chatRepo, loc, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:       apiHandler.NewTaskHandler(todoUseCase, ctxAdapter, zapLogger),
		Dashboard:  apiHandler.NewDashboardHandler(dashUseCase, ctxAdapter, zapLogger),
		Streak:     apiHandler.NewStreakHandler(streakUseCase, ctxAdapter, zapLogger),
		Focus:      apiHandler.NewFocusHandler(focusUseCase, ctxAdapter, zapLogger),
		Mood:       apiHandler.NewMoodHandler(moodUseCase, ctxAdapter, zapLogger),
		Medication: apiHandler.NewMedicationHandler(medUseCase, ctxAdapter, zapLogger),
		Advisor:    apiHandler.NewAdvisorHandler(advisorUseCase, ctxAdapter, zapLogger),
		Health:     apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	identify := middleware.Identify(cfg.JWT.Secret, cfg.JWT.DemoUser, zapLogger)
	r := router.New(handlers, identify)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
