package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"schoolbus_backend/internals/configs"
	database "schoolbus_backend/internals/databases"
	"schoolbus_backend/internals/features/transport/buses/repository"
	"schoolbus_backend/internals/features/transport/buses/scheduler"
	"schoolbus_backend/internals/features/transport/buses/service"
	middlewares "schoolbus_backend/internals/middlewares"
	routes "schoolbus_backend/internals/route"
)

func main() {
	log := configs.NewLogger()
	defer func() { _ = log.Sync() }()

	configs.LoadEnv(log)

	feeCfg := configs.LoadFeePolicyConfig()
	policy, err := service.PolicyFromConfig(feeCfg)
	if err != nil {
		log.Fatal("invalid bus fee policy", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})

	middlewares.SetupMiddlewares(app)

	// DB connect + pool + warm-up
	db, err := database.ConnectDB(configs.LoadDBConfig(), log)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	database.TunePool(db, log)
	database.WarmUpQueries(db, log)

	if configs.LoadDBConfig().AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatal("auto migrate failed", zap.Error(err))
		}
		log.Info("auto migrate done")
	}

	routes.SetupRoutes(app, db, policy, log)

	// scheduler setelah DB siap
	reports := service.NewFeeReportService(repository.NewGormStore(db), policy)
	cronJob, err := scheduler.StartMonthlyFeeReportCron(feeCfg.ReportCron, reports, log)
	if err != nil {
		log.Fatal("fee report cron failed", zap.Error(err))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Info("listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if cronJob != nil {
		<-cronJob.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(db)
}
