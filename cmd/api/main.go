package main

import (
	"context"
	"log"

	"giftshop/internal/application/intake"
	"giftshop/internal/config"
	"giftshop/internal/infrastructure/encoding/avro"
	ginserver "giftshop/internal/infrastructure/http/gin"
	kafkainfra "giftshop/internal/infrastructure/messaging/kafka"
	"giftshop/internal/infrastructure/persistence/ledger"
	"giftshop/internal/infrastructure/persistence/postgres"
	"giftshop/internal/interfaces/http/handler"
	"giftshop/internal/interfaces/http/router"
	"giftshop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		zlog.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	orderRepo := postgres.NewOrderRepository(pool)

	orderLedger, err := ledger.NewCSVLedger(cfg.Store.Dir, zlog)
	if err != nil {
		zlog.Fatal("csv ledger init failed", logger.Error(err))
	}

	codec, err := avro.NewCodec()
	if err != nil {
		zlog.Fatal("avro codec init failed", logger.Error(err))
	}

	producer, err := kafkainfra.NewOrderProducer(cfg.Kafka, zlog)
	if err != nil {
		zlog.Fatal("kafka producer init failed", logger.Error(err))
	}
	defer producer.Close(ctx)

	intakeService := intake.NewService(orderRepo, orderLedger, producer, codec, zlog)

	consumer := kafkainfra.NewOrderConsumer(cfg.Kafka, codec, intakeService, zlog)
	go func() {
		if err := consumer.Start(ctx); err != nil {
			zlog.Error("kafka consumer stopped", logger.Error(err))
		}
	}()
	defer consumer.Close()

	orderHandler := handler.NewOrderHandler(intakeService)
	engine := ginserver.NewEngine()
	router.RegisterRoutes(engine, orderHandler)

	server := ginserver.NewServer(cfg.Server, engine)
	if err := server.Run(); err != nil {
		zlog.Fatal("server run failed", logger.Error(err))
	}
}
