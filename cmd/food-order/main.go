package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/hiTanyaZhao/food-order-system/internal/app"
)

// setupLogger настраивает формат и уровень логирования для приложения.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if os.Getenv("FOODORDER_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}
}

// readConfig формирует конфигурацию приложения из переменных окружения.
func readConfig() app.Config {
	cfg := app.DefaultConfig()
	if v := os.Getenv("FOODORDER_PG_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("FOODORDER_OPS_ADDR"); v != "" {
		cfg.OpsAddr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	return cfg
}

func main() {
	setupLogger()
	cfg := readConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"postgres": cfg.PostgresDSN != "",
		"ops_addr": cfg.OpsAddr,
		"kafka":    cfg.KafkaBrokers != "",
	}).Info("запускаем food-order")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("food-order остановлен")
}
