package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/hiTanyaZhao/food-order-system/internal/cli"
	"github.com/hiTanyaZhao/food-order-system/internal/domain"
	healthcheck "github.com/hiTanyaZhao/food-order-system/internal/health"
	"github.com/hiTanyaZhao/food-order-system/internal/messaging/kafka"
	"github.com/hiTanyaZhao/food-order-system/internal/service/analytics"
	"github.com/hiTanyaZhao/food-order-system/internal/service/customer"
	"github.com/hiTanyaZhao/food-order-system/internal/service/employee"
	menusvc "github.com/hiTanyaZhao/food-order-system/internal/service/menu"
	"github.com/hiTanyaZhao/food-order-system/internal/service/order"
	"github.com/hiTanyaZhao/food-order-system/internal/storage/memory"
	"github.com/hiTanyaZhao/food-order-system/internal/storage/postgres"
	"github.com/hiTanyaZhao/food-order-system/internal/version"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// PostgresDSN — строка подключения; пустая строка включает in-memory хранилище.
	PostgresDSN string
	// OpsAddr — адрес служебного HTTP-сервера (/metrics, /healthz); пусто — выключен.
	OpsAddr string
	// KafkaBrokers — список брокеров через запятую; пусто — публикация выключена.
	KafkaBrokers string
}

// DefaultConfig возвращает конфигурацию по умолчанию: in-memory хранилище
// без служебного сервера и Kafka.
func DefaultConfig() Config {
	return Config{}
}

type repositories struct {
	customers domain.CustomerRepository
	employees domain.EmployeeRepository
	menu      domain.MenuRepository
	orders    domain.OrderRepository
	events    domain.OrderEventRepository
	analytics domain.AnalyticsRepository
}

// Run собирает зависимости и крутит консольный интерфейс до завершения.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	repos, store, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}()
	}

	kafkaProducer := buildKafkaProducer(cfg, logger)
	if kafkaProducer != nil {
		defer func() {
			if err := kafkaProducer.Close(); err != nil {
				logger.WithError(err).Warn("failed to close kafka producer")
			}
		}()
	}

	var orderSvc order.Service
	if kafkaProducer != nil {
		orderSvc = order.NewServiceWithKafka(
			repos.orders, repos.events, repos.customers, repos.employees, repos.menu,
			kafkaProducer, logger.WithField("layer", "order"),
		)
	} else {
		orderSvc = order.NewService(
			repos.orders, repos.events, repos.customers, repos.employees, repos.menu,
			logger.WithField("layer", "order"),
		)
	}

	ui := cli.New(
		os.Stdin, os.Stdout,
		customer.NewService(repos.customers, repos.orders, logger.WithField("layer", "customer")),
		employee.NewService(repos.employees, repos.orders, logger.WithField("layer", "employee")),
		menusvc.NewService(repos.menu, logger.WithField("layer", "menu")),
		orderSvc,
		analytics.NewService(repos.analytics, logger.WithField("layer", "analytics")),
		logger.WithField("layer", "cli"),
	)

	opsSrv := startOpsServer(ctx, cfg.OpsAddr, logger, store)
	defer shutdownHTTP(opsSrv, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ui.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// buildStorage выбирает PostgreSQL или in-memory хранилище по конфигурации.
func buildStorage(ctx context.Context, cfg Config, logger *log.Entry) (repositories, *postgres.Store, error) {
	if cfg.PostgresDSN == "" {
		logger.Info("using in-memory storage")
		store := memory.NewStore()
		return repositories{
			customers: memory.NewCustomerRepository(store),
			employees: memory.NewEmployeeRepository(store),
			menu:      memory.NewMenuRepository(store),
			orders:    memory.NewOrderRepository(store),
			events:    memory.NewOrderEventRepository(store),
			analytics: memory.NewAnalyticsRepository(store),
		}, nil, nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return repositories{}, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return repositories{}, nil, err
	}
	logger.Info("using postgres storage")

	return repositories{
		customers: postgres.NewCustomerRepository(store),
		employees: postgres.NewEmployeeRepository(store),
		menu:      postgres.NewMenuRepository(store),
		orders:    postgres.NewOrderRepository(store),
		events:    postgres.NewOrderEventRepository(store),
		analytics: postgres.NewAnalyticsRepository(store),
	}, store, nil
}

// buildKafkaProducer инициализирует producer, если заданы брокеры;
// недоступность Kafka не мешает запуску.
func buildKafkaProducer(cfg Config, logger *log.Entry) *kafka.Producer {
	if cfg.KafkaBrokers == "" {
		return nil
	}

	brokers := strings.Split(cfg.KafkaBrokers, ",")
	producer, err := kafka.NewProducer(brokers)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil
	}
	logger.WithField("brokers", brokers).Info("kafka producer initialized")
	return producer
}

// startOpsServer запускает служебный HTTP-сервер с метриками и health-проверками.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, store *postgres.Store) *http.Server {
	if addr == "" {
		return nil
	}

	healthHandler := healthcheck.NewHandler(version.String())
	if store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(checkCtx)
		}))
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("ops server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("ops server shutdown with error")
	}
}
