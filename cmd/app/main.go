package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	inhttp "github.com/suchimauz/booking-scheduling-engine/internal/adapters/in/http"
	"github.com/suchimauz/booking-scheduling-engine/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/booking-scheduling-engine/internal/adapters/out/cache"
	"github.com/suchimauz/booking-scheduling-engine/internal/adapters/out/calendar"
	"github.com/suchimauz/booking-scheduling-engine/internal/adapters/out/directory"
	"github.com/suchimauz/booking-scheduling-engine/internal/adapters/out/logger"
	"github.com/suchimauz/booking-scheduling-engine/internal/config"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/services/scheduling_engine"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"tenantId":        cfg.Tenant.ID,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	var directoryAdapter out.DirectoryPort = directory.NewDirectoryAdapter(cfg, cacheAdapter, mainLogger.WithModule("DirectoryAdapter"))

	// Снимок конфигурации арендатора — неизменяем на время жизни движка
	snapshotCtx, cancelSnapshot := context.WithTimeout(context.Background(), 30*time.Second)
	snapshot, err := directoryAdapter.GetTenantSnapshot(snapshotCtx, cfg.Tenant.ID)
	cancelSnapshot()
	if err != nil {
		log.Error("app.tenant_snapshot.fetch_failed", out.LogFields{
			"tenantId": cfg.Tenant.ID,
			"error":    err.Error(),
		})
		os.Exit(1)
	}

	calendarStore := calendar.NewCalendarStore(snapshot.Staff, mainLogger)

	// Инициализация движка, падаем сразу на невалидной таймзоне арендатора
	engine, err := scheduling_engine.NewSchedulingEngine(
		snapshot.Config,
		snapshot.Services,
		calendarStore,
		cacheAdapter,
		mainLogger,
	)
	if err != nil {
		log.Error("app.engine.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Настройка HTTP сервера
	router := gin.Default()
	controller := inhttp.NewSchedulingController(
		engine,
		cfg,
		mainLogger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewAppointmentListener(
			calendarStore,
			cacheAdapter,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
