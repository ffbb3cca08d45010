package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"forgeboard/internal/config"
	"forgeboard/internal/event"
	"forgeboard/internal/mqhandler"
	"forgeboard/internal/repository"
	"forgeboard/internal/service"
	"forgeboard/pkg/db"
	"forgeboard/pkg/logger"
	"forgeboard/pkg/mq"
	"forgeboard/pkg/outbox"
	pkgredis "forgeboard/pkg/redis"
	"forgeboard/pkg/util"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	pool, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	rdb := pkgredis.NewClient(cfg.Redis)
	defer rdb.Close()

	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer publisher.Close()

	if err := publisher.SetupDLQ(event.ProjectCreated, event.EVMRefresh, event.ReminderDue); err != nil {
		log.Fatal("Failed to set up dead letter queues", zap.Error(err))
	}

	outboxRepo := outbox.NewRepository(pool)

	projectRepo := repository.NewProjectRepository(pool, log)
	evmRepo := repository.NewEVMRepository(pool, log)
	reminderRepo := repository.NewReminderRepository(pool, log)

	evmSvc := service.NewEVMService(projectRepo, evmRepo, cfg.Thresholds, log)
	reminderSvc := service.NewReminderService(pool, reminderRepo, outboxRepo, log)

	deduper := util.NewDeduperWithLogger(rdb, 24*time.Hour, log)
	retryCounter := util.NewRetryCounter(rdb, time.Hour)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Outbox dispatcher.
	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, log).
		WithMaxRetries(cfg.Worker.OutboxMaxRetries).
		WithInterval(cfg.Worker.OutboxInterval.Std()).
		WithBatchSize(cfg.Worker.OutboxBatchSize)
	go dispatcher.Start(ctx)

	// Reminder due scan.
	go runReminderScan(ctx, reminderSvc, cfg.Worker.ReminderInterval.Std(), cfg.Worker.ReminderBatch, log)

	// Consumers.
	startConsumer(ctx, cfg.MQ.URL, "worker.project_created", event.ProjectCreated, log,
		mqhandler.NewProjectCreatedHandler(evmSvc, deduper, retryCounter, publisher, cfg.Worker.ConsumerRetries, log).Handle)
	startConsumer(ctx, cfg.MQ.URL, "worker.evm_refresh", event.EVMRefresh, log,
		mqhandler.NewEVMRefreshHandler(evmSvc, retryCounter, publisher, cfg.Worker.ConsumerRetries, log).Handle)
	startConsumer(ctx, cfg.MQ.URL, "worker.reminder_due", event.ReminderDue, log,
		mqhandler.NewReminderDueHandler(reminderSvc, deduper, retryCounter, publisher, cfg.Worker.ConsumerRetries, log).Handle)

	log.Info("Worker started")
	<-ctx.Done()
	log.Info("Worker shutting down")
}

func startConsumer(ctx context.Context, url, queue, routingKey string, log *zap.Logger, handle mq.MessageHandler) {
	consumer, err := mq.NewConsumer(url, queue, routingKey, log)
	if err != nil {
		log.Fatal("Failed to create consumer",
			zap.String("queue", queue),
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}

	go func() {
		<-ctx.Done()
		consumer.Close()
	}()

	consumer.SetHandler(handle)
	go func() {
		if err := consumer.StartConsuming(); err != nil {
			log.Error("Consumer stopped",
				zap.String("queue", queue),
				zap.String("routing_key", routingKey),
				zap.Error(err),
			)
		}
	}()
}

func runReminderScan(ctx context.Context, reminders *service.ReminderService, interval time.Duration, batch int, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("Reminder scan started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			log.Info("Reminder scan stopped")
			return
		case <-ticker.C:
			if _, err := reminders.EnqueueDue(ctx, time.Now(), batch); err != nil {
				log.Error("Reminder scan failed", zap.Error(err))
			}
		}
	}
}
