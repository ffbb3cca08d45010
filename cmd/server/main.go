package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"forgeboard/internal/config"
	"forgeboard/internal/handler"
	"forgeboard/internal/httpserver"
	"forgeboard/internal/repository"
	"forgeboard/internal/service"
	"forgeboard/pkg/db"
	"forgeboard/pkg/logger"
	"forgeboard/pkg/outbox"
	pkgredis "forgeboard/pkg/redis"
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

	outboxRepo := outbox.NewRepository(pool)

	projectRepo := repository.NewProjectRepository(pool, log)
	evmRepo := repository.NewEVMRepository(pool, log)
	resourceRepo := repository.NewResourceRepository(pool, log)
	raidRepo := repository.NewRAIDRepository(pool, log)
	bomRepo := repository.NewBOMRepository(pool, log)
	ganttRepo := repository.NewGanttRepository(pool, log)
	forgeJobRepo := repository.NewForgeJobRepository(pool, log)
	fluxDeviceRepo := repository.NewFluxDeviceRepository(pool, log)
	invoiceRepo := repository.NewInvoiceRepository(pool, log)
	timeEntryRepo := repository.NewTimeEntryRepository(pool, log)
	reminderRepo := repository.NewReminderRepository(pool, log)
	templateRepo := repository.NewTemplateRepository(pool, log)
	changeOrderRepo := repository.NewChangeOrderRepository(pool, log)
	userRepo := repository.NewUserRepository(pool, log)
	apiKeyRepo := repository.NewAPIKeyRepository(pool, log)
	moduleInstallRepo := repository.NewModuleInstallRepository(pool, log)

	projectSvc := service.NewProjectService(pool, projectRepo, outboxRepo, log)
	evmSvc := service.NewEVMService(projectRepo, evmRepo, cfg.Thresholds, log)
	capacitySvc := service.NewCapacityService(resourceRepo)
	raidSvc := service.NewRAIDService(raidRepo)
	marketplaceSvc := service.NewMarketplaceService(moduleInstallRepo, rdb, log)
	aiSvc := service.NewAIService(cfg.AI, log)
	billingSvc := service.NewBillingService(pool, invoiceRepo, outboxRepo, cfg.Billing, log)
	reminderSvc := service.NewReminderService(pool, reminderRepo, outboxRepo, log)
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, log)
	templateSvc := service.NewTemplateService(templateRepo, ganttRepo, projectSvc, log)
	apiKeySvc := service.NewAPIKeyService(apiKeyRepo, log)

	handlers := httpserver.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Projects:    handler.NewProjectHandler(projectSvc, evmSvc),
		Resources:   handler.NewResourceHandler(resourceRepo),
		Capacity:    handler.NewCapacityHandler(capacitySvc),
		RAID:        handler.NewRAIDHandler(raidSvc),
		BOM:         handler.NewBOMHandler(bomRepo),
		Gantt:       handler.NewGanttHandler(ganttRepo),
		Inventory:   handler.NewInventoryHandler(forgeJobRepo, fluxDeviceRepo),
		ChangeOrder: handler.NewChangeOrderHandler(changeOrderRepo),
		Reminders:   handler.NewReminderHandler(reminderSvc),
		Templates:   handler.NewTemplateHandler(templateSvc),
		Marketplace: handler.NewMarketplaceHandler(marketplaceSvc),
		AI:          handler.NewAIHandler(aiSvc, projectSvc, evmSvc, raidSvc),
		APIKeys:     handler.NewAPIKeyHandler(apiKeySvc),
		Integration: handler.NewIntegrationHandler(billingSvc, timeEntryRepo),
	}

	router := httpserver.NewRouter(handlers, apiKeySvc, cfg.JWT.Secret, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpserver.Run(ctx, router, cfg.Server.Port, log); err != nil {
		log.Fatal("HTTP server error", zap.Error(err))
	}
	log.Info("Server stopped")
}
