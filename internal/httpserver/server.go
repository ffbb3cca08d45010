// Package httpserver assembles the gin router and owns the HTTP lifecycle.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"forgeboard/internal/handler"
	"forgeboard/internal/service"
	"forgeboard/pkg/apikey"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Projects    *handler.ProjectHandler
	Resources   *handler.ResourceHandler
	Capacity    *handler.CapacityHandler
	RAID        *handler.RAIDHandler
	BOM         *handler.BOMHandler
	Gantt       *handler.GanttHandler
	Inventory   *handler.InventoryHandler
	ChangeOrder *handler.ChangeOrderHandler
	Reminders   *handler.ReminderHandler
	Templates   *handler.TemplateHandler
	Marketplace *handler.MarketplaceHandler
	AI          *handler.AIHandler
	APIKeys     *handler.APIKeyHandler
	Integration *handler.IntegrationHandler
}

// NewRouter wires middleware and routes. Dashboard routes sit behind JWT
// auth; the /api/v1 integration surface is guarded per-route by API key
// permissions.
func NewRouter(h Handlers, keys *service.APIKeyService, jwtSecret string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), TraceMiddleware(), LoggingMiddleware(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/auth/register", h.Auth.Register)
	router.POST("/auth/login", h.Auth.Login)

	dash := router.Group("/", JWTAuthMiddleware(jwtSecret))
	{
		dash.GET("/projects", h.Projects.List)
		dash.POST("/projects", h.Projects.Create)
		dash.GET("/projects/:id", h.Projects.Get)
		dash.PUT("/projects/:id", h.Projects.Update)
		dash.DELETE("/projects/:id", h.Projects.Delete)

		dash.GET("/projects/:id/evm", h.Projects.GetEVM)
		dash.POST("/projects/:id/evm/refresh", h.Projects.RefreshEVM)

		dash.GET("/resources", h.Resources.List)
		dash.POST("/resources", h.Resources.Create)
		dash.GET("/resources/:id", h.Resources.Get)
		dash.PUT("/resources/:id", h.Resources.Update)
		dash.DELETE("/resources/:id", h.Resources.Delete)

		dash.GET("/capacity/heatmap", h.Capacity.Heatmap)
		dash.GET("/capacity/bottlenecks", h.Capacity.Bottlenecks)
		dash.GET("/capacity/suggestions", h.Capacity.Suggestions)

		dash.GET("/projects/:id/raid", h.RAID.List)
		dash.POST("/projects/:id/raid", h.RAID.Create)
		dash.PUT("/raid/:entryId", h.RAID.Update)
		dash.DELETE("/raid/:entryId", h.RAID.Delete)
		dash.POST("/raid/:entryId/ai/mitigation", h.AI.SuggestMitigation)

		dash.GET("/projects/:id/bom", h.BOM.List)
		dash.POST("/projects/:id/bom", h.BOM.Create)
		dash.GET("/projects/:id/bom/tree", h.BOM.Tree)
		dash.PUT("/bom/:itemId", h.BOM.Update)
		dash.DELETE("/bom/:itemId", h.BOM.Delete)

		dash.GET("/projects/:id/gantt", h.Gantt.List)
		dash.POST("/projects/:id/gantt", h.Gantt.Create)
		dash.PUT("/gantt/:taskId", h.Gantt.Update)
		dash.DELETE("/gantt/:taskId", h.Gantt.Delete)

		dash.GET("/projects/:id/forge-jobs", h.Inventory.ListJobs)
		dash.POST("/projects/:id/forge-jobs", h.Inventory.CreateJob)
		dash.PATCH("/forge-jobs/:jobId/status", h.Inventory.UpdateJobStatus)
		dash.DELETE("/forge-jobs/:jobId", h.Inventory.DeleteJob)

		dash.GET("/flux-devices", h.Inventory.ListDevices)
		dash.POST("/flux-devices", h.Inventory.CreateDevice)
		dash.PATCH("/flux-devices/:deviceId/assign", h.Inventory.AssignDevice)
		dash.DELETE("/flux-devices/:deviceId", h.Inventory.DeleteDevice)

		dash.GET("/projects/:id/change-orders", h.ChangeOrder.List)
		dash.POST("/projects/:id/change-orders", h.ChangeOrder.Create)
		dash.GET("/change-orders/:orderId", h.ChangeOrder.Get)
		dash.PATCH("/change-orders/:orderId/status", h.ChangeOrder.UpdateStatus)
		dash.DELETE("/change-orders/:orderId", h.ChangeOrder.Delete)

		dash.GET("/reminders", h.Reminders.List)
		dash.POST("/reminders", h.Reminders.Create)
		dash.DELETE("/reminders/:id", h.Reminders.Delete)

		dash.GET("/templates", h.Templates.List)
		dash.POST("/templates", h.Templates.Create)
		dash.GET("/templates/:id", h.Templates.Get)
		dash.DELETE("/templates/:id", h.Templates.Delete)
		dash.POST("/templates/:id/instantiate", h.Templates.Instantiate)

		dash.GET("/marketplace/modules", h.Marketplace.List)
		dash.GET("/marketplace/modules/:moduleId/entitlement", h.Marketplace.Entitlement)
		dash.POST("/marketplace/install", h.Marketplace.Install)
		dash.POST("/marketplace/uninstall", h.Marketplace.Uninstall)

		dash.POST("/projects/:id/ai/summary", h.AI.SummarizeProject)

		dash.GET("/api-keys", h.APIKeys.List)
		dash.POST("/api-keys", h.APIKeys.Create)
		dash.DELETE("/api-keys/:id", h.APIKeys.Revoke)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/invoices", APIKeyMiddleware(keys, apikey.PermInvoicesRead), h.Integration.ListInvoices)
		v1.POST("/invoices", APIKeyMiddleware(keys, apikey.PermInvoicesWrite), h.Integration.CreateInvoice)
		v1.PATCH("/invoices/:id/status", APIKeyMiddleware(keys, apikey.PermInvoicesWrite), h.Integration.UpdateInvoiceStatus)
		v1.GET("/time-entries", APIKeyMiddleware(keys, apikey.PermTimeRead), h.Integration.ListTimeEntries)
		v1.POST("/time-entries", APIKeyMiddleware(keys, apikey.PermTimeWrite), h.Integration.CreateTimeEntry)
	}

	return router
}

// Run serves until ctx is cancelled, then drains with a grace period.
func Run(ctx context.Context, router *gin.Engine, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
