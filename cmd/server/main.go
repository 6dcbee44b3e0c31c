package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/afyastaff/afyastaff/internal/api"
	"github.com/afyastaff/afyastaff/internal/api/cron"
	v1 "github.com/afyastaff/afyastaff/internal/api/v1"
	"github.com/afyastaff/afyastaff/internal/auth"
	"github.com/afyastaff/afyastaff/internal/cache"
	"github.com/afyastaff/afyastaff/internal/config"
	"github.com/afyastaff/afyastaff/internal/httpclient"
	"github.com/afyastaff/afyastaff/internal/integration"
	"github.com/afyastaff/afyastaff/internal/integration/mpesa"
	"github.com/afyastaff/afyastaff/internal/integration/stripe"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/metrics"
	"github.com/afyastaff/afyastaff/internal/repository"
	"github.com/afyastaff/afyastaff/internal/sentry"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/afyastaff/afyastaff/internal/store"
	mongostore "github.com/afyastaff/afyastaff/internal/store/mongo"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

// @title AfyaStaff API
// @version 1.0
// @description Staff management and billing for Kenyan healthcare facilities
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Metrics
			metrics.NewDefault,

			// Cache
			cache.NewInMemoryCache,

			// Storage
			mongostore.Connect,
			provideStore,

			// Auth
			auth.NewProvider,

			// Payment providers
			provideHTTPClient,
			mpesa.NewGateway,
			stripe.NewGateway,
			provideGateways,
		),
		sentry.Module(),
	)

	// Repositories
	opts = append(opts,
		fx.Provide(
			repository.NewOrganizationRepository,
			repository.NewSubscriptionRepository,
			repository.NewPaymentRepository,
			repository.NewBillingLogRepository,
			repository.NewLocationRepository,
			repository.NewStaffRepository,
			repository.NewSeatRepository,
			repository.NewRoleRepository,
			repository.NewLeaveRepository,
			repository.NewDocumentRepository,
			repository.NewScheduleRepository,
			repository.NewAttendanceRepository,
			repository.NewPayrollRepository,
		),
	)

	// Services
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewActorService,
			service.NewOrganizationService,
			service.NewBillingService,
			service.NewPaymentService,
			service.NewUsageService,
			service.NewStaffService,
			service.NewRoleService,
			service.NewLocationService,
			service.NewLeaveService,
			service.NewDocumentService,
			service.NewScheduleService,
			service.NewAttendanceService,
			service.NewPayrollService,
			service.NewDashboardService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			ensureIndexes,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideStore(lc fx.Lifecycle, client *mongo.Client, cfg *config.Configuration, log *logger.Logger) (store.Store, *mongostore.Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Disconnecting from MongoDB")
			return client.Disconnect(ctx)
		},
	})
	s := mongostore.NewStore(client, cfg, log)
	return s, s
}

func provideHTTPClient(cfg *config.Configuration) httpclient.Client {
	return httpclient.NewDefaultClient(httpclient.ClientConfig{
		Timeout:    cfg.Mpesa.Timeout,
		MaxRetries: cfg.Mpesa.MaxRetries,
	})
}

func provideGateways(m *mpesa.Gateway, s *stripe.Gateway) *integration.Factory {
	return integration.NewFactory(m, s)
}

func provideHandlers(
	logger *logger.Logger,
	organizationService service.OrganizationService,
	billingService service.BillingService,
	paymentService service.PaymentService,
	usageService service.UsageService,
	staffService service.StaffService,
	roleService service.RoleService,
	locationService service.LocationService,
	leaveService service.LeaveService,
	documentService service.DocumentService,
	scheduleService service.ScheduleService,
	attendanceService service.AttendanceService,
	payrollService service.PayrollService,
	dashboardService service.DashboardService,
) api.Handlers {
	return api.Handlers{
		Health:       v1.NewHealthHandler(logger),
		Organization: v1.NewOrganizationHandler(organizationService, logger),
		Billing:      v1.NewBillingHandler(billingService, usageService, logger),
		Payment:      v1.NewPaymentHandler(paymentService, logger),
		Webhook:      v1.NewWebhookHandler(paymentService, logger),
		Staff:        v1.NewStaffHandler(staffService, logger),
		Role:         v1.NewRoleHandler(roleService, logger),
		Location:     v1.NewLocationHandler(locationService, logger),
		Leave:        v1.NewLeaveHandler(leaveService, logger),
		Document:     v1.NewDocumentHandler(documentService, logger),
		Schedule:     v1.NewScheduleHandler(scheduleService, logger),
		Attendance:   v1.NewAttendanceHandler(attendanceService, logger),
		Payroll:      v1.NewPayrollHandler(payrollService, logger),
		Dashboard:    v1.NewDashboardHandler(dashboardService, logger),
		CronBilling:  cron.NewBillingHandler(billingService, paymentService, logger),
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	sentrySvc *sentry.Service,
	m *metrics.Metrics,
	authProvider auth.Provider,
	actorService service.ActorService,
	billingService service.BillingService,
) *gin.Engine {
	return api.NewRouter(handlers, api.RouterDeps{
		Config:  cfg,
		Logger:  logger,
		Sentry:  sentrySvc,
		Metrics: m,
		Auth:    authProvider,
		Actors:  actorService,
		Billing: billingService,
	})
}

func ensureIndexes(lc fx.Lifecycle, s *mongostore.Store, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := s.EnsureIndexes(ctx); err != nil {
				log.Errorw("failed to ensure indexes", "error", err)
				return err
			}
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address, "mode", cfg.Deployment.Mode)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
