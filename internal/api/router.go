package api

import (
	"github.com/afyastaff/afyastaff/internal/access"
	"github.com/afyastaff/afyastaff/internal/api/cron"
	v1 "github.com/afyastaff/afyastaff/internal/api/v1"
	"github.com/afyastaff/afyastaff/internal/auth"
	"github.com/afyastaff/afyastaff/internal/config"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/metrics"
	"github.com/afyastaff/afyastaff/internal/rest/middleware"
	"github.com/afyastaff/afyastaff/internal/sentry"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health       *v1.HealthHandler
	Organization *v1.OrganizationHandler
	Billing      *v1.BillingHandler
	Payment      *v1.PaymentHandler
	Webhook      *v1.WebhookHandler
	Staff        *v1.StaffHandler
	Role         *v1.RoleHandler
	Location     *v1.LocationHandler
	Leave        *v1.LeaveHandler
	Document     *v1.DocumentHandler
	Schedule     *v1.ScheduleHandler
	Attendance   *v1.AttendanceHandler
	Payroll      *v1.PayrollHandler
	Dashboard    *v1.DashboardHandler
	CronBilling  *cron.BillingHandler
}

// RouterDeps are the collaborators of the middleware chain
type RouterDeps struct {
	Config  *config.Configuration
	Logger  *logger.Logger
	Sentry  *sentry.Service
	Metrics *metrics.Metrics
	Auth    auth.Provider
	Actors  service.ActorService
	Billing service.BillingService
}

func NewRouter(handlers Handlers, deps RouterDeps) *gin.Engine {
	if deps.Config.Deployment.Mode == types.ModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(deps.Logger),
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(deps.Config),
		middleware.SentryScopeMiddleware,
		deps.Metrics.Middleware(),
		middleware.ErrorHandler(deps.Sentry, deps.Logger),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", deps.Metrics.Handler())

	v1Public := router.Group("/v1")

	// Stripe webhooks are verified against the Stripe-Signature header by the
	// gateway. Daraja does not sign callbacks, so the M-Pesa route requires the
	// token carried on the registered callback URL.
	webhooks := v1Public.Group("/webhooks")
	{
		webhooks.POST("/mpesa", middleware.MpesaCallbackMiddleware(deps.Config), handlers.Webhook.HandleMpesaCallback)
		webhooks.POST("/stripe", handlers.Webhook.HandleStripeWebhook)
	}

	cronGroup := v1Public.Group("/cron", middleware.CronKeyMiddleware(deps.Config))
	{
		billing := cronGroup.Group("/billing")
		billing.POST("/reconcile", handlers.CronBilling.ReconcileStates)
		billing.POST("/autopay", handlers.CronBilling.ProcessAutoPayRenewals)
	}

	v1Private := v1Public.Group("/", middleware.AuthenticateMiddleware(deps.Auth, deps.Actors, deps.Logger))

	general := access.RequireArea(access.AreaGeneral, deps.Billing, deps.Logger)
	billingArea := access.RequireArea(access.AreaBilling, deps.Billing, deps.Logger)
	verificationArea := access.RequireArea(access.AreaVerification, deps.Billing, deps.Logger)

	v1Private.POST("/organizations", handlers.Organization.Signup)

	organization := v1Private.Group("/organization")
	{
		organization.GET("", general, handlers.Organization.GetOrganization)
		organization.PUT("", general, handlers.Organization.UpdateOrganization)
		organization.POST("/verification", verificationArea, handlers.Organization.SubmitVerification)
	}

	billing := v1Private.Group("/billing", billingArea)
	{
		billing.GET("", handlers.Billing.GetBillingStatus)
		billing.PUT("/payment-mode", handlers.Billing.SetPaymentMode)
		billing.PUT("/plan", handlers.Billing.ChangePlan)
		billing.GET("/logs", handlers.Billing.ListBillingLogs)
		billing.GET("/usage", handlers.Billing.GetUsage)
		billing.POST("/simulate", handlers.Billing.SimulatePayment)
		billing.POST("/reset-trial", handlers.Billing.ResetTrial)

		billing.POST("/payments", handlers.Payment.InitiatePayment)
		billing.GET("/payments", handlers.Payment.ListPayments)
		billing.GET("/payments/:id", handlers.Payment.GetPayment)
	}

	admin := v1Private.Group("/admin/organizations")
	{
		admin.GET("/verifications", handlers.Organization.ListPendingVerifications)
		admin.POST("/:id/verification", handlers.Organization.ReviewVerification)
		admin.POST("/:id/reactivate", handlers.Billing.Reactivate)
	}

	registerDomainRoutes(v1Private.Group("/", general), handlers)

	return router
}

func registerDomainRoutes(router *gin.RouterGroup, handlers Handlers) {
	staff := router.Group("/staff")
	{
		staff.POST("", handlers.Staff.CreateStaff)
		staff.GET("", handlers.Staff.ListStaff)
		staff.GET("/me", handlers.Staff.GetCurrentStaff)
		staff.GET("/:id", handlers.Staff.GetStaff)
		staff.PUT("/:id", handlers.Staff.UpdateStaff)
		staff.PUT("/:id/role", handlers.Staff.AssignRole)
		staff.DELETE("/:id", handlers.Staff.ArchiveStaff)
	}

	roles := router.Group("/roles")
	{
		roles.POST("", handlers.Role.CreateRole)
		roles.GET("", handlers.Role.ListRoles)
		roles.GET("/:id", handlers.Role.GetRole)
		roles.PUT("/:id", handlers.Role.UpdateRole)
		roles.DELETE("/:id", handlers.Role.DeleteRole)
	}

	locations := router.Group("/locations")
	{
		locations.POST("", handlers.Location.CreateLocation)
		locations.GET("", handlers.Location.ListLocations)
		locations.DELETE("/:id", handlers.Location.ArchiveLocation)
	}

	leave := router.Group("/leave")
	{
		leave.POST("", handlers.Leave.SubmitLeave)
		leave.GET("", handlers.Leave.ListLeave)
		leave.POST("/:id/approve", handlers.Leave.ApproveLeave)
		leave.POST("/:id/reject", handlers.Leave.RejectLeave)
		leave.POST("/:id/cancel", handlers.Leave.CancelLeave)
	}

	documents := router.Group("/documents")
	{
		documents.POST("", handlers.Document.CreateDocument)
		documents.GET("", handlers.Document.ListDocuments)
		documents.GET("/pending", handlers.Document.PendingForStaff)
		documents.POST("/:id/acknowledge", handlers.Document.Acknowledge)
		documents.GET("/:id/acknowledgements", handlers.Document.ListAcknowledgements)
	}

	shifts := router.Group("/shifts")
	{
		shifts.POST("", handlers.Schedule.CreateShift)
		shifts.GET("", handlers.Schedule.ListShifts)
		shifts.DELETE("/:id", handlers.Schedule.DeleteShift)
	}

	attendance := router.Group("/attendance")
	{
		attendance.GET("", handlers.Attendance.ListAttendance)
		attendance.POST("/clock-in", handlers.Attendance.ClockIn)
		attendance.POST("/clock-out", handlers.Attendance.ClockOut)
	}

	payroll := router.Group("/payroll")
	{
		payroll.GET("", handlers.Payroll.ListPayroll)
		payroll.POST("/run", handlers.Payroll.RunPayroll)
	}

	router.GET("/dashboard", handlers.Dashboard.GetOverview)
}
