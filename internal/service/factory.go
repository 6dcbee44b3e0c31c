package service

import (
	"time"

	"github.com/afyastaff/afyastaff/internal/cache"
	"github.com/afyastaff/afyastaff/internal/config"
	"github.com/afyastaff/afyastaff/internal/domain/attendance"
	"github.com/afyastaff/afyastaff/internal/domain/billinglog"
	"github.com/afyastaff/afyastaff/internal/domain/document"
	"github.com/afyastaff/afyastaff/internal/domain/leave"
	"github.com/afyastaff/afyastaff/internal/domain/location"
	"github.com/afyastaff/afyastaff/internal/domain/organization"
	"github.com/afyastaff/afyastaff/internal/domain/payment"
	"github.com/afyastaff/afyastaff/internal/domain/payroll"
	"github.com/afyastaff/afyastaff/internal/domain/role"
	"github.com/afyastaff/afyastaff/internal/domain/schedule"
	"github.com/afyastaff/afyastaff/internal/domain/seat"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	"github.com/afyastaff/afyastaff/internal/domain/subscription"
	"github.com/afyastaff/afyastaff/internal/idempotency"
	"github.com/afyastaff/afyastaff/internal/integration"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/metrics"
	"github.com/afyastaff/afyastaff/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger      *logger.Logger
	Config      *config.Configuration
	Cache       cache.Cache
	Metrics     *metrics.Metrics
	Sentry      *sentry.Service
	Gateways    *integration.Factory
	Idempotency *idempotency.Generator
	// Now is the clock every billing decision is taken against
	Now func() time.Time

	// Repositories
	OrgRepo        organization.Repository
	SubRepo        subscription.Repository
	PaymentRepo    payment.Repository
	BillingLogRepo billinglog.Repository
	LocationRepo   location.Repository
	StaffRepo      staff.Repository
	SeatRepo       seat.Repository
	RoleRepo       role.Repository
	LeaveRepo      leave.Repository
	DocumentRepo   document.Repository
	ScheduleRepo   schedule.Repository
	AttendanceRepo attendance.Repository
	PayrollRepo    payroll.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	metrics *metrics.Metrics,
	sentry *sentry.Service,
	gateways *integration.Factory,
	orgRepo organization.Repository,
	subRepo subscription.Repository,
	paymentRepo payment.Repository,
	billingLogRepo billinglog.Repository,
	locationRepo location.Repository,
	staffRepo staff.Repository,
	seatRepo seat.Repository,
	roleRepo role.Repository,
	leaveRepo leave.Repository,
	documentRepo document.Repository,
	scheduleRepo schedule.Repository,
	attendanceRepo attendance.Repository,
	payrollRepo payroll.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:         logger,
		Config:         config,
		Cache:          cache,
		Metrics:        metrics,
		Sentry:         sentry,
		Gateways:       gateways,
		Idempotency:    idempotency.NewGenerator(),
		Now:            func() time.Time { return time.Now().UTC() },
		OrgRepo:        orgRepo,
		SubRepo:        subRepo,
		PaymentRepo:    paymentRepo,
		BillingLogRepo: billingLogRepo,
		LocationRepo:   locationRepo,
		StaffRepo:      staffRepo,
		SeatRepo:       seatRepo,
		RoleRepo:       roleRepo,
		LeaveRepo:      leaveRepo,
		DocumentRepo:   documentRepo,
		ScheduleRepo:   scheduleRepo,
		AttendanceRepo: attendanceRepo,
		PayrollRepo:    payrollRepo,
	}
}

// billingPolicy reads the trial and grace windows from configuration
func (p ServiceParams) billingPolicy() subscription.Policy {
	return subscription.Policy{
		TrialDays:          p.Config.Billing.TrialDays,
		TrialGracePeriod:   p.Config.Billing.TrialGracePeriod,
		PaymentGracePeriod: p.Config.Billing.PaymentGracePeriod,
	}
}
