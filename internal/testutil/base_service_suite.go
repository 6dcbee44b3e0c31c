package testutil

import (
	"context"
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
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/repository"
	"github.com/afyastaff/afyastaff/internal/store/memory"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds the repositories under test, all backed by one in-memory document store
type Stores struct {
	OrganizationRepo organization.Repository
	SubscriptionRepo subscription.Repository
	PaymentRepo      payment.Repository
	BillingLogRepo   billinglog.Repository
	LocationRepo     location.Repository
	StaffRepo        staff.Repository
	SeatRepo         seat.Repository
	RoleRepo         role.Repository
	LeaveRepo        leave.Repository
	DocumentRepo     document.Repository
	ScheduleRepo     schedule.Repository
	AttendanceRepo   attendance.Repository
	PayrollRepo      payroll.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	stores Stores
	logger *logger.Logger
	config *config.Configuration
	cache  cache.Cache
	clock  *Clock
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	s.config = config.GetDefaultConfig()
	s.config.Logging.Level = types.LogLevelError
	s.config.Billing.DevMode = true

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.clock = NewClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.setupStores()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.store.Clear()
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) setupStores() {
	s.store = memory.NewStore()
	s.stores = Stores{
		OrganizationRepo: repository.NewOrganizationRepository(s.store, s.logger),
		SubscriptionRepo: repository.NewSubscriptionRepository(s.store, s.logger),
		PaymentRepo:      repository.NewPaymentRepository(s.store, s.logger),
		BillingLogRepo:   repository.NewBillingLogRepository(s.store, s.logger),
		LocationRepo:     repository.NewLocationRepository(s.store, s.logger),
		StaffRepo:        repository.NewStaffRepository(s.store, s.logger),
		SeatRepo:         repository.NewSeatRepository(s.store, s.logger),
		RoleRepo:         repository.NewRoleRepository(s.store, s.logger),
		LeaveRepo:        repository.NewLeaveRepository(s.store, s.logger),
		DocumentRepo:     repository.NewDocumentRepository(s.store, s.logger),
		ScheduleRepo:     repository.NewScheduleRepository(s.store, s.logger),
		AttendanceRepo:   repository.NewAttendanceRepository(s.store, s.logger),
		PayrollRepo:      repository.NewPayrollRepository(s.store, s.logger),
	}
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetStore() *memory.Store {
	return s.store
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetClock() *Clock {
	return s.clock
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.clock.Now()
}

func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
