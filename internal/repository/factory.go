package repository

import (
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
	"github.com/afyastaff/afyastaff/internal/store"
)

func NewOrganizationRepository(s store.Store, log *logger.Logger) organization.Repository {
	return &organizationRepository{coll: store.NewCollection[organization.Organization](s, store.CollectionOrganizations), log: log}
}

func NewSubscriptionRepository(s store.Store, log *logger.Logger) subscription.Repository {
	return &subscriptionRepository{coll: store.NewCollection[subscription.Subscription](s, store.CollectionSubscriptions), log: log}
}

func NewPaymentRepository(s store.Store, log *logger.Logger) payment.Repository {
	return &paymentRepository{coll: store.NewCollection[payment.Payment](s, store.CollectionPaymentRecords), log: log}
}

func NewBillingLogRepository(s store.Store, log *logger.Logger) billinglog.Repository {
	return &billingLogRepository{coll: store.NewCollection[billinglog.BillingLog](s, store.CollectionBillingLogs), log: log}
}

func NewLocationRepository(s store.Store, log *logger.Logger) location.Repository {
	return &locationRepository{coll: store.NewCollection[location.Location](s, store.CollectionLocations), log: log}
}

func NewStaffRepository(s store.Store, log *logger.Logger) staff.Repository {
	return &staffRepository{coll: store.NewCollection[staff.Staff](s, store.CollectionStaff), log: log}
}

func NewSeatRepository(s store.Store, log *logger.Logger) seat.Repository {
	return &seatRepository{coll: store.NewCollection[seat.Ledger](s, store.CollectionSeatLedgers), log: log}
}

func NewRoleRepository(s store.Store, log *logger.Logger) role.Repository {
	return &roleRepository{coll: store.NewCollection[role.CustomRole](s, store.CollectionCustomRoles), log: log}
}

func NewLeaveRepository(s store.Store, log *logger.Logger) leave.Repository {
	return &leaveRepository{coll: store.NewCollection[leave.Request](s, store.CollectionLeaveRequests), log: log}
}

func NewDocumentRepository(s store.Store, log *logger.Logger) document.Repository {
	return &documentRepository{
		docs: store.NewCollection[document.PolicyDocument](s, store.CollectionPolicyDocuments),
		acks: store.NewCollection[document.Acknowledgement](s, store.CollectionDocumentAcknowledgements),
		log:  log,
	}
}

func NewScheduleRepository(s store.Store, log *logger.Logger) schedule.Repository {
	return &scheduleRepository{coll: store.NewCollection[schedule.Shift](s, store.CollectionShifts), log: log}
}

func NewAttendanceRepository(s store.Store, log *logger.Logger) attendance.Repository {
	return &attendanceRepository{coll: store.NewCollection[attendance.Record](s, store.CollectionAttendanceRecords), log: log}
}

func NewPayrollRepository(s store.Store, log *logger.Logger) payroll.Repository {
	return &payrollRepository{coll: store.NewCollection[payroll.Entry](s, store.CollectionPayrollEntries), log: log}
}
