package service

import (
	"context"
	"fmt"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/payroll"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
)

type PayrollService interface {
	RunPayroll(ctx context.Context, req dto.RunPayrollRequest) (*dto.PayrollResponse, error)
	ListPayroll(ctx context.Context, period string) (*dto.PayrollResponse, error)
}

type payrollService struct {
	ServiceParams
}

func NewPayrollService(params ServiceParams) PayrollService {
	return &payrollService{
		ServiceParams: params,
	}
}

// RunPayroll computes one entry per live staff member with a basic salary.
// Running a period again overwrites its entries.
func (s *payrollService) RunPayroll(ctx context.Context, req dto.RunPayrollRequest) (*dto.PayrollResponse, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityPayrollManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	members, err := s.StaffRepo.List(ctx, staff.Filter{OrganizationID: actor.OrganizationID})
	if err != nil {
		return nil, err
	}
	paid := lo.Filter(members, func(m *staff.Staff, _ int) bool { return m.BasicSalary.IsPositive() })

	entries := make([]*payroll.Entry, 0, len(paid))
	for _, m := range paid {
		entry := &payroll.Entry{
			ID:        payrollEntryID(req.Period, m.ID),
			StaffID:   m.ID,
			StaffName: m.Name,
			Period:    req.Period,
			Breakdown: payroll.Calculate(m.BasicSalary),
			BaseModel: types.GetDefaultBaseModel(ctx),
		}
		if err := s.PayrollRepo.Upsert(ctx, entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	s.Logger.Infow("payroll run",
		"organization_id", actor.OrganizationID,
		"period", req.Period,
		"entries", len(entries))
	return payrollResponse(req.Period, entries), nil
}

func (s *payrollService) ListPayroll(ctx context.Context, period string) (*dto.PayrollResponse, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityPayrollManage)
	if err != nil {
		return nil, err
	}
	if err := dto.ValidatePeriod(period); err != nil {
		return nil, err
	}
	entries, err := s.PayrollRepo.List(ctx, actor.OrganizationID, period)
	if err != nil {
		return nil, err
	}
	return payrollResponse(period, entries), nil
}

func payrollEntryID(period, staffID string) string {
	return fmt.Sprintf("%s_%s_%s", types.UUID_PREFIX_PAYROLL_ENTRY, period, staffID)
}

func payrollResponse(period string, entries []*payroll.Entry) *dto.PayrollResponse {
	totals := lo.Reduce(entries, func(acc payroll.Breakdown, e *payroll.Entry, _ int) payroll.Breakdown {
		return acc.Add(e.Breakdown)
	}, payroll.Breakdown{})
	if entries == nil {
		entries = []*payroll.Entry{}
	}
	return &dto.PayrollResponse{
		Period:  period,
		Entries: entries,
		Totals:  totals,
	}
}
