package service

import (
	"context"
	"testing"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/payroll"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PayrollServiceSuite struct {
	ServiceSuite
	service  PayrollService
	ownerCtx context.Context
}

func TestPayrollService(t *testing.T) {
	suite.Run(t, new(PayrollServiceSuite))
}

func (s *PayrollServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewPayrollService(s.params)
	s.ownerCtx, _ = s.signup(types.PlanStarter)
}

func (s *PayrollServiceSuite) hire(name string, salary int64) *staff.Staff {
	member, err := NewStaffService(s.params).CreateStaff(s.ownerCtx, dto.CreateStaffRequest{
		Name:        name,
		BasicSalary: decimal.NewFromInt(salary),
	})
	s.Require().NoError(err)
	return member
}

func (s *PayrollServiceSuite) TestRunPayroll() {
	nurse := s.hire("Nurse", 50000)
	s.hire("Cleaner", 15000)

	resp, err := s.service.RunPayroll(s.ownerCtx, dto.RunPayrollRequest{Period: "2026-03"})
	s.Require().NoError(err)
	s.Equal("2026-03", resp.Period)
	s.Len(resp.Entries, 2, "the owner has no salary")
	s.True(decimal.NewFromInt(65000).Equal(resp.Totals.Gross))
	s.True(decimal.RequireFromString("52491.65").Equal(resp.Totals.Net), "net %s", resp.Totals.Net)

	entry, ok := lo.Find(resp.Entries, func(e *payroll.Entry) bool { return e.StaffID == nurse.ID })
	s.Require().True(ok)
	s.Equal("Nurse", entry.StaffName)
	s.True(decimal.RequireFromString("5845.85").Equal(entry.Breakdown.PAYE))

	listed, err := s.service.ListPayroll(s.ownerCtx, "2026-03")
	s.Require().NoError(err)
	s.Len(listed.Entries, 2)
	s.True(resp.Totals.Net.Equal(listed.Totals.Net))
}

func (s *PayrollServiceSuite) TestRunPayroll_RerunOverwrites() {
	nurse := s.hire("Nurse", 50000)
	_, err := s.service.RunPayroll(s.ownerCtx, dto.RunPayrollRequest{Period: "2026-03"})
	s.Require().NoError(err)

	_, err = NewStaffService(s.params).UpdateStaff(s.ownerCtx, nurse.ID, dto.UpdateStaffRequest{
		BasicSalary: lo.ToPtr(decimal.NewFromInt(100000)),
	})
	s.Require().NoError(err)
	_, err = s.service.RunPayroll(s.ownerCtx, dto.RunPayrollRequest{Period: "2026-03"})
	s.Require().NoError(err)

	listed, err := s.service.ListPayroll(s.ownerCtx, "2026-03")
	s.Require().NoError(err)
	s.Require().Len(listed.Entries, 1)
	s.True(decimal.RequireFromString("71617.65").Equal(listed.Entries[0].Breakdown.Net))

	other, err := s.service.ListPayroll(s.ownerCtx, "2026-04")
	s.Require().NoError(err)
	s.Empty(other.Entries)
	s.True(other.Totals.Gross.IsZero())
}

func (s *PayrollServiceSuite) TestRunPayroll_Rejects() {
	_, err := s.service.RunPayroll(s.ownerCtx, dto.RunPayrollRequest{Period: "March 2026"})
	s.True(ierr.IsValidation(err))

	_, err = s.service.ListPayroll(s.ownerCtx, "2026-13")
	s.True(ierr.IsValidation(err))

	managerCtx, _ := s.addStaff(s.ownerCtx, types.SystemRoleManager)
	_, err = s.service.RunPayroll(managerCtx, dto.RunPayrollRequest{Period: "2026-03"})
	s.True(ierr.IsPermissionDenied(err))
}
