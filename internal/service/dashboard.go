package service

import (
	"context"
	"sync"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/sourcegraph/conc"
)

type DashboardService interface {
	GetOverview(ctx context.Context) (*dto.OverviewResponse, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{
		ServiceParams: params,
	}
}

// GetOverview loads every section concurrently. A failing section is left
// empty and reported in Errors so the rest of the page still renders.
func (s *dashboardService) GetOverview(ctx context.Context) (*dto.OverviewResponse, error) {
	orgID, err := types.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.OverviewResponse{}
	var mu sync.Mutex
	fail := func(section string, err error) {
		s.Logger.Errorw("dashboard section failed",
			"error", err,
			"organization_id", orgID,
			"section", section)
		mu.Lock()
		defer mu.Unlock()
		if resp.Errors == nil {
			resp.Errors = make(map[string]string)
		}
		resp.Errors[section] = ierr.DisplayMessage(err)
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		org, err := NewOrganizationService(s.ServiceParams).GetOrganization(ctx)
		if err != nil {
			fail("organization", err)
			return
		}
		resp.Organization = org
	})
	wg.Go(func() {
		status, err := NewBillingService(s.ServiceParams).GetBillingStatus(ctx)
		if err != nil {
			fail("billing", err)
			return
		}
		resp.Billing = status
	})
	wg.Go(func() {
		usage, err := NewUsageService(s.ServiceParams).GetUsage(ctx)
		if err != nil {
			fail("usage", err)
			return
		}
		resp.Usage = usage
	})

	if recovered := wg.WaitAndRecover(); recovered != nil {
		fail("overview", recovered.AsError())
	}
	return resp, nil
}
