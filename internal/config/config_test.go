package config

import (
	"testing"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())

	starter, ok := cfg.Billing.Plan(types.PlanStarter)
	require.True(t, ok)
	assert.Equal(t, 2, starter.MaxAdmins)
	assert.Equal(t, 10, cfg.Billing.TrialDays)
	assert.Equal(t, 31, cfg.Billing.BillingCycleDays)
	assert.Zero(t, cfg.Billing.TrialGracePeriod)
}

func TestDevModeRejectedInProduction(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Deployment.Mode = types.ModeProduction
	cfg.Billing.DevMode = true

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	cfg.Billing.DevMode = false
	assert.NoError(t, cfg.Validate())
}

func TestMissingPlanRejected(t *testing.T) {
	cfg := GetDefaultConfig()
	delete(cfg.Billing.Plans, string(types.PlanEnterprise))
	assert.True(t, ierr.IsValidation(cfg.Validate()))
}

func TestMpesaCallbackTokenRequiredInProduction(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Deployment.Mode = types.ModeProduction
	cfg.Mpesa.ConsumerKey = "key"

	assert.True(t, ierr.IsValidation(cfg.Validate()))

	cfg.Mpesa.CallbackToken = "callback-secret"
	assert.NoError(t, cfg.Validate())
}
