package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Logging    LoggingConfig    `mapstructure:"logging" validate:"required"`
	Mongo      MongoConfig      `mapstructure:"mongo" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
	Billing    BillingConfig    `mapstructure:"billing" validate:"required"`
	Mpesa      MpesaConfig      `mapstructure:"mpesa"`
	Stripe     StripeConfig     `mapstructure:"stripe"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Cron       CronConfig       `mapstructure:"cron"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required,oneof=local production"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type MongoConfig struct {
	URI      string        `mapstructure:"uri" validate:"required"`
	Database string        `mapstructure:"database" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	Secret string `mapstructure:"secret" validate:"required"`
	Issuer string `mapstructure:"issuer"`
}

// PlanConfig is one row of the plan limits table
type PlanConfig struct {
	Name         string `mapstructure:"name"`
	MaxLocations int    `mapstructure:"max_locations" validate:"gte=1"`
	MaxStaff     int    `mapstructure:"max_staff" validate:"gte=1"`
	MaxAdmins    int    `mapstructure:"max_admins" validate:"gte=1"`
	PriceCents   int64  `mapstructure:"price_cents" validate:"gte=0"`
}

type BillingConfig struct {
	TrialDays          int                   `mapstructure:"trial_days" validate:"gte=1"`
	BillingCycleDays   int                   `mapstructure:"billing_cycle_days" validate:"gte=1"`
	TrialGracePeriod   time.Duration         `mapstructure:"trial_grace_period" validate:"gte=0"`
	PaymentGracePeriod time.Duration         `mapstructure:"payment_grace_period" validate:"gte=0"`
	Currency           string                `mapstructure:"currency" validate:"required,len=3"`
	SupportEmail       string                `mapstructure:"support_email" validate:"required,email"`
	DevMode            bool                  `mapstructure:"dev_mode"`
	DefaultPlan        types.PlanID          `mapstructure:"default_plan" validate:"required"`
	Plans              map[string]PlanConfig `mapstructure:"plans" validate:"required,dive"`
}

// Plan returns the limits of a plan
func (b BillingConfig) Plan(id types.PlanID) (PlanConfig, bool) {
	plan, ok := b.Plans[string(id)]
	return plan, ok
}

type MpesaConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	ConsumerKey    string        `mapstructure:"consumer_key"`
	ConsumerSecret string        `mapstructure:"consumer_secret"`
	ShortCode      string        `mapstructure:"short_code"`
	Passkey        string        `mapstructure:"passkey"`
	CallbackURL    string        `mapstructure:"callback_url"`
	CallbackToken  string        `mapstructure:"callback_token"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	SuccessURL    string `mapstructure:"success_url"`
	CancelURL     string `mapstructure:"cancel_url"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	// PaymentsPerMinute caps payment initiations per organization
	PaymentsPerMinute int `mapstructure:"payments_per_minute"`
	Burst             int `mapstructure:"burst"`
}

type CronConfig struct {
	Key string `mapstructure:"key"`
}

func NewConfig() (*Configuration, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/afyastaff")

	v.SetEnvPrefix("AFYASTAFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every scalar key so env overrides work without a config file
func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("mongo.uri", d.Mongo.URI)
	v.SetDefault("mongo.database", d.Mongo.Database)
	v.SetDefault("mongo.timeout", d.Mongo.Timeout)
	v.SetDefault("auth.secret", d.Auth.Secret)
	v.SetDefault("auth.issuer", d.Auth.Issuer)
	v.SetDefault("billing.trial_days", d.Billing.TrialDays)
	v.SetDefault("billing.billing_cycle_days", d.Billing.BillingCycleDays)
	v.SetDefault("billing.trial_grace_period", d.Billing.TrialGracePeriod)
	v.SetDefault("billing.payment_grace_period", d.Billing.PaymentGracePeriod)
	v.SetDefault("billing.currency", d.Billing.Currency)
	v.SetDefault("billing.support_email", d.Billing.SupportEmail)
	v.SetDefault("billing.dev_mode", d.Billing.DevMode)
	v.SetDefault("billing.default_plan", d.Billing.DefaultPlan)
	v.SetDefault("billing.plans", d.Billing.Plans)
	v.SetDefault("mpesa.base_url", d.Mpesa.BaseURL)
	v.SetDefault("mpesa.consumer_key", "")
	v.SetDefault("mpesa.consumer_secret", "")
	v.SetDefault("mpesa.short_code", d.Mpesa.ShortCode)
	v.SetDefault("mpesa.passkey", "")
	v.SetDefault("mpesa.callback_url", "")
	v.SetDefault("mpesa.callback_token", "")
	v.SetDefault("mpesa.timeout", d.Mpesa.Timeout)
	v.SetDefault("mpesa.max_retries", d.Mpesa.MaxRetries)
	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.webhook_secret", "")
	v.SetDefault("stripe.success_url", "")
	v.SetDefault("stripe.cancel_url", "")
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "")
	v.SetDefault("sentry.sample_rate", d.Sentry.SampleRate)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("rate_limit.payments_per_minute", d.RateLimit.PaymentsPerMinute)
	v.SetDefault("rate_limit.burst", d.RateLimit.Burst)
	v.SetDefault("cron.key", "")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid configuration").
			Mark(ierr.ErrValidation)
	}

	if c.Billing.DevMode && c.Deployment.Mode == types.ModeProduction {
		return ierr.NewError("dev_mode enabled in production").
			WithHint("billing.dev_mode must be false when deployment.mode is production").
			Mark(ierr.ErrValidation)
	}

	if c.Mpesa.ConsumerKey != "" && c.Mpesa.CallbackToken == "" && c.Deployment.Mode == types.ModeProduction {
		return ierr.NewError("mpesa callback token missing").
			WithHint("mpesa.callback_token must be set when M-Pesa is enabled in production").
			Mark(ierr.ErrValidation)
	}

	if err := c.Billing.DefaultPlan.Validate(); err != nil {
		return err
	}
	for _, id := range []types.PlanID{types.PlanStarter, types.PlanProfessional, types.PlanEnterprise} {
		if _, ok := c.Billing.Plan(id); !ok {
			return ierr.NewError("missing plan limits").
				WithHintf("billing.plans.%s must be configured", id).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts, tests or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "afyastaff",
			Timeout:  10 * time.Second,
		},
		Auth: AuthConfig{
			Secret: "local-development-secret",
			Issuer: "afyastaff",
		},
		Billing: BillingConfig{
			TrialDays:        10,
			BillingCycleDays: 31,
			Currency:         "KES",
			SupportEmail:     "support@afyastaff.co.ke",
			DefaultPlan:      types.PlanStarter,
			Plans: map[string]PlanConfig{
				string(types.PlanStarter): {
					Name:         "Starter",
					MaxLocations: 1,
					MaxStaff:     25,
					MaxAdmins:    2,
					PriceCents:   250000,
				},
				string(types.PlanProfessional): {
					Name:         "Professional",
					MaxLocations: 3,
					MaxStaff:     100,
					MaxAdmins:    5,
					PriceCents:   750000,
				},
				string(types.PlanEnterprise): {
					Name:         "Enterprise",
					MaxLocations: 10,
					MaxStaff:     500,
					MaxAdmins:    15,
					PriceCents:   2000000,
				},
			},
		},
		Mpesa: MpesaConfig{
			BaseURL:    "https://sandbox.safaricom.co.ke",
			ShortCode:  "174379",
			Timeout:    30 * time.Second,
			MaxRetries: 2,
		},
		Sentry:    SentryConfig{SampleRate: 1.0},
		Cache:     CacheConfig{Enabled: true, TTL: 30 * time.Second},
		RateLimit: RateLimitConfig{PaymentsPerMinute: 5, Burst: 2},
	}
}
