// Package config loads rate-genie settings.
//
// Configuration precedence (highest to lowest):
//  1. Command line flags (applied by the caller after Load)
//  2. Environment variables (GENIE_* prefix)
//  3. Configuration file values
//  4. Default values
//
// The configuration file is optional.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/spf13/viper"
)

// Config is the complete rate-genie configuration.
type Config struct {
	AWS     AWSConfig     `mapstructure:"aws"`
	Pricing PricingConfig `mapstructure:"pricing"`
	Report  ReportConfig  `mapstructure:"report"`
	Idle    IdleConfig    `mapstructure:"idle"`
	Email   EmailConfig   `mapstructure:"email"`
	MQTT    MQTTConfig    `mapstructure:"mqtt"`
	Export  ExportConfig  `mapstructure:"export"`

	// LogLevel is one of debug, info, error.
	LogLevel string `mapstructure:"logLevel"`

	// Output is the report format: table, json, yaml or csv.
	Output string `mapstructure:"output"`
}

// AWSConfig selects the account and region reports run against.
// Static keys are optional; when empty the default credential chain is used.
type AWSConfig struct {
	Region          string `mapstructure:"region"`
	Profile         string `mapstructure:"profile"`
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	SessionToken    string `mapstructure:"sessionToken"`
}

// PricingConfig controls reserved price lookups.
type PricingConfig struct {
	// Region is the Pricing API endpoint region (us-east-1, eu-central-1 or ap-south-1).
	Region string `mapstructure:"region"`

	// Location is the region code the reserved SKUs are priced for.
	// Defaults to AWS.Region.
	Location string `mapstructure:"location"`

	LeaseContractLength string `mapstructure:"leaseContractLength"`
	PurchaseOption      string `mapstructure:"purchaseOption"`
	OfferingClass       string `mapstructure:"offeringClass"`
	DatabaseEngine      string `mapstructure:"databaseEngine"`
	OperatingSystem     string `mapstructure:"operatingSystem"`

	// Concurrency bounds parallel pricing lookups.
	Concurrency int `mapstructure:"concurrency"`
}

// ReportConfig controls the top instances report.
type ReportConfig struct {
	TopN int `mapstructure:"topN"`

	// PeriodHours converts reserved hourly prices into the billing period of
	// the on-demand figures. 730 is an average month.
	PeriodHours int `mapstructure:"periodHours"`

	Services []string `mapstructure:"services"`
}

// IdleConfig controls the idle database finder.
type IdleConfig struct {
	LookbackDays int    `mapstructure:"lookbackDays"`
	TagKey       string `mapstructure:"tagKey"`
	TagValue     string `mapstructure:"tagValue"`
}

// EmailConfig is used when reports are sent through SES.
type EmailConfig struct {
	From string   `mapstructure:"from"`
	To   []string `mapstructure:"to"`
}

// MQTTConfig is used when reports are published to a broker.
type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	TopicPrefix string `mapstructure:"topicPrefix"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

// ExportConfig is used when reports are written to S3.
type ExportConfig struct {
	S3Bucket string `mapstructure:"s3Bucket"`
	S3Prefix string `mapstructure:"s3Prefix"`
}

var (
	pricingRegions    = []string{"us-east-1", "eu-central-1", "ap-south-1"}
	leaseLengths      = []string{"1yr", "3yr"}
	purchaseOptions   = []string{"No Upfront", "Partial Upfront", "All Upfront"}
	offeringClasses   = []string{"standard", "convertible"}
	outputFormats     = []string{"table", "json", "yaml", "csv"}
	logLevels         = []string{"debug", "info", "error"}
	supportedServices = []string{string(model.ServiceRDS), string(model.ServiceEC2)}
)

var envBindings = map[string]string{
	"aws.region":                  "GENIE_AWS_REGION",
	"aws.profile":                 "GENIE_AWS_PROFILE",
	"aws.accessKeyId":             "GENIE_AWS_ACCESS_KEY_ID",
	"aws.secretAccessKey":         "GENIE_AWS_SECRET_ACCESS_KEY",
	"aws.sessionToken":            "GENIE_AWS_SESSION_TOKEN",
	"pricing.region":              "GENIE_PRICING_REGION",
	"pricing.location":            "GENIE_PRICING_LOCATION",
	"pricing.leaseContractLength": "GENIE_PRICING_LEASE_CONTRACT_LENGTH",
	"pricing.purchaseOption":      "GENIE_PRICING_PURCHASE_OPTION",
	"pricing.concurrency":         "GENIE_PRICING_CONCURRENCY",
	"report.topN":                 "GENIE_REPORT_TOP_N",
	"report.periodHours":          "GENIE_REPORT_PERIOD_HOURS",
	"idle.lookbackDays":           "GENIE_IDLE_LOOKBACK_DAYS",
	"email.from":                  "GENIE_EMAIL_FROM",
	"mqtt.broker":                 "GENIE_MQTT_BROKER",
	"mqtt.username":               "GENIE_MQTT_USERNAME",
	"mqtt.password":               "GENIE_MQTT_PASSWORD",
	"export.s3Bucket":             "GENIE_EXPORT_S3_BUCKET",
	"logLevel":                    "GENIE_LOG_LEVEL",
	"output":                      "GENIE_OUTPUT",
}

// Load reads the configuration file at path (skipped when path is empty),
// applies env overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("GENIE")
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("aws.region", "eu-west-2")
	v.SetDefault("pricing.region", "us-east-1")
	v.SetDefault("pricing.leaseContractLength", "1yr")
	v.SetDefault("pricing.purchaseOption", "No Upfront")
	v.SetDefault("pricing.offeringClass", "standard")
	v.SetDefault("pricing.databaseEngine", "MySQL")
	v.SetDefault("pricing.operatingSystem", "Linux")
	v.SetDefault("pricing.concurrency", 4)
	v.SetDefault("report.topN", 10)
	v.SetDefault("report.periodHours", 730)
	v.SetDefault("report.services", supportedServices)
	v.SetDefault("idle.lookbackDays", 30)
	v.SetDefault("idle.tagKey", "finops:idle")
	v.SetDefault("idle.tagValue", "true")
	v.SetDefault("mqtt.topicPrefix", "rate_genie")
	v.SetDefault("logLevel", "info")
	v.SetDefault("output", "table")
}

func (c *Config) normalize() {
	if c.Pricing.Location == "" {
		c.Pricing.Location = c.AWS.Region
	}
	services := make([]string, 0, len(c.Report.Services))
	for _, s := range c.Report.Services {
		services = append(services, strings.ToUpper(strings.TrimSpace(s)))
	}
	c.Report.Services = services
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AWS.Region) == "" {
		return fmt.Errorf("aws region is required")
	}
	if (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == "") {
		return fmt.Errorf("aws access key id and secret access key must be set together")
	}

	if !slices.Contains(pricingRegions, c.Pricing.Region) {
		return fmt.Errorf("invalid pricing region %q, must be one of: %s", c.Pricing.Region, strings.Join(pricingRegions, ", "))
	}
	if !slices.Contains(leaseLengths, c.Pricing.LeaseContractLength) {
		return fmt.Errorf("invalid lease contract length %q, must be one of: %s", c.Pricing.LeaseContractLength, strings.Join(leaseLengths, ", "))
	}
	if !slices.Contains(purchaseOptions, c.Pricing.PurchaseOption) {
		return fmt.Errorf("invalid purchase option %q, must be one of: %s", c.Pricing.PurchaseOption, strings.Join(purchaseOptions, ", "))
	}
	if !slices.Contains(offeringClasses, c.Pricing.OfferingClass) {
		return fmt.Errorf("invalid offering class %q, must be one of: %s", c.Pricing.OfferingClass, strings.Join(offeringClasses, ", "))
	}
	if c.Pricing.Concurrency < 1 {
		return fmt.Errorf("pricing concurrency must be at least 1, got %d", c.Pricing.Concurrency)
	}

	if c.Report.TopN < 1 {
		return fmt.Errorf("report topN must be at least 1, got %d", c.Report.TopN)
	}
	if c.Report.PeriodHours < 1 {
		return fmt.Errorf("report periodHours must be at least 1, got %d", c.Report.PeriodHours)
	}
	if len(c.Report.Services) == 0 {
		return fmt.Errorf("at least one report service must be configured")
	}
	for _, s := range c.Report.Services {
		if !slices.Contains(supportedServices, s) {
			return fmt.Errorf("invalid report service %q, must be one of: %s", s, strings.Join(supportedServices, ", "))
		}
	}

	if c.Idle.LookbackDays < 1 {
		return fmt.Errorf("idle lookbackDays must be at least 1, got %d", c.Idle.LookbackDays)
	}

	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt broker address is required when enabled")
	}

	if !slices.Contains(outputFormats, c.Output) {
		return fmt.Errorf("invalid output %q, must be one of: %s", c.Output, strings.Join(outputFormats, ", "))
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.LogLevel, strings.Join(logLevels, ", "))
	}

	return nil
}

// ReportServices returns the configured services as model names.
func (c *Config) ReportServices() []model.ServiceName {
	services := make([]model.ServiceName, 0, len(c.Report.Services))
	for _, s := range c.Report.Services {
		services = append(services, model.ServiceName(s))
	}
	return services
}

// HasEmail reports whether SES delivery is configured.
func (c *Config) HasEmail() bool {
	return c.Email.From != "" && len(c.Email.To) > 0
}

// HasExport reports whether S3 export is configured.
func (c *Config) HasExport() bool {
	return c.Export.S3Bucket != ""
}
