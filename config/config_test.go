package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genie.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "eu-west-2", cfg.AWS.Region)
	assert.Equal(t, "us-east-1", cfg.Pricing.Region)
	assert.Equal(t, "eu-west-2", cfg.Pricing.Location)
	assert.Equal(t, "1yr", cfg.Pricing.LeaseContractLength)
	assert.Equal(t, "No Upfront", cfg.Pricing.PurchaseOption)
	assert.Equal(t, "standard", cfg.Pricing.OfferingClass)
	assert.Equal(t, 4, cfg.Pricing.Concurrency)
	assert.Equal(t, 10, cfg.Report.TopN)
	assert.Equal(t, 730, cfg.Report.PeriodHours)
	assert.Equal(t, []model.ServiceName{model.ServiceRDS, model.ServiceEC2}, cfg.ReportServices())
	assert.Equal(t, 30, cfg.Idle.LookbackDays)
	assert.Equal(t, "finops:idle", cfg.Idle.TagKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "table", cfg.Output)
	assert.False(t, cfg.HasEmail())
	assert.False(t, cfg.HasExport())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `aws:
  region: us-west-2
  profile: finops
pricing:
  location: eu-west-1
  leaseContractLength: 3yr
  purchaseOption: All Upfront
  concurrency: 8
report:
  topN: 5
  periodHours: 1
  services: [rds]
email:
  from: genie@example.com
  to: [team@example.com]
export:
  s3Bucket: reports
logLevel: debug
output: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.AWS.Region)
	assert.Equal(t, "finops", cfg.AWS.Profile)
	assert.Equal(t, "eu-west-1", cfg.Pricing.Location)
	assert.Equal(t, "3yr", cfg.Pricing.LeaseContractLength)
	assert.Equal(t, "All Upfront", cfg.Pricing.PurchaseOption)
	assert.Equal(t, 8, cfg.Pricing.Concurrency)
	assert.Equal(t, 5, cfg.Report.TopN)
	assert.Equal(t, 1, cfg.Report.PeriodHours)
	assert.Equal(t, []model.ServiceName{model.ServiceRDS}, cfg.ReportServices())
	assert.True(t, cfg.HasEmail())
	assert.True(t, cfg.HasExport())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `aws:
  region: us-west-2
report:
  topN: 5
`)

	t.Setenv("GENIE_AWS_REGION", "ap-southeast-2")
	t.Setenv("GENIE_REPORT_TOP_N", "3")
	t.Setenv("GENIE_OUTPUT", "yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ap-southeast-2", cfg.AWS.Region)
	assert.Equal(t, "ap-southeast-2", cfg.Pricing.Location)
	assert.Equal(t, 3, cfg.Report.TopN)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{
			name:   "unknown pricing region",
			yaml:   "pricing:\n  region: eu-west-3\n",
			errMsg: "invalid pricing region",
		},
		{
			name:   "bad lease length",
			yaml:   "pricing:\n  leaseContractLength: 2yr\n",
			errMsg: "invalid lease contract length",
		},
		{
			name:   "bad purchase option",
			yaml:   "pricing:\n  purchaseOption: Monthly\n",
			errMsg: "invalid purchase option",
		},
		{
			name:   "bad offering class",
			yaml:   "pricing:\n  offeringClass: flexible\n",
			errMsg: "invalid offering class",
		},
		{
			name:   "zero concurrency",
			yaml:   "pricing:\n  concurrency: 0\n",
			errMsg: "pricing concurrency must be at least 1",
		},
		{
			name:   "zero topN",
			yaml:   "report:\n  topN: 0\n",
			errMsg: "report topN must be at least 1",
		},
		{
			name:   "negative period hours",
			yaml:   "report:\n  periodHours: -5\n",
			errMsg: "report periodHours must be at least 1",
		},
		{
			name:   "unsupported service",
			yaml:   "report:\n  services: [s3]\n",
			errMsg: `invalid report service "S3"`,
		},
		{
			name:   "half static credentials",
			yaml:   "aws:\n  accessKeyId: AKIAEXAMPLE\n",
			errMsg: "must be set together",
		},
		{
			name:   "mqtt without broker",
			yaml:   "mqtt:\n  enabled: true\n",
			errMsg: "mqtt broker address is required",
		},
		{
			name:   "bad output",
			yaml:   "output: xml\n",
			errMsg: "invalid output",
		},
		{
			name:   "bad log level",
			yaml:   "logLevel: warn\n",
			errMsg: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
