package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/response"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *model.TopInstancesReport {
	hourly := decimal.RequireFromString("0.1")
	equivalent := decimal.RequireFromString("73")
	return &model.TopInstancesReport{
		AccountID: "123456789012",
		Period:    model.DateInterval{Start: aws.String("2024-09-01"), End: aws.String("2024-10-01")},
		Rows: []model.RankedCost{
			{
				CostRecord: model.CostRecord{Service: model.ServiceRDS, InstanceType: "db.r5.large", OnDemandMonthlyCost: decimal.NewFromInt(100)},
				Reserved:   model.ReservedPrice{InstanceType: "db.r5.large", HourlyPrice: &hourly, ReservedEquivalentCost: &equivalent, PercentageSaving: decimal.RequireFromString("0.27")},
			},
			{
				CostRecord: model.CostRecord{Service: model.ServiceEC2, InstanceType: "m5.large", OnDemandMonthlyCost: decimal.NewFromInt(40)},
				Reserved:   model.ReservedPrice{InstanceType: "m5.large", LookupFailed: true},
			},
		},
		LookupFailures: 1,
	}
}

func TestTopInstancesCSV(t *testing.T) {
	out := TopInstancesCSV(sampleReport())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "db.r5.large")
	assert.Contains(t, lines[1], "100.00 USD")
	assert.Contains(t, lines[1], "0.1000 USD")
	assert.Contains(t, lines[1], "27.00%")
	assert.Contains(t, lines[2], "lookup failed")
	assert.NotContains(t, out, "\x1b[")
}

func TestDrawTopInstancesTable(t *testing.T) {
	var buf bytes.Buffer
	DrawTopInstancesTable(&buf, sampleReport())

	out := buf.String()
	assert.Contains(t, out, "123456789012")
	assert.Contains(t, out, "2024-09-01")
	assert.Contains(t, out, "db.r5.large")
	assert.Contains(t, out, "could not be priced")
}

func TestTopInstancesHTML(t *testing.T) {
	html := TopInstancesHTML(sampleReport())
	assert.Contains(t, html, "<table")
	assert.Contains(t, html, "m5.large")
}

func TestDrawIdleDatabasesTable(t *testing.T) {
	var buf bytes.Buffer
	DrawIdleDatabasesTable(&buf, &model.IdleDatabasesReport{LookbackDays: 30})
	assert.Contains(t, buf.String(), "No idle databases found")

	buf.Reset()
	DrawIdleDatabasesTable(&buf, &model.IdleDatabasesReport{
		LookbackDays: 30,
		Databases:    []model.IdleDatabase{{Identifier: "quiet", InstanceType: "db.t3.medium", Tagged: true}},
	})
	assert.Contains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "yes")
}

func TestRecommendationCSV(t *testing.T) {
	out := RecommendationCSV(&model.ReservationRecommendation{
		Hours:              4,
		AverageOnDemand:    decimal.NewFromInt(10),
		DiscountRate:       decimal.RequireFromString("0.2"),
		OptimalHourlyPrice: decimal.NewFromInt(8),
	})
	assert.Contains(t, out, "8.0000 USD")
	assert.Contains(t, out, "20.00%")
	assert.NotContains(t, out, "\x1b[")
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "27.34%", FormatPercentage(decimal.RequireFromString("0.2734")))
	assert.Equal(t, "-10.00%", FormatPercentage(decimal.RequireFromString("-0.1")))
	assert.Equal(t, "0.00%", FormatPercentage(decimal.Zero))
}

func TestAssignRankedColors(t *testing.T) {
	costs := []model.CostInfo{
		{CostGroup: model.CostGroup{"Total": {Amount: 10}}},
		{CostGroup: model.CostGroup{"Total": {Amount: 30}}},
		{CostGroup: model.CostGroup{"Total": {Amount: 20}}},
	}

	colors := assignRankedColors(costs)
	assert.Equal(t, []string{ColorRank3, ColorRank1, ColorRank2}, colors)
}

func TestEncode(t *testing.T) {
	payload := response.ConvertTopInstancesReport(sampleReport())

	var jsonOut bytes.Buffer
	require.NoError(t, Encode(&jsonOut, FormatJSON, payload))
	assert.Contains(t, jsonOut.String(), `"instance_type": "db.r5.large"`)
	assert.Contains(t, jsonOut.String(), `"lookup_failures": 1`)

	var yamlOut bytes.Buffer
	require.NoError(t, Encode(&yamlOut, FormatYAML, payload))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &decoded))
	assert.Equal(t, "123456789012", decoded["account_id"])
	assert.Len(t, decoded["instances"], 2)

	assert.Error(t, Encode(&bytes.Buffer{}, FormatTable, payload))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType(FormatJSON))
	assert.Equal(t, "text/csv", ContentType(FormatCSV))
	assert.Equal(t, "json", Extension(FormatJSON))
	assert.Equal(t, "txt", Extension(FormatTable))
}
