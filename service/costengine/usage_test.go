package costengine

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUsageReport(t *testing.T) {
	input := `Hour,Reserved($),On Demand($),Unused Reserved($)
2024-09-01 00:00,1.20,3.40,0.10
2024-09-01 01:00,1.20,"$1,002.60",
2024-09-01 02:00,,0,0.25
`

	got, err := ParseUsageReport(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assertDecimal(t, "1.20", got[0].ReservedCost)
	assertDecimal(t, "3.40", got[0].OnDemandCost)
	assertDecimal(t, "0.10", got[0].UnusedReservedCost)

	assertDecimal(t, "1002.60", got[1].OnDemandCost)
	assertDecimal(t, "0", got[1].UnusedReservedCost)

	assertDecimal(t, "0", got[2].ReservedCost)
	assertDecimal(t, "0", got[2].OnDemandCost)
	assertDecimal(t, "0.25", got[2].UnusedReservedCost)
}

func TestParseUsageReportHeaderVariants(t *testing.T) {
	input := "\ufeffON DEMAND($), reserved($)\n4,1\n6,1\n"

	got, err := ParseUsageReport(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assertDecimal(t, "4", got[0].OnDemandCost)
	assertDecimal(t, "1", got[0].ReservedCost)
	assert.True(t, got[1].UnusedReservedCost.Equal(decimal.Zero))
}

func TestParseUsageReportFeedsOptimizer(t *testing.T) {
	input := "Reserved($),On Demand($),Unused Reserved($)\n0,10,0\n0,10,0\n0,10,0\n0,10,0\n"

	records, err := ParseUsageReport(strings.NewReader(input))
	require.NoError(t, err)

	got, err := OptimalHourlyReservation(records, decimal.RequireFromString("0.2"))
	require.NoError(t, err)
	assertDecimal(t, "8", got)
}

func TestParseUsageReportErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		errMsg  string
	}{
		{
			name:    "empty file",
			input:   "",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "header only",
			input:   "Reserved($),On Demand($),Unused Reserved($)\n",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "missing on demand column",
			input:   "Reserved($),Unused Reserved($)\n1,2\n",
			wantErr: ErrMalformedUsage,
			errMsg:  "On Demand($)",
		},
		{
			name:    "bad number",
			input:   "On Demand($)\n1\nabc\n",
			wantErr: ErrMalformedUsage,
			errMsg:  "line 3",
		},
		{
			name:    "negative amount",
			input:   "On Demand($)\n-1\n",
			wantErr: ErrMalformedUsage,
			errMsg:  "negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUsageReport(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}
