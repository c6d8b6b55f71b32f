package costengine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/shopspring/decimal"
)

const (
	columnReserved       = "reserved($)"
	columnOnDemand       = "ondemand($)"
	columnUnusedReserved = "unusedreserved($)"
)

// ParseUsageReport reads an hourly usage report in CSV form with the columns
// "Reserved($)", "On Demand($)" and "Unused Reserved($)", one row per hour.
// Header matching ignores case and spaces; only "On Demand($)" is required.
// Cell values may carry "$" and thousands separators; empty cells are zero.
func ParseUsageReport(r io.Reader) ([]model.UsageRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrMalformedUsage, err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[normalizeHeader(name)] = i
	}

	onDemandIdx, ok := columns[columnOnDemand]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q column", ErrMalformedUsage, "On Demand($)")
	}
	reservedIdx, hasReserved := columns[columnReserved]
	unusedIdx, hasUnused := columns[columnUnusedReserved]

	var usage []model.UsageRecord
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedUsage, line, err)
		}

		var record model.UsageRecord
		if record.OnDemandCost, err = parseCell(row, onDemandIdx); err != nil {
			return nil, fmt.Errorf("%w: line %d, On Demand($): %w", ErrMalformedUsage, line, err)
		}
		if hasReserved {
			if record.ReservedCost, err = parseCell(row, reservedIdx); err != nil {
				return nil, fmt.Errorf("%w: line %d, Reserved($): %w", ErrMalformedUsage, line, err)
			}
		}
		if hasUnused {
			if record.UnusedReservedCost, err = parseCell(row, unusedIdx); err != nil {
				return nil, fmt.Errorf("%w: line %d, Unused Reserved($): %w", ErrMalformedUsage, line, err)
			}
		}

		usage = append(usage, record)
	}

	if len(usage) == 0 {
		return nil, ErrEmptyInput
	}

	return usage, nil
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(name)
	return strings.Join(strings.Fields(name), "")
}

func parseCell(row []string, idx int) (decimal.Decimal, error) {
	if idx >= len(row) {
		return decimal.Zero, nil
	}

	value := strings.TrimSpace(row[idx])
	value = strings.ReplaceAll(value, "$", "")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %s", value)
	}

	return amount, nil
}
