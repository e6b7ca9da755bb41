package cli_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/backend/internal/cli"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"7.5", "$7.50"},
		{"999.999", "$1,000.00"},
		{"1234.5", "$1,234.50"},
		{"1234567", "$1,234,567.00"},
		{"-20", "-$20.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2h", cli.FormatHours(2))
	assert.Equal(t, "1.5h", cli.FormatHours(1.5))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "112%", cli.FormatPercent(112))
}
