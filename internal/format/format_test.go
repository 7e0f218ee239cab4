package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dooficoin/doofigame/internal/domain"
)

func TestBalance(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Decimal
		want string
	}{
		{"zero", "0", "0"},
		{"empty is zero", "", "0"},
		{"many zeros", "0.000000000000", "0"},
		{"tiny reward", "0.0000000000000000000000000000000000101", "1.01e-35"},
		{"rounds mantissa", "0.0000001239", "1.24e-7"},
		{"just at threshold", "0.000001", "0.000001"},
		{"regular", "12.5", "12.500000"},
		{"negative goes exponential", "-3", "-3.00e+0"},
		{"garbage passes through", "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Balance(tt.in))
		})
	}
}

func TestDoofiCoin(t *testing.T) {
	assert.Equal(t, "0", DoofiCoin("0"))
	assert.Equal(t, "1.010000e-35", DoofiCoin("0.0000000000000000000000000000000000101"))
	assert.Equal(t, "0.000100000000", DoofiCoin("0.0001"))
}

func TestExponential_MantissaCarry(t *testing.T) {
	assert.Equal(t, "1.00e-6", Exponential(decimal.RequireFromString("0.0000009999"), 2))
	assert.Equal(t, "1.50e+3", Exponential(decimal.NewFromInt(1500), 2))
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "1.50", Fixed("1.5", 2))
	assert.Equal(t, "x", Fixed("x", 2))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Players Killed", Title("players_killed"))
	assert.Equal(t, "Zombie", Title("zombie"))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "[#####.....]", Bar(50, 10))
	assert.Equal(t, "[..........]", Bar(-5, 10))
	assert.Equal(t, "[##########]", Bar(150, 10))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "25%", Percent(0.25))
}
