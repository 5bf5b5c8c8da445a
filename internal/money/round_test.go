package money_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"docdesk/internal/money"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 4410.0, money.Round(4410))
	assert.Equal(t, 1.01, money.Round(1.005))
	assert.Equal(t, 2.68, money.Round(2.675))
	assert.Equal(t, -1.01, money.Round(-1.005))
	assert.Equal(t, 0.0, money.Round(math.NaN()))
	assert.Equal(t, 0.0, money.Round(math.Inf(1)))
}

func TestRoundToRupee(t *testing.T) {
	assert.Equal(t, 1181.0, money.RoundToRupee(1180.5))
	assert.Equal(t, 1180.0, money.RoundToRupee(1180.49))
}

func TestRoundOff(t *testing.T) {
	assert.InDelta(t, 0.30, money.RoundOff(59319.70), 1e-9)
	assert.InDelta(t, -0.40, money.RoundOff(59320.40), 1e-9)
	assert.Equal(t, 0.0, money.RoundOff(59320))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.3, money.Sum(0.1, 0.2))
	assert.Equal(t, 59320.0, money.Sum(49000, 4410, 4410, 1500))
	assert.Equal(t, 5.0, money.Sum(5, math.NaN()))
	assert.Equal(t, 0.0, money.Sum())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 8820.0, money.Percent(49000, 18))
	assert.Equal(t, 4410.0, money.Percent(49000, 9))
	assert.Equal(t, 0.0, money.Percent(0, 18))
}

func TestMul(t *testing.T) {
	assert.Equal(t, 2450.0, money.Mul(2, 1225))
	assert.Equal(t, 0.33, money.Mul(3, 0.11))
}

func TestMul_OutOfRangeIsZero(t *testing.T) {
	assert.Equal(t, 0.0, money.Mul(1e200, 1e200))
	assert.Equal(t, 0.0, money.Mul(math.Inf(1), 2))

	v, ok := money.Product(1e200, 1e200)
	assert.False(t, ok)
	assert.Equal(t, 0.0, v)

	v, ok = money.Product(4, 1250)
	assert.True(t, ok)
	assert.Equal(t, 5000.0, v)
}

func TestSum_OutOfRangeIsZero(t *testing.T) {
	assert.Equal(t, 0.0, money.Sum(math.MaxFloat64, math.MaxFloat64))
	assert.Equal(t, 0.0, money.Percent(math.MaxFloat64, 1000))
	assert.Equal(t, 0.0, money.RoundOff(math.Inf(-1)))
}
