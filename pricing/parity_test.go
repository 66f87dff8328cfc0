package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutCallParity(t *testing.T) {
	c := mustContract(t, 100, 100, 0.25, 0.05, 0.2)

	result := c.PutCallParity()
	assert.True(t, result.Holds)
	assert.InDelta(t, 0, result.Difference, 1e-4)
}

func TestMoneyness(t *testing.T) {
	cases := []struct {
		name string
		spot float64
		want Moneyness
	}{
		{"well above strike", 110, InTheMoney},
		{"just above threshold", 105.01, InTheMoney},
		{"at the money", 100, AtTheMoney},
		{"upper edge of band", 105, AtTheMoney},
		{"lower edge of band", 95, AtTheMoney},
		{"just below threshold", 94.99, OutOfTheMoney},
		{"well below strike", 80, OutOfTheMoney},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mustContract(t, tc.spot, 100, 0.25, 0.05, 0.2)
			assert.Equal(t, tc.want, c.Moneyness())
			assert.InDelta(t, tc.spot/100, c.MoneynessRatio(), 1e-12)
		})
	}
}

func TestTimeValue(t *testing.T) {
	t.Run("at the money is all time value", func(t *testing.T) {
		c := mustContract(t, 100, 100, 0.25, 0.05, 0.2)
		assert.InDelta(t, c.CallPrice(), c.TimeValue(Call), 1e-12)
		assert.InDelta(t, c.PutPrice(), c.TimeValue(Put), 1e-12)
	})

	t.Run("in the money strips intrinsic value", func(t *testing.T) {
		c := mustContract(t, 120, 100, 0.25, 0.05, 0.2)
		assert.InDelta(t, c.CallPrice()-20, c.TimeValue(Call), 1e-12)
		assert.Greater(t, c.TimeValue(Call), 0.0)
	})
}
