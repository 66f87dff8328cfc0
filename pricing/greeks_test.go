package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreeks(t *testing.T) {
	c := mustContract(t, 100, 100, 0.25, 0.05, 0.2)

	t.Run("reference scenario", func(t *testing.T) {
		assert.InDelta(t, 0.5622, c.Delta(Call), 1e-3)
		assert.InDelta(t, 0.0376, c.Gamma(), 1e-3)
		assert.InDelta(t, 0.1955, c.Vega(), 1e-3)
		assert.InDelta(t, -0.0176, c.Theta(Call), 1e-3)
		assert.InDelta(t, 0.1211, c.Rho(Call), 1e-3)
	})

	t.Run("delta bounds and relationship", func(t *testing.T) {
		for _, s := range []float64{40, 80, 100, 120, 250} {
			c := mustContract(t, s, 100, 0.25, 0.05, 0.2)

			callDelta := c.Delta(Call)
			putDelta := c.Delta(Put)

			assert.GreaterOrEqual(t, callDelta, 0.0)
			assert.LessOrEqual(t, callDelta, 1.0)
			assert.GreaterOrEqual(t, putDelta, -1.0)
			assert.LessOrEqual(t, putDelta, 0.0)

			// N(d1) - (N(d1) - 1) == 1.
			assert.InDelta(t, 1.0, callDelta-putDelta, 1e-9)
		}
	})

	t.Run("gamma and vega shared between types", func(t *testing.T) {
		assert.Greater(t, c.Gamma(), 0.0)
		assert.Greater(t, c.Vega(), 0.0)

		callGreeks := c.AllGreeks(Call)
		putGreeks := c.AllGreeks(Put)
		assert.Equal(t, callGreeks.Gamma, putGreeks.Gamma)
		assert.Equal(t, callGreeks.Vega, putGreeks.Vega)
	})

	t.Run("gamma peaks near the money", func(t *testing.T) {
		atm := mustContract(t, 100, 100, 0.25, 0.05, 0.2)
		itm := mustContract(t, 110, 100, 0.25, 0.05, 0.2)
		otm := mustContract(t, 90, 100, 0.25, 0.05, 0.2)

		assert.Greater(t, atm.Gamma(), itm.Gamma())
		assert.Greater(t, atm.Gamma(), otm.Gamma())
	})

	t.Run("theta decay", func(t *testing.T) {
		// ATM options lose value as time passes.
		assert.Less(t, c.Theta(Call), 0.0)
		assert.Less(t, c.Theta(Put), 0.0)

		// Call theta is more negative than put theta when rates are
		// positive: the put side earns carry on the discounted strike.
		assert.Less(t, c.Theta(Call), c.Theta(Put))
	})

	t.Run("rho signs", func(t *testing.T) {
		assert.Greater(t, c.Rho(Call), 0.0)
		assert.Less(t, c.Rho(Put), 0.0)
	})

	t.Run("full set matches individual greeks", func(t *testing.T) {
		g := c.AllGreeks(Put)
		assert.Equal(t, c.Delta(Put), g.Delta)
		assert.Equal(t, c.Gamma(), g.Gamma)
		assert.Equal(t, c.Theta(Put), g.Theta)
		assert.Equal(t, c.Vega(), g.Vega)
		assert.Equal(t, c.Rho(Put), g.Rho)
	})
}
