package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContract(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		c, err := NewContract(100, 100, 0.25, 0.05, 0.2)
		require.NoError(t, err)

		assert.Equal(t, 100.0, c.Spot())
		assert.Equal(t, 100.0, c.Strike())
		assert.Equal(t, 0.25, c.TimeToExpiry())
		assert.Equal(t, 0.05, c.RiskFreeRate())
		assert.Equal(t, 0.2, c.Volatility())
	})

	t.Run("d1 and d2", func(t *testing.T) {
		c, err := NewContract(100, 100, 0.25, 0.05, 0.2)
		require.NoError(t, err)

		expectedD1 := (math.Log(100.0/100.0) + (0.05+0.5*0.2*0.2)*0.25) / (0.2 * math.Sqrt(0.25))
		expectedD2 := expectedD1 - 0.2*math.Sqrt(0.25)

		assert.InDelta(t, expectedD1, c.D1(), 1e-12)
		assert.InDelta(t, expectedD2, c.D2(), 1e-12)
	})

	t.Run("negative rate is allowed", func(t *testing.T) {
		_, err := NewContract(100, 100, 0.25, -0.01, 0.2)
		assert.NoError(t, err)
	})

	t.Run("boundary rejection", func(t *testing.T) {
		cases := []struct {
			name                string
			s, k, expiry, sigma float64
			wantParam           string
		}{
			{"zero spot", 0, 100, 0.25, 0.2, "spot"},
			{"negative strike", 100, -5, 0.25, 0.2, "strike"},
			{"zero time", 100, 100, 0, 0.2, "timeToExpiry"},
			{"zero volatility", 100, 100, 0.25, 0, "volatility"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewContract(tc.s, tc.k, tc.expiry, 0.05, tc.sigma)
				require.Error(t, err)

				var invalid *InvalidParameterError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tc.wantParam, invalid.Param)
			})
		}
	})
}

func TestParseOptionType(t *testing.T) {
	typ, err := ParseOptionType("put")
	require.NoError(t, err)
	assert.Equal(t, Put, typ)

	typ, err = ParseOptionType("")
	require.NoError(t, err)
	assert.Equal(t, Call, typ)

	_, err = ParseOptionType("straddle")
	assert.Error(t, err)
}
