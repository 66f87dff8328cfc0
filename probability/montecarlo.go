package probability

import (
	"math"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/bowenq/bsengine/pricing"
)

// DefaultSimulations is the trial count used when the caller passes a
// non-positive one.
const DefaultSimulations = 10000

var rngPool = sync.Pool{
	New: func() interface{} {
		return rand.New(rand.NewSource(uint64(rand.Int63())))
	},
}

// Estimate is one Monte Carlo pricing run. The estimates are noisy by
// construction; the standard errors and 95% confidence half-widths bound
// that noise. Nothing is cached between runs.
type Estimate struct {
	CallPrice        float64 `json:"call_price"`
	PutPrice         float64 `json:"put_price"`
	CallStdError     float64 `json:"call_std_error"`
	PutStdError      float64 `json:"put_std_error"`
	CallConfidence95 float64 `json:"call_confidence_95"`
	PutConfidence95  float64 `json:"put_confidence_95"`
	Simulations      int     `json:"simulations"`
}

// MonteCarloPrice estimates call and put prices by drawing terminal prices
// under risk-neutral geometric Brownian motion,
// S_T = S*exp((r - sigma^2/2)*T + sigma*sqrt(T)*Z), and discounting the
// average payoffs. Trials are split across a CPU-sized worker pool; each
// worker draws from its own pooled generator, so concurrent callers never
// share a sample stream.
func MonteCarloPrice(c pricing.Contract, numSimulations int) Estimate {
	if numSimulations <= 0 {
		numSimulations = DefaultSimulations
	}

	var (
		s     = c.Spot()
		k     = c.Strike()
		t     = c.TimeToExpiry()
		r     = c.RiskFreeRate()
		sigma = c.Volatility()
	)
	drift := (r - 0.5*sigma*sigma) * t
	diffusion := sigma * math.Sqrt(t)

	callPayoffs := make([]float64, numSimulations)
	putPayoffs := make([]float64, numSimulations)

	workers := workerCount()
	chunk := (numSimulations + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < numSimulations; lo += chunk {
		hi := lo + chunk
		if hi > numSimulations {
			hi = numSimulations
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()

			rng := rngPool.Get().(*rand.Rand)
			defer rngPool.Put(rng)

			for i := lo; i < hi; i++ {
				z := rng.NormFloat64()
				sT := s * math.Exp(drift+diffusion*z)
				callPayoffs[i] = math.Max(sT-k, 0)
				putPayoffs[i] = math.Max(k-sT, 0)
			}
		}(lo, hi)
	}
	wg.Wait()

	discount := math.Exp(-r * t)
	n := math.Sqrt(float64(numSimulations))
	callStdErr := stat.StdDev(callPayoffs, nil) / n
	putStdErr := stat.StdDev(putPayoffs, nil) / n

	return Estimate{
		CallPrice:        discount * stat.Mean(callPayoffs, nil),
		PutPrice:         discount * stat.Mean(putPayoffs, nil),
		CallStdError:     callStdErr,
		PutStdError:      putStdErr,
		CallConfidence95: 1.96 * callStdErr * discount,
		PutConfidence95:  1.96 * putStdErr * discount,
		Simulations:      numSimulations,
	}
}

func workerCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
