package probability

import (
	"sync"

	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/bowenq/bsengine/pricing"
)

const defaultScanPoints = 20

// ScanConfig describes a sensitivity sweep around a base contract. Each of
// spot, volatility, time to expiry and rate is varied in turn over a
// standard range while the other parameters stay at their base values.
type ScanConfig struct {
	Spot         float64
	Strike       float64
	TimeToExpiry float64
	RiskFreeRate float64
	Volatility   float64
	OptionType   pricing.OptionType

	// Points per parameter; values below 2 fall back to 20.
	Points int
	// Progress renders a terminal progress bar. Batch mode only.
	Progress bool
}

// ScanPoint is one repriced row of a parameter sweep.
type ScanPoint struct {
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	Price     float64 `json:"price"`
	Delta     float64 `json:"delta"`
	Gamma     float64 `json:"gamma"`
}

type scanJob struct {
	index     int
	parameter string
	s, k, t   float64
	r, sigma  float64
}

// SensitivityScan reprices the base contract across spot 80%-120%,
// volatility 50%-150%, time 0.01-2T and rate 0.01-2r. Results are ordered
// by parameter then by sampled value.
func SensitivityScan(cfg ScanConfig) ([]ScanPoint, error) {
	// Validate the base parameters up front so the sweep cannot start from
	// an undefined contract.
	if _, err := pricing.NewContract(cfg.Spot, cfg.Strike, cfg.TimeToExpiry, cfg.RiskFreeRate, cfg.Volatility); err != nil {
		return nil, err
	}

	points := cfg.Points
	if points <= 1 {
		points = defaultScanPoints
	}

	jobs := generateScanJobs(cfg, points)
	results := make([]ScanPoint, len(jobs))

	var bar *mpb.Bar
	var progress *mpb.Progress
	if cfg.Progress {
		progress = mpb.New(mpb.WithWidth(64))
		bar = progress.AddBar(int64(len(jobs)),
			mpb.PrependDecorators(
				decor.Name("Scanning"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
			),
		)
	}

	jobChan := make(chan scanJob, len(jobs))
	var wg sync.WaitGroup

	for w := 0; w < workerCount(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobChan {
				c, err := pricing.NewContract(j.s, j.k, j.t, j.r, j.sigma)
				if err != nil {
					// Sampled ranges stay inside the valid domain; a
					// failure here means a zero-width range, skip the row.
					continue
				}
				results[j.index] = ScanPoint{
					Parameter: j.parameter,
					Value:     scanValue(j),
					Price:     c.Price(cfg.OptionType),
					Delta:     c.Delta(cfg.OptionType),
					Gamma:     c.Gamma(),
				}
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

	for _, j := range jobs {
		jobChan <- j
	}
	close(jobChan)
	wg.Wait()

	if progress != nil {
		progress.Wait()
	}

	return results, nil
}

func generateScanJobs(cfg ScanConfig, points int) []scanJob {
	sweeps := []struct {
		parameter string
		lo, hi    float64
	}{
		{"spot", cfg.Spot * 0.8, cfg.Spot * 1.2},
		{"volatility", cfg.Volatility * 0.5, cfg.Volatility * 1.5},
		{"time", 0.01, cfg.TimeToExpiry * 2},
		{"rate", 0.01, cfg.RiskFreeRate * 2},
	}

	jobs := make([]scanJob, 0, len(sweeps)*points)
	for _, sweep := range sweeps {
		step := (sweep.hi - sweep.lo) / float64(points-1)
		for i := 0; i < points; i++ {
			j := scanJob{
				index:     len(jobs),
				parameter: sweep.parameter,
				s:         cfg.Spot,
				k:         cfg.Strike,
				t:         cfg.TimeToExpiry,
				r:         cfg.RiskFreeRate,
				sigma:     cfg.Volatility,
			}
			v := sweep.lo + float64(i)*step
			switch sweep.parameter {
			case "spot":
				j.s = v
			case "volatility":
				j.sigma = v
			case "time":
				j.t = v
			case "rate":
				j.r = v
			}
			jobs = append(jobs, j)
		}
	}
	return jobs
}

func scanValue(j scanJob) float64 {
	switch j.parameter {
	case "spot":
		return j.s
	case "volatility":
		return j.sigma
	case "time":
		return j.t
	}
	return j.r
}
