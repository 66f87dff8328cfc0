package server

import (
	"errors"
	"math"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/xhhuango/json"

	"github.com/bowenq/bsengine/pricing"
	"github.com/bowenq/bsengine/probability"
)

type contractRequest struct {
	SpotPrice    float64 `json:"spot_price"`
	StrikePrice  float64 `json:"strike_price"`
	TimeToExpiry float64 `json:"time_to_expiry"`
	RiskFreeRate float64 `json:"risk_free_rate"`
	Volatility   float64 `json:"volatility"`
	OptionType   string  `json:"option_type"`
}

type impliedVolRequest struct {
	MarketPrice  float64 `json:"market_price"`
	SpotPrice    float64 `json:"spot_price"`
	StrikePrice  float64 `json:"strike_price"`
	TimeToExpiry float64 `json:"time_to_expiry"`
	RiskFreeRate float64 `json:"risk_free_rate"`
	OptionType   string  `json:"option_type"`

	MaxIterations int     `json:"max_iterations,omitempty"`
	Tolerance     float64 `json:"tolerance,omitempty"`
}

type monteCarloRequest struct {
	contractRequest
	NumSimulations int `json:"num_simulations,omitempty"`
}

type priceBlock struct {
	CallPrice float64 `json:"call_price"`
	PutPrice  float64 `json:"put_price"`
}

type parameterBlock struct {
	SpotPrice    float64 `json:"spot_price"`
	StrikePrice  float64 `json:"strike_price"`
	TimeToExpiry float64 `json:"time_to_expiry"`
	RiskFreeRate float64 `json:"risk_free_rate"`
	Volatility   float64 `json:"volatility"`
}

type validationLeg struct {
	Price              float64 `json:"price"`
	ConfidenceInterval float64 `json:"confidence_interval"`
}

type analysisBlock struct {
	Moneyness          float64           `json:"moneyness"`
	MoneynessLabel     pricing.Moneyness `json:"moneyness_label"`
	TimeValueCall      float64           `json:"time_value_call"`
	TimeValuePut       float64           `json:"time_value_put"`
	PutCallParityCheck float64           `json:"put_call_parity_check"`
	PutCallParityHolds bool              `json:"put_call_parity_holds"`
}

type calculateOptionResponse struct {
	Success    bool           `json:"success"`
	Parameters parameterBlock `json:"parameters"`
	Prices     priceBlock     `json:"prices"`
	Greeks     struct {
		Call pricing.Greeks `json:"call"`
		Put  pricing.Greeks `json:"put"`
	} `json:"greeks"`
	MonteCarloValidation struct {
		Call validationLeg `json:"call"`
		Put  validationLeg `json:"put"`
	} `json:"monte_carlo_validation"`
	Analysis analysisBlock `json:"analysis"`
}

type impliedVolResponse struct {
	Success                  bool    `json:"success"`
	ImpliedVolatility        float64 `json:"implied_volatility"`
	ImpliedVolatilityPercent float64 `json:"implied_volatility_percent"`
	TheoreticalPrice         float64 `json:"theoretical_price"`
	PriceDifference          float64 `json:"price_difference"`
	Converged                bool    `json:"converged"`
	Iterations               int     `json:"iterations"`
}

type monteCarloResponse struct {
	Success  bool                 `json:"success"`
	Estimate probability.Estimate `json:"estimate"`
}

type sensitivityResponse struct {
	Success bool                    `json:"success"`
	Results []probability.ScanPoint `json:"results"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCalculateOption(w http.ResponseWriter, r *http.Request) {
	var req contractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := pricing.NewContract(req.SpotPrice, req.StrikePrice, req.TimeToExpiry, req.RiskFreeRate, req.Volatility)
	if err != nil {
		writeContractError(w, err)
		return
	}

	estimate := probability.MonteCarloPrice(c, s.validationSims)
	parity := c.PutCallParity()

	resp := calculateOptionResponse{
		Success: true,
		Parameters: parameterBlock{
			SpotPrice:    c.Spot(),
			StrikePrice:  c.Strike(),
			TimeToExpiry: c.TimeToExpiry(),
			RiskFreeRate: c.RiskFreeRate(),
			Volatility:   c.Volatility(),
		},
		Prices: priceBlock{
			CallPrice: c.CallPrice(),
			PutPrice:  c.PutPrice(),
		},
		Analysis: analysisBlock{
			Moneyness:          c.MoneynessRatio(),
			MoneynessLabel:     c.Moneyness(),
			TimeValueCall:      c.TimeValue(pricing.Call),
			TimeValuePut:       c.TimeValue(pricing.Put),
			PutCallParityCheck: parity.Difference,
			PutCallParityHolds: parity.Holds,
		},
	}
	resp.Greeks.Call = c.AllGreeks(pricing.Call)
	resp.Greeks.Put = c.AllGreeks(pricing.Put)
	resp.MonteCarloValidation.Call = validationLeg{
		Price:              estimate.CallPrice,
		ConfidenceInterval: estimate.CallConfidence95,
	}
	resp.MonteCarloValidation.Put = validationLeg{
		Price:              estimate.PutPrice,
		ConfidenceInterval: estimate.PutConfidence95,
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleImpliedVolatility(w http.ResponseWriter, r *http.Request) {
	var req impliedVolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	typ, err := pricing.ParseOptionType(req.OptionType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	solver := pricing.DefaultIVSolver()
	if req.MaxIterations > 0 {
		solver.MaxIterations = req.MaxIterations
	}
	if req.Tolerance > 0 {
		solver.Tolerance = req.Tolerance
	}

	result, err := solver.Solve(req.MarketPrice, req.SpotPrice, req.StrikePrice, req.TimeToExpiry, req.RiskFreeRate, typ)
	if err != nil {
		writeContractError(w, err)
		return
	}

	c, err := pricing.NewContract(req.SpotPrice, req.StrikePrice, req.TimeToExpiry, req.RiskFreeRate, result.Volatility)
	if err != nil {
		writeContractError(w, err)
		return
	}
	theoretical := c.Price(typ)

	writeJSON(w, http.StatusOK, impliedVolResponse{
		Success:                  true,
		ImpliedVolatility:        result.Volatility,
		ImpliedVolatilityPercent: result.Volatility * 100,
		TheoreticalPrice:         theoretical,
		PriceDifference:          math.Abs(theoretical - req.MarketPrice),
		Converged:                result.Converged,
		Iterations:               result.Iterations,
	})
}

func (s *Server) handleMonteCarlo(w http.ResponseWriter, r *http.Request) {
	var req monteCarloRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := pricing.NewContract(req.SpotPrice, req.StrikePrice, req.TimeToExpiry, req.RiskFreeRate, req.Volatility)
	if err != nil {
		writeContractError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, monteCarloResponse{
		Success:  true,
		Estimate: probability.MonteCarloPrice(c, req.NumSimulations),
	})
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	var req contractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	typ, err := pricing.ParseOptionType(req.OptionType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	results, err := probability.SensitivityScan(probability.ScanConfig{
		Spot:         req.SpotPrice,
		Strike:       req.StrikePrice,
		TimeToExpiry: req.TimeToExpiry,
		RiskFreeRate: req.RiskFreeRate,
		Volatility:   req.Volatility,
		OptionType:   typ,
	})
	if err != nil {
		writeContractError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sensitivityResponse{Success: true, Results: results})
}

// writeContractError maps engine validation failures to 400s and everything
// else to 500s.
func writeContractError(w http.ResponseWriter, err error) {
	var invalid *pricing.InvalidParameterError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.WithError(err).Warn("request failed")
	writeJSON(w, status, errorResponse{Success: false, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}
