package handlers

import (
	"errors"
	"net/http"
	"time"

	"solar-saver/internal/analysis"
	"solar-saver/internal/api/models"
	"solar-saver/internal/data"
	"solar-saver/internal/dispatch"
	"solar-saver/internal/model"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles simulation requests
type SimulateHandler struct {
	providers *data.Providers
}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler(providers *data.Providers) *SimulateHandler {
	if providers == nil {
		providers = data.NewProviders(data.NewResponseCache(time.Hour))
	}
	return &SimulateHandler{providers: providers}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	date, err := parseDate(req.Tariff.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_DATE",
				Message: err.Error(),
			},
		})
		return
	}

	cfg := batteryFromRequest(req.Battery)
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_BATTERY",
				Message: err.Error(),
			},
		})
		return
	}

	gen, price, err := h.providers.Fetch(data.SeriesRequest{
		Postcode:  req.Site.Postcode,
		Latitude:  req.Site.Latitude,
		Longitude: req.Site.Longitude,
		ArrayKWp:  req.Site.ArrayKWp,
		Region:    req.Tariff.Region,
		Product:   req.Tariff.ProductCode,
		Date:      date,
		Mock:      req.Options.Mock,
	})
	if err != nil {
		status := http.StatusBadGateway
		var octErr *data.OctopusError
		if errors.As(err, &octErr) {
			if octErr.StatusCode == http.StatusTooManyRequests {
				status = http.StatusTooManyRequests
			}
			c.JSON(status, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "TARIFF_FETCH_ERROR",
					Message: octErr.Message,
					Details: map[string]interface{}{
						"status_code": octErr.StatusCode,
						"retry_after": octErr.RetryAfter,
					},
				},
			})
			return
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATA_FETCH_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	if n := req.Options.LimitIntervals; n > 0 && n < len(gen) {
		gen = gen[:n]
		price = price[:n]
	}

	engine := dispatch.New()
	result, err := engine.Run(gen, price, cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DISPATCH_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	resp := buildResponse(result, req.Options.IncludeTrace)
	if pot, err := analysis.ComputePotential(gen, price, cfg); err == nil {
		resp.Potential = &models.PotentialSummary{
			MinPrice:      pot.MinPrice,
			MaxPrice:      pot.MaxPrice,
			MedianPrice:   pot.MedianPrice,
			SpreadP95P05:  pot.SpreadP95P05,
			OracleSavings: pot.OracleSavings,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func buildResponse(result *dispatch.Result, includeTrace bool) models.SimulateResponse {
	resp := models.SimulateResponse{
		Status: "completed",
		Summary: models.SimulateSummary{
			CostNaive:      result.CostNaive,
			CostSmart:      result.CostSmart,
			PoundsSaved:    result.PoundsSaved,
			Threshold:      result.Threshold,
			FinalSOC:       result.FinalSOC,
			TotalIntervals: len(result.Trace),
		},
	}
	if len(result.Trace) > 0 {
		resp.Summary.Window = models.TimeWindow{
			Start: result.Trace[0].IntervalStart,
			End:   result.Trace[len(result.Trace)-1].IntervalStart,
		}
	}
	if includeTrace {
		resp.Trace = make([]models.TraceRow, 0, len(result.Trace))
		for _, r := range result.Trace {
			resp.Trace = append(resp.Trace, models.TraceRow{
				Index:         r.Index,
				IntervalStart: r.IntervalStart,
				GenerationKWh: r.GenerationKWh,
				Price:         r.Price,
				BatteryFlow:   r.BatteryFlow,
				SOC:           r.SOC,
				GridExportKWh: r.GridExportKWh,
				Action:        string(r.Action),
				CumSaved:      r.CumSaved,
			})
		}
	}
	return resp
}

// batteryFromRequest overlays request overrides onto the defaults.
func batteryFromRequest(b models.BatteryParams) model.BatteryConfig {
	cfg := model.DefaultBatteryConfig()
	if b.CapacityKWh != 0 {
		cfg.CapacityKWh = b.CapacityKWh
	}
	if b.PowerKW != 0 {
		cfg.PowerKW = b.PowerKW
	}
	if b.RoundTripEff != 0 {
		cfg.RoundTripEff = b.RoundTripEff
	}
	return cfg
}

// parseDate parses YYYY-MM-DD; an empty string means yesterday, the most
// recent day with a complete Agile price set.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().AddDate(0, 0, -1), nil
	}
	return time.Parse("2006-01-02", s)
}
