package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
	"github.com/jiaming2012/options-analyzer/src/services"
	"github.com/jiaming2012/options-analyzer/src/sweeps"
)

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func NewErrorResponse(errType string, message string) *errorResponse {
	return &errorResponse{
		Type: errType,
		Msg:  message,
	}
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := NewErrorResponse(errType, err.Error())
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		return encodeErr
	}

	return nil
}

type AnalyzeRequest struct {
	Config optionmodels.OptionConfig `json:"config"`
}

type AnalyzeResponse struct {
	RunID   string           `json:"run_id"`
	Summary services.Summary `json:"summary"`
}

func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(404)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("handleAnalyze: failed to decode request", 400, err, w)
		return
	}

	analyzer, err := services.NewAnalyzer(req.Config, time.Now())
	if err != nil {
		setErrorResponse("handleAnalyze: invalid config", 400, err, w)
		return
	}

	summary, err := analyzer.Summary()
	if err != nil {
		setErrorResponse("handleAnalyze: failed to compute summary", 500, err, w)
		return
	}

	if err := setResponse(AnalyzeResponse{RunID: analyzer.RunID.String(), Summary: summary}, w); err != nil {
		log.Errorf("handleAnalyze: failed to set response: %v", err)
	}
}

type SweepRequest struct {
	Config    optionmodels.OptionConfig `json:"config"`
	NumPoints *int                      `json:"num_points,omitempty"`
	Low       *float64                  `json:"low,omitempty"`
	High      *float64                  `json:"high,omitempty"`
}

type SweepResponse struct {
	Kind    string                     `json:"kind"`
	Records []optionmodels.SweepRecord `json:"records"`
}

func defaultNumPoints(kind sweeps.SweepKind) int {
	switch kind {
	case sweeps.SweepOverTime:
		return sweeps.DefaultTimePoints
	case sweeps.SweepOverVolatility:
		return sweeps.DefaultVolatilityPoints
	default:
		return sweeps.DefaultPricePoints
	}
}

func handleSweep(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(404)
		return
	}

	vars := mux.Vars(r)
	kind := sweeps.SweepKind(vars["kind"])
	if err := kind.Validate(); err != nil {
		setErrorResponse("handleSweep: invalid sweep kind", 400, err, w)
		return
	}

	var req SweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("handleSweep: failed to decode request", 400, err, w)
		return
	}

	if (req.Low == nil) != (req.High == nil) {
		setErrorResponse("handleSweep: invalid range", 400, fmt.Errorf("low and high must be provided together"), w)
		return
	}

	now := time.Now()
	cfg, err := req.Config.Normalize(now)
	if err != nil {
		setErrorResponse("handleSweep: invalid config", 400, err, w)
		return
	}

	numPoints := defaultNumPoints(kind)
	if req.NumPoints != nil {
		numPoints = *req.NumPoints
	}

	var rng *sweeps.Range
	if req.Low != nil {
		rng = &sweeps.Range{Low: *req.Low, High: *req.High}
	}

	var records []optionmodels.SweepRecord
	switch kind {
	case sweeps.SweepOverTime:
		records, err = sweeps.OverTime(cfg, numPoints, now)
	case sweeps.SweepOverPrice:
		records, err = sweeps.OverPrice(cfg, rng, numPoints)
	case sweeps.SweepOverVolatility:
		records, err = sweeps.OverVolatility(cfg, rng, numPoints)
	}

	if err != nil {
		setErrorResponse("handleSweep: sweep failed", 400, err, w)
		return
	}

	if err := setResponse(SweepResponse{Kind: string(kind), Records: records}, w); err != nil {
		log.Errorf("handleSweep: failed to set response: %v", err)
	}
}

type CompareRequest struct {
	Configs []optionmodels.OptionConfig `json:"configs"`
	Kind    string                      `json:"kind"`
}

type CompareResponse struct {
	Kind    string                     `json:"kind"`
	Records []optionmodels.SweepRecord `json:"records"`
}

func handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(404)
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("handleCompare: failed to decode request", 400, err, w)
		return
	}

	now := time.Now()

	cfgs := make([]optionmodels.NormalizedConfig, 0, len(req.Configs))
	for i, config := range req.Configs {
		cfg, err := config.Normalize(now)
		if err != nil {
			setErrorResponse(fmt.Sprintf("handleCompare: invalid config at index %d", i), 400, err, w)
			return
		}
		cfgs = append(cfgs, cfg)
	}

	records, err := sweeps.CompareStrategies(cfgs, sweeps.SweepKind(req.Kind), now)
	if err != nil {
		setErrorResponse("handleCompare: comparison failed", 400, err, w)
		return
	}

	if err := setResponse(CompareResponse{Kind: req.Kind, Records: records}, w); err != nil {
		log.Errorf("handleCompare: failed to set response: %v", err)
	}
}

func SetupHandler(router *mux.Router) {
	router.HandleFunc("/analyze", handleAnalyze)
	router.HandleFunc("/sweeps/{kind}", handleSweep)
	router.HandleFunc("/compare", handleCompare)
}
