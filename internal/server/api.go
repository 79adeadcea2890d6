package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/TobiSchelling/lifelens/internal/database"
	"github.com/TobiSchelling/lifelens/internal/lifedata"
	"github.com/TobiSchelling/lifelens/internal/places"
	"github.com/TobiSchelling/lifelens/internal/sentiment"
)

const maxBodyBytes = 1 << 20

type analyzeRequest struct {
	Text string `json:"text" validate:"required"`
}

type summaryRequest struct {
	Texts []string `json:"texts" validate:"required,min=1"`
}

type summaryResponse struct {
	Summary   *sentiment.Summary `json:"summary"`
	Narrative string             `json:"narrative"`
}

type locationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON body into v and validates it.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := lifedata.ValidateStruct(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (s *Server) handleReportData(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	report, err := s.db.GetReport(periodID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no report for "+periodID)
		return
	}
	if err != nil {
		s.logger.Error("loading report", zap.String("period", periodID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	data, err := report.Data()
	if err != nil {
		s.logger.Error("decoding report data", zap.String("period", periodID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	s.metrics.TextsAnalyzed.Inc()
	writeJSON(w, http.StatusOK, sentiment.Analyze(req.Text))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if !decode(w, r, &req) {
		return
	}

	results := make([]sentiment.Result, 0, len(req.Texts))
	for _, text := range req.Texts {
		results = append(results, sentiment.Analyze(text))
	}
	s.metrics.TextsAnalyzed.Add(float64(len(results)))

	summary := sentiment.Summarize(results)
	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:   summary,
		Narrative: sentiment.Narrative(summary),
	})
}

func (s *Server) handleCorrelations(w http.ResponseWriter, r *http.Request) {
	periodID := r.URL.Query().Get("period")
	if periodID == "" {
		periodID = database.GetToday()
	}

	insights, err := s.composer.Insights(periodID)
	if err != nil {
		s.logger.Error("correlating records", zap.String("period", periodID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to correlate records")
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	periodID := r.URL.Query().Get("period")
	if periodID == "" {
		periodID = database.GetToday()
	}

	spots, err := s.composer.Places(periodID)
	if err != nil {
		s.logger.Error("grouping places", zap.String("period", periodID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to group places")
		return
	}
	if spots == nil {
		spots = []places.Place{}
	}
	writeJSON(w, http.StatusOK, spots)
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if !decode(w, r, &req) {
		return
	}
	s.logger.Info("user location",
		zap.Float64("latitude", req.Latitude),
		zap.Float64("longitude", req.Longitude))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Location received"})
}
