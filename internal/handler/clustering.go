// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/use-this-search/clustering-platform/internal/middleware"
	"github.com/use-this-search/clustering-platform/internal/model"
	"github.com/use-this-search/clustering-platform/internal/service"
	"github.com/use-this-search/clustering-platform/pkg/logger"
)

// ClusteringHandler handles keyword clustering endpoints.
type ClusteringHandler struct {
	service *service.AnalysisService
	logger  *logger.Logger
}

// NewClusteringHandler creates a new clustering handler.
func NewClusteringHandler(svc *service.AnalysisService, log *logger.Logger) *ClusteringHandler {
	return &ClusteringHandler{
		service: svc,
		logger:  log,
	}
}

// Analyze handles POST /api/v1/clustering/analyze
func (h *ClusteringHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	companyID := middleware.GetCompanyID(ctx)

	var req model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateAnalyzeRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := h.service.Analyze(ctx, userID, companyID, &req)
	if err != nil {
		h.logger.Error("analysis failed",
			zap.String("user_id", userID),
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, analysis)
}

// List handles GET /api/v1/clustering/analyses
func (h *ClusteringHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	companyID := middleware.GetCompanyID(ctx)

	limit := 20
	skip := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if s := r.URL.Query().Get("skip"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 0 {
			skip = parsed
		}
	}

	resp, err := h.service.List(ctx, userID, companyID, limit, skip)
	if err != nil {
		h.logger.Error("failed to list analyses", zap.Error(err))
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/clustering/analyses/{id}
func (h *ClusteringHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	companyID := middleware.GetCompanyID(ctx)
	analysisID := chi.URLParam(r, "id")

	if err := middleware.ValidateAnalysisID(analysisID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := h.service.Get(ctx, analysisID, userID, companyID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// Delete handles DELETE /api/v1/clustering/analyses/{id}
func (h *ClusteringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	companyID := middleware.GetCompanyID(ctx)
	analysisID := chi.URLParam(r, "id")

	if err := middleware.ValidateAnalysisID(analysisID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(ctx, analysisID, userID, companyID); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "analysis deleted",
	})
}

// Export handles POST /api/v1/clustering/export
func (h *ClusteringHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	companyID := middleware.GetCompanyID(ctx)

	var req model.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateAnalysisID(req.AnalysisID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	export, err := h.service.Export(ctx, userID, companyID, &req)
	if err != nil {
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Data)
}

// UsageLimits handles GET /api/v1/clustering/usage-limits
func (h *ClusteringHandler) UsageLimits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	companyID := middleware.GetCompanyID(ctx)

	limits, err := h.service.UsageLimits(ctx, userID, companyID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, limits)
}

// Stats handles GET /api/v1/clustering/stats
func (h *ClusteringHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	companyID := middleware.GetCompanyID(ctx)

	stats, err := h.service.Stats(ctx, userID, companyID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
