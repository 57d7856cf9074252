package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/service"
)

// Handler contains all HTTP handlers for the API.
//
// One Handler serves one data directory. Ordering writes are serialized
// inside JobService, so handlers need no locking of their own.
type Handler struct {
	data    *DataContext
	metrics *Metrics
	now     func() time.Time
}

// NewHandler creates a handler over the given data context. metrics may be nil.
func NewHandler(data *DataContext, metrics *Metrics) *Handler {
	return &Handler{
		data:    data,
		metrics: metrics,
		now:     time.Now,
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /jobs", h.ListJobs)
	mux.HandleFunc("POST /jobs", h.CreateJob)
	mux.HandleFunc("GET /jobs/{id}", h.GetJob)
	mux.HandleFunc("PATCH /jobs/{id}", h.UpdateJob)
	mux.HandleFunc("DELETE /jobs/{id}", h.DeleteJob)
	mux.HandleFunc("PATCH /jobs/{id}/reorder", h.ReorderJob)

	mux.HandleFunc("GET /candidates", h.ListCandidates)
	mux.HandleFunc("POST /candidates", h.CreateCandidate)
	mux.HandleFunc("PATCH /candidates/{id}", h.UpdateCandidate)

	mux.HandleFunc("GET /dashboard/statistics", h.GetStatistics)
	mux.HandleFunc("GET /healthz", h.Health)
}

// --- Job Handlers ---

// ListJobs returns one filtered page of jobs in board order.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := model.JobQuery{
		Search: q.Get("search"),
		Status: model.JobStatus(q.Get("status")),
	}

	var err error
	if query.Page, err = intParam(q.Get("page")); err != nil {
		BadRequest(w, "page must be an integer")
		return
	}
	if query.PageSize, err = intParam(q.Get("pageSize")); err != nil {
		BadRequest(w, "pageSize must be an integer")
		return
	}

	page, err := h.data.JobService.List(query)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, page)
}

// CreateJob creates a new job at the end of the ordering.
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	job, err := h.data.JobService.Create(service.CreateJobInput{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		Tags:        req.Tags,
		Status:      req.Status,
	})
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, job)
}

// GetJob returns a single job.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.data.JobService.Get(r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, job)
}

// UpdateJob applies a partial update, including archive and unarchive.
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	job, err := h.data.JobService.Update(r.PathValue("id"), service.UpdateJobInput{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		Tags:        req.Tags,
		Status:      req.Status,
	})
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, job)
}

// DeleteJob removes a job.
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.data.JobService.Delete(r.PathValue("id")); err != nil {
		Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reorderBody mirrors model.ReorderRequest with presence detection.
type reorderBody struct {
	FromOrder *int `json:"fromOrder"`
	ToOrder   *int `json:"toOrder"`
}

// ReorderJob moves a job within the ordering. 409 means the job is no longer
// at fromOrder; the caller should reload.
func (h *Handler) ReorderJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	var req reorderBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.observeReorder(reorderRejected)
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.FromOrder == nil || req.ToOrder == nil {
		h.metrics.observeReorder(reorderRejected)
		BadRequest(w, "fromOrder and toOrder are required")
		return
	}

	err := h.data.JobService.Reorder(jobID, *req.FromOrder, *req.ToOrder)
	switch {
	case err == nil:
		h.metrics.observeReorder(reorderApplied)
	case tferr.IsConflict(err):
		h.metrics.observeReorder(reorderConflict)
	case tferr.IsValidationError(err), tferr.IsNotFound(err):
		h.metrics.observeReorder(reorderRejected)
	default:
		h.metrics.observeReorder(reorderFailed)
	}
	if err != nil {
		Error(w, err)
		return
	}

	job, err := h.data.JobService.Get(jobID)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, job)
}

// --- Candidate Handlers ---

// ListCandidates returns candidates, optionally for one job.
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.data.CandidateService.List(r.URL.Query().Get("jobId"))
	if err != nil {
		Error(w, err)
		return
	}

	resp := model.CandidateList{
		Data:  make([]model.Candidate, len(candidates)),
		Total: len(candidates),
	}
	for i, c := range candidates {
		resp.Data[i] = *c
	}
	JSON(w, http.StatusOK, resp)
}

// CreateCandidate records a new application.
func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	candidate, err := h.data.CandidateService.Create(service.CreateCandidateInput{
		Name:       req.Name,
		Email:      req.Email,
		JobID:      req.JobID,
		Stage:      req.Stage,
		Assessment: req.Assessment,
	})
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, candidate)
}

// UpdateCandidate changes a candidate's stage and/or assessment.
func (h *Handler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")

	var req model.UpdateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.Stage == nil && req.Assessment == nil {
		BadRequest(w, "stage or assessment is required")
		return
	}

	var candidate *model.Candidate
	var err error
	if req.Stage != nil {
		if candidate, err = h.data.CandidateService.SetStage(candidateID, *req.Stage); err != nil {
			Error(w, err)
			return
		}
	}
	if req.Assessment != nil {
		if candidate, err = h.data.CandidateService.SetAssessment(candidateID, *req.Assessment); err != nil {
			Error(w, err)
			return
		}
	}
	JSON(w, http.StatusOK, candidate)
}

// --- Dashboard Handlers ---

// GetStatistics returns the dashboard summary.
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.data.StatisticsService.Compute(h.now())
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, stats)
}

// Health reports whether the data directory is usable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !h.data.BoardStore.Exists() {
		Error(w, &tferr.NotInitializedError{Path: h.data.Paths.DataRoot()})
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// intParam parses an optional integer query parameter; empty means zero.
func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}
