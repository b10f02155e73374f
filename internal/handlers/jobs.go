package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aceyai/acey-backend/internal/jobs"
)

// HandleAnalyzeJobDescription extracts structured fields from raw job
// description text or a LinkedIn URL and stores the result for the next
// session bootstrap.
func (h *Handler) HandleAnalyzeJobDescription(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		JobDescription string `json:"jobDescription"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.JobDescription == "" {
		h.writeError(w, "jobDescription is required", http.StatusBadRequest)
		return
	}

	analysis := h.jobsService.Analyze(r.Context(), request.JobDescription)
	h.sessionStore.SetPendingJobAnalysis(analysis)

	slog.Info("Job description analyzed", "role", analysis.Role, "company", analysis.Company)
	h.writeJSON(w, analysis)
}

// HandleParseLinkedInJob scrapes a LinkedIn posting and returns the best
// available description text without analyzing it.
func (h *Handler) HandleParseLinkedInJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !jobs.IsLinkedInURL(request.URL) {
		h.writeError(w, "url must be a LinkedIn job posting", http.StatusBadRequest)
		return
	}

	description, source := jobs.ScrapeLinkedIn(r.Context(), request.URL)
	h.writeJSON(w, map[string]string{
		"jobDescription": description,
		"source":         source,
		"url":            request.URL,
	})
}
