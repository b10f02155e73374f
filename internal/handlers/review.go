package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aceyai/acey-backend/internal/metrics"
	"github.com/aceyai/acey-backend/internal/review"
)

// HandleGetReview synthesizes the end-of-interview review from the
// transcript and the session's accumulated frame notes. Frame notes are
// cleared on every path so they never leak into the next interview.
func (h *Handler) HandleGetReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Transcript  string `json:"transcript"`
		Mode        string `json:"mode"`
		AssistantID string `json:"assistantId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := h.resolveSessionOrError(w, request.AssistantID)
	if !ok {
		return
	}

	mode := request.Mode
	if mode == "" {
		mode = session.Mode
	}

	frameNotes := session.FrameNotes
	defer h.sessionStore.ClearFrameNotes(session.ID)

	result, err := h.reviewService.Generate(r.Context(), request.Transcript, mode, frameNotes)
	switch {
	case errors.Is(err, review.ErrNoMaterial):
		metrics.ReviewsGenerated.WithLabelValues("error").Inc()
		h.writeError(w, "Cannot generate a review: transcript is empty and no frames were analyzed", http.StatusBadRequest)
	case errors.Is(err, review.ErrUnparseable):
		metrics.ReviewsGenerated.WithLabelValues("fallback").Inc()
		h.writeJSONStatus(w, result, http.StatusInternalServerError)
	case err != nil:
		metrics.ReviewsGenerated.WithLabelValues("error").Inc()
		h.writeError(w, "Review generation failed: "+err.Error(), http.StatusInternalServerError)
	default:
		metrics.ReviewsGenerated.WithLabelValues("success").Inc()
		h.writeJSON(w, result)
	}
}
