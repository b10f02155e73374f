package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aceyai/acey-backend/internal/agents"
)

// HandleAgentFollowup returns a single mode-appropriate follow-up question
// for the candidate's answer.
func (h *Handler) HandleAgentFollowup(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Mode            string `json:"mode"`
		Answer          string `json:"answer"`
		QuestionContext string `json:"question_context"`
		UserID          string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Answer == "" {
		h.writeError(w, "answer is required", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, agents.Classify(request.Mode, request.Answer))
}

// HandleEnhancedFollowup runs every specialist over the answer and returns
// the aggregated feedback object.
func (h *Handler) HandleEnhancedFollowup(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Answer  string               `json:"answer"`
		Context agents.AnswerContext `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Answer == "" {
		h.writeError(w, "answer is required", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, agents.Aggregate(request.Answer, request.Context))
}
