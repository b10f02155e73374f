package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aceyai/acey-backend/internal/models"
)

// vapiServerMessage is the envelope Vapi posts to the server URL during a
// call. Only the fields the webhook acts on are modeled.
type vapiServerMessage struct {
	Message struct {
		Type   string `json:"type"`
		Status string `json:"status"`
		Call   struct {
			ID          string `json:"id"`
			AssistantID string `json:"assistantId"`
		} `json:"call"`
		EndedReason string `json:"endedReason"`
	} `json:"message"`
}

// HandleWebhook receives call lifecycle events from the voice platform.
// Sessions with a custom per-answer time limit get hung up once the call
// runs past limit * 10 (a rough full-interview budget); everything else is
// acknowledged with an empty object.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload vapiServerMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	msg := payload.Message
	session, exists := h.sessionStore.Get(msg.Call.AssistantID)
	if !exists {
		h.writeJSON(w, map[string]any{})
		return
	}

	switch msg.Type {
	case "status-update":
		if msg.Status == "in-progress" {
			h.sessionStore.MarkStarted(session.ID, time.Now())
			slog.Info("Call started", "assistant_id", session.ID, "call_id", msg.Call.ID)
		}

	case "transcript", "speech-update":
		if hangup, reason := h.shouldHangUp(session); hangup {
			slog.Info("Hanging up call over time budget", "assistant_id", session.ID, "reason", reason)
			h.writeJSON(w, map[string]any{"hangup": true, "reason": reason})
			return
		}

	case "end-of-call-report":
		slog.Info("Call ended", "assistant_id", session.ID, "reason", msg.EndedReason)
	}

	h.writeJSON(w, map[string]any{})
}

func (h *Handler) shouldHangUp(session *models.InterviewSession) (bool, string) {
	if session.Custom == nil || session.Custom.TimeLimit <= 0 || session.StartedAt.IsZero() {
		return false, ""
	}

	budget := time.Duration(session.Custom.TimeLimit*10) * time.Second
	if elapsed := time.Since(session.StartedAt); elapsed > budget {
		return true, fmt.Sprintf("Interview time budget of %s exceeded", budget)
	}
	return false, ""
}
