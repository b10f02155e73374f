package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aceyai/acey-backend/internal/metrics"
	"github.com/aceyai/acey-backend/internal/models"
	"github.com/aceyai/acey-backend/internal/prompts"
	"github.com/aceyai/acey-backend/internal/vapi"
	"github.com/google/uuid"
)

// HandleAssistant bootstraps a new interview session: it builds the system
// prompt, registers an assistant with the voice platform, and returns the
// assistant id the browser uses to start the call.
func (h *Handler) HandleAssistant(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	mode := query.Get("mode")
	if mode == "" {
		mode = prompts.ModeEasy
	}
	if !prompts.ValidMode(mode) {
		h.writeError(w, "Invalid mode. Must be 'easy', 'medium', 'hard', or 'custom'", http.StatusBadRequest)
		return
	}

	session := &models.InterviewSession{
		Mode:        mode,
		SessionName: query.Get("sessionName"),
		CreatedAt:   time.Now(),
	}

	if mode == prompts.ModeCustom || query.Get("custom") == "true" {
		timeLimit, _ := strconv.Atoi(query.Get("timeLimit"))
		session.Custom = &models.CustomConfig{
			QuestionType: query.Get("questionType"),
			TimeLimit:    timeLimit,
			Curveball:    query.Get("curveballs"),
		}
	}

	// A job analysis stored by a prior /api/analyze-job-description call is
	// consumed by the next bootstrap.
	session.JobAnalysis = h.sessionStore.TakePendingJobAnalysis()

	systemPrompt := prompts.SystemPrompt(session)
	firstMessage := prompts.FirstMessage(session)

	assistantID, err := h.createAssistant(r, session, systemPrompt, firstMessage)
	if err != nil {
		h.writeError(w, "Failed to create assistant: "+err.Error(), http.StatusInternalServerError)
		return
	}

	session.ID = assistantID
	h.sessionStore.Set(assistantID, session)
	metrics.SessionsStarted.WithLabelValues(mode).Inc()

	slog.Info("Interview session bootstrapped", "assistant_id", assistantID, "mode", mode, "has_job_analysis", session.JobAnalysis != nil)

	h.writeJSON(w, map[string]string{
		"assistantId": assistantID,
		"mode":        mode,
	})
}

func (h *Handler) createAssistant(r *http.Request, session *models.InterviewSession, systemPrompt, firstMessage string) (string, error) {
	// Offline mode: no Vapi credentials, mint a local session id so the
	// rest of the flow still works in development.
	if h.vapiClient == nil {
		return uuid.NewString(), nil
	}

	name := "Acey-" + session.Mode
	if session.SessionName != "" {
		name = session.SessionName
	}

	req := vapi.AssistantRequest{
		Name: name,
		Transcriber: &vapi.TranscriberConfig{
			Provider: "deepgram",
			Model:    "nova-2",
			Language: "en",
		},
		Model: &vapi.ModelConfig{
			Provider: "google",
			Model:    "gemini-1.5-flash",
			Messages: []vapi.Message{
				{Role: "system", Content: systemPrompt},
			},
		},
		Voice: &vapi.VoiceConfig{
			Provider: "11labs",
			VoiceID:  "21m00Tcm4TlvDq8ikWAM",
		},
		FirstMessage: firstMessage,
	}

	if ngrok := os.Getenv("NGROK_URL"); ngrok != "" {
		req.ServerURL = ngrok + "/api/vapi-webhook"
	}

	assistant, err := h.vapiClient.CreateAssistant(r.Context(), req)
	if err != nil {
		return "", err
	}
	return assistant.ID, nil
}

// HandleData is the hello endpoint kept for the original frontend's
// connectivity check.
func (h *Handler) HandleData(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"message": "Hello from the Acey backend!"})
}
