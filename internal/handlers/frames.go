package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aceyai/acey-backend/internal/metrics"
	"github.com/aceyai/acey-backend/internal/prompts"
	"github.com/aceyai/acey-backend/internal/providers"
)

// frameNoteLimit truncates provider commentary so one verbose response
// cannot dominate the review prompt.
const frameNoteLimit = 500

// rateLimitedNote is appended once when the quota breaker trips, so the
// review mentions that analysis stopped early.
const rateLimitedNote = "Body language analysis halted partway through the interview because the vision quota was exhausted."

// HandleAnalyzeFrame accepts one camera snapshot as a data URL, forwards it
// to the vision model, and appends the commentary to the session's notes.
func (h *Handler) HandleAnalyzeFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Frame       string `json:"frame"`
		AssistantID string `json:"assistantId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Frame == "" {
		h.writeError(w, "frame is required", http.StatusBadRequest)
		return
	}

	imageData, mime, err := decodeDataURL(request.Frame)
	if err != nil {
		metrics.FramesAnalyzed.WithLabelValues("error").Inc()
		h.writeError(w, "Invalid frame: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := h.resolveSessionOrError(w, request.AssistantID)
	if !ok {
		return
	}

	if session.RateLimited {
		metrics.FramesAnalyzed.WithLabelValues("rate_limited").Inc()
		h.writeError(w, "Frame analysis is paused for this session: vision quota exhausted", http.StatusTooManyRequests)
		return
	}

	analysis, err := h.provider.AnalyzeImage(r.Context(), providers.Config{
		Model:       h.model,
		Temperature: 0.4,
		Prompt:      prompts.FrameAnalysis,
		ImageData:   imageData,
		ImageMIME:   mime,
	})
	if err != nil {
		if providers.IsQuotaErr(err) {
			h.sessionStore.SetRateLimited(session.ID, true)
			h.sessionStore.AppendFrameNote(session.ID, rateLimitedNote)
			metrics.FramesAnalyzed.WithLabelValues("rate_limited").Inc()
			slog.Warn("Vision quota exhausted, rate limiting session", "session_id", session.ID)
			h.writeError(w, "Vision quota exhausted; frame analysis disabled for the rest of this session", http.StatusTooManyRequests)
			return
		}
		metrics.FramesAnalyzed.WithLabelValues("error").Inc()
		h.writeError(w, "Frame analysis failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	note := strings.TrimSpace(analysis)
	if len(note) > frameNoteLimit {
		cut := frameNoteLimit
		for cut > 0 && !utf8.RuneStart(note[cut]) {
			cut--
		}
		note = note[:cut]
	}
	h.sessionStore.AppendFrameNote(session.ID, note)
	metrics.FramesAnalyzed.WithLabelValues("success").Inc()

	h.writeJSON(w, map[string]string{
		"status":   "ok",
		"analysis": note,
	})
}

// decodeDataURL extracts raw image bytes and the image subtype from a
// "data:image/jpeg;base64,..." payload. A bare base64 string is accepted
// and treated as JPEG.
func decodeDataURL(frame string) ([]byte, string, error) {
	payload := frame
	mime := "jpeg"

	if strings.HasPrefix(frame, "data:") {
		idx := strings.Index(frame, ",")
		if idx < 0 {
			return nil, "", errors.New("malformed data URL: missing comma")
		}
		header := frame[:idx]
		payload = frame[idx+1:]

		if start := strings.Index(header, "image/"); start >= 0 {
			rest := header[start+len("image/"):]
			if end := strings.IndexAny(rest, ";,"); end >= 0 {
				rest = rest[:end]
			}
			if rest != "" {
				mime = rest
			}
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.New("payload is not valid base64")
	}
	if len(data) == 0 {
		return nil, "", errors.New("payload is empty")
	}
	return data, mime, nil
}
