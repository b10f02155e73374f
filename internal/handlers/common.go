package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/aceyai/acey-backend/internal/gemini"
	"github.com/aceyai/acey-backend/internal/jobs"
	"github.com/aceyai/acey-backend/internal/models"
	"github.com/aceyai/acey-backend/internal/ollama"
	"github.com/aceyai/acey-backend/internal/openai"
	"github.com/aceyai/acey-backend/internal/providers"
	"github.com/aceyai/acey-backend/internal/review"
	"github.com/aceyai/acey-backend/internal/storage"
	"github.com/aceyai/acey-backend/internal/vapi"
)

type Handler struct {
	sessionStore  *storage.SessionStore
	vapiClient    *vapi.Client
	provider      providers.Provider
	reviewService *review.Service
	jobsService   *jobs.Service
	model         string
}

func New() *Handler {
	provider, model := providerFromEnv()

	var vapiClient *vapi.Client
	if apiKey := os.Getenv("VAPI_API_KEY"); apiKey != "" {
		vapiClient = vapi.NewClient(apiKey)
	} else {
		slog.Warn("VAPI_API_KEY not set, running in offline mode with local session ids")
	}

	// The job analyzer degrades to keyword matching when no LLM key is
	// configured.
	jobsProvider := provider
	if os.Getenv("GOOGLE_API_KEY") == "" && os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("OLLAMA_URL") == "" {
		jobsProvider = nil
	}

	return &Handler{
		sessionStore:  storage.New(),
		vapiClient:    vapiClient,
		provider:      provider,
		reviewService: review.NewService(provider, model),
		jobsService:   jobs.NewService(jobsProvider, model),
		model:         model,
	}
}

// NewWithDeps wires a handler from explicit dependencies, for tests.
func NewWithDeps(store *storage.SessionStore, vapiClient *vapi.Client, provider providers.Provider, model string) *Handler {
	return &Handler{
		sessionStore:  store,
		vapiClient:    vapiClient,
		provider:      provider,
		reviewService: review.NewService(provider, model),
		jobsService:   jobs.NewService(provider, model),
		model:         model,
	}
}

func providerFromEnv() (providers.Provider, string) {
	name := os.Getenv("INTERVIEW_PROVIDER")
	if name == "" {
		name = "gemini"
	}

	var (
		inner providers.Provider
		model string
	)
	switch name {
	case "ollama":
		inner = ollama.New()
		model = os.Getenv("OLLAMA_MODEL")
		if model == "" {
			model = "llama3.2-vision"
		}
	case "openai":
		inner = openai.New()
		model = os.Getenv("OPENAI_MODEL")
		if model == "" {
			model = "gpt-4o"
		}
	default:
		inner = gemini.New()
		model = os.Getenv("GEMINI_MODEL")
		if model == "" {
			model = "gemini-1.5-flash"
		}
	}

	return providers.Instrument(inner), model
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, data, http.StatusOK)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	h.writeJSONStatus(w, map[string]string{"error": message}, code)
}

// Session helpers
func (h *Handler) resolveSessionOrError(w http.ResponseWriter, sessionID string) (*models.InterviewSession, bool) {
	session, exists := h.sessionStore.Resolve(sessionID)
	if !exists {
		h.writeError(w, "No active interview session", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// WithCORS wraps a handler with the permissive CORS policy the browser
// client relies on.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
