package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/aceyai/acey-backend/internal/models"
	"github.com/aceyai/acey-backend/internal/providers"
	"github.com/aceyai/acey-backend/internal/storage"
	"github.com/aceyai/acey-backend/internal/vapi"
)

// fakeProvider scripts both provider operations and counts calls. The
// mutex keeps the counters safe for handler tests that post concurrently.
type fakeProvider struct {
	textResponse  string
	textErr       error
	imageResponse string
	imageErr      error

	mu         sync.Mutex
	textCalls  int
	imageCalls int
	lastPrompt string
}

func (f *fakeProvider) GenerateText(ctx context.Context, config providers.Config) (string, error) {
	f.mu.Lock()
	f.textCalls++
	f.lastPrompt = config.Prompt
	f.mu.Unlock()
	return f.textResponse, f.textErr
}

func (f *fakeProvider) AnalyzeImage(ctx context.Context, config providers.Config) (string, error) {
	f.mu.Lock()
	f.imageCalls++
	f.mu.Unlock()
	return f.imageResponse, f.imageErr
}

func newTestHandler(provider providers.Provider) (*Handler, *storage.SessionStore) {
	store := storage.New()
	return NewWithDeps(store, nil, provider, "test-model"), store
}

// fakeVapiServer stands in for the Vapi API and records the last assistant
// request it received.
func fakeVapiServer(t *testing.T, lastReq *vapi.AssistantRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(lastReq); err != nil {
			t.Errorf("Failed to decode assistant request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(vapi.Assistant{ID: "asst-test-1", Name: lastReq.Name})
	}))
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	w := httptest.NewRecorder()
	handlerFunc(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}

func TestHandleAssistantOfflineAllModes(t *testing.T) {
	for _, mode := range []string{"easy", "medium", "hard"} {
		t.Run(mode, func(t *testing.T) {
			h, store := newTestHandler(&fakeProvider{})

			req := httptest.NewRequest("GET", "/api/vapi-assistant?mode="+mode, nil)
			w := httptest.NewRecorder()
			h.HandleAssistant(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
			}

			var resp map[string]string
			decodeBody(t, w, &resp)
			if resp["mode"] != mode {
				t.Errorf("Expected mode=%s, got %s", mode, resp["mode"])
			}
			if resp["assistantId"] == "" {
				t.Fatal("Expected a local assistant id in offline mode")
			}

			session, exists := store.Get(resp["assistantId"])
			if !exists {
				t.Fatal("Expected the session to be stored under the assistant id")
			}
			if session.Mode != mode {
				t.Errorf("Expected session mode %s, got %s", mode, session.Mode)
			}
		})
	}
}

func TestHandleAssistantDefaultsToEasy(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	req := httptest.NewRequest("GET", "/api/vapi-assistant", nil)
	w := httptest.NewRecorder()
	h.HandleAssistant(w, req)

	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["mode"] != "easy" {
		t.Errorf("Expected default mode easy, got %s", resp["mode"])
	}
}

func TestHandleAssistantInvalidMode(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	req := httptest.NewRequest("GET", "/api/vapi-assistant?mode=impossible", nil)
	w := httptest.NewRecorder()
	h.HandleAssistant(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestHandleAssistantRejectsPost(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	req := httptest.NewRequest("POST", "/api/vapi-assistant", nil)
	w := httptest.NewRecorder()
	h.HandleAssistant(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}

func TestHandleAssistantCustomConfig(t *testing.T) {
	h, store := newTestHandler(&fakeProvider{})

	req := httptest.NewRequest("GET", "/api/vapi-assistant?mode=custom&questionType=technical&timeLimit=45&curveballs=stress", nil)
	w := httptest.NewRecorder()
	h.HandleAssistant(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	decodeBody(t, w, &resp)
	session, _ := store.Get(resp["assistantId"])
	if session.Custom == nil {
		t.Fatal("Expected a custom config on the session")
	}
	if session.Custom.TimeLimit != 45 {
		t.Errorf("Expected TimeLimit=45, got %d", session.Custom.TimeLimit)
	}
	if session.Custom.QuestionType != "technical" {
		t.Errorf("Expected QuestionType=technical, got %s", session.Custom.QuestionType)
	}
}

func TestHandleAssistantSendsSystemPromptToVapi(t *testing.T) {
	var lastReq vapi.AssistantRequest
	server := fakeVapiServer(t, &lastReq)
	defer server.Close()

	store := storage.New()
	client := vapi.NewClient("test-key")
	client.BaseURL = server.URL
	h := NewWithDeps(store, client, &fakeProvider{}, "test-model")

	req := httptest.NewRequest("GET", "/api/vapi-assistant?mode=hard", nil)
	w := httptest.NewRecorder()
	h.HandleAssistant(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["assistantId"] != "asst-test-1" {
		t.Errorf("Expected the platform-issued assistant id, got %s", resp["assistantId"])
	}

	if lastReq.Model == nil || len(lastReq.Model.Messages) == 0 {
		t.Fatal("Expected a system message in the assistant request")
	}
	if !strings.Contains(lastReq.Model.Messages[0].Content, "HARD mode") {
		t.Error("Expected the hard-mode system prompt")
	}
	if lastReq.Transcriber == nil || lastReq.Transcriber.Provider != "deepgram" {
		t.Errorf("Expected deepgram transcriber, got %+v", lastReq.Transcriber)
	}
	if lastReq.FirstMessage == "" {
		t.Error("Expected a first message")
	}
}

func TestJobAnalysisFlowsIntoNextSession(t *testing.T) {
	provider := &fakeProvider{textResponse: `{
		"role": "Platform Engineer",
		"company": "Initech",
		"keyResponsibilities": ["Run the build system"],
		"requiredSkills": ["go"],
		"experienceLevel": "mid",
		"industry": "Software / SaaS",
		"interviewFocus": ["technical skills"]
	}`}

	var lastReq vapi.AssistantRequest
	server := fakeVapiServer(t, &lastReq)
	defer server.Close()

	store := storage.New()
	client := vapi.NewClient("test-key")
	client.BaseURL = server.URL
	h := NewWithDeps(store, client, provider, "test-model")

	w := postJSON(t, h.HandleAnalyzeJobDescription, "/api/analyze-job-description", map[string]string{
		"jobDescription": "Platform Engineer at Initech. Go required.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var analysis models.JobAnalysis
	decodeBody(t, w, &analysis)
	if analysis.Role != "Platform Engineer" {
		t.Errorf("Expected Role=Platform Engineer, got %s", analysis.Role)
	}

	// Bootstrap consumes the pending analysis into the system prompt.
	req := httptest.NewRequest("GET", "/api/vapi-assistant?mode=medium", nil)
	rec := httptest.NewRecorder()
	h.HandleAssistant(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	prompt := lastReq.Model.Messages[0].Content
	if !strings.Contains(prompt, "JOB CONTEXT:") || !strings.Contains(prompt, "Initech") {
		t.Errorf("Expected job context in the system prompt, got %q", prompt)
	}

	session, _ := store.Get("asst-test-1")
	if session.JobAnalysis == nil || session.JobAnalysis.Company != "Initech" {
		t.Error("Expected the analysis attached to the session")
	}
	if store.PendingJobAnalysis() != nil {
		t.Error("Expected the pending analysis to be consumed")
	}
}

func frameDataURL() string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes"))
}

func TestHandleAnalyzeFrame(t *testing.T) {
	provider := &fakeProvider{imageResponse: "Upright posture, steady eye contact."}
	h, store := newTestHandler(provider)
	store.Set("s1", &models.InterviewSession{ID: "s1", Mode: "easy"})

	w := postJSON(t, h.HandleAnalyzeFrame, "/api/analyze-frame", map[string]string{
		"frame":       frameDataURL(),
		"assistantId": "s1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["status"] != "ok" {
		t.Errorf("Expected status ok, got %s", resp["status"])
	}
	if resp["analysis"] != "Upright posture, steady eye contact." {
		t.Errorf("Unexpected analysis: %q", resp["analysis"])
	}

	session, _ := store.Get("s1")
	if len(session.FrameNotes) != 1 {
		t.Fatalf("Expected 1 frame note, got %d", len(session.FrameNotes))
	}
}

func TestHandleAnalyzeFrameMissingFrame(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	w := postJSON(t, h.HandleAnalyzeFrame, "/api/analyze-frame", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestHandleAnalyzeFrameNoSession(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	w := postJSON(t, h.HandleAnalyzeFrame, "/api/analyze-frame", map[string]string{
		"frame": frameDataURL(),
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestHandleAnalyzeFrameQuotaTripsBreaker(t *testing.T) {
	provider := &fakeProvider{imageErr: providers.ErrQuotaExhausted}
	h, store := newTestHandler(provider)
	store.Set("s1", &models.InterviewSession{ID: "s1", Mode: "easy"})

	w := postJSON(t, h.HandleAnalyzeFrame, "/api/analyze-frame", map[string]string{
		"frame":       frameDataURL(),
		"assistantId": "s1",
	})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}

	session, _ := store.Get("s1")
	if !session.RateLimited {
		t.Error("Expected the session to be rate limited")
	}
	if len(session.FrameNotes) != 1 {
		t.Fatalf("Expected the rate-limit note, got %d notes", len(session.FrameNotes))
	}

	// Further frames are rejected without calling the provider again.
	w = postJSON(t, h.HandleAnalyzeFrame, "/api/analyze-frame", map[string]string{
		"frame":       frameDataURL(),
		"assistantId": "s1",
	})
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 for the limited session, got %d", w.Code)
	}
	if provider.imageCalls != 1 {
		t.Errorf("Expected 1 provider call total, got %d", provider.imageCalls)
	}

	session, _ = store.Get("s1")
	if len(session.FrameNotes) != 1 {
		t.Errorf("Expected no additional notes, got %d", len(session.FrameNotes))
	}
}

func TestHandleAnalyzeFrameTruncatesLongCommentary(t *testing.T) {
	provider := &fakeProvider{imageResponse: strings.Repeat("a", frameNoteLimit+200)}
	h, store := newTestHandler(provider)
	store.Set("s1", &models.InterviewSession{ID: "s1"})

	postJSON(t, h.HandleAnalyzeFrame, "/api/analyze-frame", map[string]string{
		"frame":       frameDataURL(),
		"assistantId": "s1",
	})

	session, _ := store.Get("s1")
	if len(session.FrameNotes[0]) != frameNoteLimit {
		t.Errorf("Expected note capped at %d chars, got %d", frameNoteLimit, len(session.FrameNotes[0]))
	}
}

func TestHandleAnalyzeFrameTruncationKeepsRunesIntact(t *testing.T) {
	// The final rune straddles the note limit and must be dropped whole.
	provider := &fakeProvider{imageResponse: strings.Repeat("a", frameNoteLimit-1) + "é"}
	h, store := newTestHandler(provider)
	store.Set("s1", &models.InterviewSession{ID: "s1"})

	postJSON(t, h.HandleAnalyzeFrame, "/api/analyze-frame", map[string]string{
		"frame":       frameDataURL(),
		"assistantId": "s1",
	})

	session, _ := store.Get("s1")
	note := session.FrameNotes[0]
	if !utf8.ValidString(note) {
		t.Errorf("Expected a valid UTF-8 note, got %q", note)
	}
	if len(note) != frameNoteLimit-1 {
		t.Errorf("Expected note of %d bytes, got %d", frameNoteLimit-1, len(note))
	}
}

func TestHandleAnalyzeFrameConcurrentWithSessionReads(t *testing.T) {
	provider := &fakeProvider{imageResponse: "Good posture."}
	h, store := newTestHandler(provider)
	store.Set("s1", &models.InterviewSession{ID: "s1", Mode: "easy"})

	frameBody, err := json.Marshal(map[string]string{
		"frame":       frameDataURL(),
		"assistantId": "s1",
	})
	if err != nil {
		t.Fatalf("Failed to marshal frame request: %v", err)
	}

	const posts = 20

	var wg sync.WaitGroup
	for i := 0; i < posts; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest("POST", "/api/analyze-frame", bytes.NewReader(frameBody))
			h.HandleAnalyzeFrame(httptest.NewRecorder(), req)
		}()
		go func() {
			defer wg.Done()
			req := httptest.NewRequest("GET", "/api/sessions", nil)
			h.HandleSessions(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	session, _ := store.Get("s1")
	if len(session.FrameNotes) != posts {
		t.Errorf("Expected %d frame notes, got %d", posts, len(session.FrameNotes))
	}
}

func TestHandleGetReviewSuccessClearsNotes(t *testing.T) {
	provider := &fakeProvider{textResponse: `{
		"whatYouDidWell": ["Good structure"],
		"areasForImprovement": ["More detail"],
		"overallScore": 80,
		"scoreExplanation": "Solid run.",
		"scoringBreakdown": {"baseScore": 100, "bonuses": 0, "deductions": 20, "finalScore": 80},
		"summary": "A good interview."
	}`}
	h, store := newTestHandler(provider)
	store.Set("s1", &models.InterviewSession{ID: "s1", Mode: "medium", FrameNotes: []string{"slouching"}})

	w := postJSON(t, h.HandleGetReview, "/api/get-review", map[string]string{
		"transcript":  "Q: ... A: ...",
		"assistantId": "s1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var review models.Review
	decodeBody(t, w, &review)
	if review.OverallScore != 80 {
		t.Errorf("Expected OverallScore=80, got %d", review.OverallScore)
	}

	// The frame notes fed the prompt and are cleared afterwards.
	if !strings.Contains(provider.lastPrompt, "slouching") {
		t.Error("Expected frame notes in the review prompt")
	}
	session, _ := store.Get("s1")
	if len(session.FrameNotes) != 0 {
		t.Errorf("Expected frame notes cleared, got %d", len(session.FrameNotes))
	}
}

func TestHandleGetReviewEmptyMaterial(t *testing.T) {
	provider := &fakeProvider{}
	h, store := newTestHandler(provider)
	store.Set("s1", &models.InterviewSession{ID: "s1", Mode: "easy"})

	w := postJSON(t, h.HandleGetReview, "/api/get-review", map[string]string{
		"transcript":  "",
		"assistantId": "s1",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	if provider.textCalls != 0 {
		t.Errorf("Expected no provider calls, got %d", provider.textCalls)
	}
}

func TestHandleGetReviewUnparseableReturnsFallback(t *testing.T) {
	provider := &fakeProvider{textResponse: "I refuse to emit JSON."}
	h, store := newTestHandler(provider)
	store.Set("s1", &models.InterviewSession{ID: "s1", Mode: "easy"})

	w := postJSON(t, h.HandleGetReview, "/api/get-review", map[string]string{
		"transcript":  "some transcript",
		"assistantId": "s1",
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}

	var review models.Review
	decodeBody(t, w, &review)
	if review.OverallScore != 0 {
		t.Errorf("Expected fallback score 0, got %d", review.OverallScore)
	}
	if len(review.AreasForImprovement) == 0 {
		t.Error("Expected the fallback review body")
	}
}

func TestHandleGetReviewUsesSessionModeWhenUnset(t *testing.T) {
	provider := &fakeProvider{textResponse: `{"overallScore": 70, "scoringBreakdown": {"baseScore":0,"bonuses":0,"deductions":0,"finalScore":0}}`}
	h, store := newTestHandler(provider)
	store.Set("s1", &models.InterviewSession{ID: "s1", Mode: "hard"})

	postJSON(t, h.HandleGetReview, "/api/get-review", map[string]string{
		"transcript":  "some transcript",
		"assistantId": "s1",
	})

	if !strings.Contains(provider.lastPrompt, "difficulty mode: hard") {
		t.Error("Expected the session mode in the review prompt")
	}
}

func TestHandleAgentFollowup(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	w := postJSON(t, h.HandleAgentFollowup, "/api/agent-followup", map[string]string{
		"mode":   "medium",
		"answer": "The biggest challenge was scaling the database.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var followup models.FollowUpQuestion
	decodeBody(t, w, &followup)
	if followup.Difficulty != "medium" {
		t.Errorf("Expected Difficulty=medium, got %s", followup.Difficulty)
	}
	if followup.Question == "" {
		t.Error("Expected a question")
	}
}

func TestHandleAgentFollowupMissingAnswer(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	w := postJSON(t, h.HandleAgentFollowup, "/api/agent-followup", map[string]string{"mode": "easy"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestHandleEnhancedFollowup(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	w := postJSON(t, h.HandleEnhancedFollowup, "/api/enhanced-followup", map[string]any{
		"answer": "I led the Kubernetes migration for my team.",
		"context": map[string]any{
			"body_language_score": 0.9,
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var feedback models.EnhancedFeedback
	decodeBody(t, w, &feedback)
	if feedback.PrimaryQuestion == nil {
		t.Fatal("Expected a primary question")
	}
	if feedback.BodyLanguageFeedback == nil || feedback.BodyLanguageFeedback.EngagementLevel != "high" {
		t.Errorf("Expected high engagement, got %+v", feedback.BodyLanguageFeedback)
	}
}

func TestHandleParseLinkedInJobRejectsOtherURLs(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	w := postJSON(t, h.HandleParseLinkedInJob, "/api/parse-linkedin-job", map[string]string{
		"url": "https://example.com/careers/1",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestHandleWebhookMarksStarted(t *testing.T) {
	h, store := newTestHandler(&fakeProvider{})
	store.Set("s1", &models.InterviewSession{ID: "s1", Mode: "easy"})

	w := postJSON(t, h.HandleWebhook, "/api/vapi-webhook", map[string]any{
		"message": map[string]any{
			"type":   "status-update",
			"status": "in-progress",
			"call":   map[string]string{"id": "call-1", "assistantId": "s1"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	session, _ := store.Get("s1")
	if session.StartedAt.IsZero() {
		t.Error("Expected StartedAt to be stamped")
	}
}

func TestHandleWebhookHangsUpOverTimeBudget(t *testing.T) {
	h, store := newTestHandler(&fakeProvider{})
	store.Set("s1", &models.InterviewSession{
		ID:        "s1",
		Mode:      "custom",
		Custom:    &models.CustomConfig{TimeLimit: 10}, // budget 100s
		StartedAt: time.Now().Add(-5 * time.Minute),
	})

	w := postJSON(t, h.HandleWebhook, "/api/vapi-webhook", map[string]any{
		"message": map[string]any{
			"type": "transcript",
			"call": map[string]string{"id": "call-1", "assistantId": "s1"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]any
	decodeBody(t, w, &resp)
	if hangup, _ := resp["hangup"].(bool); !hangup {
		t.Errorf("Expected hangup=true, got %v", resp)
	}
}

func TestHandleWebhookNoHangupWithinBudget(t *testing.T) {
	h, store := newTestHandler(&fakeProvider{})
	store.Set("s1", &models.InterviewSession{
		ID:        "s1",
		Mode:      "custom",
		Custom:    &models.CustomConfig{TimeLimit: 60}, // budget 600s
		StartedAt: time.Now().Add(-time.Minute),
	})

	w := postJSON(t, h.HandleWebhook, "/api/vapi-webhook", map[string]any{
		"message": map[string]any{
			"type": "transcript",
			"call": map[string]string{"id": "call-1", "assistantId": "s1"},
		},
	})

	var resp map[string]any
	decodeBody(t, w, &resp)
	if _, hasHangup := resp["hangup"]; hasHangup {
		t.Errorf("Expected no hangup, got %v", resp)
	}
}

func TestHandleWebhookUnknownSession(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	w := postJSON(t, h.HandleWebhook, "/api/vapi-webhook", map[string]any{
		"message": map[string]any{
			"type": "transcript",
			"call": map[string]string{"assistantId": "nope"},
		},
	})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 ack for unknown sessions, got %d", w.Code)
	}
}

func TestHandleSessions(t *testing.T) {
	h, store := newTestHandler(&fakeProvider{})
	store.Set("s1", &models.InterviewSession{ID: "s1", Mode: "easy"})
	store.Set("s2", &models.InterviewSession{ID: "s2", Mode: "hard"})

	req := httptest.NewRequest("GET", "/api/sessions", nil)
	w := httptest.NewRecorder()
	h.HandleSessions(w, req)

	var sessions []models.InterviewSession
	decodeBody(t, w, &sessions)
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}
}

func TestHandleSessionDetail(t *testing.T) {
	h, store := newTestHandler(&fakeProvider{})
	store.Set("s1", &models.InterviewSession{ID: "s1", Mode: "easy"})

	req := httptest.NewRequest("GET", "/api/sessions/s1", nil)
	w := httptest.NewRecorder()
	h.HandleSessionDetail(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var session models.InterviewSession
	decodeBody(t, w, &session)
	if session.ID != "s1" {
		t.Errorf("Expected session s1, got %s", session.ID)
	}

	req = httptest.NewRequest("DELETE", "/api/sessions/s1", nil)
	w = httptest.NewRecorder()
	h.HandleSessionDetail(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if _, exists := store.Get("s1"); exists {
		t.Error("Expected session deleted")
	}

	req = httptest.NewRequest("GET", "/api/sessions/s1", nil)
	w = httptest.NewRecorder()
	h.HandleSessionDetail(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestHandleData(t *testing.T) {
	h, _ := newTestHandler(&fakeProvider{})

	req := httptest.NewRequest("GET", "/api/data", nil)
	w := httptest.NewRecorder()
	h.HandleData(w, req)

	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["message"] == "" {
		t.Error("Expected a hello message")
	}
}

func TestWithCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := WithCORS(inner)

	req := httptest.NewRequest("OPTIONS", "/api/data", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected permissive CORS origin header")
	}

	req = httptest.NewRequest("GET", "/api/data", nil)
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected wrapped handler to run, got %d", w.Code)
	}
}

func TestDecodeDataURL(t *testing.T) {
	raw := []byte("image-bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name     string
		frame    string
		wantMIME string
		wantErr  bool
	}{
		{name: "jpeg data url", frame: "data:image/jpeg;base64," + encoded, wantMIME: "jpeg"},
		{name: "png data url", frame: "data:image/png;base64," + encoded, wantMIME: "png"},
		{name: "bare base64 defaults to jpeg", frame: encoded, wantMIME: "jpeg"},
		{name: "missing comma", frame: "data:image/jpeg;base64", wantErr: true},
		{name: "bad base64", frame: "data:image/jpeg;base64,@@@", wantErr: true},
		{name: "empty payload", frame: "data:image/jpeg;base64,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, mime, err := decodeDataURL(tt.frame)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeDataURL failed: %v", err)
			}
			if mime != tt.wantMIME {
				t.Errorf("Expected MIME=%s, got %s", tt.wantMIME, mime)
			}
			if !bytes.Equal(data, raw) {
				t.Errorf("Expected decoded bytes %q, got %q", raw, data)
			}
		})
	}
}
