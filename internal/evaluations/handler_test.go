package evaluations_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/bootstrap"
	"screening-backend/internal/shared/config"
	"screening-backend/internal/webhook"
)

// automationStub answers every event type a screening flow emits.
type automationStub struct {
	server *httptest.Server
}

func newAutomationStub(t *testing.T) *automationStub {
	t.Helper()
	stub := &automationStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var env webhook.Envelope
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			http.Error(w, "bad envelope", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch env.Type {
		case webhook.EventResumeScore:
			data, _ := env.Data.(map[string]any)
			ids, _ := data["resumeIds"].([]any)
			scores := make([]map[string]any, 0, len(ids))
			for i, id := range ids {
				scores = append(scores, map[string]any{
					"resumeId": id,
					"score":    90 - float64(i)*10,
					"summary":  "scored",
				})
			}
			json.NewEncoder(w).Encode(map[string]any{"scores": scores})
		case webhook.EventHRChat:
			fmt.Fprint(w, `{"response":"The top candidate is Alice."}`)
		default:
			fmt.Fprint(w, `{}`)
		}
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func buildTestApp(t *testing.T, webhookURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		WebhookURL:      webhookURL,
		WebhookTimeout:  2 * time.Second,
		MaxUploadFiles:  5,
		MaxUploadBytes:  5 << 20,
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func createJob(t *testing.T, router *gin.Engine) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewBufferString(`{"title":"Backend Engineer"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("create job: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		JobID string `json:"jobId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return created.JobID
}

func uploadResume(t *testing.T, router *gin.Engine, jobID, name, content string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("files", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/resumes", jobID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated && resp.Code != http.StatusAccepted {
		t.Fatalf("upload: unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestEvaluationFlowOverHTTP(t *testing.T) {
	stub := newAutomationStub(t)
	router := buildTestApp(t, stub.server.URL)

	jobID := createJob(t, router)
	uploadResume(t, router, jobID, "alice.txt", "Alice Example\nGo")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/evaluations", jobID), nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("evaluate: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		Scores []struct {
			ResumeID string  `json:"resumeId"`
			Score    float64 `json:"score"`
		} `json:"scores"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode evaluate response: %v", err)
	}
	if len(result.Scores) != 1 || result.Scores[0].Score != 90 {
		t.Fatalf("scores = %+v, want one score of 90", result.Scores)
	}

	// The score must now show up on the resume record.
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/jobs/%s/resumes", jobID), nil))
	var listed []struct {
		MatchScore *float64 `json:"matchScore"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 1 || listed[0].MatchScore == nil || *listed[0].MatchScore != 90 {
		t.Fatalf("listed = %+v, want match score 90", listed)
	}
}

func TestEvaluationGateOverHTTP(t *testing.T) {
	stub := newAutomationStub(t)
	router := buildTestApp(t, stub.server.URL)
	jobID := createJob(t, router)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/evaluations", jobID), nil))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}

	respChat := httptest.NewRecorder()
	router.ServeHTTP(respChat, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/chat", jobID),
		bytes.NewBufferString(`{"message":"anyone?"}`)))
	if respChat.Code != http.StatusConflict {
		t.Fatalf("chat gate: expected 409, got %d: %s", respChat.Code, respChat.Body.String())
	}
}

func TestChatOverHTTP(t *testing.T) {
	stub := newAutomationStub(t)
	router := buildTestApp(t, stub.server.URL)

	jobID := createJob(t, router)
	uploadResume(t, router, jobID, "alice.txt", "Alice Example\nGo")

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/chat", jobID),
		bytes.NewBufferString(`{"message":"Who stands out?"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("chat: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var answer struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	if answer.Response != "The top candidate is Alice." {
		t.Errorf("response = %q", answer.Response)
	}
}

func TestChatRequiresMessage(t *testing.T) {
	stub := newAutomationStub(t)
	router := buildTestApp(t, stub.server.URL)
	jobID := createJob(t, router)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/chat", jobID),
		bytes.NewBufferString(`{"message":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}
