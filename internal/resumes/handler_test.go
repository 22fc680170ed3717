package resumes_test

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
)

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

	body := bytes.NewBufferString(`{"title":"Backend Engineer","workMode":"remote"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", body)
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
	if created.JobID == "" {
		t.Fatal("expected jobId, got empty")
	}
	return created.JobID
}

func uploadRequest(t *testing.T, jobID string, files map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		fw, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/resumes", jobID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadListAndDeleteFlow(t *testing.T) {
	automation := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"resumeId":"wf-1"}`)
	}))
	t.Cleanup(automation.Close)

	router := buildTestApp(t, automation.URL)
	jobID := createJob(t, router)

	// Upload two text resumes.
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, jobID, map[string]string{
		"alice.txt": "Alice Example\nGo, Postgres",
		"bob.txt":   "Bob Example\nKubernetes",
	}))

	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var report struct {
		Outcome   string `json:"outcome"`
		Processed int    `json:"processed"`
		Resumes   []struct {
			ResumeID string `json:"resumeId"`
			FullName string `json:"fullName"`
		} `json:"resumes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if report.Outcome != "success" || report.Processed != 2 {
		t.Fatalf("report = %+v, want success with 2 processed", report)
	}

	// List the job's resumes.
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/jobs/%s/resumes", jobID), nil))
	if respList.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", respList.Code)
	}

	var listed []struct {
		ResumeID   string   `json:"resumeId"`
		MatchScore *float64 `json:"matchScore"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed = %d, want 2", len(listed))
	}
	if listed[0].MatchScore != nil {
		t.Error("match score must be null before an evaluation run")
	}

	// Delete one resume.
	respDel := httptest.NewRecorder()
	router.ServeHTTP(respDel, httptest.NewRequest(http.MethodDelete, "/api/v1/resumes/"+listed[0].ResumeID, nil))
	if respDel.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", respDel.Code, respDel.Body.String())
	}

	var deleted struct {
		RemainingCount int `json:"remainingCount"`
	}
	if err := json.NewDecoder(respDel.Body).Decode(&deleted); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if deleted.RemainingCount != 1 {
		t.Errorf("remainingCount = %d, want 1", deleted.RemainingCount)
	}
}

func TestUploadRejectsInvalidBatch(t *testing.T) {
	var automationHits int
	automation := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		automationHits++
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(automation.Close)

	router := buildTestApp(t, automation.URL)
	jobID := createJob(t, router)
	hitsAfterCreate := automationHits

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, jobID, map[string]string{
		"fine.txt": "content",
		"nope.exe": "MZ",
	}))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	if automationHits != hitsAfterCreate {
		t.Errorf("invalid batches must not reach the automation endpoint")
	}
}

func TestUploadUnknownJob(t *testing.T) {
	router := buildTestApp(t, "")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "00000000-0000-0000-0000-000000000000", map[string]string{
		"alice.txt": "Alice",
	}))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUploadWithoutAutomationIsPartial(t *testing.T) {
	router := buildTestApp(t, "")
	jobID := createJob(t, router)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, jobID, map[string]string{
		"alice.txt": "Alice Example",
	}))

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var report struct {
		Outcome string `json:"outcome"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if report.Outcome != "partial" {
		t.Errorf("outcome = %q, want partial", report.Outcome)
	}
}
