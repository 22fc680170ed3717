// Package webhook talks to the external automation endpoint. Every call is
// a POST of a {type, data} JSON envelope to one fixed URL.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Event types understood by the automation endpoint.
const (
	EventResumeUpload = "resume-upload"
	EventJobCreate    = "job-create"
	EventResumeScore  = "resume-score"
	EventHRChat       = "hr-chat"
)

const maxResponseBytes = 1 << 20

// Envelope is the wire format for every automation call.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Sender abstracts the automation endpoint for services and tests.
type Sender interface {
	// Notify fires an event and only reports success or failure.
	Notify(ctx context.Context, event string, data any) error
	// Call fires an event and decodes the 2xx JSON body into out.
	Call(ctx context.Context, event string, data any, out any) error
}

// StatusError reports a non-2xx automation response, carrying the body for
// message derivation.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook status %d", e.Status)
}

// Client posts envelopes to the configured automation URL with a bounded
// per-call timeout.
type Client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
}

// New constructs a Client. A non-positive timeout falls back to 10s.
func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:        strings.TrimSpace(url),
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// Configured reports whether an automation URL is set.
func (c *Client) Configured() bool {
	return c.url != ""
}

// Notify delivers an event without reading the response payload.
func (c *Client) Notify(ctx context.Context, event string, data any) error {
	_, err := c.post(ctx, event, data)
	return err
}

// Call delivers an event and decodes the response body into out.
func (c *Client) Call(ctx context.Context, event string, data any, out any) error {
	body, err := c.post(ctx, event, data)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("webhook %s: decode response: %w", event, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, event string, data any) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("webhook url not configured")
	}

	payload, err := json.Marshal(Envelope{Type: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("webhook %s: encode envelope: %w", event, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("webhook %s: build request: %w", event, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook %s: %w", event, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("webhook %s: read response: %w", event, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook %s: %w", event, &StatusError{Status: resp.StatusCode, Body: body})
	}

	return body, nil
}

var _ Sender = (*Client)(nil)

// JobCreateResponse is the automation reply to a job-create event. The
// endpoint answers with either id or jobId depending on workflow version.
type JobCreateResponse struct {
	ID    string `json:"id"`
	JobID string `json:"jobId"`
}

// WorkflowID returns whichever id field the endpoint populated.
func (r JobCreateResponse) WorkflowID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.JobID
}

// ResumeUploadResponse is the automation reply to a resume-upload event.
type ResumeUploadResponse struct {
	ResumeID string `json:"resumeId"`
}

// ScoreResult is one scored resume inside a resume-score reply.
type ScoreResult struct {
	ResumeID string  `json:"resumeId"`
	Score    float64 `json:"score"`
	Summary  string  `json:"summary"`
}

// ResumeScoreResponse is the automation reply to a resume-score event.
type ResumeScoreResponse struct {
	Scores []ScoreResult `json:"scores"`
}

// ChatResponse is the automation reply to an hr-chat event.
type ChatResponse struct {
	Response string `json:"response"`
}
