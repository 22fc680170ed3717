package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const genericFailureMessage = "Something went wrong. Please try again."

// DeriveMessage maps an automation failure to one user-facing string.
// Failure payloads vary by workflow: a bare string, {message},
// {error_description}, or {status}.
func DeriveMessage(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if msg := messageFromPayload(statusErr.Body); msg != "" {
			return msg
		}
		return fmt.Sprintf("Server error (%d)", statusErr.Status)
	}

	return genericFailureMessage
}

func messageFromPayload(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var asString string
	if err := json.Unmarshal([]byte(trimmed), &asString); err == nil {
		return strings.TrimSpace(asString)
	}

	var asObject struct {
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Status           int    `json:"status"`
	}
	if err := json.Unmarshal([]byte(trimmed), &asObject); err != nil {
		return ""
	}
	if asObject.Message != "" {
		return asObject.Message
	}
	if asObject.ErrorDescription != "" {
		return asObject.ErrorDescription
	}
	if asObject.Status != 0 {
		return fmt.Sprintf("Server error (%d)", asObject.Status)
	}
	return ""
}
