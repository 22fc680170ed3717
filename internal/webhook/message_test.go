package webhook

import (
	"errors"
	"fmt"
	"testing"
)

func TestDeriveMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "plain string payload",
			err:  &StatusError{Status: 500, Body: []byte(`"workflow crashed"`)},
			want: "workflow crashed",
		},
		{
			name: "message field",
			err:  &StatusError{Status: 500, Body: []byte(`{"message":"no workflow"}`)},
			want: "no workflow",
		},
		{
			name: "error_description field",
			err:  &StatusError{Status: 400, Body: []byte(`{"error_description":"bad payload"}`)},
			want: "bad payload",
		},
		{
			name: "status field",
			err:  &StatusError{Status: 502, Body: []byte(`{"status":503}`)},
			want: "Server error (503)",
		},
		{
			name: "empty body falls back to http status",
			err:  &StatusError{Status: 502},
			want: "Server error (502)",
		},
		{
			name: "wrapped status error",
			err:  fmt.Errorf("webhook hr-chat: %w", &StatusError{Status: 500, Body: []byte(`{"message":"inner"}`)}),
			want: "inner",
		},
		{
			name: "network error",
			err:  errors.New("connection refused"),
			want: genericFailureMessage,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveMessage(tc.err); got != tc.want {
				t.Fatalf("DeriveMessage = %q, want %q", got, tc.want)
			}
		})
	}
}
