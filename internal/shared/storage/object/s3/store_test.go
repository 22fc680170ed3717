package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "job-1/file.pdf", want: "job-1/file.pdf"},
		{name: "simple prefix", prefix: "resumes", key: "job-1/file.pdf", want: "resumes/job-1/file.pdf"},
		{name: "leading slash key", prefix: "resumes", key: "/job-1/file.pdf", want: "resumes/job-1/file.pdf"},
		{name: "nested prefix", prefix: "env/dev", key: "job-1/file.pdf", want: "env/dev/job-1/file.pdf"},
		{name: "empty key", prefix: "resumes", key: "", want: "resumes"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := &Store{prefix: tt.prefix}
			if got := s.applyPrefix(tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q) with prefix %q = %q, want %q", tt.key, tt.prefix, got, tt.want)
			}
		})
	}
}
