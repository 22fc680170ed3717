package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"resume.pdf", "resume.pdf", false},
		{" spaced.docx ", "spaced.docx", false},
		{"a/b.pdf", "a_b.pdf", false},
		{"a\\b.pdf", "a_b.pdf", false},
		{"../evil.pdf", "", true},
		{"   ", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("SanitizeFileName(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("SanitizeFileName(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFileExt(t *testing.T) {
	if got := FileExt("Resume.PDF"); got != ".pdf" {
		t.Fatalf("FileExt = %q, want .pdf", got)
	}
	if got := FileExt("noext"); got != "" {
		t.Fatalf("FileExt = %q, want empty", got)
	}
}
