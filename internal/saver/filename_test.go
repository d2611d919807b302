package saver

import (
	"testing"
	"time"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "notes", "notes"},
		{"name with extension", "notes.txt", "notes.txt"},
		{"traversal segments dropped", "../../etc/passwd", "etc_passwd"},
		{"absolute path flattened", "/etc/passwd", "etc_passwd"},
		{"windows separators", `..\..\boot.ini`, "boot.ini"},
		{"mixed separators", `a/b\c`, "a_b_c"},
		{"current dir segments dropped", "./notes", "notes"},
		{"unsafe characters replaced", "my file (final)!.txt", "my_file__final__.txt"},
		{"unicode replaced", "メモ.txt", "__.txt"},
		{"leading dots trimmed", ".hidden", "hidden"},
		{"trailing dots trimmed", "name...", "name"},
		{"only dots", "....", ""},
		{"only separators", "///", ""},
		{"only traversal", "../..", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitizeFilename(tc.input)
			if got != tc.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestEnsureExtension(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"notes", "notes.txt"},
		{"notes.txt", "notes.txt"},
		{"report.md", "report.md"},
		{"archive.tar.gz", "archive.tar.gz"},
		{"etc_passwd", "etc_passwd.txt"},
	}

	for _, tc := range cases {
		if got := ensureExtension(tc.input); got != tc.want {
			t.Errorf("ensureExtension(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestGeneratedName(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	if got, want := generatedName(at, 0), "saved_text_20250102_030405.txt"; got != want {
		t.Errorf("generatedName(seq=0) = %q, want %q", got, want)
	}
	if got, want := generatedName(at, 2), "saved_text_20250102_030405_2.txt"; got != want {
		t.Errorf("generatedName(seq=2) = %q, want %q", got, want)
	}
}

// Lexical order of generated names must match chronological order.
func TestGeneratedNameSortsChronologically(t *testing.T) {
	earlier := generatedName(time.Date(2025, 1, 2, 9, 59, 59, 0, time.UTC), 0)
	later := generatedName(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC), 0)
	if !(earlier < later) {
		t.Errorf("expected %q to sort before %q", earlier, later)
	}
}
