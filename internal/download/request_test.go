package download

import (
	"path/filepath"
	"testing"
)

func TestCleanURL(t *testing.T) {
	got := CleanURL("  https://youtu.be/abc\r\n\t")
	if got != "https://youtu.be/abc" {
		t.Errorf("CleanURL() = %q", got)
	}
}

func TestOutputTemplate(t *testing.T) {
	req := Request{OutputDir: "/videos"}
	if got, want := req.OutputTemplate(), filepath.Join("/videos", "%(title)s.%(ext)s"); got != want {
		t.Errorf("OutputTemplate() = %q, want %q", got, want)
	}

	req.FilenameTemplate = "%(id)s.%(ext)s"
	if got, want := req.OutputTemplate(), filepath.Join("/videos", "%(id)s.%(ext)s"); got != want {
		t.Errorf("OutputTemplate() = %q, want %q", got, want)
	}
}

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name  string
		tmpl  string
		id    string
		title string
		ext   string
		want  string
	}{
		{"title and ext", "%(title)s.%(ext)s", "abc", "Song", "mp4", "Song.mp4"},
		{"id", "%(id)s-%(title)s.%(ext)s", "abc", "Song", "m4a", "abc-Song.m4a"},
		{"slashes in title", "%(title)s.%(ext)s", "", "AC/DC: Live", "mp4", "AC_DC_ Live.mp4"},
		{"empty title", "%(title)s.%(ext)s", "", "  ", "mp4", "video.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTemplate(tt.tmpl, tt.id, tt.title, tt.ext); got != tt.want {
				t.Errorf("ExpandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVideoID(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                "dQw4w9WgXcQ",
		"https://youtu.be/":                           "",
	}
	for in, want := range tests {
		if got := videoID(in); got != want {
			t.Errorf("videoID(%q) = %q, want %q", in, got, want)
		}
	}
}
