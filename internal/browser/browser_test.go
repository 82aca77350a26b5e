package browser

import (
	"errors"
	"testing"
)

func TestCommandRejectsNonHTTP(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://example.com/paper.pdf", false},
		{"  https://example.com  ", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"https://", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := command("linux", tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("command(%q): expected error, got nil", tt.url)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("command(%q): unexpected error: %v", tt.url, err)
		}
	}
}

func TestCommandSchemeSentinel(t *testing.T) {
	_, err := command("linux", "mailto:someone@example.com")
	if !errors.Is(err, ErrScheme) {
		t.Errorf("err = %v, want ErrScheme", err)
	}
}

func TestCommandPerPlatform(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
		{"windows", "rundll32"},
	}

	for _, tt := range tests {
		cmd, err := command(tt.goos, "https://example.com")
		if err != nil {
			t.Fatalf("command(%q): %v", tt.goos, err)
		}
		if cmd.Args[0] != tt.want {
			t.Errorf("command(%q) runs %q, want %q", tt.goos, cmd.Args[0], tt.want)
		}
		if last := cmd.Args[len(cmd.Args)-1]; last != "https://example.com" {
			t.Errorf("command(%q) last arg = %q", tt.goos, last)
		}
	}
}
