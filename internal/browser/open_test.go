package browser

import (
	"os/exec"
	"testing"
)

func TestOpen_RejectsNonHTTP(t *testing.T) {
	called := false
	prev := command
	command = func(goos, target string) (*exec.Cmd, error) {
		called = true
		return exec.Command("true"), nil
	}
	t.Cleanup(func() { command = prev })

	for _, u := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "/relative/img.png", "http://"} {
		if err := Open(u); err == nil {
			t.Errorf("Open(%q) = nil, want error", u)
		}
	}
	if called {
		t.Error("command built for a refused URL")
	}
}

func TestOpen_PassesURL(t *testing.T) {
	var got string
	prev := command
	command = func(goos, target string) (*exec.Cmd, error) {
		got = target
		return exec.Command("true"), nil
	}
	t.Cleanup(func() { command = prev })

	if err := Open("https://cdn.example.com/hotel.jpg"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got != "https://cdn.example.com/hotel.jpg" {
		t.Errorf("target = %q", got)
	}
}

func TestCommand_UnsupportedOS(t *testing.T) {
	if _, err := command("plan9", "https://example.com"); err == nil {
		t.Error("expected error for unsupported OS")
	}
	cmd, err := command("linux", "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Args[0] != "xdg-open" || cmd.Args[1] != "https://example.com" {
		t.Errorf("args = %v", cmd.Args)
	}
}
