package platform

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFakeTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write fake tool: %v", err)
	}
	return path
}

func TestFindTool(t *testing.T) {
	if runtime.GOOS == OSWindows {
		t.Skip("shell scripts are not executable on windows")
	}

	binDir := t.TempDir()
	fake := writeFakeTool(t, binDir, "yt-dlp-fake", "#!/bin/sh\necho 2025.01.01\n")
	t.Setenv("PATH", binDir)

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"found in PATH", "yt-dlp-fake", fake, false},
		{"explicit path", fake, fake, false},
		{"explicit missing path", filepath.Join(binDir, "missing"), "", true},
		{"missing name", "definitely-not-installed-tool", "", true},
		{"empty name", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindTool(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestToolVersion(t *testing.T) {
	if runtime.GOOS == OSWindows {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	ok := writeFakeTool(t, dir, "ok", "#!/bin/sh\necho 2025.09.26\necho extra\n")
	bad := writeFakeTool(t, dir, "bad", "#!/bin/sh\nexit 1\n")

	version, err := ToolVersion(context.Background(), ok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "2025.09.26" {
		t.Errorf("expected first line of output, got %q", version)
	}

	if _, err := ToolVersion(context.Background(), bad); err == nil {
		t.Error("expected error for failing tool")
	}
}
