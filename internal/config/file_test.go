package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected FileDefaults
		wantErr  bool
	}{
		{
			name: "full file",
			content: `destination: /music
mode: mp3
quality: 720p
tool: /opt/yt-dlp
tool_args: ["-m", "yt_dlp"]
extra_args:
  - --no-playlist
`,
			expected: FileDefaults{
				Destination: "/music",
				Mode:        "mp3",
				Quality:     "720p",
				Tool:        "/opt/yt-dlp",
				ToolArgs:    []string{"-m", "yt_dlp"},
				ExtraArgs:   []string{"--no-playlist"},
			},
		},
		{
			name:     "partial file",
			content:  "mode: mp4\n",
			expected: FileDefaults{Mode: "mp4"},
		},
		{
			name:    "invalid yaml",
			content: "mode: [unterminated\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultsFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			got, err := LoadDefaults(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr {
				return
			}
			if got.Destination != tt.expected.Destination || got.Mode != tt.expected.Mode ||
				got.Quality != tt.expected.Quality || got.Tool != tt.expected.Tool ||
				!slices.Equal(got.ToolArgs, tt.expected.ToolArgs) || !slices.Equal(got.ExtraArgs, tt.expected.ExtraArgs) {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestLoadDefaults_MissingFile(t *testing.T) {
	got, err := LoadDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if got.Destination != "" || got.Mode != "" || got.Tool != "" {
		t.Errorf("expected zero defaults, got %+v", got)
	}
}

func TestSaveDefaults_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), AppConfigDir, DefaultsFileName)
	want := FileDefaults{Destination: "/videos", Quality: "480p"}

	if err := SaveDefaults(path, want); err != nil {
		t.Fatalf("SaveDefaults failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "mode:") {
		t.Errorf("empty fields should be omitted, got:\n%s", data)
	}

	got, err := LoadDefaults(path)
	if err != nil {
		t.Fatalf("LoadDefaults failed: %v", err)
	}
	if got.Destination != want.Destination || got.Quality != want.Quality {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestDefaultsPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := DefaultsPath()
	if err != nil {
		t.Fatalf("DefaultsPath failed: %v", err)
	}
	if filepath.Base(path) != DefaultsFileName || filepath.Base(filepath.Dir(path)) != AppConfigDir {
		t.Errorf("unexpected defaults path %s", path)
	}
}
