package download

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ytget/yt-converter/internal/model"
)

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func countFlag(args []string, flag string) int {
	n := 0
	for _, a := range args {
		if a == flag {
			n++
		}
	}
	return n
}

func TestBuildArgs_Audio(t *testing.T) {
	for _, quality := range append(model.Qualities(), "") {
		t.Run("quality "+string(quality), func(t *testing.T) {
			args, err := BuildArgs(model.DownloadRequest{
				URL:         testURL,
				Mode:        model.ModeAudio,
				Quality:     quality,
				Destination: "/music",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			expected := []string{"-P", "/music", "-x", "--audio-format", "mp3", "--", testURL}
			if !slices.Equal(args, expected) {
				t.Errorf("expected %v, got %v", expected, args)
			}
			if countFlag(args, FlagFormatSort) != 0 {
				t.Errorf("audio request must not carry %s: %v", FlagFormatSort, args)
			}
		})
	}
}

func TestBuildArgs_Video(t *testing.T) {
	tests := []struct {
		name     string
		quality  model.Quality
		expected []string
	}{
		{
			name:     "best has no quality flags",
			quality:  model.QualityBest,
			expected: []string{"-P", "/videos", "--", testURL},
		},
		{
			name:     "empty quality defaults to best",
			quality:  "",
			expected: []string{"-P", "/videos", "--", testURL},
		},
		{
			name:     "1080p",
			quality:  model.Quality1080p,
			expected: []string{"-P", "/videos", "-S", "res:1080", "--", testURL},
		},
		{
			name:     "720p",
			quality:  model.Quality720p,
			expected: []string{"-P", "/videos", "-S", "res:720", "--", testURL},
		},
		{
			name:     "480p",
			quality:  model.Quality480p,
			expected: []string{"-P", "/videos", "-S", "res:480", "--", testURL},
		},
		{
			name:     "144p",
			quality:  model.Quality144p,
			expected: []string{"-P", "/videos", "-S", "res:144", "--", testURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := BuildArgs(model.DownloadRequest{
				URL:         testURL,
				Mode:        model.ModeVideo,
				Quality:     tt.quality,
				Destination: "/videos",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(args, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, args)
			}
			if countFlag(args, FlagExtractAudio) != 0 {
				t.Errorf("video request must not extract audio: %v", args)
			}
		})
	}
}

func TestBuildArgs_Video720HasExactlyOneResFlag(t *testing.T) {
	args, err := BuildArgs(model.DownloadRequest{URL: testURL, Mode: model.ModeVideo, Quality: model.Quality720p, Destination: "/v"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if countFlag(args, FlagFormatSort) != 1 {
		t.Fatalf("expected exactly one %s flag, got %v", FlagFormatSort, args)
	}
	idx := slices.Index(args, FlagFormatSort)
	if args[idx+1] != "res:720" {
		t.Errorf("expected res:720 after -S, got %q", args[idx+1])
	}
}

func TestBuildArgs_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		req     model.DownloadRequest
		wantErr error
	}{
		{"empty url", model.DownloadRequest{Mode: model.ModeVideo, Destination: "/v"}, model.ErrEmptyURL},
		{"blank url", model.DownloadRequest{URL: " \t", Mode: model.ModeVideo, Destination: "/v"}, model.ErrEmptyURL},
		{"empty destination", model.DownloadRequest{URL: testURL, Mode: model.ModeAudio}, model.ErrEmptyDestination},
		{"unknown mode", model.DownloadRequest{URL: testURL, Mode: "webm", Destination: "/v"}, model.ErrUnknownMode},
		{"bad quality", model.DownloadRequest{URL: testURL, Mode: model.ModeVideo, Quality: "ultra", Destination: "/v"}, model.ErrInvalidQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildCommand("", tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBuildArgs_URLIsSingleArgument(t *testing.T) {
	hostile := `https://example.com/"; rm -rf ~; echo "`
	args, err := BuildArgs(model.DownloadRequest{URL: hostile, Mode: model.ModeVideo, Destination: `/tmp/my "videos"`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if args[len(args)-1] != hostile {
		t.Errorf("expected URL to be passed verbatim as the last argument, got %q", args[len(args)-1])
	}
	if args[len(args)-2] != EndOfOptions {
		t.Errorf("expected %s before the URL, got %q", EndOfOptions, args[len(args)-2])
	}
	if args[1] != `/tmp/my "videos"` {
		t.Errorf("expected destination verbatim, got %q", args[1])
	}
}

func TestBuildCommand_DefaultTool(t *testing.T) {
	cmd, err := BuildCommand("", model.DownloadRequest{URL: testURL, Mode: model.ModeAudio, Destination: "/m"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Path != DefaultTool {
		t.Errorf("expected default tool %s, got %s", DefaultTool, cmd.Path)
	}
}

func TestCommand_String(t *testing.T) {
	cmd, err := BuildCommand("yt-dlp", model.DownloadRequest{
		URL:         "https://youtu.be/abc?t=1&x=2",
		Mode:        model.ModeVideo,
		Quality:     model.Quality480p,
		Destination: "/home/me/My Videos",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := cmd.String()
	expected := `yt-dlp -P '/home/me/My Videos' -S res:480 -- 'https://youtu.be/abc?t=1&x=2'`
	if s != expected {
		t.Errorf("expected %s, got %s", expected, s)
	}
}

func TestCommand_WithArgs(t *testing.T) {
	cmd := Command{Path: "yt-dlp", Args: []string{"-P", "/d", "--", testURL}}
	extended := cmd.WithArgs("--no-playlist", "--restrict-filenames")

	expected := []string{"-P", "/d", "--no-playlist", "--restrict-filenames", "--", testURL}
	if !slices.Equal(extended.Args, expected) {
		t.Errorf("expected %v, got %v", expected, extended.Args)
	}
	if len(cmd.Args) != 4 {
		t.Errorf("original command must not be modified, got %v", cmd.Args)
	}
}

func TestCommand_WithPrefix(t *testing.T) {
	cmd := Command{Path: "python3", Args: []string{"-P", "/d", "--", testURL}}
	prefixed := cmd.WithPrefix("-m", "yt_dlp")

	if !strings.HasPrefix(prefixed.String(), "python3 -m yt_dlp -P /d") {
		t.Errorf("unexpected prefixed command: %s", prefixed.String())
	}
	if same := cmd.WithPrefix(); !slices.Equal(same.Args, cmd.Args) {
		t.Errorf("empty prefix must keep args, got %v", same.Args)
	}
}
