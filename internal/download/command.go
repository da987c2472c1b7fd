package download

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/alessio/shellescape"

	"github.com/ytget/yt-converter/internal/model"
)

// DefaultTool is the downloader looked up when no path is configured
const DefaultTool = "yt-dlp"

// yt-dlp flags
const (
	FlagDestination      = "-P"
	FlagExtractAudio     = "-x"
	FlagAudioFormat      = "--audio-format"
	AudioFormatMP3       = "mp3"
	FlagFormatSort       = "-S"
	ResolutionSortPrefix = "res:"
	EndOfOptions         = "--"
)

// Command is a ready-to-run invocation of the downloader
type Command struct {
	Path string
	Args []string
}

// String renders the invocation as a single shell-quoted line for display
func (c Command) String() string {
	return shellescape.QuoteCommand(append([]string{c.Path}, c.Args...))
}

// WithPrefix returns a copy with args placed before every built argument,
// e.g. "-m yt_dlp" when the tool is a Python interpreter.
func (c Command) WithPrefix(args ...string) Command {
	if len(args) == 0 {
		return c
	}
	out := Command{Path: c.Path, Args: make([]string, 0, len(args)+len(c.Args))}
	out.Args = append(out.Args, args...)
	out.Args = append(out.Args, c.Args...)
	return out
}

// WithArgs returns a copy with extra tool options inserted before the
// end-of-options marker so they can never be mistaken for the URL.
func (c Command) WithArgs(extra ...string) Command {
	if len(extra) == 0 {
		return c
	}
	idx := slices.Index(c.Args, EndOfOptions)
	if idx < 0 {
		idx = len(c.Args)
	}
	out := Command{Path: c.Path, Args: make([]string, 0, len(c.Args)+len(extra))}
	out.Args = append(out.Args, c.Args[:idx]...)
	out.Args = append(out.Args, extra...)
	out.Args = append(out.Args, c.Args[idx:]...)
	return out
}

// BuildArgs maps a request to yt-dlp arguments:
//
//	-P <destination> [-x --audio-format mp3 | -S res:<N>] -- <url>
func BuildArgs(req model.DownloadRequest) ([]string, error) {
	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	args := []string{FlagDestination, req.Destination}

	switch req.Mode {
	case model.ModeAudio:
		args = append(args, FlagExtractAudio, FlagAudioFormat, AudioFormatMP3)
	case model.ModeVideo:
		if !req.Quality.IsBest() {
			res, err := req.Quality.Resolution()
			if err != nil {
				return nil, err
			}
			args = append(args, FlagFormatSort, ResolutionSortPrefix+strconv.Itoa(res))
		}
	}

	return append(args, EndOfOptions, req.URL), nil
}

// BuildCommand builds the full invocation for tool; an empty tool means DefaultTool
func BuildCommand(tool string, req model.DownloadRequest) (Command, error) {
	if tool == "" {
		tool = DefaultTool
	}
	args, err := BuildArgs(req)
	if err != nil {
		return Command{}, fmt.Errorf("build command: %w", err)
	}
	return Command{Path: tool, Args: args}, nil
}
