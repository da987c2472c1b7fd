package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-converter/internal/config"
	"github.com/ytget/yt-converter/internal/download"
	"github.com/ytget/yt-converter/internal/logging"
	"github.com/ytget/yt-converter/internal/model"
	"github.com/ytget/yt-converter/internal/platform"
)

// Exit codes that do not come from the downloader itself
const (
	ExitUsage     = 2
	ExitCancelled = 130
)

// ExitError carries the process exit code out of a command run
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

type options struct {
	destination string
	mode        string
	quality     string
	tool        string
	extra       []string
	configPath  string
	debug       bool
}

// NewRootCommand builds the ytconv command writing to out
func NewRootCommand(version string, out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "ytconv [flags] URL",
		Short:         "Download a video as MP3 audio or MP4 video with yt-dlp",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], out)
		},
	}

	defaultConfig, err := config.DefaultsPath()
	if err != nil {
		defaultConfig = ""
	}

	cmd.Flags().StringVarP(&opts.destination, "dest", "d", "", "Destination folder (default: config file, then ~/Downloads)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", string(config.DefaultMode), "Output format: mp3 or mp4")
	cmd.Flags().StringVarP(&opts.quality, "quality", "q", string(config.DefaultQuality), "Video resolution cap: Best, 1080p, 720p, 480p, 144p")
	cmd.Flags().StringVar(&opts.tool, "tool", config.DefaultToolPath, "yt-dlp binary name or path")
	cmd.Flags().StringArrayVar(&opts.extra, "extra", []string{}, "Extra yt-dlp option placed before the URL; can be specified multiple times")
	cmd.Flags().StringVar(&opts.configPath, "config", defaultConfig, "Path to YAML defaults file")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

// Execute runs the CLI and returns the process exit code
func Execute(version string) int {
	cmd := NewRootCommand(version, os.Stdout)
	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		printError(os.Stderr, err.Error())
		return ExitUsage
	}
	return 0
}

// plan is everything a run needs after flags and the defaults file are merged
type plan struct {
	request  model.DownloadRequest
	tool     string
	toolArgs []string
	extra    []string
}

// resolve merges the defaults file under the flags the user actually set
func resolve(cmd *cobra.Command, opts *options, url string) (plan, error) {
	defaults, err := config.LoadDefaults(opts.configPath)
	if err != nil {
		return plan{}, err
	}

	flags := cmd.Flags()
	pick := func(flag, flagValue, fileValue string) string {
		if !flags.Changed(flag) && fileValue != "" {
			return fileValue
		}
		return flagValue
	}

	destination := opts.destination
	if !flags.Changed("dest") {
		destination = defaults.Destination
		if destination == "" {
			destination, err = platform.GetHomeDownloadsDir()
			if err != nil {
				return plan{}, err
			}
		}
	}

	mode, err := model.ParseMode(pick("mode", opts.mode, defaults.Mode))
	if err != nil {
		return plan{}, err
	}
	quality, err := model.ParseQuality(pick("quality", opts.quality, defaults.Quality))
	if err != nil {
		return plan{}, err
	}

	return plan{
		request: model.DownloadRequest{
			URL:         url,
			Mode:        mode,
			Quality:     quality,
			Destination: destination,
		}.Normalized(),
		tool:     pick("tool", opts.tool, defaults.Tool),
		toolArgs: defaults.ToolArgs,
		extra:    append(append([]string{}, defaults.ExtraArgs...), opts.extra...),
	}, nil
}

func run(cmd *cobra.Command, opts *options, url string, out io.Writer) error {
	logging.Init(opts.debug)
	if !opts.debug {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	logger := logging.For("cli")

	p, err := resolve(cmd, opts, url)
	if err == nil {
		err = p.request.Validate()
	}
	if err != nil {
		printError(out, err.Error())
		return &ExitError{Code: ExitUsage, Err: err}
	}
	req := p.request

	toolPath, err := platform.FindTool(p.tool)
	if err != nil {
		printError(out, err.Error())
		return &ExitError{Code: 1, Err: err}
	}
	if err := platform.CreateDirectoryIfNotExists(req.Destination); err != nil {
		printError(out, fmt.Sprintf("Cannot create %s: %v", req.Destination, err))
		return &ExitError{Code: 1, Err: err}
	}

	svc := download.NewService(toolPath, download.WithExtraArgs(p.extra...))
	svc.SetTool(toolPath, p.toolArgs...)
	defer svc.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job, events, err := svc.Submit(ctx, req)
	if err != nil {
		printError(out, err.Error())
		return &ExitError{Code: 1, Err: err}
	}
	logger.Debug().Str("op", "cli/submit").Str("job", job.ID).Msg(job.Command)

	printHeader(out, job.GetDisplayTitle())
	printInfo(out, fmt.Sprintf("%s %s", symbolArrow, job.Command))

	r := newRenderer(out, string(req.Mode))
	var done model.Event
	for ev := range events {
		if completed, ok := r.handle(ev); ok {
			done = completed
		}
	}

	return report(out, done, r.lastLine, req.Destination)
}

// report prints the outcome and maps it to an exit code
func report(out io.Writer, done model.Event, lastLine, destination string) error {
	switch {
	case done.Succeeded():
		printSuccess(out, fmt.Sprintf("Saved to %s", destination))
		return nil
	case errors.Is(done.Err, context.Canceled):
		printWarning(out, "Cancelled")
		return &ExitError{Code: ExitCancelled, Err: done.Err}
	default:
		msg := fmt.Sprintf("yt-dlp exited with code %d", done.ExitCode)
		if lastLine != "" {
			msg += ": " + lastLine
		}
		printError(out, msg)
		code := done.ExitCode
		if code <= 0 {
			code = 1
		}
		return &ExitError{Code: code, Err: done.Err}
	}
}
