package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/ytget/yt-converter/internal/download"
	"github.com/ytget/yt-converter/internal/model"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))            // dark green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))            // cyan
	streamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))           // grey
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")) // purple
)

const (
	symbolPass    = "✓"
	symbolFail    = "✗"
	symbolWarning = "!"
	symbolArrow   = "→"
)

func printSuccess(w io.Writer, text string) { fmt.Fprintln(w, successStyle.Render(symbolPass+" "+text)) }
func printError(w io.Writer, text string)   { fmt.Fprintln(w, errorStyle.Render(symbolFail+" "+text)) }
func printWarning(w io.Writer, text string) { fmt.Fprintln(w, warningStyle.Render(symbolWarning+" "+text)) }
func printInfo(w io.Writer, text string)    { fmt.Fprintln(w, infoStyle.Render(text)) }
func printHeader(w io.Writer, text string)  { fmt.Fprintln(w, headerStyle.Render(text)) }
func printStream(w io.Writer, text string)  { fmt.Fprintln(w, streamStyle.Render(text)) }

// renderer draws one job's events as tool output above a progress bar
type renderer struct {
	out      io.Writer
	bar      *progressbar.ProgressBar
	lastLine string
}

func newRenderer(out io.Writer, description string) *renderer {
	return &renderer{
		out: out,
		bar: progressbar.NewOptions(100,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		),
	}
}

// handle renders ev and returns the Completed event once it arrives
func (r *renderer) handle(ev model.Event) (model.Event, bool) {
	switch ev.Kind {
	case model.EventStatus:
		r.lastLine = ev.Line
		// progress lines are shown by the bar itself
		if _, ok := download.ParseProgress(ev.Line); ok {
			return ev, false
		}
		_ = r.bar.Clear()
		printStream(r.out, ev.Line)
	case model.EventProgress:
		_ = r.bar.Set(ev.Percent)
	case model.EventCompleted:
		if ev.Succeeded() {
			_ = r.bar.Finish()
			fmt.Fprintln(r.out)
		} else {
			_ = r.bar.Clear()
		}
		return ev, true
	}
	return ev, false
}
