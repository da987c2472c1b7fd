package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Mode selects what the downloader produces
type Mode string

const (
	// ModeAudio extracts the audio track and converts it to mp3
	ModeAudio Mode = "mp3"

	// ModeVideo keeps the video stream
	ModeVideo Mode = "mp4"
)

// Quality caps the video resolution; only meaningful for ModeVideo
type Quality string

const (
	QualityBest  Quality = "Best"
	Quality1080p Quality = "1080p"
	Quality720p  Quality = "720p"
	Quality480p  Quality = "480p"
	Quality144p  Quality = "144p"
)

// ResolutionSuffix is the unit stripped from a quality label to get its height
const ResolutionSuffix = "p"

// Validation errors
var (
	ErrEmptyURL         = errors.New("url is empty")
	ErrEmptyDestination = errors.New("destination is empty")
	ErrUnknownMode      = errors.New("unknown mode")
	ErrInvalidQuality   = errors.New("invalid quality")
)

// Modes lists the supported output modes in display order
func Modes() []Mode {
	return []Mode{ModeAudio, ModeVideo}
}

// Qualities lists the selectable video qualities in display order
func Qualities() []Quality {
	return []Quality{QualityBest, Quality1080p, Quality720p, Quality480p, Quality144p}
}

// ParseMode maps a user supplied label (mp3/mp4, audio/video) to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mp3", "audio":
		return ModeAudio, nil
	case "mp4", "video":
		return ModeVideo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ParseQuality maps a user supplied label to a Quality. "best" is accepted in
// any case; numeric labels may omit the trailing "p".
func ParseQuality(s string) (Quality, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(QualityBest)) || s == "" {
		return QualityBest, nil
	}
	q := Quality(strings.ToLower(s))
	if !strings.HasSuffix(string(q), ResolutionSuffix) {
		q += ResolutionSuffix
	}
	if _, err := q.Resolution(); err != nil {
		return "", err
	}
	return q, nil
}

// String returns the display label
func (q Quality) String() string {
	return string(q)
}

// IsBest reports whether no resolution cap applies
func (q Quality) IsBest() bool {
	return q == QualityBest
}

// Resolution returns the numeric height for an explicit quality by stripping
// the trailing unit suffix, or 0 for Best.
func (q Quality) Resolution() (int, error) {
	if q.IsBest() {
		return 0, nil
	}
	raw := strings.TrimSuffix(strings.TrimSpace(string(q)), ResolutionSuffix)
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, string(q))
	}
	return n, nil
}

// DownloadRequest is the user's choice for a single download
type DownloadRequest struct {
	URL         string
	Mode        Mode
	Quality     Quality
	Destination string
}

// Validate checks the request before any command is built
func (r DownloadRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return ErrEmptyURL
	}
	if strings.TrimSpace(r.Destination) == "" {
		return ErrEmptyDestination
	}
	if r.Mode != ModeAudio && r.Mode != ModeVideo {
		return fmt.Errorf("%w: %q", ErrUnknownMode, string(r.Mode))
	}
	return nil
}

// Normalized returns a copy with surrounding whitespace removed from the
// free-text fields and an empty quality defaulted to Best.
func (r DownloadRequest) Normalized() DownloadRequest {
	r.URL = strings.TrimSpace(r.URL)
	r.Destination = strings.TrimSpace(r.Destination)
	if r.Quality == "" {
		r.Quality = QualityBest
	}
	return r
}
