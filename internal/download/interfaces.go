package download

import (
	"context"

	"github.com/ytget/yt-converter/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(model.Job))
	Submit(ctx context.Context, req model.DownloadRequest) (model.Job, <-chan model.Event, error)
	Cancel(id string) error
	Active() (model.Job, bool)
	Get(id string) (model.Job, bool)
	Jobs() []model.Job
	Shutdown()

	// SetTool configures the downloader binary and any leading arguments
	SetTool(path string, prefixArgs ...string)
}
