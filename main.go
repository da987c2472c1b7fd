package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-converter/internal/config"
	"github.com/ytget/yt-converter/internal/download"
	"github.com/ytget/yt-converter/internal/logging"
	"github.com/ytget/yt-converter/internal/platform"
	"github.com/ytget/yt-converter/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-converter"
	AppName = "YouTube MP3/MP4 Converter"

	WindowWidth  = 420
	WindowHeight = 420

	// DebugEnv turns on debug logging when set to any non-empty value
	DebugEnv = "YTCONV_DEBUG"
)

func main() {
	logging.Init(os.Getenv(DebugEnv) != "")
	logger := logging.For("main")
	logger.Info().Msgf("%s v%s starting", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewDarkTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		logger.Warn().Err(err).Msg("Failed to ensure downloads dir")
	}

	downloadSvc := download.NewService(settings.GetToolPath())
	rootUI := ui.NewRootUI(myWindow, myApp, downloadSvc)

	// Stop a running child before the window goes away
	myWindow.SetOnClosed(downloadSvc.Shutdown)

	myWindow.Show()
	rootUI.CheckTool()
	myApp.Run()
}
