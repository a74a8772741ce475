package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog/log"

	"github.com/ytget/deskutils/internal/config"
	"github.com/ytget/deskutils/internal/download"
	"github.com/ytget/deskutils/internal/logging"
	"github.com/ytget/deskutils/internal/platform"
	"github.com/ytget/deskutils/internal/rename"
	"github.com/ytget/deskutils/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.deskutils"
	AppName = "Desk Utils"

	WindowWidth  = 900
	WindowHeight = 640

	// EnvLogLevel overrides the default log level
	EnvLogLevel = "DESKUTILS_LOG_LEVEL"
)

func main() {
	if err := logging.Setup(logging.Options{Level: os.Getenv(EnvLogLevel)}); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(2)
	}
	log.Info().Str("version", version).Msg("Desk Utils starting")

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	if icon, err := ui.LoadLogoResource(ui.AppIcon); err == nil {
		myApp.SetIcon(icon)
	}

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Warn().Err(err).Str("dir", downloadsDir).Msg("failed to ensure downloads dir")
	}

	session := rename.NewSession(platform.OS{})
	downloadSvc := download.NewService(download.NewYTDLPEngine())

	ui.NewRootUI(myWindow, myApp, session, downloadSvc)

	myWindow.ShowAndRun()
}
