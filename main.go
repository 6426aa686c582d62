package main

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/charmbracelet/log"
	"github.com/sanity-io/litter"

	"github.com/Neuroquila-n8fall/SteamShutdown/internal/power_util"
	"github.com/Neuroquila-n8fall/SteamShutdown/internal/steam_util"
	"github.com/Neuroquila-n8fall/SteamShutdown/internal/steam_watch"
	"github.com/Neuroquila-n8fall/SteamShutdown/internal/ui"
)

type monitor struct {
	store        *steam_util.Store
	roots        []string
	steamPath    string
	autoShutdown func() bool
	status       func(string)

	wasDownloading bool
}

// rebuild runs one aggregation pass and publishes the result. Calls arrive
// serialized: once from startup, then only from the watcher callback.
func (m *monitor) rebuild() {
	apps := steam_util.RebuildAppCollection(m.roots)
	m.store.Replace(apps)

	downloading := 0
	for _, record := range apps {
		if record.Downloading() {
			downloading++
		}
	}
	m.status(renderStatus(apps, downloading))

	if m.wasDownloading && downloading == 0 && m.autoShutdown() {
		log.Info("downloads finished, shutting down")
		if err := power_util.Shutdown(); err != nil {
			log.Error("shutdown failed", "err", err)
		}
	}
	m.wasDownloading = downloading > 0
}

func (m *monitor) onChange(kind steam_watch.ChangeKind, paths []string) {
	log.Debug("library change", "kind", kind, "paths", paths)
	if kind == steam_watch.LibrariesChanged {
		roots, err := steam_util.DiscoverLibraryRoots(m.steamPath)
		if err != nil {
			// Keep the previous roots; a half-written libraryfolders.vdf
			// usually becomes readable again on the next event.
			log.Error("library discovery failed, keeping previous roots", "err", err)
		} else {
			m.roots = roots
		}
	}
	m.rebuild()
}

func renderStatus(apps steam_util.AppCollection, downloading int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d apps installed, %d downloading\n\n", len(apps), downloading)
	for _, record := range apps {
		marker := " "
		if record.Downloading() {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, record)
	}
	return b.String()
}

func run(win fyne.Window, appList *widget.Label, autoShutdown func() bool) {
	steamPath, err := steam_util.GetSteamPath()
	if err != nil {
		log.Error("steam not installed", "err", err)
		dialog.ShowError(fmt.Errorf("Steam doesn't seem to be installed:\n%v", err), win)
		return
	}
	log.Info("found steam", "path", steamPath)

	roots, err := steam_util.DiscoverLibraryRoots(steamPath)
	if err != nil {
		log.Error("library discovery failed", "err", err)
		dialog.ShowError(fmt.Errorf("Couldn't find any Steam libraries:\n%v", err), win)
		return
	}
	litter.Dump(roots)

	m := &monitor{
		store:        steam_util.NewStore(),
		roots:        roots,
		steamPath:    steamPath,
		autoShutdown: autoShutdown,
		status:       appList.SetText,
	}
	m.rebuild()

	watcher, err := steam_watch.New(steam_watch.Config{
		Roots:              roots,
		LibraryFoldersFile: steam_util.LibraryFoldersPath(steamPath),
		OnChange:           m.onChange,
	})
	if err != nil {
		log.Error("couldn't start watcher", "err", err)
		dialog.ShowError(fmt.Errorf("Couldn't watch the Steam libraries:\n%v", err), win)
		return
	}
	if err := watcher.Run(context.Background()); err != nil {
		log.Error("watcher stopped", "err", err)
	}
}

func main() {
	mainApp := app.New()
	mainWindow := mainApp.NewWindow("SteamShutdown")

	appList := widget.NewLabel("Looking for Steam...")
	appList.Wrapping = fyne.TextWrapWord

	logBox := ui.NewLogView()

	shutdownCheck := widget.NewCheck("Shut down when downloads finish", nil)
	autoShutdown := func() bool { return shutdownCheck.Checked }

	ui.AttachToConsole()
	ui.InterceptTextOutputToGui(logBox)

	mainWindow.SetContent(container.NewBorder(
		// Top
		nil,

		// Bottom
		shutdownCheck,

		// Left
		nil,

		// Right
		nil,

		// Center
		container.NewVSplit(
			container.NewVScroll(appList),
			logBox,
		),
	))
	mainWindow.Resize(fyne.NewSize(700, 500))

	go run(mainWindow, appList, autoShutdown)

	mainWindow.ShowAndRun()
}
