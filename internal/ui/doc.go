// Package ui is the Fyne front-end: a single form for URL, format, quality
// and destination, a progress bar and a status line. It submits requests to a
// download.Downloader and renders the events of the running job. All UI
// strings are localized via Localization.
package ui
