package platform

// Package platform contains OS integration and external tooling glue:
// locating the yt-dlp binary, filesystem helpers for the destination
// folder, and revealing a folder in the system file manager.
