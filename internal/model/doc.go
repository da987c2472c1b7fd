package model

// Package model defines the transient domain values shared across the app:
// download requests built from user input, jobs wrapping one run of the
// external downloader, and the events a running job emits. Structures are
// plain values so the UI and the CLI can bind them directly.
