package download

// Package download drives the external yt-dlp binary. It builds the argument
// vector for a request, runs it as a child process with stdout and stderr
// merged, turns the output stream into status/progress/completed events on a
// channel, and keeps at most one job running at a time.
