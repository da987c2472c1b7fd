package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// VersionTimeout bounds the "--version" probe
const VersionTimeout = 10 * time.Second

// FindTool resolves an executable: an explicit path is checked as is, a bare
// name is looked up in PATH and then next to the running executable.
func FindTool(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("tool name is empty")
	}

	if strings.ContainsRune(name, os.PathSeparator) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("%s not found: %w", name, err)
		}
		return name, nil
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), name)
		if runtime.GOOS == OSWindows && filepath.Ext(candidate) == "" {
			candidate += ".exe"
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s is not installed or not found in PATH", name)
}

// ToolVersion runs "<path> --version" and returns the first line of output
func ToolVersion(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, VersionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %s --version: %w", path, err)
	}

	version, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(version), nil
}
