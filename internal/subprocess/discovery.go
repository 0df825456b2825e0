package subprocess

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/wagiedev/mcp-taskmanager-go/internal/errors"
)

// commonDirs are searched after $PATH. Node installs via version managers
// and Homebrew frequently leave npx outside a non-login shell's PATH.
func commonDirs() []string {
	dirs := []string{
		"/usr/local/bin",
		"/usr/bin",
		"/opt/homebrew/bin",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(homeDir, ".local/bin"),
			filepath.Join(homeDir, ".npm-global/bin"),
		)
	}

	return dirs
}

// FindCommand locates the server executable.
//
// A command containing a path separator is used as given and only checked
// for existence. A bare name is looked up in $PATH and then in a few common
// installation directories. CommandNotFoundError lists every place searched.
func FindCommand(log *slog.Logger, command string) (string, error) {
	if strings.ContainsRune(command, filepath.Separator) || strings.ContainsRune(command, '/') {
		log.Debug("Using explicit server command path", "command", command)

		if _, err := os.Stat(command); err == nil {
			return command, nil
		}

		return "", &errors.CommandNotFoundError{Command: command, SearchedPaths: []string{command}}
	}

	searchedPaths := make([]string, 0, 6)

	if path, err := exec.LookPath(command); err == nil {
		log.Debug("Found server command in PATH", "path", path)

		return path, nil
	}

	searchedPaths = append(searchedPaths, "$PATH")

	for _, dir := range commonDirs() {
		path := filepath.Join(dir, command)
		searchedPaths = append(searchedPaths, path)

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			log.Debug("Found server command at common path", "path", path)

			return path, nil
		}
	}

	log.Warn("Server command not found in any searched paths",
		"command", command,
		"searched_paths", searchedPaths,
	)

	return "", &errors.CommandNotFoundError{Command: command, SearchedPaths: searchedPaths}
}

// BuildEnvironment returns the server process environment: the current
// environment followed by the configured overrides.
func BuildEnvironment(env map[string]string) []string {
	out := os.Environ()

	for key, value := range env {
		out = append(out, key+"="+value)
	}

	return out
}
