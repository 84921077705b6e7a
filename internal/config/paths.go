package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: the fetcher, the
// loader and the web server all resolve files through it.
type Paths struct {
	ExecutableDir string
	DataDir       string
	WebDir        string
	LogsDir       string

	// ZHVIFile is the well-known location of the raw state-level CSV.
	ZHVIFile string
}

// GetPaths resolves all application paths relative to the executable
// directory. HOMEPULSE_PATHS_DATA_DIR and friends override individual
// directories with absolute paths.
func GetPaths() (*Paths, error) {
	execDir, err := getExecutableDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine executable directory: %w", err)
	}

	p := &Paths{
		ExecutableDir: execDir,
		DataDir:       resolveDir(execDir, os.Getenv("HOMEPULSE_PATHS_DATA_DIR"), "data"),
		WebDir:        resolveDir(execDir, os.Getenv("HOMEPULSE_PATHS_WEB_DIR"), "web"),
		LogsDir:       resolveDir(execDir, os.Getenv("HOMEPULSE_PATHS_LOGS_DIR"), "logs"),
	}
	p.ZHVIFile = filepath.Join(p.DataDir, ZHVIStateFile)

	return p, nil
}

// getExecutableDir returns the directory of the running binary. Under
// `go test` the binary lives in a temp build dir, so the working directory
// is used instead.
func getExecutableDir() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", err
	}

	if strings.Contains(exePath, os.TempDir()) || strings.Contains(exePath, "go-build") {
		return os.Getwd()
	}

	return filepath.Dir(exePath), nil
}

// resolveDir prefers an explicit override, falling back to a directory
// relative to the executable.
func resolveDir(execDir, override, name string) string {
	if override != "" {
		if filepath.IsAbs(override) {
			return override
		}
		return filepath.Join(execDir, override)
	}
	return filepath.Join(execDir, name)
}

// EnsureDirectories creates all required directories if they do not exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.WebDir, p.LogsDir}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetDataPath returns the absolute path of a file under the data directory
func (p *Paths) GetDataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetWebFilePath returns the absolute path of a file under the web directory
func (p *Paths) GetWebFilePath(filename string) string {
	return filepath.Join(p.WebDir, filename)
}

// GetLogPath returns the absolute path of a file under the logs directory
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks whether a path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// LogPathResolution logs all resolved paths at startup for debugging
func (p *Paths) LogPathResolution() {
	slog.Info("Resolved application paths",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("data_dir", p.DataDir),
		slog.String("web_dir", p.WebDir),
		slog.String("logs_dir", p.LogsDir),
		slog.String("zhvi_file", p.ZHVIFile))
}
