package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver provides path resolution relative to the binary, the working dir and the user config dir
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver(appName string) (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		configDir:     platformConfigDir(homeDir, appName),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the appropriate config directory for the platform
func platformConfigDir(homeDir, appName string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appName)
		}
		return filepath.Join(homeDir, ".config", appName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	case "darwin":
		return filepath.Join(homeDir, ".config", appName)
	default:
		return filepath.Join(homeDir, "."+appName)
	}
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// GetConfigPath returns the full path for a config file, falling back to
// other writable locations when the config dir is read-only
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if pr.ensureWritableDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}

	fallbackDirs := []string{
		filepath.Join(os.TempDir(), filepath.Base(pr.configDir)),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if pr.ensureWritableDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// FindFile resolves a user supplied file path. Absolute paths are used as is;
// relative ones are tried against the working dir, the config dir and the
// executable dir in that order.
func (pr *PathResolver) FindFile(userPath string) (string, error) {
	if userPath == "" {
		return "", os.ErrNotExist
	}
	if filepath.IsAbs(userPath) {
		if FileExists(userPath) {
			return userPath, nil
		}
		return "", os.ErrNotExist
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}
	candidates = append(candidates,
		filepath.Join(pr.configDir, userPath),
		filepath.Join(pr.executableDir, userPath),
	)

	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Resolved %s to %s", userPath, path)
			return path, nil
		}
		log.Debugf("Candidate not found: %s", path)
	}
	return "", os.ErrNotExist
}

// ensureWritableDir creates the directory if needed and tests writability
func (pr *PathResolver) ensureWritableDir(dir string) bool {
	return CheckDirStatus(dir).Writable
}
