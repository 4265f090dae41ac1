package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pods-community/pods-cli/pkg/models"
)

const (
	PodsDir      = ".pods"
	LogsDir      = "logs"
	DraftsDir    = "drafts"
	SettingsFile = "settings.yaml"
	UsersFile    = "users.yaml"
)

// InitProjectStructure creates the .pods directory with default settings
// and an empty user directory. Existing files are left untouched.
func InitProjectStructure() error {
	dirs := []string{
		PodsDir,
		filepath.Join(PodsDir, LogsDir),
		filepath.Join(PodsDir, DraftsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(SettingsPath()); os.IsNotExist(err) {
		if err := WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
	}

	if _, err := os.Stat(UsersPath()); os.IsNotExist(err) {
		content, err := yaml.Marshal(&models.UserDirectory{Users: []models.CandidateUser{}})
		if err != nil {
			return fmt.Errorf("failed to marshal user directory: %w", err)
		}
		if err := os.WriteFile(UsersPath(), content, 0644); err != nil {
			return fmt.Errorf("failed to write user directory: %w", err)
		}
	}

	return nil
}

// SettingsPath returns the settings file location
func SettingsPath() string {
	return filepath.Join(PodsDir, SettingsFile)
}

// UsersPath returns the user directory location
func UsersPath() string {
	return filepath.Join(PodsDir, UsersFile)
}

// LogPath resolves a log file name relative to the .pods directory
func LogPath(name string) string {
	if name == "" {
		name = filepath.Join(LogsDir, "pods.log")
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(PodsDir, name)
}

// ReadSettings loads settings.yaml. Fields missing from the file keep their
// default values.
func ReadSettings() (*models.Settings, error) {
	content, err := os.ReadFile(SettingsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	return settings, nil
}

func WriteSettings(settings *models.Settings) error {
	if err := os.MkdirAll(PodsDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", PodsDir, err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(SettingsPath(), content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// AppendPost appends a finished post to path, separating posts with a blank line
func AppendPost(path string, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		content = "\n" + content
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write post to %s: %w", path, err)
	}

	return nil
}

// SaveDraft stores an unsent post under .pods/drafts and returns its path
func SaveDraft(content string, now time.Time) (string, error) {
	dir := filepath.Join(PodsDir, DraftsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create drafts directory: %w", err)
	}

	path := filepath.Join(dir, "draft-"+now.Format("20060102-150405")+".md")
	if err := WriteFile(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile writes content to a file
func WriteFile(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
