package cli

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pods-community/pods-cli/internal/logging"
	"github.com/pods-community/pods-cli/pkg/files"
	"github.com/pods-community/pods-cli/pkg/models"
	"github.com/pods-community/pods-cli/pkg/users"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	validated   bool

	logger   *zap.Logger
	registry *users.Registry
}

// NewCommandContext creates a new command context
func NewCommandContext() *CommandContext {
	return &CommandContext{
		ProjectPath: files.PodsDir,
	}
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return fmt.Errorf("no .pods directory found. Run 'pods init' first")
	}

	c.validated = true
	return nil
}

// HasProject reports whether the working directory holds a .pods directory
func (c *CommandContext) HasProject() bool {
	return c.ValidateProject() == nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		// Use default settings if can't read
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// Logger builds the command logger once from the project settings and the
// --verbose flag. A logger that cannot be built degrades to a no-op one.
func (c *CommandContext) Logger() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}

	logger, err := logging.New(c.LoadSettingsWithDefault().Logging, verbose)
	if err != nil {
		PrintWarning("logging disabled: %v", err)
		logger = zap.NewNop()
	}

	c.logger = logger
	return logger
}

// Sync flushes the logger if one was built
func (c *CommandContext) Sync() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// Registry opens the project's user directory
func (c *CommandContext) Registry() (*users.Registry, error) {
	if c.registry != nil {
		return c.registry, nil
	}

	registry, err := users.NewRegistryAt(files.UsersPath())
	if err != nil {
		return nil, err
	}

	c.registry = registry
	return registry, nil
}

// Lookup returns the user lookup the editor searches through: the registry
// behind a cache sized from settings
func (c *CommandContext) Lookup() (*users.CachedLookup, error) {
	registry, err := c.Registry()
	if err != nil {
		return nil, err
	}
	return users.NewCachedLookup(registry, c.LoadSettingsWithDefault().Mentions.CacheSize), nil
}
