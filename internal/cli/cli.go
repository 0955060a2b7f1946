package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/goodnews/pkg/buildinfo"
	"github.com/matzehuels/goodnews/pkg/config"
	"github.com/matzehuels/goodnews/pkg/fonts"
	"github.com/matzehuels/goodnews/pkg/pipeline"
	"github.com/matzehuels/goodnews/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "goodnews"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the default config location (--config).
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Goodnews renders captions onto good-news and bad-news templates",
		Long:         `Goodnews lays out multi-line text over a "good news" or "bad news" template image and exports the result as a PNG file or to the clipboard.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.Logger.Debug("starting", "version", buildinfo.UserAgent())
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/goodnews/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.composeCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig reads the config file selected by --config or the default path.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg config.Config, opts ...render.Option) *pipeline.Runner {
	reg := fonts.NewRegistry(fonts.WithOverrides(cfg.FontOverrides()))
	return pipeline.NewRunner(reg, c.Logger, opts...)
}
