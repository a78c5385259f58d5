package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/buildinfo"
	"github.com/matzehuels/roomgen/pkg/config"
	"github.com/matzehuels/roomgen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "roomgen"

	// configFileName is looked up in the config directory when --config is
	// not given.
	configFileName = "config.toml"
)

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
		Short:        "Roomgen builds room-based 2D levels",
		Long:         `Roomgen procedurally assembles 2D levels from a catalog of rectangular room templates, joining rooms through facing entrances and picking two distant spawn points.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/roomgen/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads path, or the default config file when path is empty.
// A missing default file is not an error.
func loadConfig(path string) (*config.File, error) {
	if path != "" {
		return config.Load(path)
	}
	dir, err := configDir()
	if err != nil {
		return nil, nil
	}
	path = filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return config.Load(path)
}

// =============================================================================
// Options Helpers
// =============================================================================

// runFlags are the generator flags shared by generate and watch.
type runFlags struct {
	configPath string
	opts       pipeline.Options
}

func (f *runFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "TOML config file (default: ~/.config/roomgen/config.toml if present)")
	flags.StringVar(&f.opts.CatalogPath, "catalog", "", "TOML catalog file (default: builtin templates)")
	flags.Uint64VarP(&f.opts.Seed, "seed", "s", 0, "random seed (default 42)")
	flags.IntVarP(&f.opts.Teams, "teams", "t", 0, "number of teams; also the spawn rooms required (default 2)")
	flags.IntVar(&f.opts.AccelerateUntil, "accelerate-until", 0, "room count below which the level grows (default 4)")
	flags.IntVar(&f.opts.DecelerateAt, "decelerate-at", 0, "reserved growth threshold (default 10)")
	flags.IntVar(&f.opts.MaxAttempts, "max-attempts", 0, "attempts per step before the generator stalls (default 100000)")
	flags.StringVar(&f.opts.SeedTemplate, "seed-template", "", "template for the first room (default: random widest)")
	flags.IntVar(&f.opts.MaxResets, "max-resets", pipeline.DefaultMaxResets, "give up after this many rejected levels (0 = never)")
	flags.DurationVar(&f.opts.ResetDelay, "reset-delay", 0, "pause after each rejected level")
}

// resolve merges the config file under the flags that were set explicitly.
func (f *runFlags) resolve(cmd *cobra.Command, logger *log.Logger) (pipeline.Options, error) {
	opts := f.opts
	file, err := loadConfig(f.configPath)
	if err != nil {
		return opts, err
	}
	if file != nil {
		if !cmd.Flags().Changed("max-resets") {
			opts.MaxResets = 0
		}
		file.Apply(&opts)
		if !cmd.Flags().Changed("max-resets") && opts.MaxResets == 0 {
			opts.MaxResets = pipeline.DefaultMaxResets
		}
	}
	opts.Logger = logger
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
