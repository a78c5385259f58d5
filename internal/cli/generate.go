package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	run      runFlags
	output   string // output file (single format) or base path (multiple)
	formats  string // comma-separated output formats
	detailed bool   // detailed node labels in DOT/SVG
	quiet    bool   // no spinner or summary
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a level",
		Long: `Generate a level and write it in one or more formats.

Without --output a single text or JSON result goes to stdout. With several
formats, --output is a base path and each format gets its own extension.`,
		Example: `  roomgen generate --seed 7
  roomgen generate --teams 3 -f text,svg -o level
  roomgen generate --catalog rooms.toml -f json -o level.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runGenerate(cmd, &opts)
		},
	}

	opts.run.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): text (default), json, dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show room rectangles in DOT/SVG labels")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress and summary output")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, g *generateOpts) error {
	logger := loggerFromContext(cmd.Context())
	opts, err := g.run.resolve(cmd, logger)
	if err != nil {
		return err
	}
	if formats := parseFormats(g.formats); len(formats) > 0 {
		opts.Formats = formats
	}
	opts.Detailed = g.detailed
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if g.output == "" && len(opts.Formats) > 1 {
		return fmt.Errorf("--output is required for multiple formats")
	}
	if g.output == "" && slices.Contains(opts.Formats, pipeline.FormatSVG) {
		return fmt.Errorf("--output is required for svg")
	}

	var spinner *Spinner
	if !g.quiet {
		spinner = newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Generating level")
		opts.OnStep = spinner.Update
		spinner.Start()
	}
	prog := newProgress(logger)
	res, err := c.newRunner().Execute(cmd.Context(), opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d rooms", res.Stats.Rooms),
		"steps", res.Stats.Steps, "resets", res.Stats.Resets)

	if g.output == "" {
		_, err := cmd.OutOrStdout().Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(g.output, opts.Formats, res.Artifacts)
	if err != nil {
		return err
	}
	if g.quiet {
		return nil
	}

	printSuccess("Level %s", StyleHighlight.Render(res.Level.RunID))
	printStats(res.Stats)
	printKeyValue("seed", fmt.Sprint(opts.Seed))
	printKeyValue("spawn A", res.Level.SpawnA.String())
	printKeyValue("spawn B", res.Level.SpawnB.String())
	for _, p := range paths {
		printFile(p)
	}
	printNextStep("Watch it grow", fmt.Sprintf("roomgen watch --seed %d", opts.Seed))
	return nil
}

// writeArtifacts writes each format to output. A single format is written
// to output as given; several formats share output as a base path.
func writeArtifacts(output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if len(formats) == 1 {
		return []string{output}, writeFile(output, artifacts[formats[0]])
	}

	base := strings.TrimSuffix(output, filepath.Ext(output))
	var paths []string
	for _, f := range formats {
		path := base + pipeline.FormatExtensions[f]
		if err := writeFile(path, artifacts[f]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
