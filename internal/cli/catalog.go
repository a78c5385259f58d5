package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/catalog"
)

// catalogCommand creates the catalog command with its subcommands.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect room template catalogs",
	}
	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogValidateCommand())
	cmd.AddCommand(c.catalogExportCommand())
	return cmd
}

func (c *CLI) catalogListCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := catalog.Load(path)
			if err != nil {
				return err
			}
			source := "builtin"
			if path != "" {
				source = path
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render("Catalog")+" "+StyleDim.Render(source))
			fmt.Fprintln(cmd.OutOrStdout(), templateTable(lib.Templates()))
			fmt.Fprintln(cmd.OutOrStdout(), StyleDim.Render(fmt.Sprintf(
				"  %d templates · max %d entrances · max size %d", lib.Len(), lib.EntranceMax(), lib.SizeMax())))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "catalog", "", "TOML catalog file (default: builtin templates)")
	return cmd
}

func (c *CLI) catalogValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a TOML catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			printSuccess("%s: %d templates", args[0], lib.Len())
			if lib.EntranceMax() < 2 {
				printWarning("no template has 2 or more entrances; levels cannot grow")
			}
			if !hasSpawn(lib.Templates()) {
				printWarning("no spawn template; every level will be rejected")
			}
			for e := 1; e <= lib.EntranceMax(); e++ {
				if n := len(lib.Get(e)); n > 0 {
					printDetail("%d with %d entrance(s)", n, e)
				}
			}
			return nil
		},
	}
}

func (c *CLI) catalogExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the builtin catalog as TOML",
		Long:  `Print the builtin catalog as TOML, as a starting point for a custom catalog file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return catalog.Encode(cmd.OutOrStdout(), catalog.Builtin())
		},
	}
}

func hasSpawn(ts []catalog.Template) bool {
	for _, t := range ts {
		if t.Spawn {
			return true
		}
	}
	return false
}

// templateTable renders templates with one row per template.
func templateTable(ts []catalog.Template) string {
	rows := make([][]string, len(ts))
	for i, t := range ts {
		spawn := ""
		if t.Spawn {
			spawn = "✓"
		}
		rows[i] = []string{t.Name, t.Size().String(), fmt.Sprint(t.EntranceCount()), entranceList(t), spawn}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Template", "Size", "Doors", "Entrances", "Spawn").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			switch {
			case col == 0 && ts[row].Spawn:
				return base.Foreground(colorYellow)
			case col == 0:
				return base.Foreground(colorWhite)
			case col == 4:
				return base.Foreground(colorYellow)
			}
			return base.Foreground(colorGray)
		}).
		String()
}

// entranceList formats entrances as side letter plus offset, e.g. "W1 E1".
func entranceList(t catalog.Template) string {
	parts := make([]string, len(t.Entrances))
	for i, e := range t.Entrances {
		parts[i] = fmt.Sprintf("%s%d", strings.ToUpper(e.Side.String()[:1]), e.Offset)
	}
	return strings.Join(parts, " ")
}
