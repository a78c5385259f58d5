package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/level"
	"github.com/matzehuels/roomgen/pkg/pipeline"
	"github.com/matzehuels/roomgen/pkg/render"
)

const defaultWatchInterval = 150 * time.Millisecond

// watchCommand creates the watch command, which steps the generator in a
// terminal UI.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		run      runFlags
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Step the generator interactively",
		Long: `Step the generator one room at a time and draw the level as it grows.

Keys: space pause/resume, n step while paused, r restart with the next seed,
q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := run.resolve(cmd, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			// The TUI owns the terminal; generator logs would tear the view.
			opts.Logger = nil
			m, err := newWatchModel(opts, interval)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if wm, ok := final.(watchModel); ok && wm.err != nil {
				return wm.err
			}
			return nil
		},
	}

	run.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", defaultWatchInterval, "time between steps")
	return cmd
}

// =============================================================================
// watchModel - bubbletea model around a level generator
// =============================================================================

type stepMsg struct{}

type watchModel struct {
	opts     pipeline.Options
	gen      *level.Generator
	interval time.Duration
	paused   bool
	err      error
}

func newWatchModel(opts pipeline.Options, interval time.Duration) (watchModel, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return watchModel{}, err
	}
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	m := watchModel{opts: opts, interval: interval}
	return m, m.restart()
}

// restart builds a fresh generator for the current seed.
func (m *watchModel) restart() error {
	g, err := m.opts.NewGenerator()
	if err != nil {
		return err
	}
	m.gen = g
	m.err = nil
	return nil
}

func (m watchModel) finished() bool {
	return m.err != nil || m.gen.Status() != level.InProgress
}

func (m watchModel) next(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return stepMsg{} })
}

func (m watchModel) Init() tea.Cmd {
	return m.next(m.interval)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused {
				return m, m.next(m.interval)
			}
		case "n", "right":
			if m.paused {
				m.step()
			}
		case "r":
			m.opts.Seed++
			m.paused = false
			if err := m.restart(); err != nil {
				m.err = err
				return m, nil
			}
			return m, m.next(m.interval)
		}
	case stepMsg:
		if m.paused || m.finished() {
			return m, nil
		}
		m.step()
		if m.finished() {
			return m, nil
		}
		if m.gen.JustReset() && m.opts.ResetDelay > 0 {
			return m, m.next(m.opts.ResetDelay)
		}
		return m, m.next(m.interval)
	}
	return m, nil
}

// step advances the generator once and applies the reset cap.
func (m *watchModel) step() {
	if m.finished() {
		return
	}
	if _, err := m.gen.Step(); err != nil {
		m.err = err
		return
	}
	if m.opts.MaxResets > 0 && m.gen.Resets() > m.opts.MaxResets {
		m.err = errors.New(errors.ErrCodeResetLimit, "no acceptable level after %d resets", m.opts.MaxResets)
	}
}

func (m watchModel) View() string {
	var b strings.Builder

	state := m.gen.Phase().String()
	switch {
	case m.err != nil:
		state = "Failed"
	case m.gen.Status() == level.Done:
		state = "Done"
	case m.paused:
		state += " (paused)"
	}
	b.WriteString(StyleTitle.Render("roomgen watch"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  seed %d · ", m.opts.Seed)))
	b.WriteString(StyleHighlight.Render(state))
	b.WriteString("\n\n")

	textOpts := []render.TextOption{render.WithOpenDoorways()}
	if res, ok := m.gen.Result(); ok {
		textOpts = []render.TextOption{render.WithAnchors(res.SpawnA, res.SpawnB)}
	}
	b.WriteString(colorizeMap(render.Text(m.gen.Rooms(), textOpts...)))
	b.WriteString("\n")

	b.WriteString(formatStats(pipeline.Stats{
		Rooms:      len(m.gen.Rooms()),
		SpawnRooms: len(m.gen.SpawnRooms()),
		Steps:      m.gen.Steps(),
		Resets:     m.gen.Resets(),
	}))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" · %d open", m.gen.AvailableEntrances())))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + errors.UserMessage(m.err) + "\n")
	}
	if res, ok := m.gen.Result(); ok {
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " +
			fmt.Sprintf("spawn A %s · spawn B %s", res.SpawnA, res.SpawnB) + "\n")
	}
	b.WriteString(StyleDim.Render("space pause  n step  r next seed  q quit"))
	return b.String()
}
