package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mermend/mermend/pkg/diagram"
	"github.com/mermend/mermend/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Step through the sanitizer stages interactively",
		Long: `Step through the sanitizer stages interactively.

Each stage is applied to the input and its output text is shown side by
side with the stage list, making it easy to see what normalize, repair,
validate, synthesize, and strip each contribute.`,
		Example: `  # Inspect a diagram file
  mermend inspect diagram.mmd

  # Inspect text from stdin
  cat diagram.mmd | mermend inspect -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := diagram.ReadSource(args[0])
			if err != nil {
				return err
			}

			model := newStageListModel(raw, pipeline.Stages(raw))
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// =============================================================================
// StageListModel - Interactive sanitizer stage browser
// =============================================================================

// StageListModel is the bubbletea model for browsing sanitizer stages.
type StageListModel struct {
	Raw    string
	Stages []pipeline.Stage
	Cursor int
}

// newStageListModel creates a stage browser over the given stages.
func newStageListModel(raw string, stages []pipeline.Stage) StageListModel {
	return StageListModel{Raw: raw, Stages: stages}
}

func (m StageListModel) Init() tea.Cmd {
	return nil
}

func (m StageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Stages)-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m StageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sanitizer Stages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	for i, stage := range m.Stages {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		delta := StyleSuccess.Render("=")
		if stage.Output != m.Raw {
			delta = StyleWarning.Render("~")
		}

		line := fmt.Sprintf("%s%s %s", cursor, delta, stage.Name)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")

	selected := m.Stages[m.Cursor]
	b.WriteString(StyleHighlight.Render(selected.Name + " output"))
	b.WriteString("\n")
	for _, line := range strings.Split(selected.Output, "\n") {
		b.WriteString("  " + StyleValue.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
