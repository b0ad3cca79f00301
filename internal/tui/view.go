package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/planner/internal/output"
	"github.com/Iron-Ham/planner/internal/planner"
	"github.com/Iron-Ham/planner/internal/task"
	"github.com/Iron-Ham/planner/internal/tui/keymap"
	"github.com/Iron-Ham/planner/internal/tui/styles"
	"github.com/Iron-Ham/planner/internal/util"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render(TitleText))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(SubtitleText))
	b.WriteString("\n")

	box := styles.InputBox
	if m.mode == keymap.ModeInput {
		box = styles.InputBoxFocused
	}
	b.WriteString(box.Render(m.input.View()))
	b.WriteString("\n\n")

	b.WriteString(m.renderTasks())

	// The counter only appears once there is something to count.
	if completed, total := m.planner.Summary(); total > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Counter.Render(output.Summary(completed, total)))
	}

	b.WriteString("\n")
	b.WriteString(styles.Footer.Render(FooterText))

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderHelp())
	}

	return styles.App.Render(b.String())
}

func (m Model) renderTasks() string {
	tasks := m.planner.Store().Tasks()
	if len(tasks) == 0 {
		return styles.EmptyState.Render(output.EmptyMessage)
	}

	start, end := 0, len(tasks)
	if rows := m.visibleRows(); rows > 0 {
		start = min(m.offset, len(tasks))
		end = min(start+rows, len(tasks))
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderTask(i, tasks[i]))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTask(index int, t task.Task) string {
	cursor := "  "
	if m.mode == keymap.ModeList && index == m.cursor {
		cursor = styles.Cursor.Render("> ")
	}

	text := util.TruncateANSI(util.NormalizeText(t.Text), m.maxTextWidth)

	var line string
	if t.Completed {
		line = cursor + styles.CheckboxDone.Render(t.Mark()) + " " + styles.TaskCompleted.Render(text)
	} else {
		line = cursor + styles.Checkbox.Render(t.Mark()) + " " + styles.Task.Render(text)
	}

	if w := m.contentWidth(); w > 0 {
		line = util.TruncateANSI(line, w)
	}
	return line
}

func (m Model) renderHelp() string {
	entries := m.keys.Help(m.mode)
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, styles.HelpKey.Render(strings.Join(e.Keys, "/"))+" "+e.Description)
	}
	return styles.HelpBar.Render(strings.Join(parts, "  "))
}

// contentWidth is the terminal width inside the App padding, or 0 before
// the first WindowSizeMsg.
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	return max(m.width-styles.App.GetHorizontalPadding(), 1)
}

// visibleRows is how many task rows fit on screen, or 0 when the height is
// not known yet and every row is drawn.
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - styles.ReservedLines
	if !m.showHelp {
		rows += styles.HelpBarLines
	}
	return max(rows, 1)
}

// Run starts the interactive planner screen and blocks until the user quits.
func Run(p *planner.Planner, opts Options) error {
	prog := tea.NewProgram(New(p, opts), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
