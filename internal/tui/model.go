// Package tui implements the interactive planner screen: a text field for
// new tasks above the task list, with live reload when the slot changes on
// disk.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/planner/internal/logging"
	"github.com/Iron-Ham/planner/internal/planner"
	"github.com/Iron-Ham/planner/internal/tui/keymap"
)

// Screen text.
const (
	TitleText       = "Daily Task Planner"
	SubtitleText    = "Stay organized, one task at a time."
	PlaceholderText = "Add a new task..."
	FooterText      = "Your tasks are saved locally."
)

// DefaultMaxTextWidth is used when Options.MaxTextWidth is not positive.
const DefaultMaxTextWidth = 60

// inputCharLimit bounds a single task's text as typed.
const inputCharLimit = 500

// Options configures a Model.
type Options struct {
	// MaxTextWidth truncates long task text in the list.
	MaxTextWidth int

	// ShowHelp shows the key help bar on start.
	ShowHelp bool

	// Keymap overrides DefaultKeymap.
	Keymap *keymap.Keymap

	// Changes, when set, triggers a reload for every value received.
	// Typically storage.Watcher.Changes().
	Changes <-chan struct{}

	Logger *logging.Logger
}

// slotChangedMsg is sent when the watched slot was written by someone else.
type slotChangedMsg struct{}

// Model is the Bubbletea model for the planner screen.
type Model struct {
	planner *planner.Planner
	keys    *keymap.Keymap
	input   textinput.Model
	mode    keymap.Mode
	changes <-chan struct{}
	logger  *logging.Logger

	// cursor is the 0-based index of the selected task in list mode.
	cursor int
	// offset is the index of the first visible task row.
	offset int

	width        int
	height       int
	maxTextWidth int
	showHelp     bool
	quitting     bool
}

// New creates a model over an open planner. It starts in input mode.
func New(p *planner.Planner, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = PlaceholderText
	ti.CharLimit = inputCharLimit
	ti.Prompt = "> "
	ti.Focus()

	keys := opts.Keymap
	if keys == nil {
		keys = keymap.DefaultKeymap()
	}
	width := opts.MaxTextWidth
	if width <= 0 {
		width = DefaultMaxTextWidth
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	return Model{
		planner:      p,
		keys:         keys,
		input:        ti,
		mode:         keymap.ModeInput,
		changes:      opts.Changes,
		logger:       logger.WithComponent("tui"),
		maxTextWidth: width,
		showHelp:     opts.ShowHelp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

// waitForChange blocks on the change channel and reports one change. It
// returns nil when there is nothing to watch, and a nil message once the
// channel is closed so the watch stops quietly.
func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return slotChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.contentWidth()-len(m.input.Prompt)-4, 1)
		m.clampCursor()
		return m, nil

	case slotChangedMsg:
		if m.planner.Reload() {
			m.logger.Debug("reloaded tasks after external change")
		}
		m.clampCursor()
		if m.mode == keymap.ModeList && m.planner.Store().Len() == 0 {
			return m, tea.Batch(m.focusInput(), m.waitForChange())
		}
		return m, m.waitForChange()

	case tea.KeyMsg:
		if m.mode == keymap.ModeList {
			return m.handleListKey(msg)
		}
		return m.handleInputKey(msg)
	}

	if m.mode == keymap.ModeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keys.GetBinding(msg, keymap.ModeInput)
	if !ok {
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		return m, inputCmd
	}

	switch cmd {
	case keymap.CmdAddTask:
		// Blank input is ignored and left in place.
		if _, added := m.planner.Store().Add(m.input.Value()); added {
			m.input.Reset()
			m.cursor = m.planner.Store().Len() - 1
			m.scrollToCursor()
		}
	case keymap.CmdClearInput:
		m.input.Reset()
	case keymap.CmdFocusList:
		if m.planner.Store().Len() > 0 {
			m.focusList()
		}
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keys.GetBinding(msg, keymap.ModeList)
	if !ok {
		return m, nil
	}

	s := m.planner.Store()
	switch cmd {
	case keymap.CmdCursorDown:
		if m.cursor < s.Len()-1 {
			m.cursor++
		}
	case keymap.CmdCursorUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case keymap.CmdCursorTop:
		m.cursor = 0
	case keymap.CmdCursorEnd:
		m.cursor = max(s.Len()-1, 0)
	case keymap.CmdToggleTask:
		if t, ok := s.At(m.cursor + 1); ok {
			s.Toggle(t.ID)
		}
	case keymap.CmdDeleteTask:
		if t, ok := s.At(m.cursor + 1); ok {
			s.Delete(t.ID)
		}
		m.clampCursor()
		if s.Len() == 0 {
			return m, m.focusInput()
		}
	case keymap.CmdFocusInput:
		return m, m.focusInput()
	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	}
	m.scrollToCursor()
	return m, nil
}

func (m *Model) focusList() {
	m.mode = keymap.ModeList
	m.input.Blur()
	m.clampCursor()
}

func (m *Model) focusInput() tea.Cmd {
	m.mode = keymap.ModeInput
	return m.input.Focus()
}

// clampCursor keeps the cursor on an existing task after the list shrinks.
func (m *Model) clampCursor() {
	n := m.planner.Store().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

// scrollToCursor moves the visible window so the cursor row is on screen.
func (m *Model) scrollToCursor() {
	rows := m.visibleRows()
	if rows <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if limit := max(m.planner.Store().Len()-rows, 0); m.offset > limit {
		m.offset = limit
	}
}

// Mode reports which part of the screen has focus.
func (m Model) Mode() keymap.Mode {
	return m.mode
}

// Cursor returns the 1-based position of the selected task.
func (m Model) Cursor() int {
	return m.cursor + 1
}

// InputValue returns the text typed so far.
func (m Model) InputValue() string {
	return m.input.Value()
}
