package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the default planner key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Modes: map[Mode]*ModeBindings{
			ModeInput: defaultInputBindings(),
			ModeList:  defaultListBindings(),
		},
	}
}

// Input mode only binds non-printing keys; everything else is typed into
// the text field.
func defaultInputBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeInput,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEnter, Command: CmdAddTask, Description: "add task"},
			{KeyType: tea.KeyEsc, Command: CmdClearInput, Description: "clear"},
			{KeyType: tea.KeyTab, Command: CmdFocusList, Description: "tasks"},
			{KeyType: tea.KeyDown, Command: CmdFocusList, Description: "tasks"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "quit"},
		},
	}
}

func defaultListBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeList,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdCursorDown, Description: "down"},
			{KeyType: tea.KeyDown, Command: CmdCursorDown, Description: "down"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdCursorUp, Description: "up"},
			{KeyType: tea.KeyUp, Command: CmdCursorUp, Description: "up"},
			{KeyType: tea.KeyRunes, Rune: 'g', Command: CmdCursorTop, Description: "first"},
			{KeyType: tea.KeyHome, Command: CmdCursorTop, Description: "first"},
			{KeyType: tea.KeyRunes, Rune: 'G', Command: CmdCursorEnd, Description: "last"},
			{KeyType: tea.KeyEnd, Command: CmdCursorEnd, Description: "last"},

			{KeyType: tea.KeySpace, Command: CmdToggleTask, Description: "toggle"},
			{KeyType: tea.KeyRunes, Rune: 'x', Command: CmdToggleTask, Description: "toggle"},
			{KeyType: tea.KeyEnter, Command: CmdToggleTask, Description: "toggle"},
			{KeyType: tea.KeyRunes, Rune: 'd', Command: CmdDeleteTask, Description: "delete"},
			{KeyType: tea.KeyDelete, Command: CmdDeleteTask, Description: "delete"},

			{KeyType: tea.KeyRunes, Rune: 'a', Command: CmdFocusInput, Description: "new task"},
			{KeyType: tea.KeyRunes, Rune: 'i', Command: CmdFocusInput, Description: "new task"},
			{KeyType: tea.KeyTab, Command: CmdFocusInput, Description: "new task"},
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "help"},

			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit"},
			{KeyType: tea.KeyEsc, Command: CmdQuit, Description: "quit"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "quit"},
		},
	}
}
