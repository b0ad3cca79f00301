// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declared per mode so the model's Update method only has to
// map a key to a command.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents which part of the screen has focus.
type Mode string

const (
	ModeInput Mode = "input" // Typing into the new-task field
	ModeList  Mode = "list"  // Moving through the task list
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Input mode commands
const (
	CmdAddTask    Command = "add_task"
	CmdClearInput Command = "clear_input"
	CmdFocusList  Command = "focus_list"
)

// List mode commands
const (
	CmdCursorDown Command = "cursor_down"
	CmdCursorUp   Command = "cursor_up"
	CmdCursorTop  Command = "cursor_top"
	CmdCursorEnd  Command = "cursor_end"
	CmdToggleTask Command = "toggle_task"
	CmdDeleteTask Command = "delete_task"
	CmdFocusInput Command = "focus_input"
	CmdToggleHelp Command = "toggle_help"
	CmdQuit       Command = "quit"
)

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the key for this binding. For rune keys use tea.KeyRunes
	// and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if msg.Alt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	switch kb.KeyType {
	case tea.KeyRunes:
		return string(kb.Rune)
	case tea.KeySpace:
		return "space"
	default:
		return kb.KeyType.String()
	}
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
// Returns the command and true if found, or empty command and false if not.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name  string
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// GetBindingsForCommand returns all bindings that trigger a specific command.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	var result []KeyBinding
	for _, binding := range km.GetModeBindings(mode) {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// HelpEntry is one line of the help bar: every key for a command and what
// it does.
type HelpEntry struct {
	Keys        []string
	Description string
}

// Help lists a mode's commands in declaration order, merging the keys that
// share a command.
func (km *Keymap) Help(mode Mode) []HelpEntry {
	var entries []HelpEntry
	index := make(map[Command]int)
	for _, binding := range km.GetModeBindings(mode) {
		if i, ok := index[binding.Command]; ok {
			entries[i].Keys = append(entries[i].Keys, binding.String())
			continue
		}
		index[binding.Command] = len(entries)
		entries = append(entries, HelpEntry{
			Keys:        []string{binding.String()},
			Description: binding.Description,
		})
	}
	return entries
}
