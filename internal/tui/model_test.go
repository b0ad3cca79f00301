package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/planner/internal/output"
	"github.com/Iron-Ham/planner/internal/planner"
	"github.com/Iron-Ham/planner/internal/storage"
	"github.com/Iron-Ham/planner/internal/task"
	"github.com/Iron-Ham/planner/internal/tui/keymap"
	"github.com/Iron-Ham/planner/internal/tui/styles"
)

func newTestPlanner(t *testing.T, texts ...string) (*planner.Planner, *storage.Adapter) {
	t.Helper()
	adapter := storage.NewAdapter(storage.NewFileBackend(afero.NewMemMapFs(), "/data"), nil)
	p := planner.Open(adapter, storage.DefaultKey, nil)
	for _, text := range texts {
		if _, ok := p.Store().Add(text); !ok {
			t.Fatalf("Add(%q) failed", text)
		}
	}
	return p, adapter
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestNew_StartsInInputMode(t *testing.T) {
	p, _ := newTestPlanner(t)
	m := New(p, Options{})

	if m.Mode() != keymap.ModeInput {
		t.Errorf("Mode() = %q, want input", m.Mode())
	}
	if m.maxTextWidth != DefaultMaxTextWidth {
		t.Errorf("maxTextWidth = %d, want %d", m.maxTextWidth, DefaultMaxTextWidth)
	}
	if m.Init() == nil {
		t.Error("Init() should start the cursor blink")
	}
}

func TestAddTaskFromInput(t *testing.T) {
	p, adapter := newTestPlanner(t)
	m := New(p, Options{})

	m = send(t, m, runes("  Buy milk "), key(tea.KeyEnter))

	tasks := p.Store().Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("Tasks() = %v, want one trimmed task", tasks)
	}
	if m.InputValue() != "" {
		t.Errorf("input = %q, want cleared", m.InputValue())
	}

	saved, err := adapter.Fetch(storage.DefaultKey)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !task.Equal(saved, tasks) {
		t.Errorf("saved = %v, want %v", saved, tasks)
	}
}

func TestBlankInputIsIgnored(t *testing.T) {
	p, _ := newTestPlanner(t)
	m := New(p, Options{})

	m = send(t, m, runes("   "), key(tea.KeyEnter))

	if p.Store().Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Store().Len())
	}
	if m.InputValue() != "   " {
		t.Errorf("input = %q, want it left in place", m.InputValue())
	}
}

func TestEscClearsInput(t *testing.T) {
	p, _ := newTestPlanner(t)
	m := send(t, New(p, Options{}), runes("draft"), key(tea.KeyEsc))

	if m.InputValue() != "" {
		t.Errorf("input = %q, want cleared", m.InputValue())
	}
	if m.Mode() != keymap.ModeInput {
		t.Errorf("Mode() = %q, want input", m.Mode())
	}
}

func TestLettersAreTypedNotCommands(t *testing.T) {
	p, _ := newTestPlanner(t, "existing")
	m := New(p, Options{})

	m = send(t, m, runes("q"))

	if m.quitting {
		t.Error("typing q in the input should not quit")
	}
	if m.InputValue() != "q" {
		t.Errorf("input = %q, want q", m.InputValue())
	}
}

func TestFocusListNeedsTasks(t *testing.T) {
	p, _ := newTestPlanner(t)
	m := send(t, New(p, Options{}), key(tea.KeyTab))

	if m.Mode() != keymap.ModeInput {
		t.Errorf("Mode() = %q, want input while the list is empty", m.Mode())
	}
}

func TestListNavigation(t *testing.T) {
	p, _ := newTestPlanner(t, "a", "b", "c")
	m := send(t, New(p, Options{}), key(tea.KeyTab))

	if m.Mode() != keymap.ModeList {
		t.Fatalf("Mode() = %q, want list", m.Mode())
	}

	tests := []struct {
		name string
		msg  tea.Msg
		want int
	}{
		{"down", runes("j"), 2},
		{"down again", key(tea.KeyDown), 3},
		{"down stops at end", runes("j"), 3},
		{"top", runes("g"), 1},
		{"up stops at start", runes("k"), 1},
		{"end", runes("G"), 3},
		{"up", key(tea.KeyUp), 2},
	}

	for _, tt := range tests {
		m = send(t, m, tt.msg)
		if m.Cursor() != tt.want {
			t.Errorf("%s: Cursor() = %d, want %d", tt.name, m.Cursor(), tt.want)
		}
	}
}

func TestToggleSelectedTask(t *testing.T) {
	p, _ := newTestPlanner(t, "a", "b")
	m := send(t, New(p, Options{}), key(tea.KeyTab), runes("j"), key(tea.KeySpace))

	tasks := p.Store().Tasks()
	if tasks[0].Completed || !tasks[1].Completed {
		t.Fatalf("after toggle: %v, want only b completed", tasks)
	}

	send(t, m, runes("x"))
	if p.Store().CompletedCount() != 0 {
		t.Errorf("CompletedCount() = %d, want 0 after second toggle", p.Store().CompletedCount())
	}
}

func TestDeleteSelectedTask(t *testing.T) {
	p, _ := newTestPlanner(t, "a", "b", "c")
	m := send(t, New(p, Options{}), key(tea.KeyTab), runes("G"), runes("d"))

	if got := p.Store().Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if m.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2 after deleting the last row", m.Cursor())
	}
	if tasks := p.Store().Tasks(); tasks[0].Text != "a" || tasks[1].Text != "b" {
		t.Errorf("Tasks() = %v, want [a b]", tasks)
	}
}

func TestDeletingLastTaskReturnsToInput(t *testing.T) {
	p, _ := newTestPlanner(t, "only")
	m := send(t, New(p, Options{}), key(tea.KeyTab), key(tea.KeyDelete))

	if p.Store().Len() != 0 {
		t.Fatalf("Len() = %d, want 0", p.Store().Len())
	}
	if m.Mode() != keymap.ModeInput {
		t.Errorf("Mode() = %q, want input", m.Mode())
	}
}

func TestQuitFromList(t *testing.T) {
	p, _ := newTestPlanner(t, "a")
	m := send(t, New(p, Options{}), key(tea.KeyTab))

	next, cmd := m.Update(runes("q"))
	m = next.(Model)

	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q in list mode should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestView(t *testing.T) {
	p, _ := newTestPlanner(t)
	m := New(p, Options{})

	view := m.View()
	for _, want := range []string{TitleText, SubtitleText, FooterText, output.EmptyMessage} {
		if !strings.Contains(view, want) {
			t.Errorf("empty view missing %q", want)
		}
	}
	if strings.Contains(view, "tasks completed") {
		t.Error("counter should be hidden without tasks")
	}

	m = send(t, m, runes("Buy milk"), key(tea.KeyEnter))
	m = send(t, m, runes("Walk the dog"), key(tea.KeyEnter))
	m = send(t, m, key(tea.KeyTab), runes("g"), key(tea.KeyEnter))

	view = m.View()
	for _, want := range []string{"[x] Buy milk", "[ ] Walk the dog", "1 of 2 tasks completed."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, output.EmptyMessage) {
		t.Error("empty message shown with tasks present")
	}
}

func TestView_TruncatesLongText(t *testing.T) {
	p, _ := newTestPlanner(t, strings.Repeat("word ", 40))
	m := New(p, Options{MaxTextWidth: 20})

	view := m.View()
	if !strings.Contains(view, "word word word wo...") {
		t.Errorf("long task not truncated to 20 columns:\n%s", view)
	}
}

func TestView_TruncatesWideText(t *testing.T) {
	p, _ := newTestPlanner(t, strings.Repeat("任", 40))
	m := New(p, Options{MaxTextWidth: 20})

	tasks := p.Store().Tasks()
	row := m.renderTask(0, tasks[0])
	// cursor gutter, checkbox and a space come before the text
	prefix := 2 + lipgloss.Width(tasks[0].Mark()) + 1
	if w := lipgloss.Width(row); w > prefix+20 {
		t.Errorf("row width = %d, want <= %d:\n%s", w, prefix+20, row)
	}
	if !strings.Contains(row, "...") {
		t.Errorf("wide text not marked as truncated: %q", row)
	}
}

func TestView_HelpToggle(t *testing.T) {
	p, _ := newTestPlanner(t, "a")
	m := send(t, New(p, Options{}), key(tea.KeyTab))

	if strings.Contains(m.View(), "toggle") {
		t.Error("help shown before it was requested")
	}
	m = send(t, m, runes("?"))
	if !strings.Contains(m.View(), "toggle") {
		t.Error("help hidden after ?")
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	p, _ := newTestPlanner(t, "t1", "t2", "t3", "t4", "t5")
	m := New(p, Options{})

	// Room for exactly two task rows.
	height := styles.ReservedLines - styles.HelpBarLines + 2
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: height}, key(tea.KeyTab), runes("G"))

	view := m.View()
	if !strings.Contains(view, "t5") || !strings.Contains(view, "t4") {
		t.Errorf("last rows not visible:\n%s", view)
	}
	if strings.Contains(view, "t1") {
		t.Errorf("first row should be scrolled off:\n%s", view)
	}

	m = send(t, m, runes("g"))
	if view := m.View(); !strings.Contains(view, "t1") || strings.Contains(view, "t5") {
		t.Errorf("scroll back to top failed:\n%s", view)
	}
}

func TestReloadOnSlotChange(t *testing.T) {
	p, adapter := newTestPlanner(t, "a", "b", "c")
	m := send(t, New(p, Options{}), key(tea.KeyTab), runes("G"))

	external := []task.Task{{ID: 42, Text: "from elsewhere"}}
	if err := adapter.Store(storage.DefaultKey, external); err != nil {
		t.Fatalf("Store: %v", err)
	}

	m = send(t, m, slotChangedMsg{})

	if !task.Equal(p.Store().Tasks(), external) {
		t.Errorf("Tasks() = %v, want %v", p.Store().Tasks(), external)
	}
	if m.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1 after the list shrank", m.Cursor())
	}
}

func TestReloadToEmptyListReturnsToInput(t *testing.T) {
	p, adapter := newTestPlanner(t, "a", "b")
	m := send(t, New(p, Options{}), key(tea.KeyTab))
	if m.Mode() != keymap.ModeList {
		t.Fatalf("Mode() = %q, want list", m.Mode())
	}

	if err := adapter.Store(storage.DefaultKey, []task.Task{}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	m = send(t, m, slotChangedMsg{})

	if p.Store().Len() != 0 {
		t.Fatalf("Len() = %d after external clear", p.Store().Len())
	}
	if m.Mode() != keymap.ModeInput {
		t.Errorf("Mode() = %q, want input once the list is empty", m.Mode())
	}

	m = send(t, m, runes("x"))
	if m.InputValue() != "x" {
		t.Errorf("InputValue() = %q, want %q", m.InputValue(), "x")
	}
}

func TestWaitForChange(t *testing.T) {
	p, _ := newTestPlanner(t)

	if New(p, Options{}).waitForChange() != nil {
		t.Error("waitForChange() should be nil without a change channel")
	}

	changes := make(chan struct{}, 1)
	m := New(p, Options{Changes: changes})
	cmd := m.waitForChange()
	if cmd == nil {
		t.Fatal("waitForChange() = nil with a change channel")
	}

	changes <- struct{}{}
	if _, ok := cmd().(slotChangedMsg); !ok {
		t.Error("expected slotChangedMsg after a change")
	}

	close(changes)
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("msg after close = %#v, want nil", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("waitForChange did not return after the channel closed")
	}
}
