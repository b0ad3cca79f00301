// Package styles holds the lipgloss styles used by the planner TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple (violet-400)
	SecondaryColor = lipgloss.Color("#10B981") // Green
	ErrorColor     = lipgloss.Color("#F87171") // Red (red-400)
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray (gray-500)

	// Header
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			MarginBottom(1)

	// New-task field
	InputBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	InputBoxFocused = InputBox.
			BorderForeground(PrimaryColor)

	// Task rows
	Task = lipgloss.NewStyle().
		Foreground(TextColor)

	TaskCompleted = lipgloss.NewStyle().
			Foreground(MutedColor).
			Strikethrough(true)

	Checkbox = lipgloss.NewStyle().
			Foreground(MutedColor)

	CheckboxDone = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	Cursor = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	EmptyState = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Completion counter
	Counter = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		MarginTop(1)

	Footer = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Container for the whole screen
	App = lipgloss.NewStyle().
		Padding(1, 2)
)

// Layout constants for computing how many task rows fit on screen.
const (
	// HeaderLines is the title (1) + subtitle (1) + subtitle MarginBottom (1).
	HeaderLines = 3

	// InputLines is the bordered input field: top border + text + bottom border.
	InputLines = 3

	// CounterLines is Counter MarginTop (1) + text (1).
	CounterLines = 2

	// FooterLines is Footer MarginTop (1) + text (1).
	FooterLines = 2

	// HelpBarLines is HelpBar MarginTop (1) + text (1).
	HelpBarLines = 2

	// AppPaddingLines is the App style's vertical padding.
	AppPaddingLines = 2

	// ViewNewlines is the blank line View() puts between input and list.
	ViewNewlines = 1

	// ReservedLines is everything on screen except the task rows.
	ReservedLines = HeaderLines + InputLines + CounterLines + FooterLines + HelpBarLines + AppPaddingLines + ViewNewlines
)
