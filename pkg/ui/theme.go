package ui

import "github.com/charmbracelet/lipgloss"

// Palette mirrors the renderer's dark scheme so the terminal view and PNG
// snapshots read as the same application.
var (
	ColorBg       = lipgloss.Color("#0f0f1a")
	ColorText     = lipgloss.Color("#e2e8f0")
	ColorSubtext  = lipgloss.Color("#8888aa")
	ColorNamed    = lipgloss.Color("#22d3ee")
	ColorAnon     = lipgloss.Color("#555577")
	ColorSnippet  = lipgloss.Color("#eab308")
	ColorAccent   = lipgloss.Color("#a855f7")
	ColorCursor   = lipgloss.Color("#fbbf24")
	ColorEdge     = lipgloss.Color("#555577")
	ColorBadge    = lipgloss.Color("#a855f7")
	ColorSelected = lipgloss.Color("#2d2d55")
)

var (
	NamedStyle    = lipgloss.NewStyle().Foreground(ColorNamed)
	AnonStyle     = lipgloss.NewStyle().Foreground(ColorAnon)
	SnippetStyle  = lipgloss.NewStyle().Foreground(ColorSnippet)
	EdgeStyle     = lipgloss.NewStyle().Foreground(ColorEdge)
	BadgeStyle    = lipgloss.NewStyle().Foreground(ColorBg).Background(ColorBadge)
	SelectedStyle = lipgloss.NewStyle().Background(ColorSelected).Bold(true)
	CursorStyle   = lipgloss.NewStyle().Foreground(ColorCursor).Bold(true)

	StatusStyle     = lipgloss.NewStyle().Foreground(ColorText).Background(ColorSelected).Padding(0, 1)
	StatusKeysStyle = lipgloss.NewStyle().Foreground(ColorSubtext).Padding(0, 1)
	HelpPanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorAccent).Padding(0, 1)
)
