package editor

import "github.com/charmbracelet/lipgloss"

// ANSI codes for the cursor. Reverse video keeps whatever styling the
// character already has.
const (
	cursorOn  = "\x1b[7m"
	cursorOff = "\x1b[27m"
)

var (
	textMutedColor     = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"}
	textPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"}
	statusWarningColor = lipgloss.AdaptiveColor{Light: "#D35400", Dark: "#FECA57"}
	statusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	normalModeBgColor  = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	insertModeBgColor  = lipgloss.AdaptiveColor{Light: "#1E8449", Dark: "#1E8449"}
	matchBgColor       = lipgloss.AdaptiveColor{Light: "#D6EAF8", Dark: "#3B4252"}
	statusBarBgColor   = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#2D3436"}
)

var (
	gutterStyle = lipgloss.NewStyle().Foreground(textMutedColor)

	matchStyle = lipgloss.NewStyle().Background(matchBgColor).Bold(true)

	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textPrimaryColor).
			Background(statusBarBgColor)

	warningStyle = lipgloss.NewStyle().Foreground(statusWarningColor).Background(statusBarBgColor)
	infoStyle    = lipgloss.NewStyle().Foreground(statusSuccessColor).Background(statusBarBgColor)
)

func modeBadge(m Mode) string {
	bg := normalModeBgColor
	if m == ModeInsert {
		bg = insertModeBgColor
	}
	return modeStyle.Background(bg).Render(m.String())
}
