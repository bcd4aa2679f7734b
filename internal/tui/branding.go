package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/brief/internal/theme"
)

const AppName = "brief"

// ASCII art logo lines for brief - canonical definition
var LogoLines = []string{
	"█▄▄ █▀█ █ █▀▀ █▀▀",
	"█▄█ █▀▄ █ ██▄ █▀ ",
}

const CompactLogo = `brief ›`

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
}

// Palette-driven colors. ApplyPalette replaces them on theme changes.
var (
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	AccentColor    lipgloss.Color

	BackgroundColor lipgloss.Color
	SurfaceColor    lipgloss.Color
	TextColor       lipgloss.Color
	MutedColor      lipgloss.Color

	UrgentColor  lipgloss.Color
	MidColor     lipgloss.Color
	ErrorColor   lipgloss.Color
	SuccessColor lipgloss.Color
)

// Styled components
var (
	LogoStyle          lipgloss.Style
	TitleStyle         lipgloss.Style
	HeaderStyle        lipgloss.Style
	ActiveHeaderStyle  lipgloss.Style
	StatusBarStyle     lipgloss.Style
	HelpStyle          lipgloss.Style
	CardStyle          lipgloss.Style
	SelectedCardStyle  lipgloss.Style
	CardTitleStyle     lipgloss.Style
	CardMetaStyle      lipgloss.Style
	UrgentHeaderStyle  lipgloss.Style
	MidHeaderStyle     lipgloss.Style
	LowHeaderStyle     lipgloss.Style
	SeparatorStyle     lipgloss.Style
	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style

	// Empty style for resetting
	EmptyStyle = lipgloss.NewStyle()
)

func init() {
	ApplyPalette(theme.Palette{
		Primary:    "#FF6B6B",
		Secondary:  "#4ECDC4",
		Accent:     "#95E1D3",
		Background: "#1A1A2E",
		Surface:    "#16213E",
		Text:       "#EAEAEA",
		Muted:      "#94A3B8",
		Error:      "#EF4444",
		Success:    "#10B981",
		Urgent:     "#F87171",
		Mid:        "#FFE66D",
	})
}

// ApplyPalette rebuilds every color and style from p. It must run on the UI
// goroutine.
func ApplyPalette(p theme.Palette) {
	PrimaryColor = lipgloss.Color(p.Primary)
	SecondaryColor = lipgloss.Color(p.Secondary)
	AccentColor = lipgloss.Color(p.Accent)
	BackgroundColor = lipgloss.Color(p.Background)
	SurfaceColor = lipgloss.Color(p.Surface)
	TextColor = lipgloss.Color(p.Text)
	MutedColor = lipgloss.Color(p.Muted)
	UrgentColor = lipgloss.Color(p.Urgent)
	MidColor = lipgloss.Color(p.Mid)
	ErrorColor = lipgloss.Color(p.Error)
	SuccessColor = lipgloss.Color(p.Success)

	LogoStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Bold(true).
		Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	ActiveHeaderStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(AccentColor).
		Bold(true).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	CardStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Padding(0, 1)

	SelectedCardStyle = CardStyle.
		BorderForeground(AccentColor)

	CardTitleStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)

	CardMetaStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	UrgentHeaderStyle = lipgloss.NewStyle().
		Foreground(UrgentColor).
		Bold(true)

	MidHeaderStyle = lipgloss.NewStyle().
		Foreground(MidColor).
		Bold(true)

	LowHeaderStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	StatusWarnStyle = lipgloss.NewStyle().
		Foreground(MidColor)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
}

// StatusStyle returns the status bar style for a severity.
func StatusStyle(kind StatusKind) lipgloss.Style {
	switch kind {
	case StatusSuccess:
		return StatusSuccessStyle
	case StatusWarn:
		return StatusWarnStyle
	case StatusError:
		return StatusErrorStyle
	default:
		return StatusInfoStyle
	}
}

// ContentWrapper returns a style for wrapping content with width and height constraints
func ContentWrapper(width, height int) lipgloss.Style {
	return EmptyStyle.Width(width).Height(height).MaxHeight(height)
}

func GetLoadingMessage(spinnerView string) string {
	return GetCompactBanner(spinnerView + " " + MsgLoading)
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

func ShowBanner(version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("Daily Message Briefing %s", versionTag))
	} else {
		lines = append(lines, "Daily Message Briefing")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}

		colorIdx := i % len(BannerColors)
		style := lipgloss.NewStyle().
			Foreground(BannerColors[colorIdx]).
			Bold(i < len(LogoLines))

		coloredLines = append(coloredLines, style.Render(line))
	}

	borderChars := lipgloss.Border{
		Top:         "═",
		Bottom:      "═",
		Left:        "║",
		Right:       "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
	}

	borderStyle := lipgloss.NewStyle().
		Border(borderChars).
		BorderForeground(lipgloss.Color("#4ECDC4")).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)
	output := borderStyle.Render(banner)

	fmt.Println(lipgloss.NewStyle().
		Width(60).
		Align(lipgloss.Center).
		Render(output))

	separator := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#95E1D3")).
		Render("◆ ◇ ◆ ◇ ◆")

	fmt.Println(lipgloss.NewStyle().
		Width(60).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(separator))
}
