package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	PeriRed    = lipgloss.Color("#E4002B")
	Charcoal   = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Amber      = lipgloss.Color("#F59E0B")
)

// Text styles
var (
	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(PeriRed)
)

// Section list styles
var (
	ContinentStyle = lipgloss.NewStyle().
			Foreground(PeriRed).
			Bold(true)

	CountryStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			PaddingLeft(2)

	RestaurantStyle = lipgloss.NewStyle().
			Foreground(White).
			PaddingLeft(4)

	AddressStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Italic(true).
			PaddingLeft(4)
)

// Connectivity banner styles
var (
	OfflineBannerStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(PeriRed).
				Padding(0, 1)

	OnlineBannerStyle = lipgloss.NewStyle().
				Foreground(Charcoal).
				Background(Green).
				Padding(0, 1)
)

// Header badges
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(PeriRed).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PeriRed).
			Padding(1, 2).
			Background(Charcoal)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(PeriRed).
			Bold(true).
			Padding(0, 1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PeriRed)
)

// Filter styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(PeriRed).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Bold(true)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(PeriRed)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Truncate shortens s to width cells with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:width])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Highlight renders s with the bytes at indexes emphasised. Indexes are
// byte offsets, as reported by sahilm/fuzzy.
func Highlight(s string, indexes []int, base lipgloss.Style) string {
	if len(indexes) == 0 {
		return base.Render(s)
	}
	hit := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		hit[i] = true
	}

	hl := MatchHighlightStyle.Inherit(base).UnsetPadding()
	plain := base.UnsetPadding()

	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(hl.Render(string(r)))
		} else {
			b.WriteString(plain.Render(string(r)))
		}
	}
	return base.Render(b.String())
}
