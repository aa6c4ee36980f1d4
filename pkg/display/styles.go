package display

import (
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	PathColor    = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
)

// Tier colors
var (
	StartupColor   = lipgloss.AdaptiveColor{Light: "#8B5CF6", Dark: "#A78BFA"}
	BootColor      = lipgloss.AdaptiveColor{Light: "#0EA5E9", Dark: "#38BDF8"}
	InstalledColor = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
)

// Styles holds the styles bound to one lipgloss renderer
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Tiers   map[types.Tier]lipgloss.Style
}

// NewStyles creates the styles for r
func NewStyles(r *lipgloss.Renderer) Styles {
	tier := func(c lipgloss.TerminalColor) lipgloss.Style {
		return r.NewStyle().Foreground(c).Bold(true).Width(10)
	}
	return Styles{
		Title:   r.NewStyle().Foreground(HeadingColor).Bold(true),
		Muted:   r.NewStyle().Foreground(MutedColor),
		Path:    r.NewStyle().Foreground(PathColor).Italic(true),
		Success: r.NewStyle().Foreground(SuccessColor).Bold(true),
		Error:   r.NewStyle().Foreground(ErrorColor).Bold(true),
		Warning: r.NewStyle().Foreground(WarningColor).Bold(true),
		Tiers: map[types.Tier]lipgloss.Style{
			types.TierStartup:   tier(StartupColor),
			types.TierBoot:      tier(BootColor),
			types.TierInstalled: tier(InstalledColor),
			types.TierUnlisted:  tier(MutedColor).Bold(false),
		},
	}
}
