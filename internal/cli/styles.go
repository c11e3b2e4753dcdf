// Package cli holds the terminal presentation shared by the pantry commands:
// lipgloss styles, interrupt handling and prompt input.
package cli

import (
	"github.com/Veraticus/pantrychef/internal/food"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	CarrotColor    = lipgloss.Color("#F97316")
	BasilColor     = lipgloss.Color("#16A34A")
	SaffronColor   = lipgloss.Color("#EAB308")
	TomatoColor    = lipgloss.Color("#DC2626")
	BlueberryColor = lipgloss.Color("#6366F1")
	PepperColor    = lipgloss.Color("#78716C")
)

var (
	// TitleStyle renders section headings.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(CarrotColor).MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(BasilColor)
	WarningStyle = lipgloss.NewStyle().Foreground(SaffronColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(TomatoColor).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(BlueberryColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(PepperColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// CardStyle frames recipe cards and the account summary.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(CarrotColor).
			Padding(0, 2)

	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(CarrotColor)
)

var categoryColors = map[food.Category]lipgloss.Color{
	food.Protein:   lipgloss.Color("#EF4444"),
	food.Produce:   lipgloss.Color("#22C55E"),
	food.Dairy:     lipgloss.Color("#3B82F6"),
	food.Grain:     lipgloss.Color("#F59E0B"),
	food.Pantry:    lipgloss.Color("#A855F7"),
	food.Beverage:  lipgloss.Color("#06B6D4"),
	food.Condiment: lipgloss.Color("#F97316"),
	food.Frozen:    lipgloss.Color("#0EA5E9"),
	food.Other:     lipgloss.Color("#6B7280"),
}

var statusColors = map[model.Status]lipgloss.Color{
	model.StatusFresh: BasilColor,
	model.StatusLow:   SaffronColor,
	model.StatusOut:   TomatoColor,
}

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
	InfoIcon    = "•"
	PantryIcon  = "🥕"
	ChefIcon    = "🧑‍🍳"
	CartIcon    = "🛒"
	CameraIcon  = "📷"
	StarIcon    = "★"
)

func iconLine(style lipgloss.Style, icon, message string) string {
	return style.Render(icon + " " + message)
}

// FormatSuccess renders a confirmation line.
func FormatSuccess(message string) string { return iconLine(SuccessStyle, SuccessIcon, message) }

// FormatError renders an error line.
func FormatError(message string) string { return iconLine(ErrorStyle, ErrorIcon, message) }

// FormatWarning renders a warning line.
func FormatWarning(message string) string { return iconLine(WarningStyle, WarningIcon, message) }

// FormatInfo renders a neutral note.
func FormatInfo(message string) string { return iconLine(InfoStyle, InfoIcon, message) }

// FormatTitle renders a heading with the pantry icon.
func FormatTitle(title string) string { return iconLine(TitleStyle, PantryIcon, title) }

// FormatPrompt renders a question awaiting input on the same line.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt) + " "
}

// CategoryColor returns the badge color for a category name. Unknown names get
// the Other color.
func CategoryColor(category string) lipgloss.Color {
	if c, ok := food.ParseCategory(category); ok {
		return categoryColors[c]
	}
	return categoryColors[food.Other]
}

// FormatCategory renders a category as a colored badge.
func FormatCategory(category string) string {
	if category == "" {
		category = string(food.Other)
	}
	return lipgloss.NewStyle().Foreground(CategoryColor(category)).Render("[" + category + "]")
}

// FormatStatus renders a pantry status in its traffic-light color.
func FormatStatus(status model.Status) string {
	color, ok := statusColors[status]
	if !ok {
		color = PepperColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(status))
}

// FormatChecked renders a shopping-list checkbox.
func FormatChecked(checked bool) string {
	if checked {
		return SuccessStyle.Render("[x]")
	}
	return SubtleStyle.Render("[ ]")
}

// RenderBox draws title and content inside a card.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}
