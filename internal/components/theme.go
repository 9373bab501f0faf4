package components

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// SpacingSize enumerates supported spacing size tokens. Trimmed to the
// tokens CardBaseStyle/DefaultCardStyle actually reference.
type SpacingSize int

const (
	SpacingSizeNone SpacingSize = iota
	SpacingSizeSmall
	SpacingSizeMedium
)

const spacingSizeCount = int(SpacingSizeMedium) + 1

type spacingTable [spacingSizeCount]int

// SpacingConfig stores distinct spacing scales for padding and margin.
type SpacingConfig struct {
	Margin  spacingTable
	Padding spacingTable
}

// TypographyVariant represents a strongly-typed typography token.
type TypographyVariant int

const (
	TypographyVariantBase TypographyVariant = iota
	TypographyVariantTitle
	TypographyVariantBody
)

// BorderVariant enumerates the border shapes a themed component can ask for.
type BorderVariant int

const (
	BorderVariantNormal BorderVariant = iota
	BorderVariantRounded
)

// Palette describes semantic colour slots used by components.
type Palette struct {
	Primary ColourSet
	Surface ColourSet
	Success ColourSet
	Warning ColourSet
	Danger  ColourSet
	Info    ColourSet
}

// BorderSet groups reusable border definitions.
type BorderSet struct {
	Normal  lipgloss.Border
	Rounded lipgloss.Border
}

// TypographyScale contains semantic typography presets.
type TypographyScale struct {
	Base  lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Theme represents the global styling theme for components.
type Theme struct {
	Palette    Palette
	Borders    BorderSet
	Spacing    SpacingConfig
	Typography TypographyScale
}

// ThemeManager coordinates access to a Theme instance.
type ThemeManager struct {
	mu    sync.RWMutex
	theme Theme
}

// NewThemeManager allocates a ThemeManager with the provided theme.
func NewThemeManager(theme Theme) *ThemeManager {
	return &ThemeManager{theme: cloneTheme(normalizeTheme(theme))}
}

// SetTheme replaces the managed theme.
func (m *ThemeManager) SetTheme(theme Theme) {
	m.mu.Lock()
	m.theme = cloneTheme(normalizeTheme(theme))
	m.mu.Unlock()
}

// Theme returns a copy of the managed theme.
func (m *ThemeManager) Theme() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTheme(m.theme)
}

func normalizeTheme(theme Theme) Theme {
	theme.Spacing = normalizeSpacingConfig(theme.Spacing)
	return theme
}

func cloneTheme(theme Theme) Theme {
	theme.Spacing = cloneSpacingConfig(theme.Spacing)
	return theme
}

func normalizeSpacingConfig(cfg SpacingConfig) SpacingConfig {
	if spacingTableIsZero(cfg.Padding) {
		cfg.Padding = defaultSpacingTable()
	}
	if spacingTableIsZero(cfg.Margin) {
		cfg.Margin = defaultSpacingTable()
	}
	return cfg
}

func cloneSpacingConfig(cfg SpacingConfig) SpacingConfig {
	return SpacingConfig{
		Margin:  cfg.Margin,
		Padding: cfg.Padding,
	}
}

func spacingTableIsZero(table spacingTable) bool {
	for _, value := range table {
		if value != 0 {
			return false
		}
	}
	return true
}

func defaultSpacingTable() spacingTable {
	return spacingTable{
		SpacingSizeNone:   0,
		SpacingSizeSmall:  3,
		SpacingSizeMedium: 4,
	}
}

// DefaultTheme returns the default theme used by StatusCard/Card.
func DefaultTheme() Theme {
	ac := func(light, dark string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: light, Dark: dark}
	}

	palette := Palette{
		Primary: ColourSet{
			Base:   ac("#3b82f6", "#60a5fa"),
			OnBase: ac("#f8fafc", "#0b1120"),
		},
		Surface: ColourSet{
			Base:   ac("#f9fafb", "#111827"),
			OnBase: ac("#111827", "#f9fafb"),
		},
		Success: ColourSet{Base: ac("#22c55e", "#4ade80")},
		Warning: ColourSet{Base: ac("#eab308", "#facc15")},
		Danger:  ColourSet{Base: ac("#ef4444", "#f87171")},
		Info:    ColourSet{Base: ac("#06b6d4", "#22d3ee")},
	}

	borders := BorderSet{
		Normal:  lipgloss.NormalBorder(),
		Rounded: lipgloss.RoundedBorder(),
	}

	spacing := SpacingConfig{
		Padding: defaultSpacingTable(),
		Margin:  defaultSpacingTable(),
	}

	theme := Theme{
		Palette:    palette,
		Borders:    borders,
		Spacing:    spacing,
		Typography: defaultTypography(palette),
	}

	return normalizeTheme(theme)
}

func defaultTypography(p Palette) TypographyScale {
	base := lipgloss.NewStyle().Foreground(p.Surface.OnBase)
	title := base.Copy().Bold(true).Foreground(p.Primary.Base)

	return TypographyScale{
		Base:  base,
		Title: title,
		Body:  base,
	}
}

// Theme variables for easy access.
var defaultThemeManager = NewThemeManager(DefaultTheme())

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	defaultThemeManager.SetTheme(theme)
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return defaultThemeManager.Theme()
}

func PaddingValue(size SpacingSize) int {
	return spacingLookup(GetTheme().Spacing.Padding, size)
}

func spacingLookup(table spacingTable, size SpacingSize) int {
	index := int(size)
	if index < 0 || index >= len(table) {
		index = int(SpacingSizeMedium)
	}
	return table[index]
}

// TypographyStyle returns the specified typography style from the current theme.
func TypographyStyle(variant TypographyVariant) lipgloss.Style {
	typo := GetTheme().Typography
	switch variant {
	case TypographyVariantTitle:
		return typo.Title
	case TypographyVariantBody:
		return typo.Body
	default:
		return typo.Base
	}
}

// StyleApplier represents a function that can apply styling to a lipgloss.Style.
type StyleApplier interface {
	Apply(base lipgloss.Style, theme Theme) lipgloss.Style
}

// StyleFunc implements StyleApplier for a function type.
type StyleFunc func(lipgloss.Style, Theme) lipgloss.Style

func (fn StyleFunc) Apply(base lipgloss.Style, theme Theme) lipgloss.Style {
	return fn(base, theme)
}

// Style applies a series of modifiers to create a final style.
func Style(base lipgloss.Style, appliers ...StyleApplier) lipgloss.Style {
	theme := GetTheme()
	for _, applier := range appliers {
		base = applier.Apply(base, theme)
	}
	return base
}

// ColourSet represents a semantic color set with base and on-base colors.
type ColourSet struct {
	Base   lipgloss.AdaptiveColor
	OnBase lipgloss.AdaptiveColor
}

// PaletteSlot provides access to a semantic colour slot.
type PaletteSlot func(Palette) ColourSet

var (
	PalettePrimary PaletteSlot = func(p Palette) ColourSet { return p.Primary }
	PaletteSurface PaletteSlot = func(p Palette) ColourSet { return p.Surface }
	PaletteSuccess PaletteSlot = func(p Palette) ColourSet { return p.Success }
	PaletteWarning PaletteSlot = func(p Palette) ColourSet { return p.Warning }
	PaletteDanger  PaletteSlot = func(p Palette) ColourSet { return p.Danger }
	PaletteInfo    PaletteSlot = func(p Palette) ColourSet { return p.Info }
)

// Background applies a semantic background colour and matching foreground.
func Background(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		cs := slot(theme.Palette)
		return base.Background(cs.Base).Foreground(cs.OnBase)
	}
}

// Foreground applies a semantic foreground colour.
func Foreground(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		cs := slot(theme.Palette)
		return base.Foreground(cs.Base)
	}
}

func Border(variant BorderVariant) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		return base.Border(borderForVariant(theme, variant))
	}
}

func borderForVariant(theme Theme, variant BorderVariant) lipgloss.Border {
	switch variant {
	case BorderVariantRounded:
		return theme.Borders.Rounded
	default:
		return theme.Borders.Normal
	}
}

func Padding(size SpacingSize) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		value := spacingLookup(theme.Spacing.Padding, size)
		return base.Padding(value)
	}
}

func Margin(size SpacingSize) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		value := spacingLookup(theme.Spacing.Margin, size)
		return base.Margin(value)
	}
}

// Typography applies typography styling.
func Typography(variant TypographyVariant) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		return base.Inherit(TypographyStyle(variant))
	}
}

// CardBaseStyle is the predefined style bundle DefaultCardStyle builds from.
func CardBaseStyle() []StyleApplier {
	return []StyleApplier{
		Background(PaletteSurface),
		Border(BorderVariantRounded),
		Margin(SpacingSizeSmall),
		Padding(SpacingSizeMedium),
	}
}
