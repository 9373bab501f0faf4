package components

import (
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	assert.Equal(t, "#3b82f6", theme.Palette.Primary.Base.Light)
	assert.Equal(t, "#111827", theme.Palette.Surface.OnBase.Light)

	assert.Equal(t, lipgloss.RoundedBorder(), theme.Borders.Rounded)
	assert.Equal(t, lipgloss.NormalBorder(), theme.Borders.Normal)

	assert.Equal(t, 4, theme.Spacing.Padding[SpacingSizeMedium])
	assert.Equal(t, 3, theme.Spacing.Margin[SpacingSizeSmall])

	assert.True(t, theme.Typography.Title.GetBold(), "title typography should be bold")
}

func TestSetGetTheme(t *testing.T) {
	original := GetTheme()

	custom := DefaultTheme()
	custom.Palette.Primary.Base = lipgloss.AdaptiveColor{Light: "#0000ff", Dark: "#1e3a8a"}
	SetTheme(custom)

	active := GetTheme()
	assert.Equal(t, "#0000ff", active.Palette.Primary.Base.Light)

	SetTheme(original)
}

func TestSpacingHelpers(t *testing.T) {
	SetTheme(DefaultTheme())
	assert.Equal(t, 4, PaddingValue(SpacingSizeMedium))
	assert.Equal(t, 3, PaddingValue(SpacingSizeSmall))
}

func TestTypographyStyle(t *testing.T) {
	title := TypographyStyle(TypographyVariantTitle)
	assert.True(t, title.GetBold(), "title typography should be bold")

	body := TypographyStyle(TypographyVariantBody)
	assert.Equal(t, GetTheme().Typography.Body, body)
}

func TestStyleApplier(t *testing.T) {
	style := Style(
		lipgloss.NewStyle(),
		Background(PalettePrimary),
		Padding(SpacingSizeMedium),
		Border(BorderVariantRounded),
	)

	assert.NotEmpty(t, style.GetBackground(), "expected background to be set")
	assert.True(t, style.GetPaddingLeft() > 0, "expected padding to be applied")
}

func TestPaletteSlots(t *testing.T) {
	palette := GetTheme().Palette
	assert.NotEmpty(t, palette.Primary.Base.Light, "primary light tone should be set")
	assert.NotEmpty(t, palette.Info.Base.Dark, "info dark tone should be set")
}

func TestCardBaseStyle(t *testing.T) {
	cardStyle := Style(lipgloss.NewStyle(), CardBaseStyle()...)
	assert.NotEmpty(t, cardStyle.GetBackground(), "card style should set background")
}

func TestConcurrentThemeAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			palette := GetTheme().Palette
			assert.NotEmpty(t, palette.Primary.Base.Light)
		}()
	}
	wg.Wait()
}
