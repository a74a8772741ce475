package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// compactSizes overrides default theme sizes to fit the preview table
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:            3,
	theme.SizeNameInnerPadding:       6,
	theme.SizeNameLineSpacing:        2,
	theme.SizeNameScrollBar:          12,
	theme.SizeNameScrollBarSmall:     3,
	theme.SizeNameText:               13,
	theme.SizeNameHeadingText:        16,
	theme.SizeNameSubHeadingText:     13,
	theme.SizeNameCaptionText:        10,
	theme.SizeNameInputRadius:        3,
	theme.SizeNameSelectionRadius:    2,
	theme.SizeNameSeparatorThickness: 1,
}

// Status colors shared by both variants
var (
	colorSuccess = color.RGBA{R: 46, G: 160, B: 67, A: 255}
	colorError   = color.RGBA{R: 183, G: 28, B: 28, A: 255}
	colorWarning = color.RGBA{R: 255, G: 193, B: 7, A: 255}
	colorPrimary = color.RGBA{R: 25, G: 118, B: 210, A: 255}
)

// CompactTheme reduces padding and font sizes; renamed files show in the
// success color and conflicts in the error color.
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case theme.ColorNameSuccess:
		return colorSuccess
	case theme.ColorNameError:
		return colorError
	case theme.ColorNameWarning:
		return colorWarning
	case theme.ColorNamePrimary:
		return colorPrimary
	case theme.ColorNameBackground:
		if dark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.RGBA{R: 250, G: 250, B: 250, A: 255}
	case theme.ColorNameForeground:
		if dark {
			return color.White
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	}
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := compactSizes[name]; ok {
		return size
	}
	return theme.DefaultTheme().Size(name)
}
