package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// DarkTheme is a compact theme that always renders the dark variant
type DarkTheme struct{}

// NewDarkTheme creates the application theme
func NewDarkTheme() fyne.Theme {
	return &DarkTheme{}
}

// Color returns the dark palette regardless of the requested variant
func (t *DarkTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 220, G: 53, B: 69, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 38, G: 139, B: 210, A: 255}
	case theme.ColorNameBackground:
		return color.RGBA{R: 25, G: 35, B: 45, A: 255}
	case theme.ColorNameInputBackground:
		return color.RGBA{R: 69, G: 83, B: 100, A: 255}
	case theme.ColorNameForeground:
		return color.RGBA{R: 224, G: 225, B: 227, A: 255}
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (t *DarkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *DarkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size tightens padding slightly; the form is small and single-purpose
func (t *DarkTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 13
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}
