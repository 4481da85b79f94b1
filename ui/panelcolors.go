package ui

import "github.com/gdamore/tcell/v2"

// PanelColors defines the Nord-inspired color palette for the side panels.
var PanelColors = struct {
	Border      tcell.Color // Muted blue-gray for borders
	Title       tcell.Color // Bright white for title
	TitleAccent tcell.Color // Blue accent for decoration
	Label       tcell.Color // Light gray for labels
	Hint        tcell.Color // Dim gray for hints
}{
	Border:      tcell.PaletteColor(60),  // Muted blue-gray
	Title:       tcell.PaletteColor(255), // Bright white
	TitleAccent: tcell.PaletteColor(109), // Blue accent
	Label:       tcell.PaletteColor(250), // Light gray
	Hint:        tcell.PaletteColor(245), // Dim gray
}
