package ui

import (
	"fyne.io/fyne/v2"
)

// AppIcon is looked up next to the executable's working directory
const AppIcon = "deskutils.png"

// LoadLogoResource loads the window icon from path
func LoadLogoResource(path string) (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(path)
}
