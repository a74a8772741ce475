package ui

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconArrow    = "→"
	IconConflict = "⚠"
	IconError    = "❌"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	RuleEntryMinWidth float32 = 140
	PreviewRowHeight  float32 = 28
	SettingsWidth     float32 = 500
	SettingsHeight    float32 = 460
)

// Download status log
const (
	StatusLogMaxLines = 200
)
