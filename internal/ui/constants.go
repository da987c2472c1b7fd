package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

const (
	IconSettings = "⚙"
)

// FailureDetailFormat joins a failure title with the last output line
const FailureDetailFormat = "%s\n\n%s"

// Layout sizing
const (
	LogoSize       float32 = 32
	SettingsWidth  float32 = 500
	SettingsHeight float32 = 360
)
