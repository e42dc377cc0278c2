package core

// Color is a cosmetic "#rrggbb" color. The simulation only ever copies it
// (into particles); the presentation layer hands it to lipgloss as is.
type Color string

// Palette used by the built-in templates.
const (
	ColorDefault Color = ""
	ColorBlue    Color = "#3b82f6"
	ColorGreen   Color = "#10b981"
	ColorYellow  Color = "#fbbf24"
	ColorRed     Color = "#ef4444"
	ColorOrange  Color = "#f97316"
	ColorPurple  Color = "#8b5cf6"
	ColorGray    Color = "#6b7280"
	ColorStone   Color = "#78716c"
	ColorRoad    Color = "#374151"
	ColorWhite   Color = "#ffffff"

	// ColorAlert is used for the burst spawned when the player dies.
	ColorAlert = ColorRed
)

// Valid reports whether c is empty or a well-formed "#rrggbb" string.
func (c Color) Valid() bool {
	if c == ColorDefault {
		return true
	}
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for i := 1; i < len(c); i++ {
		ch := c[i]
		isHex := (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
		if !isHex {
			return false
		}
	}
	return true
}
