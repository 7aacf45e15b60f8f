package edubridge

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values.
// A negative index disables the color.
type Theme struct {
	Heading int // Section headings
	Accent  int // Links, flashcard terms
	Muted   int // Code gutters, URLs, banners
	Error   int // Error messages
	Success int // Status lines
	User    int // Echoed student input
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Heading: 5,
		Accent:  6,
		Muted:   8,
		Error:   1,
		Success: 2,
		User:    4,
	}
}
