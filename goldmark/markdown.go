// Package goldmark renders study material written in markdown to
// ANSI-styled terminal output, using goldmark for parsing and lipgloss for
// styling.
//
// GitHub-flavored tables, strikethrough and task lists are enabled since
// generated study guides use them for flashcards and quiz checklists.
package goldmark

import "github.com/fwojciec/edubridge"

const defaultWidth = 80

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks and
// tables are rendered without reflow. Source is passed through Sanitize
// first.
func Render(source string, width int, theme edubridge.Theme) string {
	source = Sanitize(source)
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	return newRenderer(theme, width).render([]byte(source))
}

// RenderError styles an error line with the theme's error color.
func RenderError(msg string, theme edubridge.Theme) string {
	return newStyles(theme).err.Render(Sanitize(msg))
}
