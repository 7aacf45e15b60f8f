package goldmark

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/edubridge"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type styles struct {
	heading   lipgloss.Style
	bold      lipgloss.Style
	italic    lipgloss.Style
	strike    lipgloss.Style
	accent    lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
	err       lipgloss.Style
}

func newStyles(theme edubridge.Theme) styles {
	return styles{
		heading:   lipgloss.NewStyle().Foreground(ansiColor(theme.Heading)).Bold(true),
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		strike:    lipgloss.NewStyle().Strikethrough(true),
		accent:    lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		underline: lipgloss.NewStyle().Underline(true),
		err:       lipgloss.NewStyle().Foreground(ansiColor(theme.Error)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// renderer holds per-call state. It is not reused across Render calls.
type renderer struct {
	st     styles
	width  int
	source []byte
}

func newRenderer(theme edubridge.Theme, width int) *renderer {
	return &renderer{st: newStyles(theme), width: width}
}

func newParser() parser.Parser {
	md := goldmark.New(goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
	))
	return md.Parser()
}

func (r *renderer) render(source []byte) string {
	r.source = source
	doc := newParser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	r.blocks(doc, r.width, &buf)
	return strings.TrimRight(buf.String(), "\n")
}

func (r *renderer) blocks(node ast.Node, width int, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c, width, buf)
		if c.NextSibling() != nil && !isHTML(c) {
			buf.WriteString("\n")
		}
	}
}

func isHTML(n ast.Node) bool {
	_, ok := n.(*ast.HTMLBlock)
	return ok
}

func (r *renderer) block(node ast.Node, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		r.wrap(r.inline(n), width, buf)

	case *ast.Heading:
		r.wrap(r.st.heading.Render(r.inline(n)), width, buf)

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(r.source)); lang != "" {
			buf.WriteString(r.st.muted.Render(lang) + "\n")
		}
		r.code(n, buf)

	case *ast.CodeBlock:
		r.code(n, buf)

	case *ast.List:
		r.list(n, width, buf, 0)

	case *ast.Blockquote:
		r.quote(n, width, buf)

	case *ast.ThematicBreak:
		buf.WriteString(r.st.muted.Render(strings.Repeat("─", min(width, defaultWidth))) + "\n")

	case *ast.HTMLBlock:
		// Raw HTML such as <details> wrappers around quiz answers: print
		// the lines muted so the answer text stays visible.
		lines := n.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(r.source)), "\n")
			buf.WriteString(r.st.muted.Render(line) + "\n")
		}

	case *east.Table:
		r.table(n, buf)

	default:
		r.blocks(node, width, buf)
	}
}

func (r *renderer) wrap(s string, width int, buf *bytes.Buffer) {
	buf.WriteString(lipgloss.NewStyle().Width(width).Render(s))
	buf.WriteString("\n")
}

func (r *renderer) code(n ast.Node, buf *bytes.Buffer) {
	gutter := r.st.muted.Render("│") + " "
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(r.source)), "\n")
		buf.WriteString(gutter + line + "\n")
	}
}

func (r *renderer) quote(n *ast.Blockquote, width int, buf *bytes.Buffer) {
	var inner bytes.Buffer
	r.blocks(n, max(width-2, 10), &inner)
	gutter := r.st.muted.Render("┃") + " "
	for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
		buf.WriteString(gutter + line + "\n")
	}
}

func (r *renderer) list(n *ast.List, width int, buf *bytes.Buffer, depth int) {
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		indent := strings.Repeat("  ", depth)
		marker := "- "
		if n.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}

		var content strings.Builder
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				content.WriteString(r.inline(in))
			case *ast.List:
				if content.Len() > 0 {
					r.item(indent+marker, content.String(), width, buf)
					content.Reset()
				}
				r.list(in, width, buf, depth+1)
				marker = strings.Repeat(" ", len(marker))
			default:
				var nested bytes.Buffer
				r.block(ic, width, &nested)
				content.WriteString(nested.String())
			}
		}
		if content.Len() > 0 {
			r.item(indent+marker, content.String(), width, buf)
		}
	}
}

// item writes a list item, indenting continuation lines under the marker.
func (r *renderer) item(prefix, content string, width int, buf *bytes.Buffer) {
	wrapped := lipgloss.NewStyle().Width(max(width-len(prefix), 10)).Render(content)
	pad := strings.Repeat(" ", len(prefix))
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix + line + "\n")
		} else {
			buf.WriteString(pad + line + "\n")
		}
	}
}

// table renders a GFM table with columns padded to their widest cell.
// The header row is styled with the accent color.
func (r *renderer) table(n *east.Table, buf *bytes.Buffer) {
	var rows [][]string
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inline(cell))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}

	var widths []int
	for _, cells := range rows {
		for i, c := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	sep := " " + r.st.muted.Render("│") + " "
	for ri, cells := range rows {
		padded := make([]string, len(widths))
		for i := range widths {
			var c string
			if i < len(cells) {
				c = cells[i]
			}
			if ri == 0 {
				c = r.st.accent.Render(c)
			}
			padded[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		}
		buf.WriteString(strings.TrimRight(strings.Join(padded, sep), " ") + "\n")
		if ri == 0 {
			rules := make([]string, len(widths))
			for i, w := range widths {
				rules[i] = strings.Repeat("─", w)
			}
			buf.WriteString(r.st.muted.Render(strings.Join(rules, "─┼─")) + "\n")
		}
	}
}

// inline collects styled inline text from a node's children.
func (r *renderer) inline(node ast.Node) string {
	var b strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.span(c, &b)
	}
	return b.String()
}

func (r *renderer) span(node ast.Node, b *strings.Builder) {
	switch n := node.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(r.source))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}

	case *ast.String:
		b.Write(n.Value)

	case *ast.Emphasis:
		inner := r.inline(n)
		if n.Level == 1 {
			b.WriteString(r.st.italic.Render(inner))
		} else {
			b.WriteString(r.st.bold.Render(inner))
		}

	case *ast.CodeSpan:
		b.WriteString(r.st.accent.Render(r.inline(n)))

	case *ast.Link:
		b.WriteString(r.st.underline.Render(r.inline(n)))
		b.WriteString(" " + r.st.muted.Render("("+string(n.Destination)+")"))

	case *ast.AutoLink:
		b.WriteString(r.st.underline.Render(string(n.URL(r.source))))

	case *ast.Image:
		b.WriteString(r.st.underline.Render(r.inline(n)))
		b.WriteString(" " + r.st.muted.Render("("+string(n.Destination)+")"))

	case *ast.RawHTML:
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			b.Write(seg.Value(r.source))
		}

	case *east.Strikethrough:
		b.WriteString(r.st.strike.Render(r.inline(n)))

	case *east.TaskCheckBox:
		if n.IsChecked {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.span(c, b)
		}
	}
}
