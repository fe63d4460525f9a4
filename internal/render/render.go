package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/bharatgpt/internal/format"
)

// Answer formats model text and renders the resulting blocks.
func Answer(text string, opts Options) (string, error) {
	return Blocks(format.Format(text), opts)
}

// Blocks renders blocks in order, separated by blank lines.
func Blocks(blocks []format.Block, opts Options) (string, error) {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out, err := Block(b, opts)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return trimLines(strings.Join(parts, "\n\n")), nil
}

// Block renders a single block.
func Block(b format.Block, opts Options) (string, error) {
	switch b := b.(type) {
	case format.Table:
		return renderTable(b, opts)
	case format.Heading:
		return renderHeading(b, opts), nil
	case format.Callout:
		return renderCallout(b, opts), nil
	case format.BulletList:
		return renderList(b.Items, func(int) string { return "•" }, opts), nil
	case format.NumberedList:
		return renderList(b.Items, func(i int) string { return strconv.Itoa(i+1) + "." }, opts), nil
	case format.Paragraph:
		return lipgloss.NewStyle().Width(opts.contentWidth()).Render(inline(b.Text, opts.Theme)), nil
	default:
		return "", fmt.Errorf("render: unsupported block %T", b)
	}
}

func inline(in format.Inline, theme TUITheme) string {
	strong := lipgloss.NewStyle().Bold(true).Foreground(theme.Text)
	var sb strings.Builder
	for _, r := range in {
		if r.Strong {
			sb.WriteString(strong.Render(r.Text))
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func renderHeading(h format.Heading, opts Options) string {
	width := opts.contentWidth()
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(opts.Theme.Primary).
		Width(width).
		Render(h.Text)

	ruleLen := lipgloss.Width(h.Text)
	if ruleLen > width {
		ruleLen = width
	}
	rule := lipgloss.NewStyle().Foreground(opts.Theme.Border).Render(strings.Repeat("─", ruleLen))
	return title + "\n" + rule
}

func renderCallout(c format.Callout, opts Options) string {
	color := opts.Theme.CalloutColor(c.Type)
	label := lipgloss.NewStyle().Bold(true).Foreground(color).Render(c.Type.Marker() + " " + c.Type.Label())

	box := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1).
		Width(opts.contentWidth() - 1)
	return box.Render(label + "\n" + inline(c.Text, opts.Theme))
}

func renderList(items []format.Inline, marker func(int) string, opts Options) string {
	markerWidth := 0
	for i := range items {
		if w := lipgloss.Width(marker(i)); w > markerWidth {
			markerWidth = w
		}
	}

	markerStyle := lipgloss.NewStyle().Foreground(opts.Theme.Primary).Width(markerWidth).Align(lipgloss.Right)
	itemWidth := opts.contentWidth() - markerWidth - 1
	itemStyle := lipgloss.NewStyle().Width(itemWidth)

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top,
			markerStyle.Render(marker(i)),
			" ",
			itemStyle.Render(inline(item, opts.Theme)),
		)
	}
	return strings.Join(lines, "\n")
}

func renderTable(t format.Table, opts Options) (string, error) {
	out, err := Markdown(tableMarkdown(t), opts)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// markdownPunct are the characters glamour would read as markup in a cell
const markdownPunct = "\\`*_{}[]()<>#+-.!|~&"

// escapeCell backslash-escapes markup so cells render as literal text.
func escapeCell(cell string) string {
	if !strings.ContainsAny(cell, markdownPunct) {
		return cell
	}
	var sb strings.Builder
	for _, r := range cell {
		if strings.ContainsRune(markdownPunct, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// tableMarkdown writes t back as a pipe table, padding short rows. Cell
// text is escaped: tables carry no inline emphasis.
func tableMarkdown(t format.Table) string {
	cols := t.Columns()
	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = escapeCell(cells[i])
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(t.Header)
	sb.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
	for _, row := range t.Rows {
		writeRow(row)
	}
	return sb.String()
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
