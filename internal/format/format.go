// Package format turns the model's markdown-flavoured answer into typed
// blocks: tables, headings, callouts, bullet and numbered lists, and
// paragraphs.
//
// Formatting is pure and total. Any input, however malformed, yields a
// renderable block sequence; unrecognised sections become paragraphs and
// malformed list or table lines are dropped.
package format

import (
	"regexp"
	"strings"
)

// TableScope selects what happens to text around a detected table
type TableScope int

const (
	// TableInline emits the table as one block among the blocks formatted
	// from the text before and after it.
	TableInline TableScope = iota
	// TableOnly emits only the table and discards every other line of
	// the message.
	TableOnly
)

// Options configures Format
type Options struct {
	TableScope TableScope
}

var (
	numberedStart = regexp.MustCompile(`^\d+\.`)
	numberedItem  = regexp.MustCompile(`^\d+\.\s(.*)`)
)

// Format formats text with the default options
func Format(text string) []Block {
	return FormatWithOptions(text, Options{})
}

// FormatWithOptions formats text into blocks in source order
func FormatWithOptions(text string, opts Options) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if strings.Contains(text, "|") {
		lines := strings.Split(text, "\n")
		start, end := tableRegion(lines)
		if start >= 0 {
			table, ok := parseTable(lines[start:end])
			if opts.TableScope == TableOnly {
				if !ok {
					return nil
				}
				return []Block{table}
			}

			var blocks []Block
			blocks = append(blocks, formatSections(strings.Join(lines[:start], "\n"))...)
			if ok {
				blocks = append(blocks, table)
			}
			blocks = append(blocks, formatSections(strings.Join(lines[end:], "\n"))...)
			return blocks
		}
	}

	return formatSections(text)
}

// tableRegion returns the half-open line range of the first run of
// contiguous pipe-containing lines, or -1 when there is none.
func tableRegion(lines []string) (int, int) {
	start := -1
	for i, line := range lines {
		if strings.Contains(line, "|") {
			start = i
			break
		}
	}
	if start < 0 {
		return -1, -1
	}

	end := start
	for end < len(lines) && strings.Contains(lines[end], "|") {
		end++
	}
	return start, end
}

func parseTable(lines []string) (Table, bool) {
	var rows [][]string
	for _, line := range lines {
		cells := splitCells(line)
		if len(cells) == 0 || isSeparatorRow(cells) {
			continue
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return Table{}, false
	}
	return Table{Header: rows[0], Rows: rows[1:]}, true
}

func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// isSeparatorRow reports whether every cell is a markdown alignment cell
// such as "---" or ":--:".
func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !strings.Contains(c, "-") || strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

func formatSections(text string) []Block {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var blocks []Block
	for _, section := range strings.Split(text, "\n\n") {
		section = strings.Trim(section, "\r\n")
		if strings.TrimSpace(section) == "" {
			continue
		}
		blocks = append(blocks, classify(section))
	}
	return blocks
}

func classify(section string) Block {
	if strings.HasPrefix(section, "##") {
		return Heading{Text: strings.TrimSpace(strings.TrimPrefix(section, "##"))}
	}

	if kind, ok := CalloutKindFromMarker(section); ok {
		body := strings.TrimPrefix(section, kind.Marker())
		body = strings.TrimPrefix(body, "\ufe0f")
		return Callout{Type: kind, Text: ParseInline(strings.TrimSpace(body))}
	}

	lines := strings.Split(section, "\n")

	if hasBulletLine(lines) {
		var items []Inline
		for _, line := range lines {
			item := strings.TrimSpace(strings.TrimPrefix(line, "- "))
			if item == "" {
				continue
			}
			items = append(items, ParseInline(item))
		}
		if len(items) > 0 {
			return BulletList{Items: items}
		}
	}

	// First match wins: "1.5 lakh families" is a list with no items.
	if numberedStart.MatchString(section) {
		items := []Inline{}
		for _, line := range lines {
			m := numberedItem.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			items = append(items, ParseInline(strings.TrimSpace(m[1])))
		}
		return NumberedList{Items: items}
	}

	return Paragraph{Text: ParseInline(section)}
}

func hasBulletLine(lines []string) bool {
	for _, line := range lines {
		if strings.HasPrefix(line, "- ") {
			return true
		}
	}
	return false
}
