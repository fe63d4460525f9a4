package format

import (
	"regexp"
	"strings"
)

// Run is a span of text with uniform emphasis
type Run struct {
	Text   string `json:"text"`
	Strong bool   `json:"strong,omitempty"`
}

// Inline is a sequence of runs making up one text payload
type Inline []Run

// strongPattern matches the shortest **...** pair on a single line.
var strongPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// ParseInline splits s into plain and strong runs. An unmatched ** stays
// in the plain text. Empty runs are omitted and adjacent plain runs merged.
func ParseInline(s string) Inline {
	if s == "" {
		return nil
	}

	var out Inline
	appendRun := func(r Run) {
		if r.Text == "" {
			return
		}
		if n := len(out); n > 0 && !r.Strong && !out[n-1].Strong {
			out[n-1].Text += r.Text
			return
		}
		out = append(out, r)
	}

	last := 0
	for _, m := range strongPattern.FindAllStringSubmatchIndex(s, -1) {
		appendRun(Run{Text: s[last:m[0]]})
		appendRun(Run{Text: s[m[2]:m[3]], Strong: true})
		last = m[1]
	}
	appendRun(Run{Text: s[last:]})

	return out
}

// PlainText joins the runs without emphasis
func (in Inline) PlainText() string {
	return PlainText(in)
}

// Strong returns the text of every strong run, in order
func (in Inline) Strong() []string {
	var out []string
	for _, r := range in {
		if r.Strong {
			out = append(out, r.Text)
		}
	}
	return out
}

// PlainText joins runs without emphasis
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Markdown re-encodes runs with ** around strong spans
func (in Inline) Markdown() string {
	var sb strings.Builder
	for _, r := range in {
		if r.Strong {
			sb.WriteString("**")
			sb.WriteString(r.Text)
			sb.WriteString("**")
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}
