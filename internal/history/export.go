package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/diogo/bharatgpt/internal/format"
)

// ExportFormat represents the format for exporting transcripts
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
	ExportFormatHTML     ExportFormat = "html"
)

// ParseExportFormat accepts a format name or common file extension.
// An empty name selects markdown.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return ExportFormatMarkdown, nil
	case "json":
		return ExportFormatJSON, nil
	case "html", "htm":
		return ExportFormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Extension returns the file extension, dot included
func (f ExportFormat) Extension() string {
	switch f {
	case ExportFormatJSON:
		return ".json"
	case ExportFormatHTML:
		return ".html"
	default:
		return ".md"
	}
}

// ContentType returns the MIME type used for downloads
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatJSON:
		return "application/json"
	case ExportFormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Export encodes the transcript in format f
func (t *Transcript) Export(f ExportFormat) ([]byte, error) {
	switch f {
	case ExportFormatMarkdown:
		return []byte(t.Markdown()), nil
	case ExportFormatJSON:
		return t.JSON()
	case ExportFormatHTML:
		return t.HTML(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", f)
	}
}

// Markdown exports the transcript as a markdown document. Message content
// is written verbatim.
func (t *Transcript) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(t.Title)
	sb.WriteString("\n\n")

	sb.WriteString("**Model:** ")
	sb.WriteString(t.Model)
	sb.WriteString("\n")
	sb.WriteString("**Exported:** ")
	sb.WriteString(t.CreatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Messages:** %d", len(t.Messages)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range t.Messages {
		role := "BharatGPT"
		if msg.IsUser() {
			role = "You"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		if !msg.Timestamp.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.Timestamp.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if i < len(t.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

type exportMessage struct {
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	Blocks    []format.Tagged `json:"blocks,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type exportTranscript struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Model     string          `json:"model"`
	CreatedAt time.Time       `json:"created_at"`
	Messages  []exportMessage `json:"messages"`
}

// JSON exports the transcript. Assistant messages carry their formatted
// blocks next to the raw content.
func (t *Transcript) JSON() ([]byte, error) {
	export := exportTranscript{
		ID:        t.ID,
		Title:     t.Title,
		Model:     t.Model,
		CreatedAt: t.CreatedAt,
		Messages:  make([]exportMessage, len(t.Messages)),
	}

	for i, msg := range t.Messages {
		export.Messages[i] = exportMessage{
			Role:      string(msg.Role),
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		}
		if !msg.IsUser() {
			export.Messages[i].Blocks = format.Tag(format.Format(msg.Content))
		}
	}

	return json.MarshalIndent(export, "", "  ")
}

// HTML exports the transcript as a standalone page rendered from its
// markdown. Raw HTML in messages is dropped and links to anything but
// safe schemes are rendered as plain text.
func (t *Transcript) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Title: t.Title,
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage | mdhtml.SkipHTML | mdhtml.HrefTargetBlank |
			mdhtml.Safelink | mdhtml.NofollowLinks | mdhtml.NoreferrerLinks,
	})
	return markdown.ToHTML([]byte(t.Markdown()), p, r)
}
