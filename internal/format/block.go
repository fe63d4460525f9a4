package format

// BlockKind names a block variant
type BlockKind string

const (
	KindTable        BlockKind = "table"
	KindHeading      BlockKind = "heading"
	KindCallout      BlockKind = "callout"
	KindBulletList   BlockKind = "bullet_list"
	KindNumberedList BlockKind = "numbered_list"
	KindParagraph    BlockKind = "paragraph"
)

// Block is one formatted unit of an assistant message. The concrete types
// are Table, Heading, Callout, BulletList, NumberedList and Paragraph.
type Block interface {
	Kind() BlockKind
	block()
}

// Table is a pipe-delimited table. Cells carry no inline emphasis.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Heading is a section title. Headings carry no inline emphasis.
type Heading struct {
	Text string `json:"text"`
}

// Callout is one of the five labelled answer sections
type Callout struct {
	Type CalloutKind `json:"type"`
	Text Inline      `json:"text"`
}

// BulletList is an unordered list
type BulletList struct {
	Items []Inline `json:"items"`
}

// NumberedList is an ordered list. Item i is numbered i+1 regardless of
// the numbers used in the source text.
type NumberedList struct {
	Items []Inline `json:"items"`
}

// Paragraph is any section no other rule claims
type Paragraph struct {
	Text Inline `json:"text"`
}

func (Table) Kind() BlockKind        { return KindTable }
func (Heading) Kind() BlockKind      { return KindHeading }
func (Callout) Kind() BlockKind      { return KindCallout }
func (BulletList) Kind() BlockKind   { return KindBulletList }
func (NumberedList) Kind() BlockKind { return KindNumberedList }
func (Paragraph) Kind() BlockKind    { return KindParagraph }

func (Table) block()        {}
func (Heading) block()      {}
func (Callout) block()      {}
func (BulletList) block()   {}
func (NumberedList) block() {}
func (Paragraph) block()    {}

// Columns returns the widest row length, header included
func (t Table) Columns() int {
	n := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

// CalloutKind identifies which answer section a callout belongs to
type CalloutKind int

const (
	Definition CalloutKind = iota
	Eligibility
	Benefits
	Procedure
	Dates
)

type calloutInfo struct {
	name   string
	marker string
	label  string
}

var calloutTable = [...]calloutInfo{
	Definition:  {"definition", "✅", "What is it? | यह क्या है?"},
	Eligibility: {"eligibility", "👥", "Who is eligible? | कौन पात्र है?"},
	Benefits:    {"benefits", "🎁", "Benefits | लाभ"},
	Procedure:   {"procedure", "📝", "How to apply | आवेदन कैसे करें"},
	Dates:       {"dates", "📅", "Important dates | महत्वपूर्ण तिथियाँ"},
}

// CalloutKinds lists the callout kinds in classification order
func CalloutKinds() []CalloutKind {
	return []CalloutKind{Definition, Eligibility, Benefits, Procedure, Dates}
}

func (k CalloutKind) valid() bool {
	return k >= 0 && int(k) < len(calloutTable)
}

// String returns the lower-case kind name
func (k CalloutKind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return calloutTable[k].name
}

// Marker returns the emoji that introduces this kind in model output
func (k CalloutKind) Marker() string {
	if !k.valid() {
		return ""
	}
	return calloutTable[k].marker
}

// Label returns the bilingual section label shown by the shells
func (k CalloutKind) Label() string {
	if !k.valid() {
		return ""
	}
	return calloutTable[k].label
}

// MarshalText encodes the kind by name
func (k CalloutKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// CalloutKindFromMarker returns the kind whose marker prefixes s
func CalloutKindFromMarker(s string) (CalloutKind, bool) {
	for _, k := range CalloutKinds() {
		if len(s) >= len(k.Marker()) && s[:len(k.Marker())] == k.Marker() {
			return k, true
		}
	}
	return 0, false
}

// Tagged pairs a block with its kind name for JSON encoding
type Tagged struct {
	Kind  BlockKind `json:"kind"`
	Block Block     `json:"block"`
}

// Tag wraps each block with its kind
func Tag(blocks []Block) []Tagged {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Tagged, len(blocks))
	for i, b := range blocks {
		out[i] = Tagged{Kind: b.Kind(), Block: b}
	}
	return out
}
