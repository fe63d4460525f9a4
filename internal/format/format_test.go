package format

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestFormat_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\n\n", "\r\n"} {
		if got := Format(in); len(got) != 0 {
			t.Errorf("Format(%q) = %#v, want empty", in, got)
		}
	}
}

func TestFormat_DefinitionCallout(t *testing.T) {
	blocks := Format("✅ **Scheme X** is a welfare program.")

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d: %#v", len(blocks), blocks)
	}
	callout, ok := blocks[0].(Callout)
	if !ok {
		t.Fatalf("expected Callout, got %T", blocks[0])
	}
	if callout.Type != Definition {
		t.Errorf("Type = %v, want definition", callout.Type)
	}

	want := Inline{
		{Text: "Scheme X", Strong: true},
		{Text: " is a welfare program."},
	}
	if !reflect.DeepEqual(callout.Text, want) {
		t.Errorf("Text = %#v, want %#v", callout.Text, want)
	}
}

func TestFormat_CalloutKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind CalloutKind
		text string
	}{
		{"✅ Definition text", Definition, "Definition text"},
		{"👥 Farmers with land", Eligibility, "Farmers with land"},
		{"🎁 ₹6000 per year", Benefits, "₹6000 per year"},
		{"📝 Apply online", Procedure, "Apply online"},
		{"📅 Ongoing", Dates, "Ongoing"},
		{"✅️ With variation selector", Definition, "With variation selector"},
		{"👥 Eligible:\n- small farmers\n- tenants", Eligibility, "Eligible:\n- small farmers\n- tenants"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			blocks := Format(tt.in)
			if len(blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(blocks))
			}
			c, ok := blocks[0].(Callout)
			if !ok {
				t.Fatalf("expected Callout, got %T", blocks[0])
			}
			if c.Type != tt.kind {
				t.Errorf("Type = %v, want %v", c.Type, tt.kind)
			}
			if got := c.Text.PlainText(); got != tt.text {
				t.Errorf("Text = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestFormat_TableWithSeparator(t *testing.T) {
	in := "Header|Val\n|---|---|\nA|1\nB|2"
	want := []Block{Table{
		Header: []string{"Header", "Val"},
		Rows:   [][]string{{"A", "1"}, {"B", "2"}},
	}}

	for _, scope := range []TableScope{TableInline, TableOnly} {
		got := FormatWithOptions(in, Options{TableScope: scope})
		if !reflect.DeepEqual(got, want) {
			t.Errorf("scope %d: got %#v, want %#v", scope, got, want)
		}
	}
}

func TestFormat_TableEdgeCells(t *testing.T) {
	in := "| Scheme | Benefit |\n| :--- | ---: |\n| PM-KISAN | ₹6000 |\n| PMAY | Housing |"
	blocks := Format(in)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	table := blocks[0].(Table)
	if !reflect.DeepEqual(table.Header, []string{"Scheme", "Benefit"}) {
		t.Errorf("Header = %v", table.Header)
	}
	if len(table.Rows) != 2 || table.Rows[0][0] != "PM-KISAN" || table.Rows[1][1] != "Housing" {
		t.Errorf("Rows = %v", table.Rows)
	}
	if table.Columns() != 2 {
		t.Errorf("Columns() = %d, want 2", table.Columns())
	}
}

func TestFormat_TableCellsKeepMarkers(t *testing.T) {
	blocks := Format("Name|Note\n**A**|- x")
	table := blocks[0].(Table)

	if table.Rows[0][0] != "**A**" || table.Rows[0][1] != "- x" {
		t.Errorf("table cells should be verbatim, got %v", table.Rows[0])
	}
}

func TestFormat_TableScope(t *testing.T) {
	in := "## Comparison\n\nHere are two schemes:\n| Scheme | Amount |\n|---|---|\n| A | 1 |\nBoth are central schemes.\n\n📝 Apply at the portal."

	t.Run("inline", func(t *testing.T) {
		blocks := Format(in)
		kinds := make([]BlockKind, len(blocks))
		for i, b := range blocks {
			kinds[i] = b.Kind()
		}
		want := []BlockKind{KindHeading, KindParagraph, KindTable, KindParagraph, KindCallout}
		if !reflect.DeepEqual(kinds, want) {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
		if p := blocks[1].(Paragraph); p.Text.PlainText() != "Here are two schemes:" {
			t.Errorf("paragraph before table = %q", p.Text.PlainText())
		}
		if p := blocks[3].(Paragraph); p.Text.PlainText() != "Both are central schemes." {
			t.Errorf("paragraph after table = %q", p.Text.PlainText())
		}
	})

	t.Run("table only", func(t *testing.T) {
		blocks := FormatWithOptions(in, Options{TableScope: TableOnly})
		if len(blocks) != 1 {
			t.Fatalf("expected only the table, got %d blocks", len(blocks))
		}
		if blocks[0].Kind() != KindTable {
			t.Errorf("Kind = %s, want table", blocks[0].Kind())
		}
	})
}

func TestFormat_OnlyFirstTableRegion(t *testing.T) {
	in := "A|B\n1|2\n\nC|D\n3|4"
	blocks := Format(in)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Kind() != KindTable {
		t.Errorf("first block = %s, want table", blocks[0].Kind())
	}
	p, ok := blocks[1].(Paragraph)
	if !ok {
		t.Fatalf("second pipe region should be a paragraph, got %T", blocks[1])
	}
	if p.Text.PlainText() != "C|D\n3|4" {
		t.Errorf("paragraph = %q", p.Text.PlainText())
	}
}

func TestFormat_DegenerateTable(t *testing.T) {
	if got := FormatWithOptions("|\n| |", Options{TableScope: TableOnly}); got != nil {
		t.Errorf("expected no blocks for an empty table, got %#v", got)
	}

	blocks := Format("Intro\n|\nOutro")
	if len(blocks) != 2 {
		t.Fatalf("expected surrounding paragraphs only, got %#v", blocks)
	}
}

func TestFormat_Heading(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"## PM-KISAN", "PM-KISAN"},
		{"### Sub heading  ", "# Sub heading"},
		{"## A ## B", "A ## B"},
		{"##**Bold** stays", "**Bold** stays"},
	}

	for _, tt := range tests {
		blocks := Format(tt.in)
		h, ok := blocks[0].(Heading)
		if !ok {
			t.Fatalf("Format(%q) = %T, want Heading", tt.in, blocks[0])
		}
		if h.Text != tt.want {
			t.Errorf("Format(%q) heading = %q, want %q", tt.in, h.Text, tt.want)
		}
	}

	// A single # is not a heading.
	if Format("# Title")[0].Kind() != KindParagraph {
		t.Error("single # should be a paragraph")
	}
}

func TestFormat_NumberedList(t *testing.T) {
	blocks := Format("1. First **step**\n2. Second step")

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	list, ok := blocks[0].(NumberedList)
	if !ok {
		t.Fatalf("expected NumberedList, got %T", blocks[0])
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}

	wantFirst := Inline{{Text: "First "}, {Text: "step", Strong: true}}
	if !reflect.DeepEqual(list.Items[0], wantFirst) {
		t.Errorf("item 1 = %#v, want %#v", list.Items[0], wantFirst)
	}
	if list.Items[1].PlainText() != "Second step" {
		t.Errorf("item 2 = %q", list.Items[1].PlainText())
	}
}

func TestFormat_NumberedListRenumberAndDrop(t *testing.T) {
	blocks := Format("1. Aadhaar card\n3. Bank passbook\nnot an item\n7.missing space\n10. Photo")
	list := blocks[0].(NumberedList)

	var got []string
	for _, item := range list.Items {
		got = append(got, item.PlainText())
	}
	want := []string{"Aadhaar card", "Bank passbook", "Photo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}
}

func TestFormat_NumberLikeSectionIsList(t *testing.T) {
	blocks := Format("1.5 lakh families benefit every year.")
	list, ok := blocks[0].(NumberedList)
	if !ok {
		t.Fatalf("Kind = %s, want numbered_list", blocks[0].Kind())
	}
	if len(list.Items) != 0 {
		t.Errorf("items = %v, want none", list.Items)
	}
}

func TestFormat_BulletList(t *testing.T) {
	blocks := Format("Documents needed:\n- Aadhaar\n- **Ration card**\n\n- Land records")

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	list := blocks[0].(BulletList)
	if len(list.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(list.Items))
	}
	if list.Items[0].PlainText() != "Documents needed:" {
		t.Errorf("non-bullet line should be kept as an item, got %q", list.Items[0].PlainText())
	}
	if !reflect.DeepEqual(list.Items[2].Strong(), []string{"Ration card"}) {
		t.Errorf("strong runs = %v", list.Items[2].Strong())
	}
	if blocks[1].(BulletList).Items[0].PlainText() != "Land records" {
		t.Error("second section should be its own list")
	}
}

func TestFormat_BulletWinsOverNumbered(t *testing.T) {
	blocks := Format("1. Step one\n- note")
	if blocks[0].Kind() != KindBulletList {
		t.Errorf("Kind = %s, want bullet_list", blocks[0].Kind())
	}
}

func TestFormat_HyphenInsideLineIsParagraph(t *testing.T) {
	blocks := Format("Pradhan Mantri Awas Yojana - Gramin")
	if blocks[0].Kind() != KindParagraph {
		t.Errorf("Kind = %s, want paragraph", blocks[0].Kind())
	}
}

func TestFormat_PriorityOrder(t *testing.T) {
	tests := []struct {
		in   string
		want BlockKind
	}{
		{"## ✅ heading first", KindHeading},
		{"✅ - callout before bullets", KindCallout},
		{"- 1. bullet before numbered", KindBulletList},
		{"Plain text", KindParagraph},
	}
	for _, tt := range tests {
		if got := Format(tt.in)[0].Kind(); got != tt.want {
			t.Errorf("Format(%q) kind = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormat_SourceOrderAndEmptySections(t *testing.T) {
	in := "## Title\n\n\n\n✅ What\r\n\r\n👥 Who\n\n   \n\nClosing line"
	blocks := Format(in)

	want := []BlockKind{KindHeading, KindCallout, KindCallout, KindParagraph}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %#v", len(blocks), len(want), blocks)
	}
	for i, b := range blocks {
		if b.Kind() != want[i] {
			t.Errorf("block %d kind = %s, want %s", i, b.Kind(), want[i])
		}
	}
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"✅ **Scheme X** is a welfare program.",
		"Header|Val\n|---|---|\nA|1\nB|2",
		"## H\n\n- a\n- b\n\n1. x\n2. y\n\nParagraph **bold** and ** unmatched",
	}
	for _, in := range inputs {
		a, b := Format(in), Format(in)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Format(%q) not deterministic", in)
		}
	}
}

func TestCalloutKind(t *testing.T) {
	for _, k := range CalloutKinds() {
		if k.Marker() == "" || k.Label() == "" || k.String() == "unknown" {
			t.Errorf("kind %d missing metadata", k)
		}
		got, ok := CalloutKindFromMarker(k.Marker() + " text")
		if !ok || got != k {
			t.Errorf("CalloutKindFromMarker(%s) = %v, %v", k.Marker(), got, ok)
		}
		text, _ := k.MarshalText()
		if string(text) != k.String() {
			t.Errorf("MarshalText = %s, want %s", text, k.String())
		}
	}

	if CalloutKind(99).String() != "unknown" || CalloutKind(99).Marker() != "" {
		t.Error("out-of-range kind should have no metadata")
	}
	if _, ok := CalloutKindFromMarker("plain"); ok {
		t.Error("plain text should not match a marker")
	}
}

func TestTag_JSON(t *testing.T) {
	if Tag(nil) != nil {
		t.Error("Tag(nil) should be nil")
	}

	data, err := json.Marshal(Tag(Format("📅 Apply by **31 March**")))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	got := string(data)
	for _, want := range []string{`"kind":"callout"`, `"type":"dates"`, `"text":"31 March","strong":true`} {
		if !strings.Contains(got, want) {
			t.Errorf("encoded blocks missing %s: %s", want, got)
		}
	}
}
