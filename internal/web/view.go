package web

import (
	"time"

	"github.com/diogo/bharatgpt/internal/chat"
	"github.com/diogo/bharatgpt/internal/format"
	"github.com/diogo/bharatgpt/internal/models"
)

// pageData feeds templates/index.html
type pageData struct {
	Title       string
	Subtitle    string
	Placeholder string
	Footer      string
	Copyright   string

	FontSize    string
	HeadingSize string
	FontAtMin   bool
	FontAtMax   bool
	Loading     bool
	Messages    []messageView
}

type messageView struct {
	User    bool
	Content string
	Blocks  []blockView
}

// blockView flattens a format.Block for the template, which cannot switch
// on concrete types.
type blockView struct {
	Kind    string
	Text    string
	Inline  format.Inline
	Items   []format.Inline
	Table   format.Table
	Callout calloutView
}

type calloutView struct {
	Class string
	Icon  string
	Label string
}

func newPageData(ctrl *chat.Controller) pageData {
	font := ctrl.Font()
	data := pageData{
		Title:       chat.Title,
		Subtitle:    chat.Subtitle,
		Placeholder: chat.Placeholder,
		Footer:      chat.FooterText,
		Copyright:   chat.Copyright,
		FontSize:    font.Px(),
		HeadingSize: font.Heading().Px(),
		FontAtMin:   font.AtMin(),
		FontAtMax:   font.AtMax(),
		Loading:     ctrl.Loading(),
	}

	for _, msg := range ctrl.Messages() {
		mv := messageView{User: msg.IsUser(), Content: msg.Content}
		if !msg.IsUser() {
			mv.Blocks = blockViews(format.Format(msg.Content))
		}
		data.Messages = append(data.Messages, mv)
	}
	return data
}

func blockViews(blocks []format.Block) []blockView {
	out := make([]blockView, 0, len(blocks))
	for _, b := range blocks {
		v := blockView{Kind: string(b.Kind())}
		switch b := b.(type) {
		case format.Table:
			v.Table = b
		case format.Heading:
			v.Text = b.Text
		case format.Callout:
			v.Inline = b.Text
			v.Callout = calloutView{
				Class: "callout-" + b.Type.String(),
				Icon:  b.Type.Marker(),
				Label: b.Type.Label(),
			}
		case format.BulletList:
			v.Items = b.Items
		case format.NumberedList:
			v.Items = b.Items
		case format.Paragraph:
			v.Inline = b.Text
		}
		out = append(out, v)
	}
	return out
}

// apiMessage is the JSON form of a message
type apiMessage struct {
	Role      models.Role     `json:"role"`
	Content   string          `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
	Blocks    []format.Tagged `json:"blocks,omitempty"`
}

func newAPIMessage(msg models.Message) apiMessage {
	out := apiMessage{Role: msg.Role, Content: msg.Content, Timestamp: msg.Timestamp}
	if !msg.IsUser() {
		out.Blocks = format.Tag(format.Format(msg.Content))
	}
	return out
}

// apiState is the JSON form of a session
type apiState struct {
	State    string       `json:"state"`
	Loading  bool         `json:"loading"`
	FontSize int          `json:"font_size"`
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
}

func newAPIState(ctrl *chat.Controller, model string) apiState {
	msgs := ctrl.Messages()
	state := apiState{
		State:    ctrl.State().String(),
		Loading:  ctrl.Loading(),
		FontSize: int(ctrl.Font()),
		Model:    model,
		Messages: make([]apiMessage, len(msgs)),
	}
	for i, m := range msgs {
		state.Messages[i] = newAPIMessage(m)
	}
	return state
}
