package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/bharatgpt/internal/chat"
	apierrors "github.com/diogo/bharatgpt/internal/errors"
	"github.com/diogo/bharatgpt/internal/history"
	"github.com/diogo/bharatgpt/internal/logger"
	"github.com/diogo/bharatgpt/internal/models"
	"github.com/diogo/bharatgpt/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	responseMsg struct {
		msg models.Message
	}
	copiedMsg struct {
		err error
	}
	exportedMsg struct {
		path string
		err  error
	}
)

// Exporter writes a transcript to disk
type Exporter interface {
	Save(t *history.Transcript, f history.ExportFormat) (string, error)
}

// Model represents the TUI state
type Model struct {
	ctrl       *chat.Controller
	ctx        context.Context
	modelName  string
	renderOpts render.Options
	exporter   Exporter
	copy       func(string) error

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	ready          bool
	feedback       string
	err            error
	animationFrame int

	// Dimensions
	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithContext sets the context passed to completions
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithRenderOptions sets how answers are rendered
func WithRenderOptions(opts render.Options) Option {
	return func(m *Model) { m.renderOpts = opts }
}

// WithExporter enables Ctrl+S transcript export
func WithExporter(e Exporter) Option {
	return func(m *Model) { m.exporter = e }
}

// WithClipboard replaces the system clipboard writer
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

// NewChatModel creates a new chat TUI model around ctrl
func NewChatModel(ctrl *chat.Controller, modelName string, opts ...Option) Model {
	ta := textarea.New()
	ta.Placeholder = chat.Placeholder
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	m := Model{
		ctrl:       ctrl,
		ctx:        context.Background(),
		modelName:  modelName,
		renderOpts: render.DefaultOptions(),
		copy:       clipboard.WriteAll,
		textarea:   ta,
		spinner:    s,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*300, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 5  // Input panel with border
		statusHeight := 3 // Status bar and two footer lines
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "ctrl+up":
			m.feedback = fmt.Sprintf("Font size %s", m.ctrl.IncreaseFont().Px())
			m.updateViewport()
			return m, nil

		case "ctrl+down":
			m.feedback = fmt.Sprintf("Font size %s", m.ctrl.DecreaseFont().Px())
			m.updateViewport()
			return m, nil

		case "ctrl+y":
			return m, m.copyLastAnswer()

		case "ctrl+s":
			return m, m.export()
		}

	case responseMsg:
		m.updateViewport()
		m.viewport.GotoBottom()

	case copiedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.feedback = "Copied last answer to clipboard"
		}

	case exportedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.feedback = "Saved transcript to " + msg.path
		}

	case spinner.TickMsg:
		if m.ctrl.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.ctrl.Loading() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks.
	// Typing stays live while an answer is pending; only Enter is refused.
	if _, ok := msg.(tea.KeyMsg); ok {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands the input to the controller and starts the completion.
// Blank input and input while busy are ignored and left in the textarea.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.ctrl.Begin(m.textarea.Value())
	if err != nil {
		if !errors.Is(err, apierrors.ErrEmptyInput) && !errors.Is(err, apierrors.ErrBusy) {
			m.err = err
		}
		return m, nil
	}

	m.err = nil
	m.feedback = ""
	m.animationFrame = 0
	m.textarea.Reset()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.complete(req),
		m.spinner.Tick,
		animationTick(),
	)
}

// complete runs the request outside the update loop
func (m Model) complete(req chat.Request) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return responseMsg{msg: ctrl.Run(ctx, req)}
	}
}

func (m Model) copyLastAnswer() tea.Cmd {
	last, ok := m.ctrl.LastAnswer()
	if !ok {
		return nil
	}
	write := m.copy
	return func() tea.Msg {
		return copiedMsg{err: write(last.Content)}
	}
}

func (m Model) export() tea.Cmd {
	if m.exporter == nil {
		return nil
	}
	transcript := history.NewTranscript(m.modelName, m.ctrl.Messages())
	exporter := m.exporter
	return func() tea.Msg {
		path, err := exporter.Save(transcript, history.ExportFormatMarkdown)
		if err != nil {
			logger.ErrorCF("tui", "Transcript export failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return exportedMsg{path: path, err: err}
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	var sections []string

	// Header
	headerContent := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center,
			titleStyle.Render("🇮🇳 "+chat.Title),
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.modelName),
			hintStyle.Render("  •  "),
			subtitleStyle.Render("Font "+m.ctrl.Font().Px()),
		),
		subtitleStyle.Render(chat.Subtitle),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View()))

	// Input
	label := inputLabelStyle.Render("You")
	if m.ctrl.Loading() {
		label = lipgloss.JoinHorizontal(lipgloss.Center, label, "  ", m.renderLoading())
	}
	inputContent := lipgloss.JoinVertical(lipgloss.Left, label, m.textarea.View())
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	} else if m.feedback != "" {
		sections = append(sections, feedbackStyle.Render(m.feedback))
	}

	sections = append(sections, footerStyle.Width(contentWidth).Render(chat.FooterText+"\n"+chat.Copyright))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLoading shows the spinner and three dots filling in turn
func (m Model) renderLoading() string {
	lit := m.animationFrame%3 + 1
	var dots strings.Builder
	for i := 0; i < 3; i++ {
		if i < lit {
			dots.WriteString(loadingStyle.Render("●"))
		} else {
			dots.WriteString(hintStyle.Render("○"))
		}
	}
	text := lipgloss.NewStyle().Foreground(colorText).Render(" " + chat.Title + " is typing ")
	return m.spinner.View() + text + dots.String()
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+↑↓", "Font"},
		{"Ctrl+Y", "Copy"},
		{"Ctrl+S", "Export"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// bubbleWidth is the width of a message bubble for the current font size
func (m Model) bubbleWidth() int {
	return render.WidthForFont(m.viewport.Width-4, int(m.ctrl.Font()))
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.bubbleWidth()
	areaWidth := m.viewport.Width - 2

	for i, msg := range m.ctrl.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.IsUser() {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
			content.WriteString(lipgloss.PlaceHorizontal(areaWidth, lipgloss.Right, block))
		} else {
			label := assistantLabelStyle.Render("✦ " + chat.Title)

			// Content width excludes the bubble's border and padding
			rendered, err := render.Answer(msg.Content, m.renderOpts.WithWidth(bubbleWidth-4))
			if err != nil {
				rendered = msg.Content
			}

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// Run starts the chat interface and blocks until the user quits
func Run(ctrl *chat.Controller, modelName string, opts ...Option) error {
	m := NewChatModel(ctrl, modelName, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
