// Package chat implements the conversation state machine shared by the web
// and terminal shells.
//
// A Controller is Idle or AwaitingResponse. Submitting a question while
// Idle records the user message and starts one completion; every such
// question is answered by exactly one assistant message, either the model's
// text or a fixed apology.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	apierrors "github.com/diogo/bharatgpt/internal/errors"
	"github.com/diogo/bharatgpt/internal/logger"
	"github.com/diogo/bharatgpt/internal/models"
	"github.com/diogo/bharatgpt/internal/prompt"
)

// Greeting opens every conversation
const Greeting = "नमस्ते! मैं BharatGPT हूँ। मुझसे भारत सरकार की किसी भी योजना के बारे में पूछें। आप हिंदी या अंग्रेजी में पूछ सकते हैं।\n\n" +
	"Hello! I am BharatGPT. Ask me about any Indian government scheme. You can ask in Hindi or English."

// Apology replaces the answer when the completion fails
const Apology = "I apologize, but I encountered an error. Please try again or check your internet connection."

// Completer turns a prompt into answer text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// State is the controller state
type State int

const (
	Idle State = iota
	AwaitingResponse
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingResponse:
		return "awaiting_response"
	default:
		return "unknown"
	}
}

// Request is an accepted question waiting for its answer
type Request struct {
	ID     uint64
	Query  string
	Prompt string
}

// Controller owns one conversation and its loading state
type Controller struct {
	client  Completer
	name    string
	mu      sync.Mutex
	conv    *Conversation
	state   State
	pending uint64
	nextID  uint64
	font    FontSize
	now     func() time.Time
	wg      sync.WaitGroup
}

// Option configures a Controller
type Option func(*Controller)

// WithFontSize sets the initial font size
func WithFontSize(size FontSize) Option {
	return func(c *Controller) {
		c.font = size.clamp()
	}
}

// WithName tags the controller's log entries, e.g. with a session ID
func WithName(name string) Option {
	return func(c *Controller) {
		c.name = name
	}
}

// WithClock replaces time.Now for message timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates an Idle controller whose log holds the greeting
func NewController(client Completer, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		font:   DefaultFontSize,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.conv = NewConversation(c.message(models.RoleAssistant, Greeting))
	return c
}

func (c *Controller) message(role models.Role, content string) models.Message {
	return models.Message{Role: role, Content: content, Timestamp: c.now()}
}

// Begin accepts input as the next question. It appends the user message
// and enters AwaitingResponse. Blank input returns ErrEmptyInput and a
// pending request returns ErrBusy; neither changes any state.
func (c *Controller) Begin(input string) (Request, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return Request{}, apierrors.ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == AwaitingResponse {
		return Request{}, apierrors.ErrBusy
	}

	c.nextID++
	req := Request{ID: c.nextID, Query: query, Prompt: prompt.Build(query)}
	c.conv.Append(c.message(models.RoleUser, query))
	c.state = AwaitingResponse
	c.pending = req.ID

	logger.DebugCF("chat", "Question accepted", map[string]interface{}{
		"session":  c.name,
		"request":  req.ID,
		"question": len(query),
	})

	return req, nil
}

// Resolve records the outcome of req and returns to Idle. A failure is
// logged and answered with Apology. Resolving anything but the pending
// request is ignored and returns false.
func (c *Controller) Resolve(req Request, text string, err error) (models.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != AwaitingResponse || req.ID != c.pending {
		return models.Message{}, false
	}

	content := text
	if err != nil {
		logger.ErrorCF("chat", "Completion failed", map[string]interface{}{
			"session": c.name,
			"request": req.ID,
			"error":   err.Error(),
			"status":  apierrors.GetHTTPStatus(err),
		})
		content = Apology
	}

	msg := c.message(models.RoleAssistant, content)
	c.conv.Append(msg)
	c.state = Idle
	c.pending = 0
	return msg, true
}

// Run performs the completion for req and resolves it
func (c *Controller) Run(ctx context.Context, req Request) models.Message {
	text, err := c.client.Complete(ctx, req.Prompt)
	msg, _ := c.Resolve(req, text, err)
	return msg
}

// Submit begins input and completes it in the background. The returned
// channel yields the assistant message once and is then closed.
func (c *Controller) Submit(ctx context.Context, input string) (<-chan models.Message, error) {
	req, err := c.Begin(input)
	if err != nil {
		return nil, err
	}
	return c.Start(ctx, req), nil
}

// Start runs an accepted request in the background. Wait covers it.
func (c *Controller) Start(ctx context.Context, req Request) <-chan models.Message {
	out := make(chan models.Message, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(out)
		out <- c.Run(ctx, req)
	}()
	return out
}

// Ask begins input and waits for its answer
func (c *Controller) Ask(ctx context.Context, input string) (models.Message, error) {
	req, err := c.Begin(input)
	if err != nil {
		return models.Message{}, err
	}
	return c.Run(ctx, req), nil
}

// Wait blocks until every Submit goroutine has finished
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Messages returns a snapshot of the conversation
func (c *Controller) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Messages()
}

// Len returns the number of messages in the conversation
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Len()
}

// LastAnswer returns the newest assistant message
func (c *Controller) LastAnswer() (models.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.LastAssistant()
}

// Loading reports whether a completion is outstanding
func (c *Controller) Loading() bool {
	return c.State() == AwaitingResponse
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Font returns the current font size
func (c *Controller) Font() FontSize {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.font
}

// IncreaseFont grows the font size by one step and returns it
func (c *Controller) IncreaseFont() FontSize {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.font = c.font.Increment()
	return c.font
}

// DecreaseFont shrinks the font size by one step and returns it
func (c *Controller) DecreaseFont() FontSize {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.font = c.font.Decrement()
	return c.font
}
