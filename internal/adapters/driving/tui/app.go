// Package tui implements the interactive chat terminal UI.
// It follows the Elm architecture via Bubbletea: one model, messages
// for completed answers, and a view composed of a history viewport
// and a question input.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sitechat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sitechat/internal/core/domain"
	"github.com/custodia-labs/sitechat/internal/core/ports/driving"
)

// answerMsg carries a completed answer back to the model.
type answerMsg struct {
	answer *domain.Answer
}

// errMsg carries a failed answer back to the model.
type errMsg struct {
	err error
}

// turn is one question/answer exchange shown in the history.
type turn struct {
	question string
	answer   string
	sources  []string
}

// App is the chat TUI model. It implements tea.Model.
type App struct {
	chat driving.ChatService
	ctx  context.Context

	sessionID string
	styles    *styles.Styles

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	turns   []turn
	waiting bool
	err     error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the chat TUI bound to one conversation session.
// A blank sessionID starts a fresh session on the first question.
func NewApp(chat driving.ChatService, sessionID string) *App {
	s := styles.DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask about your sites..."
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &App{
		chat:      chat,
		ctx:       context.Background(),
		sessionID: sessionID,
		styles:    s,
		input:     input,
		spin:      spin,
	}
}

// WithContext sets the context used for answer calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// SessionID returns the session the chat is bound to.
// Empty until the first answer establishes one.
func (a *App) SessionID() string {
	return a.sessionID
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("sitechat"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Title, input box and help line take the rest.
		vpHeight := msg.Height - 6
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !a.ready {
			a.viewport = viewport.New(msg.Width, vpHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = vpHeight
		}
		a.input.Width = msg.Width - 6
		a.viewport.SetContent(a.renderHistory())
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "q":
			if a.input.Value() == "" {
				return a, tea.Quit
			}
		case "enter":
			return a, a.submit()
		}

	case answerMsg:
		a.waiting = false
		a.err = nil
		a.sessionID = msg.answer.SessionID
		last := len(a.turns) - 1
		a.turns[last].answer = msg.answer.Answer
		a.turns[last].sources = msg.answer.Sources
		a.viewport.SetContent(a.renderHistory())
		a.viewport.GotoBottom()
		return a, nil

	case errMsg:
		a.waiting = false
		a.err = msg.err
		// Drop the pending turn so it can be retried.
		a.turns = a.turns[:len(a.turns)-1]
		a.viewport.SetContent(a.renderHistory())
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// submit sends the current input as a question.
func (a *App) submit() tea.Cmd {
	if a.waiting {
		return nil
	}
	question := strings.TrimSpace(a.input.Value())
	if question == "" {
		return nil
	}

	a.input.Reset()
	a.err = nil
	a.waiting = true
	a.turns = append(a.turns, turn{question: question})
	a.viewport.SetContent(a.renderHistory())
	a.viewport.GotoBottom()

	return tea.Batch(a.askCmd(question), a.spin.Tick)
}

// askCmd calls the chat service off the UI loop.
func (a *App) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.chat.Answer(a.ctx, driving.AnswerRequest{
			Question:  question,
			SessionID: a.sessionID,
		})
		if err != nil {
			return errMsg{err: err}
		}
		return answerMsg{answer: answer}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Starting sitechat..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("sitechat"))
	b.WriteString("\n\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")

	if a.waiting {
		b.WriteString(a.spin.View())
		b.WriteString(a.styles.Muted.Render(" thinking..."))
		b.WriteString("\n")
	} else if a.err != nil {
		b.WriteString(a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err)))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("enter: ask • ↑/↓: scroll • esc: quit"))
	return b.String()
}

// renderHistory renders all turns for the viewport.
func (a *App) renderHistory() string {
	if len(a.turns) == 0 {
		return a.styles.Muted.Render("Ask a question about the sites you ingested.")
	}

	var b strings.Builder
	for i, t := range a.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(a.styles.Question.Render("You: " + t.question))
		b.WriteString("\n")
		if t.answer == "" {
			b.WriteString(a.styles.Muted.Render("..."))
			continue
		}
		b.WriteString(a.styles.Answer.Render(t.answer))
		for _, src := range t.sources {
			b.WriteString("\n")
			b.WriteString(a.styles.Source.Render("  " + src))
		}
	}
	return b.String()
}
