package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/components/transcript"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// chromeHeight is the rows used by the title, input box and status bar.
const chromeHeight = 6

const helpText = `Commands:
  /ingest <text>   add text to the index
  /model <name>    use a different model (empty resets)
  /clear           clear the transcript
  /help            show this help
  /quit            exit`

// App is the chat TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.ChatInput
	transcript *transcript.Transcript
	status     *status.Bar

	// model overrides the configured generation model when set.
	model string

	// pending is true while a request is in flight.
	pending bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingAskService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		input:      input.NewChatInput(s),
		transcript: transcript.New(s),
		status:     status.NewBar(s, km),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithModel sets the initial model override.
func (a *App) WithModel(model string) *App {
	a.model = model
	a.status.SetModel(model)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.input.Init(),
		a.status.Init(),
		tea.SetWindowTitle("sercha-rag"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.QuestionSubmitted:
		return a, a.ask(msg.Question)

	case messages.AnswerReceived:
		a.pending = false
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.status.Clear()
		a.transcript.Append(transcript.Entry{
			Role:    transcript.RoleAssistant,
			Text:    msg.Answer.Response,
			Model:   msg.Answer.Model,
			Context: msg.Answer.Context,
		})
		return a, nil

	case messages.IngestCompleted:
		a.pending = false
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.status.Clear()
		text := fmt.Sprintf("Ingested %d chunk(s) as %s.", msg.Result.ChunkCount, msg.Result.IngestionID)
		a.transcript.Append(transcript.Entry{Role: transcript.RoleSystem, Text: text})
		a.status.SetMessage(text)
		return a, nil

	case messages.ModelChanged:
		a.model = msg.Model
		a.status.SetModel(msg.Model)
		text := "Using the configured model."
		if msg.Model != "" {
			text = "Using model " + msg.Model + "."
		}
		a.transcript.Append(transcript.Entry{Role: transcript.RoleSystem, Text: text})
		return a, nil

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.status, cmd = a.status.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.transcript, cmd = a.transcript.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Send):
		return a, a.submit()
	case key.Matches(msg, a.keymap.ScrollUp):
		a.transcript.ScrollUp()
		return a, nil
	case key.Matches(msg, a.keymap.ScrollDown):
		a.transcript.ScrollDown()
		return a, nil
	case key.Matches(msg, a.keymap.ToggleContext):
		a.transcript.ToggleContext()
		return a, nil
	case key.Matches(msg, a.keymap.Clear):
		a.transcript.Clear()
		a.status.Clear()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit consumes the input line as a question or a slash command.
func (a *App) submit() tea.Cmd {
	line := strings.TrimSpace(a.input.Value())
	if line == "" {
		return nil
	}
	if a.pending {
		a.status.SetMessage("Waiting for the previous request")
		return nil
	}
	a.input.Reset()

	if !strings.HasPrefix(line, "/") {
		a.transcript.Append(transcript.Entry{Role: transcript.RoleUser, Text: line})
		return func() tea.Msg { return messages.QuestionSubmitted{Question: line} }
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/quit", "/exit":
		return tea.Quit
	case "/clear":
		a.transcript.Clear()
		a.status.Clear()
		return nil
	case "/help":
		a.transcript.Append(transcript.Entry{Role: transcript.RoleSystem, Text: helpText})
		return nil
	case "/model":
		return func() tea.Msg { return messages.ModelChanged{Model: arg} }
	case "/ingest":
		return a.ingest(arg)
	default:
		a.transcript.Append(transcript.Entry{
			Role: transcript.RoleError,
			Text: fmt.Sprintf("unknown command %s, try /help", name),
		})
		return nil
	}
}

func (a *App) ask(question string) tea.Cmd {
	a.pending = true
	a.err = nil
	a.status.SetState(status.StateThinking)

	ctx, svc := a.ctx, a.ports.Ask
	req := domain.AskRequest{Question: question, Model: a.model}
	return tea.Batch(
		func() tea.Msg {
			answer, err := svc.Ask(ctx, req)
			return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
		},
		a.status.Init(),
	)
}

func (a *App) ingest(text string) tea.Cmd {
	if a.ports.Ingest == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrIngestUnavailable} }
	}
	if text == "" {
		a.transcript.Append(transcript.Entry{Role: transcript.RoleError, Text: "usage: /ingest <text>"})
		return nil
	}

	a.pending = true
	a.err = nil
	a.status.SetState(status.StateThinking)

	ctx, svc := a.ctx, a.ports.Ingest
	return func() tea.Msg {
		result, err := svc.IngestContent(ctx, text, domain.SourceInline)
		return messages.IngestCompleted{Result: result, Err: err}
	}
}

func (a *App) fail(err error) {
	a.err = err
	a.status.SetState(status.StateError)
	a.status.SetMessage(err.Error())
	a.transcript.Append(transcript.Entry{Role: transcript.RoleError, Text: err.Error()})
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("sercha-rag"),
		a.transcript.View(),
		a.input.View(),
		a.status.View(),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Model returns the active model override.
func (a *App) Model() string {
	return a.model
}

// Pending reports whether a request is in flight.
func (a *App) Pending() bool {
	return a.pending
}

// Entries returns the transcript entries.
func (a *App) Entries() []transcript.Entry {
	return a.transcript.Entries()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.input.SetWidth(width)
	a.status.SetWidth(width)
	a.transcript.SetSize(width, height-chromeHeight)
}
