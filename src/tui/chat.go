// Package tui provides the terminal chat interface for the truck
// finder assistant. It renders a scrollable transcript with inline
// vehicle cards and an input line, talking to the same agent that
// backs the HTTP API.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"truckfinder-agent/src/contracts"
	"truckfinder-agent/src/sanitize"
)

// ChatHandler is the slice of the agent the TUI needs.
type ChatHandler interface {
	HandleMessage(ctx context.Context, sessionID, text string) (*contracts.ChatResponse, error)
}

const (
	// replyTimeout bounds one agent round trip, including tool calls.
	replyTimeout = 2 * time.Minute

	chromeHeight = 6 // title + borders + input + help
	minViewWidth = 40
)

// replyMsg carries the agent's answer back into the update loop.
type replyMsg struct {
	resp *contracts.ChatResponse
	err  error
}

// ChatModel is the Bubble Tea model for the chat session. It keeps
// the transcript as pre-rendered blocks and re-wraps them on resize.
type ChatModel struct {
	chat      ChatHandler
	sessionID string
	styles    *StyleConfig

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	transcript []transcriptBlock
	waiting    bool
	ready      bool
	width      int
	height     int
}

// transcriptBlock is one transcript entry before wrapping: a speaker
// label, the message text, and any vehicle cards under it.
type transcriptBlock struct {
	speaker string
	text    string
	cards   []contracts.VehicleCard
}

// NewChatModel creates the chat model. The session id may be empty;
// the agent assigns one on the first turn and the model adopts it.
func NewChatModel(chat ChatHandler, sessionID string) ChatModel {
	styles := DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask about trucks, trailers, vans..."
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(styles.Primary)

	return ChatModel{
		chat:      chat,
		sessionID: sessionID,
		styles:    styles,
		input:     input,
		spinner:   sp,
		transcript: []transcriptBlock{{
			speaker: "assistant",
			text:    "Hi! I can help you find trucks, trailers and vans from our stock. What are you looking for?",
		}},
	}
}

// Init starts cursor blinking. Required by tea.Model.
func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.transcript = append(m.transcript, transcriptBlock{speaker: "user", text: text})
			m.waiting = true
			m.refreshViewport()
			return m, tea.Batch(m.spinner.Tick, m.send(text))
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.transcript = append(m.transcript, transcriptBlock{
				speaker: "assistant",
				text:    fmt.Sprintf("Something went wrong: %v", msg.err),
			})
		} else {
			m.sessionID = msg.resp.SessionID
			m.transcript = append(m.transcript, transcriptBlock{
				speaker: "assistant",
				text:    sanitize.Strip(msg.resp.Message),
				cards:   msg.resp.Vehicles,
			})
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the transcript viewport, the input line and key hints.
func (m ChatModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.styles.TitleStyle().Render("Truck Finder"))
	b.WriteString("\n")
	b.WriteString(m.styles.ViewportStyle().Render(m.viewport.View()))
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.spinner.View())
		b.WriteString(" thinking...")
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(m.styles.HelpStyle().Render("enter send • ↑/↓ scroll • esc quit"))

	return b.String()
}

// send runs one agent turn off the update loop.
func (m ChatModel) send(text string) tea.Cmd {
	chat, sessionID := m.chat, m.sessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()

		resp, err := chat.HandleMessage(ctx, sessionID, text)
		return replyMsg{resp: resp, err: err}
	}
}

// resize recomputes the viewport geometry and re-wraps the transcript.
func (m *ChatModel) resize() {
	width := m.width - 4
	if width < minViewWidth {
		width = minViewWidth
	}
	height := m.height - chromeHeight
	if height < 4 {
		height = 4
	}

	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.input.Width = width
	m.refreshViewport()
}

// refreshViewport re-renders the transcript into the viewport and
// pins it to the bottom.
func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript(m.viewport.Width))
	m.viewport.GotoBottom()
}

// renderTranscript wraps every block to the given width. Styled lines
// are measured with ANSI sequences excluded, so colored labels do not
// throw the wrapping off.
func (m ChatModel) renderTranscript(width int) string {
	var blocks []string
	for _, block := range m.transcript {
		blocks = append(blocks, m.renderBlock(block, width))
	}
	return strings.Join(blocks, "\n\n")
}

func (m ChatModel) renderBlock(block transcriptBlock, width int) string {
	label := "You"
	color := m.styles.UserColor
	if block.speaker == "assistant" {
		label = "Finder"
		color = m.styles.AssistantColor
	}

	rendered := m.styles.SpeakerStyle(color).Render(label + ":")
	indent := ansi.StringWidth(rendered) + 1

	body := Wrap(block.text, width-indent)
	lines := strings.Split(body, "\n")

	var b strings.Builder
	b.WriteString(rendered)
	b.WriteString(" ")
	pad := strings.Repeat(" ", indent)
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(pad)
		}
		b.WriteString(line)
	}

	if cards := m.renderCards(block.cards, width); cards != "" {
		b.WriteString("\n")
		b.WriteString(cards)
	}
	return b.String()
}

// Start runs the chat UI until the user quits.
func Start(chat ChatHandler, sessionID string) error {
	p := tea.NewProgram(NewChatModel(chat, sessionID), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
