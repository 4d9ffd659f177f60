package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twirc/twirc"
	"github.com/twirc/twirc/handlers"
)

var (
	accent = lipgloss.Color("#A78BFA") // purple
	muted  = lipgloss.Color("#9CA3AF")

	borderColor = lipgloss.Color("#374151")

	chatBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Foreground(lipgloss.Color("#D1D5DB"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(muted).
			Padding(0, 1)

	msgTs     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDE68A"))
	msgUser   = lipgloss.NewStyle().Bold(true)
	msgMod    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34D399"))
	msgAction = lipgloss.NewStyle().Italic(true)
	infoStyle = lipgloss.NewStyle().Foreground(muted)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// eventMsg carries a client event into the bubbletea update loop.
type eventMsg struct {
	event *twirc.Event
}

type model struct {
	width, height int

	chat  viewport.Model
	input textinput.Model

	messages []string
	channel  string

	client *twirc.Client
	events chan *twirc.Event
}

func initialModel(client *twirc.Client, events chan *twirc.Event) model {
	inp := textinput.New()
	inp.Placeholder = "Type a message..."
	inp.Prompt = "> "
	inp.Width = 100
	inp.Focus()

	return model{
		chat:     viewport.New(80, 20),
		input:    inp,
		messages: []string{},
		client:   client,
		events:   events,
	}
}

func waitForEvent(events chan *twirc.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-events}
	}
}

func connect(client *twirc.Client) tea.Cmd {
	return func() tea.Msg {
		if err := client.Connect(); err != nil {
			return eventMsg{event: eventPtr(twirc.NewErrorEvent("connect", err.Error()))}
		}
		return nil
	}
}

func eventPtr(event twirc.Event) *twirc.Event {
	return &event
}

func (m model) Init() tea.Cmd {
	return tea.Batch(connect(m.client), waitForEvent(m.events))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chat.Width = m.width - 2
		m.chat.Height = m.height - 5
		m.updateChat()
		return m, nil

	case eventMsg:
		m.handleEvent(msg.event)
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.client.Destroy()
			return m, tea.Quit

		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line != "" {
				m.client.EmitInput(line, m.channel)
			}
			return m, nil

		case tea.KeyPgUp:
			m.chat.HalfViewUp()
			return m, nil

		case tea.KeyPgDown:
			m.chat.HalfViewDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) handleEvent(event *twirc.Event) {
	if event == nil {
		return
	}

	ts := msgTs.Render(event.Time.Format("15:04"))

	switch event.Name() {

	case "chat.message":
		style := msgUser
		if event.Tags.Bool("mod") {
			style = msgMod
		}

		name := event.Tags.String("displayName")
		if name == "" {
			name = event.Sender.Nick
		}

		if event.IsAction {
			m.appendLine(fmt.Sprintf("%s %s", ts, msgAction.Render(name+" "+event.Text)))
		} else {
			m.appendLine(fmt.Sprintf("%s %s: %s", ts, style.Render(name), event.Text))
		}

	case "chat.whisper":
		name := event.Tags.String("displayName")
		if name == "" {
			name = event.Sender.Nick
		}

		m.appendLine(fmt.Sprintf("%s %s %s", ts, msgMod.Render("[whisper] "+name+":"), event.Text))

	case "chat.join":
		if event.IsSelf {
			m.channel = event.Channel
		}
		m.appendLine(infoStyle.Render(fmt.Sprintf("%s joined #%s", event.Sender.Nick, event.Channel)))

	case "chat.part":
		if event.IsSelf && event.Channel == m.channel {
			m.channel = ""
		}
		m.appendLine(infoStyle.Render(fmt.Sprintf("%s left #%s", event.Sender.Nick, event.Channel)))

	case "chat.notice":
		m.appendLine(infoStyle.Render(fmt.Sprintf("#%s: %s", event.Channel, event.Text)))

	case "chat.hosting":
		if event.Target != "" {
			m.appendLine(infoStyle.Render(fmt.Sprintf("#%s is now hosting %s", event.Channel, event.Target)))
		} else {
			m.appendLine(infoStyle.Render(fmt.Sprintf("#%s stopped hosting", event.Channel)))
		}

	case "chat.clearchat":
		if event.Text != "" {
			m.appendLine(infoStyle.Render(fmt.Sprintf("#%s: chat messages from %s were removed", event.Channel, event.Text)))
		} else {
			m.appendLine(infoStyle.Render(fmt.Sprintf("#%s: chat was cleared", event.Channel)))
		}

	case "client.connecting":
		m.appendLine(infoStyle.Render("Connecting..."))

	case "client.connected":
		m.appendLine(infoStyle.Render("Connected as " + m.client.Username()))

	case "client.close":
		m.appendLine(errorStyle.Render("Disconnected"))

	case "error.connect", "error.network", "error.transport", "error.input":
		m.appendLine(errorStyle.Render(event.Text))
	}
}

func (m *model) appendLine(line string) {
	m.messages = append(m.messages, line)
	if len(m.messages) > 500 {
		m.messages = m.messages[len(m.messages)-500:]
	}

	m.updateChat()
}

func (m *model) updateChat() {
	m.chat.SetContent(strings.Join(m.messages, "\n"))
	m.chat.GotoBottom()
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	chatBox := chatBoxStyle.
		Width(m.chat.Width).
		Height(m.chat.Height).
		Render(m.chat.View())

	inputBox := inputBoxStyle.Width(m.width - 2).Render(m.input.View())

	channel := m.channel
	if channel == "" {
		channel = "(no channel, /join one)"
	} else {
		channel = "#" + channel
	}

	status := statusBarStyle.Width(m.width).Render(
		lipgloss.NewStyle().Foreground(accent).Bold(true).Render(channel) +
			"  " + m.client.Status().String(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, chatBox, inputBox, status)
}

func main() {
	username := flag.String("username", "", "Chat username (blank for an anonymous session)")
	password := flag.String("password", "", "Oauth token, oauth: prefix included (defaults to $TWITCH_OAUTH_TOKEN)")
	join := flag.String("join", "", "Channel to join on connect")
	flag.Parse()

	token := *password
	if token == "" {
		token = os.Getenv("TWITCH_OAUTH_TOKEN")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := twirc.New(ctx, twirc.Config{
		Username: *username,
		Password: token,
	})

	client.AddHandler(handlers.Input)

	events := make(chan *twirc.Event, 100)
	client.AddHandler(func(event *twirc.Event, _ *twirc.Client) {
		select {
		case events <- event:
		default:
		}
	})

	if *join != "" {
		channel := *join
		client.AddHandler(func(event *twirc.Event, client *twirc.Client) {
			if event.Name() == "client.connected" {
				_ = client.Join(channel)
			}
		})
	}

	p := tea.NewProgram(initialModel(client, events), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
	}
}
