package twirc

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/twirc/twirc/ircutil"
	"github.com/twirc/twirc/tag"
	"github.com/twirc/twirc/transport"
)

// requestedCaps are the protocol extensions negotiated at the start of
// every connection: typed tags, the service's extended commands, and
// join/part membership events.
var requestedCaps = []string{
	"twitch.tv/tags",
	"twitch.tv/commands",
	"twitch.tv/membership",
}

// A Status is a connection lifecycle state.
type Status int

// The connection lifecycle. Disconnected is both the initial state and
// re-entered after every close.
const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusOpen
	StatusReady
	StatusClosing
)

func (status Status) String() string {
	switch status {
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	case StatusReady:
		return "ready"
	case StatusClosing:
		return "closing"
	default:
		return "disconnected"
	}
}

// A Client is a chat client. You need to use New to construct it.
type Client struct {
	config Config

	mutex  sync.RWMutex
	conn   transport.Conn
	status Status
	ctx    context.Context
	cancel context.CancelFunc

	events chan *Event
	sends  chan string

	globalUserState tag.Map
	channels        map[string]*Channel

	handlers []Handler
}

// New creates a new client. The context can be context.Background if you
// want to manually tear down clients upon quitting.
func New(ctx context.Context, config Config) *Client {
	client := &Client{
		config: config.WithDefaults(),
		events: make(chan *Event, 64),
		sends:  make(chan string, 64),
		channels: map[string]*Channel{
			// The service's control pseudo-channel is always present.
			"jtv": newChannel("jtv"),
		},
	}

	client.ctx, client.cancel = context.WithCancel(ctx)

	go client.handleEventLoop()
	go client.handleSendLoop()

	return client
}

// Context gets the client's context. It's cancelled if the parent context
// used in New is, or Destroy is called.
func (client *Client) Context() context.Context {
	return client.ctx
}

// Username gets the login name the client connects as.
func (client *Client) Username() string {
	return client.config.Username
}

// Status gets the connection lifecycle state.
func (client *Client) Status() Status {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.status
}

// Connected returns true if the client has a live connection.
func (client *Client) Connected() bool {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.conn != nil
}

// Ready returns true once the service's welcome burst has been observed,
// which is later than the socket opening.
func (client *Client) Ready() bool {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.status == StatusReady
}

// GlobalUserState returns a copy of the session-wide user state tags, nil
// until the service has sent them.
func (client *Client) GlobalUserState() tag.Map {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.globalUserState.Clone()
}

// Channel gets an observed channel's state by name or key, nil if the
// channel has never been observed.
func (client *Client) Channel(name string) *Channel {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.channels[ircutil.Username(name)]
}

// ChannelNames lists every observed channel key, sorted. Entries are never
// removed on part, so this is "ever observed", not current membership.
func (client *Client) ChannelNames() []string {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.channelNamesLocked()
}

// Connect dials the configured endpoint and starts the registration burst.
// It fails with ErrAlreadyConnected while a live connection exists, whether
// it is still connecting or open, without any side effects.
func (client *Client) Connect() error {
	client.mutex.Lock()
	if client.conn != nil || client.status != StatusDisconnected {
		client.mutex.Unlock()
		return ErrAlreadyConnected
	}
	client.status = StatusConnecting
	client.mutex.Unlock()

	client.EmitSync(context.Background(), NewEvent("client", "connecting"))

	conn, err := transport.Dial(client.ctx, transport.Config{
		Protocol:            client.config.Protocol,
		Host:                client.config.Host,
		Port:                client.config.Port,
		SkipTLSVerification: client.config.SkipTLSVerification,
	})
	if err != nil {
		client.mutex.Lock()
		client.status = StatusDisconnected
		client.mutex.Unlock()

		client.EmitNonBlocking(NewErrorEvent("connect", err.Error()))
		return err
	}

	client.mutex.Lock()
	client.conn = conn
	client.status = StatusOpen
	client.mutex.Unlock()

	client.Emit(NewEvent("client", "connect"))

	go client.handleReadLoop(conn)

	return nil
}

// Disconnect requests a disconnect. It will either return the close error,
// or ErrAlreadyClosed if there is no live connection. The close completes
// asynchronously with a client.close event once the transport confirms it.
func (client *Client) Disconnect() error {
	client.mutex.Lock()
	conn := client.conn
	if conn == nil {
		client.mutex.Unlock()
		return ErrAlreadyClosed
	}
	client.status = StatusClosing
	client.mutex.Unlock()

	return conn.Close()
}

// Send sends a line to the server. It returns ErrNotConnected when no live
// transport is attached.
func (client *Client) Send(line string) error {
	client.mutex.RLock()
	conn := client.conn
	client.mutex.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	err := conn.WriteLine(line)
	if err != nil {
		client.EmitNonBlocking(NewErrorEvent("network", err.Error()))
		_ = client.Disconnect()
	}

	return err
}

// Sendf is Send with a fmt.Sprintf.
func (client *Client) Sendf(format string, a ...interface{}) error {
	return client.Send(fmt.Sprintf(format, a...))
}

// SendQueued appends a line to the outbound queue. Unlike Send it never
// blocks the caller; ordering against other queued sends is kept, and
// failed sends are discarded quietly. There is no rate limiting: pacing
// belongs to the transport, not the engine.
func (client *Client) SendQueued(line string) {
	select {
	case client.sends <- line:
	default:
		go func() { client.sends <- line }()
	}
}

// SendQueuedf is SendQueued with a fmt.Sprintf.
func (client *Client) SendQueuedf(format string, a ...interface{}) {
	client.SendQueued(fmt.Sprintf(format, a...))
}

// AddHandler subscribes a handler to every event passing through the
// client. Handlers run on the event loop goroutine in registration order,
// after the client's own handling.
func (client *Client) AddHandler(handler Handler) {
	client.mutex.Lock()
	client.handlers = append(client.handlers, handler)
	client.mutex.Unlock()
}

// Emit sends an event through the client's event loop. It will return
// immediately unless the internal channel is filled up. The returned
// context can be used to wait for the event, or the client's destruction.
func (client *Client) Emit(event Event) context.Context {
	event.ctx, event.cancel = context.WithCancel(client.ctx)
	client.events <- &event

	return event.ctx
}

// EmitNonBlocking is just like Emit, but it will spin off a goroutine if
// the channel is full. This lets it be called from other handlers without
// ever blocking. See Emit for what the returned context is for.
func (client *Client) EmitNonBlocking(event Event) context.Context {
	event.ctx, event.cancel = context.WithCancel(client.ctx)

	select {
	case client.events <- &event:
	default:
		go func() { client.events <- &event }()
	}

	return event.ctx
}

// EmitSync emits an event and waits for either its context to complete or
// the one passed to it (e.g. a request's context).
func (client *Client) EmitSync(ctx context.Context, event Event) (err error) {
	eventCtx := client.Emit(event)

	select {
	case <-eventCtx.Done():
		if err := eventCtx.Err(); err != context.Canceled {
			return err
		}

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EmitInput parses an input line and emits it bound to the channel key.
func (client *Client) EmitInput(line, channel string) context.Context {
	event := ParseInput(line)
	event.Channel = ircutil.Username(channel)

	return client.Emit(event)
}

// Destroy destroys the client, which will lead to a disconnect. Cancelling
// the parent context will do the same.
func (client *Client) Destroy() {
	_ = client.Disconnect()
	client.cancel()
	close(client.sends)
	close(client.events)
}

// Destroyed returns true if the client has been destroyed, either by
// Destroy or the parent context.
func (client *Client) Destroyed() bool {
	select {
	case <-client.ctx.Done():
		return true
	default:
		return false
	}
}

func (client *Client) handleEventLoop() {
	for {
		select {
		case event, ok := <-client.events:
			if !ok {
				goto end
			}

			client.handleEvent(event)
			client.fanout(event)

			event.cancel()
		case <-client.ctx.Done():
			goto end
		}
	}

end:
	_ = client.Disconnect()

	event := NewEvent("client", "destroy")
	event.ctx, event.cancel = context.WithCancel(context.Background())

	client.fanout(&event)
	event.cancel()
}

func (client *Client) handleSendLoop() {
	for line := range client.sends {
		_ = client.Send(line)
	}
}

func (client *Client) handleReadLoop(conn transport.Conn) {
	for {
		chunk, err := conn.ReadChunk()
		if err != nil {
			code, reason := transport.CloseInfo(err)

			client.mutex.Lock()
			closing := client.status == StatusClosing
			client.conn = nil
			client.status = StatusDisconnected
			client.mutex.Unlock()

			if !closing && !transport.IsNormalClose(err) {
				client.EmitNonBlocking(NewErrorEvent("transport", err.Error()))
			}

			event := NewEvent("client", "close")
			event.Code = code
			event.Reason = reason
			client.EmitNonBlocking(event)

			return
		}

		client.handleRawChunk(chunk)
	}
}

// handleRawChunk splits a transport chunk into lines and emits each decoded
// frame in arrival order. Emit keeps channel order and the event loop
// finishes each frame's side effects before the next one, which later
// frames may depend on.
func (client *Client) handleRawChunk(chunk string) {
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		event, err := ParsePacket(line)
		if err != nil {
			continue
		}

		client.Emit(event)
	}
}

func (client *Client) fanout(event *Event) {
	client.mutex.RLock()
	handlers := client.handlers
	client.mutex.RUnlock()

	for _, handler := range handlers {
		if event.killed {
			break
		}

		handler(event, client)
	}
}

// channelOrCreate returns the channel entry for the key, creating it on
// first contact.
func (client *Client) channelOrCreate(name string) *Channel {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	channel := client.channels[name]
	if channel == nil {
		channel = newChannel(name)
		client.channels[name] = channel
	}

	return channel
}

// handleEvent is always first and gets to break a few rules.
func (client *Client) handleEvent(event *Event) {
	switch event.Name() {

	// Client registration. The capability request goes out before the
	// identity lines, so the welcome burst already carries tags.
	case "client.connect":
		_ = client.Send("CAP REQ :" + strings.Join(requestedCaps, " "))

		if client.config.Password != "" {
			_ = client.Sendf("PASS %s", client.config.Password)
		}

		_ = client.Sendf("NICK %s", client.config.Username)
		_ = client.Sendf("USER %s 8 * :%s", client.config.Username, client.config.Username)

	// Ping Pong
	case "packet.ping":
		_ = client.Pong(event.Arg(0))
		client.EmitNonBlocking(NewEvent("client", "ping"))

	// The service's MOTD is the real "connection ready" signal; the
	// socket opening is not.
	case "packet.372":
		client.mutex.Lock()
		ready := client.status == StatusReady
		if !ready {
			client.status = StatusReady
		}
		client.mutex.Unlock()

		if !ready {
			client.EmitNonBlocking(NewEvent("client", "connected"))
		}

	case "packet.privmsg":
		client.handleChatMessage(event, "message")

	case "packet.whisper":
		client.handleChatMessage(event, "whisper")

	case "packet.roomstate":
		channel := client.channelOrCreate(event.Channel)
		channel.handle(event, client)

		state := NewEvent("chat", "roomstate")
		state.Channel = event.Channel
		state.Tags = channel.RoomState()
		client.EmitNonBlocking(state)

	case "packet.userstate":
		channel := client.channelOrCreate(event.Channel)
		channel.handle(event, client)

		state := NewEvent("chat", "userstate")
		state.Channel = event.Channel
		state.Tags = channel.UserState()
		client.EmitNonBlocking(state)

	case "packet.globaluserstate":
		client.mutex.Lock()
		client.globalUserState = event.Tags.Clone()
		client.mutex.Unlock()

		state := NewEvent("chat", "globaluserstate")
		state.Tags = event.Tags.Clone()
		client.EmitNonBlocking(state)

	case "packet.join", "packet.part":
		member := NewEvent("chat", event.verb)
		member.Channel = event.Channel
		member.Sender = event.Sender
		member.IsSelf = strings.EqualFold(event.Sender.Nick, client.config.Username)
		client.EmitNonBlocking(member)

	case "packet.mode":
		channel := client.channelOrCreate(event.Channel)
		channel.handle(event, client)

	case "packet.hosttarget":
		// The hosted target is the first token of the second parameter;
		// "-" or nothing means hosting stopped.
		target := ""
		if fields := strings.Fields(event.Arg(1)); len(fields) > 0 && fields[0] != "-" {
			target = fields[0]
		}
		event.Target = target

		channel := client.channelOrCreate(event.Channel)
		channel.handle(event, client)

		hosting := NewEvent("chat", "hosting")
		hosting.Channel = event.Channel
		hosting.Target = target
		client.EmitNonBlocking(hosting)

	case "packet.notice":
		client.handleNotice(event)

	case "packet.clearchat":
		cleared := NewEvent("chat", "clearchat")
		cleared.Channel = event.Channel
		cleared.Tags = event.Tags
		cleared.Text = event.Text // the timed-out or banned username, if any
		client.EmitNonBlocking(cleared)

	case "packet.reconnect":
		// The service asks for a reconnect; policy stays with the caller.
		client.EmitNonBlocking(NewEvent("chat", "reconnect"))

	default:
		if event.kind != "packet" || ignoredCommands[event.Command] {
			break
		}

		unknown := NewEvent("client", "unknowncommand")
		unknown.Command = CommandName(event.Command)
		unknown.Params = event.Params
		unknown.Tags = event.Tags
		unknown.Sender = event.Sender
		unknown.Channel = event.Channel
		unknown.Raw = event.Raw
		client.EmitNonBlocking(unknown)
	}
}

// handleChatMessage turns a privmsg or whisper frame into its chat event,
// building the sender's user state from the frame tags.
func (client *Client) handleChatMessage(event *Event, verb string) {
	userstate := event.Tags.Clone()
	if userstate == nil {
		userstate = make(tag.Map, 2)
	}
	userstate["username"] = event.Sender.Nick
	if userstate.String("displayName") == "" {
		userstate["displayName"] = event.Sender.Nick
	}

	text, isAction := ircutil.ParseAction(event.Text)

	message := NewEvent("chat", verb)
	message.Channel = event.Channel
	message.Sender = event.Sender
	message.Tags = userstate
	message.Text = text
	message.IsAction = isAction
	message.IsSelf = strings.EqualFold(event.Sender.Nick, client.config.Username)
	client.EmitNonBlocking(message)
}

func (client *Client) debugln(v ...interface{}) {
	if client.config.Debug != nil {
		client.config.Debug.Println(v...)
	}
}
