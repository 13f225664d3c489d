package client

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/channel"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/log"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/message"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/metrics"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/session"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Defaults used when no Cfg overrides them.
const (
	DefaultServerAddr  = "127.0.0.1"
	DefaultServerPort  = 2396
	DefaultDialTimeout = 5 * time.Second
)

// DialFunc opens a connection to the server.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Client owns the connection to a game server and the receive loop that
// feeds server messages to the Dispatcher.
type Client struct {
	serverAddr  string
	serverPort  uint16
	dialTimeout time.Duration
	dial        DialFunc

	prompt  Prompt
	game    GameState
	ui      UI
	metrics *metrics.Metrics

	mu      sync.Mutex
	session *session.Session
	sender  Sender
	channel *channel.Channel
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
}

// Cfg configures a Client.
type Cfg func(*Client) error

// WithServerAddr sets the server host to connect to.
func WithServerAddr(addr string) Cfg {
	return func(c *Client) error {
		if addr == "" {
			return errors.New("server address must not be empty")
		}
		c.serverAddr = addr
		return nil
	}
}

// WithServerPort sets the server port to connect to.
func WithServerPort(p uint16) Cfg {
	return func(c *Client) error {
		if p == 0 {
			return errors.New("server port must not be zero")
		}
		c.serverPort = p
		return nil
	}
}

// WithDialTimeout bounds how long Connect waits for the server.
func WithDialTimeout(d time.Duration) Cfg {
	return func(c *Client) error {
		c.dialTimeout = d
		return nil
	}
}

// WithDialer replaces the function used to open connections.
func WithDialer(dial DialFunc) Cfg {
	return func(c *Client) error {
		c.dial = dial
		return nil
	}
}

// WithPrompt sets the collaborator asked for the player's name.
func WithPrompt(p Prompt) Cfg {
	return func(c *Client) error {
		c.prompt = p
		return nil
	}
}

// WithGameState sets the local game model.
func WithGameState(g GameState) Cfg {
	return func(c *Client) error {
		c.game = g
		return nil
	}
}

// WithUI sets the presentation layer.
func WithUI(ui UI) Cfg {
	return func(c *Client) error {
		c.ui = ui
		return nil
	}
}

// WithMetrics records session metrics on m.
func WithMetrics(m *metrics.Metrics) Cfg {
	return func(c *Client) error {
		c.metrics = m
		return nil
	}
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfgs ...Cfg) (*Client, error) {
	client := &Client{
		serverAddr:  DefaultServerAddr,
		serverPort:  DefaultServerPort,
		dialTimeout: DefaultDialTimeout,
	}
	for _, cfg := range cfgs {
		if err := cfg(client); err != nil {
			return nil, errors.Wrap(err, "apply Client cfg failed")
		}
	}
	if client.dial == nil {
		client.dial = (&net.Dialer{}).DialContext
	}
	if client.prompt == nil || client.game == nil || client.ui == nil {
		return nil, errors.New("prompt, game state and UI are required")
	}
	return client, nil
}

// Connect asks for the player's name, dials the server and starts the
// receive loop. If the server cannot be reached it returns a
// *ConnectionError; if Close is called meanwhile it returns
// ErrConnectAborted. Either way the client stays disconnected.
func (c *Client) Connect(ctx context.Context) error {
	if c.live() {
		return ErrAlreadyConnected
	}
	name, err := c.prompt.PlayerName(ctx)
	if err != nil {
		return errors.Wrap(err, "prompt player name failed")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyPlayerName
	}

	c.mu.Lock()
	if c.session != nil && c.session.State() != session.Closed {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	sess := session.New(c.serverAddr, c.serverPort, name)
	if err := sess.Transition(session.Connecting); err != nil {
		c.mu.Unlock()
		return errors.Wrap(err, "start session failed")
	}
	// Close during the dial cancels loopCtx, which also aborts the dial.
	loopCtx, cancelLoop := context.WithCancel(context.Background())
	c.session = sess
	c.channel = nil
	c.cancel = cancelLoop
	c.mu.Unlock()

	fields := logrus.Fields{"session": sess.ID.String(), "addr": sess.Address(), "name": name}
	logger.WithFields(fields).Info("connecting to server")

	dialCtx, cancelDial := context.WithTimeout(ctx, c.dialTimeout)
	defer cancelDial()
	stop := context.AfterFunc(loopCtx, cancelDial)
	defer stop()
	conn, err := c.dial(dialCtx, "tcp", sess.Address())
	if err == nil && loopCtx.Err() != nil {
		_ = conn.Close()
		err = ErrConnectAborted
	}
	if err != nil {
		c.discard(sess, cancelLoop)
		if errors.Is(err, ErrConnectAborted) || loopCtx.Err() != nil {
			return ErrConnectAborted
		}
		return &ConnectionError{Addr: sess.Address(), Err: err}
	}

	ch := channel.New(conn)
	done := make(chan struct{})
	sender := &meteredSender{channel: ch, metrics: c.metrics, session: sess}

	c.mu.Lock()
	if loopCtx.Err() != nil {
		c.mu.Unlock()
		_ = ch.Close()
		c.discard(sess, cancelLoop)
		return ErrConnectAborted
	}
	if err := sess.Transition(session.Connected); err != nil {
		c.mu.Unlock()
		_ = ch.Close()
		c.discard(sess, cancelLoop)
		return errors.Wrap(err, "mark session connected failed")
	}
	c.channel = ch
	c.sender = sender
	c.done = done
	c.err = nil
	c.mu.Unlock()

	c.metrics.SetConnected(true)
	logger.WithFields(fields).Info("connected to server")
	c.ui.Repaint()

	d := NewDispatcher(sess, c.game, c.ui, sender)
	go c.receiveLoop(loopCtx, cancelLoop, sess, ch, d, done)
	return nil
}

// discard forgets a session that never reached Connected.
func (c *Client) discard(sess *session.Session, cancel context.CancelFunc) {
	cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == sess {
		c.session = nil
		c.cancel = nil
	}
}

// receiveLoop reads messages one at a time and dispatches each before
// reading the next, until the channel fails or the client is closed.
func (c *Client) receiveLoop(ctx context.Context, cancel context.CancelFunc, sess *session.Session, ch *channel.Channel, d *Dispatcher, done chan struct{}) {
	defer close(done)
	var cause error
	for {
		msg, err := ch.Receive(ctx)
		if err != nil {
			cause = c.receiveError(ctx, err)
			break
		}
		logger.WithFields(log.MessageToFields(msg)).WithField("session", sess.ID.String()).Debug("received message")
		c.metrics.Received(msg.Kind())

		start := time.Now()
		err = d.Dispatch(msg)
		c.metrics.Dispatched(msg.Kind(), time.Since(start))
		if err != nil {
			cause = errors.Wrapf(err, "dispatch %s failed", msg.Kind())
			break
		}
	}
	c.finish(sess, ch, cancel, cause)
}

// receiveError maps a receive failure to the session's end cause. A local
// Close ends the session without a cause.
func (c *Client) receiveError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	var decodeErr *channel.DecodeError
	if errors.As(err, &decodeErr) {
		c.metrics.ChannelError(metrics.ErrorDecode)
	} else {
		c.metrics.ChannelError(metrics.ErrorClosed)
	}
	return errors.Wrap(err, "receive message failed")
}

// finish tears down sess only. The client may already hold a newer session
// when it runs, so it touches shared fields only while sess is current.
func (c *Client) finish(sess *session.Session, ch *channel.Channel, cancel context.CancelFunc, cause error) {
	cancel()
	_ = ch.Close()

	c.mu.Lock()
	if err := sess.Transition(session.Closed); err != nil {
		logger.WithError(err).Warn("close session failed")
	}
	if c.session == sess {
		c.err = cause
		c.metrics.SetConnected(false)
	}
	c.mu.Unlock()

	entry := logger.WithField("session", sess.ID.String())
	if cause != nil {
		entry.WithError(cause).Warn("session ended")
	} else {
		entry.Info("session closed")
	}
	c.ui.SessionEnded(cause)
}

// Close ends the session, or aborts a Connect still dialing. It does not
// wait for the receive loop; use Done for that. Close is safe to call more
// than once and from UI callbacks.
func (c *Client) Close() error {
	c.mu.Lock()
	cancel, ch := c.cancel, c.channel
	c.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	if ch == nil {
		return nil
	}
	if err := ch.Close(); err != nil {
		return errors.Wrap(err, "close channel failed")
	}
	return nil
}

// Done is closed when the receive loop of the current session has finished.
// It is nil before the first successful Connect.
func (c *Client) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Err returns why the last session ended, or nil if it was closed locally or
// is still running.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// State returns the connection state of the current session.
func (c *Client) State() session.State {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()
	if sess == nil {
		return session.Disconnected
	}
	return sess.State()
}

// PlayerIndex returns the seat the server assigned, or message.NoPlayer.
func (c *Client) PlayerIndex() int {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()
	if sess == nil {
		return message.NoPlayer
	}
	return sess.PlayerIndex()
}

// SessionID returns the identifier of the current session, or uuid.Nil.
func (c *Client) SessionID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return uuid.Nil
	}
	return c.session.ID
}

// Send writes msg to the server from outside the receive loop.
func (c *Client) Send(msg message.Message) error {
	c.mu.Lock()
	sess, sender := c.session, c.sender
	c.mu.Unlock()
	if sess == nil || sender == nil || sess.State() != session.Connected {
		return ErrNotConnected
	}
	return sender.Send(msg)
}

// SendMove plays the cards at the given hand indices. No cards is a pass.
func (c *Client) SendMove(cards []int) error {
	return c.Send(message.NewMove(cards))
}

// SendChat sends a line of chat.
func (c *Client) SendChat(text string) error {
	return c.Send(message.NewChat(text))
}

func (c *Client) live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.State() != session.Closed
}

// meteredSender logs and counts every message written to the channel.
type meteredSender struct {
	channel *channel.Channel
	metrics *metrics.Metrics
	session *session.Session
}

func (s *meteredSender) Send(msg message.Message) error {
	if err := s.channel.Send(msg); err != nil {
		s.metrics.ChannelError(metrics.ErrorSend)
		return err
	}
	s.metrics.Sent(msg.Kind())
	logger.WithFields(log.MessageToFields(msg)).WithField("session", s.session.ID.String()).Debug("sent message")
	return nil
}
