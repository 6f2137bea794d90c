package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/niri-mirror/internal/logging"
	"github.com/yourusername/niri-mirror/internal/models"
)

const (
	// SocketEnv names the environment variable holding the compositor socket path
	SocketEnv = "NIRI_SOCKET"

	DefaultConnectTimeout = time.Second
	DefaultReplyTimeout   = time.Second

	readBufferSize = 64 * 1024
)

// EventSink receives decoded events on the goroutine running Client.Run
type EventSink interface {
	HandleEvent(ev models.Event)
}

// EventSinkFunc adapts a function to EventSink
type EventSinkFunc func(ev models.Event)

func (f EventSinkFunc) HandleEvent(ev models.Event) {
	f(ev)
}

// Hooks are optional connection lifecycle callbacks
type Hooks struct {
	OnConnected    func()
	OnDisconnected func()
	OnError        func(err error)
}

// Options configures a Client
type Options struct {
	// SocketPath overrides $NIRI_SOCKET when set
	SocketPath     string
	ConnectTimeout time.Duration
	ReplyTimeout   time.Duration
	Hooks          Hooks
}

// Client holds the event stream connection and the request connection
type Client struct {
	opts Options

	// reqMu serializes request/reply exchanges. Lock order: reqMu then mu.
	reqMu sync.Mutex
	mu    sync.Mutex

	socketPath string
	events     *Connection
	requests   *Connection
	connected  bool
}

// NewClient creates a disconnected client
func NewClient(opts Options) *Client {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	if opts.ReplyTimeout <= 0 {
		opts.ReplyTimeout = DefaultReplyTimeout
	}
	return &Client{opts: opts}
}

// SocketPath returns the endpoint used by the last successful Connect
func (c *Client) SocketPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.socketPath
}

// Connect opens the event and request connections and subscribes to the
// event stream. On failure both connections are closed and the client stays
// disconnected.
func (c *Client) Connect(ctx context.Context) error {
	path := c.opts.SocketPath
	if path == "" {
		path = os.Getenv(SocketEnv)
	}
	if path == "" {
		c.reportError(models.ErrEndpointUnset)
		return models.ErrEndpointUnset
	}

	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return nil
	}

	events := NewConnection(path, c.opts.ConnectTimeout)
	if err := events.Connect(ctx); err != nil {
		c.mu.Unlock()
		c.reportError(err)
		return err
	}

	requests := NewConnection(path, c.opts.ConnectTimeout)
	if err := requests.Connect(ctx); err != nil {
		events.Close()
		c.mu.Unlock()
		c.reportError(err)
		return err
	}

	if err := events.WriteFrame([]byte(models.EventStreamRequest)); err != nil {
		events.Close()
		requests.Close()
		c.mu.Unlock()
		err = fmt.Errorf("failed to subscribe to event stream: %w", err)
		c.reportError(err)
		return err
	}

	c.socketPath = path
	c.events = events
	c.requests = requests
	c.connected = true
	c.mu.Unlock()

	logging.Info().Str("socket", path).Msg("connected to compositor")
	if c.opts.Hooks.OnConnected != nil {
		c.opts.Hooks.OnConnected()
	}
	return nil
}

// IsConnected reports whether the event stream is up and commands can be
// sent. The request connection itself is opened per command and closed after
// the reply, so it is usually down between commands.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close closes both connections. Closing is deliberate and does not fire
// OnDisconnected.
func (c *Client) Close() error {
	c.reqMu.Lock()
	defer c.reqMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.connected = false
	return c.closeConnections()
}

func (c *Client) closeConnections() error {
	var errs []error
	if c.events != nil {
		errs = append(errs, c.events.Close())
	}
	if c.requests != nil {
		errs = append(errs, c.requests.Close())
	}
	return errors.Join(errs...)
}

// Run reads the event stream until ctx is cancelled or the connection is
// lost, handing every decoded event to sink on the calling goroutine.
// Cancellation closes the client and returns ctx.Err(). Connection loss fires
// OnDisconnected once and returns an error wrapping ErrDisconnected.
func (c *Client) Run(ctx context.Context, sink EventSink) error {
	c.mu.Lock()
	var conn net.Conn
	if c.connected && c.events != nil {
		conn = c.events.netConn()
	}
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("run: %w", models.ErrDisconnected)
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	var lines LineBuffer
	buf := make([]byte, readBufferSize)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			for _, frame := range lines.Append(buf[:n]) {
				c.dispatch(frame, sink)
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				c.Close()
				return ctx.Err()
			}
			c.handleLoss(err)
			return fmt.Errorf("%w: %v", models.ErrDisconnected, err)
		}
	}
}

func (c *Client) dispatch(frame []byte, sink EventSink) {
	if len(frame) == 0 {
		return
	}

	msg, err := models.Decode(frame)
	if err != nil {
		logging.Warn().Err(err).Bytes("frame", truncateFrame(frame)).Msg("dropping malformed frame")
		return
	}

	switch m := msg.(type) {
	case *models.Reply:
		if m.IsError() {
			err := fmt.Errorf("%w: %s", models.ErrSubscribeRejected, m.GetError())
			logging.Error().Err(err).Msg("compositor rejected event stream")
			c.reportError(err)
			return
		}
		logging.Debug().Msg("event stream acknowledged")
	case models.Event:
		sink.HandleEvent(m)
	}
}

func (c *Client) handleLoss(cause error) {
	c.reqMu.Lock()
	c.mu.Lock()
	wasConnected := c.connected
	c.connected = false
	c.closeConnections()
	c.mu.Unlock()
	c.reqMu.Unlock()

	// Close() already ran; the read error is just the fallout
	if !wasConnected {
		return
	}

	logging.Warn().Err(cause).Msg("lost connection to compositor")
	if c.opts.Hooks.OnDisconnected != nil {
		c.opts.Hooks.OnDisconnected()
	}
}

// Send encodes action, writes it on the request connection and waits up to
// ReplyTimeout for the reply.
//
// It returns (false, nil) when disconnected, when the compositor rejects the
// command, or when the reply cannot be parsed; all three are logged. A
// missing reply is treated as success. Only write failures, cancellation and
// encoding errors are returned.
func (c *Client) Send(ctx context.Context, action models.Action) (bool, error) {
	data, err := models.EncodeRequest(action)
	if err != nil {
		return false, err
	}

	log := logging.Logger.With().
		Str("request_id", uuid.New().String()).
		Str("action", action.ActionName()).
		Logger()

	c.reqMu.Lock()
	defer c.reqMu.Unlock()

	c.mu.Lock()
	connected, requests, path := c.connected, c.requests, c.socketPath
	c.mu.Unlock()

	if !connected {
		log.Warn().Msg("not connected, dropping command")
		return false, nil
	}

	// The compositor answers one request per connection; redial after each exchange
	if !requests.IsConnected() {
		requests = NewConnection(path, c.opts.ConnectTimeout)
		if err := requests.Connect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to open request connection")
			c.reportError(err)
			return false, err
		}
		c.mu.Lock()
		c.requests = requests
		c.mu.Unlock()
	}
	defer requests.Close()

	log.Debug().RawJSON("request", data).Msg("sending command")
	if err := requests.WriteFrame(data); err != nil {
		log.Error().Err(err).Msg("failed to send command")
		c.reportError(err)
		return false, err
	}

	line, err := requests.ReadFrame(ctx, c.opts.ReplyTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			log.Debug().Dur("timeout", c.opts.ReplyTimeout).Msg("no reply before timeout")
			return true, nil
		}
		log.Warn().Err(err).Msg("failed to read reply")
		return false, nil
	}

	msg, err := models.Decode(line)
	if err != nil {
		log.Warn().Err(err).Msg("unparsable reply")
		return false, nil
	}
	reply, ok := msg.(*models.Reply)
	if !ok {
		log.Warn().Bytes("reply", truncateFrame(line)).Msg("unexpected reply")
		return false, nil
	}
	if reply.IsError() {
		log.Warn().Err(fmt.Errorf("%w: %s", models.ErrReply, reply.GetError())).Msg("command rejected")
		return false, nil
	}

	log.Debug().Msg("command acknowledged")
	return true, nil
}

func (c *Client) reportError(err error) {
	if c.opts.Hooks.OnError != nil {
		c.opts.Hooks.OnError(err)
	}
}

func truncateFrame(frame []byte) []byte {
	const max = 256
	if len(frame) <= max {
		return frame
	}
	return frame[:max]
}
