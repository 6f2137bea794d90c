package client

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/yourusername/niri-mirror/internal/models"
)

// Connection wraps one Unix domain socket connection to the compositor
type Connection struct {
	socketPath string
	conn       net.Conn
	reader     *bufio.Reader
	timeout    time.Duration
}

// NewConnection creates a new connection instance. timeout bounds the dial
// and every frame write.
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// Connect establishes the Unix domain socket connection
func (c *Connection) Connect(ctx context.Context) error {
	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrConnectFailed, c.socketPath, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the connection
func (c *Connection) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// IsConnected returns true if the connection is established
func (c *Connection) IsConnected() bool {
	return c.conn != nil
}

// WriteFrame writes data followed by a newline in a single call.
// Anything short of the full frame is ErrWriteFailed.
func (c *Connection) WriteFrame(data []byte) error {
	if c.conn == nil {
		return fmt.Errorf("%w: not connected", models.ErrWriteFailed)
	}

	frame := make([]byte, 0, len(data)+1)
	frame = append(frame, data...)
	frame = append(frame, '\n')

	if c.timeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return fmt.Errorf("%w: failed to set write deadline: %v", models.ErrWriteFailed, err)
		}
	}

	n, err := c.conn.Write(frame)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrWriteFailed, err)
	}
	if n != len(frame) {
		return fmt.Errorf("%w: wrote %d of %d bytes", models.ErrWriteFailed, n, len(frame))
	}
	return nil
}

// ReadFrame reads one newline-terminated frame, waiting at most timeout.
// The terminator is stripped.
func (c *Connection) ReadFrame(ctx context.Context, timeout time.Duration) ([]byte, error) {
	if c.conn == nil {
		return nil, models.ErrDisconnected
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set read deadline: %w", err)
	}
	defer c.conn.SetReadDeadline(time.Time{})

	// Read in a goroutine so a cancelled context returns promptly
	type result struct {
		line []byte
		err  error
	}
	resultChan := make(chan result, 1)
	reader := c.reader

	go func() {
		line, err := reader.ReadBytes('\n')
		resultChan <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		// Unblock the reader; the deferred reset happens after it returns
		c.conn.SetReadDeadline(time.Now())
		<-resultChan
		return nil, fmt.Errorf("read cancelled: %w", ctx.Err())
	case r := <-resultChan:
		if r.err != nil {
			return nil, r.err
		}
		return r.line[:len(r.line)-1], nil
	}
}

// netConn exposes the underlying socket for the event read loop
func (c *Connection) netConn() net.Conn {
	return c.conn
}
