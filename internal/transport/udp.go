// Package transport exchanges raw DNS messages with a resolver over UDP.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/multierr"

	"github.com/lc/nslook/internal/wire"
)

const (
	// DefaultPort is the DNS port used when the server has none.
	DefaultPort = "53"
	// DefaultTimeout bounds a whole exchange.
	DefaultTimeout = 5 * time.Second
)

// ErrTransport wraps every failure to send a query or receive its response.
var ErrTransport = errors.New("dns transport error")

// UDP sends one query datagram and waits for one response datagram.
// It never retries.
type UDP struct {
	Timeout time.Duration
	Dialer  *net.Dialer
}

// NewUDP returns a UDP transport bounded by timeout, or by DefaultTimeout
// when timeout is not positive.
func NewUDP(timeout time.Duration) *UDP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &UDP{
		Timeout: timeout,
		Dialer:  &net.Dialer{},
	}
}

// ServerAddr returns server as a host:port pair, adding DefaultPort when
// server is a bare host or IP literal.
func ServerAddr(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(server, DefaultPort)
}

// Exchange writes query to server and returns the first datagram read back,
// at most wire.MaxUDPSize octets long. The read is bounded by u.Timeout and
// by any deadline on ctx.
func (u *UDP) Exchange(ctx context.Context, server string, query []byte) (resp []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	addr := ServerAddr(server)
	conn, err := u.Dialer.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrTransport, addr, err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: close: %v", ErrTransport, cerr))
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("%w: set deadline: %v", ErrTransport, err)
		}
	}

	// unblock the read if ctx is cancelled before the deadline
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if _, err := conn.Write(query); err != nil {
		return nil, fmt.Errorf("%w: send to %s: %v", ErrTransport, addr, err)
	}

	buf := make([]byte, wire.MaxUDPSize)
	n, err := conn.Read(buf)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: receive from %s: %w", ErrTransport, addr, ctxErr)
		}
		return nil, fmt.Errorf("%w: receive from %s: %v", ErrTransport, addr, err)
	}
	return buf[:n], nil
}
