// Package transport provides the UDP transport primitives used by the
// BACnet client: a one-shot connected exchange and a broadcast-capable
// listening socket for discovery.
package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// UDPTransport wraps a single net.UDPConn. Unlike a general-purpose
// transport, instances of this type are not reused across requests: the
// request engine opens one per exchange and the discovery engine opens
// one per discover() call — the socket lives only for the duration of
// one request.
type UDPTransport struct {
	mu     sync.RWMutex
	conn   *net.UDPConn
	closed bool
}

// DialPeer opens a UDP socket "connected" to remoteAddr, so Send/Receive
// need not name a peer on every call. Used by the confirmed-exchange
// engine.
func DialPeer(remoteAddr string) (*UDPTransport, error) {
	addr, err := net.ResolveUDPAddr("udp4", remoteAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve peer address: %w", err)
	}
	conn, err := net.DialUDP("udp4", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial UDP: %w", err)
	}
	return &UDPTransport{conn: conn}, nil
}

// ListenBroadcast opens a UDP socket bound to localAddr (typically
// ":47808") suitable for sending broadcasts and receiving unsolicited
// datagrams. Used by the discovery engine.
func ListenBroadcast(localAddr string) (*UDPTransport, error) {
	addr, err := net.ResolveUDPAddr("udp4", localAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve local address: %w", err)
	}
	conn, err := net.ListenUDP("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("listen UDP: %w", err)
	}
	return &UDPTransport{conn: conn}, nil
}

// Close releases the socket. Safe to call more than once.
func (t *UDPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	return t.conn.Close()
}

// LocalAddr returns the socket's local address.
func (t *UDPTransport) LocalAddr() net.Addr {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.conn.LocalAddr()
}

// Send writes data to the connected peer (DialPeer sockets only).
func (t *UDPTransport) Send(data []byte) error {
	t.mu.RLock()
	conn := t.conn
	t.mu.RUnlock()
	_, err := conn.Write(data)
	return err
}

// SendTo writes data to an explicit address (ListenBroadcast sockets).
func (t *UDPTransport) SendTo(addr *net.UDPAddr, data []byte) error {
	t.mu.RLock()
	conn := t.conn
	t.mu.RUnlock()
	_, err := conn.WriteToUDP(data, addr)
	return err
}

// Receive blocks for the first inbound datagram on the socket or until
// deadline, whichever comes first.
func (t *UDPTransport) Receive(deadline time.Time) ([]byte, error) {
	t.mu.RLock()
	conn := t.conn
	t.mu.RUnlock()

	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}
	buf := make([]byte, 1500)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// ReceiveFrom blocks for the first inbound datagram or until deadline,
// reporting its source address. Used by discovery's receiver loop.
func (t *UDPTransport) ReceiveFrom(deadline time.Time) ([]byte, *net.UDPAddr, error) {
	t.mu.RLock()
	conn := t.conn
	t.mu.RUnlock()

	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, nil, fmt.Errorf("set read deadline: %w", err)
	}
	buf := make([]byte, 1500)
	n, addr, err := conn.ReadFromUDP(buf)
	if err != nil {
		return nil, nil, err
	}
	return buf[:n], addr, nil
}

// ReceiveFromCtx is ReceiveFrom bounded by ctx instead of a fixed
// deadline, used by the discovery receiver so it can be cancelled the
// instant the overall deadline elapses rather than waiting out its own
// read timeout.
func (t *UDPTransport) ReceiveFromCtx(ctx context.Context, pollInterval time.Duration) ([]byte, *net.UDPAddr, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}
		data, addr, err := t.ReceiveFrom(time.Now().Add(pollInterval))
		if err == nil {
			return data, addr, nil
		}
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			continue
		}
		return nil, nil, err
	}
}
