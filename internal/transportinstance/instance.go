/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package transportinstance implements the TransportInstance tagged variant
// of spec §3: exactly one of {Tcp, Udp, Quic} is active per Instance, and
// the Instance exclusively owns the underlying OS resources. Per spec §9
// ("Tagged variant instead of virtual dispatch"), this is a closed struct
// with a Protocol discriminator rather than a polymorphic interface per
// protocol - the original_source/src/connection.rs TransportInstance enum
// and its Drop impl (which closes whichever variant is active) is the
// direct model for Close/Abort here.
package transportinstance

import (
	"context"
	"io"
	"net"
	"sync"

	"github.com/quic-go/quic-go"
)

// Instance wraps exactly one established transport handle.
type Instance struct {
	Protocol Protocol

	mu sync.Mutex

	tcpConn net.Conn
	udpConn net.Conn

	quicConn   *quic.Conn
	quicSocket net.PacketConn
	quicStream *quic.Stream
}

// Protocol mirrors proto.ID without importing the proto package. Nothing
// converts between the two: callers (the race and the Listener) record the
// proto.ID of each Instance alongside it.
type Protocol uint8

const (
	Unknown Protocol = iota
	TCP
	UDP
	QUIC
)

// NewTCP wraps an already-established net.Conn as a Tcp TransportInstance.
func NewTCP(conn net.Conn) *Instance {
	return &Instance{Protocol: TCP, tcpConn: conn}
}

// NewUDP wraps an already-connected datagram net.Conn as a Udp
// TransportInstance.
func NewUDP(conn net.Conn) *Instance {
	return &Instance{Protocol: UDP, udpConn: conn}
}

// NewQUIC wraps an established QUIC connection together with the UDP
// socket it owns, per spec §3's Quic(conn, datagram_socket) variant.
func NewQUIC(conn *quic.Conn, socket net.PacketConn) *Instance {
	return &Instance{Protocol: QUIC, quicConn: conn, quicSocket: socket}
}

// Write sends a complete message. TCP and UDP map directly onto a single
// write/datagram (spec §4.5). QUIC opens a new bidirectional stream on
// every call (the first Write uses the connection's first stream) and
// half-closes its write side after writing (FIN).
func (i *Instance) Write(ctx context.Context, data []byte) error {
	switch i.Protocol {
	case TCP:
		return writeAll(i.tcpConn, data)
	case UDP:
		return writeAll(i.udpConn, data)
	case QUIC:
		return i.writeQUIC(ctx, data)
	default:
		return io.ErrClosedPipe
	}
}

func writeAll(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (i *Instance) writeQUIC(ctx context.Context, data []byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.quicConn == nil {
		return io.ErrClosedPipe
	}

	stream, err := i.quicConn.OpenStreamSync(ctx)
	if err != nil {
		return err
	}
	i.quicStream = stream

	if err := writeAll(stream, data); err != nil {
		return err
	}
	return stream.Close() // half-close the write side (FIN)
}

// Read reads the next chunk of application data from the active transport
// into buf. TCP/UDP map onto a direct Read. QUIC reads from the stream
// opened by the last Write, or accepts the next incoming stream if none
// has been opened yet (the listening side's first read of a connection).
func (i *Instance) Read(ctx context.Context, buf []byte) (int, error) {
	switch i.Protocol {
	case TCP:
		return i.tcpConn.Read(buf)
	case UDP:
		return i.udpConn.Read(buf)
	case QUIC:
		return i.readQUIC(ctx, buf)
	default:
		return 0, io.ErrClosedPipe
	}
}

func (i *Instance) readQUIC(ctx context.Context, buf []byte) (int, error) {
	i.mu.Lock()
	stream := i.quicStream
	i.mu.Unlock()

	if stream == nil {
		if i.quicConn == nil {
			return 0, io.ErrClosedPipe
		}
		s, err := i.quicConn.AcceptStream(ctx)
		if err != nil {
			return 0, err
		}
		i.mu.Lock()
		i.quicStream = s
		i.mu.Unlock()
		stream = s
	}
	return stream.Read(buf)
}

// Close gracefully terminates the active variant (spec §4.5 "close").
func (i *Instance) Close() error {
	switch i.Protocol {
	case TCP:
		return i.tcpConn.Close()
	case UDP:
		return i.udpConn.Close()
	case QUIC:
		return i.closeQUIC()
	default:
		return nil
	}
}

func (i *Instance) closeQUIC() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	var err error
	if i.quicConn != nil {
		err = i.quicConn.CloseWithError(0, "")
	}
	if i.quicSocket != nil {
		if e := i.quicSocket.Close(); err == nil {
			err = e
		}
	}
	return err
}

// Abort is immediate, no-wait teardown (spec §4.5, §5: close drains
// in-flight sends, abort does not). TCP sets SO_LINGER to 0 first so the
// kernel sends RST instead of the FIN/ACK exchange a plain Close triggers;
// QUIC closes with a distinct application error code instead of the
// graceful 0 Close uses. UDP has no connection state to tear down
// gracefully, so it behaves the same as Close.
func (i *Instance) Abort() {
	switch i.Protocol {
	case TCP:
		if tc, ok := i.tcpConn.(*net.TCPConn); ok {
			_ = tc.SetLinger(0)
		}
		_ = i.tcpConn.Close()
	case UDP:
		_ = i.udpConn.Close()
	case QUIC:
		i.mu.Lock()
		if i.quicConn != nil {
			_ = i.quicConn.CloseWithError(abortErrorCode, "aborted")
		}
		if i.quicSocket != nil {
			_ = i.quicSocket.Close()
		}
		i.mu.Unlock()
	}
}

// abortErrorCode is the QUIC application error code Abort closes with,
// distinguishing an abrupt teardown from Close's graceful 0.
const abortErrorCode = 1
