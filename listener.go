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

package gotaps

import (
	"context"
	"crypto/tls"
	"net"
	"net/netip"
	"sync"

	"github.com/quic-go/quic-go"

	"github.com/nabbar/gotaps/errors"
	"github.com/nabbar/gotaps/framer"
	"github.com/nabbar/gotaps/internal/transportinstance"
	"github.com/nabbar/gotaps/logger"
	"github.com/nabbar/gotaps/proto"
)

// Listener is the passive server-side counterpart of Preconnection (spec
// §3, §4.4.6): it binds the protocol set selected by the same ranking
// algorithm Initiate uses, and exposes a lazy, non-finite sequence of
// accepted Connections. Every accepted Connection carries the same Framer
// value the Listener took from the originating Preconnection; it holds no
// copy of the Preconnection itself.
type Listener[T any, U any] struct {
	local     netip.AddrPort
	protocols []proto.ID
	allowed   []netip.Addr
	framer    framer.Framer[T, U]
	logger    logger.Logger
	tlsConf   *tls.Config

	mu      sync.Mutex
	started bool
	accept  chan acceptResult[T, U]
	closed  chan struct{}

	tcpLn net.Listener

	udpConn  *net.UDPConn
	udpMu    sync.Mutex
	udpPeers map[string]*udpPeerConn

	quicLn *quic.Listener
}

type acceptResult[T any, U any] struct {
	conn *Connection[T, U]
	err  error
}

// Start binds each candidate protocol's server endpoint on the Listener's
// local socket address (spec §4.4.6): TCP bind+listen, UDP bind plus a
// per-peer demultiplexing reader, QUIC bind plus handshake acceptance.
func (l *Listener[T, U]) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return nil
	}
	l.started = true
	l.accept = make(chan acceptResult[T, U], 8)
	l.closed = make(chan struct{})

	if l.logger == nil {
		l.logger = logger.Discard()
	}

	for _, id := range l.protocols {
		switch id {
		case proto.TCP:
			if err := l.startTCP(); err != nil {
				return err
			}
		case proto.UDP:
			if err := l.startUDP(); err != nil {
				return err
			}
		case proto.QUIC:
			if err := l.startQUIC(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Listener[T, U]) isAllowed(addr netip.Addr) bool {
	if len(l.allowed) == 0 {
		return true
	}
	for _, a := range l.allowed {
		if a == addr {
			return true
		}
	}
	return false
}

func (l *Listener[T, U]) deliver(inst *transportinstance.Instance, id proto.ID) {
	select {
	case l.accept <- acceptResult[T, U]{conn: &Connection[T, U]{instance: inst, protocol: id, framer: l.framer}}:
	case <-l.closed:
		_ = inst.Close()
	}
}

func (l *Listener[T, U]) startTCP() error {
	ln, err := net.ListenTCP("tcp", net.TCPAddrFromAddrPort(l.local))
	if err != nil {
		return errors.Wrap(errors.Io, "Listener.Start", err)
	}
	l.tcpLn = ln

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				select {
				case <-l.closed:
					return
				default:
				}
				l.logger.Debug("tcp accept failed", "error", err)
				return
			}

			remoteAddr, ok := addrFromNetAddr(conn.RemoteAddr())
			if !ok || !l.isAllowed(remoteAddr) {
				_ = conn.Close()
				continue
			}

			l.deliver(transportinstance.NewTCP(conn), proto.TCP)
		}
	}()
	return nil
}

// startUDP binds a single UDP socket and demultiplexes it by peer address:
// the first datagram from a new peer yields a new Connection; subsequent
// datagrams from that peer are routed to its udpPeerConn's read channel.
// This mirrors quic-go's own single-socket multiplexing (by connection ID
// rather than by peer address), since a listening UDP socket cannot itself
// "accept" in the TCP sense.
func (l *Listener[T, U]) startUDP() error {
	conn, err := net.ListenUDP("udp", net.UDPAddrFromAddrPort(l.local))
	if err != nil {
		return errors.Wrap(errors.Io, "Listener.Start", err)
	}
	l.udpConn = conn
	l.udpPeers = make(map[string]*udpPeerConn)

	go func() {
		buf := make([]byte, receiveBufferSize)
		for {
			n, raddr, err := conn.ReadFromUDP(buf)
			if err != nil {
				select {
				case <-l.closed:
					return
				default:
				}
				l.logger.Debug("udp read failed", "error", err)
				return
			}

			data := make([]byte, n)
			copy(data, buf[:n])

			remoteAddr, ok := netip.AddrFromSlice(raddr.IP)
			if !ok {
				continue
			}
			remoteAddr = remoteAddr.Unmap()

			l.udpMu.Lock()
			peer, exists := l.udpPeers[raddr.String()]
			if !exists {
				if !l.isAllowed(remoteAddr) {
					l.udpMu.Unlock()
					continue
				}
				peer = newUDPPeerConn(conn, raddr)
				l.udpPeers[raddr.String()] = peer
			}
			l.udpMu.Unlock()

			peer.deliver(data)

			if !exists {
				l.deliver(transportinstance.NewUDP(peer), proto.UDP)
			}
		}
	}()
	return nil
}

func (l *Listener[T, U]) startQUIC(ctx context.Context) error {
	conn, err := net.ListenUDP("udp", net.UDPAddrFromAddrPort(l.local))
	if err != nil {
		return errors.Wrap(errors.Io, "Listener.Start", err)
	}

	tlsConf := l.tlsConf
	if tlsConf == nil {
		tlsConf, err = selfSignedTLSConfig()
		if err != nil {
			_ = conn.Close()
			return errors.Wrap(errors.Io, "Listener.Start", err)
		}
	}

	ln, err := quic.Listen(conn, tlsConf, &quic.Config{})
	if err != nil {
		_ = conn.Close()
		return errors.Wrap(errors.Io, "Listener.Start", err)
	}
	l.quicLn = ln

	go func() {
		for {
			qc, err := ln.Accept(ctx)
			if err != nil {
				select {
				case <-l.closed:
					return
				default:
				}
				l.logger.Debug("quic accept failed", "error", err)
				return
			}

			remoteAddr, ok := addrFromNetAddr(qc.RemoteAddr())
			if !ok || !l.isAllowed(remoteAddr) {
				_ = qc.CloseWithError(0, "")
				continue
			}

			l.deliver(transportinstance.NewQUIC(qc, conn), proto.QUIC)
		}
	}()
	return nil
}

// Accept blocks until the next accepted, allowed-peer-filtered Connection
// is available, ctx is cancelled, or the Listener is closed.
func (l *Listener[T, U]) Accept(ctx context.Context) (*Connection[T, U], error) {
	select {
	case r, ok := <-l.accept:
		if !ok {
			return nil, errors.New(errors.Io, "Listener.Accept")
		}
		return r.conn, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, errors.New(errors.Io, "Listener.Accept")
	}
}

// Close shuts down every bound protocol's listening primitive.
func (l *Listener[T, U]) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed != nil {
		select {
		case <-l.closed:
		default:
			close(l.closed)
		}
	}
	if l.tcpLn != nil {
		_ = l.tcpLn.Close()
	}
	if l.udpConn != nil {
		_ = l.udpConn.Close()
	}
	if l.quicLn != nil {
		_ = l.quicLn.Close()
	}
	return nil
}

func addrFromNetAddr(a net.Addr) (netip.Addr, bool) {
	switch v := a.(type) {
	case *net.TCPAddr:
		addr, ok := netip.AddrFromSlice(v.IP)
		return addr.Unmap(), ok
	case *net.UDPAddr:
		addr, ok := netip.AddrFromSlice(v.IP)
		return addr.Unmap(), ok
	default:
		ap, err := netip.ParseAddrPort(a.String())
		if err != nil {
			return netip.Addr{}, false
		}
		return ap.Addr(), true
	}
}
